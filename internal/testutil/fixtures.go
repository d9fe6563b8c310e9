package testutil

import (
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/rdfzsc/campus-api/internal/repository/dao"
)

// DefaultPassword is the plaintext behind every fixture user's hash.
const DefaultPassword = "Password123"

// CreateUser inserts a user with the given role. MinCost keeps the
// bcrypt work factor out of the test runtime.
func CreateUser(t *testing.T, db *gorm.DB, username, role string) dao.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash fixture password: %v", err)
	}

	user := dao.User{
		Username: username,
		Email:    username + "@example.com",
		Password: string(hash),
		Role:     role,
	}
	if err = db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create fixture user %v: %v", username, err)
	}

	return user
}

func CreateCategory(t *testing.T, db *gorm.DB, name string) dao.ActivityCategory {
	t.Helper()

	category := dao.ActivityCategory{
		Name:        name,
		Description: "fixture category",
	}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("failed to create fixture category %v: %v", name, err)
	}

	return category
}

// CreateActivity inserts an activity row only. Tests that need the
// organizer enrolled should go through the service or call JoinActivity.
func CreateActivity(t *testing.T, db *gorm.DB, organizerID, categoryID uint, status string, maxParticipants *int) dao.Activity {
	t.Helper()

	now := time.Now()
	activity := dao.Activity{
		Title:           "fixture activity",
		Description:     "fixture description",
		Location:        "auditorium",
		StartDate:       now.Add(24 * time.Hour),
		EndDate:         now.Add(26 * time.Hour),
		MaxParticipants: maxParticipants,
		Status:          status,
		OrganizerID:     organizerID,
		CategoryID:      categoryID,
	}
	if err := db.Create(&activity).Error; err != nil {
		t.Fatalf("failed to create fixture activity: %v", err)
	}

	return activity
}

func JoinActivity(t *testing.T, db *gorm.DB, activityID, userID uint) dao.ActivityParticipation {
	t.Helper()

	participation := dao.ActivityParticipation{
		UserID:     userID,
		ActivityID: activityID,
		JoinedAt:   time.Now(),
	}
	if err := db.Create(&participation).Error; err != nil {
		t.Fatalf("failed to create fixture participation: %v", err)
	}

	return participation
}

func IntPtr(v int) *int {
	return &v
}
