package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/rdfzsc/campus-api/internal/domain"
	"github.com/rdfzsc/campus-api/internal/repository"
	"github.com/rdfzsc/campus-api/internal/repository/dao"
	"github.com/rdfzsc/campus-api/internal/service"
	"github.com/rdfzsc/campus-api/internal/testutil"
)

type ActivityServiceTestSuite struct {
	suite.Suite

	testDB *testutil.TestDatabase
	aRepo  *repository.ActivityRepository
	pRepo  *repository.ParticipationRepository
	svc    *service.ActivityService

	admin    domain.User
	member   domain.User
	other    domain.User
	category dao.ActivityCategory
}

func (s *ActivityServiceTestSuite) SetupTest() {
	s.testDB = testutil.SetupTestDatabase(s.T())

	uRepo := repository.NewUserRepository(dao.NewUserDAO(s.testDB.DB))
	s.aRepo = repository.NewActivityRepository(dao.NewActivityDAO(s.testDB.DB), uRepo)
	s.pRepo = repository.NewParticipationRepository(dao.NewParticipationDAO(s.testDB.DB), uRepo, s.aRepo)
	s.svc = service.NewActivityService(s.aRepo)

	s.admin = s.asDomain(testutil.CreateUser(s.T(), s.testDB.DB, "admin", "admin"))
	s.member = s.asDomain(testutil.CreateUser(s.T(), s.testDB.DB, "member", "member"))
	s.other = s.asDomain(testutil.CreateUser(s.T(), s.testDB.DB, "other", "member"))
	s.category = testutil.CreateCategory(s.T(), s.testDB.DB, "sports")
}

func (s *ActivityServiceTestSuite) asDomain(u dao.User) domain.User {
	return domain.User{ID: u.ID, Username: u.Username, Role: domain.Role(u.Role)}
}

func TestActivityService(t *testing.T) {
	suite.Run(t, new(ActivityServiceTestSuite))
}

func (s *ActivityServiceTestSuite) newActivity() domain.Activity {
	now := time.Now()

	return domain.Activity{
		Title:       "chess night",
		Description: "weekly chess night",
		CategoryID:  s.category.ID,
		Location:    "room 204",
		StartDate:   now.Add(24 * time.Hour),
		EndDate:     now.Add(26 * time.Hour),
	}
}

func (s *ActivityServiceTestSuite) TestCreateActivity_PendingAndAutoEnrolled() {
	created, err := s.svc.CreateActivity(context.Background(), s.member, s.newActivity())
	s.Require().NoError(err)

	s.Equal(domain.StatusPending, created.Status)
	s.Equal(s.member.ID, created.OrganizerID)

	count, err := s.pRepo.CountByActivity(context.Background(), created.ID)
	s.Require().NoError(err)
	s.EqualValues(1, count)

	_, err = s.pRepo.Find(context.Background(), created.ID, s.member.ID)
	s.Require().NoError(err)
}

func (s *ActivityServiceTestSuite) TestCreateActivity_BannedDenied() {
	banned := s.asDomain(testutil.CreateUser(s.T(), s.testDB.DB, "troll", "banned"))

	_, err := s.svc.CreateActivity(context.Background(), banned, s.newActivity())
	s.Require().ErrorIs(err, service.ErrPermissionDenied)
}

func (s *ActivityServiceTestSuite) TestCreateActivity_UnknownCategory() {
	activity := s.newActivity()
	activity.CategoryID = 9999

	_, err := s.svc.CreateActivity(context.Background(), s.member, activity)
	s.Require().ErrorIs(err, service.ErrCategoryNotFound)
}

func (s *ActivityServiceTestSuite) TestGetActivity_PendingHiddenFromOthers() {
	created, err := s.svc.CreateActivity(context.Background(), s.member, s.newActivity())
	s.Require().NoError(err)

	_, err = s.svc.GetActivity(context.Background(), s.other, created.ID)
	s.Require().ErrorIs(err, service.ErrActivityNotFound)

	_, err = s.svc.GetActivity(context.Background(), s.member, created.ID)
	s.Require().NoError(err)

	_, err = s.svc.GetActivity(context.Background(), s.admin, created.ID)
	s.Require().NoError(err)
}

func (s *ActivityServiceTestSuite) TestUpdateActivity_EditResubmits() {
	activity := testutil.CreateActivity(s.T(), s.testDB.DB, s.member.ID, s.category.ID, "rejected", nil)

	title := "second attempt"
	updated, err := s.svc.UpdateActivity(context.Background(), s.member, activity.ID, service.ActivityUpdate{
		Title: &title,
	})
	s.Require().NoError(err)

	s.Equal("second attempt", updated.Title)
	s.Equal(domain.StatusPending, updated.Status)
}

func (s *ActivityServiceTestSuite) TestUpdateActivity_StrangerDeniedOnHidden() {
	activity := testutil.CreateActivity(s.T(), s.testDB.DB, s.member.ID, s.category.ID, "pending", nil)

	title := "hijack"
	_, err := s.svc.UpdateActivity(context.Background(), s.other, activity.ID, service.ActivityUpdate{
		Title: &title,
	})
	s.Require().ErrorIs(err, service.ErrPermissionDenied)

	err = s.svc.DeleteActivity(context.Background(), s.other, activity.ID)
	s.Require().ErrorIs(err, service.ErrPermissionDenied)
}

func (s *ActivityServiceTestSuite) TestUpdateActivity_AdminSetsStatus() {
	activity := testutil.CreateActivity(s.T(), s.testDB.DB, s.member.ID, s.category.ID, "pending", nil)

	status := domain.StatusApproved
	updated, err := s.svc.UpdateActivity(context.Background(), s.admin, activity.ID, service.ActivityUpdate{
		Status: &status,
	})
	s.Require().NoError(err)
	s.Equal(domain.StatusApproved, updated.Status)
}

func (s *ActivityServiceTestSuite) TestUpdateActivity_StatusIsAdminOnly() {
	activity := testutil.CreateActivity(s.T(), s.testDB.DB, s.member.ID, s.category.ID, "pending", nil)

	status := domain.StatusApproved
	_, err := s.svc.UpdateActivity(context.Background(), s.member, activity.ID, service.ActivityUpdate{
		Status: &status,
	})
	s.Require().ErrorIs(err, service.ErrPermissionDenied)
}

func (s *ActivityServiceTestSuite) TestUpdateActivity_ApprovedLockedForOrganizer() {
	activity := testutil.CreateActivity(s.T(), s.testDB.DB, s.member.ID, s.category.ID, "approved", nil)

	title := "new title"
	_, err := s.svc.UpdateActivity(context.Background(), s.member, activity.ID, service.ActivityUpdate{
		Title: &title,
	})
	s.Require().ErrorIs(err, service.ErrPermissionDenied)
}

func (s *ActivityServiceTestSuite) TestUpdateActivity_ClearCapacity() {
	activity := testutil.CreateActivity(s.T(), s.testDB.DB, s.member.ID, s.category.ID, "pending", testutil.IntPtr(20))

	noLimit := -1
	updated, err := s.svc.UpdateActivity(context.Background(), s.admin, activity.ID, service.ActivityUpdate{
		MaxParticipants: &noLimit,
	})
	s.Require().NoError(err)
	s.Nil(updated.MaxParticipants)
}

func (s *ActivityServiceTestSuite) TestDeleteActivity_RepeatRejected() {
	activity := testutil.CreateActivity(s.T(), s.testDB.DB, s.member.ID, s.category.ID, "pending", nil)

	err := s.svc.DeleteActivity(context.Background(), s.member, activity.ID)
	s.Require().NoError(err)

	found, err := s.aRepo.FindByID(context.Background(), activity.ID)
	s.Require().NoError(err)
	s.Equal(domain.StatusDeleted, found.Status)

	err = s.svc.DeleteActivity(context.Background(), s.member, activity.ID)
	s.Require().ErrorIs(err, service.ErrActivityAlreadyDeleted)
}

func (s *ActivityServiceTestSuite) TestDeleteActivity_OnlyOrganizerOrAdmin() {
	activity := testutil.CreateActivity(s.T(), s.testDB.DB, s.member.ID, s.category.ID, "approved", nil)

	err := s.svc.DeleteActivity(context.Background(), s.other, activity.ID)
	s.Require().ErrorIs(err, service.ErrPermissionDenied)

	err = s.svc.DeleteActivity(context.Background(), s.admin, activity.ID)
	s.Require().NoError(err)
}

func (s *ActivityServiceTestSuite) TestListActivities_Visibility() {
	testutil.CreateActivity(s.T(), s.testDB.DB, s.other.ID, s.category.ID, "approved", nil)
	testutil.CreateActivity(s.T(), s.testDB.DB, s.other.ID, s.category.ID, "completed", nil)
	testutil.CreateActivity(s.T(), s.testDB.DB, s.other.ID, s.category.ID, "pending", nil)
	testutil.CreateActivity(s.T(), s.testDB.DB, s.member.ID, s.category.ID, "pending", nil)

	activities, total, err := s.svc.ListActivities(context.Background(), s.member, service.ListActivitiesQuery{
		Page:     1,
		PageSize: 10,
	})
	s.Require().NoError(err)
	s.EqualValues(3, total)
	for _, a := range activities {
		if a.Status == domain.StatusPending {
			s.Equal(s.member.ID, a.OrganizerID)
		}
	}

	_, total, err = s.svc.ListActivities(context.Background(), s.admin, service.ListActivitiesQuery{
		Page:     1,
		PageSize: 10,
	})
	s.Require().NoError(err)
	s.EqualValues(4, total)
}

func (s *ActivityServiceTestSuite) TestListActivities_RestrictedStatusFilter() {
	_, _, err := s.svc.ListActivities(context.Background(), s.member, service.ListActivitiesQuery{
		Page:     1,
		PageSize: 10,
		Status:   domain.StatusPending,
	})
	s.Require().ErrorIs(err, service.ErrRestrictedStatusFilter)

	_, _, err = s.svc.ListActivities(context.Background(), s.admin, service.ListActivitiesQuery{
		Page:     1,
		PageSize: 10,
		Status:   domain.StatusPending,
	})
	s.Require().NoError(err)
}

func (s *ActivityServiceTestSuite) TestCreateCategory_AdminOnly() {
	_, err := s.svc.CreateCategory(context.Background(), s.member, domain.ActivityCategory{Name: "music"})
	s.Require().ErrorIs(err, service.ErrPermissionDenied)

	created, err := s.svc.CreateCategory(context.Background(), s.admin, domain.ActivityCategory{Name: "music"})
	s.Require().NoError(err)
	s.NotZero(created.ID)

	categories, err := s.svc.ListCategories(context.Background())
	s.Require().NoError(err)
	s.Len(categories, 2)
}
