package dao

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupPostgres starts a disposable postgres container for the test and
// skips when no docker daemon is reachable. The in-memory SQLite setup
// used elsewhere cannot reproduce postgres error codes and constraint
// names, which is exactly what the DAO error translation depends on.
func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker not available: %v", err)
	}

	if err = pool.Client.Ping(); err != nil {
		t.Skipf("docker not available: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=test",
			"POSTGRES_PASSWORD=test",
			"POSTGRES_DB=campus_test",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("failed to purge postgres container: %v", err)
		}
	})

	dsn := fmt.Sprintf(
		"host=localhost port=%v user=test password=test dbname=campus_test sslmode=disable",
		resource.GetPort("5432/tcp"),
	)

	var db *gorm.DB

	pool.MaxWait = 60 * time.Second
	err = pool.Retry(func() error {
		var err error

		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return err
		}

		sqlDB, err := db.DB()
		if err != nil {
			return err
		}

		return sqlDB.Ping()
	})
	require.NoError(t, err)

	require.NoError(t, InitTables(db))

	return db
}

func pgCreateUser(t *testing.T, db *gorm.DB, username string) User {
	t.Helper()

	u := User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hash",
		Role:     "member",
	}
	require.NoError(t, db.Create(&u).Error)

	return u
}

func pgCreateActivity(t *testing.T, db *gorm.DB, organizerID uint, maxParticipants *int) Activity {
	t.Helper()

	category := ActivityCategory{Name: fmt.Sprintf("category-%d-%d", organizerID, time.Now().UnixNano())}
	require.NoError(t, db.Create(&category).Error)

	now := time.Now()
	a := Activity{
		Title:           "pg fixture",
		Description:     "pg fixture",
		Location:        "gym",
		StartDate:       now.Add(24 * time.Hour),
		EndDate:         now.Add(26 * time.Hour),
		MaxParticipants: maxParticipants,
		Status:          "approved",
		OrganizerID:     organizerID,
		CategoryID:      category.ID,
	}
	require.NoError(t, db.Create(&a).Error)

	return a
}

func TestPostgresIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	db := setupPostgres(t)
	ctx := context.Background()

	t.Run("duplicate username maps by constraint name", func(t *testing.T) {
		d := NewUserDAO(db)

		first := pgCreateUser(t, db, "uniq1")

		_, err := d.Insert(ctx, User{
			Username: first.Username,
			Email:    "fresh1@example.com",
			Password: "hash",
			Role:     "member",
		})
		assert.ErrorIs(t, err, ErrUsernameExists)

		_, err = d.Insert(ctx, User{
			Username: "fresh1",
			Email:    first.Email,
			Password: "hash",
			Role:     "member",
		})
		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("duplicate join", func(t *testing.T) {
		d := NewParticipationDAO(db)

		organizer := pgCreateUser(t, db, "organizer1")
		member := pgCreateUser(t, db, "member1")
		activity := pgCreateActivity(t, db, organizer.ID, nil)

		require.NoError(t, d.Join(ctx, activity.ID, member.ID, nil))
		assert.ErrorIs(t, d.Join(ctx, activity.ID, member.ID, nil), ErrAlreadyJoined)
	})

	t.Run("capacity stops the insert", func(t *testing.T) {
		d := NewParticipationDAO(db)

		organizer := pgCreateUser(t, db, "organizer2")
		activity := pgCreateActivity(t, db, organizer.ID, intPtr(2))

		for i := 0; i < 2; i++ {
			u := pgCreateUser(t, db, fmt.Sprintf("joiner%d", i))
			require.NoError(t, d.Join(ctx, activity.ID, u.ID, intPtr(2)))
		}

		late := pgCreateUser(t, db, "latecomer")
		assert.ErrorIs(t, d.Join(ctx, activity.ID, late.ID, intPtr(2)), ErrActivityFull)

		count, err := d.CountByActivity(ctx, activity.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 2, count)
	})

	t.Run("points move balance atomically", func(t *testing.T) {
		d := NewPointsDAO(db)

		member := pgCreateUser(t, db, "scorer1")

		_, err := d.AddPoints(ctx, PointRecord{UserID: member.ID, Points: 10, Description: "win"})
		require.NoError(t, err)

		_, err = d.AddPoints(ctx, PointRecord{UserID: member.ID, Points: -3, Description: "penalty"})
		require.NoError(t, err)

		var stored User
		require.NoError(t, db.First(&stored, member.ID).Error)
		assert.Equal(t, 7, stored.Points)

		records, total, err := d.ListByUser(ctx, member.ID, 1, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		require.Len(t, records, 2)
		assert.Equal(t, -3, records[0].Points)
	})

	t.Run("points reject unknown user", func(t *testing.T) {
		d := NewPointsDAO(db)

		_, err := d.AddPoints(ctx, PointRecord{UserID: 999999, Points: 5, Description: "nobody"})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func intPtr(v int) *int {
	return &v
}
