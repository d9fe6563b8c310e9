package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrAlreadyJoined = errors.New("user already joined the activity")
	ErrActivityFull  = errors.New("activity is full")
	ErrNotInActivity = errors.New("user has not joined the activity")
)

type ActivityParticipation struct {
	ID         uint `gorm:"primaryKey"`
	UserID     uint `gorm:"not null;uniqueIndex:idx_user_activity"`
	User       User
	ActivityID uint `gorm:"not null;uniqueIndex:idx_user_activity;index"`
	Activity   Activity
	JoinedAt   time.Time `gorm:"not null"`
}

// JoinedActivityQuery narrows and orders a user's joined-activity listing.
// OrderBy must already be a validated column expression.
type JoinedActivityQuery struct {
	Page     int
	PageSize int
	OrderBy  string
	Order    string

	UserID     uint
	CategoryID uint
	Status     string

	// VisibleStatuses restricts results by activity status. When
	// OrganizerEscape is nonzero, activities organized by that user are
	// returned regardless of status.
	VisibleStatuses []string
	OrganizerEscape uint
}

type ParticipationDAO struct {
	db *gorm.DB
}

func NewParticipationDAO(db *gorm.DB) *ParticipationDAO {
	return &ParticipationDAO{
		db: db,
	}
}

// Join enrolls the user. With a capacity limit the membership row is only
// inserted while the participant count is still below the limit, so
// concurrent joins cannot overshoot. Duplicate joins are rejected by the
// unique index on (user_id, activity_id).
func (d *ParticipationDAO) Join(ctx context.Context, activityID, userID uint, maxParticipants *int) error {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64

		err := tx.Model(&ActivityParticipation{}).
			Where("activity_id = ? AND user_id = ?", activityID, userID).
			Count(&existing).Error
		if err != nil {
			return err
		}

		if existing > 0 {
			return ErrAlreadyJoined
		}

		now := time.Now()

		if maxParticipants != nil {
			res := tx.Exec(
				`INSERT INTO activity_participations (user_id, activity_id, joined_at)
				 SELECT ?, ?, ?
				 WHERE (SELECT COUNT(*) FROM activity_participations WHERE activity_id = ?) < ?`,
				userID, activityID, now, activityID, *maxParticipants,
			)
			if res.Error != nil {
				return res.Error
			}

			if res.RowsAffected == 0 {
				return ErrActivityFull
			}

			return nil
		}

		p := ActivityParticipation{
			UserID:     userID,
			ActivityID: activityID,
			JoinedAt:   now,
		}

		return tx.Create(&p).Error
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyJoined) || errors.Is(err, ErrActivityFull) {
			return err
		}

		if isUniqueViolation(err) {
			return ErrAlreadyJoined
		}

		return fmt.Errorf("d.db.Transaction -> %w", err)
	}

	return nil
}

func (d *ParticipationDAO) Leave(ctx context.Context, activityID, userID uint) error {
	res := d.db.WithContext(ctx).
		Where("activity_id = ? AND user_id = ?", activityID, userID).
		Delete(&ActivityParticipation{})
	if res.Error != nil {
		return fmt.Errorf("d.db.Delete -> %w", res.Error)
	}

	if res.RowsAffected == 0 {
		return ErrNotInActivity
	}

	return nil
}

func (d *ParticipationDAO) Find(ctx context.Context, activityID, userID uint) (ActivityParticipation, error) {
	var p ActivityParticipation

	err := d.db.WithContext(ctx).
		Where("activity_id = ? AND user_id = ?", activityID, userID).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ActivityParticipation{}, ErrNotInActivity
		}

		return ActivityParticipation{}, fmt.Errorf("d.db.First -> %w", err)
	}

	return p, nil
}

func (d *ParticipationDAO) CountByActivity(ctx context.Context, activityID uint) (int64, error) {
	var count int64

	err := d.db.WithContext(ctx).
		Model(&ActivityParticipation{}).
		Where("activity_id = ?", activityID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("d.db.Count -> %w", err)
	}

	return count, nil
}

// ListByActivity returns a page of participations with users preloaded,
// ordered by join time.
func (d *ParticipationDAO) ListByActivity(ctx context.Context, activityID uint, page, pageSize int) ([]ActivityParticipation, int64, error) {
	var (
		participations []ActivityParticipation
		total          int64
	)

	tx := d.db.WithContext(ctx).
		Model(&ActivityParticipation{}).
		Where("activity_id = ?", activityID)

	err := tx.Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("d.db.Count -> %w", err)
	}

	err = tx.Order("joined_at ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Preload("User").
		Find(&participations).Error
	if err != nil {
		return nil, 0, fmt.Errorf("d.db.Find -> %w", err)
	}

	return participations, total, nil
}

// ListJoined returns a page of the user's participations with their
// activities preloaded.
func (d *ParticipationDAO) ListJoined(ctx context.Context, q JoinedActivityQuery) ([]ActivityParticipation, int64, error) {
	var (
		participations []ActivityParticipation
		total          int64
	)

	if q.OrderBy == "" {
		q.OrderBy, q.Order = "activity_participations.joined_at", "DESC"
	}

	tx := d.db.WithContext(ctx).
		Model(&ActivityParticipation{}).
		Joins("JOIN activities ON activities.id = activity_participations.activity_id").
		Where("activity_participations.user_id = ?", q.UserID)

	if q.CategoryID != 0 {
		tx = tx.Where("activities.category_id = ?", q.CategoryID)
	}

	if q.Status != "" {
		tx = tx.Where("activities.status = ?", q.Status)
	}

	if len(q.VisibleStatuses) > 0 {
		if q.OrganizerEscape != 0 {
			tx = tx.Where("activities.status IN ? OR activities.organizer_id = ?", q.VisibleStatuses, q.OrganizerEscape)
		} else {
			tx = tx.Where("activities.status IN ?", q.VisibleStatuses)
		}
	}

	err := tx.Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("d.db.Count -> %w", err)
	}

	err = tx.Order(fmt.Sprintf("%s %s", q.OrderBy, q.Order)).
		Offset((q.Page - 1) * q.PageSize).
		Limit(q.PageSize).
		Preload("Activity").
		Preload("Activity.Organizer").
		Preload("Activity.Category").
		Find(&participations).Error
	if err != nil {
		return nil, 0, fmt.Errorf("d.db.Find -> %w", err)
	}

	return participations, total, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return true
	}

	return errors.Is(err, gorm.ErrDuplicatedKey)
}
