package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

var (
	ErrActivityNotFound = errors.New("activity not found")
	ErrCategoryNotFound = errors.New("activity category not found")
)

type ActivityCategory struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:255;uniqueIndex;not null"`
	Description string `gorm:"size:5000"`
	CreatedAt   time.Time
}

type Activity struct {
	ID              uint   `gorm:"primaryKey"`
	Title           string `gorm:"size:255;not null"`
	Description     string `gorm:"type:text;not null"`
	Location        string `gorm:"size:255"`
	StartDate       time.Time
	EndDate         time.Time
	MaxParticipants *int
	FeaturedImage   *string `gorm:"size:255"`
	Status          string  `gorm:"size:20;not null;default:pending;index"`
	OrganizerID     uint    `gorm:"not null;index"`
	Organizer       User
	CategoryID      uint `gorm:"not null;index"`
	Category        ActivityCategory
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ActivityQuery narrows and orders an activity listing. OrderBy and Order
// must already be validated against the handler allow-list.
type ActivityQuery struct {
	Page     int
	PageSize int
	OrderBy  string
	Order    string

	CategoryID  uint
	OrganizerID uint

	// Statuses restricts results to the given set. When VisibleToUserID is
	// nonzero, activities organized by that user are returned regardless
	// of status.
	Statuses        []string
	VisibleToUserID uint
}

type ActivityDAO struct {
	db *gorm.DB
}

func NewActivityDAO(db *gorm.DB) *ActivityDAO {
	return &ActivityDAO{
		db: db,
	}
}

// Insert creates the activity and enrolls its organizer as the first
// participant inside one transaction.
func (d *ActivityDAO) Insert(ctx context.Context, a Activity) (Activity, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&a).Error; err != nil {
			return err
		}

		p := ActivityParticipation{
			UserID:     a.OrganizerID,
			ActivityID: a.ID,
			JoinedAt:   time.Now(),
		}

		return tx.Create(&p).Error
	})
	if err != nil {
		return Activity{}, fmt.Errorf("d.db.Transaction -> %w", err)
	}

	return a, nil
}

func (d *ActivityDAO) FindByID(ctx context.Context, id uint) (Activity, error) {
	var a Activity

	err := d.db.WithContext(ctx).
		Preload("Organizer").
		Preload("Category").
		First(&a, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Activity{}, ErrActivityNotFound
		}

		return Activity{}, fmt.Errorf("d.db.First -> %w", err)
	}

	return a, nil
}

func (d *ActivityDAO) Update(ctx context.Context, a Activity) (Activity, error) {
	err := d.db.WithContext(ctx).Save(&a).Error
	if err != nil {
		return Activity{}, fmt.Errorf("d.db.Save -> %w", err)
	}

	return a, nil
}

func (d *ActivityDAO) UpdateStatus(ctx context.Context, id uint, status string) error {
	err := d.db.WithContext(ctx).
		Model(&Activity{}).
		Where("id = ?", id).
		UpdateColumn("status", status).Error
	if err != nil {
		return fmt.Errorf("d.db.UpdateColumn -> %w", err)
	}

	return nil
}

func (d *ActivityDAO) List(ctx context.Context, q ActivityQuery) ([]Activity, int64, error) {
	var (
		activities []Activity
		total      int64
	)

	if q.OrderBy == "" {
		q.OrderBy, q.Order = "created_at", "DESC"
	}

	tx := d.db.WithContext(ctx).Model(&Activity{})

	if q.CategoryID != 0 {
		tx = tx.Where("category_id = ?", q.CategoryID)
	}

	if q.OrganizerID != 0 {
		tx = tx.Where("organizer_id = ?", q.OrganizerID)
	}

	if len(q.Statuses) > 0 {
		if q.VisibleToUserID != 0 {
			tx = tx.Where("status IN ? OR organizer_id = ?", q.Statuses, q.VisibleToUserID)
		} else {
			tx = tx.Where("status IN ?", q.Statuses)
		}
	}

	err := tx.Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("d.db.Count -> %w", err)
	}

	err = tx.Order(fmt.Sprintf("%s %s", q.OrderBy, q.Order)).
		Offset((q.Page - 1) * q.PageSize).
		Limit(q.PageSize).
		Preload("Organizer").
		Preload("Category").
		Find(&activities).Error
	if err != nil {
		return nil, 0, fmt.Errorf("d.db.Find -> %w", err)
	}

	return activities, total, nil
}

func (d *ActivityDAO) InsertCategory(ctx context.Context, c ActivityCategory) (ActivityCategory, error) {
	err := d.db.WithContext(ctx).Create(&c).Error
	if err != nil {
		return ActivityCategory{}, fmt.Errorf("d.db.Create -> %w", err)
	}

	return c, nil
}

func (d *ActivityDAO) FindCategoryByID(ctx context.Context, id uint) (ActivityCategory, error) {
	var c ActivityCategory

	err := d.db.WithContext(ctx).First(&c, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ActivityCategory{}, ErrCategoryNotFound
		}

		return ActivityCategory{}, fmt.Errorf("d.db.First -> %w", err)
	}

	return c, nil
}

func (d *ActivityDAO) ListCategories(ctx context.Context) ([]ActivityCategory, error) {
	var categories []ActivityCategory

	err := d.db.WithContext(ctx).Order("id ASC").Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("d.db.Find -> %w", err)
	}

	return categories, nil
}
