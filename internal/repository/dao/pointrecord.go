package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type PointRecord struct {
	ID                uint    `gorm:"primaryKey"`
	UserID            uint    `gorm:"not null;index"`
	Points            int     `gorm:"not null"`
	Description       string  `gorm:"size:255;not null"`
	RelatedEntityType *string `gorm:"size:50"`
	RelatedEntityID   *uint
	CreatedAt         time.Time
}

type PointsDAO struct {
	db *gorm.DB
}

func NewPointsDAO(db *gorm.DB) *PointsDAO {
	return &PointsDAO{
		db: db,
	}
}

// AddPoints appends the ledger record and applies the delta to the user's
// balance in one transaction, keeping the two consistent.
func (d *PointsDAO) AddPoints(ctx context.Context, r PointRecord) (PointRecord, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&User{}).
			Where("id = ?", r.UserID).
			UpdateColumn("points", gorm.Expr("points + ?", r.Points))
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			return ErrUserNotFound
		}

		return tx.Create(&r).Error
	})
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return PointRecord{}, ErrUserNotFound
		}

		return PointRecord{}, fmt.Errorf("d.db.Transaction -> %w", err)
	}

	return r, nil
}

// ListByUser returns a page of the user's point records, newest first.
func (d *PointsDAO) ListByUser(ctx context.Context, userID uint, page, pageSize int) ([]PointRecord, int64, error) {
	var (
		records []PointRecord
		total   int64
	)

	tx := d.db.WithContext(ctx).
		Model(&PointRecord{}).
		Where("user_id = ?", userID)

	err := tx.Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("d.db.Count -> %w", err)
	}

	err = tx.Order("created_at DESC, id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&records).Error
	if err != nil {
		return nil, 0, fmt.Errorf("d.db.Find -> %w", err)
	}

	return records, total, nil
}
