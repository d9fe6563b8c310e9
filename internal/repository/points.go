package repository

import (
	"context"
	"fmt"

	"github.com/rdfzsc/campus-api/internal/domain"
	"github.com/rdfzsc/campus-api/internal/repository/dao"
)

type PointsDAO interface {
	AddPoints(ctx context.Context, r dao.PointRecord) (dao.PointRecord, error)
	ListByUser(ctx context.Context, userID uint, page, pageSize int) ([]dao.PointRecord, int64, error)
}

type PointsRepository struct {
	dao PointsDAO
}

func NewPointsRepository(dao PointsDAO) *PointsRepository {
	return &PointsRepository{
		dao: dao,
	}
}

// AddPoints appends the record and applies its delta to the user's balance
// in one transaction.
func (r *PointsRepository) AddPoints(ctx context.Context, record domain.PointRecord) (domain.PointRecord, error) {
	created, err := r.dao.AddPoints(ctx, dao.PointRecord{
		UserID:            record.UserID,
		Points:            record.Points,
		Description:       record.Description,
		RelatedEntityType: record.RelatedEntityType,
		RelatedEntityID:   record.RelatedEntityID,
	})
	if err != nil {
		return domain.PointRecord{}, fmt.Errorf("r.dao.AddPoints -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *PointsRepository) ListByUser(ctx context.Context, userID uint, page, pageSize int) ([]domain.PointRecord, int64, error) {
	found, total, err := r.dao.ListByUser(ctx, userID, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.ListByUser -> %w", err)
	}

	records := make([]domain.PointRecord, 0, len(found))
	for _, rec := range found {
		records = append(records, r.daoToDomain(rec))
	}

	return records, total, nil
}

func (r *PointsRepository) daoToDomain(rec dao.PointRecord) domain.PointRecord {
	return domain.PointRecord{
		ID:                rec.ID,
		UserID:            rec.UserID,
		Points:            rec.Points,
		Description:       rec.Description,
		RelatedEntityType: rec.RelatedEntityType,
		RelatedEntityID:   rec.RelatedEntityID,
		CreatedAt:         rec.CreatedAt,
	}
}
