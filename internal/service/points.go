package service

import (
	"context"
	"fmt"

	"github.com/rdfzsc/campus-api/internal/domain"
)

type PointsRepository interface {
	AddPoints(ctx context.Context, record domain.PointRecord) (domain.PointRecord, error)
	ListByUser(ctx context.Context, userID uint, page, pageSize int) ([]domain.PointRecord, int64, error)
}

type PointsService struct {
	repo  PointsRepository
	uRepo UserRepository
}

func NewPointsService(repo PointsRepository, uRepo UserRepository) *PointsService {
	return &PointsService{
		repo:  repo,
		uRepo: uRepo,
	}
}

// AddPoints appends a ledger record and moves the user's balance by the
// record's delta, both in one transaction. Admin only.
func (s *PointsService) AddPoints(ctx context.Context, actor domain.User, record domain.PointRecord) (domain.PointRecord, error) {
	if actor.Role != domain.RoleAdmin {
		return domain.PointRecord{}, ErrPermissionDenied
	}

	target, err := s.uRepo.FindByID(ctx, record.UserID)
	if err != nil {
		return domain.PointRecord{}, fmt.Errorf("s.uRepo.FindByID -> %w", err)
	}

	if target.Role == domain.RoleDeleted {
		return domain.PointRecord{}, ErrUserNotFound
	}

	created, err := s.repo.AddPoints(ctx, record)
	if err != nil {
		return domain.PointRecord{}, fmt.Errorf("s.repo.AddPoints -> %w", err)
	}

	return created, nil
}

// ListRecords returns a page of a user's ledger, newest first. Owner or
// admin only.
func (s *PointsService) ListRecords(ctx context.Context, actor domain.User, userID uint, page, pageSize int) ([]domain.PointRecord, int64, error) {
	if actor.ID != userID && actor.Role != domain.RoleAdmin {
		return nil, 0, ErrPermissionDenied
	}

	if _, err := s.uRepo.FindByID(ctx, userID); err != nil {
		return nil, 0, fmt.Errorf("s.uRepo.FindByID -> %w", err)
	}

	records, total, err := s.repo.ListByUser(ctx, userID, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("s.repo.ListByUser -> %w", err)
	}

	return records, total, nil
}
