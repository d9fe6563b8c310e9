package repository

import (
	"context"
	"fmt"

	"github.com/rdfzsc/campus-api/internal/domain"
	"github.com/rdfzsc/campus-api/internal/repository/dao"
)

var (
	ErrAlreadyJoined = dao.ErrAlreadyJoined
	ErrActivityFull  = dao.ErrActivityFull
	ErrNotInActivity = dao.ErrNotInActivity
)

// JoinedActivityQuery mirrors dao.JoinedActivityQuery at the domain level.
type JoinedActivityQuery struct {
	Page     int
	PageSize int
	OrderBy  string
	Order    string

	UserID     uint
	CategoryID uint
	Status     domain.ActivityStatus

	VisibleStatuses []domain.ActivityStatus
	OrganizerEscape uint
}

type ParticipationDAO interface {
	Join(ctx context.Context, activityID, userID uint, maxParticipants *int) error
	Leave(ctx context.Context, activityID, userID uint) error
	Find(ctx context.Context, activityID, userID uint) (dao.ActivityParticipation, error)
	CountByActivity(ctx context.Context, activityID uint) (int64, error)
	ListByActivity(ctx context.Context, activityID uint, page, pageSize int) ([]dao.ActivityParticipation, int64, error)
	ListJoined(ctx context.Context, q dao.JoinedActivityQuery) ([]dao.ActivityParticipation, int64, error)
}

type ParticipationRepository struct {
	dao   ParticipationDAO
	uRepo *UserRepository
	aRepo *ActivityRepository
}

func NewParticipationRepository(dao ParticipationDAO, uRepo *UserRepository, aRepo *ActivityRepository) *ParticipationRepository {
	return &ParticipationRepository{
		dao:   dao,
		uRepo: uRepo,
		aRepo: aRepo,
	}
}

// Join enrolls the user, enforcing the capacity limit atomically when one
// is set. Pass a nil limit to bypass capacity enforcement.
func (r *ParticipationRepository) Join(ctx context.Context, activityID, userID uint, maxParticipants *int) error {
	err := r.dao.Join(ctx, activityID, userID, maxParticipants)
	if err != nil {
		return fmt.Errorf("r.dao.Join -> %w", err)
	}

	return nil
}

func (r *ParticipationRepository) Leave(ctx context.Context, activityID, userID uint) error {
	err := r.dao.Leave(ctx, activityID, userID)
	if err != nil {
		return fmt.Errorf("r.dao.Leave -> %w", err)
	}

	return nil
}

func (r *ParticipationRepository) Find(ctx context.Context, activityID, userID uint) (domain.ActivityParticipation, error) {
	found, err := r.dao.Find(ctx, activityID, userID)
	if err != nil {
		return domain.ActivityParticipation{}, fmt.Errorf("r.dao.Find -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ParticipationRepository) CountByActivity(ctx context.Context, activityID uint) (int64, error) {
	count, err := r.dao.CountByActivity(ctx, activityID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountByActivity -> %w", err)
	}

	return count, nil
}

func (r *ParticipationRepository) ListByActivity(ctx context.Context, activityID uint, page, pageSize int) ([]domain.ActivityParticipation, int64, error) {
	found, total, err := r.dao.ListByActivity(ctx, activityID, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.ListByActivity -> %w", err)
	}

	participations := make([]domain.ActivityParticipation, 0, len(found))
	for _, p := range found {
		participations = append(participations, r.daoToDomain(p))
	}

	return participations, total, nil
}

func (r *ParticipationRepository) ListJoined(ctx context.Context, q JoinedActivityQuery) ([]domain.ActivityParticipation, int64, error) {
	statuses := make([]string, 0, len(q.VisibleStatuses))
	for _, s := range q.VisibleStatuses {
		statuses = append(statuses, string(s))
	}

	found, total, err := r.dao.ListJoined(ctx, dao.JoinedActivityQuery{
		Page:            q.Page,
		PageSize:        q.PageSize,
		OrderBy:         q.OrderBy,
		Order:           q.Order,
		UserID:          q.UserID,
		CategoryID:      q.CategoryID,
		Status:          string(q.Status),
		VisibleStatuses: statuses,
		OrganizerEscape: q.OrganizerEscape,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.ListJoined -> %w", err)
	}

	participations := make([]domain.ActivityParticipation, 0, len(found))
	for _, p := range found {
		participations = append(participations, r.daoToDomain(p))
	}

	return participations, total, nil
}

func (r *ParticipationRepository) daoToDomain(p dao.ActivityParticipation) domain.ActivityParticipation {
	return domain.ActivityParticipation{
		ID:         p.ID,
		UserID:     p.UserID,
		User:       r.uRepo.daoToDomain(p.User),
		ActivityID: p.ActivityID,
		Activity:   r.aRepo.daoToDomain(p.Activity),
		JoinedAt:   p.JoinedAt,
	}
}
