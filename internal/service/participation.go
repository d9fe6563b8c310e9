package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rdfzsc/campus-api/internal/domain"
	"github.com/rdfzsc/campus-api/internal/repository"
)

var (
	ErrAlreadyJoined        = repository.ErrAlreadyJoined
	ErrActivityFull         = repository.ErrActivityFull
	ErrNotInActivity        = repository.ErrNotInActivity
	ErrActivityNotJoinable  = errors.New("activity is not open for joining")
	ErrOrganizerCannotLeave = errors.New("organizer cannot leave own activity")
)

// ListJoinedQuery narrows and orders a user's joined-activity listing.
type ListJoinedQuery struct {
	Page     int
	PageSize int
	OrderBy  string
	Order    string

	UserID     uint
	CategoryID uint
	Status     domain.ActivityStatus
}

type ParticipationRepository interface {
	Join(ctx context.Context, activityID, userID uint, maxParticipants *int) error
	Leave(ctx context.Context, activityID, userID uint) error
	ListByActivity(ctx context.Context, activityID uint, page, pageSize int) ([]domain.ActivityParticipation, int64, error)
	ListJoined(ctx context.Context, q repository.JoinedActivityQuery) ([]domain.ActivityParticipation, int64, error)
}

type ParticipationService struct {
	repo  ParticipationRepository
	aRepo ActivityRepository
	uRepo UserRepository
}

func NewParticipationService(repo ParticipationRepository, aRepo ActivityRepository, uRepo UserRepository) *ParticipationService {
	return &ParticipationService{
		repo:  repo,
		aRepo: aRepo,
		uRepo: uRepo,
	}
}

// Join enrolls targetUserID, or the actor when targetUserID is zero.
// Only admins may act on behalf of another user, and only admins bypass
// the approved-status and capacity gates. The duplicate and capacity
// checks run inside the insert transaction.
func (s *ParticipationService) Join(ctx context.Context, actor domain.User, activityID, targetUserID uint) error {
	target, err := s.resolveTarget(ctx, actor, targetUserID)
	if err != nil {
		return err
	}

	activity, err := s.aRepo.FindByID(ctx, activityID)
	if err != nil {
		return fmt.Errorf("s.aRepo.FindByID -> %w", err)
	}

	var maxParticipants *int
	if actor.Role != domain.RoleAdmin {
		if activity.Status != domain.StatusApproved {
			return ErrActivityNotJoinable
		}

		maxParticipants = activity.MaxParticipants
	}

	if err = s.repo.Join(ctx, activityID, target.ID, maxParticipants); err != nil {
		return fmt.Errorf("s.repo.Join -> %w", err)
	}

	return nil
}

// Leave removes targetUserID, or the actor when targetUserID is zero,
// from the activity. The organizer's own membership row can never be
// removed.
func (s *ParticipationService) Leave(ctx context.Context, actor domain.User, activityID, targetUserID uint) error {
	target, err := s.resolveTarget(ctx, actor, targetUserID)
	if err != nil {
		return err
	}

	activity, err := s.aRepo.FindByID(ctx, activityID)
	if err != nil {
		return fmt.Errorf("s.aRepo.FindByID -> %w", err)
	}

	if activity.Status == domain.StatusDeleted {
		return ErrActivityAlreadyDeleted
	}

	if actor.Role != domain.RoleAdmin &&
		(activity.Status == domain.StatusPending || activity.Status == domain.StatusRejected) {
		return ErrPermissionDenied
	}

	if target.ID == activity.OrganizerID {
		return ErrOrganizerCannotLeave
	}

	if err = s.repo.Leave(ctx, activityID, target.ID); err != nil {
		return fmt.Errorf("s.repo.Leave -> %w", err)
	}

	return nil
}

// ListParticipants returns a page of an activity's members. Any
// authenticated caller may read the roster.
func (s *ParticipationService) ListParticipants(ctx context.Context, activityID uint, page, pageSize int) ([]domain.ActivityParticipation, int64, error) {
	if _, err := s.aRepo.FindByID(ctx, activityID); err != nil {
		return nil, 0, fmt.Errorf("s.aRepo.FindByID -> %w", err)
	}

	participations, total, err := s.repo.ListByActivity(ctx, activityID, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("s.repo.ListByActivity -> %w", err)
	}

	return participations, total, nil
}

// ListJoined returns a page of the activities a user has joined. Only
// the user themselves or an admin may ask, and non-admins only see
// approved or completed activities plus the ones they organized.
func (s *ParticipationService) ListJoined(ctx context.Context, actor domain.User, q ListJoinedQuery) ([]domain.ActivityParticipation, int64, error) {
	if actor.ID != q.UserID && actor.Role != domain.RoleAdmin {
		return nil, 0, ErrPermissionDenied
	}

	query := repository.JoinedActivityQuery{
		Page:       q.Page,
		PageSize:   q.PageSize,
		OrderBy:    q.OrderBy,
		Order:      q.Order,
		UserID:     q.UserID,
		CategoryID: q.CategoryID,
	}

	if q.Status != "" {
		if actor.Role != domain.RoleAdmin && !isPubliclyVisible(q.Status) {
			return nil, 0, ErrRestrictedStatusFilter
		}

		query.Status = q.Status
	} else if actor.Role != domain.RoleAdmin {
		query.VisibleStatuses = visibleStatuses
		query.OrganizerEscape = q.UserID
	}

	participations, total, err := s.repo.ListJoined(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("s.repo.ListJoined -> %w", err)
	}

	return participations, total, nil
}

// resolveTarget maps the optional on-behalf-of user id to a live user.
func (s *ParticipationService) resolveTarget(ctx context.Context, actor domain.User, targetUserID uint) (domain.User, error) {
	if targetUserID == 0 || targetUserID == actor.ID {
		return actor, nil
	}

	if actor.Role != domain.RoleAdmin {
		return domain.User{}, ErrPermissionDenied
	}

	target, err := s.uRepo.FindByID(ctx, targetUserID)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.uRepo.FindByID -> %w", err)
	}

	if target.Role == domain.RoleDeleted {
		return domain.User{}, ErrUserNotFound
	}

	return target, nil
}
