package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rdfzsc/campus-api/internal/domain"
	"github.com/rdfzsc/campus-api/internal/repository"
)

var (
	ErrActivityNotFound       = repository.ErrActivityNotFound
	ErrCategoryNotFound       = repository.ErrCategoryNotFound
	ErrActivityAlreadyDeleted = errors.New("activity is already deleted")
	ErrRestrictedStatusFilter = errors.New("status filter not permitted")
)

// ActivityUpdate carries the optional fields of an activity update. Nil
// means the field is left unchanged. A negative MaxParticipants clears
// the capacity limit.
type ActivityUpdate struct {
	Title           *string
	Description     *string
	CategoryID      *uint
	Location        *string
	StartDate       *time.Time
	EndDate         *time.Time
	MaxParticipants *int
	FeaturedImage   *string
	Status          *domain.ActivityStatus
}

// ListActivitiesQuery narrows and orders the public activity listing.
type ListActivitiesQuery struct {
	Page     int
	PageSize int
	OrderBy  string
	Order    string

	CategoryID  uint
	OrganizerID uint
	Status      domain.ActivityStatus
}

type ActivityRepository interface {
	Create(ctx context.Context, activity domain.Activity) (domain.Activity, error)
	FindByID(ctx context.Context, id uint) (domain.Activity, error)
	Update(ctx context.Context, activity domain.Activity) (domain.Activity, error)
	UpdateStatus(ctx context.Context, id uint, status domain.ActivityStatus) error
	List(ctx context.Context, q repository.ActivityQuery) ([]domain.Activity, int64, error)
	CreateCategory(ctx context.Context, category domain.ActivityCategory) (domain.ActivityCategory, error)
	FindCategoryByID(ctx context.Context, id uint) (domain.ActivityCategory, error)
	ListCategories(ctx context.Context) ([]domain.ActivityCategory, error)
}

type ActivityService struct {
	repo ActivityRepository
}

func NewActivityService(repo ActivityRepository) *ActivityService {
	return &ActivityService{
		repo: repo,
	}
}

// visibleStatuses is what non-admins see unless they organized the
// activity themselves.
var visibleStatuses = []domain.ActivityStatus{domain.StatusApproved, domain.StatusCompleted}

func isPubliclyVisible(status domain.ActivityStatus) bool {
	return status == domain.StatusApproved || status == domain.StatusCompleted
}

// CreateActivity stores a new activity as pending and enrolls its
// organizer as the first participant.
func (s *ActivityService) CreateActivity(ctx context.Context, actor domain.User, activity domain.Activity) (domain.Activity, error) {
	if !actor.Role.CanParticipate() {
		return domain.Activity{}, ErrPermissionDenied
	}

	if _, err := s.repo.FindCategoryByID(ctx, activity.CategoryID); err != nil {
		return domain.Activity{}, fmt.Errorf("s.repo.FindCategoryByID -> %w", err)
	}

	activity.OrganizerID = actor.ID
	activity.Status = domain.StatusPending

	created, err := s.repo.Create(ctx, activity)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// GetActivity hides pending, rejected and deleted activities from
// everyone but admins and the organizer, answering as if they never
// existed.
func (s *ActivityService) GetActivity(ctx context.Context, actor domain.User, id uint) (domain.Activity, error) {
	activity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if !s.canSee(actor, activity) {
		return domain.Activity{}, ErrActivityNotFound
	}

	return activity, nil
}

func (s *ActivityService) ListActivities(ctx context.Context, actor domain.User, q ListActivitiesQuery) ([]domain.Activity, int64, error) {
	query := repository.ActivityQuery{
		Page:        q.Page,
		PageSize:    q.PageSize,
		OrderBy:     q.OrderBy,
		Order:       q.Order,
		CategoryID:  q.CategoryID,
		OrganizerID: q.OrganizerID,
	}

	if q.Status != "" {
		if actor.Role != domain.RoleAdmin && !isPubliclyVisible(q.Status) {
			return nil, 0, ErrRestrictedStatusFilter
		}

		query.Statuses = []domain.ActivityStatus{q.Status}
	} else if actor.Role != domain.RoleAdmin {
		query.Statuses = visibleStatuses
		query.VisibleToUserID = actor.ID
	}

	activities, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("s.repo.List -> %w", err)
	}

	return activities, total, nil
}

// UpdateActivity edits an activity. Edits by the organizer push the
// activity back to pending for re-approval unless an admin sets the
// status explicitly.
func (s *ActivityService) UpdateActivity(ctx context.Context, actor domain.User, id uint, upd ActivityUpdate) (domain.Activity, error) {
	activity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	// Writes answer 403 for non-owners; only the single-activity read
	// masks hidden activities as not found.
	if actor.Role != domain.RoleAdmin && actor.ID != activity.OrganizerID {
		return domain.Activity{}, ErrPermissionDenied
	}

	// Once out of the editable states only admins may touch it.
	if actor.Role != domain.RoleAdmin &&
		(activity.Status == domain.StatusApproved ||
			activity.Status == domain.StatusCompleted ||
			activity.Status == domain.StatusDeleted) {
		return domain.Activity{}, ErrPermissionDenied
	}

	if upd.Status != nil && actor.Role != domain.RoleAdmin {
		return domain.Activity{}, ErrPermissionDenied
	}

	if upd.CategoryID != nil && *upd.CategoryID != activity.CategoryID {
		if _, err = s.repo.FindCategoryByID(ctx, *upd.CategoryID); err != nil {
			return domain.Activity{}, fmt.Errorf("s.repo.FindCategoryByID -> %w", err)
		}
		activity.CategoryID = *upd.CategoryID
	}

	if upd.Title != nil {
		activity.Title = *upd.Title
	}

	if upd.Description != nil {
		activity.Description = *upd.Description
	}

	if upd.Location != nil {
		activity.Location = *upd.Location
	}

	if upd.StartDate != nil {
		activity.StartDate = *upd.StartDate
	}

	if upd.EndDate != nil {
		activity.EndDate = *upd.EndDate
	}

	if upd.MaxParticipants != nil {
		if *upd.MaxParticipants < 0 {
			activity.MaxParticipants = nil
		} else {
			limit := *upd.MaxParticipants
			activity.MaxParticipants = &limit
		}
	}

	if upd.FeaturedImage != nil {
		activity.FeaturedImage = upd.FeaturedImage
	}

	if upd.Status != nil {
		activity.Status = *upd.Status
	} else {
		activity.Status = domain.StatusPending
	}

	updated, err := s.repo.Update(ctx, activity)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// DeleteActivity flips the status to deleted. Participations are kept.
func (s *ActivityService) DeleteActivity(ctx context.Context, actor domain.User, id uint) error {
	activity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if actor.Role != domain.RoleAdmin && actor.ID != activity.OrganizerID {
		return ErrPermissionDenied
	}

	if activity.Status == domain.StatusDeleted {
		return ErrActivityAlreadyDeleted
	}

	if err = s.repo.UpdateStatus(ctx, id, domain.StatusDeleted); err != nil {
		return fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	return nil
}

func (s *ActivityService) CreateCategory(ctx context.Context, actor domain.User, category domain.ActivityCategory) (domain.ActivityCategory, error) {
	if actor.Role != domain.RoleAdmin {
		return domain.ActivityCategory{}, ErrPermissionDenied
	}

	created, err := s.repo.CreateCategory(ctx, category)
	if err != nil {
		return domain.ActivityCategory{}, fmt.Errorf("s.repo.CreateCategory -> %w", err)
	}

	return created, nil
}

func (s *ActivityService) ListCategories(ctx context.Context) ([]domain.ActivityCategory, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListCategories -> %w", err)
	}

	return categories, nil
}

func (s *ActivityService) canSee(actor domain.User, activity domain.Activity) bool {
	if isPubliclyVisible(activity.Status) {
		return true
	}

	return actor.Role == domain.RoleAdmin || actor.ID == activity.OrganizerID
}
