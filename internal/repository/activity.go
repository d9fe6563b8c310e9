package repository

import (
	"context"
	"fmt"

	"github.com/rdfzsc/campus-api/internal/domain"
	"github.com/rdfzsc/campus-api/internal/repository/dao"
)

var (
	ErrActivityNotFound = dao.ErrActivityNotFound
	ErrCategoryNotFound = dao.ErrCategoryNotFound
)

// ActivityQuery mirrors dao.ActivityQuery at the domain level.
type ActivityQuery struct {
	Page     int
	PageSize int
	OrderBy  string
	Order    string

	CategoryID  uint
	OrganizerID uint

	Statuses        []domain.ActivityStatus
	VisibleToUserID uint
}

type ActivityDAO interface {
	Insert(ctx context.Context, a dao.Activity) (dao.Activity, error)
	FindByID(ctx context.Context, id uint) (dao.Activity, error)
	Update(ctx context.Context, a dao.Activity) (dao.Activity, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	List(ctx context.Context, q dao.ActivityQuery) ([]dao.Activity, int64, error)
	InsertCategory(ctx context.Context, c dao.ActivityCategory) (dao.ActivityCategory, error)
	FindCategoryByID(ctx context.Context, id uint) (dao.ActivityCategory, error)
	ListCategories(ctx context.Context) ([]dao.ActivityCategory, error)
}

type ActivityRepository struct {
	dao   ActivityDAO
	uRepo *UserRepository
}

func NewActivityRepository(dao ActivityDAO, uRepo *UserRepository) *ActivityRepository {
	return &ActivityRepository{
		dao:   dao,
		uRepo: uRepo,
	}
}

func (r *ActivityRepository) Create(ctx context.Context, activity domain.Activity) (domain.Activity, error) {
	created, err := r.dao.Insert(ctx, r.domainToDAO(activity))
	if err != nil {
		return domain.Activity{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.FindByID(ctx, created.ID)
}

func (r *ActivityRepository) FindByID(ctx context.Context, id uint) (domain.Activity, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ActivityRepository) Update(ctx context.Context, activity domain.Activity) (domain.Activity, error) {
	_, err := r.dao.Update(ctx, r.domainToDAO(activity))
	if err != nil {
		return domain.Activity{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.FindByID(ctx, activity.ID)
}

func (r *ActivityRepository) UpdateStatus(ctx context.Context, id uint, status domain.ActivityStatus) error {
	err := r.dao.UpdateStatus(ctx, id, string(status))
	if err != nil {
		return fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return nil
}

func (r *ActivityRepository) List(ctx context.Context, q ActivityQuery) ([]domain.Activity, int64, error) {
	statuses := make([]string, 0, len(q.Statuses))
	for _, s := range q.Statuses {
		statuses = append(statuses, string(s))
	}

	found, total, err := r.dao.List(ctx, dao.ActivityQuery{
		Page:            q.Page,
		PageSize:        q.PageSize,
		OrderBy:         q.OrderBy,
		Order:           q.Order,
		CategoryID:      q.CategoryID,
		OrganizerID:     q.OrganizerID,
		Statuses:        statuses,
		VisibleToUserID: q.VisibleToUserID,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.List -> %w", err)
	}

	activities := make([]domain.Activity, 0, len(found))
	for _, a := range found {
		activities = append(activities, r.daoToDomain(a))
	}

	return activities, total, nil
}

func (r *ActivityRepository) CreateCategory(ctx context.Context, category domain.ActivityCategory) (domain.ActivityCategory, error) {
	created, err := r.dao.InsertCategory(ctx, dao.ActivityCategory{
		Name:        category.Name,
		Description: category.Description,
	})
	if err != nil {
		return domain.ActivityCategory{}, fmt.Errorf("r.dao.InsertCategory -> %w", err)
	}

	return r.categoryDaoToDomain(created), nil
}

func (r *ActivityRepository) FindCategoryByID(ctx context.Context, id uint) (domain.ActivityCategory, error) {
	found, err := r.dao.FindCategoryByID(ctx, id)
	if err != nil {
		return domain.ActivityCategory{}, fmt.Errorf("r.dao.FindCategoryByID -> %w", err)
	}

	return r.categoryDaoToDomain(found), nil
}

func (r *ActivityRepository) ListCategories(ctx context.Context) ([]domain.ActivityCategory, error) {
	found, err := r.dao.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListCategories -> %w", err)
	}

	categories := make([]domain.ActivityCategory, 0, len(found))
	for _, c := range found {
		categories = append(categories, r.categoryDaoToDomain(c))
	}

	return categories, nil
}

func (r *ActivityRepository) daoToDomain(a dao.Activity) domain.Activity {
	return domain.Activity{
		ID:              a.ID,
		Title:           a.Title,
		Description:     a.Description,
		OrganizerID:     a.OrganizerID,
		Organizer:       r.uRepo.daoToDomain(a.Organizer),
		CategoryID:      a.CategoryID,
		Category:        r.categoryDaoToDomain(a.Category),
		Location:        a.Location,
		StartDate:       a.StartDate,
		EndDate:         a.EndDate,
		MaxParticipants: a.MaxParticipants,
		FeaturedImage:   a.FeaturedImage,
		Status:          domain.ActivityStatus(a.Status),
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func (r *ActivityRepository) domainToDAO(a domain.Activity) dao.Activity {
	return dao.Activity{
		ID:              a.ID,
		Title:           a.Title,
		Description:     a.Description,
		OrganizerID:     a.OrganizerID,
		CategoryID:      a.CategoryID,
		Location:        a.Location,
		StartDate:       a.StartDate,
		EndDate:         a.EndDate,
		MaxParticipants: a.MaxParticipants,
		FeaturedImage:   a.FeaturedImage,
		Status:          string(a.Status),
		CreatedAt:       a.CreatedAt,
	}
}

func (r *ActivityRepository) categoryDaoToDomain(c dao.ActivityCategory) domain.ActivityCategory {
	return domain.ActivityCategory{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
	}
}
