package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/rdfzsc/campus-api/internal/domain"
	"github.com/rdfzsc/campus-api/internal/repository/dao"
)

var (
	ErrUserNotFound   = dao.ErrUserNotFound
	ErrUsernameExists = dao.ErrUsernameExists
	ErrEmailExists    = dao.ErrEmailExists
)

type UserDAO interface {
	Insert(ctx context.Context, u dao.User) (dao.User, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByUsername(ctx context.Context, username string) (dao.User, error)
	FindByEmail(ctx context.Context, email string) (dao.User, error)
	List(ctx context.Context, page, pageSize int) ([]dao.User, int64, error)
	Update(ctx context.Context, u dao.User) (dao.User, error)
	UpdateLastLogin(ctx context.Context, id uint, at time.Time) error
	UpdatePassword(ctx context.Context, id uint, password string) error
	UpdateRole(ctx context.Context, id uint, role string) error
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	created, err := r.dao.Insert(ctx, r.domainToDAO(user))
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	found, err := r.dao.FindByUsername(ctx, username)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByUsername -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) List(ctx context.Context, page, pageSize int) ([]domain.User, int64, error) {
	found, total, err := r.dao.List(ctx, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.List -> %w", err)
	}

	users := make([]domain.User, 0, len(found))
	for _, u := range found {
		users = append(users, r.daoToDomain(u))
	}

	return users, total, nil
}

func (r *UserRepository) Update(ctx context.Context, user domain.User) (domain.User, error) {
	updated, err := r.dao.Update(ctx, r.domainToDAO(user))
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	err := r.dao.UpdateLastLogin(ctx, id, at)
	if err != nil {
		return fmt.Errorf("r.dao.UpdateLastLogin -> %w", err)
	}

	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uint, password string) error {
	err := r.dao.UpdatePassword(ctx, id, password)
	if err != nil {
		return fmt.Errorf("r.dao.UpdatePassword -> %w", err)
	}

	return nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, id uint, role domain.Role) error {
	err := r.dao.UpdateRole(ctx, id, string(role))
	if err != nil {
		return fmt.Errorf("r.dao.UpdateRole -> %w", err)
	}

	return nil
}

func (r *UserRepository) daoToDomain(u dao.User) domain.User {
	var lastLogin time.Time
	if u.LastLoginAt != nil {
		lastLogin = *u.LastLoginAt
	}

	return domain.User{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Password:    u.Password,
		Grade:       u.Grade,
		ClassName:   u.ClassName,
		MinecraftID: u.MinecraftID,
		Role:        domain.Role(u.Role),
		IsVerified:  u.IsVerified,
		Bio:         u.Bio,
		Points:      u.Points,
		CreatedAt:   u.CreatedAt,
		LastLoginAt: lastLogin,
	}
}

func (r *UserRepository) domainToDAO(u domain.User) dao.User {
	var lastLogin *time.Time
	if !u.LastLoginAt.IsZero() {
		at := u.LastLoginAt
		lastLogin = &at
	}

	return dao.User{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Password:    u.Password,
		Grade:       u.Grade,
		ClassName:   u.ClassName,
		MinecraftID: u.MinecraftID,
		Role:        string(u.Role),
		IsVerified:  u.IsVerified,
		Bio:         u.Bio,
		Points:      u.Points,
		CreatedAt:   u.CreatedAt,
		LastLoginAt: lastLogin,
	}
}
