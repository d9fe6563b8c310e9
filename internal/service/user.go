package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rdfzsc/campus-api/internal/domain"
	"github.com/rdfzsc/campus-api/internal/repository"
)

var (
	ErrPermissionDenied   = errors.New("permission denied")
	ErrUserAlreadyDeleted = errors.New("user is already deleted")
)

// UserUpdate carries the optional fields of a profile update. Nil means
// the field is left unchanged.
type UserUpdate struct {
	Username    *string
	Email       *string
	Grade       *string
	ClassName   *string
	MinecraftID *string
	Bio         *string
	Role        *domain.Role
	IsVerified  *bool
}

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	List(ctx context.Context, page, pageSize int) ([]domain.User, int64, error)
	Update(ctx context.Context, user domain.User) (domain.User, error)
	UpdateRole(ctx context.Context, id uint, role domain.Role) error
}

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, actor domain.User, page, pageSize int) ([]domain.User, int64, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, 0, ErrPermissionDenied
	}

	users, total, err := s.repo.List(ctx, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("s.repo.List -> %w", err)
	}

	return users, total, nil
}

// UpdateUser applies a profile update. Only admins may touch another
// user's profile or change role and verification flags.
func (s *UserService) UpdateUser(ctx context.Context, actor domain.User, id uint, upd UserUpdate) (domain.User, error) {
	if actor.ID != id && actor.Role != domain.RoleAdmin {
		return domain.User{}, ErrPermissionDenied
	}

	if (upd.Role != nil || upd.IsVerified != nil) && actor.Role != domain.RoleAdmin {
		return domain.User{}, ErrPermissionDenied
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if upd.Username != nil && *upd.Username != user.Username {
		if err = s.checkUsernameTaken(ctx, *upd.Username); err != nil {
			return domain.User{}, err
		}
		user.Username = *upd.Username
	}

	if upd.Email != nil && *upd.Email != user.Email {
		if err = s.checkEmailTaken(ctx, *upd.Email); err != nil {
			return domain.User{}, err
		}
		user.Email = *upd.Email
	}

	if upd.Grade != nil {
		user.Grade = *upd.Grade
	}

	if upd.ClassName != nil {
		user.ClassName = *upd.ClassName
	}

	if upd.MinecraftID != nil {
		user.MinecraftID = *upd.MinecraftID
	}

	if upd.Bio != nil {
		user.Bio = *upd.Bio
	}

	if upd.Role != nil {
		user.Role = *upd.Role
	}

	if upd.IsVerified != nil {
		user.IsVerified = *upd.IsVerified
	}

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// DeleteUser soft-deletes by flipping the role. Deleting an already
// deleted user is rejected so the operation is not silently idempotent.
func (s *UserService) DeleteUser(ctx context.Context, actor domain.User, id uint) error {
	if actor.Role != domain.RoleAdmin {
		return ErrPermissionDenied
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if user.Role == domain.RoleDeleted {
		return ErrUserAlreadyDeleted
	}

	if err = s.repo.UpdateRole(ctx, id, domain.RoleDeleted); err != nil {
		return fmt.Errorf("s.repo.UpdateRole -> %w", err)
	}

	return nil
}

func (s *UserService) checkUsernameTaken(ctx context.Context, username string) error {
	_, err := s.repo.FindByUsername(ctx, username)
	if err == nil {
		return ErrUsernameExists
	}

	if !errors.Is(err, repository.ErrUserNotFound) {
		return fmt.Errorf("s.repo.FindByUsername -> %w", err)
	}

	return nil
}

func (s *UserService) checkEmailTaken(ctx context.Context, email string) error {
	_, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return ErrEmailExists
	}

	if !errors.Is(err, repository.ErrUserNotFound) {
		return fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	return nil
}
