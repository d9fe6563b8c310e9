package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrUsernameExists = errors.New("username already exists")
	ErrEmailExists    = errors.New("email already exists")
)

type User struct {
	ID          uint   `gorm:"primaryKey"`
	Username    string `gorm:"size:255;uniqueIndex;not null"`
	Email       string `gorm:"size:255;uniqueIndex;not null"`
	Password    string `gorm:"size:255;not null"`
	Grade       string `gorm:"size:255"`
	ClassName   string `gorm:"size:255"`
	MinecraftID string `gorm:"size:16"`
	Role        string `gorm:"size:20;not null;default:member"`
	IsVerified  bool   `gorm:"not null;default:false"`
	Bio         string `gorm:"type:text"`
	Points      int    `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	LastLoginAt *time.Time
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		db: db,
	}
}

func (d *UserDAO) Insert(ctx context.Context, u User) (User, error) {
	err := d.db.WithContext(ctx).Create(&u).Error
	if err != nil {
		return User{}, d.translateUniqueErr(err)
	}

	return u, nil
}

func (d *UserDAO) FindByID(ctx context.Context, id uint) (User, error) {
	var u User

	err := d.db.WithContext(ctx).First(&u, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, fmt.Errorf("d.db.First -> %w", err)
	}

	return u, nil
}

func (d *UserDAO) FindByUsername(ctx context.Context, username string) (User, error) {
	var u User

	err := d.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, fmt.Errorf("d.db.First -> %w", err)
	}

	return u, nil
}

func (d *UserDAO) FindByEmail(ctx context.Context, email string) (User, error) {
	var u User

	err := d.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, fmt.Errorf("d.db.First -> %w", err)
	}

	return u, nil
}

// List returns a page of users ordered by id together with the total count.
func (d *UserDAO) List(ctx context.Context, page, pageSize int) ([]User, int64, error) {
	var (
		users []User
		total int64
	)

	tx := d.db.WithContext(ctx).Model(&User{})

	err := tx.Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("d.db.Count -> %w", err)
	}

	err = tx.Order("id ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&users).Error
	if err != nil {
		return nil, 0, fmt.Errorf("d.db.Find -> %w", err)
	}

	return users, total, nil
}

func (d *UserDAO) Update(ctx context.Context, u User) (User, error) {
	err := d.db.WithContext(ctx).Save(&u).Error
	if err != nil {
		return User{}, d.translateUniqueErr(err)
	}

	return u, nil
}

func (d *UserDAO) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	err := d.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", id).
		UpdateColumn("last_login_at", at).Error
	if err != nil {
		return fmt.Errorf("d.db.UpdateColumn -> %w", err)
	}

	return nil
}

func (d *UserDAO) UpdatePassword(ctx context.Context, id uint, password string) error {
	err := d.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", id).
		UpdateColumn("password", password).Error
	if err != nil {
		return fmt.Errorf("d.db.UpdateColumn -> %w", err)
	}

	return nil
}

func (d *UserDAO) UpdateRole(ctx context.Context, id uint, role string) error {
	err := d.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", id).
		UpdateColumn("role", role).Error
	if err != nil {
		return fmt.Errorf("d.db.UpdateColumn -> %w", err)
	}

	return nil
}

func (d *UserDAO) translateUniqueErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		switch pgErr.ConstraintName {
		case "idx_users_username":
			return ErrUsernameExists
		case "idx_users_email":
			return ErrEmailExists
		}
	}

	return fmt.Errorf("d.db unique check -> %w", err)
}
