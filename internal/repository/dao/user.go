package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

const uniqueUsersEmail = "uni_users_email"

type User struct {
	ID uint `gorm:"primaryKey"`

	Name     string  `gorm:"not null"`
	Email    string  `gorm:"unique;not null"`
	Password string  `gorm:"not null;default:''"`
	GoogleID *string `gorm:"uniqueIndex"`
	Role     string  `gorm:"not null;default:'user';index"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		db: db,
	}
}

func (d *UserDAO) Insert(ctx context.Context, user User) (User, error) {
	result := d.db.WithContext(ctx).Create(&user)
	if result.Error != nil {
		if isUniqueViolation(result.Error, uniqueUsersEmail) {
			return User{}, ErrUserEmailExists
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByID(ctx context.Context, id uint) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByEmail(ctx context.Context, email string) (User, error) {
	return d.findOne(ctx, "email = ?", email)
}

func (d *UserDAO) FindByGoogleID(ctx context.Context, googleID string) (User, error) {
	return d.findOne(ctx, "google_id = ?", googleID)
}

func (d *UserDAO) findOne(ctx context.Context, query string, args ...interface{}) (User, error) {
	var user User

	result := d.db.WithContext(ctx).Where(query, args...).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

// FindAll returns one page of users, newest first, optionally filtered by role.
func (d *UserDAO) FindAll(ctx context.Context, role string, offset, limit int) ([]User, int64, error) {
	scope := func(tx *gorm.DB) *gorm.DB {
		if role != "" {
			tx = tx.Where("role = ?", role)
		}
		return tx
	}

	var total int64
	if err := d.db.WithContext(ctx).Model(&User{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []User
	result := d.db.WithContext(ctx).Scopes(scope).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&users)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return users, total, nil
}

// Update writes the non-zero fields of changes.
func (d *UserDAO) Update(ctx context.Context, id uint, changes User) (User, error) {
	result := d.db.WithContext(ctx).Model(&User{ID: id}).Updates(changes)
	if result.Error != nil {
		if isUniqueViolation(result.Error, uniqueUsersEmail) {
			return User{}, ErrUserEmailExists
		}

		return User{}, result.Error
	}
	if result.RowsAffected == 0 {
		return User{}, ErrUserNotFound
	}

	return d.FindByID(ctx, id)
}

func (d *UserDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}
