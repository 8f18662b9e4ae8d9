package repository

import (
	"context"
	"fmt"

	"github.com/yizeng/gab/gin/gorm/event-manager/internal/domain"
	"github.com/yizeng/gab/gin/gorm/event-manager/internal/repository/dao"
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User) (dao.User, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByEmail(ctx context.Context, email string) (dao.User, error)
	FindByGoogleID(ctx context.Context, googleID string) (dao.User, error)
	FindAll(ctx context.Context, role string, offset, limit int) ([]dao.User, int64, error)
	Update(ctx context.Context, id uint, changes dao.User) (dao.User, error)
	Delete(ctx context.Context, id uint) error
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
	created, err := r.dao.Insert(ctx, dao.User{
		Name:     user.Name,
		Email:    user.Email,
		Password: user.Password,
		GoogleID: strPtr(user.GoogleID),
		Role:     string(user.Role),
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", translate(err))
	}

	return userToDomain(created), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", translate(err))
	}

	return userToDomain(found), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByEmail -> %w", translate(err))
	}

	return userToDomain(found), nil
}

func (r *UserRepository) FindByGoogleID(ctx context.Context, googleID string) (domain.User, error) {
	found, err := r.dao.FindByGoogleID(ctx, googleID)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByGoogleID -> %w", translate(err))
	}

	return userToDomain(found), nil
}

func (r *UserRepository) FindAll(ctx context.Context, filter domain.UserFilter, page domain.Page) ([]domain.User, int64, error) {
	found, total, err := r.dao.FindAll(ctx, string(filter.Role), page.Offset(), page.Size)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.FindAll -> %w", translate(err))
	}

	users := make([]domain.User, 0, len(found))
	for _, u := range found {
		users = append(users, userToDomain(u))
	}

	return users, total, nil
}

func (r *UserRepository) Update(ctx context.Context, id uint, update domain.UserUpdate) (domain.User, error) {
	var changes dao.User
	if update.Name != nil {
		changes.Name = *update.Name
	}
	if update.Email != nil {
		changes.Email = *update.Email
	}
	if update.Role != nil {
		changes.Role = string(*update.Role)
	}

	updated, err := r.dao.Update(ctx, id, changes)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Update -> %w", translate(err))
	}

	return userToDomain(updated), nil
}

func (r *UserRepository) LinkGoogleID(ctx context.Context, id uint, googleID string) (domain.User, error) {
	updated, err := r.dao.Update(ctx, id, dao.User{GoogleID: &googleID})
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Update -> %w", translate(err))
	}

	return userToDomain(updated), nil
}

func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", translate(err))
	}

	return nil
}

func userToDomain(u dao.User) domain.User {
	return domain.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.Password,
		GoogleID:  strVal(u.GoogleID),
		Role:      domain.Role(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// userRef returns nil for associations that were not loaded.
func userRef(u dao.User) *domain.UserRef {
	if u.ID == 0 {
		return nil
	}

	return &domain.UserRef{ID: u.ID, Name: u.Name, Email: u.Email}
}
