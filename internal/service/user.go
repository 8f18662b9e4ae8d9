package service

import (
	"context"
	"fmt"

	"github.com/yizeng/gab/gin/gorm/event-manager/internal/domain"
)

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindAll(ctx context.Context, filter domain.UserFilter, page domain.Page) ([]domain.User, int64, error)
	Update(ctx context.Context, id uint, update domain.UserUpdate) (domain.User, error)
	Delete(ctx context.Context, id uint) error
}

type EventLister interface {
	FindAll(ctx context.Context, filter domain.EventFilter, page domain.Page) ([]domain.Event, int64, error)
}

type RegistrationLister interface {
	FindByUser(ctx context.Context, userID uint, filter domain.RegistrationFilter, page domain.Page) ([]domain.Registration, int64, error)
}

type UserService struct {
	repo   UserRepository
	events EventLister
	regs   RegistrationLister
}

func NewUserService(repo UserRepository, events EventLister, regs RegistrationLister) *UserService {
	return &UserService{
		repo:   repo,
		events: events,
		regs:   regs,
	}
}

// GetUser loads a user without any access check. It backs the authentication
// of every request.
func (s *UserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

func (s *UserService) List(ctx context.Context, actor domain.User, filter domain.UserFilter, page domain.Page) ([]domain.User, int64, error) {
	if err := domain.Authorize(actor, 0, domain.RoleAdmin); err != nil {
		return nil, 0, err
	}

	users, total, err := s.repo.FindAll(ctx, filter, page)
	if err != nil {
		return nil, 0, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return users, total, nil
}

func (s *UserService) Get(ctx context.Context, actor domain.User, id uint) (domain.User, error) {
	if err := domain.Authorize(actor, id, domain.RoleAdmin); err != nil {
		return domain.User{}, err
	}

	return s.GetUser(ctx, id)
}

func (s *UserService) Update(ctx context.Context, actor domain.User, id uint, update domain.UserUpdate) (domain.User, error) {
	if err := domain.Authorize(actor, id, domain.RoleAdmin); err != nil {
		return domain.User{}, err
	}
	if update.Role != nil && !actor.Role.AtLeast(domain.RoleAdmin) {
		return domain.User{}, domain.ErrRoleChangeDenied
	}

	user, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return user, nil
}

func (s *UserService) Delete(ctx context.Context, actor domain.User, id uint) error {
	if err := domain.Authorize(actor, 0, domain.RoleAdmin); err != nil {
		return err
	}
	if actor.ID == id {
		return domain.ErrCannotDeleteSelf
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// Events lists the events organized by the user.
func (s *UserService) Events(ctx context.Context, actor domain.User, id uint, page domain.Page) ([]domain.Event, int64, error) {
	if err := domain.Authorize(actor, id, domain.RoleAdmin); err != nil {
		return nil, 0, err
	}

	events, total, err := s.events.FindAll(ctx, domain.EventFilter{OrganizerID: id, Viewer: &actor}, page)
	if err != nil {
		return nil, 0, fmt.Errorf("s.events.FindAll -> %w", err)
	}

	return events, total, nil
}

func (s *UserService) Registrations(ctx context.Context, actor domain.User, id uint, page domain.Page) ([]domain.Registration, int64, error) {
	if err := domain.Authorize(actor, id, domain.RoleAdmin); err != nil {
		return nil, 0, err
	}

	regs, total, err := s.regs.FindByUser(ctx, id, domain.RegistrationFilter{}, page)
	if err != nil {
		return nil, 0, fmt.Errorf("s.regs.FindByUser -> %w", err)
	}

	return regs, total, nil
}
