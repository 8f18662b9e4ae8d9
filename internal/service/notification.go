package service

import (
	"context"
	"fmt"

	"github.com/yizeng/gab/gin/gorm/event-manager/internal/domain"
)

type NotificationRepository interface {
	CreateBatch(ctx context.Context, notifications []domain.Notification) ([]domain.Notification, error)
	FindByID(ctx context.Context, id uint) (domain.Notification, error)
	FindForUser(ctx context.Context, userID uint, filter domain.NotificationFilter, page domain.Page) ([]domain.Notification, int64, error)
	CountUnread(ctx context.Context, userID uint) (int64, error)
	MarkRead(ctx context.Context, id uint) (domain.Notification, error)
	MarkAllRead(ctx context.Context, userID uint) (int64, error)
	Delete(ctx context.Context, id uint) error
}

type NotificationService struct {
	repo   NotificationRepository
	events EventFinder
}

func NewNotificationService(repo NotificationRepository, events EventFinder) *NotificationService {
	return &NotificationService{
		repo:   repo,
		events: events,
	}
}

// Create stores one notification per target user, or a single broadcast when
// targets is empty.
func (s *NotificationService) Create(ctx context.Context, actor domain.User, n domain.Notification, targets []uint) ([]domain.Notification, error) {
	if _, err := ownedEvent(ctx, s.events, actor, n.EventID); err != nil {
		return nil, err
	}
	if n.Type == "" {
		n.Type = domain.NotificationInfo
	}

	var batch []domain.Notification
	if len(targets) == 0 {
		n.Audience = domain.Broadcast()
		batch = append(batch, n)
	}

	seen := make(map[uint]bool, len(targets))
	for _, id := range targets {
		if seen[id] {
			continue
		}
		seen[id] = true

		direct := n
		direct.Audience = domain.Direct(id)
		batch = append(batch, direct)
	}

	created, err := s.repo.CreateBatch(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("s.repo.CreateBatch -> %w", err)
	}

	return created, nil
}

// List returns the notifications addressed to actor. Broadcasts are not part
// of a user's inbox.
func (s *NotificationService) List(ctx context.Context, actor domain.User, filter domain.NotificationFilter, page domain.Page) ([]domain.Notification, int64, error) {
	list, total, err := s.repo.FindForUser(ctx, actor.ID, filter, page)
	if err != nil {
		return nil, 0, fmt.Errorf("s.repo.FindForUser -> %w", err)
	}

	return list, total, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, actor domain.User) (int64, error) {
	count, err := s.repo.CountUnread(ctx, actor.ID)
	if err != nil {
		return 0, fmt.Errorf("s.repo.CountUnread -> %w", err)
	}

	return count, nil
}

func (s *NotificationService) Get(ctx context.Context, actor domain.User, id uint) (domain.Notification, error) {
	return s.owned(ctx, actor, id)
}

func (s *NotificationService) MarkRead(ctx context.Context, actor domain.User, id uint) (domain.Notification, error) {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return domain.Notification{}, err
	}

	n, err := s.repo.MarkRead(ctx, id)
	if err != nil {
		return domain.Notification{}, fmt.Errorf("s.repo.MarkRead -> %w", err)
	}

	return n, nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, actor domain.User) (int64, error) {
	count, err := s.repo.MarkAllRead(ctx, actor.ID)
	if err != nil {
		return 0, fmt.Errorf("s.repo.MarkAllRead -> %w", err)
	}

	return count, nil
}

func (s *NotificationService) Delete(ctx context.Context, actor domain.User, id uint) error {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// owned allows the addressee and admins. Broadcasts have no addressee.
func (s *NotificationService) owned(ctx context.Context, actor domain.User, id uint) (domain.Notification, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Notification{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if err = domain.Authorize(actor, n.Audience.OwnerID(), domain.RoleAdmin); err != nil {
		return domain.Notification{}, err
	}

	return n, nil
}
