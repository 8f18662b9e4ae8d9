package repository

import (
	"context"
	"fmt"

	"github.com/yizeng/gab/gin/gorm/event-manager/internal/domain"
	"github.com/yizeng/gab/gin/gorm/event-manager/internal/repository/dao"
)

type NotificationDAO interface {
	InsertBatch(ctx context.Context, notifications []dao.Notification) ([]dao.Notification, error)
	FindByID(ctx context.Context, id uint) (dao.Notification, error)
	FindAll(ctx context.Context, filter dao.NotificationFilter, offset, limit int) ([]dao.Notification, int64, error)
	CountUnread(ctx context.Context, userID uint) (int64, error)
	MarkRead(ctx context.Context, id uint) (dao.Notification, error)
	MarkAllRead(ctx context.Context, userID uint) (int64, error)
	Delete(ctx context.Context, id uint) error
}

type NotificationRepository struct {
	dao NotificationDAO
}

func NewNotificationRepository(dao NotificationDAO) *NotificationRepository {
	return &NotificationRepository{
		dao: dao,
	}
}

func (r *NotificationRepository) CreateBatch(ctx context.Context, notifications []domain.Notification) ([]domain.Notification, error) {
	rows := make([]dao.Notification, 0, len(notifications))
	for _, n := range notifications {
		row := dao.Notification{
			EventID: n.EventID,
			Title:   n.Title,
			Message: n.Message,
			Type:    string(n.Type),
		}
		if id, ok := n.Audience.UserID(); ok {
			row.UserID = &id
		}
		rows = append(rows, row)
	}

	created, err := r.dao.InsertBatch(ctx, rows)
	if err != nil {
		return nil, fmt.Errorf("r.dao.InsertBatch -> %w", translate(err))
	}

	return notificationsToDomain(created), nil
}

func (r *NotificationRepository) FindByID(ctx context.Context, id uint) (domain.Notification, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Notification{}, fmt.Errorf("r.dao.FindByID -> %w", translate(err))
	}

	return notificationToDomain(found), nil
}

func (r *NotificationRepository) FindForUser(ctx context.Context, userID uint, filter domain.NotificationFilter, page domain.Page) ([]domain.Notification, int64, error) {
	found, total, err := r.dao.FindAll(ctx, dao.NotificationFilter{
		UserID: userID,
		IsRead: filter.IsRead,
		Type:   string(filter.Type),
	}, page.Offset(), page.Size)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.FindAll -> %w", translate(err))
	}

	return notificationsToDomain(found), total, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	count, err := r.dao.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountUnread -> %w", translate(err))
	}

	return count, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id uint) (domain.Notification, error) {
	n, err := r.dao.MarkRead(ctx, id)
	if err != nil {
		return domain.Notification{}, fmt.Errorf("r.dao.MarkRead -> %w", translate(err))
	}

	return notificationToDomain(n), nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	count, err := r.dao.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.MarkAllRead -> %w", translate(err))
	}

	return count, nil
}

func (r *NotificationRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", translate(err))
	}

	return nil
}

func notificationToDomain(n dao.Notification) domain.Notification {
	audience := domain.Broadcast()
	if n.UserID != nil {
		audience = domain.Direct(*n.UserID)
	}

	return domain.Notification{
		ID:        n.ID,
		EventID:   n.EventID,
		Audience:  audience,
		Title:     n.Title,
		Message:   n.Message,
		Type:      domain.NotificationType(n.Type),
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func notificationsToDomain(list []dao.Notification) []domain.Notification {
	out := make([]domain.Notification, 0, len(list))
	for _, n := range list {
		out = append(out, notificationToDomain(n))
	}

	return out
}
