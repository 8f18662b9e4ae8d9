package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Notification struct {
	ID uint `gorm:"primaryKey"`

	EventID uint `gorm:"not null;index"`
	// UserID is NULL for notifications addressed to every attendee.
	UserID  *uint  `gorm:"index"`
	Title   string `gorm:"size:100;not null"`
	Message string `gorm:"type:text;not null"`
	Type    string `gorm:"not null;default:'info'"`
	IsRead  bool   `gorm:"not null;default:false"`

	Event Event `gorm:"constraint:OnDelete:CASCADE"`
	User  *User `gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type NotificationFilter struct {
	UserID uint
	IsRead *bool
	Type   string
}

func (f NotificationFilter) scope(tx *gorm.DB) *gorm.DB {
	tx = tx.Where("user_id = ?", f.UserID)
	if f.IsRead != nil {
		tx = tx.Where("is_read = ?", *f.IsRead)
	}
	if f.Type != "" {
		tx = tx.Where("type = ?", f.Type)
	}

	return tx
}

type NotificationDAO struct {
	db *gorm.DB
}

func NewNotificationDAO(db *gorm.DB) *NotificationDAO {
	return &NotificationDAO{
		db: db,
	}
}

// InsertBatch stores all rows or none.
func (d *NotificationDAO) InsertBatch(ctx context.Context, notifications []Notification) ([]Notification, error) {
	result := d.db.WithContext(ctx).Omit(clause.Associations).Create(&notifications)
	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			return nil, ErrUserNotFound
		}

		return nil, result.Error
	}

	return notifications, nil
}

func (d *NotificationDAO) FindByID(ctx context.Context, id uint) (Notification, error) {
	var n Notification

	result := d.db.WithContext(ctx).First(&n, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Notification{}, ErrNotificationNotFound
		}

		return Notification{}, result.Error
	}

	return n, nil
}

// FindAll lists the notifications addressed to filter.UserID.
func (d *NotificationDAO) FindAll(ctx context.Context, filter NotificationFilter, offset, limit int) ([]Notification, int64, error) {
	var total int64
	if err := d.db.WithContext(ctx).Model(&Notification{}).Scopes(filter.scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []Notification
	result := d.db.WithContext(ctx).Scopes(filter.scope).
		Order("created_at DESC").Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&list)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return list, total, nil
}

func (d *NotificationDAO) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

// MarkRead never flips a notification back to unread.
func (d *NotificationDAO) MarkRead(ctx context.Context, id uint) (Notification, error) {
	result := d.db.WithContext(ctx).Model(&Notification{}).
		Where("id = ? AND is_read = ?", id, false).
		Update("is_read", true)
	if result.Error != nil {
		return Notification{}, result.Error
	}

	return d.FindByID(ctx, id)
}

func (d *NotificationDAO) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	result := d.db.WithContext(ctx).Model(&Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

func (d *NotificationDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Notification{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}

	return nil
}
