package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ForumPost struct {
	ID uint `gorm:"primaryKey"`

	EventID  uint   `gorm:"not null;index"`
	UserID   uint   `gorm:"not null;index"`
	ParentID *uint  `gorm:"index"`
	Content  string `gorm:"type:text;not null"`

	Event  Event      `gorm:"constraint:OnDelete:CASCADE"`
	User   User       `gorm:"constraint:OnDelete:CASCADE"`
	Parent *ForumPost `gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type ForumPostDAO struct {
	db *gorm.DB
}

func NewForumPostDAO(db *gorm.DB) *ForumPostDAO {
	return &ForumPostDAO{
		db: db,
	}
}

func (d *ForumPostDAO) Insert(ctx context.Context, post ForumPost) (ForumPost, error) {
	result := d.db.WithContext(ctx).Omit(clause.Associations).Create(&post)
	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			if post.ParentID != nil {
				return ForumPost{}, ErrPostNotFound
			}
			return ForumPost{}, ErrEventNotFound
		}

		return ForumPost{}, result.Error
	}

	return d.FindByID(ctx, post.ID)
}

func (d *ForumPostDAO) FindByID(ctx context.Context, id uint) (ForumPost, error) {
	var post ForumPost

	result := d.db.WithContext(ctx).Preload("User").First(&post, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ForumPost{}, ErrPostNotFound
		}

		return ForumPost{}, result.Error
	}

	return post, nil
}

// FindRootsByEvent pages through top level posts of an event, newest first.
func (d *ForumPostDAO) FindRootsByEvent(ctx context.Context, eventID uint, offset, limit int) ([]ForumPost, int64, error) {
	scope := func(tx *gorm.DB) *gorm.DB {
		return tx.Where("event_id = ? AND parent_id IS NULL", eventID)
	}

	var total int64
	if err := d.db.WithContext(ctx).Model(&ForumPost{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []ForumPost
	result := d.db.WithContext(ctx).Scopes(scope).
		Preload("User").
		Order("created_at DESC").Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&posts)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return posts, total, nil
}

// FindRepliesByEvent returns every reply of an event in creation order.
func (d *ForumPostDAO) FindRepliesByEvent(ctx context.Context, eventID uint) ([]ForumPost, error) {
	var posts []ForumPost

	result := d.db.WithContext(ctx).
		Where("event_id = ? AND parent_id IS NOT NULL", eventID).
		Preload("User").
		Order("created_at ASC").Order("id ASC").
		Find(&posts)
	if result.Error != nil {
		return nil, result.Error
	}

	return posts, nil
}

func (d *ForumPostDAO) FindByUser(ctx context.Context, userID uint, offset, limit int) ([]ForumPost, int64, error) {
	scope := func(tx *gorm.DB) *gorm.DB {
		return tx.Where("user_id = ?", userID)
	}

	var total int64
	if err := d.db.WithContext(ctx).Model(&ForumPost{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []ForumPost
	result := d.db.WithContext(ctx).Scopes(scope).
		Preload("User").
		Order("created_at DESC").Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&posts)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return posts, total, nil
}

func (d *ForumPostDAO) UpdateContent(ctx context.Context, id uint, content string) (ForumPost, error) {
	result := d.db.WithContext(ctx).Model(&ForumPost{ID: id}).Update("content", content)
	if result.Error != nil {
		return ForumPost{}, result.Error
	}
	if result.RowsAffected == 0 {
		return ForumPost{}, ErrPostNotFound
	}

	return d.FindByID(ctx, id)
}

// Delete also removes the replies through the parent_id cascade.
func (d *ForumPostDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&ForumPost{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}

	return nil
}
