package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QA struct {
	ID uint `gorm:"primaryKey"`

	EventID    uint   `gorm:"not null;index"`
	UserID     uint   `gorm:"not null;index"`
	AnswererID *uint  `gorm:"index"`
	Question   string `gorm:"type:text;not null"`
	Answer     *string
	Status     string `gorm:"not null;default:'pending';index"`
	AnsweredAt *time.Time

	Event    Event `gorm:"constraint:OnDelete:CASCADE"`
	User     User  `gorm:"constraint:OnDelete:CASCADE"`
	Answerer *User `gorm:"foreignKey:AnswererID;constraint:OnDelete:SET NULL"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (QA) TableName() string {
	return "questions"
}

type QAFilter struct {
	EventID uint
	UserID  uint
	Status  string
}

func (f QAFilter) scope(tx *gorm.DB) *gorm.DB {
	if f.EventID != 0 {
		tx = tx.Where("event_id = ?", f.EventID)
	}
	if f.UserID != 0 {
		tx = tx.Where("user_id = ?", f.UserID)
	}
	if f.Status != "" {
		tx = tx.Where("status = ?", f.Status)
	}

	return tx
}

type QADAO struct {
	db *gorm.DB
}

func NewQADAO(db *gorm.DB) *QADAO {
	return &QADAO{
		db: db,
	}
}

func (d *QADAO) Insert(ctx context.Context, qa QA) (QA, error) {
	result := d.db.WithContext(ctx).Omit(clause.Associations).Create(&qa)
	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			return QA{}, ErrEventNotFound
		}

		return QA{}, result.Error
	}

	return d.FindByID(ctx, qa.ID)
}

func (d *QADAO) FindByID(ctx context.Context, id uint) (QA, error) {
	var qa QA

	result := d.db.WithContext(ctx).Preload("User").Preload("Answerer").First(&qa, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return QA{}, ErrQANotFound
		}

		return QA{}, result.Error
	}

	return qa, nil
}

func (d *QADAO) FindAll(ctx context.Context, filter QAFilter, offset, limit int) ([]QA, int64, error) {
	var total int64
	if err := d.db.WithContext(ctx).Model(&QA{}).Scopes(filter.scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var qas []QA
	result := d.db.WithContext(ctx).Scopes(filter.scope).
		Preload("User").Preload("Answerer").
		Order("created_at DESC").Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&qas)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return qas, total, nil
}

// Update applies the given column values. Keys are column names.
func (d *QADAO) Update(ctx context.Context, id uint, changes map[string]interface{}) (QA, error) {
	if len(changes) > 0 {
		result := d.db.WithContext(ctx).Model(&QA{ID: id}).Updates(changes)
		if result.Error != nil {
			return QA{}, result.Error
		}
		if result.RowsAffected == 0 {
			return QA{}, ErrQANotFound
		}
	}

	return d.FindByID(ctx, id)
}

func (d *QADAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&QA{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrQANotFound
	}

	return nil
}
