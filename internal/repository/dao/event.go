package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Event struct {
	ID uint `gorm:"primaryKey"`

	Title       string    `gorm:"size:100;not null"`
	Description string    `gorm:"type:text;not null"`
	Date        time.Time `gorm:"type:date;not null;index"`
	Time        string    `gorm:"size:5;not null"`
	Location    string    `gorm:"size:200;not null"`
	Category    string    `gorm:"not null;default:'other';index"`
	Privacy     string    `gorm:"not null;default:'public';index"`

	OrganizerID uint     `gorm:"not null;index"`
	Organizer   User     `gorm:"foreignKey:OrganizerID;constraint:OnDelete:CASCADE"`
	Tickets     []Ticket `gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type EventFilter struct {
	Query    string
	Category string
	Location string
	DateFrom *time.Time

	// AllPrivacy lifts the privacy restriction entirely. Otherwise only
	// public events and those organized by ViewerID are returned.
	AllPrivacy  bool
	ViewerID    uint
	OrganizerID uint
}

func (f EventFilter) scope(tx *gorm.DB) *gorm.DB {
	if !f.AllPrivacy {
		if f.ViewerID != 0 {
			tx = tx.Where("(events.privacy = ? OR events.organizer_id = ?)", "public", f.ViewerID)
		} else {
			tx = tx.Where("events.privacy = ?", "public")
		}
	}
	if f.OrganizerID != 0 {
		tx = tx.Where("events.organizer_id = ?", f.OrganizerID)
	}
	if f.Query != "" {
		like := "%" + f.Query + "%"
		tx = tx.Where("(events.title ILIKE ? OR events.description ILIKE ? OR events.location ILIKE ?)", like, like, like)
	}
	if f.Category != "" {
		tx = tx.Where("events.category = ?", f.Category)
	}
	if f.Location != "" {
		tx = tx.Where("events.location ILIKE ?", "%"+f.Location+"%")
	}
	if f.DateFrom != nil {
		tx = tx.Where("events.date >= ?", *f.DateFrom)
	}

	return tx
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) Insert(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Omit("Organizer", "Tickets").Create(&event)
	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			return Event{}, ErrUserNotFound
		}

		return Event{}, result.Error
	}

	return d.FindByID(ctx, event.ID)
}

// FindByID loads the event with its organizer and tickets.
func (d *EventDAO) FindByID(ctx context.Context, id uint) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).
		Preload("Organizer").
		Preload("Tickets", func(tx *gorm.DB) *gorm.DB { return tx.Order("price ASC") }).
		First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindAll(ctx context.Context, filter EventFilter, offset, limit int) ([]Event, int64, error) {
	var total int64
	if err := d.db.WithContext(ctx).Model(&Event{}).Scopes(filter.scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []Event
	result := d.db.WithContext(ctx).
		Scopes(filter.scope).
		Preload("Organizer").
		Preload("Tickets", func(tx *gorm.DB) *gorm.DB { return tx.Order("price ASC") }).
		Order("events.date ASC").Order("events.id ASC").
		Offset(offset).Limit(limit).
		Find(&events)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return events, total, nil
}

// Update applies the given column values. Keys are column names.
func (d *EventDAO) Update(ctx context.Context, id uint, changes map[string]interface{}) (Event, error) {
	if len(changes) > 0 {
		result := d.db.WithContext(ctx).Model(&Event{ID: id}).Updates(changes)
		if result.Error != nil {
			return Event{}, result.Error
		}
		if result.RowsAffected == 0 {
			return Event{}, ErrEventNotFound
		}
	}

	return d.FindByID(ctx, id)
}

func (d *EventDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Event{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}
