package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Ticket struct {
	ID uint `gorm:"primaryKey"`

	EventID     uint    `gorm:"not null;index"`
	Name        string  `gorm:"size:50;not null"`
	Description string  `gorm:"size:200"`
	Price       float64 `gorm:"type:numeric(10,2);not null;default:0;check:price >= 0"`
	Quantity    int     `gorm:"not null;check:quantity >= 1"`
	Type        string  `gorm:"not null;default:'regular'"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type TicketDAO struct {
	db *gorm.DB
}

func NewTicketDAO(db *gorm.DB) *TicketDAO {
	return &TicketDAO{
		db: db,
	}
}

func (d *TicketDAO) Insert(ctx context.Context, ticket Ticket) (Ticket, error) {
	result := d.db.WithContext(ctx).Create(&ticket)
	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			return Ticket{}, ErrEventNotFound
		}

		return Ticket{}, result.Error
	}

	return ticket, nil
}

func (d *TicketDAO) FindByID(ctx context.Context, id uint) (Ticket, error) {
	var ticket Ticket

	result := d.db.WithContext(ctx).First(&ticket, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Ticket{}, ErrTicketNotFound
		}

		return Ticket{}, result.Error
	}

	return ticket, nil
}

func (d *TicketDAO) FindByEventID(ctx context.Context, eventID uint) ([]Ticket, error) {
	var tickets []Ticket

	result := d.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("price ASC").Order("id ASC").
		Find(&tickets)
	if result.Error != nil {
		return nil, result.Error
	}

	return tickets, nil
}

// Update refuses to shrink the quantity below what active registrations
// already hold.
func (d *TicketDAO) Update(ctx context.Context, id uint, changes map[string]interface{}) (Ticket, error) {
	var updated Ticket

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ticket, err := lockTicket(tx, id)
		if err != nil {
			return err
		}

		if q, ok := changes["quantity"].(int); ok {
			sold, err := activeQuantity(tx, id, 0)
			if err != nil {
				return err
			}
			if q < sold {
				return ErrTicketOversold
			}
		}

		if len(changes) > 0 {
			if err := tx.Model(&ticket).Updates(changes).Error; err != nil {
				return err
			}
		}

		return tx.First(&updated, id).Error
	})
	if err != nil {
		return Ticket{}, err
	}

	return updated, nil
}

func (d *TicketDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Ticket{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTicketNotFound
	}

	return nil
}

// SoldQuantity sums the quantities of active registrations for the ticket.
func (d *TicketDAO) SoldQuantity(ctx context.Context, id uint) (int, error) {
	return activeQuantity(d.db.WithContext(ctx), id, 0)
}
