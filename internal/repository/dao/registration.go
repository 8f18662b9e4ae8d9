package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	statusPending   = "pending"
	statusConfirmed = "confirmed"
	statusCancelled = "cancelled"
	statusRefunded  = "refunded"

	uniqueActiveRegistration = "ux_registrations_user_event_active"
)

var activeStatuses = []string{statusPending, statusConfirmed}

type Registration struct {
	ID uint `gorm:"primaryKey"`

	EventID  uint `gorm:"not null;index"`
	TicketID uint `gorm:"not null;index"`
	UserID   uint `gorm:"not null;index"`

	Quantity      int     `gorm:"not null;check:quantity BETWEEN 1 AND 10"`
	TotalAmount   float64 `gorm:"type:numeric(10,2);not null"`
	Status        string  `gorm:"not null;default:'confirmed';index"`
	PaymentMethod *string
	PaymentID     *string `gorm:"index"`
	RefundReason  *string
	RefundedAt    *time.Time

	Event  Event  `gorm:"constraint:OnDelete:CASCADE"`
	Ticket Ticket `gorm:"constraint:OnDelete:CASCADE"`
	User   User   `gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type RegistrationFilter struct {
	UserID   uint
	EventID  uint
	Status   string
	PaidOnly bool
}

func (f RegistrationFilter) scope(tx *gorm.DB) *gorm.DB {
	if f.UserID != 0 {
		tx = tx.Where("registrations.user_id = ?", f.UserID)
	}
	if f.EventID != 0 {
		tx = tx.Where("registrations.event_id = ?", f.EventID)
	}
	if f.Status != "" {
		tx = tx.Where("registrations.status = ?", f.Status)
	}
	if f.PaidOnly {
		tx = tx.Where("registrations.payment_id IS NOT NULL")
	}

	return tx
}

type RegistrationDAO struct {
	db *gorm.DB
}

func NewRegistrationDAO(db *gorm.DB) *RegistrationDAO {
	return &RegistrationDAO{
		db: db,
	}
}

// lockTicket takes a row lock on the ticket for the rest of the transaction.
// Every write that changes how much of a ticket is held goes through it, so
// capacity checks for one ticket are serialized.
func lockTicket(tx *gorm.DB, id uint) (Ticket, error) {
	var ticket Ticket

	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&ticket, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Ticket{}, ErrTicketNotFound
		}

		return Ticket{}, err
	}

	return ticket, nil
}

// activeQuantity sums active registrations on a ticket, leaving out
// excludeID when it is set.
func activeQuantity(tx *gorm.DB, ticketID, excludeID uint) (int, error) {
	var sold int

	q := tx.Model(&Registration{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("ticket_id = ? AND status IN ?", ticketID, activeStatuses)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Scan(&sold).Error; err != nil {
		return 0, err
	}

	return sold, nil
}

// InsertWithinCapacity stores reg only if the user holds no other active
// registration for the event and the ticket still covers reg.Quantity. The
// partial unique index backs the first check when two requests for the same
// user and event lock different tickets.
func (d *RegistrationDAO) InsertWithinCapacity(ctx context.Context, reg Registration) (Registration, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ticket, err := lockTicket(tx, reg.TicketID)
		if err != nil {
			return err
		}
		if ticket.EventID != reg.EventID {
			return ErrTicketNotFound
		}

		var existing int64
		err = tx.Model(&Registration{}).
			Where("user_id = ? AND event_id = ? AND status <> ?", reg.UserID, reg.EventID, statusCancelled).
			Count(&existing).Error
		if err != nil {
			return err
		}
		if existing > 0 {
			return ErrRegistrationExists
		}

		sold, err := activeQuantity(tx, reg.TicketID, 0)
		if err != nil {
			return err
		}
		if available := ticket.Quantity - sold; reg.Quantity > available {
			return &InsufficientTicketsError{Available: max(available, 0)}
		}

		if err = tx.Omit(clause.Associations).Create(&reg).Error; err != nil {
			if isUniqueViolation(err, uniqueActiveRegistration) {
				return ErrRegistrationExists
			}
			return err
		}

		return nil
	})
	if err != nil {
		return Registration{}, err
	}

	return d.FindByID(ctx, reg.ID)
}

// UpdateQuantity re-checks capacity with the registration's own previous
// quantity released.
func (d *RegistrationDAO) UpdateQuantity(ctx context.Context, id uint, quantity int, totalAmount float64) (Registration, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var reg Registration
		if err := tx.First(&reg, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRegistrationNotFound
			}
			return err
		}

		ticket, err := lockTicket(tx, reg.TicketID)
		if err != nil {
			return err
		}

		// Re-read under the ticket lock, the status may have changed meanwhile.
		if err = tx.First(&reg, id).Error; err != nil {
			return err
		}
		if reg.Status != statusPending && reg.Status != statusConfirmed {
			return ErrRegistrationInactive
		}

		sold, err := activeQuantity(tx, reg.TicketID, reg.ID)
		if err != nil {
			return err
		}
		if available := ticket.Quantity - sold; quantity > available {
			return &InsufficientTicketsError{Available: max(available, 0)}
		}

		return tx.Model(&reg).Updates(map[string]interface{}{
			"quantity":     quantity,
			"total_amount": totalAmount,
		}).Error
	})
	if err != nil {
		return Registration{}, err
	}

	return d.FindByID(ctx, id)
}

func (d *RegistrationDAO) FindByID(ctx context.Context, id uint) (Registration, error) {
	var reg Registration

	result := d.db.WithContext(ctx).
		Preload("Event").Preload("Ticket").Preload("User").
		First(&reg, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Registration{}, ErrRegistrationNotFound
		}

		return Registration{}, result.Error
	}

	return reg, nil
}

// FindAll pages through registrations, newest first. A limit of zero or less
// returns everything.
func (d *RegistrationDAO) FindAll(ctx context.Context, filter RegistrationFilter, offset, limit int) ([]Registration, int64, error) {
	var total int64
	if err := d.db.WithContext(ctx).Model(&Registration{}).Scopes(filter.scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := d.db.WithContext(ctx).
		Scopes(filter.scope).
		Preload("Event").Preload("Ticket").Preload("User").
		Order("registrations.created_at DESC").Order("registrations.id DESC")
	if limit > 0 {
		q = q.Offset(offset).Limit(limit)
	}

	var regs []Registration
	if err := q.Find(&regs).Error; err != nil {
		return nil, 0, err
	}

	return regs, total, nil
}

// Cancel moves an active registration to cancelled.
func (d *RegistrationDAO) Cancel(ctx context.Context, id uint) (Registration, error) {
	result := d.db.WithContext(ctx).
		Model(&Registration{}).
		Where("id = ? AND status IN ?", id, activeStatuses).
		Update("status", statusCancelled)
	if result.Error != nil {
		return Registration{}, result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := d.FindByID(ctx, id); err != nil {
			return Registration{}, err
		}

		return Registration{}, ErrRegistrationInactive
	}

	return d.FindByID(ctx, id)
}

// ConfirmPayment flips a pending registration to confirmed.
func (d *RegistrationDAO) ConfirmPayment(ctx context.Context, id uint, method, paymentID string) (Registration, error) {
	result := d.db.WithContext(ctx).
		Model(&Registration{}).
		Where("id = ? AND status = ?", id, statusPending).
		Updates(map[string]interface{}{
			"status":         statusConfirmed,
			"payment_method": method,
			"payment_id":     paymentID,
		})
	if result.Error != nil {
		return Registration{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Registration{}, ErrRegistrationInactive
	}

	return d.FindByID(ctx, id)
}

// MarkRefunded only succeeds on confirmed registrations, so a refund is
// recorded at most once.
func (d *RegistrationDAO) MarkRefunded(ctx context.Context, id uint, reason string, at time.Time) (Registration, error) {
	result := d.db.WithContext(ctx).
		Model(&Registration{}).
		Where("id = ? AND status = ?", id, statusConfirmed).
		Updates(map[string]interface{}{
			"status":        statusRefunded,
			"refund_reason": reason,
			"refunded_at":   at,
		})
	if result.Error != nil {
		return Registration{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Registration{}, ErrRegistrationInactive
	}

	return d.FindByID(ctx, id)
}

// DeletePending removes a reservation whose payment did not go through.
func (d *RegistrationDAO) DeletePending(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, statusPending).
		Delete(&Registration{}).Error
}
