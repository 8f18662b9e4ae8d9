package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/yizeng/gab/gin/gorm/event-manager/internal/domain"
	"github.com/yizeng/gab/gin/gorm/event-manager/internal/repository/dao"
)

type RegistrationDAO interface {
	InsertWithinCapacity(ctx context.Context, reg dao.Registration) (dao.Registration, error)
	UpdateQuantity(ctx context.Context, id uint, quantity int, totalAmount float64) (dao.Registration, error)
	FindByID(ctx context.Context, id uint) (dao.Registration, error)
	FindAll(ctx context.Context, filter dao.RegistrationFilter, offset, limit int) ([]dao.Registration, int64, error)
	Cancel(ctx context.Context, id uint) (dao.Registration, error)
	ConfirmPayment(ctx context.Context, id uint, method, paymentID string) (dao.Registration, error)
	MarkRefunded(ctx context.Context, id uint, reason string, at time.Time) (dao.Registration, error)
	DeletePending(ctx context.Context, id uint) error
}

type RegistrationRepository struct {
	dao RegistrationDAO
}

func NewRegistrationRepository(dao RegistrationDAO) *RegistrationRepository {
	return &RegistrationRepository{
		dao: dao,
	}
}

// Reserve stores the registration if the user has no active one for the event
// and the ticket can cover the quantity. Both checks and the insert are one
// atomic step.
func (r *RegistrationRepository) Reserve(ctx context.Context, reg domain.Registration) (domain.Registration, error) {
	created, err := r.dao.InsertWithinCapacity(ctx, dao.Registration{
		EventID:       reg.EventID,
		TicketID:      reg.TicketID,
		UserID:        reg.UserID,
		Quantity:      reg.Quantity,
		TotalAmount:   reg.TotalAmount,
		Status:        string(reg.Status),
		PaymentMethod: strPtr(reg.PaymentMethod),
		PaymentID:     strPtr(reg.PaymentID),
	})
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.dao.InsertWithinCapacity -> %w", translate(err))
	}

	return registrationToDomain(created), nil
}

func (r *RegistrationRepository) UpdateQuantity(ctx context.Context, id uint, quantity int, totalAmount float64) (domain.Registration, error) {
	updated, err := r.dao.UpdateQuantity(ctx, id, quantity, totalAmount)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.dao.UpdateQuantity -> %w", translate(err))
	}

	return registrationToDomain(updated), nil
}

func (r *RegistrationRepository) FindByID(ctx context.Context, id uint) (domain.Registration, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.dao.FindByID -> %w", translate(err))
	}

	return registrationToDomain(found), nil
}

func (r *RegistrationRepository) FindByUser(ctx context.Context, userID uint, filter domain.RegistrationFilter, page domain.Page) ([]domain.Registration, int64, error) {
	return r.findAll(ctx, dao.RegistrationFilter{
		UserID:   userID,
		Status:   string(filter.Status),
		PaidOnly: filter.PaidOnly,
	}, page)
}

// FindByEvent returns every registration of an event, unpaged.
func (r *RegistrationRepository) FindByEvent(ctx context.Context, eventID uint) ([]domain.Registration, error) {
	regs, _, err := r.findAll(ctx, dao.RegistrationFilter{EventID: eventID}, domain.Page{})
	return regs, err
}

func (r *RegistrationRepository) findAll(ctx context.Context, filter dao.RegistrationFilter, page domain.Page) ([]domain.Registration, int64, error) {
	found, total, err := r.dao.FindAll(ctx, filter, page.Offset(), page.Size)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.FindAll -> %w", translate(err))
	}

	regs := make([]domain.Registration, 0, len(found))
	for _, reg := range found {
		regs = append(regs, registrationToDomain(reg))
	}

	return regs, total, nil
}

func (r *RegistrationRepository) Cancel(ctx context.Context, id uint) (domain.Registration, error) {
	cancelled, err := r.dao.Cancel(ctx, id)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.dao.Cancel -> %w", translate(err))
	}

	return registrationToDomain(cancelled), nil
}

func (r *RegistrationRepository) ConfirmPayment(ctx context.Context, id uint, method, paymentID string) (domain.Registration, error) {
	confirmed, err := r.dao.ConfirmPayment(ctx, id, method, paymentID)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.dao.ConfirmPayment -> %w", translate(err))
	}

	return registrationToDomain(confirmed), nil
}

func (r *RegistrationRepository) MarkRefunded(ctx context.Context, id uint, reason string, at time.Time) (domain.Registration, error) {
	refunded, err := r.dao.MarkRefunded(ctx, id, reason, at)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.dao.MarkRefunded -> %w", translate(err))
	}

	return registrationToDomain(refunded), nil
}

func (r *RegistrationRepository) ReleasePending(ctx context.Context, id uint) error {
	if err := r.dao.DeletePending(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeletePending -> %w", translate(err))
	}

	return nil
}

func registrationToDomain(r dao.Registration) domain.Registration {
	return domain.Registration{
		ID:            r.ID,
		EventID:       r.EventID,
		TicketID:      r.TicketID,
		UserID:        r.UserID,
		Quantity:      r.Quantity,
		TotalAmount:   r.TotalAmount,
		Status:        domain.RegistrationStatus(r.Status),
		PaymentMethod: strVal(r.PaymentMethod),
		PaymentID:     strVal(r.PaymentID),
		RefundReason:  strVal(r.RefundReason),
		RefundedAt:    r.RefundedAt,
		Event:         eventRef(r.Event),
		Ticket:        ticketRef(r.Ticket),
		User:          userRef(r.User),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
