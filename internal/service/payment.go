package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/yizeng/gab/gin/gorm/event-manager/internal/domain"
	"github.com/yizeng/gab/gin/gorm/event-manager/internal/pkg/payment"
)

type PaymentRepository interface {
	Reserve(ctx context.Context, reg domain.Registration) (domain.Registration, error)
	FindByID(ctx context.Context, id uint) (domain.Registration, error)
	FindByUser(ctx context.Context, userID uint, filter domain.RegistrationFilter, page domain.Page) ([]domain.Registration, int64, error)
	ConfirmPayment(ctx context.Context, id uint, method, paymentID string) (domain.Registration, error)
	MarkRefunded(ctx context.Context, id uint, reason string, at time.Time) (domain.Registration, error)
	ReleasePending(ctx context.Context, id uint) error
}

type PaymentRequest struct {
	EventID  uint
	TicketID uint
	Quantity int
	Method   string
	Token    string
}

type PaymentService struct {
	repo    PaymentRepository
	events  EventFinder
	tickets TicketFinder
	gateway payment.Gateway
	now     func() time.Time
}

func NewPaymentService(repo PaymentRepository, events EventFinder, tickets TicketFinder, gateway payment.Gateway) *PaymentService {
	return &PaymentService{
		repo:    repo,
		events:  events,
		tickets: tickets,
		gateway: gateway,
		now:     time.Now,
	}
}

// Process reserves the tickets as pending, charges the gateway and confirms
// the registration. A declined or failed charge releases the reservation.
func (s *PaymentService) Process(ctx context.Context, actor domain.User, req PaymentRequest) (domain.Registration, error) {
	ticket, err := ticketForEvent(ctx, s.events, s.tickets, req.EventID, req.TicketID)
	if err != nil {
		return domain.Registration{}, err
	}

	reg, err := s.repo.Reserve(ctx, domain.Registration{
		EventID:       req.EventID,
		TicketID:      req.TicketID,
		UserID:        actor.ID,
		Quantity:      req.Quantity,
		TotalAmount:   ticket.Price * float64(req.Quantity),
		Status:        domain.StatusPending,
		PaymentMethod: req.Method,
	})
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.Reserve -> %w", err)
	}

	result, err := s.gateway.Charge(ctx, payment.ChargeRequest{
		Method:    req.Method,
		Token:     req.Token,
		Amount:    reg.TotalAmount,
		Reference: fmt.Sprintf("registration-%d", reg.ID),
	})
	if err != nil || !result.Success {
		s.release(ctx, reg.ID)
		if err != nil {
			zap.L().Warn("payment charge failed", zap.Uint("registrationID", reg.ID), zap.Error(err))
			return domain.Registration{}, domain.ErrPaymentFailed
		}

		return domain.Registration{}, domain.PaymentFailed(result.FailureReason)
	}

	confirmed, err := s.repo.ConfirmPayment(ctx, reg.ID, req.Method, result.PaymentID)
	if err != nil {
		zap.L().Error("charged payment could not be confirmed",
			zap.Uint("registrationID", reg.ID), zap.String("paymentID", result.PaymentID), zap.Error(err))
		return domain.Registration{}, fmt.Errorf("s.repo.ConfirmPayment -> %w", err)
	}

	return confirmed, nil
}

// release drops a pending reservation even when the request was cancelled.
func (s *PaymentService) release(ctx context.Context, id uint) {
	if err := s.repo.ReleasePending(context.WithoutCancel(ctx), id); err != nil {
		zap.L().Error("failed to release pending registration", zap.Uint("registrationID", id), zap.Error(err))
	}
}

// History lists the caller's paid registrations, newest first.
func (s *PaymentService) History(ctx context.Context, actor domain.User, status domain.RegistrationStatus, page domain.Page) ([]domain.Registration, int64, error) {
	regs, total, err := s.repo.FindByUser(ctx, actor.ID, domain.RegistrationFilter{Status: status, PaidOnly: true}, page)
	if err != nil {
		return nil, 0, fmt.Errorf("s.repo.FindByUser -> %w", err)
	}

	return regs, total, nil
}

func (s *PaymentService) Refund(ctx context.Context, actor domain.User, id uint, reason string) (domain.Registration, error) {
	reg, err := ownedRegistration(ctx, s.repo, actor, id)
	if err != nil {
		return domain.Registration{}, err
	}
	if !reg.Refundable() {
		return domain.Registration{}, domain.ErrRefundNotEligible
	}

	if reg.PaymentID != "" {
		result, err := s.gateway.Refund(ctx, reg.PaymentID, reg.TotalAmount)
		if err != nil {
			zap.L().Warn("payment refund failed", zap.Uint("registrationID", id), zap.Error(err))
			return domain.Registration{}, domain.ErrRefundFailed
		}
		if !result.Success {
			return domain.Registration{}, domain.ErrRefundFailed
		}
	}

	refunded, err := s.repo.MarkRefunded(ctx, id, reason, s.now())
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.MarkRefunded -> %w", err)
	}

	return refunded, nil
}

func (s *PaymentService) Details(ctx context.Context, actor domain.User, id uint) (domain.Registration, error) {
	return ownedRegistration(ctx, s.repo, actor, id)
}
