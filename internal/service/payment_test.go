package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yizeng/gab/gin/gorm/event-manager/internal/domain"
	"github.com/yizeng/gab/gin/gorm/event-manager/internal/pkg/payment"
)

func newTestPaymentService() (*PaymentService, *mockRegistrationRepo, *mockGateway) {
	regs := new(mockRegistrationRepo)
	events := new(mockEventRepo)
	tickets := new(mockTicketRepo)
	gateway := new(mockGateway)

	events.On("FindByID", mock.Anything, uint(10)).Return(publicEvent(), nil)
	tickets.On("FindByID", mock.Anything, uint(20)).Return(domain.Ticket{ID: 20, EventID: 10, Price: 40}, nil)

	return NewPaymentService(regs, events, tickets, gateway), regs, gateway
}

func TestPaymentService_Process(t *testing.T) {
	req := PaymentRequest{EventID: 10, TicketID: 20, Quantity: 2, Method: "credit_card", Token: "tok_visa"}
	pending := domain.Registration{
		EventID:       10,
		TicketID:      20,
		UserID:        alice.ID,
		Quantity:      2,
		TotalAmount:   80,
		Status:        domain.StatusPending,
		PaymentMethod: "credit_card",
	}
	charge := payment.ChargeRequest{Method: "credit_card", Token: "tok_visa", Amount: 80, Reference: "registration-5"}

	t.Run("charged and confirmed", func(t *testing.T) {
		svc, regs, gateway := newTestPaymentService()
		regs.On("Reserve", mock.Anything, pending).Return(domain.Registration{ID: 5, TotalAmount: 80, Status: domain.StatusPending}, nil)
		gateway.On("Charge", mock.Anything, charge).Return(payment.ChargeResult{Success: true, PaymentID: "pay_1"}, nil)
		regs.On("ConfirmPayment", mock.Anything, uint(5), "credit_card", "pay_1").
			Return(domain.Registration{ID: 5, Status: domain.StatusConfirmed, PaymentID: "pay_1"}, nil)

		reg, err := svc.Process(context.Background(), alice, req)
		require.NoError(t, err)
		assert.Equal(t, "pay_1", reg.PaymentID)
		regs.AssertNotCalled(t, "ReleasePending", mock.Anything, mock.Anything)
	})

	t.Run("declined releases the reservation", func(t *testing.T) {
		svc, regs, gateway := newTestPaymentService()
		regs.On("Reserve", mock.Anything, pending).Return(domain.Registration{ID: 5, TotalAmount: 80}, nil)
		gateway.On("Charge", mock.Anything, charge).Return(payment.ChargeResult{Success: false, FailureReason: "Card declined"}, nil)
		regs.On("ReleasePending", mock.Anything, uint(5)).Return(nil)

		_, err := svc.Process(context.Background(), alice, req)
		assert.ErrorIs(t, err, domain.ErrPaymentFailed)
		assert.ErrorIs(t, err, domain.ErrInvalid)
		assert.Contains(t, err.Error(), "Card declined")
		regs.AssertExpectations(t)
	})

	t.Run("gateway error releases the reservation", func(t *testing.T) {
		svc, regs, gateway := newTestPaymentService()
		regs.On("Reserve", mock.Anything, pending).Return(domain.Registration{ID: 5, TotalAmount: 80}, nil)
		gateway.On("Charge", mock.Anything, charge).Return(payment.ChargeResult{}, errors.New("timeout"))
		regs.On("ReleasePending", mock.Anything, uint(5)).Return(nil)

		_, err := svc.Process(context.Background(), alice, req)
		assert.ErrorIs(t, err, domain.ErrPaymentFailed)
		regs.AssertExpectations(t)
	})

	t.Run("already registered never reaches the gateway", func(t *testing.T) {
		svc, regs, gateway := newTestPaymentService()
		regs.On("Reserve", mock.Anything, pending).Return(domain.Registration{}, domain.ErrAlreadyRegistered)

		_, err := svc.Process(context.Background(), alice, req)
		assert.ErrorIs(t, err, domain.ErrAlreadyRegistered)
		gateway.AssertNotCalled(t, "Charge", mock.Anything, mock.Anything)
	})
}

func TestPaymentService_Refund(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("cancelled registration is not eligible", func(t *testing.T) {
		svc, regs, gateway := newTestPaymentService()
		regs.On("FindByID", mock.Anything, uint(5)).
			Return(domain.Registration{ID: 5, UserID: alice.ID, Status: domain.StatusCancelled, PaymentID: "pay_1"}, nil)

		_, err := svc.Refund(context.Background(), alice, 5, "changed plans")
		assert.ErrorIs(t, err, domain.ErrRefundNotEligible)
		assert.ErrorIs(t, err, domain.ErrInvalid)
		gateway.AssertNotCalled(t, "Refund", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("other user is forbidden", func(t *testing.T) {
		svc, regs, _ := newTestPaymentService()
		regs.On("FindByID", mock.Anything, uint(5)).
			Return(domain.Registration{ID: 5, UserID: alice.ID, Status: domain.StatusConfirmed, PaymentID: "pay_1"}, nil)

		_, err := svc.Refund(context.Background(), bob, 5, "")
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("refunded", func(t *testing.T) {
		svc, regs, gateway := newTestPaymentService()
		svc.now = func() time.Time { return now }
		regs.On("FindByID", mock.Anything, uint(5)).
			Return(domain.Registration{ID: 5, UserID: alice.ID, Status: domain.StatusConfirmed, PaymentID: "pay_1", TotalAmount: 80}, nil)
		gateway.On("Refund", mock.Anything, "pay_1", float64(80)).Return(payment.RefundResult{Success: true, RefundID: "ref_1"}, nil)
		regs.On("MarkRefunded", mock.Anything, uint(5), "changed plans", now).
			Return(domain.Registration{ID: 5, Status: domain.StatusRefunded, RefundedAt: &now}, nil)

		reg, err := svc.Refund(context.Background(), alice, 5, "changed plans")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusRefunded, reg.Status)
	})

	t.Run("registration without payment skips the gateway", func(t *testing.T) {
		svc, regs, gateway := newTestPaymentService()
		svc.now = func() time.Time { return now }
		regs.On("FindByID", mock.Anything, uint(6)).
			Return(domain.Registration{ID: 6, UserID: alice.ID, Status: domain.StatusConfirmed, TotalAmount: 40}, nil)
		regs.On("MarkRefunded", mock.Anything, uint(6), "", now).
			Return(domain.Registration{ID: 6, Status: domain.StatusRefunded, RefundedAt: &now}, nil)

		reg, err := svc.Refund(context.Background(), alice, 6, "")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusRefunded, reg.Status)
		gateway.AssertNotCalled(t, "Refund", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("gateway declines", func(t *testing.T) {
		svc, regs, gateway := newTestPaymentService()
		regs.On("FindByID", mock.Anything, uint(5)).
			Return(domain.Registration{ID: 5, UserID: alice.ID, Status: domain.StatusConfirmed, PaymentID: "pay_1", TotalAmount: 80}, nil)
		gateway.On("Refund", mock.Anything, "pay_1", float64(80)).Return(payment.RefundResult{Success: false}, nil)

		_, err := svc.Refund(context.Background(), alice, 5, "")
		assert.ErrorIs(t, err, domain.ErrRefundFailed)
		regs.AssertNotCalled(t, "MarkRefunded", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestPaymentService_History(t *testing.T) {
	svc, regs, _ := newTestPaymentService()
	page := domain.NewPage(1, 10)
	regs.On("FindByUser", mock.Anything, alice.ID, domain.RegistrationFilter{Status: domain.StatusRefunded, PaidOnly: true}, page).
		Return([]domain.Registration{{ID: 5}}, int64(1), nil)

	list, total, err := svc.History(context.Background(), alice, domain.StatusRefunded, page)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, int64(1), total)
}
