package payment

import (
	"context"
	"errors"
)

var ErrInvalidRequest = errors.New("invalid payment request")

// Gateway charges and refunds payments with an external provider.
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error)
	Refund(ctx context.Context, paymentID string, amount float64) (RefundResult, error)
}

type ChargeRequest struct {
	Method string
	Token  string
	Amount float64
	// Reference ties the charge to a registration.
	Reference string
}

type ChargeResult struct {
	Success       bool
	PaymentID     string
	FailureReason string
}

type RefundResult struct {
	Success       bool
	RefundID      string
	FailureReason string
}
