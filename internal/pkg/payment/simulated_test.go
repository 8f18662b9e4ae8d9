package payment

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatedGateway_Charge(t *testing.T) {
	g := NewSimulatedGateway(1, 0)

	res, err := g.Charge(context.Background(), ChargeRequest{Method: "credit_card", Amount: 50})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.True(t, strings.HasPrefix(res.PaymentID, "pay_"))
}

func TestSimulatedGateway_Decline(t *testing.T) {
	g := NewSimulatedGateway(0, 0)

	res, err := g.Charge(context.Background(), ChargeRequest{Method: "paypal", Amount: 10})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Empty(t, res.PaymentID)
	assert.NotEmpty(t, res.FailureReason)
}

func TestSimulatedGateway_InvalidRequest(t *testing.T) {
	g := NewSimulatedGateway(1, 0)

	_, err := g.Charge(context.Background(), ChargeRequest{Amount: 10})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = g.Refund(context.Background(), "", 10)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestSimulatedGateway_Refund(t *testing.T) {
	g := NewSimulatedGateway(1, 0)

	res, err := g.Refund(context.Background(), "pay_1", 10)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.True(t, strings.HasPrefix(res.RefundID, "ref_"))
}

func TestSimulatedGateway_ContextCancelled(t *testing.T) {
	g := NewSimulatedGateway(1, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Charge(ctx, ChargeRequest{Method: "stripe", Amount: 1})
	assert.ErrorIs(t, err, context.Canceled)
}
