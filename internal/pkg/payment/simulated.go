package payment

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SimulatedGateway approves a configurable share of charges and every refund.
// No money moves.
type SimulatedGateway struct {
	successRate float64
	delay       time.Duration

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewSimulatedGateway(successRate float64, delay time.Duration) *SimulatedGateway {
	if successRate < 0 {
		successRate = 0
	}
	if successRate > 1 {
		successRate = 1
	}

	return &SimulatedGateway{
		successRate: successRate,
		delay:       delay,
		rnd:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (g *SimulatedGateway) Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error) {
	if req.Amount < 0 || req.Method == "" {
		return ChargeResult{}, ErrInvalidRequest
	}
	if err := g.wait(ctx); err != nil {
		return ChargeResult{}, err
	}

	if !g.approve() {
		return ChargeResult{FailureReason: "Payment was declined by the provider"}, nil
	}

	return ChargeResult{
		Success:   true,
		PaymentID: fmt.Sprintf("pay_%d_%s", time.Now().Unix(), uuid.New().String()[:8]),
	}, nil
}

func (g *SimulatedGateway) Refund(ctx context.Context, paymentID string, amount float64) (RefundResult, error) {
	if paymentID == "" || amount < 0 {
		return RefundResult{}, ErrInvalidRequest
	}
	if err := g.wait(ctx); err != nil {
		return RefundResult{}, err
	}

	return RefundResult{
		Success:  true,
		RefundID: fmt.Sprintf("ref_%d_%s", time.Now().Unix(), uuid.New().String()[:8]),
	}, nil
}

func (g *SimulatedGateway) approve() bool {
	if g.successRate >= 1 {
		return true
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	return g.rnd.Float64() < g.successRate
}

func (g *SimulatedGateway) wait(ctx context.Context) error {
	if g.delay <= 0 {
		return ctx.Err()
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(g.delay):
		return nil
	}
}
