package payment

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SimulatedProvider approves every payment and remembers results by
// idempotency key, standing in for the real gateway in development and tests.
type SimulatedProvider struct {
	mu       sync.Mutex
	byKey    map[string]Result
	byTxnID  map[string]Result
	refunded map[string]bool
}

func NewSimulatedProvider() *SimulatedProvider {
	return &SimulatedProvider{
		byKey:    map[string]Result{},
		byTxnID:  map[string]Result{},
		refunded: map[string]bool{},
	}
}

func (p *SimulatedProvider) Initialize(c context.Context) error {
	return nil
}

func (p *SimulatedProvider) RequestPayment(c context.Context, req Request) (Result, error) {
	if req.IdempotencyKey == "" {
		return Result{}, fmt.Errorf("idempotency key is required")
	}
	if !req.Amount.IsPositive() {
		return Result{}, fmt.Errorf("amount=%s must be positive", req.Amount.String())
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if result, ok := p.byKey[req.IdempotencyKey]; ok {
		return result, nil
	}

	result := Result{
		TransactionID: uuid.NewString(),
		Approved:      true,
		Message:       fmt.Sprintf("approved %s for order %s", req.Amount.String(), req.OrderNumber),
	}
	p.byKey[req.IdempotencyKey] = result
	p.byTxnID[result.TransactionID] = result
	return result, nil
}

func (p *SimulatedProvider) VerifyPayment(c context.Context, transactionID string) (Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	result, ok := p.byTxnID[transactionID]
	if !ok {
		return Result{}, fmt.Errorf("transactionId=%s not found", transactionID)
	}
	return result, nil
}

func (p *SimulatedProvider) CancelPayment(c context.Context, transactionID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.byTxnID[transactionID]; !ok {
		return fmt.Errorf("transactionId=%s not found", transactionID)
	}
	delete(p.byTxnID, transactionID)
	return nil
}

func (p *SimulatedProvider) RefundPayment(
	c context.Context,
	transactionID string,
	amount decimal.Decimal,
) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.byTxnID[transactionID]; !ok {
		return fmt.Errorf("transactionId=%s not found", transactionID)
	}
	if p.refunded[transactionID] {
		return fmt.Errorf("transactionId=%s already refunded", transactionID)
	}
	p.refunded[transactionID] = true
	return nil
}
