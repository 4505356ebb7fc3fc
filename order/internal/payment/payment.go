// Package payment abstracts the payment gateway behind a small capability
// interface so the order service never talks to a vendor SDK directly.
package payment

import (
	"context"

	"github.com/shopspring/decimal"
)

type Request struct {
	// IdempotencyKey dedupes retried charges. Callers use the order id so a
	// retried checkout never charges twice.
	IdempotencyKey string
	OrderNumber    string
	Amount         decimal.Decimal
	Method         string
	CustomerEmail  string
}

type Result struct {
	TransactionID string
	Approved      bool
	Message       string
}

type Provider interface {
	Initialize(c context.Context) error
	RequestPayment(c context.Context, req Request) (Result, error)
	VerifyPayment(c context.Context, transactionID string) (Result, error)
	CancelPayment(c context.Context, transactionID string) error
	RefundPayment(c context.Context, transactionID string, amount decimal.Decimal) error
}
