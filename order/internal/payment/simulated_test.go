package payment

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestPaymentIsIdempotent(t *testing.T) {
	provider := NewSimulatedProvider()
	req := Request{
		IdempotencyKey: "order-1",
		OrderNumber:    "ORD-20260830-0001",
		Amount:         decimal.NewFromInt(48000),
		Method:         "card",
	}

	first, err := provider.RequestPayment(context.Background(), req)
	require.NoError(t, err)
	second, err := provider.RequestPayment(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.TransactionID, second.TransactionID)
}

func TestDistinctKeysGetDistinctTransactions(t *testing.T) {
	provider := NewSimulatedProvider()

	first, err := provider.RequestPayment(context.Background(), Request{
		IdempotencyKey: "order-1",
		Amount:         decimal.NewFromInt(1000),
	})
	require.NoError(t, err)
	second, err := provider.RequestPayment(context.Background(), Request{
		IdempotencyKey: "order-2",
		Amount:         decimal.NewFromInt(1000),
	})
	require.NoError(t, err)

	assert.NotEqual(t, first.TransactionID, second.TransactionID)
}

func TestRequestPaymentRejectsNonPositiveAmount(t *testing.T) {
	provider := NewSimulatedProvider()

	_, err := provider.RequestPayment(context.Background(), Request{
		IdempotencyKey: "order-1",
		Amount:         decimal.Zero,
	})

	require.Error(t, err)
}

func TestVerifyPaymentFindsRequestedTransaction(t *testing.T) {
	provider := NewSimulatedProvider()
	result, err := provider.RequestPayment(context.Background(), Request{
		IdempotencyKey: "order-1",
		Amount:         decimal.NewFromInt(1000),
	})
	require.NoError(t, err)

	verified, err := provider.VerifyPayment(context.Background(), result.TransactionID)
	require.NoError(t, err)
	assert.True(t, verified.Approved)
}

func TestRefundTwiceFails(t *testing.T) {
	provider := NewSimulatedProvider()
	result, err := provider.RequestPayment(context.Background(), Request{
		IdempotencyKey: "order-1",
		Amount:         decimal.NewFromInt(1000),
	})
	require.NoError(t, err)

	require.NoError(
		t,
		provider.RefundPayment(context.Background(), result.TransactionID, decimal.NewFromInt(1000)),
	)
	require.Error(
		t,
		provider.RefundPayment(context.Background(), result.TransactionID, decimal.NewFromInt(1000)),
	)
}
