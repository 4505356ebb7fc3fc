package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForwardPath(t *testing.T) {
	path := []Status{Pending, PaymentPending, PaymentCompleted, Processing, Shipped, Delivered}
	for i := 0; i < len(path)-1; i++ {
		assert.True(
			t,
			path[i].CanTransitionTo(path[i+1]),
			"expected %s -> %s to be allowed",
			path[i],
			path[i+1],
		)
	}
}

func TestCannotSkipPayment(t *testing.T) {
	assert.False(t, Pending.CanTransitionTo(Processing))
	assert.False(t, PaymentPending.CanTransitionTo(Shipped))
}

func TestCannotGoBackwards(t *testing.T) {
	assert.False(t, Shipped.CanTransitionTo(Processing))
	assert.False(t, PaymentCompleted.CanTransitionTo(Pending))
}

func TestCancelOnlyBeforeShipping(t *testing.T) {
	assert.True(t, Pending.CanTransitionTo(Cancelled))
	assert.True(t, PaymentPending.CanTransitionTo(Cancelled))
	assert.True(t, PaymentCompleted.CanTransitionTo(Cancelled))
	assert.True(t, Processing.CanTransitionTo(Cancelled))
	assert.False(t, Shipped.CanTransitionTo(Cancelled))
	assert.False(t, Delivered.CanTransitionTo(Cancelled))
}

func TestRefundOnlyAfterPayment(t *testing.T) {
	assert.True(t, PaymentCompleted.CanTransitionTo(Refunded))
	assert.True(t, Processing.CanTransitionTo(Refunded))
	assert.True(t, Cancelled.CanTransitionTo(Refunded))
	assert.False(t, Pending.CanTransitionTo(Refunded))
	assert.False(t, PaymentPending.CanTransitionTo(Refunded))
	assert.False(t, Delivered.CanTransitionTo(Refunded))
}

func TestTerminalStates(t *testing.T) {
	assert.True(t, Delivered.IsTerminal())
	assert.True(t, Refunded.IsTerminal())
	assert.False(t, Cancelled.IsTerminal())
	assert.False(t, Pending.IsTerminal())
}

func TestIsValid(t *testing.T) {
	assert.True(t, Pending.IsValid())
	assert.True(t, Refunded.IsValid())
	assert.False(t, Status("unknown").IsValid())
	assert.False(t, Status("").IsValid())
}
