package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestShippingFeeBelowThreshold(t *testing.T) {
	subtotal := decimal.NewFromInt(45000)
	assert.True(t, ShippingFee("standard", subtotal).Equal(decimal.NewFromInt(3000)))
	assert.True(t, ShippingFee("express", subtotal).Equal(decimal.NewFromInt(6000)))
	assert.True(t, ShippingFee("pickup", subtotal).Equal(decimal.Zero))
}

func TestShippingFreeAtThreshold(t *testing.T) {
	assert.True(t, ShippingFee("standard", decimal.NewFromInt(50000)).Equal(decimal.Zero))
	assert.True(t, ShippingFee("express", decimal.NewFromInt(60000)).Equal(decimal.Zero))
}

func TestShippingUnknownMethodIsFree(t *testing.T) {
	assert.True(t, ShippingFee("drone", decimal.NewFromInt(1000)).Equal(decimal.Zero))
}

func TestWelcomeCouponTakesTenPercentFloored(t *testing.T) {
	assert.True(t, Discount("WELCOME10", decimal.NewFromInt(10000)).Equal(decimal.NewFromInt(1000)))
	assert.True(t, Discount("WELCOME10", decimal.NewFromInt(45005)).Equal(decimal.NewFromInt(4500)))
}

func TestWelcomeCouponIsCaseInsensitive(t *testing.T) {
	assert.True(t, Discount("welcome10", decimal.NewFromInt(10000)).Equal(decimal.NewFromInt(1000)))
	assert.True(t, Discount(" WELCOME10 ", decimal.NewFromInt(10000)).Equal(decimal.NewFromInt(1000)))
}

func TestUnknownCouponDiscountsNothing(t *testing.T) {
	assert.True(t, Discount("SUMMER20", decimal.NewFromInt(10000)).Equal(decimal.Zero))
	assert.True(t, Discount("", decimal.NewFromInt(10000)).Equal(decimal.Zero))
}

func TestTotalNeverNegative(t *testing.T) {
	total := Total(decimal.NewFromInt(100), decimal.Zero, decimal.NewFromInt(500))
	assert.True(t, total.Equal(decimal.Zero))
}

func TestTotalAddsShippingAndSubtractsDiscount(t *testing.T) {
	subtotal := decimal.NewFromInt(45000)
	fee := ShippingFee("standard", subtotal)
	discount := Discount("WELCOME10", subtotal)

	total := Total(subtotal, fee, discount)

	assert.True(t, total.Equal(decimal.NewFromInt(43500)))
}
