package service

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Remanufactured ABS modules ship as a single insured parcel, so shipping is
// a flat fee per method rather than weight based.
var shippingFees = map[string]decimal.Decimal{
	"standard": decimal.NewFromInt(3000),
	"express":  decimal.NewFromInt(6000),
	"pickup":   decimal.Zero,
}

// freeShippingThreshold waives the shipping fee once the subtotal reaches it.
var freeShippingThreshold = decimal.NewFromInt(50000)

// ShippingFee returns the flat fee for the method. Orders at or above the
// free shipping threshold ship for free regardless of method.
func ShippingFee(method string, subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(freeShippingThreshold) {
		return decimal.Zero
	}
	fee, ok := shippingFees[method]
	if !ok {
		return decimal.Zero
	}
	return fee
}

// welcomeCoupon takes a flat percentage off the subtotal, rounded down to a
// whole currency unit.
const welcomeCoupon = "WELCOME10"

var welcomeRate = decimal.NewFromFloat(0.10)

// Discount returns the discount amount for the coupon code. Unknown codes
// discount nothing.
func Discount(couponCode string, subtotal decimal.Decimal) decimal.Decimal {
	if strings.ToUpper(strings.TrimSpace(couponCode)) != welcomeCoupon {
		return decimal.Zero
	}
	return subtotal.Mul(welcomeRate).Floor()
}

// Total is subtotal plus shipping minus discount, never below zero.
func Total(subtotal, shippingFee, discount decimal.Decimal) decimal.Decimal {
	total := subtotal.Add(shippingFee).Sub(discount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}
