package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderItem struct {
	ID         uuid.UUID       `json:"id"`
	Sku        string          `json:"sku"`
	Name       string          `json:"name"`
	Brand      string          `json:"brand"`
	Model      string          `json:"model"`
	Quantity   int32           `json:"qty"`
	OrderPrice decimal.Decimal `json:"orderPrice"`
}

type Order struct {
	ID             uuid.UUID       `json:"id"`
	OrderNumber    string          `json:"orderNumber"`
	UserId         uuid.UUID       `json:"userId"`
	Status         string          `json:"status"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	ShippingFee    decimal.Decimal `json:"shippingFee"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	Total          decimal.Decimal `json:"total"`
	CouponCode     string          `json:"couponCode,omitempty"`
	ShippingMethod string          `json:"shippingMethod"`
	Recipient      string          `json:"recipient"`
	Address        string          `json:"address"`
	Phone          string          `json:"phone"`
	PaymentMethod  string          `json:"paymentMethod"`
	TransactionId  string          `json:"transactionId,omitempty"`
	OrderItems     []OrderItem     `json:"items"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}
