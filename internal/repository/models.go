package repository

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Cart struct {
	ID        uuid.UUID
	Owner     string
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

type CartItem struct {
	ID        uuid.UUID
	CartID    uuid.UUID
	Sku       string
	Quantity  int32
	Price     pgtype.Numeric
	Name      string
	Brand     string
	Model     string
	ImageUrl  string
	InStock   bool
	Checked   bool
	CreatedAt pgtype.Timestamptz
}

type Order struct {
	ID             uuid.UUID
	OrderNumber    string
	UserID         uuid.UUID
	Status         string
	Subtotal       pgtype.Numeric
	ShippingFee    pgtype.Numeric
	DiscountAmount pgtype.Numeric
	Total          pgtype.Numeric
	CouponCode     string
	ShippingMethod string
	Recipient      string
	Address        string
	Phone          string
	PaymentMethod  string
	TransactionID  string
	CreatedAt      pgtype.Timestamptz
	UpdatedAt      pgtype.Timestamptz
}

type OrderItem struct {
	ID         uuid.UUID
	OrderID    uuid.UUID
	Sku        string
	Name       string
	Brand      string
	Model      string
	Quantity   int32
	OrderPrice pgtype.Numeric
}

type Product struct {
	ID          uuid.UUID
	Sku         string
	Name        string
	Brand       string
	Model       string
	ImageUrl    string
	Description string
	Price       pgtype.Numeric
	InStock     bool
	CreatedAt   pgtype.Timestamptz
	UpdatedAt   pgtype.Timestamptz
}

type User struct {
	ID        uuid.UUID
	Email     string
	Name      string
	Password  string
	IsAdmin   bool
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

type Inquiry struct {
	ID         uuid.UUID
	Name       string
	Email      string
	Phone      string
	Message    string
	ProductSku string
	Answer     pgtype.Text
	AnsweredAt pgtype.Timestamptz
	CreatedAt  pgtype.Timestamptz
}
