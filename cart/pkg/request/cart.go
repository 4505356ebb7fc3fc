package request

import (
	"github.com/shopspring/decimal"
)

// Every request carries the guest cart id resolved at the HTTP boundary, per
// the one-cart-per-identity contract. The controller fills CartId from the
// body when present, otherwise from the cartId cookie.

type GetCart struct {
	CartId string `json:"cartId" validate:"required"`
}

type AddItem struct {
	CartId     string          `json:"cartId"     validate:"required"`
	Sku        string          `json:"sku"        validate:"required"`
	Quantity   int32           `json:"qty"        validate:"required,gte=1"`
	PriceAtAdd decimal.Decimal `json:"priceAtAdd" validate:"required"`
	Name       string          `json:"name"       validate:"required"`
	Brand      string          `json:"brand"`
	Model      string          `json:"model"`
	ImageUrl   string          `json:"imageUrl"`
	InStock    bool            `json:"inStock"`
}

type UpdateItem struct {
	CartId  string `json:"cartId" validate:"required"`
	Sku     string `json:"sku"    validate:"required"`
	Qty     *int32 `json:"qty"`
	Checked *bool  `json:"checked"`
}

type RemoveItem struct {
	CartId string `json:"cartId" validate:"required"`
	Sku    string `json:"sku"    validate:"required"`
}

type ClearCart struct {
	CartId string `json:"cartId" validate:"required"`
}

type MergeCart struct {
	CartId string `json:"cartId" validate:"required"`
	UserId string `json:"userId" validate:"required,uuid4"`
}
