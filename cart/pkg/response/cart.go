package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartItem struct {
	Sku        string          `json:"sku"`
	Quantity   int32           `json:"qty"`
	PriceAtAdd decimal.Decimal `json:"priceAtAdd"`
	Name       string          `json:"name"`
	Brand      string          `json:"brand"`
	Model      string          `json:"model"`
	ImageUrl   string          `json:"imageUrl"`
	InStock    bool            `json:"inStock"`
	Checked    bool            `json:"checked"`
}

type Cart struct {
	ID        uuid.UUID  `json:"id"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
