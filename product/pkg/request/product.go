package request

import (
	"github.com/shopspring/decimal"
)

type UpsertProduct struct {
	Sku         string          `json:"sku"         validate:"required"`
	Name        string          `json:"name"        validate:"required"`
	Brand       string          `json:"brand"`
	Model       string          `json:"model"`
	ImageUrl    string          `json:"imageUrl"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"       validate:"required"`
	InStock     bool            `json:"inStock"`
}
