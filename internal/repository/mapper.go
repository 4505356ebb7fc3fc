package repository

import (
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	cartResponse "github.com/absrenew/storefront/cart/pkg/response"
	orderResponse "github.com/absrenew/storefront/order/pkg/response"
	productResponse "github.com/absrenew/storefront/product/pkg/response"
	shopResponse "github.com/absrenew/storefront/shop/pkg/response"
	userResponse "github.com/absrenew/storefront/user/pkg/response"
)

func NumericFromDecimal(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{
		Int:              d.Coefficient(),
		Exp:              d.Exponent(),
		InfinityModifier: pgtype.Finite,
		NaN:              false,
		Valid:            true,
	}
}

func DecimalFromNumeric(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}

func (i CartItem) Response() cartResponse.CartItem {
	return cartResponse.CartItem{
		Sku:        i.Sku,
		Quantity:   i.Quantity,
		PriceAtAdd: DecimalFromNumeric(i.Price),
		Name:       i.Name,
		Brand:      i.Brand,
		Model:      i.Model,
		ImageUrl:   i.ImageUrl,
		InStock:    i.InStock,
		Checked:    i.Checked,
	}
}

func (cart Cart) Response(items []CartItem) cartResponse.Cart {
	responseItems := make([]cartResponse.CartItem, 0, len(items))
	for _, item := range items {
		responseItems = append(responseItems, item.Response())
	}
	return cartResponse.Cart{
		ID:        cart.ID,
		Items:     responseItems,
		CreatedAt: cart.CreatedAt.Time,
		UpdatedAt: cart.UpdatedAt.Time,
	}
}

func (o Order) Response(items []OrderItem) orderResponse.Order {
	responseItems := make([]orderResponse.OrderItem, 0, len(items))
	for _, item := range items {
		responseItems = append(responseItems, orderResponse.OrderItem{
			ID:         item.ID,
			Sku:        item.Sku,
			Name:       item.Name,
			Brand:      item.Brand,
			Model:      item.Model,
			Quantity:   item.Quantity,
			OrderPrice: DecimalFromNumeric(item.OrderPrice),
		})
	}
	return orderResponse.Order{
		ID:             o.ID,
		OrderNumber:    o.OrderNumber,
		UserId:         o.UserID,
		Status:         o.Status,
		Subtotal:       DecimalFromNumeric(o.Subtotal),
		ShippingFee:    DecimalFromNumeric(o.ShippingFee),
		DiscountAmount: DecimalFromNumeric(o.DiscountAmount),
		Total:          DecimalFromNumeric(o.Total),
		CouponCode:     o.CouponCode,
		ShippingMethod: o.ShippingMethod,
		Recipient:      o.Recipient,
		Address:        o.Address,
		Phone:          o.Phone,
		PaymentMethod:  o.PaymentMethod,
		TransactionId:  o.TransactionID,
		OrderItems:     responseItems,
		CreatedAt:      o.CreatedAt.Time,
		UpdatedAt:      o.UpdatedAt.Time,
	}
}

func (i Inquiry) Response() shopResponse.Inquiry {
	resp := shopResponse.Inquiry{
		ID:         i.ID,
		Name:       i.Name,
		Email:      i.Email,
		Phone:      i.Phone,
		Message:    i.Message,
		ProductSku: i.ProductSku,
		CreatedAt:  i.CreatedAt.Time,
	}
	if i.Answer.Valid {
		resp.Answer = i.Answer.String
	}
	if i.AnsweredAt.Valid {
		answeredAt := i.AnsweredAt.Time
		resp.AnsweredAt = &answeredAt
	}
	return resp
}

func (u User) Response() userResponse.User {
	return userResponse.User{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt.Time,
	}
}

func (p Product) Response() productResponse.Product {
	return productResponse.Product{
		ID:          p.ID,
		Sku:         p.Sku,
		Name:        p.Name,
		Brand:       p.Brand,
		Model:       p.Model,
		ImageUrl:    p.ImageUrl,
		Description: p.Description,
		Price:       DecimalFromNumeric(p.Price),
		InStock:     p.InStock,
		CreatedAt:   p.CreatedAt.Time,
		UpdatedAt:   p.UpdatedAt.Time,
	}
}
