package request

type Checkout struct {
	// CartId may be omitted; the controller then falls back to the
	// authenticated user's id as the cart owner.
	CartId         string `json:"cartId"`
	ShippingMethod string `json:"shippingMethod" validate:"required,oneof=standard express pickup"`
	Recipient      string `json:"recipient"      validate:"required"`
	Address        string `json:"address"        validate:"required"`
	Phone          string `json:"phone"          validate:"required"`
	PaymentMethod  string `json:"paymentMethod"  validate:"required"`
	CouponCode     string `json:"couponCode"`
}

type UpdateStatus struct {
	Status string `json:"status" validate:"required"`
}
