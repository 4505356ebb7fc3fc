package request

type Register struct {
	Email    string `json:"email"    validate:"required,email"`
	Name     string `json:"name"     validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

type Login struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	// CartId carries the guest cart cookie so the sign-in can fold the
	// guest cart into the account cart.
	CartId string `json:"cartId"`
}
