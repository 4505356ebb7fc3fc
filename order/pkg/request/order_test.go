package request

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkout() Checkout {
	return Checkout{
		CartId:         "guest-1",
		ShippingMethod: "standard",
		Recipient:      "Jordan Blake",
		Address:        "1 Main St",
		Phone:          "555-0147",
		PaymentMethod:  "card",
	}
}

func TestCheckoutValidation(t *testing.T) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	require.NoError(t, validate.Struct(checkout()))

	noCartId := checkout()
	noCartId.CartId = ""
	require.NoError(
		t,
		validate.Struct(noCartId),
		"a signed-in user may omit cartId and check out their account cart",
	)

	badMethod := checkout()
	badMethod.ShippingMethod = "drone"
	assert.Error(t, validate.Struct(badMethod))

	noRecipient := checkout()
	noRecipient.Recipient = ""
	assert.Error(t, validate.Struct(noRecipient))

	noPayment := checkout()
	noPayment.PaymentMethod = ""
	assert.Error(t, validate.Struct(noPayment))
}

func TestUpdateStatusValidation(t *testing.T) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	require.NoError(t, validate.Struct(UpdateStatus{Status: "processing"}))
	assert.Error(t, validate.Struct(UpdateStatus{}))
}
