package request

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterValidation(t *testing.T) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	valid := Register{Email: "buyer@example.com", Name: "Buyer", Password: "longenough"}
	require.NoError(t, validate.Struct(valid))

	assert.Error(t, validate.Struct(Register{Email: "not-an-email", Name: "Buyer", Password: "longenough"}))
	assert.Error(t, validate.Struct(Register{Email: "buyer@example.com", Name: "", Password: "longenough"}))
	assert.Error(t, validate.Struct(Register{Email: "buyer@example.com", Name: "Buyer", Password: "short"}))
}

func TestLoginValidation(t *testing.T) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	require.NoError(t, validate.Struct(Login{Email: "buyer@example.com", Password: "secret"}))
	require.NoError(
		t,
		validate.Struct(Login{Email: "buyer@example.com", Password: "secret", CartId: "guest-1"}),
	)

	assert.Error(t, validate.Struct(Login{Email: "", Password: "secret"}))
	assert.Error(t, validate.Struct(Login{Email: "buyer@example.com", Password: ""}))
}
