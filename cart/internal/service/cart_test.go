package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/absrenew/storefront/cart/pkg/request"
	"github.com/absrenew/storefront/cart/pkg/response"
)

func itemsBySku(cart response.Cart) map[string]response.CartItem {
	m := map[string]response.CartItem{}
	for _, item := range cart.Items {
		m[item.Sku] = item
	}
	return m
}

func TestCartLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	c := context.Background()
	redisClient, pool, pgContainer, redisContainer, _, cartService := setup(t)(c)
	defer teardown(t)(redisClient, pool, pgContainer, redisContainer)

	owner := uuid.NewString()

	cart, err := cartService.GetCart(c, owner)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	cart, err = cartService.AddItem(c, owner, request.AddItem{
		CartId:     owner,
		Sku:        "ATE-MK60-BMW-E46",
		Quantity:   1,
		PriceAtAdd: decimal.NewFromInt(24900),
		Name:       "ATE MK60 ABS Module",
		Brand:      "BMW",
		Model:      "E46",
		InStock:    true,
	})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.True(t, cart.Items[0].Checked)

	cart, err = cartService.AddItem(c, owner, request.AddItem{
		CartId:     owner,
		Sku:        "BOSCH-5.7-GM-TAHOE",
		Quantity:   2,
		PriceAtAdd: decimal.NewFromInt(18900),
		Name:       "Bosch 5.7 ABS Module",
		Brand:      "Chevrolet",
		Model:      "Tahoe",
		InStock:    true,
	})
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)

	// Adding the same sku again accumulates quantity instead of duplicating
	// the line.
	cart, err = cartService.AddItem(c, owner, request.AddItem{
		CartId:     owner,
		Sku:        "ATE-MK60-BMW-E46",
		Quantity:   2,
		PriceAtAdd: decimal.NewFromInt(24900),
		Name:       "ATE MK60 ABS Module",
		Brand:      "BMW",
		Model:      "E46",
		InStock:    true,
	})
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
	assert.EqualValues(t, 3, itemsBySku(cart)["ATE-MK60-BMW-E46"].Quantity)

	qty := int32(5)
	cart, err = cartService.UpdateItem(c, owner, request.UpdateItem{
		CartId: owner,
		Sku:    "BOSCH-5.7-GM-TAHOE",
		Qty:    &qty,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 5, itemsBySku(cart)["BOSCH-5.7-GM-TAHOE"].Quantity)

	unchecked := false
	cart, err = cartService.UpdateItem(c, owner, request.UpdateItem{
		CartId:  owner,
		Sku:     "BOSCH-5.7-GM-TAHOE",
		Checked: &unchecked,
	})
	require.NoError(t, err)
	assert.False(t, itemsBySku(cart)["BOSCH-5.7-GM-TAHOE"].Checked)

	zero := int32(0)
	cart, err = cartService.UpdateItem(c, owner, request.UpdateItem{
		CartId: owner,
		Sku:    "ATE-MK60-BMW-E46",
		Qty:    &zero,
	})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "BOSCH-5.7-GM-TAHOE", cart.Items[0].Sku)

	cart, err = cartService.ClearCart(c, owner)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestMergeCartsCombinesGuestAndUserItems(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	c := context.Background()
	redisClient, pool, pgContainer, redisContainer, queries, cartService := setup(t)(c)
	defer teardown(t)(redisClient, pool, pgContainer, redisContainer)

	guestId := uuid.NewString()
	userId := uuid.NewString()

	_, err := cartService.AddItem(c, guestId, request.AddItem{
		CartId:     guestId,
		Sku:        "ATE-MK60-BMW-E46",
		Quantity:   2,
		PriceAtAdd: decimal.NewFromInt(24900),
		Name:       "ATE MK60 ABS Module",
		InStock:    true,
	})
	require.NoError(t, err)

	_, err = cartService.AddItem(c, guestId, request.AddItem{
		CartId:     guestId,
		Sku:        "TEVES-MK20-VW-GOLF",
		Quantity:   1,
		PriceAtAdd: decimal.NewFromInt(15900),
		Name:       "Teves MK20 ABS Module",
		InStock:    true,
	})
	require.NoError(t, err)

	_, err = cartService.AddItem(c, userId, request.AddItem{
		CartId:     userId,
		Sku:        "ATE-MK60-BMW-E46",
		Quantity:   1,
		PriceAtAdd: decimal.NewFromInt(23900),
		Name:       "ATE MK60 ABS Module",
		InStock:    true,
	})
	require.NoError(t, err)

	merged, err := cartService.MergeCarts(c, request.MergeCart{
		CartId: guestId,
		UserId: userId,
	})
	require.NoError(t, err)
	require.Len(t, merged.Items, 2)

	// The user's lines come first even though the guest cart is older; the
	// guest-only line is appended after them.
	assert.Equal(t, "ATE-MK60-BMW-E46", merged.Items[0].Sku)
	assert.Equal(t, "TEVES-MK20-VW-GOLF", merged.Items[1].Sku)

	bySku := itemsBySku(merged)
	assert.EqualValues(t, 3, bySku["ATE-MK60-BMW-E46"].Quantity)
	assert.True(
		t,
		decimal.NewFromInt(23900).Equal(bySku["ATE-MK60-BMW-E46"].PriceAtAdd),
		"colliding line should keep the user's price",
	)
	assert.EqualValues(t, 1, bySku["TEVES-MK20-VW-GOLF"].Quantity)

	_, err = queries.FindCartByOwner(c, guestId)
	assert.Error(t, err, "guest cart should be deleted after merge")
}

func TestMergeCartsWithoutGuestCartReturnsUserCart(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	c := context.Background()
	redisClient, pool, pgContainer, redisContainer, _, cartService := setup(t)(c)
	defer teardown(t)(redisClient, pool, pgContainer, redisContainer)

	userId := uuid.NewString()

	_, err := cartService.AddItem(c, userId, request.AddItem{
		CartId:     userId,
		Sku:        "BOSCH-8.0-HONDA-CRV",
		Quantity:   1,
		PriceAtAdd: decimal.NewFromInt(19900),
		Name:       "Bosch 8.0 ABS Module",
		InStock:    true,
	})
	require.NoError(t, err)

	merged, err := cartService.MergeCarts(c, request.MergeCart{
		CartId: uuid.NewString(),
		UserId: userId,
	})
	require.NoError(t, err)
	require.Len(t, merged.Items, 1)
	assert.Equal(t, "BOSCH-8.0-HONDA-CRV", merged.Items[0].Sku)
}
