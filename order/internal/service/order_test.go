package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/absrenew/storefront/notification/pkg/mail"
	"github.com/absrenew/storefront/order/internal/cache"
	"github.com/absrenew/storefront/order/internal/payment"
	"github.com/absrenew/storefront/order/pkg/request"
	"github.com/absrenew/storefront/order/pkg/status"
)

func checkoutRequest(cartId string) request.Checkout {
	return request.Checkout{
		CartId:         cartId,
		ShippingMethod: "standard",
		Recipient:      "Jordan Blake",
		Address:        "1 Main St",
		Phone:          "555-0147",
		PaymentMethod:  "card",
	}
}

func TestCheckoutInvalidatesCartAndProductCaches(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	c := context.Background()
	redisClient, pool, pgContainer, redisContainer, queries := setup(t)(c)
	defer teardown(t)(redisClient, pool, pgContainer, redisContainer)

	sku := "ATE-MK60-BMW-E46"
	price := decimal.NewFromInt(24900)
	user := seedUser(t, c, queries)
	owner := user.ID.String()
	cart := seedCheckedCart(t, c, queries, owner, sku, price)
	seedProduct(t, c, queries, sku, price)

	cartKey := fmt.Sprintf(cache.KeyCart, owner)
	productKey := fmt.Sprintf(cache.KeyProduct, sku)
	require.NoError(t, redisClient.Set(c, cartKey, "stale", time.Hour).Err())
	require.NoError(t, redisClient.Set(c, cache.KeyProducts, "stale", time.Hour).Err())
	require.NoError(t, redisClient.Set(c, productKey, "stale", time.Hour).Err())

	mailQueue := make(chan mail.Message, 8)
	provider := payment.NewSimulatedProvider()
	require.NoError(t, provider.Initialize(c))
	orderService := NewOrderService(pool, queries, redisClient, provider, mailQueue)

	order, err := orderService.Checkout(c, user.ID, checkoutRequest(owner))
	require.NoError(t, err)
	assert.Equal(t, status.PaymentCompleted.String(), order.Status)

	_, err = redisClient.Get(c, cartKey).Result()
	assert.ErrorIs(t, err, redis.Nil, "cart cache entry should be dropped after checkout")
	_, err = redisClient.Get(c, cache.KeyProducts).Result()
	assert.ErrorIs(t, err, redis.Nil, "catalog cache entry should be dropped after checkout")
	_, err = redisClient.Get(c, productKey).Result()
	assert.ErrorIs(t, err, redis.Nil, "product cache entry should be dropped after checkout")

	items, err := queries.FindCheckedCartItems(c, cart.ID)
	require.NoError(t, err)
	assert.Empty(t, items)

	product, err := queries.FindProductBySku(c, sku)
	require.NoError(t, err)
	assert.False(t, product.InStock)

	assert.Len(t, mailQueue, 1)
}

func TestCheckoutDeclinedPaymentSkipsSideEffects(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	c := context.Background()
	redisClient, pool, pgContainer, redisContainer, queries := setup(t)(c)
	defer teardown(t)(redisClient, pool, pgContainer, redisContainer)

	sku := "BOSCH-5.7-GM-TAHOE"
	price := decimal.NewFromInt(18900)
	user := seedUser(t, c, queries)
	owner := user.ID.String()
	seedCheckedCart(t, c, queries, owner, sku, price)
	seedProduct(t, c, queries, sku, price)

	cartKey := fmt.Sprintf(cache.KeyCart, owner)
	productKey := fmt.Sprintf(cache.KeyProduct, sku)
	require.NoError(t, redisClient.Set(c, cartKey, "stale", time.Hour).Err())
	require.NoError(t, redisClient.Set(c, productKey, "stale", time.Hour).Err())

	mailQueue := make(chan mail.Message, 8)
	orderService := NewOrderService(pool, queries, redisClient, decliningProvider{}, mailQueue)

	order, err := orderService.Checkout(c, user.ID, checkoutRequest(owner))
	require.NoError(t, err)
	assert.Equal(t, status.PaymentPending.String(), order.Status)

	product, err := queries.FindProductBySku(c, sku)
	require.NoError(t, err)
	assert.True(t, product.InStock, "declined payment must not mark the unit sold")

	cached, err := redisClient.Get(c, productKey).Result()
	require.NoError(t, err)
	assert.Equal(t, "stale", cached, "declined payment must not touch the product cache")

	assert.Empty(t, mailQueue, "declined payment must not enqueue a confirmation mail")

	_, err = redisClient.Get(c, cartKey).Result()
	assert.ErrorIs(t, err, redis.Nil, "consumed cart lines drop the cart cache regardless")
}
