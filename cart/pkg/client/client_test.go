package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/absrenew/storefront/cart/pkg/request"
	"github.com/absrenew/storefront/cart/pkg/response"
)

func TestAddItemReturnsServerCartSnapshot(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/add", r.URL.Path)

			reqBody := request.AddItem{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
			assert.Equal(t, "ABS-4E0614517", reqBody.Sku)
			assert.Equal(t, int32(1), reqBody.Quantity)

			w.Header().Set("Content-Type", "application/json")
			err := json.NewEncoder(w).Encode(map[string]interface{}{
				"ok":         true,
				"statusCode": http.StatusOK,
				"message":    "item added to cart",
				"data": map[string]interface{}{
					"cartId": reqBody.CartId,
					"cart": response.Cart{
						Items: []response.CartItem{
							{
								Sku:        "ABS-4E0614517",
								Quantity:   1,
								PriceAtAdd: decimal.NewFromInt(45000),
								Name:       "ABS Module Audi A8",
								InStock:    true,
								Checked:    true,
							},
						},
					},
				},
			})
			require.NoError(t, err)
		}),
	)
	defer server.Close()

	cl := New(server.URL)
	cart, err := cl.AddItem(context.Background(), request.AddItem{
		CartId:     "guest-1",
		Sku:        "ABS-4E0614517",
		Quantity:   1,
		PriceAtAdd: decimal.NewFromInt(45000),
		Name:       "ABS Module Audi A8",
	})

	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "ABS-4E0614517", cart.Items[0].Sku)
	assert.True(t, cart.Items[0].PriceAtAdd.Equal(decimal.NewFromInt(45000)))
}

func TestClientSurfacesServerRejection(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			err := json.NewEncoder(w).Encode(map[string]interface{}{
				"ok":         false,
				"statusCode": http.StatusNotFound,
				"message":    "item not found",
			})
			require.NoError(t, err)
		}),
	)
	defer server.Close()

	cl := New(server.URL)
	_, err := cl.RemoveItem(context.Background(), request.RemoveItem{
		CartId: "guest-1",
		Sku:    "ABS-MISSING",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "item not found")
}

func TestClientReturnsErrorWhenServerUnreachable(t *testing.T) {
	cl := New("http://127.0.0.1:1")
	_, err := cl.GetCart(context.Background(), request.GetCart{CartId: "guest-1"})
	require.Error(t, err)
}
