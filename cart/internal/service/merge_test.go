package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/absrenew/storefront/internal/repository"
)

func cartItem(sku string, qty int32, price int64) repository.CartItem {
	return repository.CartItem{
		ID:       uuid.New(),
		Sku:      sku,
		Quantity: qty,
		Price:    repository.NumericFromDecimal(decimal.NewFromInt(price)),
		Name:     "ABS Module " + sku,
		InStock:  true,
		Checked:  true,
	}
}

func TestMergeItemsAddsQuantitiesOnSkuCollision(t *testing.T) {
	guest := []repository.CartItem{cartItem("A", 2, 45000)}
	user := []repository.CartItem{cartItem("A", 1, 45000), cartItem("B", 1, 52000)}

	merged := mergeItems(user, guest)

	require.Len(t, merged, 2)
	assert.Equal(t, "A", merged[0].Sku)
	assert.Equal(t, int32(3), merged[0].Quantity)
	assert.Equal(t, "B", merged[1].Sku)
	assert.Equal(t, int32(1), merged[1].Quantity)
}

func TestMergeItemsKeepsUserLineOnCollision(t *testing.T) {
	user := []repository.CartItem{cartItem("A", 1, 45000)}
	user[0].Checked = false
	guest := []repository.CartItem{cartItem("A", 4, 39000)}

	merged := mergeItems(user, guest)

	require.Len(t, merged, 1)
	assert.Equal(t, user[0].ID, merged[0].ID)
	assert.Equal(t, int32(5), merged[0].Quantity)
	assert.Equal(t, user[0].Price, merged[0].Price)
	assert.False(t, merged[0].Checked)
}

func TestMergeItemsAppendsGuestOnlySkusAfterUserItems(t *testing.T) {
	user := []repository.CartItem{cartItem("A", 1, 45000)}
	guest := []repository.CartItem{cartItem("C", 2, 61000), cartItem("B", 1, 52000)}

	merged := mergeItems(user, guest)

	require.Len(t, merged, 3)
	assert.Equal(t, []string{"A", "C", "B"}, []string{merged[0].Sku, merged[1].Sku, merged[2].Sku})
}

func TestMergeItemsEmptyGuestLeavesUserUnchanged(t *testing.T) {
	user := []repository.CartItem{cartItem("A", 1, 45000), cartItem("B", 2, 52000)}

	merged := mergeItems(user, nil)

	assert.Equal(t, user, merged)
}

func TestMergeItemsEmptyUserTakesGuestItems(t *testing.T) {
	guest := []repository.CartItem{cartItem("A", 2, 45000)}

	merged := mergeItems(nil, guest)

	require.Len(t, merged, 1)
	assert.Equal(t, "A", merged[0].Sku)
	assert.Equal(t, int32(2), merged[0].Quantity)
}

func TestMergeItemsDoesNotMutateInputs(t *testing.T) {
	user := []repository.CartItem{cartItem("A", 1, 45000)}
	guest := []repository.CartItem{cartItem("A", 2, 45000)}

	_ = mergeItems(user, guest)

	assert.Equal(t, int32(1), user[0].Quantity)
	assert.Equal(t, int32(2), guest[0].Quantity)
}
