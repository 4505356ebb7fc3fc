package state

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/absrenew/storefront/cart/pkg/response"
)

func item(sku string, qty int32, price int64) response.CartItem {
	return response.CartItem{
		Sku:        sku,
		Quantity:   qty,
		PriceAtAdd: decimal.NewFromInt(price),
		Name:       "ABS Module " + sku,
		Checked:    true,
	}
}

func TestAddDistinctSkusSumsQuantities(t *testing.T) {
	s := Initial()
	var wantTotal int64
	for i := 0; i < 5; i++ {
		qty := int32(i + 1)
		wantTotal += int64(qty)
		s = Reduce(s, Action{Type: AddItem, Item: item(fmt.Sprintf("ABS-%d", i), qty, 10000)})
	}

	assert.Len(t, s.Items, 5)
	assert.Equal(t, wantTotal, s.TotalItems)
}

func TestAddSameSkuIncrementsInsteadOfDuplicating(t *testing.T) {
	s := Initial()
	s = Reduce(s, Action{Type: AddItem, Item: item("ABS-1", 2, 45000)})
	s = Reduce(s, Action{Type: AddItem, Item: item("ABS-1", 3, 45000)})

	assert.Len(t, s.Items, 1)
	assert.Equal(t, int32(5), s.Items[0].Quantity)
	assert.Equal(t, int64(5), s.TotalItems)
	assert.True(t, decimal.NewFromInt(225000).Equal(s.TotalPrice))
}

func TestLoadCartReplacesItemsWholesale(t *testing.T) {
	s := Initial()
	s = Reduce(s, Action{Type: AddItem, Item: item("STALE", 9, 1)})
	s = Reduce(s, Action{Type: LoadCart, Items: []response.CartItem{
		item("ABS-1", 1, 30000),
		item("ABS-2", 2, 20000),
	}})

	assert.Len(t, s.Items, 2)
	assert.Equal(t, int64(3), s.TotalItems)
	assert.True(t, decimal.NewFromInt(70000).Equal(s.TotalPrice))
	assert.Empty(t, s.Err)
	assert.False(t, s.Loading)
}

func TestUpdateQuantityClampsToOne(t *testing.T) {
	s := Initial()
	s = Reduce(s, Action{Type: AddItem, Item: item("ABS-1", 3, 10000)})
	s = Reduce(s, Action{Type: UpdateQuantity, Sku: "ABS-1", Quantity: 0})

	assert.Equal(t, int32(1), s.Items[0].Quantity)
	assert.Equal(t, int64(1), s.TotalItems)
}

func TestRemoveItemFiltersBySku(t *testing.T) {
	s := Initial()
	s = Reduce(s, Action{Type: AddItem, Item: item("ABS-1", 1, 10000)})
	s = Reduce(s, Action{Type: AddItem, Item: item("ABS-2", 2, 20000)})
	s = Reduce(s, Action{Type: RemoveItem, Sku: "ABS-1"})

	assert.Len(t, s.Items, 1)
	assert.Equal(t, "ABS-2", s.Items[0].Sku)
	assert.True(t, decimal.NewFromInt(40000).Equal(s.TotalPrice))
}

func TestUpdateCheckedDoesNotTouchTotals(t *testing.T) {
	s := Initial()
	s = Reduce(s, Action{Type: AddItem, Item: item("ABS-1", 2, 10000)})
	before := s.TotalPrice

	s = Reduce(s, Action{Type: UpdateChecked, Sku: "ABS-1", Checked: false})

	assert.False(t, s.Items[0].Checked)
	assert.Equal(t, int64(2), s.TotalItems)
	assert.True(t, before.Equal(s.TotalPrice))
}

func TestClearCartZeroesTotals(t *testing.T) {
	s := Initial()
	s = Reduce(s, Action{Type: AddItem, Item: item("ABS-1", 2, 10000)})
	s = Reduce(s, Action{Type: ClearCart})

	assert.Empty(t, s.Items)
	assert.Zero(t, s.TotalItems)
	assert.True(t, s.TotalPrice.IsZero())
}

func TestErrorActionLeavesPriorItemsIntact(t *testing.T) {
	s := Initial()
	s = Reduce(s, Action{Type: AddItem, Item: item("ABS-1", 2, 10000)})
	s = Reduce(s, Action{Type: SetLoading, Loading: true})
	s = Reduce(s, Action{Type: SetError, Err: "cart not found"})

	assert.Equal(t, "cart not found", s.Err)
	assert.False(t, s.Loading)
	assert.Len(t, s.Items, 1)
	assert.Equal(t, int64(2), s.TotalItems)
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	s := Initial()
	s = Reduce(s, Action{Type: AddItem, Item: item("ABS-1", 2, 10000)})

	next := Reduce(s, Action{Type: UpdateQuantity, Sku: "ABS-1", Quantity: 7})

	assert.Equal(t, int32(2), s.Items[0].Quantity)
	assert.Equal(t, int32(7), next.Items[0].Quantity)
}
