// Package state is the client-side cart reducer: a pure state transition
// function mirroring the server-held cart for instant UI feedback. All
// server calls happen outside the reducer; their results are dispatched
// back in as actions.
package state

import (
	"github.com/shopspring/decimal"

	"github.com/absrenew/storefront/cart/pkg/response"
)

type ActionType string

const (
	SetLoading     ActionType = "SET_LOADING"
	SetError       ActionType = "SET_ERROR"
	LoadCart       ActionType = "LOAD_CART"
	AddItem        ActionType = "ADD_ITEM"
	RemoveItem     ActionType = "REMOVE_ITEM"
	UpdateQuantity ActionType = "UPDATE_QUANTITY"
	UpdateChecked  ActionType = "UPDATE_CHECKED"
	ClearCart      ActionType = "CLEAR_CART"
)

type Action struct {
	Type     ActionType
	Items    []response.CartItem
	Item     response.CartItem
	Sku      string
	Quantity int32
	Checked  bool
	Loading  bool
	Err      string
}

type State struct {
	Items      []response.CartItem
	TotalItems int64
	TotalPrice decimal.Decimal
	Loading    bool
	Err        string
}

func Initial() State {
	return State{Items: []response.CartItem{}, TotalPrice: decimal.Zero}
}

// Reduce applies one action and returns the next state. The input state is
// never mutated. Totals are recomputed by a full scan on every mutating
// action rather than kept incrementally; carts are small.
func Reduce(s State, a Action) State {
	switch a.Type {
	case SetLoading:
		s.Loading = a.Loading
		return s
	case SetError:
		s.Loading = false
		s.Err = a.Err
		return s
	case LoadCart:
		s.Items = copyItems(a.Items)
		s.Loading = false
		s.Err = ""
		return recompute(s)
	case AddItem:
		items := copyItems(s.Items)
		found := false
		for i := range items {
			if items[i].Sku == a.Item.Sku {
				items[i].Quantity += a.Item.Quantity
				found = true
				break
			}
		}
		if !found {
			items = append(items, a.Item)
		}
		s.Items = items
		return recompute(s)
	case RemoveItem:
		items := make([]response.CartItem, 0, len(s.Items))
		for _, item := range s.Items {
			if item.Sku != a.Sku {
				items = append(items, item)
			}
		}
		s.Items = items
		return recompute(s)
	case UpdateQuantity:
		quantity := a.Quantity
		if quantity < 1 {
			quantity = 1
		}
		items := copyItems(s.Items)
		for i := range items {
			if items[i].Sku == a.Sku {
				items[i].Quantity = quantity
				break
			}
		}
		s.Items = items
		return recompute(s)
	case UpdateChecked:
		// Selection only affects which lines go to checkout, not the
		// displayed totals, so no recompute here.
		items := copyItems(s.Items)
		for i := range items {
			if items[i].Sku == a.Sku {
				items[i].Checked = a.Checked
				break
			}
		}
		s.Items = items
		return s
	case ClearCart:
		s.Items = []response.CartItem{}
		s.TotalItems = 0
		s.TotalPrice = decimal.Zero
		return s
	}
	return s
}

func recompute(s State) State {
	var totalItems int64
	totalPrice := decimal.Zero
	for _, item := range s.Items {
		totalItems += int64(item.Quantity)
		totalPrice = totalPrice.Add(
			item.PriceAtAdd.Mul(decimal.NewFromInt(int64(item.Quantity))),
		)
	}
	s.TotalItems = totalItems
	s.TotalPrice = totalPrice
	return s
}

func copyItems(items []response.CartItem) []response.CartItem {
	copied := make([]response.CartItem, len(items))
	copy(copied, items)
	return copied
}
