package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(id string, price float64, qty, stock int) CartItem {
	return CartItem{
		ProductID: id,
		Title:     "Produit " + id,
		Price:     price,
		Quantity:  qty,
		Stock:     stock,
	}
}

func TestAddItemNewLine(t *testing.T) {
	cart := AddItem(nil, item("p1", 10, 2, 5))

	require.Len(t, cart, 1)
	assert.Equal(t, "p1", cart[0].ProductID)
	assert.Equal(t, 2, cart[0].Quantity)
}

func TestAddItemMergesExistingLine(t *testing.T) {
	cart := AddItem(nil, item("p1", 10, 2, 5))
	cart = AddItem(cart, item("p1", 10, 1, 5))

	require.Len(t, cart, 1)
	assert.Equal(t, 3, cart[0].Quantity)
}

func TestAddItemClampedToStock(t *testing.T) {
	// Quelle que soit la répétition, la quantité ne dépasse jamais le stock
	var cart []CartItem
	for i := 0; i < 10; i++ {
		cart = AddItem(cart, item("p1", 10, 2, 5))
	}

	require.Len(t, cart, 1)
	assert.Equal(t, 5, cart[0].Quantity)
}

func TestAddItemZeroQuantityBecomesOne(t *testing.T) {
	cart := AddItem(nil, item("p1", 10, 0, 5))

	require.Len(t, cart, 1)
	assert.Equal(t, 1, cart[0].Quantity)
}

func TestAddItemRefreshesSnapshot(t *testing.T) {
	cart := AddItem(nil, item("p1", 10, 1, 5))

	updated := item("p1", 12.5, 1, 8)
	cart = AddItem(cart, updated)

	require.Len(t, cart, 1)
	assert.Equal(t, 12.5, cart[0].Price)
	assert.Equal(t, 8, cart[0].Stock)
	assert.Equal(t, 2, cart[0].Quantity)
}

func TestSetQuantityClampedToBounds(t *testing.T) {
	cart := AddItem(nil, item("p1", 10, 2, 5))

	cart = SetQuantity(cart, "p1", 99)
	assert.Equal(t, 5, cart[0].Quantity)

	cart = SetQuantity(cart, "p1", 0)
	assert.Equal(t, 1, cart[0].Quantity)

	cart = SetQuantity(cart, "p1", 3)
	assert.Equal(t, 3, cart[0].Quantity)
}

func TestSetQuantityUnknownProductIsNoop(t *testing.T) {
	cart := AddItem(nil, item("p1", 10, 2, 5))
	cart = SetQuantity(cart, "p2", 4)

	require.Len(t, cart, 1)
	assert.Equal(t, 2, cart[0].Quantity)
}

func TestRemoveItem(t *testing.T) {
	cart := AddItem(nil, item("p1", 10, 2, 5))
	cart = AddItem(cart, item("p2", 5, 1, 3))

	cart = RemoveItem(cart, "p1")

	require.Len(t, cart, 1)
	assert.Equal(t, "p2", cart[0].ProductID)
}

func TestCartTotal(t *testing.T) {
	cart := AddItem(nil, item("p1", 10, 2, 5))
	cart = AddItem(cart, item("p2", 5, 3, 10))

	assert.InDelta(t, 35.0, CartTotal(cart), 1e-9)
}

func TestCartTotalEmpty(t *testing.T) {
	assert.Zero(t, CartTotal(nil))
}
