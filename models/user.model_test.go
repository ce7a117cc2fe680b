package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAddCartLine_MergesQuantities(t *testing.T) {
	product := primitive.NewObjectID()
	user := &User{}

	user.AddCartLine(product, 2)
	user.AddCartLine(product, 3)

	require.Len(t, user.Cart, 1)
	assert.Equal(t, product, user.Cart[0].Product)
	assert.Equal(t, 5, user.Cart[0].Quantity)
}

func TestAddCartLine_DistinctProductsAppend(t *testing.T) {
	user := &User{}

	first := primitive.NewObjectID()
	second := primitive.NewObjectID()
	user.AddCartLine(first, 1)
	user.AddCartLine(second, 4)

	require.Len(t, user.Cart, 2)
	assert.Equal(t, first, user.Cart[0].Product)
	assert.Equal(t, second, user.Cart[1].Product)
}

func TestRemoveCartLine(t *testing.T) {
	product := primitive.NewObjectID()

	tests := []struct {
		name         string
		start        int
		remove       int
		wantRemoved  bool
		wantLine     bool
		wantQuantity int
	}{
		{name: "partial decrement keeps line", start: 5, remove: 2, wantRemoved: true, wantLine: true, wantQuantity: 3},
		{name: "decrement to zero drops line", start: 2, remove: 2, wantRemoved: true, wantLine: false},
		{name: "decrement past zero drops line", start: 2, remove: 10, wantRemoved: true, wantLine: false},
		{name: "no quantity drops line", start: 7, remove: 0, wantRemoved: true, wantLine: false},
		{name: "negative quantity drops line", start: 7, remove: -1, wantRemoved: true, wantLine: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := &User{Cart: []CartLine{{Product: product, Quantity: tt.start}}}

			removed := user.RemoveCartLine(product, tt.remove)

			assert.Equal(t, tt.wantRemoved, removed)
			if tt.wantLine {
				require.Len(t, user.Cart, 1)
				assert.Equal(t, tt.wantQuantity, user.Cart[0].Quantity)
			} else {
				assert.Empty(t, user.Cart)
			}
		})
	}
}

func TestRemoveCartLine_MissingProduct(t *testing.T) {
	user := &User{Cart: []CartLine{{Product: primitive.NewObjectID(), Quantity: 1}}}

	removed := user.RemoveCartLine(primitive.NewObjectID(), 1)

	assert.False(t, removed)
	assert.Len(t, user.Cart, 1)
}

func TestClearCart(t *testing.T) {
	user := &User{Cart: []CartLine{{Product: primitive.NewObjectID(), Quantity: 3}}}

	user.ClearCart()

	assert.NotNil(t, user.Cart)
	assert.Empty(t, user.Cart)
}

func TestAddFavourite_Idempotent(t *testing.T) {
	product := primitive.NewObjectID()
	user := &User{}

	assert.True(t, user.AddFavourite(product))
	assert.False(t, user.AddFavourite(product))
	assert.Len(t, user.Favourites, 1)
}

func TestRemoveFavourite(t *testing.T) {
	keep := primitive.NewObjectID()
	drop := primitive.NewObjectID()
	user := &User{Favourites: []primitive.ObjectID{keep, drop}}

	user.RemoveFavourite(drop)

	require.Len(t, user.Favourites, 1)
	assert.Equal(t, keep, user.Favourites[0])
}

func TestRemoveFavourite_AbsentIsNoop(t *testing.T) {
	keep := primitive.NewObjectID()
	user := &User{Favourites: []primitive.ObjectID{keep}}

	user.RemoveFavourite(primitive.NewObjectID())

	assert.Equal(t, []primitive.ObjectID{keep}, user.Favourites)
}
