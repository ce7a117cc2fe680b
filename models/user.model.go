package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartLine is one (product, quantity) entry in a user's cart. A cart holds
// at most one line per product; lines with quantity <= 0 are never persisted.
type CartLine struct {
	Product  primitive.ObjectID `bson:"product" json:"product"`
	Quantity int                `bson:"quantity" json:"quantity"`
}

// User represents a customer account. The cart and favourites live inside
// the user document and are the only parts mutated after registration.
// Version guards concurrent read-modify-write cycles on the document.
type User struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	Name       string               `bson:"name" json:"name"`
	Email      string               `bson:"email" json:"email"`
	Password   string               `bson:"password" json:"password,omitempty"`
	Img        string               `bson:"img,omitempty" json:"img,omitempty"`
	Cart       []CartLine           `bson:"cart" json:"cart"`
	Favourites []primitive.ObjectID `bson:"favourites" json:"favourites"`
	Version    int64                `bson:"version" json:"-"`
	CreatedAt  time.Time            `bson:"created_at" json:"created_at"`
}

// AddCartLine merges the quantity into an existing line for the product, or
// appends a new line when the product is not in the cart yet.
func (u *User) AddCartLine(product primitive.ObjectID, quantity int) {
	for i := range u.Cart {
		if u.Cart[i].Product == product {
			u.Cart[i].Quantity += quantity
			return
		}
	}
	u.Cart = append(u.Cart, CartLine{Product: product, Quantity: quantity})
}

// RemoveCartLine decrements the line for the product by quantity, dropping
// the line when the result reaches zero. A quantity of zero or less drops
// the line unconditionally. Reports whether the product was in the cart.
func (u *User) RemoveCartLine(product primitive.ObjectID, quantity int) bool {
	for i := range u.Cart {
		if u.Cart[i].Product != product {
			continue
		}
		if quantity > 0 {
			u.Cart[i].Quantity -= quantity
			if u.Cart[i].Quantity > 0 {
				return true
			}
		}
		u.Cart = append(u.Cart[:i], u.Cart[i+1:]...)
		return true
	}
	return false
}

// ClearCart empties the cart.
func (u *User) ClearCart() {
	u.Cart = []CartLine{}
}

// AddFavourite adds the product to the favourites set. Adding an id that is
// already present is a no-op; reports whether the set changed.
func (u *User) AddFavourite(product primitive.ObjectID) bool {
	for _, fav := range u.Favourites {
		if fav == product {
			return false
		}
	}
	u.Favourites = append(u.Favourites, product)
	return true
}

// RemoveFavourite filters the product out of the favourites set. Removing an
// absent id is a no-op.
func (u *User) RemoveFavourite(product primitive.ObjectID) {
	kept := u.Favourites[:0]
	for _, fav := range u.Favourites {
		if fav != product {
			kept = append(kept, fav)
		}
	}
	u.Favourites = kept
}
