package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderLine is one (product, quantity) entry in an order.
type OrderLine struct {
	Product  primitive.ObjectID `bson:"product" json:"product"`
	Quantity int                `bson:"quantity" json:"quantity"`
}

// Order is an immutable snapshot created at checkout. It references the
// owning user by id and is never mutated after insertion.
type Order struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Products    []OrderLine        `bson:"products" json:"products"`
	User        primitive.ObjectID `bson:"user" json:"user"`
	TotalAmount float64            `bson:"total_amount" json:"total_amount"`
	Address     string             `bson:"address" json:"address"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// ResolvedLine pairs a full food record with a quantity. List endpoints
// return these instead of raw product references.
type ResolvedLine struct {
	Product  Food `json:"product"`
	Quantity int  `json:"quantity"`
}

// ResolvedOrder is the read-only view of an Order with every product
// reference resolved to its food record.
type ResolvedOrder struct {
	ID          primitive.ObjectID `json:"id"`
	Products    []ResolvedLine     `json:"products"`
	User        primitive.ObjectID `json:"user"`
	TotalAmount float64            `json:"total_amount"`
	Address     string             `json:"address"`
	CreatedAt   time.Time          `json:"created_at"`
}
