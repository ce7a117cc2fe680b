package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Food represents one item on the menu. Users reference foods by id from
// their cart, favourites and orders.
type Food struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Img         string             `bson:"img,omitempty" json:"img,omitempty"`
	Price       float64            `bson:"price" json:"price"`
	Ingredients []string           `bson:"ingredients" json:"ingredients"`
	Category    []string           `bson:"category,omitempty" json:"category,omitempty"`
}
