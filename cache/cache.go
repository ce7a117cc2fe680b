package cache

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"food-delivery-api/models"
)

// FoodCache caches food records by id in front of the food store.
type FoodCache interface {
	Get(ctx context.Context, id primitive.ObjectID) (*models.Food, error)
	Set(ctx context.Context, id primitive.ObjectID, food *models.Food) error
}

// ErrCacheMiss is returned by Get when the id is not cached.
var ErrCacheMiss = errors.New("cache miss")
