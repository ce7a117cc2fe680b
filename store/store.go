package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"food-delivery-api/models"
)

var (
	// ErrNotFound is returned when no document matches the lookup.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate is returned when an insert violates a unique index.
	ErrDuplicate = errors.New("duplicate document")
	// ErrConflict is returned when a guarded update keeps losing against
	// concurrent writers.
	ErrConflict = errors.New("concurrent modification")
)

// UserStore is the persistence boundary for user documents.
// Consumers define this interface, not the MongoDB implementation.
type UserStore interface {
	Insert(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	// Update loads the user, applies mutate and writes the document back
	// guarded by its version field, retrying a bounded number of times on
	// contention. An error returned by mutate aborts the update unchanged.
	Update(ctx context.Context, id primitive.ObjectID, mutate func(*models.User) error) (*models.User, error)
}

// OrderStore is the persistence boundary for order documents.
type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) error
	FindByUser(ctx context.Context, user primitive.ObjectID) ([]models.Order, error)
}

// FoodStore is the persistence boundary for the food catalog.
type FoodStore interface {
	Insert(ctx context.Context, foods []models.Food) ([]models.Food, error)
	Find(ctx context.Context, categories []string, search string) ([]models.Food, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Food, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Food, error)
}
