package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"food-delivery-api/models"
)

// updateRetries bounds how often a guarded user update is retried after
// losing against a concurrent writer.
const updateRetries = 3

// Users is the MongoDB-backed UserStore.
type Users struct {
	col *mongo.Collection
}

// NewUsers creates a Users store on the "users" collection.
func NewUsers(db *mongo.Database) *Users {
	return &Users{col: db.Collection("users")}
}

// EnsureIndexes creates the unique email index the registration conflict
// check relies on.
func (s *Users) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

func (s *Users) Insert(ctx context.Context, user *models.User) error {
	res, err := s.col.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *Users) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *Users) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

// Update implements the guarded read-modify-write cycle: the replace only
// matches when the document still carries the version the mutation was
// applied against, so two concurrent cart or favourites updates can never
// silently overwrite each other.
func (s *Users) Update(ctx context.Context, id primitive.ObjectID, mutate func(*models.User) error) (*models.User, error) {
	for attempt := 0; attempt < updateRetries; attempt++ {
		user, err := s.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := mutate(user); err != nil {
			return nil, err
		}
		prev := user.Version
		user.Version = prev + 1
		res, err := s.col.ReplaceOne(ctx, bson.M{"_id": id, "version": prev}, user)
		if err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
		if res.MatchedCount == 1 {
			return user, nil
		}
		// lost the race, reload and retry
	}
	return nil, ErrConflict
}

// Orders is the MongoDB-backed OrderStore.
type Orders struct {
	col *mongo.Collection
}

// NewOrders creates an Orders store on the "orders" collection.
func NewOrders(db *mongo.Database) *Orders {
	return &Orders{col: db.Collection("orders")}
}

func (s *Orders) Insert(ctx context.Context, order *models.Order) error {
	res, err := s.col.InsertOne(ctx, order)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	order.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *Orders) FindByUser(ctx context.Context, user primitive.ObjectID) ([]models.Order, error) {
	cursor, err := s.col.Find(ctx, bson.M{"user": user})
	if err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return orders, nil
}

// Foods is the MongoDB-backed FoodStore.
type Foods struct {
	col *mongo.Collection
}

// NewFoods creates a Foods store on the "foods" collection.
func NewFoods(db *mongo.Database) *Foods {
	return &Foods{col: db.Collection("foods")}
}

func (s *Foods) Insert(ctx context.Context, foods []models.Food) ([]models.Food, error) {
	docs := make([]interface{}, len(foods))
	for i := range foods {
		docs[i] = foods[i]
	}
	res, err := s.col.InsertMany(ctx, docs)
	if err != nil {
		return nil, fmt.Errorf("insert foods: %w", err)
	}
	for i, id := range res.InsertedIDs {
		foods[i].ID = id.(primitive.ObjectID)
	}
	return foods, nil
}

func (s *Foods) Find(ctx context.Context, categories []string, search string) ([]models.Food, error) {
	filter := bson.M{}
	if len(categories) > 0 {
		filter["category"] = bson.M{"$in": categories}
	}
	if search != "" {
		filter["name"] = bson.M{"$regex": search, "$options": "i"}
	}

	cursor, err := s.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find foods: %w", err)
	}
	defer cursor.Close(ctx)

	var foods []models.Food
	if err := cursor.All(ctx, &foods); err != nil {
		return nil, fmt.Errorf("decode foods: %w", err)
	}
	return foods, nil
}

func (s *Foods) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Food, error) {
	var food models.Food
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&food)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find food: %w", err)
	}
	return &food, nil
}

func (s *Foods) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Food, error) {
	if len(ids) == 0 {
		return map[primitive.ObjectID]models.Food{}, nil
	}

	cursor, err := s.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find foods: %w", err)
	}
	defer cursor.Close(ctx)

	foods := make(map[primitive.ObjectID]models.Food, len(ids))
	for cursor.Next(ctx) {
		var food models.Food
		if err := cursor.Decode(&food); err != nil {
			return nil, fmt.Errorf("decode food: %w", err)
		}
		foods[food.ID] = food
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate foods: %w", err)
	}
	return foods, nil
}
