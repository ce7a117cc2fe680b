package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"food-delivery-api/models"
)

// NewRedisCache creates a Redis-backed FoodCache.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client:  client,
		baseTTL: 15 * time.Minute,
	}
}

// RedisCache stores JSON-encoded food records with a jittered TTL so cached
// entries do not all expire at once.
type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func (r *RedisCache) Get(ctx context.Context, id primitive.ObjectID) (*models.Food, error) {
	data, err := r.client.Get(ctx, cacheKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var food models.Food
	if err := json.Unmarshal(data, &food); err != nil {
		return nil, fmt.Errorf("unmarshal food failed: %w", err)
	}
	return &food, nil
}

func (r *RedisCache) Set(ctx context.Context, id primitive.ObjectID, food *models.Food) error {
	data, err := json.Marshal(food)
	if err != nil {
		return fmt.Errorf("marshal food failed: %w", err)
	}

	ttl := r.baseTTL + time.Duration(rand.Intn(60))*time.Second
	if err := r.client.Set(ctx, cacheKey(id), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func cacheKey(id primitive.ObjectID) string {
	return "food:" + id.Hex()
}
