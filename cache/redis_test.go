package cache

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"food-delivery-api/models"
)

// setupTestRedis creates a miniredis server and returns a RedisCache backed
// by it.
func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	return NewRedisCache(client), mr
}

func TestGet_Miss(t *testing.T) {
	c, _ := setupTestRedis(t)

	_, err := c.Get(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestSetGet_Roundtrip(t *testing.T) {
	c, _ := setupTestRedis(t)

	food := &models.Food{
		ID:          primitive.NewObjectID(),
		Name:        "Margherita",
		Description: "Tomato, mozzarella, basil",
		Price:       8.5,
		Ingredients: []string{"tomato", "mozzarella", "basil"},
	}
	require.NoError(t, c.Set(context.Background(), food.ID, food))

	got, err := c.Get(context.Background(), food.ID)
	require.NoError(t, err)
	assert.Equal(t, food, got)
}

func TestSet_AppliesTTL(t *testing.T) {
	c, mr := setupTestRedis(t)

	id := primitive.NewObjectID()
	require.NoError(t, c.Set(context.Background(), id, &models.Food{ID: id, Name: "Ramen"}))

	ttl := mr.TTL("food:" + id.Hex())
	assert.Greater(t, ttl.Seconds(), 0.0)
}

func TestGet_CorruptEntry(t *testing.T) {
	c, mr := setupTestRedis(t)

	id := primitive.NewObjectID()
	require.NoError(t, mr.Set("food:"+id.Hex(), "{not json"))

	_, err := c.Get(context.Background(), id)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)

	var syntaxErr *json.SyntaxError
	assert.ErrorAs(t, err, &syntaxErr)
}
