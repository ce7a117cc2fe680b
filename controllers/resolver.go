package controllers

import (
	"context"
	"errors"
	"log"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"food-delivery-api/cache"
	"food-delivery-api/models"
	"food-delivery-api/store"
)

// Resolver looks up the food records behind a set of product references,
// consulting the cache before the store. A nil cache degrades to plain
// store reads; cache failures are logged, never surfaced.
type Resolver struct {
	Foods store.FoodStore
	Cache cache.FoodCache
}

// Lookup returns the food records for the given ids, keyed by id. Ids that
// no longer exist in the catalog are simply absent from the result.
func (rs *Resolver) Lookup(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Food, error) {
	found := make(map[primitive.ObjectID]models.Food, len(ids))

	var missing []primitive.ObjectID
	for _, id := range ids {
		if _, ok := found[id]; ok {
			continue
		}
		if rs.Cache != nil {
			food, err := rs.Cache.Get(ctx, id)
			if err == nil {
				found[id] = *food
				continue
			}
			if !errors.Is(err, cache.ErrCacheMiss) {
				log.Printf("food cache get: %v", err)
			}
		}
		missing = append(missing, id)
	}

	if len(missing) == 0 {
		return found, nil
	}

	fromStore, err := rs.Foods.FindByIDs(ctx, missing)
	if err != nil {
		return nil, err
	}
	for id, food := range fromStore {
		found[id] = food
		if rs.Cache != nil {
			go func(id primitive.ObjectID, food models.Food) {
				if err := rs.Cache.Set(context.Background(), id, &food); err != nil {
					log.Printf("food cache set: %v", err)
				}
			}(id, food)
		}
	}
	return found, nil
}
