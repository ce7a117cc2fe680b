package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"food-delivery-api/middleware"
	"food-delivery-api/models"
	"food-delivery-api/store"
	"food-delivery-api/utils"
)

// FavoriteController handles the user's favorites set.
type FavoriteController struct {
	Users    store.UserStore
	Resolver *Resolver
}

// NewFavoriteController creates a new FavoriteController.
func NewFavoriteController(users store.UserStore, resolver *Resolver) *FavoriteController {
	return &FavoriteController{
		Users:    users,
		Resolver: resolver,
	}
}

type favoriteRequest struct {
	ProductID string `json:"productId"`
}

// AddFavorite adds the product to the user's favorites set. Adding a product
// that is already a favorite is a no-op, not an error.
func (fc *FavoriteController) AddFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req favoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if req.ProductID == "" {
		utils.WriteError(w, http.StatusBadRequest, "productId is required")
		return
	}
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid productId format")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	user, err := fc.Users.Update(ctx, userID, func(u *models.User) error {
		u.AddFavourite(productID)
		return nil
	})
	if errors.Is(err, store.ErrNotFound) {
		utils.WriteError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error updating favorites")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Product added to favorites",
		"user":    user,
	})
}

// RemoveFavorite filters the product out of the user's favorites set.
// Removing a product that is not a favorite is a no-op, not an error.
func (fc *FavoriteController) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req favoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid productId format")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	user, err := fc.Users.Update(ctx, userID, func(u *models.User) error {
		u.RemoveFavourite(productID)
		return nil
	})
	if errors.Is(err, store.ErrNotFound) {
		utils.WriteError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error updating favorites")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Product removed from favorites successfully",
		"user":    user,
	})
}

// GetFavorites returns the user's favorites with every entry resolved to its
// food record.
func (fc *FavoriteController) GetFavorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	user, err := fc.Users.FindByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		utils.WriteError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Database error")
		return
	}

	foods, err := fc.Resolver.Lookup(ctx, user.Favourites)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error resolving favorite products")
		return
	}

	favorites := make([]models.Food, 0, len(user.Favourites))
	for _, id := range user.Favourites {
		if food, ok := foods[id]; ok {
			favorites = append(favorites, food)
		}
	}

	utils.WriteJSON(w, http.StatusOK, favorites)
}
