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

// errCartLineMissing aborts a cart mutation when the product is not in the
// user's cart.
var errCartLineMissing = errors.New("product not in cart")

// CartController handles cart mutations and the resolved cart listing.
type CartController struct {
	Users    store.UserStore
	Resolver *Resolver
}

// NewCartController creates a new CartController.
func NewCartController(users store.UserStore, resolver *Resolver) *CartController {
	return &CartController{
		Users:    users,
		Resolver: resolver,
	}
}

type cartRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// AddToCart merges the given quantity into the user's cart line for the
// product, appending a new line when the product is not in the cart yet.
func (cc *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req cartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid productId format")
		return
	}
	if req.Quantity <= 0 {
		utils.WriteError(w, http.StatusBadRequest, "Quantity must be positive")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	user, err := cc.Users.Update(ctx, userID, func(u *models.User) error {
		u.AddCartLine(productID, req.Quantity)
		return nil
	})
	if errors.Is(err, store.ErrNotFound) {
		utils.WriteError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error updating cart")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Product added to cart successfully",
		"user":    user,
	})
}

// RemoveFromCart decrements the cart line for the product by the given
// quantity, dropping the line when it reaches zero. Without a positive
// quantity the line is dropped unconditionally.
func (cc *CartController) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req cartRequest
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
	user, err := cc.Users.Update(ctx, userID, func(u *models.User) error {
		if !u.RemoveCartLine(productID, req.Quantity) {
			return errCartLineMissing
		}
		return nil
	})
	if errors.Is(err, store.ErrNotFound) {
		utils.WriteError(w, http.StatusNotFound, "User not found")
		return
	}
	if errors.Is(err, errCartLineMissing) {
		utils.WriteError(w, http.StatusNotFound, "Product not found in the user's cart")
		return
	}
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error updating cart")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Product quantity updated in cart",
		"user":    user,
	})
}

// GetCart returns the user's cart with every product reference resolved to
// its food record.
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	user, err := cc.Users.FindByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		utils.WriteError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Database error")
		return
	}

	ids := make([]primitive.ObjectID, 0, len(user.Cart))
	for _, line := range user.Cart {
		ids = append(ids, line.Product)
	}
	foods, err := cc.Resolver.Lookup(ctx, ids)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error resolving cart products")
		return
	}

	items := make([]models.ResolvedLine, 0, len(user.Cart))
	for _, line := range user.Cart {
		food, ok := foods[line.Product]
		if !ok {
			// product removed from the catalog since it was carted
			continue
		}
		items = append(items, models.ResolvedLine{Product: food, Quantity: line.Quantity})
	}

	utils.WriteJSON(w, http.StatusOK, items)
}
