package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"food-delivery-api/middleware"
	"food-delivery-api/models"
	"food-delivery-api/store"
	"food-delivery-api/utils"
)

// OrderController handles order placement and the resolved order listing.
type OrderController struct {
	Users    store.UserStore
	Orders   store.OrderStore
	Resolver *Resolver
	Email    *utils.EmailService
}

// NewOrderController creates a new OrderController.
func NewOrderController(users store.UserStore, orders store.OrderStore, resolver *Resolver, email *utils.EmailService) *OrderController {
	return &OrderController{
		Users:    users,
		Orders:   orders,
		Resolver: resolver,
		Email:    email,
	}
}

type orderLineRequest struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

type placeOrderRequest struct {
	Products    []orderLineRequest `json:"products"`
	Address     string             `json:"address"`
	TotalAmount float64            `json:"totalAmount"`
}

// PlaceOrder persists an immutable order snapshot for the submitted lines
// and clears the user's cart. The order is created from the request body,
// not from the prior cart contents.
func (oc *OrderController) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	lines := make([]models.OrderLine, 0, len(req.Products))
	for _, p := range req.Products {
		productID, err := primitive.ObjectIDFromHex(p.Product)
		if err != nil {
			utils.WriteError(w, http.StatusBadRequest, "Invalid productId format")
			return
		}
		lines = append(lines, models.OrderLine{Product: productID, Quantity: p.Quantity})
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	user, err := oc.Users.FindByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		utils.WriteError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Database error")
		return
	}

	order := &models.Order{
		Products:    lines,
		User:        user.ID,
		TotalAmount: req.TotalAmount,
		Address:     req.Address,
		CreatedAt:   time.Now(),
	}
	if err := oc.Orders.Insert(ctx, order); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to create order")
		return
	}

	if _, err := oc.Users.Update(ctx, userID, func(u *models.User) error {
		u.ClearCart()
		return nil
	}); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to clear cart")
		return
	}

	go func(email, name string, order models.Order) {
		if err := oc.Email.SendOrderConfirmation(email, name, order); err != nil {
			log.Printf("Failed to send email to %s: %v", email, err)
		}
	}(user.Email, user.Name, *order)

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// GetOrders returns every order belonging to the user, product references
// resolved.
func (oc *OrderController) GetOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	orders, err := oc.Orders.FindByUser(ctx, userID)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}

	var ids []primitive.ObjectID
	for _, order := range orders {
		for _, line := range order.Products {
			ids = append(ids, line.Product)
		}
	}
	foods, err := oc.Resolver.Lookup(ctx, ids)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error resolving order products")
		return
	}

	resolved := make([]models.ResolvedOrder, 0, len(orders))
	for _, order := range orders {
		view := models.ResolvedOrder{
			ID:          order.ID,
			Products:    make([]models.ResolvedLine, 0, len(order.Products)),
			User:        order.User,
			TotalAmount: order.TotalAmount,
			Address:     order.Address,
			CreatedAt:   order.CreatedAt,
		}
		for _, line := range order.Products {
			food, ok := foods[line.Product]
			if !ok {
				continue
			}
			view.Products = append(view.Products, models.ResolvedLine{Product: food, Quantity: line.Quantity})
		}
		resolved = append(resolved, view)
	}

	utils.WriteJSON(w, http.StatusOK, resolved)
}
