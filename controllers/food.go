package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"food-delivery-api/models"
	"food-delivery-api/store"
	"food-delivery-api/utils"
)

// FoodController serves the food catalog the cart, favorites and order
// listings join against.
type FoodController struct {
	Foods store.FoodStore
}

// NewFoodController creates a new FoodController.
func NewFoodController(foods store.FoodStore) *FoodController {
	return &FoodController{Foods: foods}
}

// AddFoods bulk-inserts catalog entries from a JSON array.
func (fc *FoodController) AddFoods(w http.ResponseWriter, r *http.Request) {
	var foods []models.Food
	body := json.NewDecoder(r.Body)
	if err := body.Decode(&foods); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if len(foods) == 0 {
		utils.WriteError(w, http.StatusBadRequest, "No food items provided")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	created, err := fc.Foods.Insert(ctx, foods)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error creating food items")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, created)
}

// GetFoods lists the catalog, optionally filtered by category and a
// case-insensitive name search.
func (fc *FoodController) GetFoods(w http.ResponseWriter, r *http.Request) {
	var categories []string
	if raw := r.URL.Query().Get("categories"); raw != "" {
		categories = strings.Split(raw, ",")
	}
	search := r.URL.Query().Get("search")

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	foods, err := fc.Foods.Find(ctx, categories, search)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error retrieving food items")
		return
	}
	if foods == nil {
		foods = []models.Food{}
	}

	utils.WriteJSON(w, http.StatusOK, foods)
}

// GetFoodByID returns a single catalog entry.
func (fc *FoodController) GetFoodByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid food ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	food, err := fc.Foods.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		utils.WriteError(w, http.StatusNotFound, "Food not found")
		return
	}
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error retrieving food item")
		return
	}

	utils.WriteJSON(w, http.StatusOK, food)
}
