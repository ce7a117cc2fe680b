package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"food-delivery-api/models"
	"food-delivery-api/store"
	"food-delivery-api/utils"
)

// bcrypt cost for new password hashes
const hashCost = 10

const requestTimeout = 5 * time.Second

// UserController handles registration and login.
type UserController struct {
	Users  store.UserStore
	Tokens *utils.TokenManager
}

// NewUserController creates a new UserController.
func NewUserController(users store.UserStore, tokens *utils.TokenManager) *UserController {
	return &UserController{
		Users:  users,
		Tokens: tokens,
	}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Img      string `json:"img"`
}

// Register handles user registration
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if req.Email == "" || req.Password == "" {
		utils.WriteError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), hashCost)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error hashing password")
		return
	}

	user := &models.User{
		Name:       req.Name,
		Email:      req.Email,
		Password:   string(hashed),
		Img:        req.Img,
		Cart:       []models.CartLine{},
		Favourites: []primitive.ObjectID{},
		CreatedAt:  time.Now(),
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	if err := uc.Users.Insert(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			utils.WriteError(w, http.StatusConflict, "Email is already in use")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Error creating user")
		return
	}

	token, err := uc.Tokens.Issue(user.ID)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error generating token")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles user authentication
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	user, err := uc.Users.FindByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrNotFound) {
		utils.WriteError(w, http.StatusConflict, "User not found")
		return
	}
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		utils.WriteError(w, http.StatusForbidden, "Incorrect password")
		return
	}

	token, err := uc.Tokens.Issue(user.ID)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error generating token")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}
