package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"food-delivery-api/controllers"
)

// RegisterRoutes sets up all the routes for the application. The auth
// middleware is applied to the protected /api/user subtree only; signup,
// signin and the food catalog stay public.
func RegisterRoutes(
	router *mux.Router,
	auth func(http.Handler) http.Handler,
	userController *controllers.UserController,
	cartController *controllers.CartController,
	orderController *controllers.OrderController,
	favoriteController *controllers.FavoriteController,
	foodController *controllers.FoodController,
) {
	api := router.PathPrefix("/api").Subrouter()

	// Public routes
	api.HandleFunc("/user/signup", userController.Register).Methods("POST")
	api.HandleFunc("/user/signin", userController.Login).Methods("POST")

	// Food catalog
	api.HandleFunc("/food", foodController.GetFoods).Methods("GET")
	api.HandleFunc("/food", foodController.AddFoods).Methods("POST")
	api.HandleFunc("/food/{id}", foodController.GetFoodByID).Methods("GET")

	// Protected routes
	protected := api.PathPrefix("/user").Subrouter()
	protected.Use(auth)

	protected.HandleFunc("/cart", cartController.AddToCart).Methods("POST")
	protected.HandleFunc("/cart", cartController.GetCart).Methods("GET")
	protected.HandleFunc("/cart", cartController.RemoveFromCart).Methods("PATCH")

	protected.HandleFunc("/order", orderController.PlaceOrder).Methods("POST")
	protected.HandleFunc("/order", orderController.GetOrders).Methods("GET")

	protected.HandleFunc("/favorite", favoriteController.AddFavorite).Methods("POST")
	protected.HandleFunc("/favorite", favoriteController.GetFavorites).Methods("GET")
	protected.HandleFunc("/favorite", favoriteController.RemoveFavorite).Methods("PATCH")
}
