package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"food-delivery-api/cache"
	"food-delivery-api/controllers"
	"food-delivery-api/middleware"
	"food-delivery-api/routes"
	"food-delivery-api/store"
	"food-delivery-api/utils"
)

// Session tokens are long-lived; the client holds one until it logs in again.
const sessionTTL = 10 * 365 * 24 * time.Hour

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "fooddelivery"
	}

	// Connect to MongoDB
	client, err := utils.ConnectDB(mongoURI)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := client.Disconnect(context.TODO()); err != nil {
			log.Fatal(err)
		}
	}()

	db := client.Database(dbName)
	users := store.NewUsers(db)
	orders := store.NewOrders(db)
	foods := store.NewFoods(db)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := users.EnsureIndexes(ctx); err != nil {
		cancel()
		log.Fatal(err)
	}
	cancel()

	tokens := utils.NewTokenManager([]byte(secret), sessionTTL)
	emailService := utils.NewEmailService(os.Getenv("SENDGRID_API_KEY"), os.Getenv("EMAIL_SENDER"))

	// Food cache is optional; without REDIS_ADDR lookups go straight to Mongo.
	var foodCache cache.FoodCache
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		foodCache = cache.NewRedisCache(rdb)
	}
	resolver := &controllers.Resolver{Foods: foods, Cache: foodCache}

	// Initialize controllers
	userController := controllers.NewUserController(users, tokens)
	cartController := controllers.NewCartController(users, resolver)
	orderController := controllers.NewOrderController(users, orders, resolver, emailService)
	favoriteController := controllers.NewFavoriteController(users, resolver)
	foodController := controllers.NewFoodController(foods)

	// Set up the router
	router := mux.NewRouter()
	routes.RegisterRoutes(router, middleware.Auth(tokens), userController, cartController, orderController, favoriteController, foodController)

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Printf("Server is running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
