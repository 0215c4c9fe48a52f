package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"social-server/handlers"
	"social-server/middleware"
	"social-server/services"
	"social-server/store"
)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	mongoURI := getenv("MONGO_URI", "mongodb://localhost:27017")
	mongoDB := getenv("MONGO_DB", "social_db")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	userStore, err := store.NewMongoStore(ctx, mongoURI, mongoDB)
	if err != nil {
		log.Fatalf("MongoDB connection failed: %v", err)
	}

	userService := services.NewUserService(userStore, jwtSecret)
	userHandler := handlers.NewUserHandler(userService)
	authHandler := handlers.NewAuthHandler(userService)

	r := mux.NewRouter()

	allowedOrigins := strings.Split(getenv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173"), ",")
	r.Use(middleware.CORSMiddleware(allowedOrigins))
	r.Use(middleware.ErrorMiddleware())

	// Auth routes
	authRouter := r.PathPrefix("/auth").Subrouter()
	authRouter.HandleFunc("/register", authHandler.RegisterUser).Methods("POST", "OPTIONS")
	authRouter.HandleFunc("/login", authHandler.LoginUser).Methods("POST", "OPTIONS")

	// Profile reads are public; mutations require a resolved caller identity
	r.HandleFunc("/users/{id}", userHandler.GetUser).Methods("GET")

	userRouter := r.PathPrefix("/users").Subrouter()
	userRouter.Use(middleware.JWTMiddleware(jwtSecret))
	userRouter.HandleFunc("/{id}", userHandler.UpdateUser).Methods("PUT", "OPTIONS")
	userRouter.HandleFunc("/{id}", userHandler.DeleteUser).Methods("DELETE", "OPTIONS")
	userRouter.HandleFunc("/{id}/follow", userHandler.FollowUser).Methods("POST", "OPTIONS")
	userRouter.HandleFunc("/{id}/unfollow", userHandler.UnfollowUser).Methods("POST", "OPTIONS")

	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	addr := getenv("LISTEN_ADDR", ":8080")
	log.Printf("Server starting on %s", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}
