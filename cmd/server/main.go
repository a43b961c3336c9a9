package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/Adilet2209/Travel_Journal/internal/config"
	"github.com/Adilet2209/Travel_Journal/internal/database"
	"github.com/Adilet2209/Travel_Journal/internal/handlers"
	"github.com/Adilet2209/Travel_Journal/internal/repository"
	"github.com/Adilet2209/Travel_Journal/internal/services"
	"github.com/Adilet2209/Travel_Journal/internal/tripadvisor"
	"github.com/Adilet2209/Travel_Journal/pkg/logger"
	"github.com/Adilet2209/Travel_Journal/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger()
	logger.Log.Info("Logger initialized")

	// Connect to Postgres and run migrations
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	// --- Repositories ---
	userRepo := repository.NewUserRepository(db)
	tripRepo := repository.NewTripRepository(db)
	placeRepo := repository.NewPlaceRepository(db)

	// --- Services ---
	userService := services.NewUserService(userRepo)
	tripService := services.NewTripService(tripRepo, userRepo)
	placeService := services.NewPlaceService(placeRepo)
	lookupClient := tripadvisor.NewClient(cfg.TripAdvisorBaseURL, cfg.TripAdvisorAPIKey)

	// --- Handlers ---
	userHandler := handlers.NewUserHandler(userService, cfg)
	tripHandler := handlers.NewTripHandler(tripService, cfg)
	placeHandler := handlers.NewPlaceHandler(placeService, cfg)
	lookupHandler := handlers.NewTripAdvisorHandler(lookupClient, cfg)
	healthHandler := handlers.NewHealthHandler(db)

	// Initialize Gorilla Mux router
	router := mux.NewRouter()
	router.Use(middleware.LoggingMiddleware)

	protected := middleware.AuthMiddleware(cfg.JWTSecret)
	optional := middleware.OptionalAuthMiddleware(cfg.JWTSecret)

	router.HandleFunc("/health", healthHandler.HealthCheckHandler).Methods("GET")

	// Auth routes
	router.HandleFunc("/auth/register", userHandler.RegisterUserHandler).Methods("POST")
	router.HandleFunc("/auth/login", userHandler.LoginUserHandler).Methods("POST")

	// Trip routes. Listing is public but picks up the caller's identity
	// when a token is present, for the drafts filter.
	router.Handle("/trips", protected(http.HandlerFunc(tripHandler.CreateTripHandler))).Methods("POST")
	router.Handle("/trips", optional(http.HandlerFunc(tripHandler.GetTripsHandler))).Methods("GET")
	router.Handle("/trips/my", protected(http.HandlerFunc(tripHandler.GetMyTripsHandler))).Methods("GET")
	router.HandleFunc("/trips/{id}", tripHandler.GetTripHandler).Methods("GET")
	router.Handle("/trips/{id}", protected(http.HandlerFunc(tripHandler.UpdateTripHandler))).Methods("PUT")
	router.Handle("/trips/{id}", protected(http.HandlerFunc(tripHandler.DeleteTripHandler))).Methods("DELETE")

	// Catalog lookups and item-level place routes
	router.HandleFunc("/hotels", placeHandler.GetHotelsHandler).Methods("GET")
	router.Handle("/hotels/{id}", protected(http.HandlerFunc(placeHandler.UpdateHotelHandler))).Methods("PUT")
	router.Handle("/hotels/{id}", protected(http.HandlerFunc(placeHandler.DeleteHotelHandler))).Methods("DELETE")

	router.HandleFunc("/restaurants", placeHandler.GetRestaurantsHandler).Methods("GET")
	router.Handle("/restaurants/{id}", protected(http.HandlerFunc(placeHandler.UpdateRestaurantHandler))).Methods("PUT")
	router.Handle("/restaurants/{id}", protected(http.HandlerFunc(placeHandler.DeleteRestaurantHandler))).Methods("DELETE")

	router.HandleFunc("/activities", placeHandler.GetActivitiesHandler).Methods("GET")
	router.Handle("/activities/{id}", protected(http.HandlerFunc(placeHandler.UpdateActivityHandler))).Methods("PUT")
	router.Handle("/activities/{id}", protected(http.HandlerFunc(placeHandler.DeleteActivityHandler))).Methods("DELETE")

	// External lookup proxy
	router.HandleFunc("/tripadvisor/search", lookupHandler.SearchHandler).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"}, // adjust to frontend origin
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(router)

	fmt.Printf("Server running on port %s\n", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, handler))
}
