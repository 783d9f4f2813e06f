package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/minchan-k/cinelog/internal/config"
	"github.com/minchan-k/cinelog/internal/database"
	"github.com/minchan-k/cinelog/internal/handlers"
	"github.com/minchan-k/cinelog/internal/kmdb"
	"github.com/minchan-k/cinelog/internal/middleware"
	"github.com/minchan-k/cinelog/internal/services"
)

func main() {
	// Check for migrate command
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		runMigrations()
		return
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := log.New(os.Stdout, "[cinelog] ", log.LstdFlags|log.Lshortfile)
	logger.Printf("Starting CineLog server in %s mode", cfg.Server.Env)

	// Initialize database connection
	db, err := database.New(database.Config{
		URL: cfg.Database.URL,
	})
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize Redis connection
	redisClient, err := database.NewRedisClient(database.RedisConfig{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if err != nil {
		logger.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	searchCache := database.NewSearchCache(redisClient, 10*time.Minute)

	// Initialize services
	kmdbClient := kmdb.NewClient(kmdb.Config{
		ServiceKey: cfg.KMDB.ServiceKey,
		BaseURL:    cfg.KMDB.BaseURL,
		Collection: cfg.KMDB.Collection,
	})
	reviewService := services.NewReviewService(db.Pool)
	layoutService := services.NewLayoutService(db.Pool)
	wishlistService := services.NewWishlistService(db.Pool)
	settingsService := services.NewSettingsService(db.Pool)
	searchService := services.NewSearchService(kmdbClient, searchCache, logger)

	// Initialize rate limiter (100 req/min in production, unlimited in local/dev)
	maxRequests := 1000
	if cfg.IsProduction() {
		maxRequests = 100
	}
	rateLimiter := middleware.NewRateLimiter(redisClient.Client, maxRequests, time.Minute, cfg.IsProduction())

	// Initialize handlers
	reviewHandler := handlers.NewReviewHandler(reviewService, logger)
	layoutHandler := handlers.NewLayoutHandler(layoutService, logger)
	wishlistHandler := handlers.NewWishlistHandler(wishlistService, logger)
	searchHandler := handlers.NewSearchHandler(searchService, logger)
	statsHandler := handlers.NewStatsHandler(reviewService, logger)
	settingsHandler := handlers.NewSettingsHandler(settingsService, logger)

	// Set up HTTP router
	mux := http.NewServeMux()

	// Search routes
	mux.Handle("GET /api/search", rateLimiter.Limit(http.HandlerFunc(searchHandler.Search)))
	mux.Handle("GET /api/search/latest", rateLimiter.Limit(http.HandlerFunc(searchHandler.Latest)))

	// Review routes
	mux.Handle("GET /api/reviews", rateLimiter.Limit(http.HandlerFunc(reviewHandler.List)))
	mux.Handle("POST /api/reviews", rateLimiter.Limit(http.HandlerFunc(reviewHandler.Create)))
	mux.Handle("GET /api/reviews/{id}", rateLimiter.Limit(http.HandlerFunc(reviewHandler.Get)))
	mux.Handle("PATCH /api/reviews/{id}", rateLimiter.Limit(http.HandlerFunc(reviewHandler.Update)))
	mux.Handle("DELETE /api/reviews/{id}", rateLimiter.Limit(http.HandlerFunc(reviewHandler.Delete)))
	mux.Handle("PUT /api/reviews/{id}/fields", rateLimiter.Limit(http.HandlerFunc(reviewHandler.ReplaceFields)))

	// Custom field layout routes
	mux.Handle("GET /api/layouts", rateLimiter.Limit(http.HandlerFunc(layoutHandler.List)))
	mux.Handle("POST /api/layouts", rateLimiter.Limit(http.HandlerFunc(layoutHandler.Create)))
	mux.Handle("GET /api/layouts/{id}/fields", rateLimiter.Limit(http.HandlerFunc(layoutHandler.Fields)))
	mux.Handle("DELETE /api/layouts/{id}", rateLimiter.Limit(http.HandlerFunc(layoutHandler.Delete)))

	// Wishlist routes
	mux.Handle("GET /api/wishlists", rateLimiter.Limit(http.HandlerFunc(wishlistHandler.List)))
	mux.Handle("POST /api/wishlists", rateLimiter.Limit(http.HandlerFunc(wishlistHandler.Create)))
	mux.Handle("GET /api/wishlists/{id}", rateLimiter.Limit(http.HandlerFunc(wishlistHandler.Get)))
	mux.Handle("PATCH /api/wishlists/{id}", rateLimiter.Limit(http.HandlerFunc(wishlistHandler.Rename)))
	mux.Handle("DELETE /api/wishlists/{id}", rateLimiter.Limit(http.HandlerFunc(wishlistHandler.Delete)))
	mux.Handle("POST /api/wishlists/{id}/movies", rateLimiter.Limit(http.HandlerFunc(wishlistHandler.AddMovie)))
	mux.Handle("DELETE /api/wishlists/{id}/movies/{movieID}", rateLimiter.Limit(http.HandlerFunc(wishlistHandler.RemoveMovie)))
	mux.Handle("GET /api/wishlists/{id}/export", rateLimiter.Limit(http.HandlerFunc(wishlistHandler.Export)))
	mux.Handle("POST /api/wishlists/{id}/import", rateLimiter.Limit(http.HandlerFunc(wishlistHandler.Import)))

	// Stats and settings routes
	mux.Handle("GET /api/stats/summary", rateLimiter.Limit(http.HandlerFunc(statsHandler.Summary)))
	mux.Handle("GET /api/settings", rateLimiter.Limit(http.HandlerFunc(settingsHandler.Get)))
	mux.Handle("PUT /api/settings", rateLimiter.Limit(http.HandlerFunc(settingsHandler.Update)))

	// Health check endpoint
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		dbErr := db.Health(r.Context())
		redisErr := redisClient.Health(r.Context())

		if dbErr != nil || redisErr != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			dbStatus := "up"
			if dbErr != nil {
				dbStatus = "down"
			}
			redisStatus := "up"
			if redisErr != nil {
				redisStatus = "down"
			}
			fmt.Fprintf(w, `{"status":"unhealthy","database":"%s","redis":"%s"}`, dbStatus, redisStatus)
			return
		}

		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"ok","database":"up","redis":"up"}`)
	})

	// Wrap with logging middleware
	handler := middleware.Logger(logger)(mux)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Printf("Server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Println("Server exited")
}

// runMigrations runs database migrations
func runMigrations() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(database.Config{
		URL: cfg.Database.URL,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	migrator := database.NewMigrator(db.Pool)

	if err := migrator.Up(context.Background()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")
}
