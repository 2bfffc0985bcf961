package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-candidate-feed/config"
	_ "go-candidate-feed/docs" // Important for Swagger
	"go-candidate-feed/internal/catalog"
	v1 "go-candidate-feed/internal/delivery/http/v1"
	"go-candidate-feed/internal/repository/cache"
	"go-candidate-feed/internal/usecase"
	"go-candidate-feed/pkg/auth"
	"go-candidate-feed/pkg/logger"
	"go-candidate-feed/pkg/redis"
	"go-candidate-feed/pkg/validation"
)

// @title           Candidate Feed API
// @version         1.0
// @description     Cursor-paginated candidate feed with role search, category filters and per-user favorites.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	defer func() { _ = logger.Log.Sync() }()
	logger.Log.Info("Starting candidate feed", "port", cfg.Port, "store", cfg.StoreBackend)

	ctx := context.Background()

	// 3. Setup Store
	stores, err := openStores(ctx, cfg)
	if err != nil {
		logger.Log.Error("Failed to open store", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}
	defer stores.Close()

	// 4. Setup Redis (optional)
	healthChecks := map[string]usecase.HealthCheck{"store": stores.Ping, "redis": nil}
	if cfg.UpstashRedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, running without cache and with in-memory rate limits", "error", err)
		} else {
			healthChecks["redis"] = redis.HealthCheck
			defer func() { _ = redis.Close() }()
		}
	}
	favoriteRepo := cache.NewFavoriteRepository(stores.Favorites, redis.Client(), cfg.FavoritesCacheTTL)

	// 5. Setup Catalog
	categories, err := catalog.Load(cfg.CategoriesFile)
	if err != nil {
		logger.Log.Error("Failed to load categories", "error", err)
		os.Exit(1)
	}

	// 6. Setup UseCases
	categoryUC := usecase.NewCategoryUsecase(categories)
	validate := validation.New(categoryUC.Exists)
	feedUC := usecase.NewFeedUsecase(stores.Candidates, categoryUC, usecase.FeedConfig{
		DefaultPageSize:    cfg.FeedDefaultPageSize,
		MaxPageSize:        cfg.FeedMaxPageSize,
		RequireAuthForMore: cfg.FeedRequireAuthForMore,
		StoreTimeout:       cfg.StoreTimeout,
	})
	candidateUC := usecase.NewCandidateUsecase(stores.Candidates, categoryUC, validate, cfg.StoreTimeout)
	favoriteUC := usecase.NewFavoriteUsecase(favoriteRepo, stores.Candidates, cfg.StoreTimeout)
	healthUC := usecase.NewHealthUsecase(healthChecks)

	// 7. Setup Auth (Firebase ID tokens via JWKS)
	var keys *auth.Provider
	if cfg.FirebaseProjectID != "" {
		jwksURL := cfg.AuthJWKSURL
		if jwksURL == "" {
			jwksURL = auth.FirebaseJWKSURL
		}
		keys = auth.NewProvider(jwksURL)
	}
	if cfg.AuthDevSecret != "" {
		logger.Log.Warn("AUTH_DEV_SECRET is set: HS256 development tokens are accepted")
	}
	verifier := auth.NewVerifier(keys, cfg.FirebaseProjectID, cfg.AuthDevSecret)

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		FeedUC:      feedUC,
		CandidateUC: candidateUC,
		FavoriteUC:  favoriteUC,
		CategoryUC:  categoryUC,
		HealthUC:    healthUC,
		Verifier:    verifier,
		Config:      cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
