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

	"devenirShop/app/echo-server/router"
	profileService "devenirShop/business/profile"
	searchService "devenirShop/business/search"
	"devenirShop/internal/middleware"
	psqlRepo "devenirShop/internal/repository/postgres"
	redisRepo "devenirShop/internal/repository/redis"
	"devenirShop/internal/repository/vector"
	"devenirShop/internal/rest"
	"devenirShop/pkg/config"
	"devenirShop/pkg/database"
	redisdb "devenirShop/pkg/database/redis"
	"devenirShop/pkg/logger"
	"devenirShop/pkg/metrics"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting Devenir Discovery", "version", cfg.App.Version)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", "error", err)
	}
	defer redisdb.CloseRedisClient(redisClient)

	metrics.Init()

	// Init repo
	productRepo := psqlRepo.NewProductRepository(db)
	ordersRepo := psqlRepo.NewOrdersRepository(db)
	interactionRepo := psqlRepo.NewInteractionRepository(db)
	keywordRepo := psqlRepo.NewKeywordRepository(db)
	profileRepo := redisRepo.NewProfileRepository(redisClient)
	vectorRepo := vector.NewVectorRepository(vector.VectorConfig{
		BaseUrl: cfg.Vector.BaseUrl,
		ApiKey:  cfg.Vector.ApiKey,
		Timeout: cfg.Vector.Timeout,
	})

	// Init service
	profiles := profileService.NewService(profileRepo, ordersRepo, interactionRepo, cfg.Search.Personalization)
	searcher, err := searchService.NewService(
		searchService.NewClassifier(),
		vectorRepo,
		keywordRepo,
		productRepo,
		ordersRepo,
		profiles,
		searchService.Options{
			TopK:                  cfg.Search.TopK,
			RetrieverTimeout:      cfg.Search.RetrieverTimeout,
			EnablePopularityBoost: cfg.Search.PopularityBoostFactor > 0,
			EnableSeasonalBoost:   cfg.Search.SeasonalBoostFactor > 0,
			PersonalizationOn:     cfg.Search.Personalization,
			MaxPersonalization:    cfg.Search.MaxPersonalization,
			PopularityBoostFactor: cfg.Search.PopularityBoostFactor,
			SeasonalBoostFactor:   cfg.Search.SeasonalBoostFactor,
		},
	)
	if err != nil {
		logger.Fatal("Failed to build search service", "error", err)
	}

	// Init handler
	searchHandler := rest.NewSearchHandler(searcher)
	profileHandler := rest.NewProfileHandler(profiles, interactionRepo)
	productHandler := rest.NewProductHandler(productRepo)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupSearchRoutes(api, searchHandler)
	router.SetupProfileRoutes(api, profileHandler)
	router.SetupProductRoutes(api, productHandler)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
