package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"thru-backend/internal/api"
	"thru-backend/internal/config"
	"thru-backend/internal/modules/dispatch"
	"thru-backend/internal/modules/matching"
	"thru-backend/internal/modules/quoting"
	"thru-backend/pkg/notify"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// 1. --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	e := echo.New()

	// 2. --- Middleware ---
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.ClientOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// 3. --- Database Connection ---
	// The pool backs the vendor location source; requests and responses
	// themselves live in memory for the lifetime of their window.
	dbConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Unable to parse database configuration", zap.Error(err))
	}

	dbPool, err := pgxpool.NewWithConfig(context.Background(), dbConfig)
	if err != nil {
		logger.Fatal("Unable to create connection pool", zap.Error(err))
	}
	defer dbPool.Close()

	if err := dbPool.Ping(context.Background()); err != nil {
		logger.Fatal("Unable to ping database", zap.Error(err))
	}
	logger.Info("Connected to the database")

	// 4. --- Dependency Injection (Wiring everything up) ---
	// --- Matching Module ---
	vendorSource := matching.NewRepository(dbPool)
	matchingCfg := matching.DefaultConfig()
	matchingCfg.SpeedsKmh["driving"] = cfg.DrivingSpeedKmh
	matchingCfg.SpeedsKmh["transit"] = cfg.TransitSpeedKmh
	matchingCfg.SpeedsKmh["walking"] = cfg.WalkingSpeedKmh
	matchingCfg.DwellMinutes = cfg.DwellMinutes
	matchingCfg.OnRouteThresholdKm = cfg.OnRouteThresholdKm
	matchingService := matching.NewService(vendorSource, matchingCfg, logger)
	matchingHandler := matching.NewHandler(matchingService)

	// --- Dispatch Module ---
	templates, err := notify.NewTemplateManager()
	if err != nil {
		logger.Fatal("Failed to parse notification templates", zap.Error(err))
	}
	sender, err := notify.NewSESV2Sender(context.Background(), cfg.AWSRegion, cfg.SenderEmail, logger)
	if err != nil {
		logger.Fatal("Failed to initialize notification sender", zap.Error(err))
	}
	dispatcher := dispatch.NewService(vendorSource, sender, templates, cfg.JWTSecret, cfg.ResponseBaseURL, logger)

	// --- Quoting Module ---
	collector := quoting.NewCollector()
	quotingService := quoting.NewService(
		matchingService,
		dispatcher,
		collector,
		time.Duration(cfg.OfferWindowMinutes)*time.Minute,
		logger,
	)
	quotingHandler := quoting.NewHandler(quotingService)

	// 5. --- Initialize Router ---
	api.SetupRoutes(e, matchingHandler, quotingHandler, cfg.JWTSecret)

	// 6. --- Start Server with graceful shutdown logic ---
	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			logger.Fatal("shutting down the server, an error occurred", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exiting")
}
