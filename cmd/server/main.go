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

	"github.com/SAP-F-2025/question-import-service/internal/auth"
	"github.com/SAP-F-2025/question-import-service/internal/cache"
	"github.com/SAP-F-2025/question-import-service/internal/config"
	"github.com/SAP-F-2025/question-import-service/internal/handlers"
	"github.com/SAP-F-2025/question-import-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/question-import-service/internal/services"
	"github.com/SAP-F-2025/question-import-service/internal/utils"
	"github.com/SAP-F-2025/question-import-service/internal/validator"
	"github.com/SAP-F-2025/question-import-service/pkg"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := utils.NewLogger(cfg.Environment)
	slogger := utils.ToSlogLogger(logger)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("Database unavailable", "error", err)
		os.Exit(1)
	}

	repo := postgres.NewRepository(db)
	if err := repo.AutoMigrate(); err != nil {
		logger.Error("Migration failed", "error", err)
		os.Exit(1)
	}

	var cacheService cache.CacheService
	switch cfg.CacheBackend {
	case "memory":
		cacheService = cache.NewMemoryCache()
	default:
		redisClient, err := pkg.NewRedisClient(cfg)
		if err != nil {
			logger.Error("Redis unavailable", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		cacheService = cache.NewRedisCache(redisClient, slogger)
	}

	publisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		logger.Error("Event publisher unavailable", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("Failed to close event publisher", "error", err)
		}
	}()

	serviceManager := services.NewServiceManager(repo, cacheService, publisher, slogger, validator.New(),
		services.ImportOptions{
			MaxFileBytes:  cfg.Import.MaxFileBytes,
			PreviewTTL:    cfg.Import.PreviewTTL,
			StrictNumeric: cfg.Import.StrictNumeric,
		})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.MaxMultipartMemory = cfg.Import.MaxFileBytes
	router.Use(gin.Recovery(), utils.LoggerMiddleware(logger), utils.ContextLogger(logger))

	handlers.NewHandlerManager(serviceManager, logger).
		SetupRoutes(router, auth.NewMiddleware(cfg.Auth, logger))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server stopped", "error", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
}
