package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SAP-F-2025/interview-coach/internal/cache"
	"github.com/SAP-F-2025/interview-coach/internal/config"
	"github.com/SAP-F-2025/interview-coach/internal/handlers"
	"github.com/SAP-F-2025/interview-coach/internal/middleware"
	"github.com/SAP-F-2025/interview-coach/internal/repositories"
	"github.com/SAP-F-2025/interview-coach/internal/repositories/memory"
	"github.com/SAP-F-2025/interview-coach/internal/repositories/postgres"
	"github.com/SAP-F-2025/interview-coach/internal/services"
	"github.com/SAP-F-2025/interview-coach/internal/session"
	"github.com/SAP-F-2025/interview-coach/internal/utils"
	"github.com/SAP-F-2025/interview-coach/pkg"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	uploadsURL      = "/uploads"
	shutdownTimeout = 15 * time.Second
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := utils.NewLogger(cfg.Environment)
	slogger := utils.ToSlogLogger(logger)

	repo := openRepository(cfg, logger)

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = pkg.NewRedisClient(context.Background(), cfg.RedisURL)
		if err != nil {
			logger.Warn("Redis unavailable, running without cache, locks and rate limiting", "error", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	publisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		logger.Error("Failed to create event publisher", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("Failed to close event publisher", "error", err)
		}
	}()

	textGenerator, err := cfg.Generator.CreateTextGenerator(context.Background(), slogger)
	if err != nil {
		logger.Warn("Question generator unavailable, using fallback questions", "error", err)
		textGenerator = nil
	}

	objectStore, err := cfg.Storage.CreateObjectStore(slogger)
	if err != nil {
		logger.Error("Failed to initialize object storage", "error", err)
		os.Exit(1)
	}

	deps := services.Dependencies{
		Repo:              repo,
		Publisher:         publisher,
		Generator:         textGenerator,
		Store:             objectStore,
		Logger:            slogger,
		GenerationTimeout: cfg.Generator.Timeout,
	}
	var limiter *middleware.FixedWindowLimiter
	if redisClient != nil {
		deps.Cache = cache.NewRedisCache(redisClient, "interview-coach", logger)
		deps.Locker = cache.NewRedisLocker(redisClient, "interview-coach")
		limiter, err = middleware.NewFixedWindowLimiter(redisClient, "interview-coach:ratelimit", cfg.RateLimit.Requests, cfg.RateLimit.Window)
		if err != nil {
			logger.Warn("Rate limiting disabled", "error", err)
			limiter = nil
		}
	}

	serviceManager := services.NewServiceManager(deps)
	sessions := session.NewManager(serviceManager, slogger, session.Config{TimeUnit: cfg.SessionTimeUnit})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	router.Use(utils.LoggerMiddleware(logger, "/health"))
	router.Use(utils.ContextLogger(logger))

	opts := handlers.RouterOptions{RateLimiter: limiter}
	if cfg.Storage.IsLocal() {
		opts.UploadsDir = cfg.Storage.LocalPath
		opts.UploadsURL = uploadsURL
	}
	handlers.NewHandlerManager(serviceManager, sessions, repo, logger).SetupRoutes(router, opts)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting interview coach server", "port", cfg.Port, "environment", cfg.Environment, "database", repo.Available())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	sessions.CloseAll()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	logger.Info("Server stopped")
}

// openRepository picks memory, postgres or the disabled repository that
// answers DATABASE_NOT_CONFIGURED.
func openRepository(cfg *config.Config, logger utils.Logger) repositories.Repository {
	if cfg.Database.IsMemory() {
		logger.Info("Using in-memory repository")
		return memory.New()
	}
	if !cfg.Database.Configured() {
		logger.Warn("DATABASE_URL not set, data endpoints will report DATABASE_NOT_CONFIGURED")
		return repositories.NewDisabled()
	}

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		return repositories.NewDisabled()
	}
	if err := pkg.AutoMigrate(db); err != nil {
		logger.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}
	return postgres.New(db)
}
