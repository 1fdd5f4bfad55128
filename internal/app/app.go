// Package app assembles the quiz API server from configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/auth"
	"github.com/SAP-F-2025/quiz-service/internal/cache"
	"github.com/SAP-F-2025/quiz-service/internal/config"
	"github.com/SAP-F-2025/quiz-service/internal/events"
	"github.com/SAP-F-2025/quiz-service/internal/handlers"
	"github.com/SAP-F-2025/quiz-service/internal/middleware"
	"github.com/SAP-F-2025/quiz-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/quiz-service/internal/services"
	"github.com/SAP-F-2025/quiz-service/internal/utils"
	"github.com/SAP-F-2025/quiz-service/internal/validator"
	"github.com/SAP-F-2025/quiz-service/pkg"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 10 * time.Second
)

type App struct {
	config    *config.Config
	logger    utils.Logger
	db        *gorm.DB
	redis     *redis.Client
	publisher events.EventPublisher
	server    *http.Server
}

// New connects to the stores, wires the services and builds the HTTP server.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := utils.NewLogger(cfg.Environment)
	slogger := utils.ToSlogLogger(logger)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		return nil, err
	}
	app := &App{config: cfg, logger: logger, db: db}
	if err := postgres.AutoMigrate(db); err != nil {
		app.Close()
		return nil, err
	}

	app.redis, err = pkg.NewRedisClient(ctx, cfg)
	if err != nil {
		app.Close()
		return nil, err
	}

	app.publisher, err = cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to create event publisher: %w", err)
	}

	cacheService := cache.NewNoopCache()
	var limiter middleware.RateLimiter
	if app.redis != nil {
		cacheService = cache.NewRedisCache(app.redis, slogger)
		limiter = cache.NewRedisRateLimiter(app.redis, cfg.RateLimitMax, cfg.RateLimitWindow)
	} else {
		logger.Warn("REDIS_URL not set, caching and rate limiting are disabled")
	}

	serviceManager := services.NewServiceManager(services.Dependencies{
		Repo:      postgres.NewRepository(db),
		Cache:     cacheService,
		CacheTTL:  cfg.CacheTTL,
		Publisher: app.publisher,
		Tokens:    auth.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiresIn),
		Validator: validator.New(),
		Logger:    slogger,
	})

	router := app.newRouter(serviceManager, limiter)
	app.server = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return app, nil
}

func (a *App) newRouter(serviceManager *services.ServiceManager, limiter middleware.RateLimiter) *gin.Engine {
	if a.config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		utils.ContextLogger(a.logger),
		middleware.Recovery(a.logger, a.config.IsProduction()),
		middleware.SecurityHeaders(),
		middleware.CORS(a.config.CORSOrigin),
		middleware.BodyLimit(maxBodyBytes),
	)
	if a.config.Environment != config.EnvTest {
		router.Use(utils.LoggerMiddleware(a.logger))
	}

	handlers.NewHandlerManager(serviceManager, limiter, a.logger, a.config.IsProduction()).SetupRoutes(router)
	return router
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	if channel, ok := a.publisher.(*events.ChannelEventPublisher); ok {
		messages, err := channel.Subscribe(ctx)
		if err != nil {
			return fmt.Errorf("failed to subscribe to events: %w", err)
		}
		slogger := utils.ToSlogLogger(a.logger)
		go events.Consume(ctx, messages, events.LogEvent(slogger), slogger)
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Server started", "addr", a.server.Addr, "environment", a.config.Environment)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// Close releases the publisher and the store connections.
func (a *App) Close() {
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Warn("Failed to close event publisher", "error", err)
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("Failed to close redis", "error", err)
		}
	}
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
