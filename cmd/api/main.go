// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/pizzeria/internal/admin"
	"github.com/carterperez-dev/pizzeria/internal/auth"
	"github.com/carterperez-dev/pizzeria/internal/cart"
	"github.com/carterperez-dev/pizzeria/internal/config"
	"github.com/carterperez-dev/pizzeria/internal/core"
	"github.com/carterperez-dev/pizzeria/internal/health"
	"github.com/carterperez-dev/pizzeria/internal/menu"
	"github.com/carterperez-dev/pizzeria/internal/middleware"
	"github.com/carterperez-dev/pizzeria/internal/notify"
	"github.com/carterperez-dev/pizzeria/internal/order"
	"github.com/carterperez-dev/pizzeria/internal/payment"
	"github.com/carterperez-dev/pizzeria/internal/server"
	"github.com/carterperez-dev/pizzeria/internal/store"
	"github.com/carterperez-dev/pizzeria/internal/sweeper"
	"github.com/carterperez-dev/pizzeria/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	telemetry, err := core.NewTelemetry(ctx, cfg, logger)
	if err != nil {
		logger.Warn("failed to initialize telemetry", "error", err)
	}

	backend, err := store.Open(ctx, cfg)
	if err != nil {
		return err
	}
	logger.Info("record store ready", "driver", cfg.Store.Driver)

	redis, err := core.OpenRedis(ctx, cfg.Redis, logger)
	if err != nil {
		_ = backend.Close() //nolint:errcheck // startup failed
		return err
	}

	var redisCheck health.Checker
	if redis.Enabled() {
		redisCheck = redis
	}

	locks := store.NewKeyLocker()

	menuSvc := menu.NewService(menu.NewRepository(backend.Store), logger)

	userSvc := user.NewService(user.NewRepository(backend.Store), locks)

	tokenRepo := auth.NewRepository(backend.Store)
	authSvc := auth.NewService(tokenRepo, userSvc, locks, cfg.Token, logger)
	authHandler := auth.NewHandler(authSvc)

	userHandler := user.NewHandler(userSvc, authSvc)
	menuHandler := menu.NewHandler(menuSvc, authSvc)

	cartRepo := cart.NewRepository(backend.Store)
	cartSvc := cart.NewService(cartRepo, authSvc, menuSvc, userSvc, locks, logger)
	cartHandler := cart.NewHandler(cartSvc)

	orderSvc := order.NewService(
		order.NewRepository(backend.Store),
		cartRepo,
		userSvc,
		authSvc,
		payment.NewStripeClient(cfg.Payment),
		notify.NewMailgunClient(cfg.Mail),
		locks,
		logger,
	)
	orderHandler := order.NewHandler(orderSvc)

	adminCfg := admin.Config{Store: backend.Store}
	if backend.DB != nil {
		adminCfg.DBStats = backend.DB.Stats
	}
	if redis.Enabled() {
		adminCfg.RedisStats = redis.PoolStats
	}
	adminHandler := admin.NewHandler(admin.NewService(adminCfg))

	healthHandler := health.NewHandler(backend.Store, redisCheck)

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(middleware.TokenExtractor(cfg.Token.Header, cfg.Token.Length))
	router.Use(
		middleware.NewRateLimiter(redis.Client(), middleware.RateLimitConfig{
			Limit: middleware.PerWindow(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
				cfg.RateLimit.Window,
			),
			KeyFunc:  middleware.KeyByToken,
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	router.Route("/v1", func(r chi.Router) {
		authHandler.RegisterRoutes(r)
		userHandler.RegisterRoutes(r)
		menuHandler.RegisterRoutes(r)
		cartHandler.RegisterRoutes(r)
		orderHandler.RegisterRoutes(r)

		if cfg.Admin.APIKey != "" {
			adminHandler.RegisterRoutes(r,
				middleware.RequireAdminKey(cfg.Admin.Header, cfg.Admin.APIKey),
			)
		}
	})

	sweepCtx, stopSweeper := context.WithCancel(ctx)
	sweepDone := make(chan struct{})
	go func() {
		defer close(sweepDone)
		sweeper.New(tokenRepo, locks, cfg.Sweeper.Interval, logger).Run(sweepCtx)
	}()

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err = <-errChan:
		if err != nil {
			logger.Error("server error", "error", err)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	stopSweeper()
	<-sweepDone

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if shutdownErr := srv.Shutdown(shutdownCtx, drainDelay); shutdownErr != nil {
		logger.Error("server shutdown error", "error", shutdownErr)
	}

	if telErr := telemetry.Shutdown(shutdownCtx); telErr != nil {
		logger.Error("telemetry shutdown error", "error", telErr)
	}

	if closeErr := redis.Close(); closeErr != nil {
		logger.Error("redis close error", "error", closeErr)
	}

	if closeErr := backend.Close(); closeErr != nil {
		logger.Error("database close error", "error", closeErr)
	}

	logger.Info("application stopped")
	return err
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
