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

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	_ "stockflow/docs" // swagger docs

	"stockflow/internal/auth"
	"stockflow/internal/cache"
	"stockflow/internal/config"
	"stockflow/internal/db"
	"stockflow/internal/handler"
	"stockflow/internal/logger"
	"stockflow/internal/notifier"
	"stockflow/internal/repository"
	"stockflow/internal/router"
	"stockflow/internal/service"
)

// @title StockFlow Inventory API
// @version 1.0
// @description Inventory management API with sectors, products, low stock alerts, watchlists and JWT authentication.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	gormDB, err := db.Open(cfg)
	if err != nil {
		zlog.Fatal("database init", zap.Error(err))
	}

	if cfg.ResetDB {
		zlog.Warn("RESET_DB=true detected, dropping all tables")
		if err := db.Reset(gormDB); err != nil {
			zlog.Fatal("reset database", zap.Error(err))
		}
	}

	if err := db.Migrate(gormDB); err != nil {
		zlog.Fatal("migrate", zap.Error(err))
	}

	seeded, err := db.SeedSectors(context.Background(), gormDB)
	if err != nil {
		zlog.Fatal("seed sectors", zap.Error(err))
	}
	zlog.Info("database ready", zap.String("driver", cfg.DBDriver), zap.Int64("sectors_seeded", seeded))

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer func() { _ = cacheClient.Close() }()
	if err := cacheClient.Ping(context.Background()); err != nil {
		zlog.Warn("redis unavailable, caching and token revocation degraded", zap.Error(err))
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	sectorRepo := repository.NewSectorRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)
	notificationRepo := repository.NewNotificationRepository(gormDB)
	watchlistRepo := repository.NewWatchlistRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Alert delivery
	alertNotifier, err := notifier.New(cfg)
	if err != nil {
		zlog.Fatal("notifier init", zap.Error(err))
	}
	dispatcher := notifier.NewDispatcher(alertNotifier, notificationRepo, zlog.Named("notifier"), cfg.DeliveryTimeout)
	zlog.Info("alert delivery", zap.String("channel", cfg.Notifier), zap.Bool("enabled", dispatcher.Enabled()))

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	userService := service.NewUserService(userRepo, cacheClient)
	sectorService := service.NewSectorService(sectorRepo, cacheClient)
	alertService := service.NewAlertService(productRepo, notificationRepo,
		service.NewRecipientResolver(userRepo, watchlistRepo), dispatcher, zlog.Named("alerts"))
	productService := service.NewProductService(productRepo, sectorRepo, alertService, zlog.Named("products"))
	statsService := service.NewStatsService(productRepo, notificationRepo)
	notificationService := service.NewNotificationService(notificationRepo)
	watchlistService := service.NewWatchlistService(watchlistRepo, productRepo)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	// Register routes
	router.Register(e, cfg, zlog, authService, router.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		User:         handler.NewUserHandler(userService),
		Sector:       handler.NewSectorHandler(sectorService),
		Product:      handler.NewProductHandler(productService, alertService),
		Notification: handler.NewNotificationHandler(notificationService),
		Watchlist:    handler.NewWatchlistHandler(watchlistService),
		Stats:        handler.NewStatsHandler(statsService),
	})

	swaggerHost := cfg.SwaggerHost
	if swaggerHost == "" {
		swaggerHost = "localhost:" + cfg.ServerPort
	}
	zlog.Info("swagger documentation available", zap.String("url", "http://"+swaggerHost+"/swagger/index.html"))

	go func() {
		addr := ":" + cfg.ServerPort
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		zlog.Error("server shutdown", zap.Error(err))
	}

	// in-flight alert deliveries finish before exit
	dispatcher.Wait()
}
