// Package main runs the sports-event scheduling HTTP server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/matchday/backend/config"
	"github.com/matchday/backend/internal/auth"
	"github.com/matchday/backend/internal/bootstrap"
	"github.com/matchday/backend/internal/events"
	"github.com/matchday/backend/internal/middleware"
	"github.com/matchday/backend/internal/organizations"
	"github.com/matchday/backend/internal/venues"
	"github.com/matchday/backend/pkg/database"
	"github.com/matchday/backend/pkg/redis"
	"github.com/matchday/backend/pkg/response"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	// Redis only backs token revocation; run without it if unavailable.
	var revoker auth.Revoker
	if cfg.Redis.Addr != "" {
		rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
		if err != nil {
			logger.Warn("redis unavailable, token revocation disabled", zap.Error(err))
		} else {
			defer rdb.Close()
			revoker = auth.NewRedisRevoker(rdb.Client, logger)
		}
	}

	var exchanger auth.Exchanger
	if cfg.OAuth.GoogleClientID != "" {
		exchanger = auth.NewGoogleExchanger(cfg.OAuth.GoogleClientID, cfg.OAuth.GoogleClientSecret, cfg.OAuth.RedirectURL)
	}

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours)

	orgRepo := organizations.NewRepository(pool)
	bootstrapSvc := bootstrap.NewService(orgRepo, logger)

	authRepo := auth.NewRepository(pool)
	authHandler := auth.NewHandler(authRepo, jwtService, bootstrapSvc, exchanger, revoker, logger)

	orgHandler := organizations.NewHandler(orgRepo)

	venueRepo := venues.NewRepository(pool)
	venueDirectory := venues.NewDirectory(venueRepo)
	venueHandler := venues.NewHandler(venueRepo)

	eventRepo := events.NewRepository(pool)
	eventService := events.NewService(eventRepo, orgRepo, venueDirectory, logger)
	eventHandler := events.NewHandler(eventService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	// Auth (public; credential endpoints are rate limited)
	authLimit := middleware.RateLimit(cfg.Server.AuthRateLimitRPS, cfg.Server.AuthRateLimitBurst)
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/signup", authLimit, authHandler.Signup)
		authGroup.POST("/login", authLimit, authHandler.Login)
		authGroup.GET("/callback", authHandler.OAuthCallback)
		authGroup.POST("/logout", authHandler.Logout)
	}

	// Protected API (JWT required)
	api := router.Group("")
	api.Use(middleware.JWT(jwtService, revoker))
	{
		api.GET("/organizations", orgHandler.ListMyOrganizations)
		api.GET("/organizations/:id/members", orgHandler.ListMembers)

		api.GET("/venues", venueHandler.List)
		api.POST("/venues", venueHandler.Create)

		api.GET("/events", eventHandler.List)
		api.POST("/events", eventHandler.Create)
		api.GET("/events/:id", eventHandler.GetByID)
		api.PUT("/events/:id", eventHandler.Update)
		api.DELETE("/events/:id", eventHandler.Delete)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
