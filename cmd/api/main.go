package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-portfolio-backend/config"
	_ "go-portfolio-backend/docs" // Important for Swagger
	v1 "go-portfolio-backend/internal/delivery/http/v1"
	"go-portfolio-backend/internal/usecase"
	"go-portfolio-backend/pkg/email"
	"go-portfolio-backend/pkg/logger"
	"go-portfolio-backend/pkg/ratelimit"
	"go-portfolio-backend/pkg/redis"
	"go-portfolio-backend/pkg/security"
	"go-portfolio-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

// @title           Portfolio Backend API
// @version         1.0
// @description     Contact form backend for the portfolio site.
// @host            localhost:8080
// @BasePath        /api
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	// 2. Setup Loggers
	logger.Init(cfg.GinMode)
	securityLogger := security.InitSecurityLogger("portfolio-backend", cfg.Environment())
	defer func() { _ = securityLogger.Sync() }()
	logger.Log.Info("Starting portfolio backend", "port", cfg.Port, "rate_limit_store", cfg.RateLimitStore)

	// 3. Setup Rate Limiter
	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second
	sweep := time.Duration(cfg.RateLimitSweepSeconds) * time.Second
	memoryStore := ratelimit.NewMemoryStore(window, sweep)

	var (
		limiter = ratelimit.NewLimiter(memoryStore, cfg.RateLimitMaxRequests, window)
		ping    usecase.Pinger
	)
	if cfg.RateLimitStore == "redis" {
		if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, rate limiting will use in-memory store", "error", err)
		} else {
			defer func() { _ = redis.Close() }()
			ping = redis.HealthCheck
			limiter = ratelimit.NewAtomicLimiter(
				ratelimit.NewRedisStore(redis.Client(), ratelimit.DefaultKeyPrefix),
				cfg.RateLimitMaxRequests, window,
				ratelimit.WithFallback(memoryStore),
				ratelimit.WithOnDegraded(func(key string, err error) {
					securityLogger.LogRateLimitDegraded(context.Background(), key, "", err)
				}),
			)
		}
	}

	// 4. Setup Email Service
	mailer := email.NewSMTPService(cfg)
	if !mailer.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - contact form will be unavailable")
	}

	// 5. Setup UseCases
	contactUC := usecase.NewContactUsecase(mailer, email.Profile{
		OwnerName:   cfg.OwnerName,
		OwnerTitle:  cfg.OwnerTitle,
		OwnerEmail:  cfg.ContactEmailTo,
		Sender:      cfg.EmailUser,
		GitHubURL:   cfg.GitHubURL,
		LinkedInURL: cfg.LinkedInURL,
	}, validation.New())
	healthUC := usecase.NewHealthUsecase(mailer.IsConfigured(), cfg.RateLimitStore, ping)

	// 6. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC: contactUC,
		HealthUC:  healthUC,
		Limiter:   limiter,
		Config:    cfg,
	})

	// 7. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
