package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/ajharbinger/tennis-decider/internal/api"
	"github.com/ajharbinger/tennis-decider/internal/logger"
	"github.com/ajharbinger/tennis-decider/internal/middleware"
	"github.com/ajharbinger/tennis-decider/internal/services"
	"github.com/ajharbinger/tennis-decider/pkg/config"
)

func main() {
	// Load environment variables
	envErr := godotenv.Load()

	// Initialize configuration
	cfg := config.New()
	log := logger.NewForEnvironment(cfg.Environment, cfg.LogLevel)
	if envErr != nil {
		log.Debug("No .env file found")
	}

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	r := gin.New()
	if err := r.SetTrustedProxies(cfg.GetTrustedProxies()); err != nil {
		log.Fatal("Invalid TRUSTED_PROXIES", err)
	}

	// Add security middleware
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggingMiddleware(log))
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.CORSMiddleware(cfg))
	r.Use(middleware.InputValidationMiddleware(cfg.MaxRequestSize))

	if cfg.EnableRateLimit {
		r.Use(middleware.RateLimitingMiddleware(cfg.RateLimitPerMin))
	}

	// Add recovery middleware
	r.Use(gin.Recovery())

	// Setup API routes
	api.SetupRoutes(r, cfg, services.NewServices(cfg, log), log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server starting", "port", cfg.Port, "environment", cfg.Environment, "auth", cfg.AuthEnabled())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", err)
		}
	}()

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Info("Shutdown signal received, stopping server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Graceful shutdown failed", err)
	}
}
