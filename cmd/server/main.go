// Package main provides the API server entry point for the weather alert service.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/weather-alerts/internal/api"
	"github.com/weather-alerts/internal/config"
	"github.com/weather-alerts/internal/email"
	"github.com/weather-alerts/internal/logging"
	"github.com/weather-alerts/internal/pipeline"
	"github.com/weather-alerts/internal/service"
	"github.com/weather-alerts/internal/storage"
	"github.com/weather-alerts/internal/weather"
	"github.com/weather-alerts/internal/worker"
)

// applyPortOverride replaces the configured port when the flag was set
func applyPortOverride(cfg *config.Config, port string) {
	if port != "" {
		cfg.Server.Port = port
	}
}

func main() {
	port := flag.String("port", "", "Listen port (overrides SERVER_PORT)")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	applyPortOverride(cfg, *port)

	// Initialize structured logging
	logLevel := logging.ParseLogLevel(cfg.Logging.Level)
	logFormat := logging.ParseLogFormat(cfg.Logging.Format)
	logging.InitGlobalLogger(logLevel, logFormat)

	logger := logging.GetGlobalLogger()
	logger.WithFields(map[string]interface{}{
		"level":  cfg.Logging.Level,
		"format": cfg.Logging.Format,
	}).Info("Structured logging initialized")

	// Initialize database connections
	logger.Info("Connecting to databases...")

	postgres, err := storage.NewPostgresDB(&cfg.Database.Postgres)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to Postgres")
	}
	defer postgres.Close()

	redis, err := storage.NewRedisCache(&cfg.Database.Redis)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to Redis")
	}
	defer redis.Close()

	logger.Info("Database connections established")

	// Initialize repositories
	userRepo := storage.NewUserRepository(postgres)
	prefRepo := storage.NewPreferenceRepository(postgres)
	weatherRepo := storage.NewWeatherRepository(postgres)
	alertRepo := storage.NewAlertRepository(postgres)

	// Initialize cache service
	cacheService := storage.NewCacheService(redis, cfg.Scheduler.CacheTTL)

	// Initialize external clients
	weatherClient := weather.NewClient(cfg.Weather.APIKey, cfg.Weather.BaseURL, cfg.Weather.Timeout)
	emailClient := email.NewClient(&cfg.SMTP)

	// Initialize services
	logger.Info("Initializing services...")

	userService := service.NewUserService(userRepo, prefRepo, emailClient, logger)
	weatherService := service.NewWeatherService(weatherRepo, cacheService, logger)
	alertService := service.NewAlertService(alertRepo, userRepo)

	// Fetch and alert pipeline, shared by the scheduler and the API trigger
	alertPipeline := pipeline.New(
		userRepo,
		prefRepo,
		weatherRepo,
		alertRepo,
		cacheService,
		weatherClient,
		emailClient,
		logger,
	)

	// Start the periodic fetch scheduler
	scheduler := worker.NewScheduler(alertPipeline, cfg.Scheduler.FetchInterval, logger)
	scheduler.Start()

	logger.WithField("interval", cfg.Scheduler.FetchInterval.String()).Info("Weather fetch scheduler started")

	// Create server configuration
	serverConfig := &api.ServerConfig{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		RateLimitRPS:    cfg.RateLimit.RPS,
		RateLimitBurst:  cfg.RateLimit.Burst,
	}

	server := api.NewServer(serverConfig, userService, weatherService, alertService, alertPipeline, logger)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Server failed to start")
		}
	}()

	logger.WithFields(map[string]interface{}{
		"host": cfg.Server.Host,
		"port": cfg.Server.Port,
	}).Info("Weather alert service is running")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutdown signal received")

	// Stop the scheduler before the HTTP server so no new cycle starts
	scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverConfig.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server shutdown failed")
	}

	logger.Info("Server stopped")
}
