// Package main provides a CLI tool that runs one fetch and alert cycle.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/weather-alerts/internal/config"
	"github.com/weather-alerts/internal/email"
	"github.com/weather-alerts/internal/logging"
	"github.com/weather-alerts/internal/pipeline"
	"github.com/weather-alerts/internal/storage"
	"github.com/weather-alerts/internal/weather"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logging.InitGlobalLogger(logging.ParseLogLevel(cfg.Logging.Level), logging.ParseLogFormat(cfg.Logging.Format))
	logger := logging.GetGlobalLogger()

	postgres, err := storage.NewPostgresDB(&cfg.Database.Postgres)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to Postgres")
	}
	defer postgres.Close()

	// Redis is optional for a one-off run; cycles work without the cache
	var cacheService pipeline.ReadingCache
	redis, err := storage.NewRedisCache(&cfg.Database.Redis)
	if err != nil {
		logger.WithError(err).Warn("Redis unavailable, running without cache")
	} else {
		defer redis.Close()
		cacheService = storage.NewCacheService(redis, cfg.Scheduler.CacheTTL)
	}

	userRepo := storage.NewUserRepository(postgres)
	prefRepo := storage.NewPreferenceRepository(postgres)
	weatherRepo := storage.NewWeatherRepository(postgres)
	alertRepo := storage.NewAlertRepository(postgres)

	weatherClient := weather.NewClient(cfg.Weather.APIKey, cfg.Weather.BaseURL, cfg.Weather.Timeout)
	emailClient := email.NewClient(&cfg.SMTP)

	p := pipeline.New(userRepo, prefRepo, weatherRepo, alertRepo, cacheService, weatherClient, emailClient, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	result, err := p.RunCycle(ctx)
	if err != nil {
		logger.WithError(err).Fatal("Fetch cycle failed")
	}

	fmt.Printf("Cities processed:  %d\n", result.CitiesProcessed)
	fmt.Printf("Readings stored:   %d\n", result.ReadingsStored)
	fmt.Printf("Alerts sent:       %d\n", result.AlertsSent)
	fmt.Printf("Duration:          %dms\n", result.DurationMs)

	for _, cityErr := range result.Errors {
		fmt.Printf("Error for %s: %s\n", cityErr.City, cityErr.Error)
	}
}
