package service

import (
	"context"
	"strings"

	apperrors "github.com/weather-alerts/internal/errors"
	"github.com/weather-alerts/internal/logging"
	"github.com/weather-alerts/internal/models"
)

const (
	defaultHistoryLimit = 24
	maxHistoryLimit     = 500
)

// ReadingRepo is the persistence contract for weather readings
type ReadingRepo interface {
	Latest(ctx context.Context, city string) (*models.WeatherReading, error)
	History(ctx context.Context, city string, limit int) ([]*models.WeatherReading, error)
}

// ReadingCache serves the latest reading per city without touching Postgres
type ReadingCache interface {
	GetLatest(ctx context.Context, city string) (*models.WeatherReading, error)
}

// WeatherService answers current-conditions and history queries
type WeatherService struct {
	readings ReadingRepo
	cache    ReadingCache
	logger   *logging.Logger
}

// NewWeatherService creates a weather query service. cache may be nil.
func NewWeatherService(readings ReadingRepo, cache ReadingCache, logger *logging.Logger) *WeatherService {
	return &WeatherService{
		readings: readings,
		cache:    cache,
		logger:   logger,
	}
}

// Current returns the most recent stored reading for a city. The cache is
// consulted first; any cache error falls through to Postgres.
func (s *WeatherService) Current(ctx context.Context, city string) (*models.WeatherReading, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, apperrors.NewValidationError("city", "is required")
	}

	if s.cache != nil {
		reading, err := s.cache.GetLatest(ctx, city)
		if err != nil {
			s.logger.WithError(err).WithField("city", city).Warn("Cache lookup failed, falling back to database")
		} else if reading != nil {
			return reading, nil
		}
	}

	return s.readings.Latest(ctx, city)
}

// History returns the most recent readings for a city, newest first.
// limit <= 0 uses the default; oversized limits are clamped.
func (s *WeatherService) History(ctx context.Context, city string, limit int) ([]*models.WeatherReading, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, apperrors.NewValidationError("city", "is required")
	}

	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	return s.readings.History(ctx, city, limit)
}
