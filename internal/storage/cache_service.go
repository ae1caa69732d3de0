package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/weather-alerts/internal/models"
)

// CacheService caches the freshest reading per city. The pipeline writes
// through after every successful fetch; the API reads the cache before
// falling back to Postgres.
type CacheService struct {
	redis *RedisCache
	ttl   time.Duration
}

// NewCacheService creates a new cache service
func NewCacheService(redis *RedisCache, ttl time.Duration) *CacheService {
	return &CacheService{
		redis: redis,
		ttl:   ttl,
	}
}

// GenerateReadingKey generates the cache key for a city's latest reading.
// Format: reading:<city>
func (c *CacheService) GenerateReadingKey(city string) string {
	return fmt.Sprintf("reading:%s", strings.ToLower(city))
}

// SetLatest stores the latest reading for a city with the configured TTL
func (c *CacheService) SetLatest(ctx context.Context, reading *models.WeatherReading) error {
	data, err := json.Marshal(reading)
	if err != nil {
		return fmt.Errorf("failed to marshal reading: %w", err)
	}

	return c.redis.Set(ctx, c.GenerateReadingKey(reading.City), data, c.ttl)
}

// GetLatest retrieves the cached latest reading for a city.
// Returns (nil, nil) on a cache miss.
func (c *CacheService) GetLatest(ctx context.Context, city string) (*models.WeatherReading, error) {
	data, err := c.redis.Get(ctx, c.GenerateReadingKey(city))
	if err != nil {
		if IsCacheMiss(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cached reading: %w", err)
	}

	var reading models.WeatherReading
	if err := json.Unmarshal([]byte(data), &reading); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached reading: %w", err)
	}

	return &reading, nil
}
