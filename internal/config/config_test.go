package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("WEATHER_API_KEY", "test-key")
	t.Setenv("SMTP_USERNAME", "alerts@example.com")
	t.Setenv("SMTP_PASSWORD", "secret")
	t.Setenv("POSTGRES_HOST", "localhost")
	t.Setenv("POSTGRES_DB", "weather_alerts")
	t.Setenv("POSTGRES_USER", "weather")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "https://api.openweathermap.org/data/2.5", cfg.Weather.BaseURL)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, 2*time.Hour, cfg.Scheduler.FetchInterval)
	assert.Equal(t, 2*time.Hour, cfg.Scheduler.CacheTTL)
	assert.Equal(t, 10, cfg.RateLimit.RPS)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfig_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("FETCH_INTERVAL", "30m")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 30*time.Minute, cfg.Scheduler.FetchInterval)
	assert.Equal(t, 2525, cfg.SMTP.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("WEATHER_API_KEY", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WEATHER_API_KEY")
}

func TestLoadConfig_InvalidDurationFallsBack(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("FETCH_INTERVAL", "not-a-duration")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, cfg.Scheduler.FetchInterval)
}

func TestPostgresURL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("POSTGRES_PASSWORD", "pw")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "postgres://weather:pw@localhost:5432/weather_alerts?sslmode=disable", cfg.PostgresURL())
}
