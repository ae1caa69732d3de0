// Package weather provides the OpenWeatherMap client used by the alert pipeline.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	apperrors "github.com/weather-alerts/internal/errors"
	"github.com/weather-alerts/internal/models"
)

// Client fetches current conditions from the OpenWeatherMap API.
// Every call is a live network request: no retries, no caching.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewClient creates a weather client. baseURL should normally be
// "https://api.openweathermap.org/data/2.5"; tests point it at a local server.
func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// currentWeatherResponse mirrors the provider payload. Pointer fields let the
// decoder distinguish "absent" from "zero" so a shape mismatch fails loudly
// instead of defaulting.
type currentWeatherResponse struct {
	Name    string `json:"name"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Main *struct {
		Temp      *float64 `json:"temp"`
		FeelsLike *float64 `json:"feels_like"`
		Humidity  *int     `json:"humidity"`
		Pressure  *int     `json:"pressure"`
	} `json:"main"`
	Wind *struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Sys *struct {
		Country string `json:"country"`
	} `json:"sys"`
}

// Fetch retrieves current conditions for a city. Upstream failures, timeouts
// and unexpected payload shapes all fail with a provider error.
func (c *Client) Fetch(ctx context.Context, city, country string) (*models.WeatherReading, error) {
	endpoint := fmt.Sprintf("%s/weather?q=%s&appid=%s&units=metric",
		c.baseURL,
		url.QueryEscape(fmt.Sprintf("%s,%s", city, country)),
		url.QueryEscape(c.apiKey),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.NewProviderError("failed to build weather request", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperrors.NewProviderError(fmt.Sprintf("weather request failed for %s,%s", city, country), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, apperrors.NewProviderError(
			fmt.Sprintf("weather API returned status %d for %s,%s: %s", resp.StatusCode, city, country, string(body)),
			nil,
		)
	}

	var payload currentWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperrors.NewProviderError("failed to decode weather response", err)
	}

	if err := payload.validate(); err != nil {
		return nil, apperrors.NewProviderError("unexpected weather response shape", err)
	}

	return &models.WeatherReading{
		City:        payload.Name,
		Country:     payload.Sys.Country,
		Temperature: *payload.Main.Temp,
		FeelsLike:   *payload.Main.FeelsLike,
		Conditions:  payload.Weather[0].Main,
		Description: payload.Weather[0].Description,
		Humidity:    *payload.Main.Humidity,
		WindSpeed:   payload.Wind.Speed,
		Pressure:    *payload.Main.Pressure,
		FetchedAt:   time.Now().UTC(),
	}, nil
}

// validate enforces the fields the pipeline depends on
func (r *currentWeatherResponse) validate() error {
	switch {
	case r.Name == "":
		return fmt.Errorf("missing city name")
	case r.Sys == nil || r.Sys.Country == "":
		return fmt.Errorf("missing country")
	case len(r.Weather) == 0 || r.Weather[0].Main == "":
		return fmt.Errorf("missing weather conditions")
	case r.Main == nil:
		return fmt.Errorf("missing main block")
	case r.Main.Temp == nil:
		return fmt.Errorf("missing temperature")
	case r.Main.FeelsLike == nil:
		return fmt.Errorf("missing feels_like")
	case r.Main.Humidity == nil:
		return fmt.Errorf("missing humidity")
	case r.Main.Pressure == nil:
		return fmt.Errorf("missing pressure")
	case r.Wind == nil:
		return fmt.Errorf("missing wind block")
	}
	return nil
}
