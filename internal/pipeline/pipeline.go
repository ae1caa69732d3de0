// Package pipeline implements the fetch-store-alert cycle over all tracked cities.
package pipeline

import (
	"context"
	"sync"
	"time"

	apperrors "github.com/weather-alerts/internal/errors"
	"github.com/weather-alerts/internal/logging"
	"github.com/weather-alerts/internal/models"
)

// Dependency contracts, narrowed to what the pipeline needs.
// Production implementations live in storage, weather and email.

// Fetcher fetches current conditions for a city
type Fetcher interface {
	Fetch(ctx context.Context, city, country string) (*models.WeatherReading, error)
}

// Sender sends one alert email
type Sender interface {
	SendAlert(to, city, alertMessage string) error
}

// UserStore provides the registered users and their cities
type UserStore interface {
	DistinctCities(ctx context.Context) ([]models.City, error)
	ListByCity(ctx context.Context, city string) ([]*models.User, error)
}

// PreferenceStore loads per-user preferences
type PreferenceStore interface {
	GetByUserID(ctx context.Context, userID string) (*models.Preference, error)
}

// ReadingStore persists weather readings
type ReadingStore interface {
	Insert(ctx context.Context, reading *models.WeatherReading) error
}

// AlertStore records sent alerts
type AlertStore interface {
	Insert(ctx context.Context, entry *models.AlertLog) error
}

// ReadingCache receives a write-through copy of each stored reading.
// Optional: a nil cache disables write-through.
type ReadingCache interface {
	SetLatest(ctx context.Context, reading *models.WeatherReading) error
}

// CityError records a per-city fetch failure without aborting the cycle
type CityError struct {
	City  string `json:"city"`
	Error string `json:"error"`
}

// CycleResult summarizes one complete pass over all tracked cities
type CycleResult struct {
	CitiesProcessed int         `json:"cities_processed"`
	ReadingsStored  int         `json:"readings_stored"`
	AlertsSent      int         `json:"alerts_sent"`
	Errors          []CityError `json:"errors,omitempty"`
	StartedAt       time.Time   `json:"started_at"`
	DurationMs      int64       `json:"duration_ms"`
}

// Pipeline orchestrates fetch, persist and alert for every tracked city.
// At most one cycle runs at a time: a trigger that loses the race fails
// with a conflict error instead of producing duplicate readings and alerts.
type Pipeline struct {
	users    UserStore
	prefs    PreferenceStore
	readings ReadingStore
	alerts   AlertStore
	cache    ReadingCache
	fetcher  Fetcher
	sender   Sender
	logger   *logging.Logger

	mu sync.Mutex
}

// New creates a pipeline. cache may be nil.
func New(
	users UserStore,
	prefs PreferenceStore,
	readings ReadingStore,
	alerts AlertStore,
	cache ReadingCache,
	fetcher Fetcher,
	sender Sender,
	logger *logging.Logger,
) *Pipeline {
	return &Pipeline{
		users:    users,
		prefs:    prefs,
		readings: readings,
		alerts:   alerts,
		cache:    cache,
		fetcher:  fetcher,
		sender:   sender,
		logger:   logger,
	}
}

// RunCycle runs one complete pass. A failure fetching one city never aborts
// the cycle; a database failure aborts the remaining steps for that record
// only. Returns a conflict error when a cycle is already in flight.
func (p *Pipeline) RunCycle(ctx context.Context) (*CycleResult, error) {
	if !p.mu.TryLock() {
		return nil, apperrors.NewConflictError("a pipeline cycle is already running")
	}
	defer p.mu.Unlock()

	result := &CycleResult{StartedAt: time.Now().UTC()}

	cities, err := p.users.DistinctCities(ctx)
	if err != nil {
		return nil, err
	}

	p.logger.WithField("cities", len(cities)).Info("Pipeline cycle started")

	for _, city := range cities {
		result.CitiesProcessed++
		p.processCity(ctx, city, result)
	}

	result.DurationMs = time.Since(result.StartedAt).Milliseconds()
	p.logger.WithFields(map[string]interface{}{
		"cities":   result.CitiesProcessed,
		"readings": result.ReadingsStored,
		"alerts":   result.AlertsSent,
		"errors":   len(result.Errors),
	}).Info("Pipeline cycle completed")

	return result, nil
}

// processCity fetches, stores and alerts for a single city
func (p *Pipeline) processCity(ctx context.Context, city models.City, result *CycleResult) {
	log := p.logger.WithFields(map[string]interface{}{
		"city":    city.Name,
		"country": city.Country,
	})

	reading, err := p.fetcher.Fetch(ctx, city.Name, city.Country)
	if err != nil {
		log.WithError(err).Error("Weather fetch failed")
		result.Errors = append(result.Errors, CityError{City: city.Name, Error: err.Error()})
		return
	}

	// Readings are stored unconditionally, even when nobody is alerted.
	if err := p.readings.Insert(ctx, reading); err != nil {
		log.WithError(err).Error("Failed to store reading")
		result.Errors = append(result.Errors, CityError{City: city.Name, Error: err.Error()})
		return
	}
	result.ReadingsStored++

	if p.cache != nil {
		if err := p.cache.SetLatest(ctx, reading); err != nil {
			// Cache is best-effort; Postgres remains the source of truth.
			log.WithError(err).Warn("Failed to cache reading")
		}
	}

	log.WithFields(map[string]interface{}{
		"temperature": reading.Temperature,
		"conditions":  reading.Conditions,
	}).Info("Stored weather reading")

	users, err := p.users.ListByCity(ctx, city.Name)
	if err != nil {
		log.WithError(err).Error("Failed to list users for city")
		result.Errors = append(result.Errors, CityError{City: city.Name, Error: err.Error()})
		return
	}

	for _, user := range users {
		p.alertUser(ctx, user, reading, result)
	}
}

// alertUser evaluates one user's preferences against the reading and sends
// one email per matched condition type
func (p *Pipeline) alertUser(ctx context.Context, user *models.User, reading *models.WeatherReading, result *CycleResult) {
	prefs, err := p.prefs.GetByUserID(ctx, user.ID)
	if err != nil {
		if apperrors.IsCategory(err, apperrors.CategoryNotFound) {
			prefs = models.DefaultPreference(user.ID)
		} else {
			p.logger.WithError(err).WithField("user_id", user.ID).Error("Failed to load preferences")
			return
		}
	}

	for _, alert := range Evaluate(reading, prefs) {
		if err := p.sender.SendAlert(user.Email, reading.City, alert.Message); err != nil {
			// Send failure is non-fatal: skip the log write, keep going.
			p.logger.WithError(err).WithFields(map[string]interface{}{
				"user_id":    user.ID,
				"alert_type": alert.Type,
			}).Error("Failed to send alert email")
			continue
		}

		// The email went out, count it even if the log write fails below.
		result.AlertsSent++

		entry := &models.AlertLog{
			UserID:    user.ID,
			AlertType: alert.Type,
			Message:   alert.Message,
		}
		if err := p.alerts.Insert(ctx, entry); err != nil {
			p.logger.WithError(err).WithField("user_id", user.ID).Error("Failed to record alert log")
			continue
		}

		p.logger.WithFields(map[string]interface{}{
			"user_id":    user.ID,
			"alert_type": alert.Type,
			"city":       reading.City,
		}).Info("Alert sent")
	}
}
