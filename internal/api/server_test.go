package api

import (
	"context"
	"time"

	apperrors "github.com/weather-alerts/internal/errors"
	"github.com/weather-alerts/internal/logging"
	"github.com/weather-alerts/internal/models"
	"github.com/weather-alerts/internal/pipeline"
	"github.com/weather-alerts/internal/service"
)

// Mock services for testing

type mockUserService struct {
	registerFunc          func(ctx context.Context, input *service.RegisterInput) (*models.User, error)
	getFunc               func(ctx context.Context, id string) (*service.UserWithPreferences, error)
	listFunc              func(ctx context.Context) ([]*models.User, error)
	getPreferencesFunc    func(ctx context.Context, userID string) (*models.Preference, error)
	updatePreferencesFunc func(ctx context.Context, userID string, input *service.UpdatePreferencesInput) (*models.Preference, error)
}

func (m *mockUserService) Register(ctx context.Context, input *service.RegisterInput) (*models.User, error) {
	if m.registerFunc != nil {
		return m.registerFunc(ctx, input)
	}
	return &models.User{
		ID:        "user-123",
		Email:     input.Email,
		City:      input.City,
		Country:   input.Country,
		CreatedAt: time.Now(),
	}, nil
}

func (m *mockUserService) Get(ctx context.Context, id string) (*service.UserWithPreferences, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return &service.UserWithPreferences{
		User: &models.User{
			ID:      id,
			Email:   "alice@example.com",
			City:    "Berlin",
			Country: "DE",
		},
		Preferences: models.DefaultPreference(id),
	}, nil
}

func (m *mockUserService) List(ctx context.Context) ([]*models.User, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return []*models.User{
		{ID: "user-123", Email: "alice@example.com", City: "Berlin", Country: "DE"},
	}, nil
}

func (m *mockUserService) GetPreferences(ctx context.Context, userID string) (*models.Preference, error) {
	if m.getPreferencesFunc != nil {
		return m.getPreferencesFunc(ctx, userID)
	}
	return models.DefaultPreference(userID), nil
}

func (m *mockUserService) UpdatePreferences(ctx context.Context, userID string, input *service.UpdatePreferencesInput) (*models.Preference, error) {
	if m.updatePreferencesFunc != nil {
		return m.updatePreferencesFunc(ctx, userID, input)
	}
	return &models.Preference{
		ID:           "pref-123",
		UserID:       userID,
		MinTemp:      input.MinTemp,
		MaxTemp:      input.MaxTemp,
		AlertOnRain:  input.AlertOnRain,
		AlertOnSnow:  input.AlertOnSnow,
		AlertOnStorm: input.AlertOnStorm,
	}, nil
}

type mockWeatherService struct {
	currentFunc func(ctx context.Context, city string) (*models.WeatherReading, error)
	historyFunc func(ctx context.Context, city string, limit int) ([]*models.WeatherReading, error)
}

func (m *mockWeatherService) Current(ctx context.Context, city string) (*models.WeatherReading, error) {
	if m.currentFunc != nil {
		return m.currentFunc(ctx, city)
	}
	return &models.WeatherReading{
		ID:          "reading-123",
		City:        city,
		Country:     "DE",
		Temperature: 18.5,
		Conditions:  "Clouds",
		FetchedAt:   time.Now(),
	}, nil
}

func (m *mockWeatherService) History(ctx context.Context, city string, limit int) ([]*models.WeatherReading, error) {
	if m.historyFunc != nil {
		return m.historyFunc(ctx, city, limit)
	}
	return []*models.WeatherReading{
		{ID: "reading-123", City: city, Temperature: 18.5},
	}, nil
}

type mockAlertService struct {
	listForUserFunc func(ctx context.Context, userID string, limit int) ([]*models.AlertLog, error)
	listAllFunc     func(ctx context.Context, limit int) ([]*models.AlertLog, error)
}

func (m *mockAlertService) ListForUser(ctx context.Context, userID string, limit int) ([]*models.AlertLog, error) {
	if m.listForUserFunc != nil {
		return m.listForUserFunc(ctx, userID, limit)
	}
	return []*models.AlertLog{
		{ID: "alert-123", UserID: userID, AlertType: models.AlertTypeRain, Message: "Rain expected in Berlin"},
	}, nil
}

func (m *mockAlertService) ListAll(ctx context.Context, limit int) ([]*models.AlertLog, error) {
	if m.listAllFunc != nil {
		return m.listAllFunc(ctx, limit)
	}
	return []*models.AlertLog{}, nil
}

type mockPipelineRunner struct {
	runCycleFunc func(ctx context.Context) (*pipeline.CycleResult, error)
}

func (m *mockPipelineRunner) RunCycle(ctx context.Context) (*pipeline.CycleResult, error) {
	if m.runCycleFunc != nil {
		return m.runCycleFunc(ctx)
	}
	return &pipeline.CycleResult{CitiesProcessed: 1, ReadingsStored: 1}, nil
}

type testMocks struct {
	users    *mockUserService
	weather  *mockWeatherService
	alerts   *mockAlertService
	pipeline *mockPipelineRunner
}

func createTestServer() (*Server, *testMocks) {
	mocks := &testMocks{
		users:    &mockUserService{},
		weather:  &mockWeatherService{},
		alerts:   &mockAlertService{},
		pipeline: &mockPipelineRunner{},
	}

	config := &ServerConfig{
		Host:           "localhost",
		Port:           "0",
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   5 * time.Second,
		IdleTimeout:    5 * time.Second,
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
	}

	logger := logging.NewLogger(logging.LevelError, logging.FormatText)
	server := NewServer(config, mocks.users, mocks.weather, mocks.alerts, mocks.pipeline, logger)
	return server, mocks
}

func notFoundErr(resource, id string) error {
	return apperrors.NewNotFoundError(resource, id)
}
