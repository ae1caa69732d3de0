package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/weather-alerts/internal/errors"
	"github.com/weather-alerts/internal/models"
	"github.com/weather-alerts/internal/pipeline"
	"github.com/weather-alerts/internal/service"
)

// TestRegisterUser_Success tests user registration with a valid payload
func TestRegisterUser_Success(t *testing.T) {
	server, _ := createTestServer()

	body, _ := json.Marshal(map[string]string{
		"email":   "alice@example.com",
		"city":    "Berlin",
		"country": "DE",
	})

	req := httptest.NewRequest("POST", "/api/users", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var user models.User
	if err := json.Unmarshal(w.Body.Bytes(), &user); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("Expected email alice@example.com, got %s", user.Email)
	}
}

// TestRegisterUser_InvalidJSON tests handling of malformed JSON
func TestRegisterUser_InvalidJSON(t *testing.T) {
	server, _ := createTestServer()

	req := httptest.NewRequest("POST", "/api/users", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

// TestRegisterUser_ValidationError tests mapping of validation errors to 400
func TestRegisterUser_ValidationError(t *testing.T) {
	server, mocks := createTestServer()
	mocks.users.registerFunc = func(ctx context.Context, input *service.RegisterInput) (*models.User, error) {
		return nil, apperrors.NewValidationError("email", "is not a valid email address")
	}

	body, _ := json.Marshal(map[string]string{"email": "nope", "city": "Berlin", "country": "DE"})
	req := httptest.NewRequest("POST", "/api/users", bytes.NewReader(body))

	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if resp.Error.Code != ErrCodeInvalidInput {
		t.Errorf("Expected code %s, got %s", ErrCodeInvalidInput, resp.Error.Code)
	}
}

// TestRegisterUser_DuplicateEmail tests mapping of conflict errors to 409
func TestRegisterUser_DuplicateEmail(t *testing.T) {
	server, mocks := createTestServer()
	mocks.users.registerFunc = func(ctx context.Context, input *service.RegisterInput) (*models.User, error) {
		return nil, apperrors.NewConflictError("user with this email already exists")
	}

	body, _ := json.Marshal(map[string]string{"email": "alice@example.com", "city": "Berlin", "country": "DE"})
	req := httptest.NewRequest("POST", "/api/users", bytes.NewReader(body))

	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", w.Code)
	}
}

// TestGetUser_NotFound tests mapping of not found errors to 404
func TestGetUser_NotFound(t *testing.T) {
	server, mocks := createTestServer()
	mocks.users.getFunc = func(ctx context.Context, id string) (*service.UserWithPreferences, error) {
		return nil, notFoundErr("user", id)
	}

	req := httptest.NewRequest("GET", "/api/users/missing-id", nil)

	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

// TestUpdatePreferences_Success tests preference replacement
func TestUpdatePreferences_Success(t *testing.T) {
	server, _ := createTestServer()

	minTemp := 5
	body, _ := json.Marshal(map[string]interface{}{
		"min_temp":       minTemp,
		"alert_on_rain":  true,
		"alert_on_snow":  false,
		"alert_on_storm": true,
	})

	req := httptest.NewRequest("PUT", "/api/users/user-123/preferences", bytes.NewReader(body))

	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var pref models.Preference
	if err := json.Unmarshal(w.Body.Bytes(), &pref); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if pref.MinTemp == nil || *pref.MinTemp != minTemp {
		t.Errorf("Expected min_temp %d, got %v", minTemp, pref.MinTemp)
	}
	if !pref.AlertOnRain || pref.AlertOnSnow || !pref.AlertOnStorm {
		t.Errorf("Unexpected condition flags: %+v", pref)
	}
}

// TestUpdatePreferences_UnknownField tests rejection of unknown JSON fields
func TestUpdatePreferences_UnknownField(t *testing.T) {
	server, _ := createTestServer()

	body, _ := json.Marshal(map[string]interface{}{"min_temp": 5, "bogus": true})
	req := httptest.NewRequest("PUT", "/api/users/user-123/preferences", bytes.NewReader(body))

	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

// TestCurrentWeather_Success tests the latest reading endpoint
func TestCurrentWeather_Success(t *testing.T) {
	server, _ := createTestServer()

	req := httptest.NewRequest("GET", "/api/weather/current/Berlin", nil)

	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var reading models.WeatherReading
	if err := json.Unmarshal(w.Body.Bytes(), &reading); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if reading.City != "Berlin" {
		t.Errorf("Expected city Berlin, got %s", reading.City)
	}
}

// TestCurrentWeather_NotFound tests a city with no stored readings
func TestCurrentWeather_NotFound(t *testing.T) {
	server, mocks := createTestServer()
	mocks.weather.currentFunc = func(ctx context.Context, city string) (*models.WeatherReading, error) {
		return nil, notFoundErr("weather reading", city)
	}

	req := httptest.NewRequest("GET", "/api/weather/current/Nowhere", nil)

	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

// TestWeatherHistory_LimitPassthrough tests the limit query parameter
func TestWeatherHistory_LimitPassthrough(t *testing.T) {
	server, mocks := createTestServer()

	var gotLimit int
	mocks.weather.historyFunc = func(ctx context.Context, city string, limit int) ([]*models.WeatherReading, error) {
		gotLimit = limit
		return []*models.WeatherReading{}, nil
	}

	req := httptest.NewRequest("GET", "/api/weather/history/Berlin?limit=7", nil)

	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if gotLimit != 7 {
		t.Errorf("Expected limit 7, got %d", gotLimit)
	}
}

// TestWeatherHistory_InvalidLimit tests rejection of non-numeric limits
func TestWeatherHistory_InvalidLimit(t *testing.T) {
	server, _ := createTestServer()

	req := httptest.NewRequest("GET", "/api/weather/history/Berlin?limit=abc", nil)

	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

// TestTriggerFetch_Success tests the on-demand fetch endpoint
func TestTriggerFetch_Success(t *testing.T) {
	server, mocks := createTestServer()
	mocks.pipeline.runCycleFunc = func(ctx context.Context) (*pipeline.CycleResult, error) {
		return &pipeline.CycleResult{CitiesProcessed: 3, ReadingsStored: 3, AlertsSent: 1}, nil
	}

	req := httptest.NewRequest("POST", "/api/weather/fetch", nil)

	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var result pipeline.CycleResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result.CitiesProcessed != 3 || result.AlertsSent != 1 {
		t.Errorf("Unexpected cycle result: %+v", result)
	}
}

// TestTriggerFetch_AlreadyRunning tests the in-flight cycle conflict
func TestTriggerFetch_AlreadyRunning(t *testing.T) {
	server, mocks := createTestServer()
	mocks.pipeline.runCycleFunc = func(ctx context.Context) (*pipeline.CycleResult, error) {
		return nil, apperrors.NewConflictError("a pipeline cycle is already running")
	}

	req := httptest.NewRequest("POST", "/api/weather/fetch", nil)

	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", w.Code)
	}
}

// TestListUserAlerts_Success tests a user's alert history
func TestListUserAlerts_Success(t *testing.T) {
	server, _ := createTestServer()

	req := httptest.NewRequest("GET", "/api/users/user-123/alerts", nil)

	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp struct {
		Alerts []*models.AlertLog `json:"alerts"`
		Count  int                `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Count != 1 {
		t.Errorf("Expected 1 alert, got %d", resp.Count)
	}
}

// TestHealth tests the health check endpoint
func TestHealth(t *testing.T) {
	server, _ := createTestServer()

	req := httptest.NewRequest("GET", "/api/health", nil)

	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
}

// TestProviderError_MapsToBadGateway tests mapping of provider failures to 502
func TestProviderError_MapsToBadGateway(t *testing.T) {
	server, mocks := createTestServer()
	mocks.pipeline.runCycleFunc = func(ctx context.Context) (*pipeline.CycleResult, error) {
		return nil, apperrors.NewProviderError("weather provider returned an unexpected payload", nil)
	}

	req := httptest.NewRequest("POST", "/api/weather/fetch", nil)

	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)

	if w.Code != http.StatusBadGateway {
		t.Errorf("Expected status 502, got %d", w.Code)
	}
}
