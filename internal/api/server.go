// Package api provides the HTTP API server implementation.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/weather-alerts/internal/logging"
	"github.com/weather-alerts/internal/models"
	"github.com/weather-alerts/internal/pipeline"
	"github.com/weather-alerts/internal/service"
)

// Service interfaces for dependency injection and testing

// UserServiceInterface defines the interface for user service operations
type UserServiceInterface interface {
	Register(ctx context.Context, input *service.RegisterInput) (*models.User, error)
	Get(ctx context.Context, id string) (*service.UserWithPreferences, error)
	List(ctx context.Context) ([]*models.User, error)
	GetPreferences(ctx context.Context, userID string) (*models.Preference, error)
	UpdatePreferences(ctx context.Context, userID string, input *service.UpdatePreferencesInput) (*models.Preference, error)
}

// WeatherServiceInterface defines the interface for weather query operations
type WeatherServiceInterface interface {
	Current(ctx context.Context, city string) (*models.WeatherReading, error)
	History(ctx context.Context, city string, limit int) ([]*models.WeatherReading, error)
}

// AlertServiceInterface defines the interface for alert history operations
type AlertServiceInterface interface {
	ListForUser(ctx context.Context, userID string, limit int) ([]*models.AlertLog, error)
	ListAll(ctx context.Context, limit int) ([]*models.AlertLog, error)
}

// PipelineRunner triggers an on-demand fetch and alert cycle
type PipelineRunner interface {
	RunCycle(ctx context.Context) (*pipeline.CycleResult, error)
}

// Server represents the HTTP API server.
type Server struct {
	router         *mux.Router
	httpServer     *http.Server
	userService    UserServiceInterface
	weatherService WeatherServiceInterface
	alertService   AlertServiceInterface
	pipelineRunner PipelineRunner
	config         *ServerConfig
	logger         *logging.Logger
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	RateLimitRPS    int
	RateLimitBurst  int
}

// NewServer creates a new API server instance.
func NewServer(
	config *ServerConfig,
	userService UserServiceInterface,
	weatherService WeatherServiceInterface,
	alertService AlertServiceInterface,
	pipelineRunner PipelineRunner,
	logger *logging.Logger,
) *Server {
	s := &Server{
		router:         mux.NewRouter(),
		userService:    userService,
		weatherService: weatherService,
		alertService:   alertService,
		pipelineRunner: pipelineRunner,
		config:         config,
		logger:         logger,
	}

	s.setupRouter()

	return s
}

// setupRouter configures the router with middleware and routes
func (s *Server) setupRouter() {
	rateLimiter := NewRateLimiter(s.config.RateLimitRPS, s.config.RateLimitBurst)

	// Middleware order matters
	s.router.Use(LoggingMiddleware)
	s.router.Use(RecoveryMiddleware)
	s.router.Use(CORSMiddleware)
	s.router.Use(RateLimitMiddleware(rateLimiter))
	s.router.Use(CompressionMiddleware)

	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%s", s.config.Host, s.config.Port),
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Health check endpoint
	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	// User endpoints
	api.HandleFunc("/users", s.handleRegisterUser).Methods("POST")
	api.HandleFunc("/users", s.handleListUsers).Methods("GET")
	api.HandleFunc("/users/{id}", s.handleGetUser).Methods("GET")
	api.HandleFunc("/users/{id}/preferences", s.handleGetPreferences).Methods("GET")
	api.HandleFunc("/users/{id}/preferences", s.handleUpdatePreferences).Methods("PUT")
	api.HandleFunc("/users/{id}/alerts", s.handleListUserAlerts).Methods("GET")

	// Weather endpoints
	api.HandleFunc("/weather/current/{city}", s.handleCurrentWeather).Methods("GET")
	api.HandleFunc("/weather/history/{city}", s.handleWeatherHistory).Methods("GET")
	api.HandleFunc("/weather/fetch", s.handleTriggerFetch).Methods("POST")

	// Alert endpoints
	api.HandleFunc("/alerts", s.handleListAlerts).Methods("GET")
}

// handleHealth handles health check requests.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "weather-alerts",
	})
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.WithField("addr", s.httpServer.Addr).Info("Starting API server")
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server")
	return s.httpServer.Shutdown(ctx)
}
