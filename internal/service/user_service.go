// Package service implements the application operations between the HTTP API
// and the repositories.
package service

import (
	"context"
	"regexp"
	"strings"

	apperrors "github.com/weather-alerts/internal/errors"
	"github.com/weather-alerts/internal/logging"
	"github.com/weather-alerts/internal/models"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// WelcomeSender sends the post-registration welcome email
type WelcomeSender interface {
	SendWelcome(to, city string) error
}

// UserRepo is the persistence contract the user service needs
type UserRepo interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
}

// PreferenceRepo is the persistence contract for preferences
type PreferenceRepo interface {
	CreateDefault(ctx context.Context, userID string) (*models.Preference, error)
	GetByUserID(ctx context.Context, userID string) (*models.Preference, error)
	Upsert(ctx context.Context, pref *models.Preference) (*models.Preference, error)
}

// RegisterInput is the payload for user registration
type RegisterInput struct {
	Email   string `json:"email"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// UpdatePreferencesInput replaces all preference fields atomically
type UpdatePreferencesInput struct {
	MinTemp      *int `json:"min_temp"`
	MaxTemp      *int `json:"max_temp"`
	AlertOnRain  bool `json:"alert_on_rain"`
	AlertOnSnow  bool `json:"alert_on_snow"`
	AlertOnStorm bool `json:"alert_on_storm"`
}

// UserWithPreferences bundles a user with their preference row
type UserWithPreferences struct {
	User        *models.User       `json:"user"`
	Preferences *models.Preference `json:"preferences,omitempty"`
}

// UserService handles registration, lookup and preference management
type UserService struct {
	users   UserRepo
	prefs   PreferenceRepo
	welcome WelcomeSender
	logger  *logging.Logger
}

// NewUserService creates a user service. welcome may be nil to disable
// welcome emails.
func NewUserService(users UserRepo, prefs PreferenceRepo, welcome WelcomeSender, logger *logging.Logger) *UserService {
	return &UserService{
		users:   users,
		prefs:   prefs,
		welcome: welcome,
		logger:  logger,
	}
}

// Register validates the payload, creates the user with a default preference
// row, and fires the welcome email in the background. The stored email
// matches the input case-sensitively.
func (s *UserService) Register(ctx context.Context, input *RegisterInput) (*models.User, error) {
	if err := validateRegisterInput(input); err != nil {
		return nil, err
	}

	// Duplicate check up front so the second write never happens. The unique
	// index still backstops a race between two concurrent registrations.
	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewConflictError("user with this email already exists")
	} else if !apperrors.IsCategory(err, apperrors.CategoryNotFound) {
		return nil, err
	}

	user := &models.User{
		Email:   input.Email,
		City:    strings.TrimSpace(input.City),
		Country: input.Country,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if _, err := s.prefs.CreateDefault(ctx, user.ID); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": user.ID,
		"city":    user.City,
		"country": user.Country,
	}).Info("User registered")

	if s.welcome != nil {
		go func(email, city string) {
			if err := s.welcome.SendWelcome(email, city); err != nil {
				s.logger.WithError(err).WithField("email", email).Error("Failed to send welcome email")
			}
		}(user.Email, user.City)
	}

	return user, nil
}

// Get returns a user with their preferences
func (s *UserService) Get(ctx context.Context, id string) (*UserWithPreferences, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	prefs, err := s.prefs.GetByUserID(ctx, id)
	if err != nil && !apperrors.IsCategory(err, apperrors.CategoryNotFound) {
		return nil, err
	}

	return &UserWithPreferences{User: user, Preferences: prefs}, nil
}

// List returns all users, newest first
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	return s.users.List(ctx)
}

// GetPreferences returns a user's preference row
func (s *UserService) GetPreferences(ctx context.Context, userID string) (*models.Preference, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.prefs.GetByUserID(ctx, userID)
}

// UpdatePreferences replaces all preference fields (last-write-wins).
// Fails with not found when the user does not exist.
func (s *UserService) UpdatePreferences(ctx context.Context, userID string, input *UpdatePreferencesInput) (*models.Preference, error) {
	if input.MinTemp != nil && input.MaxTemp != nil && *input.MinTemp > *input.MaxTemp {
		return nil, apperrors.NewValidationError("min_temp", "must not exceed max_temp")
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	pref := &models.Preference{
		UserID:       userID,
		MinTemp:      input.MinTemp,
		MaxTemp:      input.MaxTemp,
		AlertOnRain:  input.AlertOnRain,
		AlertOnSnow:  input.AlertOnSnow,
		AlertOnStorm: input.AlertOnStorm,
	}

	return s.prefs.Upsert(ctx, pref)
}

func validateRegisterInput(input *RegisterInput) error {
	if input.Email == "" {
		return apperrors.NewValidationError("email", "is required")
	}
	if !emailPattern.MatchString(input.Email) {
		return apperrors.NewValidationError("email", "is not a valid email address")
	}
	if strings.TrimSpace(input.City) == "" {
		return apperrors.NewValidationError("city", "is required")
	}
	country := strings.TrimSpace(input.Country)
	if len(country) != 2 || !isAlpha(country) {
		return apperrors.NewValidationError("country", "must be a two-letter country code")
	}
	input.Country = country
	return nil
}

func isAlpha(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
