package service

import (
	"context"

	"github.com/weather-alerts/internal/models"
)

const (
	defaultUserAlertLimit = 50
	defaultAlertLimit     = 100
	maxAlertLimit         = 1000
)

// AlertRepo is the persistence contract for alert history
type AlertRepo interface {
	ListByUser(ctx context.Context, userID string, limit int) ([]*models.AlertLog, error)
	List(ctx context.Context, limit int) ([]*models.AlertLog, error)
}

// AlertService answers alert history queries
type AlertService struct {
	alerts AlertRepo
	users  UserRepo
}

// NewAlertService creates an alert history service
func NewAlertService(alerts AlertRepo, users UserRepo) *AlertService {
	return &AlertService{alerts: alerts, users: users}
}

// ListForUser returns a user's sent alerts, newest first.
// Fails with not found when the user does not exist.
func (s *AlertService) ListForUser(ctx context.Context, userID string, limit int) ([]*models.AlertLog, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultUserAlertLimit
	}
	if limit > maxAlertLimit {
		limit = maxAlertLimit
	}

	return s.alerts.ListByUser(ctx, userID, limit)
}

// ListAll returns recent alerts across all users, newest first
func (s *AlertService) ListAll(ctx context.Context, limit int) ([]*models.AlertLog, error) {
	if limit <= 0 {
		limit = defaultAlertLimit
	}
	if limit > maxAlertLimit {
		limit = maxAlertLimit
	}

	return s.alerts.List(ctx, limit)
}
