package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/weather-alerts/internal/errors"
	"github.com/weather-alerts/internal/models"
)

// AlertRepository handles the append-only alert log
type AlertRepository struct {
	db *PostgresDB
}

// NewAlertRepository creates a new alert repository
func NewAlertRepository(db *PostgresDB) *AlertRepository {
	return &AlertRepository{db: db}
}

// Insert records one sent alert email
func (r *AlertRepository) Insert(ctx context.Context, entry *models.AlertLog) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.SentAt.IsZero() {
		entry.SentAt = time.Now().UTC()
	}

	query := `
		INSERT INTO alert_logs (id, user_id, alert_type, message, sent_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Pool().Exec(ctx, query,
		entry.ID,
		entry.UserID,
		entry.AlertType,
		entry.Message,
		entry.SentAt,
	)
	if err != nil {
		return apperrors.NewDatabaseError("insert alert log", err)
	}

	return nil
}

// ListByUser returns a user's alert log entries, newest first
func (r *AlertRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*models.AlertLog, error) {
	query := `
		SELECT id, user_id, alert_type, message, sent_at
		FROM alert_logs
		WHERE user_id = $1
		ORDER BY sent_at DESC
		LIMIT $2
	`

	rows, err := r.db.Pool().Query(ctx, query, userID, limit)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list user alerts", err)
	}
	defer rows.Close()

	return scanAlerts(rows)
}

// List returns alert log entries across all users, newest first
func (r *AlertRepository) List(ctx context.Context, limit int) ([]*models.AlertLog, error) {
	query := `
		SELECT id, user_id, alert_type, message, sent_at
		FROM alert_logs
		ORDER BY sent_at DESC
		LIMIT $1
	`

	rows, err := r.db.Pool().Query(ctx, query, limit)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list alerts", err)
	}
	defer rows.Close()

	return scanAlerts(rows)
}

type alertRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanAlerts(rows alertRows) ([]*models.AlertLog, error) {
	var alerts []*models.AlertLog
	for rows.Next() {
		var entry models.AlertLog
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.AlertType,
			&entry.Message,
			&entry.SentAt,
		); err != nil {
			return nil, apperrors.NewDatabaseError("scan alert log", err)
		}
		alerts = append(alerts, &entry)
	}
	return alerts, rows.Err()
}
