package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	apperrors "github.com/weather-alerts/internal/errors"
	"github.com/weather-alerts/internal/models"
)

// PreferenceRepository handles preference persistence
type PreferenceRepository struct {
	db *PostgresDB
}

// NewPreferenceRepository creates a new preference repository
func NewPreferenceRepository(db *PostgresDB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// CreateDefault inserts the default preference row for a freshly registered user.
func (r *PreferenceRepository) CreateDefault(ctx context.Context, userID string) (*models.Preference, error) {
	pref := models.DefaultPreference(userID)
	pref.ID = uuid.New().String()
	now := time.Now().UTC()
	pref.CreatedAt = now
	pref.UpdatedAt = now

	query := `
		INSERT INTO user_preferences (id, user_id, min_temp, max_temp, alert_on_rain, alert_on_snow, alert_on_storm, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Pool().Exec(ctx, query,
		pref.ID,
		pref.UserID,
		pref.MinTemp,
		pref.MaxTemp,
		pref.AlertOnRain,
		pref.AlertOnSnow,
		pref.AlertOnStorm,
		pref.CreatedAt,
		pref.UpdatedAt,
	)
	if err != nil {
		return nil, apperrors.NewDatabaseError("create default preferences", err)
	}

	return pref, nil
}

// GetByUserID retrieves the preference row for a user
func (r *PreferenceRepository) GetByUserID(ctx context.Context, userID string) (*models.Preference, error) {
	query := `
		SELECT id, user_id, min_temp, max_temp, alert_on_rain, alert_on_snow, alert_on_storm, created_at, updated_at
		FROM user_preferences
		WHERE user_id = $1
	`

	var pref models.Preference
	err := r.db.Pool().QueryRow(ctx, query, userID).Scan(
		&pref.ID,
		&pref.UserID,
		&pref.MinTemp,
		&pref.MaxTemp,
		&pref.AlertOnRain,
		&pref.AlertOnSnow,
		&pref.AlertOnStorm,
		&pref.CreatedAt,
		&pref.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("preferences", userID)
		}
		return nil, apperrors.NewDatabaseError("get preferences", err)
	}

	return &pref, nil
}

// Upsert replaces all preference fields atomically (last-write-wins).
// The row is created if the user has none yet.
func (r *PreferenceRepository) Upsert(ctx context.Context, pref *models.Preference) (*models.Preference, error) {
	now := time.Now().UTC()

	query := `
		INSERT INTO user_preferences (id, user_id, min_temp, max_temp, alert_on_rain, alert_on_snow, alert_on_storm, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		ON CONFLICT (user_id) DO UPDATE SET
			min_temp = EXCLUDED.min_temp,
			max_temp = EXCLUDED.max_temp,
			alert_on_rain = EXCLUDED.alert_on_rain,
			alert_on_snow = EXCLUDED.alert_on_snow,
			alert_on_storm = EXCLUDED.alert_on_storm,
			updated_at = EXCLUDED.updated_at
		RETURNING id, user_id, min_temp, max_temp, alert_on_rain, alert_on_snow, alert_on_storm, created_at, updated_at
	`

	var stored models.Preference
	err := r.db.Pool().QueryRow(ctx, query,
		uuid.New().String(),
		pref.UserID,
		pref.MinTemp,
		pref.MaxTemp,
		pref.AlertOnRain,
		pref.AlertOnSnow,
		pref.AlertOnStorm,
		now,
	).Scan(
		&stored.ID,
		&stored.UserID,
		&stored.MinTemp,
		&stored.MaxTemp,
		&stored.AlertOnRain,
		&stored.AlertOnSnow,
		&stored.AlertOnStorm,
		&stored.CreatedAt,
		&stored.UpdatedAt,
	)
	if err != nil {
		return nil, apperrors.NewDatabaseError("upsert preferences", err)
	}

	return &stored, nil
}
