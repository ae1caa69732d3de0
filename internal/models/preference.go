package models

import "time"

// Preference holds a user's alert thresholds and condition opt-ins.
// Nil temperature thresholds disable the corresponding check.
type Preference struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	MinTemp      *int      `json:"min_temp"`
	MaxTemp      *int      `json:"max_temp"`
	AlertOnRain  bool      `json:"alert_on_rain"`
	AlertOnSnow  bool      `json:"alert_on_snow"`
	AlertOnStorm bool      `json:"alert_on_storm"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DefaultPreference returns the preference row created at registration:
// no thresholds, no condition opt-ins.
func DefaultPreference(userID string) *Preference {
	return &Preference{UserID: userID}
}
