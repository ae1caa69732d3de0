package models

import "time"

// Alert type tags written to the alert log.
const (
	AlertTypeTemperature = "temperature"
	AlertTypeRain        = "rain"
	AlertTypeSnow        = "snow"
	AlertTypeStorm       = "storm"
)

// AlertLog records one email actually sent to a user.
type AlertLog struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	AlertType string    `json:"alert_type"`
	Message   string    `json:"message"`
	SentAt    time.Time `json:"sent_at"`
}
