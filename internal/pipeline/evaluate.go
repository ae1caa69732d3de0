package pipeline

import (
	"fmt"
	"strings"

	"github.com/weather-alerts/internal/models"
)

// Alert is one matched condition for one user within a cycle.
type Alert struct {
	Type    string
	Message string
}

// Evaluate checks a reading against a user's preferences and returns one
// alert per matched condition type. A user can match several conditions in
// the same cycle; the caller sends one email per alert. Condition checks look
// at the provider's condition category, never the free-text description.
func Evaluate(reading *models.WeatherReading, prefs *models.Preference) []Alert {
	var alerts []Alert

	temp := reading.Temperature
	conditions := strings.ToLower(reading.Conditions)

	if prefs.MinTemp != nil && temp < float64(*prefs.MinTemp) {
		alerts = append(alerts, Alert{
			Type:    models.AlertTypeTemperature,
			Message: fmt.Sprintf("Low temperature alert! Current: %.1f°C (your minimum: %d°C)", temp, *prefs.MinTemp),
		})
	} else if prefs.MaxTemp != nil && temp > float64(*prefs.MaxTemp) {
		alerts = append(alerts, Alert{
			Type:    models.AlertTypeTemperature,
			Message: fmt.Sprintf("High temperature alert! Current: %.1f°C (your maximum: %d°C)", temp, *prefs.MaxTemp),
		})
	}

	if prefs.AlertOnRain && strings.Contains(conditions, "rain") {
		alerts = append(alerts, Alert{
			Type:    models.AlertTypeRain,
			Message: fmt.Sprintf("Rain alert! Current conditions: %s", reading.Conditions),
		})
	}

	if prefs.AlertOnSnow && strings.Contains(conditions, "snow") {
		alerts = append(alerts, Alert{
			Type:    models.AlertTypeSnow,
			Message: fmt.Sprintf("Snow alert! Current conditions: %s", reading.Conditions),
		})
	}

	if prefs.AlertOnStorm && (strings.Contains(conditions, "storm") || strings.Contains(conditions, "thunder")) {
		alerts = append(alerts, Alert{
			Type:    models.AlertTypeStorm,
			Message: fmt.Sprintf("Storm alert! Current conditions: %s", reading.Conditions),
		})
	}

	return alerts
}
