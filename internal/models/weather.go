package models

import "time"

// WeatherReading is one stored observation for a city at a point in time.
// Readings are append-only; rows are never updated after insertion.
type WeatherReading struct {
	ID          string    `json:"id"`
	City        string    `json:"city"`
	Country     string    `json:"country"`
	Temperature float64   `json:"temperature"`
	FeelsLike   float64   `json:"feels_like"`
	Conditions  string    `json:"conditions"`  // provider condition category, e.g. "Rain"
	Description string    `json:"description"` // free-text description
	Humidity    int       `json:"humidity"`
	WindSpeed   float64   `json:"wind_speed"`
	Pressure    int       `json:"pressure"`
	FetchedAt   time.Time `json:"fetched_at"`
}
