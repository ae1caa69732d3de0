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

// WeatherRepository handles the append-only weather reading log
type WeatherRepository struct {
	db *PostgresDB
}

// NewWeatherRepository creates a new weather repository
func NewWeatherRepository(db *PostgresDB) *WeatherRepository {
	return &WeatherRepository{db: db}
}

// Insert stores one reading. Readings are never updated or deleted.
func (r *WeatherRepository) Insert(ctx context.Context, reading *models.WeatherReading) error {
	if reading.ID == "" {
		reading.ID = uuid.New().String()
	}
	if reading.FetchedAt.IsZero() {
		reading.FetchedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO weather_readings
		(id, city, country, temperature, feels_like, conditions, description, humidity, wind_speed, pressure, fetched_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Pool().Exec(ctx, query,
		reading.ID,
		reading.City,
		reading.Country,
		reading.Temperature,
		reading.FeelsLike,
		reading.Conditions,
		reading.Description,
		reading.Humidity,
		reading.WindSpeed,
		reading.Pressure,
		reading.FetchedAt,
	)
	if err != nil {
		return apperrors.NewDatabaseError("insert weather reading", err)
	}

	return nil
}

// Latest returns the most recent reading for a city (case-insensitive)
func (r *WeatherRepository) Latest(ctx context.Context, city string) (*models.WeatherReading, error) {
	query := `
		SELECT id, city, country, temperature, feels_like, conditions, description, humidity, wind_speed, pressure, fetched_at
		FROM weather_readings
		WHERE LOWER(city) = LOWER($1)
		ORDER BY fetched_at DESC
		LIMIT 1
	`

	var reading models.WeatherReading
	err := r.db.Pool().QueryRow(ctx, query, city).Scan(
		&reading.ID,
		&reading.City,
		&reading.Country,
		&reading.Temperature,
		&reading.FeelsLike,
		&reading.Conditions,
		&reading.Description,
		&reading.Humidity,
		&reading.WindSpeed,
		&reading.Pressure,
		&reading.FetchedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("weather reading", city)
		}
		return nil, apperrors.NewDatabaseError("get latest weather", err)
	}

	return &reading, nil
}

// History returns the most recent readings for a city, newest first
func (r *WeatherRepository) History(ctx context.Context, city string, limit int) ([]*models.WeatherReading, error) {
	query := `
		SELECT id, city, country, temperature, feels_like, conditions, description, humidity, wind_speed, pressure, fetched_at
		FROM weather_readings
		WHERE LOWER(city) = LOWER($1)
		ORDER BY fetched_at DESC
		LIMIT $2
	`

	rows, err := r.db.Pool().Query(ctx, query, city, limit)
	if err != nil {
		return nil, apperrors.NewDatabaseError("get weather history", err)
	}
	defer rows.Close()

	var readings []*models.WeatherReading
	for rows.Next() {
		var reading models.WeatherReading
		if err := rows.Scan(
			&reading.ID,
			&reading.City,
			&reading.Country,
			&reading.Temperature,
			&reading.FeelsLike,
			&reading.Conditions,
			&reading.Description,
			&reading.Humidity,
			&reading.WindSpeed,
			&reading.Pressure,
			&reading.FetchedAt,
		); err != nil {
			return nil, apperrors.NewDatabaseError("scan weather reading", err)
		}
		readings = append(readings, &reading)
	}

	return readings, rows.Err()
}
