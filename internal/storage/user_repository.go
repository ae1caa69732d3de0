package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	apperrors "github.com/weather-alerts/internal/errors"
	"github.com/weather-alerts/internal/models"
)

// pgUniqueViolation is the Postgres error code for unique constraint violations
const pgUniqueViolation = "23505"

// UserRepository handles user persistence
type UserRepository struct {
	db *PostgresDB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *PostgresDB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. The country code is stored uppercase.
// A duplicate email fails with a conflict error; the row is never written.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.Country = strings.ToUpper(user.Country)
	user.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO users (id, email, city, country, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Pool().Exec(ctx, query,
		user.ID,
		user.Email,
		user.City,
		user.Country,
		user.CreatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperrors.NewConflictError(fmt.Sprintf("user with email %s already exists", user.Email))
		}
		return apperrors.NewDatabaseError("create user", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT id, email, city, country, created_at
		FROM users
		WHERE id = $1
	`

	var user models.User
	err := r.db.Pool().QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.City,
		&user.Country,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("user", id)
		}
		return nil, apperrors.NewDatabaseError("get user", err)
	}

	return &user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, city, country, created_at
		FROM users
		WHERE email = $1
	`

	var user models.User
	err := r.db.Pool().QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.City,
		&user.Country,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("user", email)
		}
		return nil, apperrors.NewDatabaseError("get user by email", err)
	}

	return &user, nil
}

// List retrieves all users, newest first
func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	query := `
		SELECT id, email, city, country, created_at
		FROM users
		ORDER BY created_at DESC
	`

	rows, err := r.db.Pool().Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list users", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.City,
			&user.Country,
			&user.CreatedAt,
		); err != nil {
			return nil, apperrors.NewDatabaseError("scan user", err)
		}
		users = append(users, &user)
	}

	return users, rows.Err()
}

// ListByCity retrieves all users registered to a city (case-insensitive)
func (r *UserRepository) ListByCity(ctx context.Context, city string) ([]*models.User, error) {
	query := `
		SELECT id, email, city, country, created_at
		FROM users
		WHERE LOWER(city) = LOWER($1)
	`

	rows, err := r.db.Pool().Query(ctx, query, city)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list users by city", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.City,
			&user.Country,
			&user.CreatedAt,
		); err != nil {
			return nil, apperrors.NewDatabaseError("scan user", err)
		}
		users = append(users, &user)
	}

	return users, rows.Err()
}

// DistinctCities returns the set of distinct (city, country) pairs among users
func (r *UserRepository) DistinctCities(ctx context.Context) ([]models.City, error) {
	query := `
		SELECT DISTINCT city, country FROM users
		ORDER BY city
	`

	rows, err := r.db.Pool().Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list distinct cities", err)
	}
	defer rows.Close()

	var cities []models.City
	for rows.Next() {
		var city models.City
		if err := rows.Scan(&city.Name, &city.Country); err != nil {
			return nil, apperrors.NewDatabaseError("scan city", err)
		}
		cities = append(cities, city)
	}

	return cities, rows.Err()
}
