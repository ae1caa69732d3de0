// Package models defines the persisted entities of the weather alert service.
package models

import "time"

// User represents a registered alert recipient tied to a single city.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	City      string    `json:"city"`
	Country   string    `json:"country"` // two-letter country code, stored uppercase
	CreatedAt time.Time `json:"created_at"`
}

// City identifies a distinct (city, country) pair among registered users.
type City struct {
	Name    string `json:"city"`
	Country string `json:"country"`
}
