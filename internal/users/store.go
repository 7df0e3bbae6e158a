// Package users stores the user records served by the users API.
//
// Two implementations are provided: PostgresStore, backed by pgx, and
// MemoryStore for tests and for running the API without a database.
package users

import (
	"context"
	"errors"
	"strings"
	"time"
)

// User is a single user record.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ErrEmptyName is returned when a user is created with a blank name.
var ErrEmptyName = errors.New("name must be non-empty")

// Store is the persistence interface used by the API.
type Store interface {
	// Init prepares the backing storage (e.g. creates tables).
	Init(ctx context.Context) error
	// List returns all users ordered by ID.
	List(ctx context.Context) ([]User, error)
	// Create inserts a user and returns it with its assigned ID.
	Create(ctx context.Context, name string) (User, error)
	Close()
}

// validateName rejects names that are empty after trimming whitespace.
func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	return nil
}
