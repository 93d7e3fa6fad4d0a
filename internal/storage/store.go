// Package storage provides abstractions for persistent trip storage.
package storage

import (
	"context"
	"errors"

	"github.com/tripsync/tripsync/internal/models"
)

// ErrNotFound is returned when a trip ID does not exist. Callers that want
// the ledger's permissive no-op semantics match on it with errors.Is.
var ErrNotFound = errors.New("trip not found")

// Store defines the interface for trip storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer, and keeps persistence an
// injected dependency of the ledger rather than ambient global state.
type Store interface {
	// ListTrips returns every stored trip, newest first.
	ListTrips(ctx context.Context) ([]*models.Trip, error)

	// GetTrip retrieves a trip with all its collections.
	// Returns ErrNotFound if the ID is unknown.
	GetTrip(ctx context.Context, tripID string) (*models.Trip, error)

	// CreateTrip persists a new trip. The trip.ID and trip.CreatedAt fields
	// are populated by the store when unset.
	CreateTrip(ctx context.Context, trip *models.Trip) error

	// UpdateTrip replaces a stored trip and all its collections atomically.
	// Returns ErrNotFound if the ID is unknown.
	UpdateTrip(ctx context.Context, trip *models.Trip) error

	// DeleteTrip removes a trip and everything it owns.
	// Returns ErrNotFound if the ID is unknown.
	DeleteTrip(ctx context.Context, tripID string) error

	// Close releases any resources held by the store.
	Close() error
}
