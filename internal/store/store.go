package store

import (
	"context"

	"github.com/burakozcn01/turkiye-deprem-takip/internal/models"
)

// Store defines the interface for event storage. GetEarthquake returns
// errors.ErrNotFound for an absent id.
type Store interface {
	UpsertEarthquakes(ctx context.Context, events []models.Earthquake) error
	QueryEarthquakes(ctx context.Context, q models.EarthquakeQuery) ([]models.Earthquake, error)
	GetEarthquake(ctx context.Context, id string) (*models.Earthquake, error)
	EnsureSchema(ctx context.Context) error
	Health(ctx context.Context) error
}

// Database interface for dependency injection
type Database interface {
	Exec(ctx context.Context, sql string, args ...any) error
	Query(ctx context.Context, sql string, args ...any) (interface{}, error)
	QueryRow(ctx context.Context, sql string, args ...any) interface{}
	Health(ctx context.Context) error
	IsConfigured() bool
}

// New creates a new store instance
func New(db Database) Store {
	if db.IsConfigured() {
		return NewPostgresStore(db)
	}
	// Fallback to in-memory store if no database
	return NewInMemoryStore()
}
