package store

import (
	"context"
	"sort"
	"sync"

	apperrors "github.com/burakozcn01/turkiye-deprem-takip/internal/errors"
	"github.com/burakozcn01/turkiye-deprem-takip/internal/models"
)

// InMemoryStore implements Store using in-memory storage
type InMemoryStore struct {
	mu     sync.RWMutex
	events map[string]models.Earthquake
}

// NewInMemoryStore creates a new in-memory store
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		events: make(map[string]models.Earthquake),
	}
}

// EnsureSchema is a no-op for the in-memory store
func (s *InMemoryStore) EnsureSchema(ctx context.Context) error {
	return nil
}

// UpsertEarthquakes stores events in memory keyed by id
func (s *InMemoryStore) UpsertEarthquakes(ctx context.Context, events []models.Earthquake) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ev := range events {
		s.events[ev.ID] = ev
	}

	return nil
}

// QueryEarthquakes retrieves events from memory based on query parameters
func (s *InMemoryStore) QueryEarthquakes(ctx context.Context, q models.EarthquakeQuery) ([]models.Earthquake, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []models.Earthquake
	for _, ev := range s.events {
		if q.Matches(ev) {
			result = append(result, ev)
		}
	}

	// Sort by event time descending
	sort.Slice(result, func(i, j int) bool {
		return result[i].Time.After(result[j].Time)
	})

	if q.Limit > 0 && q.Limit < len(result) {
		result = result[:q.Limit]
	}

	return result, nil
}

// GetEarthquake retrieves a single event by ID
func (s *InMemoryStore) GetEarthquake(ctx context.Context, id string) (*models.Earthquake, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if ev, exists := s.events[id]; exists {
		return &ev, nil
	}

	return nil, apperrors.ErrNotFound
}

// Health always returns nil for in-memory store
func (s *InMemoryStore) Health(ctx context.Context) error {
	return nil
}
