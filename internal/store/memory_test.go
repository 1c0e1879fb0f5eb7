package store

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "github.com/burakozcn01/turkiye-deprem-takip/internal/errors"
	"github.com/burakozcn01/turkiye-deprem-takip/internal/models"
)

func quake(id string, mag float64, when time.Time) models.Earthquake {
	return models.Earthquake{
		ID:          id,
		Magnitude:   mag,
		NearestCity: "İzmir",
		Time:        when,
		Source:      models.SourceAFAD,
	}
}

func TestInMemoryUpsertIdempotent(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	when := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

	if err := s.UpsertEarthquakes(ctx, []models.Earthquake{quake("afad_123", 4.2, when)}); err != nil {
		t.Fatalf("UpsertEarthquakes() error = %v", err)
	}
	// a revised magnitude for the same id replaces the stored row
	if err := s.UpsertEarthquakes(ctx, []models.Earthquake{quake("afad_123", 4.6, when)}); err != nil {
		t.Fatalf("UpsertEarthquakes() error = %v", err)
	}

	events, err := s.QueryEarthquakes(ctx, models.EarthquakeQuery{})
	if err != nil {
		t.Fatalf("QueryEarthquakes() error = %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("stored %d events, want 1", len(events))
	}
	if events[0].Magnitude != 4.6 {
		t.Errorf("Magnitude = %v, want the revised 4.6", events[0].Magnitude)
	}
}

func TestInMemoryQueryOrdering(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	base := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	s.UpsertEarthquakes(ctx, []models.Earthquake{
		quake("a", 3.0, base.Add(1*time.Hour)),
		quake("b", 3.0, base.Add(3*time.Hour)),
		quake("c", 3.0, base.Add(2*time.Hour)),
	})

	events, err := s.QueryEarthquakes(ctx, models.EarthquakeQuery{})
	if err != nil {
		t.Fatalf("QueryEarthquakes() error = %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	for i, want := range []string{"b", "c", "a"} {
		if events[i].ID != want {
			t.Errorf("events[%d].ID = %q, want %q (time descending)", i, events[i].ID, want)
		}
	}
}

func TestInMemoryQueryFilters(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	base := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	small := quake("small", 2.0, base)
	big := quake("big", 5.5, base.Add(time.Hour))
	big.Source = models.SourceEMSC
	s.UpsertEarthquakes(ctx, []models.Earthquake{small, big})

	tests := []struct {
		name    string
		query   models.EarthquakeQuery
		wantIDs []string
	}{
		{"min magnitude", models.EarthquakeQuery{MinMagnitude: 3.0}, []string{"big"}},
		{"source filter", models.EarthquakeQuery{Sources: []string{models.SourceAFAD}}, []string{"small"}},
		{"since filter", models.EarthquakeQuery{Since: base.Add(30 * time.Minute)}, []string{"big"}},
		{"limit", models.EarthquakeQuery{Limit: 1}, []string{"big"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := s.QueryEarthquakes(ctx, tt.query)
			if err != nil {
				t.Fatalf("QueryEarthquakes() error = %v", err)
			}
			if len(events) != len(tt.wantIDs) {
				t.Fatalf("got %d events, want %d", len(events), len(tt.wantIDs))
			}
			for i, want := range tt.wantIDs {
				if events[i].ID != want {
					t.Errorf("events[%d].ID = %q, want %q", i, events[i].ID, want)
				}
			}
		})
	}
}

func TestInMemoryGetEarthquake(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	when := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	s.UpsertEarthquakes(ctx, []models.Earthquake{quake("afad_1", 4.0, when)})

	ev, err := s.GetEarthquake(ctx, "afad_1")
	if err != nil {
		t.Fatalf("GetEarthquake() error = %v", err)
	}
	if ev == nil || ev.ID != "afad_1" {
		t.Errorf("GetEarthquake() = %+v, want afad_1", ev)
	}

	missing, err := s.GetEarthquake(ctx, "nope")
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("GetEarthquake() error = %v, want ErrNotFound", err)
	}
	if missing != nil {
		t.Errorf("GetEarthquake() for unknown id = %+v, want nil", missing)
	}
}
