package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	apperrors "github.com/burakozcn01/turkiye-deprem-takip/internal/errors"
	"github.com/burakozcn01/turkiye-deprem-takip/internal/models"
)

// PostgresStore implements Store using PostgreSQL
type PostgresStore struct {
	db Database
}

// NewPostgresStore creates a new PostgreSQL store
func NewPostgresStore(db Database) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the earthquakes table and its indexes
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS earthquakes (
			id TEXT PRIMARY KEY,
			magnitude REAL,
			place TEXT,
			nearest_city TEXT,
			distance_km REAL,
			lat REAL,
			lon REAL,
			depth REAL,
			time TIMESTAMP WITH TIME ZONE,
			detected_at TIMESTAMP WITH TIME ZONE,
			source TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_time ON earthquakes(time)`,
		`CREATE INDEX IF NOT EXISTS idx_magnitude ON earthquakes(magnitude)`,
		`CREATE INDEX IF NOT EXISTS idx_nearest_city ON earthquakes(nearest_city)`,
	}

	for _, stmt := range statements {
		if err := s.db.Exec(ctx, stmt); err != nil {
			return apperrors.DatabaseError{Operation: "ensure_schema", Err: err}
		}
	}
	return nil
}

// UpsertEarthquakes inserts or replaces events keyed by id. A second write
// with the same id overwrites every field, supporting upstream revisions.
func (s *PostgresStore) UpsertEarthquakes(ctx context.Context, events []models.Earthquake) error {
	if len(events) == 0 {
		return nil
	}

	query := `
		INSERT INTO earthquakes
		(id, magnitude, place, nearest_city, distance_km, lat, lon, depth, time, detected_at, source)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			magnitude = EXCLUDED.magnitude,
			place = EXCLUDED.place,
			nearest_city = EXCLUDED.nearest_city,
			distance_km = EXCLUDED.distance_km,
			lat = EXCLUDED.lat,
			lon = EXCLUDED.lon,
			depth = EXCLUDED.depth,
			time = EXCLUDED.time,
			detected_at = EXCLUDED.detected_at,
			source = EXCLUDED.source
	`

	for _, ev := range events {
		err := s.db.Exec(ctx, query,
			ev.ID, ev.Magnitude, ev.Place, ev.NearestCity, ev.DistanceKm,
			ev.Lat, ev.Lon, ev.Depth, ev.Time, ev.DetectedAt, ev.Source,
		)
		if err != nil {
			return apperrors.DatabaseError{Operation: "upsert", Err: fmt.Errorf("earthquake %s: %w", ev.ID, err)}
		}
	}

	return nil
}

// QueryEarthquakes retrieves stored events ordered by event time descending
func (s *PostgresStore) QueryEarthquakes(ctx context.Context, q models.EarthquakeQuery) ([]models.Earthquake, error) {
	query := `
		SELECT id, magnitude, place, nearest_city, distance_km, lat, lon, depth, time, detected_at, source
		FROM earthquakes
		WHERE 1=1
	`

	var args []interface{}
	argIndex := 1

	if len(q.Sources) > 0 {
		query += fmt.Sprintf(" AND source = ANY($%d)", argIndex)
		args = append(args, q.Sources)
		argIndex++
	}

	if q.NearestCity != "" {
		query += fmt.Sprintf(" AND nearest_city = $%d", argIndex)
		args = append(args, q.NearestCity)
		argIndex++
	}

	if q.MinMagnitude > 0 {
		query += fmt.Sprintf(" AND magnitude >= $%d", argIndex)
		args = append(args, q.MinMagnitude)
		argIndex++
	}

	if !q.Since.IsZero() {
		query += fmt.Sprintf(" AND time >= $%d", argIndex)
		args = append(args, q.Since)
		argIndex++
	}

	if !q.Until.IsZero() {
		query += fmt.Sprintf(" AND time <= $%d", argIndex)
		args = append(args, q.Until)
		argIndex++
	}

	query += " ORDER BY time DESC"

	if q.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, q.Limit)
	}

	rowsInterface, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.DatabaseError{Operation: "query", Err: err}
	}

	rows, ok := rowsInterface.(pgx.Rows)
	if !ok {
		return nil, fmt.Errorf("invalid rows type")
	}
	defer rows.Close()

	var events []models.Earthquake
	for rows.Next() {
		var ev models.Earthquake
		err := rows.Scan(
			&ev.ID, &ev.Magnitude, &ev.Place, &ev.NearestCity, &ev.DistanceKm,
			&ev.Lat, &ev.Lon, &ev.Depth, &ev.Time, &ev.DetectedAt, &ev.Source,
		)
		if err != nil {
			return nil, fmt.Errorf("scan earthquake: %w", err)
		}
		events = append(events, ev)
	}

	return events, nil
}

// GetEarthquake retrieves a single event by ID
func (s *PostgresStore) GetEarthquake(ctx context.Context, id string) (*models.Earthquake, error) {
	query := `
		SELECT id, magnitude, place, nearest_city, distance_km, lat, lon, depth, time, detected_at, source
		FROM earthquakes
		WHERE id = $1
	`

	rowInterface := s.db.QueryRow(ctx, query, id)
	row, ok := rowInterface.(pgx.Row)
	if !ok {
		return nil, fmt.Errorf("invalid row type")
	}

	var ev models.Earthquake
	err := row.Scan(
		&ev.ID, &ev.Magnitude, &ev.Place, &ev.NearestCity, &ev.DistanceKm,
		&ev.Lat, &ev.Lon, &ev.Depth, &ev.Time, &ev.DetectedAt, &ev.Source,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan earthquake: %w", err)
	}

	return &ev, nil
}

// Health checks the database connection
func (s *PostgresStore) Health(ctx context.Context) error {
	return s.db.Health(ctx)
}
