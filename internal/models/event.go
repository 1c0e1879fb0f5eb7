package models

import "time"

// Feed sources
const (
	SourceEMSC     = "EMSC"
	SourceKandilli = "KANDILLI"
	SourceAFAD     = "AFAD"
)

// Earthquake is the canonical event produced by the ingestion pipeline.
// ID is immutable once assigned: source-prefixed native id, or synthesized
// from timestamp+coordinates when the feed has no stable id.
type Earthquake struct {
	ID          string    `json:"id" db:"id"`
	Magnitude   float64   `json:"magnitude" db:"magnitude"`
	Place       string    `json:"place" db:"place"`
	NearestCity string    `json:"nearest_city" db:"nearest_city"`
	DistanceKm  float64   `json:"distance_km" db:"distance_km"`
	Lat         float64   `json:"lat" db:"lat"`
	Lon         float64   `json:"lon" db:"lon"`
	Depth       float64   `json:"depth" db:"depth"`
	Time        time.Time `json:"time" db:"time"`
	DetectedAt  time.Time `json:"detected_at" db:"detected_at"`
	Source      string    `json:"source" db:"source"`
}

// EarthquakeQuery represents query parameters for filtering stored events
type EarthquakeQuery struct {
	Sources      []string  `json:"sources"`
	NearestCity  string    `json:"nearest_city"`
	MinMagnitude float64   `json:"min_magnitude"`
	Since        time.Time `json:"since"`
	Until        time.Time `json:"until"`
	Limit        int       `json:"limit"`
}

// Matches checks if an event matches the query criteria
func (q EarthquakeQuery) Matches(e Earthquake) bool {
	if len(q.Sources) > 0 && !contains(q.Sources, e.Source) {
		return false
	}
	if q.NearestCity != "" && e.NearestCity != q.NearestCity {
		return false
	}
	if q.MinMagnitude > 0 && e.Magnitude < q.MinMagnitude {
		return false
	}
	if !q.Since.IsZero() && e.Time.Before(q.Since) {
		return false
	}
	if !q.Until.IsZero() && e.Time.After(q.Until) {
		return false
	}
	return true
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
