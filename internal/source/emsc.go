package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/burakozcn01/turkiye-deprem-takip/internal/logger"
	"github.com/burakozcn01/turkiye-deprem-takip/internal/models"
)

// The portal rejects default Go user agents, so present a browser one.
const emscUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// EMSCSource fetches the EMSC seismic portal GeoJSON feed (globally scoped;
// the normalizer applies the geofence).
type EMSCSource struct {
	url    string
	limit  int
	client *http.Client
}

// NewEMSCSource creates an EMSC adapter against the given query endpoint
func NewEMSCSource(url string, timeout time.Duration) *EMSCSource {
	return &EMSCSource{
		url:    url,
		limit:  100,
		client: newHTTPClient(timeout),
	}
}

// Name returns the source name
func (s *EMSCSource) Name() string { return models.SourceEMSC }

type emscEnvelope struct {
	Features []emscFeature `json:"features"`
}

type emscFeature struct {
	ID         string `json:"id"`
	Properties struct {
		Mag         float64 `json:"mag"`
		FlynnRegion string  `json:"flynn_region"`
		Time        string  `json:"time"`
	} `json:"properties"`
	Geometry struct {
		Coordinates []float64 `json:"coordinates"`
	} `json:"geometry"`
}

// Fetch issues a single bounded-limit query and parses the feature array.
// Features with malformed coordinate arrays are skipped per-record.
func (s *EMSCSource) Fetch(ctx context.Context) ([]RawEvent, error) {
	url := fmt.Sprintf("%s?limit=%d&format=json", s.url, s.limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", emscUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch EMSC: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	var envelope emscEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("parse EMSC: %w", err)
	}

	events := make([]RawEvent, 0, len(envelope.Features))
	for _, f := range envelope.Features {
		coords := f.Geometry.Coordinates
		if len(coords) < 2 {
			logger.Debug("Skipping EMSC feature with malformed coordinates", "id", f.ID)
			continue
		}

		depth := 0.0
		if len(coords) > 2 {
			depth = coords[2]
		}

		events = append(events, RawEvent{
			NativeID:   f.ID,
			Magnitude:  f.Properties.Mag,
			Place:      f.Properties.FlynnRegion,
			Lat:        coords[1],
			Lon:        coords[0],
			Depth:      depth,
			OccurredAt: parseEMSCTime(f.Properties.Time),
			Source:     models.SourceEMSC,
		})
	}

	return events, nil
}

// parseEMSCTime handles the portal's ISO-8601 timestamps with fractional
// seconds, plus the older space-separated form; anything else becomes now.
func parseEMSCTime(s string) time.Time {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02 15:04:05 UTC", s); err == nil {
		return t
	}
	return time.Now().UTC()
}
