// Package source contains one adapter per upstream seismic feed. Each
// adapter fetches and parses its feed into raw event records; malformed
// individual records are skipped, never fatal to the batch.
package source

import (
	"context"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single upstream call.
const DefaultTimeout = 10 * time.Second

// RawEvent is one upstream record before normalization. NativeID is empty
// for feeds without a stable id.
type RawEvent struct {
	NativeID   string
	Magnitude  float64
	Place      string
	Lat        float64
	Lon        float64
	Depth      float64
	OccurredAt time.Time
	Source     string
}

// Source defines a pluggable feed adapter
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]RawEvent, error)
}

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}
