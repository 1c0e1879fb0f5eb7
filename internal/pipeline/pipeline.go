// Package pipeline drives the ingestion cycle: fetch all feeds, normalize,
// deduplicate, resolve the nearest city, persist and notify. One
// long-lived goroutine runs the loop; no failure inside a cycle may
// terminate it.
package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/burakozcn01/turkiye-deprem-takip/config"
	"github.com/burakozcn01/turkiye-deprem-takip/internal/dedup"
	apperrors "github.com/burakozcn01/turkiye-deprem-takip/internal/errors"
	"github.com/burakozcn01/turkiye-deprem-takip/internal/geo"
	"github.com/burakozcn01/turkiye-deprem-takip/internal/logger"
	"github.com/burakozcn01/turkiye-deprem-takip/internal/metrics"
	"github.com/burakozcn01/turkiye-deprem-takip/internal/models"
	"github.com/burakozcn01/turkiye-deprem-takip/internal/source"
)

// Store interface for event persistence
type Store interface {
	UpsertEarthquakes(ctx context.Context, events []models.Earthquake) error
}

// Notifier interface for push fan-out
type Notifier interface {
	Notify(ctx context.Context, ev models.Earthquake)
}

// Resolver maps coordinates to the nearest city and distance
type Resolver func(lat, lon float64) (string, float64)

// Pipeline coordinates fetching, normalization, deduplication, geocoding,
// storing and notification
type Pipeline struct {
	sources  []source.Source
	dedup    *dedup.Deduplicator
	store    Store
	notifier Notifier
	resolve  Resolver
	limiter  *rate.Limiter
	clock    clockwork.Clock
	cfg      config.IngestConfig
	mu       sync.RWMutex
	running  bool
}

// New creates a pipeline over the given sources
func New(sources []source.Source, d *dedup.Deduplicator, store Store, notifier Notifier, cfg config.IngestConfig) *Pipeline {
	p := &Pipeline{
		sources:  sources,
		dedup:    d,
		store:    store,
		notifier: notifier,
		resolve:  geo.Resolve,
		limiter:  rate.NewLimiter(rate.Limit(cfg.RateLimit), 1),
		clock:    clockwork.NewRealClock(),
		cfg:      cfg,
	}

	logger.Info("Pipeline initialized",
		"sources", len(sources),
		"interval", cfg.Interval,
		"rate_limit", cfg.RateLimit,
	)

	return p
}

// Run executes ingestion cycles until the context is cancelled. The pause
// is measured from cycle end to next cycle start (run, then sleep).
func (p *Pipeline) Run(ctx context.Context) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return fmt.Errorf("pipeline already running")
	}
	p.running = true
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.running = false
		p.mu.Unlock()
	}()

	logger.Info("Starting ingestion loop")

	for {
		p.RunCycle(ctx)

		select {
		case <-ctx.Done():
			logger.Info("Ingestion loop stopping")
			return ctx.Err()
		case <-p.clock.After(p.cfg.Interval):
		}
	}
}

// RunCycle executes one fetch-normalize-store pass. Any panic is caught
// and logged so a single bad cycle never takes the loop down.
func (p *Pipeline) RunCycle(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Ingestion cycle failed", "panic", r)
		}
	}()

	start := p.clock.Now()
	defer func() {
		metrics.RecordCycle(p.clock.Since(start))
	}()

	for _, raw := range p.fetchAll(ctx) {
		p.process(ctx, raw)
	}
}

// fetchAll queries the three feeds concurrently. A failed source degrades
// to an empty batch for this cycle; it never aborts the others.
func (p *Pipeline) fetchAll(ctx context.Context) []source.RawEvent {
	g := new(errgroup.Group)
	batches := make([][]source.RawEvent, len(p.sources))

	for i, src := range p.sources {
		i, src := i, src
		g.Go(func() error {
			if err := p.limiter.Wait(ctx); err != nil {
				return nil
			}
			events, err := src.Fetch(ctx)
			if err != nil {
				logger.Warn("Source fetch failed",
					"error", apperrors.SourceError{Source: src.Name(), Err: err})
				metrics.RecordEventProcessed(src.Name(), "fetch_error")
				return nil
			}
			logger.Debug("Source fetched", "source", src.Name(), "count", len(events))
			batches[i] = events
			return nil
		})
	}
	_ = g.Wait()

	var all []source.RawEvent
	for _, b := range batches {
		all = append(all, b...)
	}
	return all
}

// process runs a single raw record through the remaining stages
func (p *Pipeline) process(ctx context.Context, raw source.RawEvent) {
	ev, ok := Normalize(raw)
	if !ok {
		metrics.RecordEventProcessed(raw.Source, "skipped")
		return
	}

	// duplicates are rejected before the geocode scan
	if p.dedup.Seen(ev.ID) {
		metrics.RecordEventProcessed(ev.Source, "duplicate")
		return
	}

	city, distance := p.resolve(ev.Lat, ev.Lon)
	ev.NearestCity = city
	ev.DistanceKm = distance
	ev.DetectedAt = p.clock.Now().UTC()

	if !p.dedup.Admit(ev) {
		metrics.RecordEventProcessed(ev.Source, "duplicate")
		return
	}

	if err := p.store.UpsertEarthquakes(ctx, []models.Earthquake{ev}); err != nil {
		// persistence failure affects this event only
		logger.Error("Upsert failed", "id", ev.ID,
			"error", apperrors.PipelineError{Source: ev.Source, Stage: "store", Err: err})
		metrics.RecordEventProcessed(ev.Source, "store_error")
	} else {
		metrics.RecordEventProcessed(ev.Source, "ingested")
	}

	p.notifier.Notify(ctx, ev)

	logger.Info("Earthquake ingested",
		"id", ev.ID,
		"magnitude", ev.Magnitude,
		"nearest_city", ev.NearestCity,
		"distance_km", ev.DistanceKm,
		"source", ev.Source,
	)
}

// IsRunning returns whether the pipeline loop is active
func (p *Pipeline) IsRunning() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.running
}

// WithClock replaces the pipeline clock; used by tests
func (p *Pipeline) WithClock(c clockwork.Clock) *Pipeline {
	p.clock = c
	return p
}

// WithResolver replaces the geocode resolver; used by tests
func (p *Pipeline) WithResolver(r Resolver) *Pipeline {
	p.resolve = r
	return p
}
