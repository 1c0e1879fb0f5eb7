package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/burakozcn01/turkiye-deprem-takip/config"
	"github.com/burakozcn01/turkiye-deprem-takip/internal/logger"
	"github.com/burakozcn01/turkiye-deprem-takip/internal/metrics"
)

// DB wraps the shared connection pool. The pool pointer is guarded so a
// detected closed-pool condition can be recovered by transparent
// recreation before retrying the single failed call.
type DB struct {
	mu   sync.RWMutex
	pool *pgxpool.Pool
	cfg  config.DatabaseConfig
}

// New creates a new database connection
func New(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	if cfg.URL == "" {
		logger.Info("DATABASE_URL not set; using in-memory store only")
		return &DB{pool: nil, cfg: cfg}, nil
	}

	pool, err := newPool(ctx, cfg)
	if err != nil {
		return nil, err
	}

	db := &DB{pool: pool, cfg: cfg}
	go db.collectMetrics(ctx)

	logger.Info("Database connection established",
		"max_conns", cfg.MaxConns,
		"min_conns", cfg.MinConns,
	)

	return db, nil
}

func newPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse db url: %w", err)
	}

	poolCfg.MaxConns = int32(cfg.MaxConns)
	poolCfg.MinConns = int32(cfg.MinConns)
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return pool, nil
}

// Close closes the database connection
func (d *DB) Close(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pool != nil {
		d.pool.Close()
		logger.Info("Database connection closed")
	}
}

func (d *DB) getPool() *pgxpool.Pool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.pool
}

// isPoolClosed matches the acquire failure produced by a closed pool
func isPoolClosed(err error) bool {
	return err != nil && strings.Contains(err.Error(), "closed pool")
}

// recreate replaces a closed pool with a fresh one. Concurrent callers
// that raced into the same failure reuse the pool the first one built.
func (d *DB) recreate(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.pool.Ping(ctx); err == nil || !isPoolClosed(err) {
		return nil
	}

	logger.Warn("Connection pool closed; recreating")
	pool, err := newPool(ctx, d.cfg)
	if err != nil {
		return fmt.Errorf("recreate pool: %w", err)
	}
	d.pool = pool
	return nil
}

// collectMetrics periodically collects pool metrics
func (d *DB) collectMetrics(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if pool := d.getPool(); pool != nil {
				metrics.SetDBConnectionsActive(float64(pool.Stat().AcquiredConns()))
			}
		}
	}
}

// Exec executes a statement
func (d *DB) Exec(ctx context.Context, sql string, args ...any) error {
	if d.getPool() == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := d.getPool().Exec(ctx, sql, args...)
	if isPoolClosed(err) {
		if rerr := d.recreate(ctx); rerr == nil {
			_, err = d.getPool().Exec(ctx, sql, args...)
		}
	}

	status := "success"
	if err != nil {
		status = "error"
		logger.Error("Database exec failed", "error", err)
	}
	metrics.RecordDBQuery("exec", status)

	return err
}

// Query executes a query and returns rows
func (d *DB) Query(ctx context.Context, sql string, args ...any) (interface{}, error) {
	if d.getPool() == nil {
		return nil, errors.New("db not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	rows, err := d.getPool().Query(ctx, sql, args...)
	if isPoolClosed(err) {
		if rerr := d.recreate(ctx); rerr == nil {
			rows, err = d.getPool().Query(ctx, sql, args...)
		}
	}

	status := "success"
	if err != nil {
		status = "error"
		logger.Error("Database query failed", "error", err)
	}
	metrics.RecordDBQuery("query", status)

	return rows, err
}

// QueryRow executes a query that returns a single row
func (d *DB) QueryRow(ctx context.Context, sql string, args ...any) interface{} {
	if d.getPool() == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	return d.getPool().QueryRow(ctx, sql, args...)
}

// Health checks database connectivity
func (d *DB) Health(ctx context.Context) error {
	pool := d.getPool()
	if pool == nil {
		return errors.New("database not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return pool.Ping(ctx)
}

// IsConfigured returns true if database is configured
func (d *DB) IsConfigured() bool {
	return d.getPool() != nil
}
