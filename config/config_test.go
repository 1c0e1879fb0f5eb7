package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 5000 {
		t.Errorf("Server.Port = %d, want 5000", cfg.Server.Port)
	}
	if cfg.Database.MaxConns != 20 {
		t.Errorf("Database.MaxConns = %d, want 20", cfg.Database.MaxConns)
	}
	if cfg.Database.MinConns != 1 {
		t.Errorf("Database.MinConns = %d, want 1", cfg.Database.MinConns)
	}
	if cfg.Ingest.Interval != 30*time.Second {
		t.Errorf("Ingest.Interval = %v, want 30s", cfg.Ingest.Interval)
	}
	if cfg.Ingest.RecentCapacity != 100 {
		t.Errorf("Ingest.RecentCapacity = %d, want 100", cfg.Ingest.RecentCapacity)
	}
	if cfg.Ingest.SeenCapacity != 1000 {
		t.Errorf("Ingest.SeenCapacity = %d, want 1000", cfg.Ingest.SeenCapacity)
	}
	if cfg.Push.Subject == "" {
		t.Error("Push.Subject should have a default")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("INGEST_INTERVAL", "1m")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Ingest.Interval != time.Minute {
		t.Errorf("Ingest.Interval = %v, want 1m", cfg.Ingest.Interval)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, true},
		{"max conns below min", func(c *Config) { c.Database.MaxConns = 0 }, true},
		{"zero interval", func(c *Config) { c.Ingest.Interval = 0 }, true},
		{"zero fetch timeout", func(c *Config) { c.Ingest.FetchTimeout = 0 }, true},
		{"recent capacity zero", func(c *Config) { c.Ingest.RecentCapacity = 0 }, true},
		{"seen below recent", func(c *Config) { c.Ingest.SeenCapacity = 10 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
