// Package config loads the deployment configuration from a YAML file.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Booking    BookingConfig    `yaml:"booking"`
	Push       PushConfig       `yaml:"push"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Port            int      `yaml:"port"`
	AllowedOrigins  []string `yaml:"allowed_origins"`
	RateLimitPerSec float64  `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int      `yaml:"rate_limit_burst"`
	CacheTTLSeconds int      `yaml:"cache_ttl_seconds"`
}

// DatabaseConfig holds the SQLite database configuration.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// BookingConfig holds the deployment-level booking policy.
type BookingConfig struct {
	MinDurationMinutes   int `yaml:"min_duration_minutes"`
	MaxDurationMinutes   int `yaml:"max_duration_minutes"`
	MaxDaysInAdvance     int `yaml:"max_days_in_advance"`
	SweepIntervalMinutes int `yaml:"sweep_interval_minutes"`
}

// MinDuration returns the configured minimum booking duration.
func (b BookingConfig) MinDuration() time.Duration {
	return time.Duration(b.MinDurationMinutes) * time.Minute
}

// MaxDuration returns the configured maximum booking duration.
func (b BookingConfig) MaxDuration() time.Duration {
	return time.Duration(b.MaxDurationMinutes) * time.Minute
}

// PushConfig holds the VAPID keys for web push notifications.
type PushConfig struct {
	PublicKey  string `yaml:"vapid_public_key"`
	PrivateKey string `yaml:"vapid_private_key"`
	Subject    string `yaml:"subject"`
	TTL        int    `yaml:"ttl"`
}

// WorkerPoolConfig holds the notification worker pool configuration.
type WorkerPoolConfig struct {
	Size int `yaml:"size"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			RateLimitPerSec: 20,
			RateLimitBurst:  40,
			CacheTTLSeconds: 10,
		},
		Database: DatabaseConfig{Path: "facility.db"},
		Booking: BookingConfig{
			MinDurationMinutes:   15,
			MaxDurationMinutes:   480,
			MaxDaysInAdvance:     90,
			SweepIntervalMinutes: 15,
		},
		Push:       PushConfig{TTL: 3600},
		WorkerPool: WorkerPoolConfig{Size: 2},
	}
}

// Load reads the configuration from the given path, filling unset fields
// with defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg := Default()
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(cfg); err != nil {
		return nil, err
	}

	d := Default()
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = d.Server.Port
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = d.Server.RateLimitPerSec
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = d.Server.RateLimitBurst
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = d.Server.CacheTTLSeconds
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = d.Database.Path
	}
	if cfg.Booking.MinDurationMinutes <= 0 {
		cfg.Booking.MinDurationMinutes = d.Booking.MinDurationMinutes
	}
	if cfg.Booking.MaxDurationMinutes <= 0 {
		cfg.Booking.MaxDurationMinutes = d.Booking.MaxDurationMinutes
	}
	if cfg.Booking.MaxDaysInAdvance <= 0 {
		cfg.Booking.MaxDaysInAdvance = d.Booking.MaxDaysInAdvance
	}
	if cfg.Booking.SweepIntervalMinutes <= 0 {
		cfg.Booking.SweepIntervalMinutes = d.Booking.SweepIntervalMinutes
	}
	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = d.Push.TTL
	}
	if cfg.WorkerPool.Size <= 0 {
		cfg.WorkerPool.Size = d.WorkerPool.Size
	}

	return cfg, nil
}
