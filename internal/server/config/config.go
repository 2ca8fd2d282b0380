// Package config handles configuration for the server component,
// including defaults, JSON overlay, environment and command-line flags.
package config

import (
	"errors"
	"fmt"
	"time"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds runtime settings for the bookshelf server.
//
// Fields:
//   - EndpointAddr: bind address for the HTTP API.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Required when Storage is "postgres".
//   - SecretKey: HMAC secret for signing JWTs (HS256). Required.
//   - AccessTokenValidityDuration: JWT lifetime.
//   - AuthRateLimit: ulule/limiter rate for /api/auth, e.g. "20-M".
//   - Storage: "postgres" or "memory".
//   - LogLevel: debug, info, warn or error.
type Config struct {
	EndpointAddr                string
	DatabaseDSN                 string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	AuthRateLimit               string
	Storage                     string
	LogLevel                    string
}

// LoadDefaults populates Config with development defaults. The secret and
// DSN have no defaults and must be supplied.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":3000"
	c.AccessTokenValidityDuration = 10 * time.Minute
	c.AuthRateLimit = "20-M"
	c.Storage = StoragePostgres
	c.LogLevel = "info"
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.SecretKey == "" {
		errs = append(errs, errors.New("JWT secret is not set"))
	}
	switch c.Storage {
	case StoragePostgres:
		if c.DatabaseDSN == "" {
			errs = append(errs, errors.New("database DSN is not set"))
		}
	case StorageMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown storage %q", c.Storage))
	}
	if c.AccessTokenValidityDuration <= 0 {
		errs = append(errs, errors.New("token validity must be positive"))
	}
	return errors.Join(errs...)
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
