package redis

import (
	"time"

	"github.com/kairohq/internexplore_backend/config"
)

// Config holds Redis connection settings.
type Config struct {
	Addr     string
	DB       int
	Username string
	Password string

	PoolSize     int
	MinIdleConns int

	DialTimeoutSeconds  int
	ReadTimeoutSeconds  int
	WriteTimeoutSeconds int

	// SearchCacheTTLSeconds bounds staleness of cached internship search
	// results. Zero falls back to the service default.
	SearchCacheTTLSeconds int
}

// DefaultConfig returns sensible defaults for Redis configuration.
func DefaultConfig() Config {
	return Config{
		Addr:                "localhost:6379",
		PoolSize:            10,
		MinIdleConns:        2,
		DialTimeoutSeconds:  5,
		ReadTimeoutSeconds:  3,
		WriteTimeoutSeconds: 3,
	}
}

func secondsOr(v time.Duration, n int) time.Duration {
	if n <= 0 {
		return v
	}
	return time.Duration(n) * time.Second
}

// DialTimeout returns the dial timeout as a duration.
func (c Config) DialTimeout() time.Duration {
	return secondsOr(5*time.Second, c.DialTimeoutSeconds)
}

// ReadTimeout returns the read timeout as a duration.
func (c Config) ReadTimeout() time.Duration {
	return secondsOr(3*time.Second, c.ReadTimeoutSeconds)
}

// WriteTimeout returns the write timeout as a duration.
func (c Config) WriteTimeout() time.Duration {
	return secondsOr(3*time.Second, c.WriteTimeoutSeconds)
}

// SearchCacheTTL returns the search cache TTL, zero if unset.
func (c Config) SearchCacheTTL() time.Duration {
	return secondsOr(0, c.SearchCacheTTLSeconds)
}

func intOr(def, v int) int {
	if v > 0 {
		return v
	}
	return def
}

// FromCentralConfig converts central config.RedisConfig to package Config
func FromCentralConfig(c config.RedisConfig) Config {
	def := DefaultConfig()
	return Config{
		Addr:                  c.Addr,
		DB:                    c.DB,
		Username:              c.Username,
		Password:              c.Password,
		PoolSize:              intOr(def.PoolSize, c.PoolSize),
		MinIdleConns:          intOr(def.MinIdleConns, c.MinIdleConns),
		DialTimeoutSeconds:    intOr(def.DialTimeoutSeconds, c.DialTimeoutSeconds),
		ReadTimeoutSeconds:    intOr(def.ReadTimeoutSeconds, c.ReadTimeoutSeconds),
		WriteTimeoutSeconds:   intOr(def.WriteTimeoutSeconds, c.WriteTimeoutSeconds),
		SearchCacheTTLSeconds: c.SearchCacheTTLSec,
	}
}
