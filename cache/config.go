package cache

import (
	"time"

	"go.uber.org/zap"
)

// Config holds the configuration for the cache engine.
type Config struct {
	// BaseTTL is the time-to-live applied to record entries. Broader
	// result sets expire faster: bulk listings live BaseTTL/2 and search
	// results BaseTTL/4, since they go stale more easily and are cheap to
	// recompute relative to their staleness risk.
	// Must be greater than 0.
	BaseTTL time.Duration

	// OpTimeout bounds every backend call issued by the engine. A call
	// that exceeds it behaves as a miss, never as a hung operation.
	// Must be greater than 0. Default: 5s
	OpTimeout time.Duration

	// Logger receives structured log output for swallowed backend
	// failures. Nil defaults to a no-op logger.
	Logger *zap.Logger
}

// DefaultConfig returns a Config with sensible defaults for most use cases.
func DefaultConfig() Config {
	return Config{
		BaseTTL:   time.Hour,
		OpTimeout: 5 * time.Second,
	}
}

// TTLFor returns the time-to-live for entries in the given namespace
// according to the tiered expiration policy.
func (c Config) TTLFor(ns Namespace) time.Duration {
	switch ns {
	case NamespaceBulkListing:
		return c.BaseTTL / 2
	case NamespaceSearch:
		return c.BaseTTL / 4
	default:
		return c.BaseTTL
	}
}

// Validate checks if the configuration values are valid.
// Returns an error if any configuration parameter is invalid.
func (c Config) Validate() error {
	if c.BaseTTL <= 0 {
		return &ConfigError{Field: "BaseTTL", Message: "must be greater than 0"}
	}

	if c.OpTimeout <= 0 {
		return &ConfigError{Field: "OpTimeout", Message: "must be greater than 0"}
	}

	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "config error in field " + e.Field + ": " + e.Message
}
