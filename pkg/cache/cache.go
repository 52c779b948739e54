// Package cache provides caching for expensive graph computations.
//
// Analysis results (component statistics, shortest paths) are keyed by a
// hash of the dataset content plus the analysis parameters, so a cache
// entry is invalidated automatically whenever the underlying rows change.
package cache

import (
	"context"
	"time"
)

// Cache is the interface for caching serialized analysis results.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Keyer generates cache keys for analysis results.
type Keyer interface {
	// StatsKey generates a key for cached component statistics.
	StatsKey(datasetHash, weightColumn, mode string) string

	// PathKey generates a key for a cached shortest-path result.
	PathKey(datasetHash, weightColumn, mode string, source, target int64) string
}

// DefaultKeyer is the standard key generator.
// Keys embed a SHA-256 hash of all parameters so that any change to the
// dataset or the analysis configuration produces a distinct key.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// StatsKey generates a key for cached component statistics.
func (k *DefaultKeyer) StatsKey(datasetHash, weightColumn, mode string) string {
	return hashKey("stats", datasetHash, weightColumn, mode)
}

// PathKey generates a key for a cached shortest-path result.
func (k *DefaultKeyer) PathKey(datasetHash, weightColumn, mode string, source, target int64) string {
	return hashKey("path", datasetHash, weightColumn, mode, source, target)
}
