package cache

// ScopedKeyer wraps a Keyer with a prefix so that different contexts can
// share a cache directory without key collisions.
//
// Example usage:
//
//	// Keys scoped to a named workspace
//	wsKeyer := NewScopedKeyer(NewDefaultKeyer(), "ws:roads:")
//
//	// Unscoped keys
//	globalKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// StatsKey generates a prefixed key for component statistics.
func (k *ScopedKeyer) StatsKey(datasetHash, weightColumn, mode string) string {
	return k.prefix + k.inner.StatsKey(datasetHash, weightColumn, mode)
}

// PathKey generates a prefixed key for shortest-path results.
func (k *ScopedKeyer) PathKey(datasetHash, weightColumn, mode string, source, target int64) string {
	return k.prefix + k.inner.PathKey(datasetHash, weightColumn, mode, source, target)
}
