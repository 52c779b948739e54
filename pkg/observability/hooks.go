// Package observability provides hooks for progress reporting and metrics.
//
// Index builds, full-dataset scans, and analysis passes can run for a
// long time on large datasets. This package lets hosts observe them
// without giving the library a hard dependency on any reporting backend:
// hook interfaces are defined here with no-op defaults, and a host
// registers its own implementations once at startup (a CLI spinner, a
// metrics exporter, a progress bar).
//
// Hooks are advisory. Libraries emit events at coarse checkpoints;
// cancellation itself travels through context.Context, not through hooks.
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetIndexHooks(&myIndexHooks{})
//	    observability.SetScanHooks(&myScanHooks{})
//	    // ... run application
//	}
package observability

import (
	"sync"
	"time"
)

// =============================================================================
// Index Hooks
// =============================================================================

// IndexHooks receives events from index creation.
type IndexHooks interface {
	// OnIndexBuildStart records the start of an EnsureIndexed call for
	// the named columns.
	OnIndexBuildStart(columns []string)

	// OnIndexBuildComplete records the outcome of an index build.
	// err is nil when the index exists afterwards.
	OnIndexBuildComplete(columns []string, err error)
}

// =============================================================================
// Scan Hooks
// =============================================================================

// ScanHooks receives events from full-dataset passes (vertex-set
// materialization and lazy edge-set iteration).
type ScanHooks interface {
	// OnScanStart records the beginning of a pass over total rows.
	OnScanStart(total int64)

	// OnScanProgress records that done rows have been visited. Emitted
	// at coarse intervals, not per row.
	OnScanProgress(done int64)

	// OnScanComplete records the end of the pass.
	OnScanComplete(total int64)
}

// =============================================================================
// Analysis Hooks
// =============================================================================

// AnalysisHooks receives events from algorithm runs.
type AnalysisHooks interface {
	// OnAnalysisStart records the start of an algorithm run
	// (kind is "shortest-path" or "subgraph-statistics").
	OnAnalysisStart(kind string)

	// OnAnalysisComplete records the end of an algorithm run.
	OnAnalysisComplete(kind string, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopIndexHooks is a no-op implementation of IndexHooks.
type NoopIndexHooks struct{}

func (NoopIndexHooks) OnIndexBuildStart([]string)           {}
func (NoopIndexHooks) OnIndexBuildComplete([]string, error) {}

// NoopScanHooks is a no-op implementation of ScanHooks.
type NoopScanHooks struct{}

func (NoopScanHooks) OnScanStart(int64)    {}
func (NoopScanHooks) OnScanProgress(int64) {}
func (NoopScanHooks) OnScanComplete(int64) {}

// NoopAnalysisHooks is a no-op implementation of AnalysisHooks.
type NoopAnalysisHooks struct{}

func (NoopAnalysisHooks) OnAnalysisStart(string)                          {}
func (NoopAnalysisHooks) OnAnalysisComplete(string, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	indexHooks    IndexHooks    = NoopIndexHooks{}
	scanHooks     ScanHooks     = NoopScanHooks{}
	analysisHooks AnalysisHooks = NoopAnalysisHooks{}
	hooksMu       sync.RWMutex
)

// SetIndexHooks registers custom index hooks.
// This should be called once at application startup.
func SetIndexHooks(h IndexHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		indexHooks = h
	}
}

// SetScanHooks registers custom scan hooks.
// This should be called once at application startup.
func SetScanHooks(h ScanHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		scanHooks = h
	}
}

// SetAnalysisHooks registers custom analysis hooks.
// This should be called once at application startup.
func SetAnalysisHooks(h AnalysisHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		analysisHooks = h
	}
}

// Index returns the registered index hooks.
func Index() IndexHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return indexHooks
}

// Scan returns the registered scan hooks.
func Scan() ScanHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return scanHooks
}

// Analysis returns the registered analysis hooks.
func Analysis() AnalysisHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return analysisHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	indexHooks = NoopIndexHooks{}
	scanHooks = NoopScanHooks{}
	analysisHooks = NoopAnalysisHooks{}
}
