// Package observability provides hooks for instrumenting the optimization
// search without adding hard dependencies on specific backends.
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, which keeps the search
// engine free of any observability framework and lets different backends
// (Prometheus, OpenTelemetry, a progress UI) plug in without code changes.
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSearchHooks(&mySearchHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Search().OnConfigurationStart(ctx, index, diagonals)
//	// ... evaluate ...
//	observability.Search().OnConfigurationComplete(ctx, index, status, weight, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// SearchHooks receives events from the configuration search.
type SearchHooks interface {
	// OnSearchStart fires once with the number of enumerated candidates.
	OnSearchStart(ctx context.Context, candidates int)

	// OnConfigurationStart fires when a worker picks up a candidate.
	OnConfigurationStart(ctx context.Context, index int, diagonals []int)

	// OnConfigurationComplete fires with the candidate's final status.
	OnConfigurationComplete(ctx context.Context, index int, status string, weight float64, duration time.Duration, err error)

	// OnBestImproved fires during selection whenever a candidate beats the
	// running best.
	OnBestImproved(ctx context.Context, index int, weight float64)

	// OnSearchComplete fires once with the status tallies.
	OnSearchComplete(ctx context.Context, converged, nonConvergent, invalid int, duration time.Duration)
}

// SolverHooks receives events from the self weight convergence loop.
type SolverHooks interface {
	// OnIteration records one weight-solve-check round of a candidate.
	OnIteration(ctx context.Context, index, iteration int, weight float64, failing int)

	// OnResize records a profile upsizing step.
	OnResize(ctx context.Context, index, module int, group, from, to string)
}

// NoopSearchHooks is a no-op implementation of SearchHooks.
type NoopSearchHooks struct{}

func (NoopSearchHooks) OnSearchStart(context.Context, int)          {}
func (NoopSearchHooks) OnConfigurationStart(context.Context, int, []int) {}
func (NoopSearchHooks) OnConfigurationComplete(context.Context, int, string, float64, time.Duration, error) {
}
func (NoopSearchHooks) OnBestImproved(context.Context, int, float64)                     {}
func (NoopSearchHooks) OnSearchComplete(context.Context, int, int, int, time.Duration) {}

// NoopSolverHooks is a no-op implementation of SolverHooks.
type NoopSolverHooks struct{}

func (NoopSolverHooks) OnIteration(context.Context, int, int, float64, int)    {}
func (NoopSolverHooks) OnResize(context.Context, int, int, string, string, string) {}

var (
	searchHooks SearchHooks = NoopSearchHooks{}
	solverHooks SolverHooks = NoopSolverHooks{}
	hooksMu     sync.RWMutex
)

// SetSearchHooks registers custom search hooks.
// This should be called once at application startup before any search runs.
func SetSearchHooks(h SearchHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		searchHooks = h
	}
}

// SetSolverHooks registers custom solver hooks.
// This should be called once at application startup before any search runs.
func SetSolverHooks(h SolverHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		solverHooks = h
	}
}

// Search returns the registered search hooks.
func Search() SearchHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return searchHooks
}

// Solver returns the registered solver hooks.
func Solver() SolverHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return solverHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	searchHooks = NoopSearchHooks{}
	solverHooks = NoopSolverHooks{}
}
