// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about surface rebuilds, dock resolution and cache use.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Layout and dock events fire synchronously on the caller's goroutine, once
// per public call, so hook implementations must be cheap.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetLayoutHooks(&myLayoutHooks{})
//	    observability.SetDockHooks(&myDockHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Layout().OnRebuild(surfaceID, rows, cells, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Layout Hooks
// =============================================================================

// LayoutHooks receives events from layout surfaces.
type LayoutHooks interface {
	// OnRebuild records one regeneration of a surface's rendered rows.
	OnRebuild(surface string, rows, cells int, duration time.Duration)

	// OnMergeRejected records a merge that failed validation.
	OnMergeRejected(surface string, x, y, w, h int, err error)

	// OnClear records a surface reset.
	OnClear(surface string)
}

// =============================================================================
// Dock Hooks
// =============================================================================

// DockHooks receives events from anchor resolution.
type DockHooks interface {
	// OnAnchor records a pointer position that resolved to a zone.
	OnAnchor(target, zone string, self bool)

	// OnMiss records a pointer position that matched no zone. Misses are the
	// common case during a drag and are not errors.
	OnMiss(target string)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnRebuild(string, int, int, time.Duration)         {}
func (NoopLayoutHooks) OnMergeRejected(string, int, int, int, int, error) {}
func (NoopLayoutHooks) OnClear(string)                                    {}

// NoopDockHooks is a no-op implementation of DockHooks.
type NoopDockHooks struct{}

func (NoopDockHooks) OnAnchor(string, string, bool) {}
func (NoopDockHooks) OnMiss(string)                 {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	layoutHooks LayoutHooks = NoopLayoutHooks{}
	dockHooks   DockHooks   = NoopDockHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	hooksMu     sync.RWMutex
)

// SetLayoutHooks registers custom layout hooks.
// This should be called once at application startup before any surface is built.
func SetLayoutHooks(h LayoutHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		layoutHooks = h
	}
}

// SetDockHooks registers custom dock hooks.
func SetDockHooks(h DockHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		dockHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return layoutHooks
}

// Dock returns the registered dock hooks.
func Dock() DockHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return dockHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	layoutHooks = NoopLayoutHooks{}
	dockHooks = NoopDockHooks{}
	cacheHooks = NoopCacheHooks{}
}
