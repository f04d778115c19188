// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about arrangement runs, cache operations, and collaborator
// calls (embedding fetches, summarization).
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetArrangeHooks(&myArrangeHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Arrange().OnArrangeStart(ctx, mode, itemCount)
//	// ... compute layout ...
//	observability.Arrange().OnArrangeComplete(ctx, mode, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Arrange Hooks
// =============================================================================

// ArrangeHooks receives events from the layout engine.
type ArrangeHooks interface {
	// OnArrangeStart fires before a layout is computed.
	OnArrangeStart(ctx context.Context, mode string, itemCount int)

	// OnArrangeComplete fires after a layout finishes (err nil on success).
	OnArrangeComplete(ctx context.Context, mode string, duration time.Duration, err error)

	// OnItemSkipped fires when an item is excluded from the arrangement
	// (missing embedding, empty vector).
	OnItemSkipped(ctx context.Context, itemID, reason string)

	// OnFallback fires when a placement budget was exhausted and a
	// best-effort position was accepted.
	OnFallback(ctx context.Context, mode, itemID string)
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
// Collaborator Hooks
// =============================================================================

// CollaboratorHooks receives events from external collaborator calls.
type CollaboratorHooks interface {
	// OnEmbeddingFetch records an embedding lookup and whether the item
	// had an embedding at all.
	OnEmbeddingFetch(ctx context.Context, itemID string, found bool, duration time.Duration, err error)

	// OnSummarize records a summarization call.
	OnSummarize(ctx context.Context, kind string, sourceCount int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopArrangeHooks is a no-op implementation of ArrangeHooks.
type NoopArrangeHooks struct{}

func (NoopArrangeHooks) OnArrangeStart(context.Context, string, int)                    {}
func (NoopArrangeHooks) OnArrangeComplete(context.Context, string, time.Duration, error) {}
func (NoopArrangeHooks) OnItemSkipped(context.Context, string, string)                  {}
func (NoopArrangeHooks) OnFallback(context.Context, string, string)                     {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopCollaboratorHooks is a no-op implementation of CollaboratorHooks.
type NoopCollaboratorHooks struct{}

func (NoopCollaboratorHooks) OnEmbeddingFetch(context.Context, string, bool, time.Duration, error) {
}
func (NoopCollaboratorHooks) OnSummarize(context.Context, string, int, time.Duration, error) {}

// =============================================================================
// Registry
// =============================================================================

var (
	mu                sync.RWMutex
	arrangeHooks      ArrangeHooks      = NoopArrangeHooks{}
	cacheHooks        CacheHooks        = NoopCacheHooks{}
	collaboratorHooks CollaboratorHooks = NoopCollaboratorHooks{}
)

// SetArrangeHooks registers arrange hooks. Pass nil to restore the no-op.
func SetArrangeHooks(h ArrangeHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		h = NoopArrangeHooks{}
	}
	arrangeHooks = h
}

// Arrange returns the registered arrange hooks.
func Arrange() ArrangeHooks {
	mu.RLock()
	defer mu.RUnlock()
	return arrangeHooks
}

// SetCacheHooks registers cache hooks. Pass nil to restore the no-op.
func SetCacheHooks(h CacheHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		h = NoopCacheHooks{}
	}
	cacheHooks = h
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	mu.RLock()
	defer mu.RUnlock()
	return cacheHooks
}

// SetCollaboratorHooks registers collaborator hooks. Pass nil to restore the no-op.
func SetCollaboratorHooks(h CollaboratorHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		h = NoopCollaboratorHooks{}
	}
	collaboratorHooks = h
}

// Collaborator returns the registered collaborator hooks.
func Collaborator() CollaboratorHooks {
	mu.RLock()
	defer mu.RUnlock()
	return collaboratorHooks
}
