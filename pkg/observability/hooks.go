// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about pipeline stages, playback transitions, cache
// operations, and preview-server requests.
//
// # Architecture
//
// Each event category has an interface and a no-op implementation that is
// active until main registers something else. [LogHooks] implements every
// interface on top of a charmbracelet logger; the CLI installs it when
// --verbose is set. Libraries only emit events and never register hooks.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.Install(observability.LogHooks{Logger: logger})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnLayoutStart(ctx, step, contentCount)
//	// ... lay the step out ...
//	observability.Pipeline().OnLayoutComplete(ctx, step, frameCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the load → layout → render pipeline.
type PipelineHooks interface {
	// Load events
	OnLoadStart(ctx context.Context, source string)
	OnLoadComplete(ctx context.Context, source string, steps int, duration time.Duration, err error)

	// Layout events
	OnLayoutStart(ctx context.Context, step, contentCount int)
	OnLayoutComplete(ctx context.Context, step, frameCount int, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, format string)
	OnRenderComplete(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// =============================================================================
// Playback Hooks
// =============================================================================

// PlaybackHooks receives events from playback controllers. Controllers are
// tick driven and carry no context, so these hooks take none.
type PlaybackHooks interface {
	// OnTransitionStart records a transition between two steps. from is -1
	// for the first render.
	OnTransitionStart(controller string, from, to, animations int)

	// OnTransitionComplete records the completion of a transition.
	OnTransitionComplete(controller string, from, to int, duration time.Duration)

	// OnTransitionDropped records a navigation request ignored because a
	// transition was already running.
	OnTransitionDropped(controller string, to int)
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
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the preview server.
type HTTPHooks interface {
	// OnRequest records an incoming HTTP request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records the response sent for a request.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadStart(context.Context, string) {}
func (NoopPipelineHooks) OnLoadComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnLayoutStart(context.Context, int, int) {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, int, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnRenderStart(context.Context, string) {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {
}

// NoopPlaybackHooks is a no-op implementation of PlaybackHooks.
type NoopPlaybackHooks struct{}

func (NoopPlaybackHooks) OnTransitionStart(string, int, int, int)              {}
func (NoopPlaybackHooks) OnTransitionComplete(string, int, int, time.Duration) {}
func (NoopPlaybackHooks) OnTransitionDropped(string, int)                      {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

// slot holds one registered hook set behind a lock.
type slot[T any] struct {
	mu   sync.RWMutex
	noop T
	cur  T
}

func newSlot[T any](noop T) *slot[T] { return &slot[T]{noop: noop, cur: noop} }

func (s *slot[T]) get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

func (s *slot[T]) set(h T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = h
}

func (s *slot[T]) reset() { s.set(s.noop) }

var (
	pipelineSlot = newSlot[PipelineHooks](NoopPipelineHooks{})
	playbackSlot = newSlot[PlaybackHooks](NoopPlaybackHooks{})
	cacheSlot    = newSlot[CacheHooks](NoopCacheHooks{})
	httpSlot     = newSlot[HTTPHooks](NoopHTTPHooks{})
)

// SetPipelineHooks registers pipeline hooks. nil is ignored. Call it once at
// startup before any pipeline operation.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		pipelineSlot.set(h)
	}
}

// SetPlaybackHooks registers playback hooks. nil is ignored.
func SetPlaybackHooks(h PlaybackHooks) {
	if h != nil {
		playbackSlot.set(h)
	}
}

// SetCacheHooks registers cache hooks. nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheSlot.set(h)
	}
}

// SetHTTPHooks registers preview-server hooks. nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		httpSlot.set(h)
	}
}

func Pipeline() PipelineHooks { return pipelineSlot.get() }
func Playback() PlaybackHooks { return playbackSlot.get() }
func Cache() CacheHooks       { return cacheSlot.get() }
func HTTP() HTTPHooks         { return httpSlot.get() }

// Reset restores the no-op hooks. Tests use it in cleanup.
func Reset() {
	pipelineSlot.reset()
	playbackSlot.reset()
	cacheSlot.reset()
	httpSlot.reset()
}
