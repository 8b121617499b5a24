package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports every event as a debug line on Logger. It satisfies all
// four hook interfaces.
type LogHooks struct {
	Logger *log.Logger
}

var (
	_ PipelineHooks = LogHooks{}
	_ PlaybackHooks = LogHooks{}
	_ CacheHooks    = LogHooks{}
	_ HTTPHooks     = LogHooks{}
)

// Install registers h for every event category.
func Install(h LogHooks) {
	SetPipelineHooks(h)
	SetPlaybackHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

// done logs a finished stage, at warn level when it failed.
func (h LogHooks) done(msg string, err error, d time.Duration, kv ...any) {
	kv = append(kv, "took", d.Round(time.Microsecond))
	if err != nil {
		h.Logger.Warn(msg, append(kv, "err", err)...)
		return
	}
	h.Logger.Debug(msg, kv...)
}

func (h LogHooks) OnLoadStart(_ context.Context, source string) {
	h.Logger.Debug("load", "source", source)
}

func (h LogHooks) OnLoadComplete(_ context.Context, source string, steps int, d time.Duration, err error) {
	h.done("loaded", err, d, "source", source, "steps", steps)
}

func (h LogHooks) OnLayoutStart(_ context.Context, step, contentCount int) {
	h.Logger.Debug("layout", "step", step, "content", contentCount)
}

func (h LogHooks) OnLayoutComplete(_ context.Context, step, frameCount int, d time.Duration, err error) {
	h.done("laid out", err, d, "step", step, "frames", frameCount)
}

func (h LogHooks) OnRenderStart(_ context.Context, format string) {
	h.Logger.Debug("render", "format", format)
}

func (h LogHooks) OnRenderComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	h.done("rendered", err, d, "format", format, "bytes", size)
}

func (h LogHooks) OnTransitionStart(controller string, from, to, animations int) {
	h.Logger.Debug("transition", "controller", controller, "from", from, "to", to, "animations", animations)
}

func (h LogHooks) OnTransitionComplete(controller string, from, to int, d time.Duration) {
	h.Logger.Debug("transition done", "controller", controller, "from", from, "to", to, "took", d)
}

func (h LogHooks) OnTransitionDropped(controller string, to int) {
	h.Logger.Debug("navigation dropped while animating", "controller", controller, "to", to)
}

func (h LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "kind", keyType)
}

func (h LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "kind", keyType)
}

func (h LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "kind", keyType, "bytes", size)
}

func (h LogHooks) OnRequest(_ context.Context, method, path string) {
	h.Logger.Debug("request", "method", method, "path", path)
}

func (h LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.Logger.Info("response", "method", method, "path", path, "status", status, "took", d.Round(time.Microsecond))
}
