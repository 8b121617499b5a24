package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/eqsteps/pkg/cache"
	"github.com/matzehuels/eqsteps/pkg/observability"
)

// Runner executes pipeline stages with caching. It holds no per-document
// state, so one Runner may serve concurrent requests.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching; a nil keyer
// uses [cache.DefaultKeyer].
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// RenderWithCacheInfo lays out step n and renders it in every requested
// format. The bool result reports whether every artifact came from the
// cache, in which case no layout was computed.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, doc *Document, n int, opts Options) (map[string][]byte, bool, error) {
	if err := r.prepare(&opts); err != nil {
		return nil, false, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	if !opts.Refresh {
		for _, format := range opts.Formats {
			data, hit, err := r.Cache.Get(ctx, r.artifactKey(doc, n, format, &opts))
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			r.hit(ctx, "artifact")
			return artifacts, true, nil
		}
	}
	r.miss(ctx, "artifact")

	snap, err := r.Layout(ctx, doc, n, opts)
	if err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	for _, format := range opts.Formats {
		hooks.OnRenderStart(ctx, format)
		start := time.Now()
		data, err := renderFormat(snap, format, opts)
		hooks.OnRenderComplete(ctx, format, len(data), time.Since(start), err)
		if err != nil {
			return nil, false, err
		}
		artifacts[format] = data
		r.set(ctx, "artifact", r.artifactKey(doc, n, format, &opts), data, opts.TTL)
	}
	r.Logger.Debug("rendered step", "step", n, "formats", opts.Formats)
	return artifacts, false, nil
}

// Render is RenderWithCacheInfo without the cache hit flag.
func (r *Runner) Render(ctx context.Context, doc *Document, n int, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, doc, n, opts)
	return artifacts, err
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// prepare gives opts the runner's logger unless it has its own, then
// validates them.
func (r *Runner) prepare(opts *Options) error {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	return opts.ValidateAndSetDefaults()
}

// artifactKey keys frame lists by layout options only, since drawing
// options never change them.
func (r *Runner) artifactKey(doc *Document, n int, format string, opts *Options) string {
	if format == FormatJSON {
		return r.Keyer.LayoutKey(doc.Hash, n, opts.LayoutKeyOpts())
	}
	return r.Keyer.ArtifactKey(doc.Hash, n, opts.ArtifactKeyOpts(format))
}

func (r *Runner) hit(ctx context.Context, kind string) {
	observability.Cache().OnCacheHit(ctx, kind)
}

func (r *Runner) miss(ctx context.Context, kind string) {
	observability.Cache().OnCacheMiss(ctx, kind)
}

func (r *Runner) set(ctx context.Context, kind, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "kind", kind, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, kind, len(data))
}
