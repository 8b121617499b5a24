package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/eqsteps/pkg/layout"
	"github.com/matzehuels/eqsteps/pkg/observability"
	"github.com/matzehuels/eqsteps/pkg/playback"
	"github.com/matzehuels/eqsteps/pkg/render"
)

// Snapshot is one step played to rest.
type Snapshot struct {
	Step   int
	Scene  render.Scene
	Frames []*layout.Frame
	Root   *layout.VCenterVBox
}

// NewController creates a playback controller for doc using the options'
// configuration and width.
func NewController(doc *Document, surface render.Surface, opts Options) (*playback.Controller, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	cfg := opts.Config
	return playback.New(doc.Instructions, surface,
		playback.WithLogger(opts.Logger),
		playback.WithStyles(cfg.Styles()),
		playback.WithTimings(cfg.AnimTimings()),
		playback.WithLayout(cfg.LayoutOptions()),
		playback.WithContent(cfg.ContentOptions()),
		playback.WithWidth(opts.Width),
	)
}

// Layout plays doc to step n without animating and captures the result.
func (r *Runner) Layout(ctx context.Context, doc *Document, n int, opts Options) (*Snapshot, error) {
	if err := r.prepare(&opts); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, n, len(doc.Instructions.Terms)+doc.Instructions.HDividers)
	start := time.Now()

	snap, err := snapshot(doc, n, opts)
	frames := 0
	if snap != nil {
		frames = len(snap.Frames)
	}
	hooks.OnLayoutComplete(ctx, n, frames, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("laid out step", "step", n, "frames", frames, "height", snap.Scene.Height, "duration", time.Since(start))
	return snap, nil
}

func snapshot(doc *Document, n int, opts Options) (*Snapshot, error) {
	if _, err := doc.Instructions.Step(n); err != nil {
		return nil, err
	}
	buf := render.NewBuffer()
	c, err := NewController(doc, buf, opts)
	if err != nil {
		return nil, err
	}
	if _, err := c.GoTo(n, time.Time{}); err != nil {
		return nil, err
	}
	c.Skip()
	return &Snapshot{
		Step:   n,
		Scene:  c.Scene(),
		Frames: c.Frames(),
		Root:   c.Root(),
	}, nil
}
