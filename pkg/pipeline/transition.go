package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/matzehuels/eqsteps/pkg/cache"
	"github.com/matzehuels/eqsteps/pkg/render"
	"github.com/matzehuels/eqsteps/pkg/render/sink"
)

// TransitionFrames renders the transition from step from to step to as a
// sequence of PNG images sampled at opts.FPS. The first image shows the
// transition's first tick and the last one its end state.
func (r *Runner) TransitionFrames(ctx context.Context, doc *Document, from, to int, opts Options) ([][]byte, bool, error) {
	if err := r.prepare(&opts); err != nil {
		return nil, false, err
	}
	key := r.Keyer.TransitionKey(doc.Hash, opts.TransitionKeyOpts(from, to))
	if !opts.Refresh {
		var frames [][]byte
		if err := cache.GetJSON(ctx, r.Cache, key, &frames); err == nil {
			r.hit(ctx, "transition")
			return frames, true, nil
		}
	}
	r.miss(ctx, "transition")

	start := time.Now()
	frames, err := transitionFrames(ctx, doc, from, to, opts)
	if err != nil {
		return nil, false, err
	}
	r.Logger.Info("rendered transition", "from", from, "to", to, "frames", len(frames), "fps", opts.FPS, "duration", time.Since(start))

	if data, err := json.Marshal(frames); err == nil {
		r.set(ctx, "transition", key, data, opts.TTL)
	}
	return frames, false, nil
}

func transitionFrames(ctx context.Context, doc *Document, from, to int, opts Options) ([][]byte, error) {
	for _, n := range []int{from, to} {
		if _, err := doc.Instructions.Step(n); err != nil {
			return nil, err
		}
	}
	buf := render.NewBuffer()
	c, err := NewController(doc, buf, opts)
	if err != nil {
		return nil, err
	}

	// The clock is synthetic: frames are sampled, not played.
	t0 := time.Unix(0, 0)
	if _, err := c.GoTo(from, t0); err != nil {
		return nil, err
	}
	c.Skip()
	if _, err := c.GoTo(to, t0); err != nil {
		return nil, err
	}

	interval := time.Second / time.Duration(opts.FPS)
	png := pngOptions(opts)
	var frames [][]byte
	for i := 0; ; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if i >= maxTransitionFrames {
			return nil, fmt.Errorf("transition exceeds %d frames at %d fps", maxTransitionFrames, opts.FPS)
		}
		running := c.Tick(t0.Add(time.Duration(i) * interval))
		img, err := sink.RenderPNG(buf.Scene(), png...)
		if err != nil {
			return nil, err
		}
		frames = append(frames, img)
		if !running {
			return frames, nil
		}
	}
}
