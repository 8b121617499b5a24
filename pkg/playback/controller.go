package playback

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/eqsteps/pkg/anim"
	"github.com/matzehuels/eqsteps/pkg/errors"
	"github.com/matzehuels/eqsteps/pkg/layout"
	"github.com/matzehuels/eqsteps/pkg/observability"
	"github.com/matzehuels/eqsteps/pkg/render"
	"github.com/matzehuels/eqsteps/pkg/step"
)

// Controller plays one set of instructions on one surface.
type Controller struct {
	id          string
	inst        *step.Instructions
	store       *layout.Store
	parser      *layout.Parser
	styles      step.Styles
	timings     anim.Timings
	layoutOpts  layout.Options
	contentOpts step.ContentOptions
	surface     render.Surface
	logger      *log.Logger
	sched       *anim.Scheduler

	step      int
	root      *layout.VCenterVBox
	frames    []*layout.Frame
	drawables []*anim.Drawable
	width     float64
	height    float64
	progress  float64
	selected  *layout.Frame

	busy         bool
	current      *anim.Set
	from         int
	startedAt    time.Time
	pendingWidth float64
	hasPending   bool
}

// New validates the instructions, creates their content and returns an
// idle controller. Every step is parsed once so that malformed descriptors
// fail here rather than during playback.
func New(inst *step.Instructions, surface render.Surface, opts ...Option) (*Controller, error) {
	c := &Controller{
		id:          uuid.NewString(),
		styles:      step.DefaultStyles(),
		timings:     anim.DefaultTimings(),
		layoutOpts:  layout.DefaultOptions(),
		contentOpts: step.DefaultContentOptions(),
		surface:     surface,
		logger:      discardLogger(),
		width:       DefaultWidth,
		step:        -1,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.surface == nil {
		c.surface = render.NewBuffer()
	}
	store := inst.NewStore(c.contentOpts)
	parser := layout.NewParser(store, c.layoutOpts)
	if err := c.check(inst, parser); err != nil {
		return nil, err
	}
	c.inst, c.store, c.parser = inst, store, parser
	c.sched = anim.NewScheduler(c.redraw)
	c.logger.Debug("controller created", "id", c.id, "steps", len(inst.Steps), "content", store.Len())
	return c, nil
}

// check validates inst and parses every step with parser.
func (c *Controller) check(inst *step.Instructions, parser *layout.Parser) error {
	if err := inst.Validate(c.styles); err != nil {
		return err
	}
	for i := range inst.Steps {
		if _, err := parser.Parse(inst.Steps[i].Root); err != nil {
			return errors.Wrap(errors.GetCode(err), err, "step %d", i)
		}
	}
	return nil
}

func (c *Controller) ID() string                       { return c.id }
func (c *Controller) Step() int                        { return c.step }
func (c *Controller) Steps() int                       { return len(c.inst.Steps) }
func (c *Controller) Busy() bool                       { return c.busy }
func (c *Controller) Frames() []*layout.Frame          { return c.frames }
func (c *Controller) Root() *layout.VCenterVBox        { return c.root }
func (c *Controller) Store() *layout.Store             { return c.store }
func (c *Controller) Instructions() *step.Instructions { return c.inst }
func (c *Controller) Width() float64                   { return c.width }
func (c *Controller) Height() float64                  { return c.height }
func (c *Controller) Progress() float64                { return c.progress }

// Start performs the first render: every item of step 0 is added.
func (c *Controller) Start(now time.Time) (bool, error) {
	return c.transition(0, now)
}

// Next advances to the following step. It returns false if the request was
// dropped or there is no next step.
func (c *Controller) Next(now time.Time) (bool, error) {
	if c.step+1 >= len(c.inst.Steps) {
		return false, nil
	}
	return c.transition(c.step+1, now)
}

// Prev goes back one step.
func (c *Controller) Prev(now time.Time) (bool, error) {
	if c.step <= 0 {
		return false, nil
	}
	return c.transition(c.step-1, now)
}

// Restart returns to the first step.
func (c *Controller) Restart(now time.Time) (bool, error) {
	return c.transition(0, now)
}

// GoTo transitions to step n. A step outside the instructions is dropped
// like any other unavailable navigation.
func (c *Controller) GoTo(n int, now time.Time) (bool, error) {
	if n < 0 || n >= len(c.inst.Steps) {
		return false, nil
	}
	return c.transition(n, now)
}

// Tick advances the running transition to now and redraws once. It
// reports whether a transition is still running.
func (c *Controller) Tick(now time.Time) bool {
	return c.sched.Tick(now)
}

// Skip jumps the running transition to its end state and redraws.
func (c *Controller) Skip() {
	if c.current == nil || !c.busy {
		return
	}
	c.current.Finish()
	c.redraw()
}

func (c *Controller) transition(target int, now time.Time) (bool, error) {
	if c.busy {
		c.logger.Debug("transition dropped", "to", target)
		observability.Playback().OnTransitionDropped(c.id, target)
		return false, nil
	}
	st := &c.inst.Steps[target]
	root, frames, err := c.layoutStep(st)
	if err != nil {
		c.logger.Error("layout failed", "step", target, "err", err)
		return false, err
	}

	var old []*layout.Frame
	if c.step >= 0 {
		old = c.frames
	}
	tr := c.Diff(old, frames, c.height, layout.Root(frames).Height, c.step, target)

	c.from = c.step
	c.root, c.frames, c.step = root, frames, target
	c.drawables = tr.Drawables
	c.selected = nil
	c.busy = true
	c.current = tr.Set
	c.startedAt = now
	tr.Set.OnDone(c.finish)
	c.sched.Run(tr.Set, now)

	c.logger.Debug("transition started", "from", c.from, "to", target, "animations", tr.Set.Len())
	observability.Playback().OnTransitionStart(c.id, c.from, target, tr.Set.Len())
	return true, nil
}

// layoutStep parses and lays out st at the current width, snapshotting the
// step's resolved styles into the content frames.
func (c *Controller) layoutStep(st *step.Step) (*layout.VCenterVBox, []*layout.Frame, error) {
	root, err := c.parser.ParseRoot(st.Root, c.width)
	if err != nil {
		return nil, nil, err
	}
	type resolved struct {
		color   layout.RGB
		opacity float64
	}
	styles := make(map[layout.Content]resolved)
	for _, content := range layout.ContentUnder(root) {
		rgb, o, err := c.styles.Resolve(st, content)
		if err != nil {
			return nil, nil, err
		}
		styles[content] = resolved{rgb, o}
	}
	frames := layout.Layout(root, 0, 0, 1, func(content layout.Content) (layout.RGB, float64) {
		s := styles[content]
		return s.color, s.opacity
	})
	return root, frames, nil
}

// finish runs when the transition's animation set completes.
func (c *Controller) finish() {
	c.busy = false
	c.current = nil
	c.drawables = staticDrawables(c.frames)
	c.logger.Debug("transition complete", "from", c.from, "to", c.step)
	observability.Playback().OnTransitionComplete(c.id, c.from, c.step, c.timings.Longest())

	if c.hasPending {
		c.hasPending = false
		c.width = c.pendingWidth
		if err := c.relayout(); err != nil {
			c.logger.Error("deferred resize failed", "width", c.width, "err", err)
		}
	}
}

// Resize changes the viewport width. While a transition runs the width is
// applied once it completes.
func (c *Controller) Resize(width float64) error {
	if width <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "width must be positive, got %v", width)
	}
	if c.busy {
		c.pendingWidth, c.hasPending = width, true
		c.logger.Debug("resize deferred", "width", width)
		return nil
	}
	c.width = width
	if c.step < 0 {
		return nil
	}
	if err := c.relayout(); err != nil {
		return err
	}
	c.redraw()
	return nil
}

// relayout recomputes the current step without animating.
func (c *Controller) relayout() error {
	root, frames, err := c.layoutStep(&c.inst.Steps[c.step])
	if err != nil {
		return err
	}
	c.root, c.frames = root, frames
	c.drawables = staticDrawables(frames)
	c.selected = nil
	c.setHeight(layout.Root(frames).Height)
	return nil
}

// Scene returns what the surface should currently show.
func (c *Controller) Scene() render.Scene {
	frames := make([]layout.Frame, 0, len(c.drawables))
	for _, d := range c.drawables {
		frames = append(frames, d.Resolved())
	}
	s := render.Scene{
		Frames:   frames,
		Width:    c.width,
		Height:   c.height,
		Progress: c.progress,
		Step:     c.step,
		Steps:    len(c.inst.Steps),
	}
	if c.step >= 0 {
		s.Caption = c.inst.Steps[c.step].Text
	}
	return s
}

func (c *Controller) redraw() {
	c.surface.Redraw(c.Scene())
}

func (c *Controller) setHeight(h float64) {
	c.height = h
	c.surface.Resize(c.width, h)
}

func (c *Controller) setProgress(p float64) {
	c.progress = p
}

// progressOf returns the progress line position for step n.
func (c *Controller) progressOf(n int) float64 {
	steps := len(c.inst.Steps)
	switch {
	case n < 0:
		return 0
	case steps <= 1:
		return 1
	default:
		return float64(n) / float64(steps-1)
	}
}

func staticDrawables(frames []*layout.Frame) []*anim.Drawable {
	out := make([]*anim.Drawable, 0, len(frames))
	for _, f := range frames {
		if _, ok := f.Content(); ok {
			out = append(out, anim.NewDrawable(f))
		}
	}
	return out
}
