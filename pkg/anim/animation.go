package anim

import "github.com/matzehuels/eqsteps/pkg/layout"

// Animation interpolates one property. Apply receives the eased progress,
// which may leave [0, 1] for overshooting curves.
type Animation interface {
	Kind() Kind
	Timing() Timing
	Apply(t float64)
}

type base struct {
	kind   Kind
	timing Timing
}

func (b base) Kind() Kind     { return b.kind }
func (b base) Timing() Timing { return b.timing }

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

// Move animates a drawable's geometry between two frames of the same
// content.
type Move struct {
	base
	Target   *Drawable
	From, To layout.Frame
}

// NewMove creates a move of d from one frame to another.
func NewMove(timing Timing, d *Drawable, from, to *layout.Frame) *Move {
	return &Move{base: base{KindMove, timing}, Target: d, From: *from, To: *to}
}

func (m *Move) Apply(t float64) {
	layout.Lerp(&m.Target.Frame, &m.From, &m.To, t)
}

// Add grows a detached drawable from a collapsed point into its frame while
// fading it in.
type Add struct {
	base
	Target *Drawable
	From   layout.Frame
	To     layout.Frame
}

// NewAdd creates an add animation into frame to, which must carry the
// target color and opacity.
func NewAdd(timing Timing, d *Drawable, to *layout.Frame) *Add {
	d.Detached = true
	d.Frame = *to.Collapsed()
	return &Add{base: base{KindAdd, timing}, Target: d, From: d.Frame, To: *to}
}

func (a *Add) Apply(t float64) {
	f := &a.Target.Frame
	layout.Lerp(f, &a.From, &a.To, t)
	f.Color = a.To.Color
	f.Opacity = lerp(0, a.To.Opacity, t)
}

// Remove shrinks a detached drawable from its frame to a point while fading
// it out.
type Remove struct {
	base
	Target *Drawable
	From   layout.Frame
	To     layout.Frame
}

// NewRemove creates a remove animation out of frame from.
func NewRemove(timing Timing, d *Drawable, from *layout.Frame) *Remove {
	d.Detached = true
	d.Frame = *from
	return &Remove{base: base{KindRemove, timing}, Target: d, From: *from, To: *from.Collapsed()}
}

func (r *Remove) Apply(t float64) {
	f := &r.Target.Frame
	layout.Lerp(f, &r.From, &r.To, t)
	f.Color = r.From.Color
	f.Opacity = lerp(r.From.Opacity, 0, t)
}

// Color animates a content item's color.
type Color struct {
	base
	Content  layout.Content
	From, To layout.RGB
}

// NewColor creates a color animation from c's current color to to.
func NewColor(timing Timing, c layout.Content, to layout.RGB) *Color {
	return &Color{base: base{KindColor, timing}, Content: c, From: c.Color(), To: to}
}

func (c *Color) Apply(t float64) { c.Content.SetColor(c.From.Lerp(c.To, t)) }

// Opacity animates a content item's opacity.
type Opacity struct {
	base
	Content  layout.Content
	From, To float64
}

// NewOpacity creates an opacity animation from c's current opacity to to.
func NewOpacity(timing Timing, c layout.Content, to float64) *Opacity {
	return &Opacity{base: base{KindOpacity, timing}, Content: c, From: c.Opacity(), To: to}
}

func (o *Opacity) Apply(t float64) { o.Content.SetOpacity(lerp(o.From, o.To, t)) }

// Scalar animates a float value through a setter. It backs the canvas size
// and progress animations.
type Scalar struct {
	base
	From, To float64
	Set      func(float64)
}

// NewCanvasSize animates the surface height.
func NewCanvasSize(timing Timing, from, to float64, set func(float64)) *Scalar {
	return &Scalar{base: base{KindCanvasSize, timing}, From: from, To: to, Set: set}
}

// NewProgress animates the progress line position.
func NewProgress(timing Timing, from, to float64, set func(float64)) *Scalar {
	return &Scalar{base: base{KindProgress, timing}, From: from, To: to, Set: set}
}

func (s *Scalar) Apply(t float64) { s.Set(lerp(s.From, s.To, t)) }
