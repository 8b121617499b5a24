package layout

import "math"

// Frame is the geometry assigned to one component during one layout pass.
// Content frames also carry a snapshot of the content's color and opacity.
type Frame struct {
	Component Component
	Parent    *Frame
	X, Y      float64
	Width     float64
	Height    float64
	Scale     float64
	Color     RGB
	Opacity   float64
	// Tight is set for terms laid out inside a tight box.
	Tight bool
}

// Content returns the frame's content item, if it frames one.
func (f *Frame) Content() (Content, bool) {
	c, ok := f.Component.(Content)
	return c, ok
}

// Contains reports whether (x, y) lies inside the frame, edges included.
func (f *Frame) Contains(x, y float64) bool {
	return x >= f.X && x <= f.X+f.Width && y >= f.Y && y <= f.Y+f.Height
}

// SameGeometry reports whether two frames have identical position, size and
// scale.
func (f *Frame) SameGeometry(o *Frame) bool {
	return f.X == o.X && f.Y == o.Y && f.Width == o.Width && f.Height == o.Height && f.Scale == o.Scale
}

// Collapsed returns a copy of f shrunk to a point at its center with zero
// scale and opacity. Add and remove transitions grow from and shrink to it.
func (f *Frame) Collapsed() *Frame {
	c := *f
	c.X = f.X + f.Width/2
	c.Y = f.Y + f.Height/2
	c.Width, c.Height, c.Scale, c.Opacity = 0, 0, 0, 0
	return &c
}

// Lerp writes into dst the geometry t of the way from a to b. Color and
// opacity are left to the caller.
func Lerp(dst, a, b *Frame, t float64) {
	dst.X = a.X + (b.X-a.X)*t
	dst.Y = a.Y + (b.Y-a.Y)*t
	dst.Width = a.Width + (b.Width-a.Width)*t
	dst.Height = a.Height + (b.Height-a.Height)*t
	dst.Scale = math.Max(0, a.Scale+(b.Scale-a.Scale)*t)
}

// StyleFunc resolves the color and opacity snapshotted into content frames.
type StyleFunc func(c Content) (RGB, float64)

// Pass accumulates frames during one layout pass.
type Pass struct {
	frames []*Frame
	style  StyleFunc
}

// NewPass creates a pass. A nil style snapshots each content item's current
// color and opacity.
func NewPass(style StyleFunc) *Pass {
	return &Pass{style: style}
}

// Frames returns the frames appended so far.
func (p *Pass) Frames() []*Frame { return p.frames }

func (p *Pass) add(f *Frame) *Frame {
	p.frames = append(p.frames, f)
	return f
}

func (p *Pass) addContent(c Content, parent *Frame, x, y, w, h, scale float64) *Frame {
	f := &Frame{
		Component: c,
		Parent:    parent,
		X:         x,
		Y:         y,
		Width:     w * scale,
		Height:    h * scale,
		Scale:     scale,
	}
	if p.style != nil {
		f.Color, f.Opacity = p.style(c)
	} else {
		f.Color, f.Opacity = c.Color(), c.Opacity()
	}
	return p.add(f)
}

// newContainerFrame creates a container frame that is appended with
// [Pass.add] once its children are laid out.
func newContainerFrame(c Container, parent *Frame, x, y, scale float64) *Frame {
	return &Frame{
		Component: c,
		Parent:    parent,
		X:         x,
		Y:         y,
		Width:     c.Width() * scale,
		Height:    c.Height() * scale,
		Scale:     scale,
	}
}

// Layout runs a full layout pass over root and returns its frames,
// children before parents with the root frame last.
func Layout(root Component, x, y, scale float64, style StyleFunc) []*Frame {
	p := NewPass(style)
	root.AddLayout(p, nil, x, y, scale)
	return p.frames
}

// Root returns the root frame of a frame list, or nil if it is empty.
func Root(frames []*Frame) *Frame {
	if len(frames) == 0 {
		return nil
	}
	return frames[len(frames)-1]
}

// HitTest returns the first frame containing (x, y). Since frames are
// ordered children first, this is the innermost component at the point.
func HitTest(frames []*Frame, x, y float64) *Frame {
	for _, f := range frames {
		if f.Contains(x, y) {
			return f
		}
	}
	return nil
}

// FrameOf returns the frame laid out for component c, or nil.
func FrameOf(frames []*Frame, c Component) *Frame {
	for _, f := range frames {
		if f.Component == c {
			return f
		}
	}
	return nil
}

// ContentFrames indexes the content frames of a list by content item.
func ContentFrames(frames []*Frame) map[Content]*Frame {
	out := make(map[Content]*Frame)
	for _, f := range frames {
		if c, ok := f.Content(); ok {
			out[c] = f
		}
	}
	return out
}
