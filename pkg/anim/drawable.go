package anim

import "github.com/matzehuels/eqsteps/pkg/layout"

// Drawable is the frame currently shown for one content item.
type Drawable struct {
	Frame   layout.Frame
	Content layout.Content
	// Detached drawables draw with their own Frame.Color and
	// Frame.Opacity instead of the content's live style.
	Detached bool
}

// NewDrawable returns an attached drawable at f's geometry.
func NewDrawable(f *layout.Frame) *Drawable {
	c, _ := f.Content()
	return &Drawable{Frame: *f, Content: c}
}

// Resolved returns the frame to draw, with color and opacity taken from the
// content unless the drawable is detached.
func (d *Drawable) Resolved() layout.Frame {
	f := d.Frame
	if !d.Detached && d.Content != nil {
		f.Color = d.Content.Color()
		f.Opacity = d.Content.Opacity()
	}
	return f
}
