package sink

import (
	"github.com/matzehuels/eqsteps/pkg/layout"
)

const (
	// DefaultFontSize is the term font size at scale 1.
	DefaultFontSize = 30.0

	dividerThickness = 2.0
	progressHeight   = 3.0
)

var progressColor = layout.RGB{R: 158, G: 158, B: 158}

// element is a drawable piece of a scene.
type element struct {
	frame   layout.Frame
	text    string
	divider bool
}

func elements(frames []layout.Frame) []element {
	out := make([]element, 0, len(frames))
	for _, f := range frames {
		switch c := f.Component.(type) {
		case *layout.Term:
			out = append(out, element{frame: f, text: c.Text})
		case *layout.HDivider:
			out = append(out, element{frame: f, divider: true})
		}
	}
	return out
}

func center(f layout.Frame) (x, y float64) {
	return f.X + f.Width/2, f.Y + f.Height/2
}
