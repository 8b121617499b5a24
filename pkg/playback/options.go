package playback

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/eqsteps/pkg/anim"
	"github.com/matzehuels/eqsteps/pkg/layout"
	"github.com/matzehuels/eqsteps/pkg/step"
)

// DefaultWidth is the viewport width used when none is configured.
const DefaultWidth = 800.0

// Option configures a [Controller].
type Option func(*Controller)

func WithLogger(l *log.Logger) Option          { return func(c *Controller) { c.logger = l } }
func WithStyles(s step.Styles) Option          { return func(c *Controller) { c.styles = s } }
func WithTimings(t anim.Timings) Option        { return func(c *Controller) { c.timings = t } }
func WithLayout(o layout.Options) Option       { return func(c *Controller) { c.layoutOpts = o } }
func WithContent(o step.ContentOptions) Option { return func(c *Controller) { c.contentOpts = o } }

// WithWidth sets the initial viewport width.
func WithWidth(w float64) Option {
	return func(c *Controller) {
		if w > 0 {
			c.width = w
		}
	}
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}
