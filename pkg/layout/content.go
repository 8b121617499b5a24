package layout

import (
	"strconv"

	"github.com/matzehuels/eqsteps/pkg/errors"
)

// RefKind is the prefix of a content id.
type RefKind byte

const (
	RefTerm    RefKind = 't'
	RefDivider RefKind = 'h'
)

// Ref is the stable identifier of a content item, written "t3" or "h0".
type Ref struct {
	Kind  RefKind
	Index int
}

func (r Ref) String() string {
	return string(r.Kind) + strconv.Itoa(r.Index)
}

// ParseRef parses a content id. Only a kind prefix followed by decimal
// digits is accepted.
func ParseRef(s string) (Ref, error) {
	if len(s) < 2 {
		return Ref{}, errors.New(errors.ErrCodeInvalidReference, "invalid content id %q", s)
	}
	kind := RefKind(s[0])
	if kind != RefTerm && kind != RefDivider {
		return Ref{}, errors.New(errors.ErrCodeInvalidReference, "invalid content id %q: unknown prefix", s)
	}
	for _, c := range s[1:] {
		if c < '0' || c > '9' {
			return Ref{}, errors.New(errors.ErrCodeInvalidReference, "invalid content id %q", s)
		}
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil {
		return Ref{}, errors.Wrap(errors.ErrCodeInvalidReference, err, "invalid content id %q", s)
	}
	return Ref{Kind: kind, Index: n}, nil
}

// Content is a leaf component with identity that persists across steps.
type Content interface {
	Component
	Ref() Ref
	Color() RGB
	SetColor(RGB)
	Opacity() float64
	SetOpacity(float64)
}

// style is the mutable, animation-driven appearance of a content item.
type style struct {
	color   RGB
	opacity float64
}

func (s *style) Color() RGB           { return s.color }
func (s *style) SetColor(c RGB)       { s.color = c }
func (s *style) Opacity() float64     { return s.opacity }
func (s *style) SetOpacity(o float64) { s.opacity = o }

// Term is a piece of typeset text with precomputed metrics. Width and
// height include the term padding.
type Term struct {
	style
	ref       Ref
	Text      string
	width     float64
	height    float64
	Ascent    float64
	tightDiff float64
}

func (t *Term) Ref() Ref            { return t.ref }
func (t *Term) Width() float64      { return t.width }
func (t *Term) Height() float64     { return t.height }
func (t *Term) String() string      { return t.ref.String() }
func (t *Term) TightWidth() float64 { return t.width - t.tightDiff }

func (t *Term) AddLayout(p *Pass, parent *Frame, x, y, scale float64) *Frame {
	return p.addContent(t, parent, x, y, t.width, t.height, scale)
}

// AddTightLayout lays the term out with the narrower tight padding.
func (t *Term) AddTightLayout(p *Pass, parent *Frame, x, y, scale float64) *Frame {
	f := p.addContent(t, parent, x, y, t.TightWidth(), t.height, scale)
	f.Tight = true
	return f
}

// HDivider is a horizontal rule. Inside a [VBox] it stretches to the box's
// inner width; elsewhere it keeps its intrinsic minimum width.
type HDivider struct {
	style
	ref    Ref
	width  float64
	height float64
}

func (d *HDivider) Ref() Ref        { return d.ref }
func (d *HDivider) Width() float64  { return d.width }
func (d *HDivider) Height() float64 { return d.height }
func (d *HDivider) String() string  { return d.ref.String() }

func (d *HDivider) AddLayout(p *Pass, parent *Frame, x, y, scale float64) *Frame {
	return p.addContent(d, parent, x, y, d.width, d.height, scale)
}

// AddStretchedLayout lays the divider out with an explicit unscaled width.
func (d *HDivider) AddStretchedLayout(p *Pass, parent *Frame, x, y, width, scale float64) *Frame {
	return p.addContent(d, parent, x, y, width, d.height, scale)
}
