package layout

// SubSuper places superscript and subscript boxes to the right of a base.
// The scripts are drawn at a reduced scale and overlap the base vertically
// by a fraction of their own height.
type SubSuper struct {
	sized
	Top    *HBox
	Middle *TightHBox
	Bottom *HBox

	padding     Padding
	scriptScale float64
	portrusion  float64
	// explicit records whether the portrusion came from the descriptor.
	explicit bool
}

// NewSubSuper creates a script container around the three parts.
func NewSubSuper(top *HBox, middle *TightHBox, bottom *HBox, padding Padding, scriptScale, portrusion float64) *SubSuper {
	return &SubSuper{
		Top:         top,
		Middle:      middle,
		Bottom:      bottom,
		padding:     padding,
		scriptScale: scriptScale,
		portrusion:  portrusion,
	}
}

func (s *SubSuper) Kind() Kind       { return KindSubSuper }
func (s *SubSuper) Padding() Padding { return s.padding }

// Portrusion is the fraction of each script's height that overlaps the base.
func (s *SubSuper) Portrusion() float64 { return s.portrusion }

// ScriptScale is the scale applied to the top and bottom parts.
func (s *SubSuper) ScriptScale() float64 { return s.scriptScale }

// Children returns the three parts: top, middle, bottom.
func (s *SubSuper) Children() []Component {
	return []Component{s.Top, s.Middle, s.Bottom}
}

// Part returns the part that directly holds c, or nil.
func (s *SubSuper) Part(c Component) Editable {
	for _, part := range []Editable{s.Top, s.Middle, s.Bottom} {
		if part.IndexOf(c) >= 0 {
			return part
		}
	}
	return nil
}

func (s *SubSuper) Width() float64 {
	return s.width(func() float64 {
		scripts := max(s.Top.Width(), s.Bottom.Width()) * s.scriptScale
		return s.Middle.Width() + scripts + s.padding.Width()
	})
}

func (s *SubSuper) Height() float64 {
	return s.height(func() float64 {
		overlap := 1 - s.portrusion
		return s.Top.Height()*s.scriptScale*overlap +
			s.Middle.Height() +
			s.Bottom.Height()*s.scriptScale*overlap +
			s.padding.Height()
	})
}

func (s *SubSuper) AddLayout(p *Pass, parent *Frame, x, y, scale float64) *Frame {
	f := newContainerFrame(s, parent, x, y, scale)
	left := x + s.padding.Left*scale
	top := y + s.padding.Top*scale
	overlap := 1 - s.portrusion
	topH := s.Top.Height() * s.scriptScale
	bottomH := s.Bottom.Height() * s.scriptScale
	baseW := s.Middle.Width()
	baseH := s.Middle.Height()

	scriptScale := scale * s.scriptScale
	s.Top.AddLayout(p, f, left+baseW*scale, top, scriptScale)
	s.Middle.AddLayout(p, f, left, top+topH*overlap*scale, scale)
	s.Bottom.AddLayout(p, f, left+baseW*scale, top+(topH*overlap+baseH-bottomH*s.portrusion)*scale, scriptScale)
	return p.add(f)
}
