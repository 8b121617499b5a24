package layout

// VBox stacks its children vertically, centering each one horizontally.
// Dividers are stretched to the inner width.
type VBox struct {
	box
}

// NewVBox creates a vertical box.
func NewVBox(padding Padding, children ...Component) *VBox {
	return &VBox{box{padding: padding, children: children}}
}

func (v *VBox) Kind() Kind { return KindVBox }

func (v *VBox) Width() float64 {
	return v.width(func() float64 {
		var w float64
		for _, c := range v.children {
			w = max(w, c.Width())
		}
		return w + v.padding.Width()
	})
}

func (v *VBox) Height() float64 {
	return v.height(func() float64 {
		var h float64
		for _, c := range v.children {
			h += c.Height()
		}
		return h + v.padding.Height()
	})
}

func (v *VBox) contentHeight() float64 {
	var h float64
	for _, c := range v.children {
		h += c.Height()
	}
	return h
}

func (v *VBox) AddLayout(p *Pass, parent *Frame, x, y, scale float64) *Frame {
	f := newContainerFrame(v, parent, x, y, scale)
	v.stack(p, f, x, y+v.padding.Top*scale, scale)
	return p.add(f)
}

// stack lays the children out top to bottom starting at y.
func (v *VBox) stack(p *Pass, f *Frame, x, y, scale float64) {
	inner := f.Width/scale - v.padding.Width()
	left := x + v.padding.Left*scale
	for _, c := range v.children {
		var cf *Frame
		if d, ok := c.(*HDivider); ok {
			cf = d.AddStretchedLayout(p, f, left, y, inner, scale)
		} else {
			cx := left + (inner-c.Width())/2*scale
			cf = c.AddLayout(p, f, cx, y, scale)
		}
		y += cf.Height
	}
}

// VCenterVBox is the root container of a step. It behaves like a [VBox]
// but centers its content vertically within a fixed height.
type VCenterVBox struct {
	VBox
	// wrapped is set when the step root was not itself a vbox and was
	// placed inside this one as its only child.
	wrapped bool
}

// NewVCenterVBox creates a root box.
func NewVCenterVBox(padding Padding, children ...Component) *VCenterVBox {
	return &VCenterVBox{VBox: VBox{box{padding: padding, children: children}}}
}

func (v *VCenterVBox) AddLayout(p *Pass, parent *Frame, x, y, scale float64) *Frame {
	f := newContainerFrame(v, parent, x, y, scale)
	free := f.Height/scale - v.padding.Height() - v.contentHeight()
	v.stack(p, f, x, y+(v.padding.Top+free/2)*scale, scale)
	return p.add(f)
}
