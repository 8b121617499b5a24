package layout

// HBox lays its children out left to right, centering each one vertically.
type HBox struct {
	box
	tight bool
}

// TightHBox is an [HBox] whose terms use the narrower tight padding.
type TightHBox struct {
	HBox
}

// NewHBox creates a horizontal box.
func NewHBox(padding Padding, children ...Component) *HBox {
	return &HBox{box: box{padding: padding, children: children}}
}

// NewTightHBox creates a tight horizontal box.
func NewTightHBox(padding Padding, children ...Component) *TightHBox {
	return &TightHBox{HBox{box: box{padding: padding, children: children}, tight: true}}
}

func (h *HBox) Kind() Kind {
	if h.tight {
		return KindTightHBox
	}
	return KindHBox
}

func (h *HBox) childWidth(c Component) float64 {
	if t, ok := c.(*Term); ok && h.tight {
		return t.TightWidth()
	}
	return c.Width()
}

func (h *HBox) Width() float64 {
	return h.width(func() float64 {
		var w float64
		for _, c := range h.children {
			w += h.childWidth(c)
		}
		return w + h.padding.Width()
	})
}

func (h *HBox) Height() float64 {
	return h.height(func() float64 {
		var ht float64
		for _, c := range h.children {
			ht = max(ht, c.Height())
		}
		return ht + h.padding.Height()
	})
}

func (h *HBox) AddLayout(p *Pass, parent *Frame, x, y, scale float64) *Frame {
	return h.layout(p, h, parent, x, y, scale)
}

func (t *TightHBox) AddLayout(p *Pass, parent *Frame, x, y, scale float64) *Frame {
	return t.layout(p, t, parent, x, y, scale)
}

// layout positions the children; self is the outer container so the frame
// refers to the TightHBox rather than its embedded HBox.
func (h *HBox) layout(p *Pass, self Container, parent *Frame, x, y, scale float64) *Frame {
	f := newContainerFrame(self, parent, x, y, scale)
	inner := f.Height/scale - h.padding.Height()
	cx := x + h.padding.Left*scale
	top := y + h.padding.Top*scale
	for _, c := range h.children {
		cy := top + (inner-c.Height())/2*scale
		var cf *Frame
		if t, ok := c.(*Term); ok && h.tight {
			cf = t.AddTightLayout(p, f, cx, cy, scale)
		} else {
			cf = c.AddLayout(p, f, cx, cy, scale)
		}
		cx += cf.Width
	}
	return p.add(f)
}
