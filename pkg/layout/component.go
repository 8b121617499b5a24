package layout

// Kind identifies a container type in a [Descriptor].
type Kind string

const (
	KindVBox      Kind = "vbox"
	KindHBox      Kind = "hbox"
	KindTightHBox Kind = "tightHBox"
	KindSubSuper  Kind = "subSuper"
)

// Component is anything that can be measured and positioned.
type Component interface {
	Width() float64
	Height() float64
	// AddLayout positions the component at (x, y) with the given scale,
	// appends its frame (after its children's frames) and returns it.
	AddLayout(p *Pass, parent *Frame, x, y, scale float64) *Frame
}

// Container is a structural component holding ordered children.
type Container interface {
	Component
	Kind() Kind
	Children() []Component
	Padding() Padding
	SetFixedWidth(w float64)
	SetFixedHeight(h float64)
}

// Editable is implemented by containers whose children can be edited in
// place. [SubSuper] is not editable; its three parts are.
type Editable interface {
	Container
	IndexOf(c Component) int
	InsertChild(i int, c Component)
	RemoveChild(c Component) bool
}

// sized holds optional fixed dimensions that short-circuit measurement.
type sized struct {
	fixedW, fixedH float64
	hasW, hasH     bool
}

func (s *sized) SetFixedWidth(w float64)  { s.fixedW, s.hasW = w, true }
func (s *sized) SetFixedHeight(h float64) { s.fixedH, s.hasH = h, true }

func (s *sized) width(calc func() float64) float64 {
	if s.hasW {
		return s.fixedW
	}
	return calc()
}

func (s *sized) height(calc func() float64) float64 {
	if s.hasH {
		return s.fixedH
	}
	return calc()
}

// box is the shared state of the list-based containers.
type box struct {
	sized
	children []Component
	padding  Padding
}

func (b *box) Children() []Component { return b.children }
func (b *box) Padding() Padding      { return b.padding }

func (b *box) IndexOf(c Component) int {
	for i, child := range b.children {
		if child == c {
			return i
		}
	}
	return -1
}

// InsertChild inserts c at index i, clamped to the valid range.
func (b *box) InsertChild(i int, c Component) {
	if i < 0 {
		i = 0
	}
	if i > len(b.children) {
		i = len(b.children)
	}
	b.children = append(b.children, nil)
	copy(b.children[i+1:], b.children[i:])
	b.children[i] = c
}

func (b *box) RemoveChild(c Component) bool {
	i := b.IndexOf(c)
	if i < 0 {
		return false
	}
	b.children = append(b.children[:i], b.children[i+1:]...)
	return true
}

// ContentUnder returns every content item in the subtree rooted at c, in
// tree order.
func ContentUnder(c Component) []Content {
	var out []Content
	var walk func(Component)
	walk = func(c Component) {
		switch v := c.(type) {
		case Content:
			out = append(out, v)
		case Container:
			for _, child := range v.Children() {
				walk(child)
			}
		}
	}
	walk(c)
	return out
}
