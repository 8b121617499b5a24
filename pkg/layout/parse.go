package layout

import "github.com/matzehuels/eqsteps/pkg/errors"

// Paddings holds the default padding of each container kind.
type Paddings struct {
	VBox      Padding
	HBox      Padding
	TightHBox Padding
	SubSuper  Padding
	Root      Padding
}

// Options configures a [Parser].
type Options struct {
	Padding     Paddings
	ScriptScale float64
	Portrusion  float64
}

// DefaultOptions returns the standard container paddings, a script scale
// of 0.6 and a portrusion of 0.45.
func DefaultOptions() Options {
	return Options{
		Padding: Paddings{
			VBox: Even(6),
			HBox: Even(6),
		},
		ScriptScale: 0.6,
		Portrusion:  0.45,
	}
}

// Parser builds container trees from descriptors, resolving content ids
// against a store.
type Parser struct {
	store *Store
	opts  Options
}

// NewParser creates a parser over store.
func NewParser(store *Store, opts Options) *Parser {
	return &Parser{store: store, opts: opts}
}

// Store returns the content store the parser resolves against.
func (p *Parser) Store() *Store { return p.store }

// Parse builds a fresh container tree from d. On error no tree is returned.
func (p *Parser) Parse(d Descriptor) (Container, error) {
	switch d.Type {
	case "":
		return nil, errors.New(errors.ErrCodeInvalidContainer, "missing type attribute on container descriptor")
	case KindVBox:
		children, err := p.children(d.Children)
		if err != nil {
			return nil, err
		}
		return NewVBox(p.opts.Padding.VBox, children...), nil
	case KindHBox:
		children, err := p.children(d.Children)
		if err != nil {
			return nil, err
		}
		return NewHBox(p.opts.Padding.HBox, children...), nil
	case KindTightHBox:
		children, err := p.children(d.Children)
		if err != nil {
			return nil, err
		}
		return NewTightHBox(p.opts.Padding.TightHBox, children...), nil
	case KindSubSuper:
		s, err := p.subSuper(d)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidContainer, "unrecognized container type %q", string(d.Type))
	}
}

// ParseRoot builds the root of a step: a [VCenterVBox] with a fixed width.
// A vbox descriptor becomes the root itself and keeps the vbox padding; any
// other container is wrapped as the root's only child.
func (p *Parser) ParseRoot(d Descriptor, width float64) (*VCenterVBox, error) {
	c, err := p.Parse(d)
	if err != nil {
		return nil, err
	}
	var root *VCenterVBox
	if v, ok := c.(*VBox); ok {
		root = NewVCenterVBox(p.opts.Padding.VBox, v.children...)
	} else {
		root = NewVCenterVBox(p.opts.Padding.Root, c)
		root.wrapped = true
	}
	root.SetFixedWidth(width)
	return root, nil
}

func (p *Parser) subSuper(d Descriptor) (*SubSuper, error) {
	top, err := p.children(d.Top)
	if err != nil {
		return nil, err
	}
	middle, err := p.children(d.Middle)
	if err != nil {
		return nil, err
	}
	bottom, err := p.children(d.Bottom)
	if err != nil {
		return nil, err
	}
	portrusion := p.opts.Portrusion
	if d.Portrusion != nil {
		portrusion = *d.Portrusion
	}
	s := NewSubSuper(
		NewHBox(Padding{}, top...),
		NewTightHBox(Padding{}, middle...),
		NewHBox(Padding{}, bottom...),
		p.opts.Padding.SubSuper,
		p.opts.ScriptScale,
		portrusion,
	)
	s.explicit = d.Portrusion != nil
	return s, nil
}

func (p *Parser) children(list []Child) ([]Component, error) {
	out := make([]Component, 0, len(list))
	for i, c := range list {
		switch {
		case c.Container != nil:
			child, err := p.Parse(*c.Container)
			if err != nil {
				return nil, err
			}
			out = append(out, child)
		case c.Ref != "":
			content, err := p.store.Resolve(c.Ref)
			if err != nil {
				return nil, err
			}
			out = append(out, content)
		default:
			return nil, errors.New(errors.ErrCodeInvalidInput, "child %d is neither a content id nor a container", i)
		}
	}
	return out, nil
}
