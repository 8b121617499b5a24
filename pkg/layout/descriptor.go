package layout

import (
	"bytes"
	"encoding/json"

	"github.com/matzehuels/eqsteps/pkg/errors"
)

// Descriptor is the serialized form of a container. A subSuper descriptor
// uses Top, Middle and Bottom instead of Children.
type Descriptor struct {
	Type       Kind     `json:"type"`
	Children   []Child  `json:"children,omitempty"`
	Top        []Child  `json:"top,omitempty"`
	Middle     []Child  `json:"middle,omitempty"`
	Bottom     []Child  `json:"bottom,omitempty"`
	Portrusion *float64 `json:"portrusion,omitempty"`
}

// Child is one entry of a descriptor's child list: either a content id or a
// nested container.
type Child struct {
	Ref       string
	Container *Descriptor
}

// RefChild returns a child referring to content id.
func RefChild(id string) Child { return Child{Ref: id} }

// ContainerChild returns a child holding a nested container.
func ContainerChild(d Descriptor) Child { return Child{Container: &d} }

func (c Child) MarshalJSON() ([]byte, error) {
	if c.Container != nil {
		return json.Marshal(c.Container)
	}
	return json.Marshal(c.Ref)
}

func (c *Child) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return errors.New(errors.ErrCodeInvalidFormat, "empty child")
	}
	switch data[0] {
	case '"':
		*c = Child{}
		return json.Unmarshal(data, &c.Ref)
	case '{':
		var d Descriptor
		if err := json.Unmarshal(data, &d); err != nil {
			return err
		}
		*c = Child{Container: &d}
		return nil
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "invalid child %s: expected content id or container", data)
	}
}

// ToDescriptor derives a descriptor from a live container tree. Parsing the
// result with the same store yields an equivalent tree.
func ToDescriptor(c Container) Descriptor {
	switch v := c.(type) {
	case *VCenterVBox:
		if v.wrapped && len(v.children) == 1 {
			if inner, ok := v.children[0].(Container); ok {
				return ToDescriptor(inner)
			}
		}
		return Descriptor{Type: KindVBox, Children: childDescriptors(v.children)}
	case *SubSuper:
		d := Descriptor{
			Type:   KindSubSuper,
			Top:    childDescriptors(v.Top.children),
			Middle: childDescriptors(v.Middle.children),
			Bottom: childDescriptors(v.Bottom.children),
		}
		if v.explicit {
			p := v.portrusion
			d.Portrusion = &p
		}
		return d
	default:
		return Descriptor{Type: c.Kind(), Children: childDescriptors(c.Children())}
	}
}

func childDescriptors(children []Component) []Child {
	if len(children) == 0 {
		return nil
	}
	out := make([]Child, 0, len(children))
	for _, child := range children {
		switch v := child.(type) {
		case Content:
			out = append(out, RefChild(v.Ref().String()))
		case Container:
			out = append(out, ContainerChild(ToDescriptor(v)))
		}
	}
	return out
}

// Refs returns every content id referenced in the descriptor, in tree order.
func (d Descriptor) Refs() []string {
	var out []string
	var walk func(children []Child)
	walk = func(children []Child) {
		for _, c := range children {
			if c.Container != nil {
				out = append(out, c.Container.Refs()...)
			} else {
				out = append(out, c.Ref)
			}
		}
	}
	walk(d.Top)
	walk(d.Middle)
	walk(d.Bottom)
	walk(d.Children)
	return out
}
