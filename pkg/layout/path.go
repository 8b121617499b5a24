package layout

import "github.com/matzehuels/eqsteps/pkg/errors"

// A Path addresses a component in a container tree by child indices from
// the root. Inside a [SubSuper] the first index selects the part (0 top,
// 1 middle, 2 bottom) and the next index a child of that part.
type Path []int

// PathOf returns the path of the component framed by f, relative to the
// root of its frame tree.
func PathOf(f *Frame) Path {
	var rev Path
	for cur := f; cur.Parent != nil; cur = cur.Parent {
		parent, ok := cur.Parent.Component.(Container)
		if !ok {
			break
		}
		idx := -1
		for i, c := range parent.Children() {
			if c == cur.Component {
				idx = i
				break
			}
		}
		rev = append(rev, idx)
	}
	out := make(Path, len(rev))
	for i, v := range rev {
		out[len(rev)-1-i] = v
	}
	return out
}

// Wrapped reports whether the root was created around a non-vbox step
// root. Paths into a wrapped root start with a 0 that has no descriptor
// counterpart.
func (v *VCenterVBox) Wrapped() bool { return v.wrapped }

// DescriptorPath converts a path from the live root into a path in the
// step's descriptor.
func (v *VCenterVBox) DescriptorPath(p Path) Path {
	if v.wrapped && len(p) > 0 {
		return p[1:]
	}
	return p
}

// locate walks p and returns the list holding the addressed child and its
// index. A path ending on a subSuper part has no list entry and reports
// isPart.
func (d *Descriptor) locate(p Path) (list *[]Child, idx int, isPart bool, err error) {
	cur := d
	for len(p) > 0 {
		if cur.Type == KindSubSuper {
			part := cur.part(p[0])
			if part == nil {
				return nil, 0, false, errors.New(errors.ErrCodeNotFound, "subSuper has no part %d", p[0])
			}
			if len(p) == 1 {
				return nil, 0, true, nil
			}
			list, idx, p = part, p[1], p[2:]
		} else {
			list, idx, p = &cur.Children, p[0], p[1:]
		}
		if idx < 0 || idx >= len(*list) {
			return nil, 0, false, errors.New(errors.ErrCodeNotFound, "no child at index %d", idx)
		}
		if len(p) == 0 {
			return list, idx, false, nil
		}
		cur = (*list)[idx].Container
		if cur == nil {
			return nil, 0, false, errors.New(errors.ErrCodeNotFound, "path descends into content")
		}
	}
	return nil, 0, false, nil
}

func (d *Descriptor) part(i int) *[]Child {
	switch i {
	case 0:
		return &d.Top
	case 1:
		return &d.Middle
	case 2:
		return &d.Bottom
	}
	return nil
}

// ChildList returns the child list of the container at p: the children of
// a box, or the list of a subSuper part.
func (d *Descriptor) ChildList(p Path) (*[]Child, error) {
	if len(p) == 0 {
		if d.Type == KindSubSuper {
			return nil, errors.New(errors.ErrCodeUnsupported, "subSuper has no direct children")
		}
		return &d.Children, nil
	}
	// A part path resolves against its subSuper.
	parent, err := d.containerAt(p[:len(p)-1])
	if err == nil && parent.Type == KindSubSuper {
		if part := parent.part(p[len(p)-1]); part != nil {
			return part, nil
		}
	}
	c, err := d.containerAt(p)
	if err != nil {
		return nil, err
	}
	if c.Type == KindSubSuper {
		return nil, errors.New(errors.ErrCodeUnsupported, "subSuper has no direct children")
	}
	return &c.Children, nil
}

func (d *Descriptor) containerAt(p Path) (*Descriptor, error) {
	if len(p) == 0 {
		return d, nil
	}
	list, idx, isPart, err := d.locate(p)
	if err != nil {
		return nil, err
	}
	if isPart || list == nil {
		return nil, errors.New(errors.ErrCodeNotFound, "path does not address a container")
	}
	c := (*list)[idx].Container
	if c == nil {
		return nil, errors.New(errors.ErrCodeNotFound, "path addresses content, not a container")
	}
	return c, nil
}

// RemoveAt deletes the child at p. The root and subSuper parts cannot be
// removed.
func (d *Descriptor) RemoveAt(p Path) error {
	if len(p) == 0 {
		return errors.New(errors.ErrCodeNotDeletable, "The root container cannot be deleted.")
	}
	list, idx, isPart, err := d.locate(p)
	if err != nil {
		return err
	}
	if isPart {
		return errors.New(errors.ErrCodeNotDeletable, "Parts of a sub/super container cannot be deleted.")
	}
	*list = append((*list)[:idx], (*list)[idx+1:]...)
	return nil
}

// InsertAfter inserts c right after the child at p.
func (d *Descriptor) InsertAfter(p Path, c Child) error {
	if len(p) == 0 {
		if d.Type == KindSubSuper {
			return errors.New(errors.ErrCodeUnsupported, "subSuper has no direct children")
		}
		d.Children = append(d.Children, c)
		return nil
	}
	list, idx, isPart, err := d.locate(p)
	if err != nil {
		return err
	}
	if isPart {
		return errors.New(errors.ErrCodeUnsupported, "cannot insert next to a sub/super part")
	}
	*list = append(*list, Child{})
	copy((*list)[idx+2:], (*list)[idx+1:])
	(*list)[idx+1] = c
	return nil
}
