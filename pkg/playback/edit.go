package playback

import (
	"time"

	"github.com/matzehuels/eqsteps/pkg/errors"
	"github.com/matzehuels/eqsteps/pkg/layout"
	"github.com/matzehuels/eqsteps/pkg/step"
)

// Select hit-tests the current frames and selects the innermost component
// at (x, y). It returns nil and clears the selection when nothing is hit.
func (c *Controller) Select(x, y float64) *layout.Frame {
	c.selected = layout.HitTest(c.frames, x, y)
	return c.selected
}

// Selected returns the selected frame, or nil.
func (c *Controller) Selected() *layout.Frame { return c.selected }

// ClearSelection drops the selection.
func (c *Controller) ClearSelection() { c.selected = nil }

func (c *Controller) selection() (*layout.Frame, layout.Path, error) {
	if c.selected == nil {
		return nil, nil, errors.New(errors.ErrCodeNothingSelected, "Nothing is selected.")
	}
	return c.selected, c.root.DescriptorPath(layout.PathOf(c.selected)), nil
}

// selectedIDs returns the ids of the selected content item or of every
// content item under the selected container.
func selectedIDs(f *layout.Frame) []string {
	var ids []string
	for _, content := range layout.ContentUnder(f.Component) {
		ids = append(ids, content.Ref().String())
	}
	return ids
}

// ApplyStyle returns a copy of the instructions with change applied to the
// selection in the current step.
func (c *Controller) ApplyStyle(change step.StyleChange) (*step.Instructions, error) {
	sel, _, err := c.selection()
	if err != nil {
		return nil, err
	}
	out := c.inst.Clone()
	if err := out.Steps[c.step].ApplyStyle(selectedIDs(sel), change, c.styles); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteSelected returns a copy of the instructions with the selection
// removed from the current step. The root and the parts of a sub/super
// container cannot be deleted.
func (c *Controller) DeleteSelected() (*step.Instructions, error) {
	sel, path, err := c.selection()
	if err != nil {
		return nil, err
	}
	if sel.Parent == nil {
		return nil, errors.New(errors.ErrCodeNotDeletable, "The root container cannot be deleted.")
	}
	if _, ok := sel.Parent.Component.(*layout.SubSuper); ok {
		return nil, errors.New(errors.ErrCodeNotDeletable, "Parts of a sub/super container cannot be deleted.")
	}
	out := c.inst.Clone()
	st := &out.Steps[c.step]
	if err := st.Root.RemoveAt(path); err != nil {
		return nil, err
	}
	st.ClearStyle(selectedIDs(sel))
	return out, nil
}

// InsertAfterSelected returns a copy of the instructions with content id
// placed in the current step: appended inside a selected box, or right
// after a selected content item or sub/super container.
func (c *Controller) InsertAfterSelected(id string) (*step.Instructions, error) {
	if _, err := c.store.Resolve(id); err != nil {
		return nil, err
	}
	if err := c.inst.Steps[c.step].CheckInsert(id); err != nil {
		return nil, err
	}
	sel, path, err := c.selection()
	if err != nil {
		return nil, err
	}
	out := c.inst.Clone()
	root := &out.Steps[c.step].Root
	switch sel.Component.(type) {
	case layout.Content, *layout.SubSuper:
		err = root.InsertAfter(path, layout.RefChild(id))
	default:
		var list *[]layout.Child
		if list, err = root.ChildList(path); err == nil {
			*list = append(*list, layout.RefChild(id))
		}
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Replace swaps in edited instructions and animates the current step to
// its new layout. The instructions must declare the same content. The
// request is dropped while a transition runs.
func (c *Controller) Replace(inst *step.Instructions, now time.Time) (bool, error) {
	if c.busy {
		return false, nil
	}
	if len(inst.Terms) != len(c.inst.Terms) || inst.HDividers != c.inst.HDividers {
		return false, errors.New(errors.ErrCodeInvalidInput, "replacement instructions must keep the same content")
	}
	if err := c.check(inst, c.parser); err != nil {
		return false, err
	}
	c.inst = inst
	target := min(max(c.step, 0), len(inst.Steps)-1)
	return c.transition(target, now)
}
