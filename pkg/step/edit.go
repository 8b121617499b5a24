package step

import "github.com/matzehuels/eqsteps/pkg/errors"

// StyleChange is an edit of the color and/or opacity of content items.
// A nil field is left unchanged.
type StyleChange struct {
	Color   *string
	Opacity *float64
}

// ApplyStyle sets the overrides for ids. Overrides equal to the defaults are
// deleted instead of stored, and maps left empty are set to nil.
func (st *Step) ApplyStyle(ids []string, change StyleChange, styles Styles) error {
	if change.Color != nil {
		if _, ok := styles.Palette[*change.Color]; !ok {
			return errors.New(errors.ErrCodeInvalidColor, "unknown color %q", *change.Color)
		}
	}
	if change.Opacity != nil {
		if err := errors.ValidateOpacity(*change.Opacity); err != nil {
			return err
		}
	}
	for _, id := range ids {
		if change.Color != nil {
			st.setColor(id, *change.Color)
		}
		if change.Opacity != nil {
			st.setOpacity(id, *change.Opacity, styles.DefaultOpacity)
		}
	}
	if len(st.Color) == 0 {
		st.Color = nil
	}
	if len(st.Opacity) == 0 {
		st.Opacity = nil
	}
	return nil
}

func (st *Step) setColor(id, name string) {
	if name == DefaultColorName {
		delete(st.Color, id)
		return
	}
	if st.Color == nil {
		st.Color = make(map[string]string)
	}
	st.Color[id] = name
}

func (st *Step) setOpacity(id string, o, def float64) {
	if o == def {
		delete(st.Opacity, id)
		return
	}
	if st.Opacity == nil {
		st.Opacity = make(map[string]float64)
	}
	st.Opacity[id] = o
}

// ClearStyle deletes every override for ids.
func (st *Step) ClearStyle(ids []string) {
	for _, id := range ids {
		delete(st.Color, id)
		delete(st.Opacity, id)
	}
	if len(st.Color) == 0 {
		st.Color = nil
	}
	if len(st.Opacity) == 0 {
		st.Opacity = nil
	}
}

// Contains reports whether content id is placed in the step's layout.
func (st *Step) Contains(id string) bool {
	for _, ref := range st.Root.Refs() {
		if ref == id {
			return true
		}
	}
	return false
}

// CheckInsert returns a duplicate-content error if id is already placed in
// the step.
func (st *Step) CheckInsert(id string) error {
	if st.Contains(id) {
		return errors.New(errors.ErrCodeDuplicateContent, "Duplicate content not allowed in a step.")
	}
	return nil
}
