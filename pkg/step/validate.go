package step

import (
	"maps"
	"slices"

	"github.com/matzehuels/eqsteps/pkg/errors"
	"github.com/matzehuels/eqsteps/pkg/layout"
)

// Validate checks the structural consistency of the instructions: metrics
// match the terms, every referenced id exists and appears at most once per
// step, every override names a known color or a valid opacity, and only
// subSuper containers carry parts. Container types are checked when a step
// is parsed.
func (in *Instructions) Validate(styles Styles) error {
	if len(in.Metrics.Widths) != len(in.Terms) {
		return errors.New(errors.ErrCodeInvalidInput, "metrics list %d widths for %d terms", len(in.Metrics.Widths), len(in.Terms))
	}
	if in.HDividers < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "negative divider count %d", in.HDividers)
	}
	if len(in.Steps) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "instructions have no steps")
	}
	for i := range in.Steps {
		if err := in.validateStep(i, styles); err != nil {
			return err
		}
	}
	return nil
}

func (in *Instructions) validateStep(n int, styles Styles) error {
	st := &in.Steps[n]
	if err := checkParts(&st.Root); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidContainer, err, "step %d", n)
	}
	seen := make(map[string]bool)
	for _, id := range st.Root.Refs() {
		if _, err := layout.ParseRef(id); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidReference, err, "step %d", n)
		}
		if !in.hasContent(id) {
			return errors.New(errors.ErrCodeInvalidReference, "step %d: unknown content id %q", n, id)
		}
		if seen[id] {
			return errors.New(errors.ErrCodeInvalidInput, "step %d: content %s appears more than once", n, id)
		}
		seen[id] = true
	}
	for _, id := range slices.Sorted(maps.Keys(st.Color)) {
		name := st.Color[id]
		if !in.hasContent(id) {
			return errors.New(errors.ErrCodeInvalidReference, "step %d: color override for unknown content id %q", n, id)
		}
		if _, ok := styles.Palette[name]; !ok {
			return errors.New(errors.ErrCodeInvalidColor, "step %d: unknown color %q for %s", n, name, id)
		}
	}
	for _, id := range slices.Sorted(maps.Keys(st.Opacity)) {
		o := st.Opacity[id]
		if !in.hasContent(id) {
			return errors.New(errors.ErrCodeInvalidReference, "step %d: opacity override for unknown content id %q", n, id)
		}
		if err := errors.ValidateOpacity(o); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "step %d: opacity for %s", n, id)
		}
	}
	return nil
}

// checkParts rejects children on a subSuper and parts on any other
// container. The parser would ignore them while their ids still count as
// placed.
func checkParts(d *layout.Descriptor) error {
	if d.Type == layout.KindSubSuper {
		if len(d.Children) > 0 {
			return errors.New(errors.ErrCodeInvalidContainer, "subSuper takes top, middle and bottom parts, not children")
		}
	} else if len(d.Top)+len(d.Middle)+len(d.Bottom) > 0 {
		return errors.New(errors.ErrCodeInvalidContainer, "%s container cannot have top, middle or bottom parts", d.Type)
	}
	for _, list := range [][]layout.Child{d.Children, d.Top, d.Middle, d.Bottom} {
		for _, c := range list {
			if c.Container == nil {
				continue
			}
			if err := checkParts(c.Container); err != nil {
				return err
			}
		}
	}
	return nil
}
