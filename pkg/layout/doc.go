// Package layout implements the box layout engine for equation steps.
//
// # Overview
//
// A step is described by a tree of containers whose leaves are pieces of
// content. Content ([Term], [HDivider]) is created once per animation and
// keeps its identity across every step; containers ([VBox], [HBox],
// [TightHBox], [SubSuper], [VCenterVBox]) are rebuilt from a [Descriptor]
// each time a step is laid out and are never shared between steps.
//
// Layout runs in two passes:
//
//  1. Measure (bottom-up): [Component.Width] and [Component.Height] compute
//     the size of each component from its children and padding, unless a
//     fixed size was set.
//  2. Position (top-down): [Component.AddLayout] places every child relative
//     to its container and appends one [Frame] per visited component.
//
// Frames are appended children-first, so the root frame is always the last
// element of the list and the first frame containing a point is the
// innermost one. [HitTest] relies on this ordering.
//
// # Usage
//
//	store := layout.NewStore(layout.Even(5), layout.Padding{Top: 5, Right: 1, Bottom: 5, Left: 1})
//	x := store.AddTerm("x", 40, 20, 16)
//	parser := layout.NewParser(store, layout.DefaultOptions())
//	root, err := parser.ParseRoot(desc, 800)
//	if err != nil {
//	    return err // configuration error, nothing was built
//	}
//	frames := layout.Layout(root, 0, 0, 1, nil)
//	height := layout.Root(frames).Height
//
// # Scale
//
// Coordinates are computed unscaled and multiplied by the scale passed to
// AddLayout. [SubSuper] lays its scripts out at a reduced scale, so nested
// scale factors compose multiplicatively.
package layout
