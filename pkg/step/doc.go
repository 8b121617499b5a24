// Package step defines the instructions document that drives an equation
// animation and the per-step style rules.
//
// An [Instructions] value lists the terms of the animation with their
// measured widths, the number of horizontal dividers, and an ordered list of
// [Step] values. Each step carries a root container [layout.Descriptor] and
// optional color and opacity overrides keyed by content id.
//
// Style resolution is deterministic: an override present in the step wins,
// otherwise the default color and the normal opacity tier apply. Overrides
// that equal the defaults are never stored; [Step.ApplyStyle] deletes them
// and drops maps that become empty.
package step
