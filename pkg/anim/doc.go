// Package anim provides the tick-driven animation runtime.
//
// An [Animation] interpolates one property between a start and an end value
// over a duration, shaped by a cubic-bezier [Easing]. Animations are grouped
// in a [Set] that starts them on one clock origin and reports completion
// exactly once, after every member reached progress 1.
//
// Nothing in this package starts goroutines or reads the clock. A
// [Scheduler] is advanced by an external tick: each call to
// [Scheduler.Tick] applies every running animation's mutation and then
// calls the redraw hook once, so a surface never observes a half-updated
// state.
//
// # Drawables
//
// Geometry animations mutate a [Drawable]: the frame currently shown for a
// content item. A drawable is attached when it draws with its content's live
// color and opacity, and detached when it owns its style, as added and
// removed items do while they fade.
package anim
