// Package playback drives an equation animation: it lays steps out, diffs
// consecutive layouts into animation sets, and advances them from an
// external clock.
//
// # Controller
//
// A [Controller] owns everything for one canvas: the content store, the
// current container tree and frame list, the running animation set and the
// busy flag. Nothing is shared between controllers, so any number can
// coexist. A controller is not safe for concurrent use; callers serialize
// access.
//
//	buf := render.NewBuffer()
//	ctrl, err := playback.New(instructions, buf, playback.WithWidth(800))
//	if err != nil {
//	    return err
//	}
//	ctrl.Start(time.Now())
//	for ctrl.Tick(time.Now()) {
//	    // wait for the next frame
//	}
//	ctrl.Next(time.Now())
//
// # Transitions
//
// Navigation ([Controller.Next], [Controller.Prev], [Controller.Restart],
// [Controller.GoTo]) lays the target step out and diffs it against the
// current frames. While a transition runs the controller is busy and every
// further navigation request is dropped, never queued.
//
// # Resizing
//
// [Controller.Resize] relayouts the current step immediately when idle.
// While busy the new width is recorded and applied as soon as the running
// transition completes.
//
// # Editing
//
// The edit operations ([Controller.ApplyStyle], [Controller.DeleteSelected],
// [Controller.InsertAfterSelected]) act on the current selection and return
// modified copies of the instructions; the controller's own instructions are
// only replaced through [Controller.Replace].
package playback
