// Package edit implements the interactive transform tools of the canvas:
// selection, drag-move and corner resize.
//
// Tools are gestures spanning many frames. A gesture is started with
// BeginDrag or BeginResize, fed the cursor once per frame with Update, and
// finished with End or aborted with Cancel. Gestures only mutate the scene;
// pairing them with history.Engine.BeginOperation/EndOperation turns the
// whole gesture into a single undo step:
//
//	hist.BeginOperation(scene)
//	g, err := edit.BeginResize(scene, cam, sel.IDs(), edit.BottomRight)
//	...
//	g.Update(cursor) // every frame
//	...
//	g.End()
//	hist.EndOperation()
package edit
