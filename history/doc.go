// Package history implements snapshot-based undo and redo for a canvas
// scene.
//
// Every undo step is a deep copy of the scene's world-space elements.
// Screen-space overlays are never recorded. Image bytes are not copied
// per snapshot: the first time an image element is captured its bytes go
// into a BlobStore keyed by element id, and snapshots keep only that key.
// History depth therefore costs one copy of each image, not one per step.
//
// Single-step edits are recorded with RecordAtomicBefore just before the
// mutation. Multi-frame gestures are bracketed with BeginOperation and
// EndOperation (or CancelOperation) so the whole gesture undoes in one
// step:
//
//	h := history.New()
//	h.RecordAtomicBefore(scene)
//	scene.AddRectangle(pos, 100, 50, 2, canvas.Red)
//	h.Undo(scene) // rectangle gone
//	h.Redo(scene) // rectangle back
//
// Both stacks are bounded. Pushing onto a full undo stack discards the
// oldest entry.
//
// Engine is safe for concurrent use; the scene passed to it is not, so
// callers sharing an Engine across goroutines must still serialize scene
// access.
package history
