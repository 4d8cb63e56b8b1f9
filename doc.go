// Package canvas is the core of a 2D canvas editor: an infinite,
// pannable and zoomable world holding text labels, rectangles, arrows and
// images.
//
// # Overview
//
// The package provides the value types shared by every layer of the
// editor:
//
//   - Vec2, Rect and RGBA: single-precision geometry and color
//   - Camera: world/screen conversion, pan and cursor-anchored zoom
//   - Element: an id, a Transform, a stored bounding box and one of four
//     payloads (Text, Rectangle, Arrow, Image)
//   - Scene: the ordered element list with creation, removal, bounds
//     maintenance and reverse z-order hit testing
//
// Editing gestures live in package edit, undo and redo in package history,
// drawing in package render and saving in package persist.
//
// # Coordinates
//
// World space is Y-up. An element's Transform.Position is the top-left
// corner of its box for text, rectangles and images, and the start point
// for arrows. Rect stores its bottom-left corner and extent. Screen space
// is viewport pixels with Y growing downwards; Camera converts between the
// two.
//
// Elements created with InScreenSpace are overlays: they ignore the camera,
// are never hit-tested and are excluded from history and persistence.
//
// # Quick Start
//
//	scene := canvas.NewScene()
//	cam := canvas.NewCamera(1280, 720)
//
//	id := scene.AddTextLabel(canvas.V2(0, 0), "hello", 24, canvas.Black)
//	if hit, ok := scene.HitTest(cursor, cam); ok && hit == id {
//	    ...
//	}
//
// # Threading
//
// A Scene is not safe for concurrent use. All scene, edit and history
// calls are expected to run on the thread that drives the frame loop.
//
// # Logging
//
// The package is silent by default. Install a logger with SetLogger to see
// diagnostics from this package and its sub-packages.
package canvas
