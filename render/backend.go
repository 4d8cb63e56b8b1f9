// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "github.com/gogpu/canvas"

// ScreenRect is an axis-aligned rectangle in viewport pixels. X, Y is the
// top-left corner; Y grows downwards.
type ScreenRect struct {
	X, Y, W, H float32
}

// Min returns the top-left corner.
func (r ScreenRect) Min() canvas.Vec2 { return canvas.Vec2{X: r.X, Y: r.Y} }

// Max returns the bottom-right corner.
func (r ScreenRect) Max() canvas.Vec2 { return canvas.Vec2{X: r.X + r.W, Y: r.Y + r.H} }

// Backend receives screen-space draw calls for one frame.
//
// Begin is called once per frame before any drawing and End once after.
// All coordinates and sizes are in viewport pixels.
type Backend interface {
	// Begin starts a frame of the given viewport size.
	Begin(width, height int) error

	// Rect draws a rectangle. A positive border draws an outline of that
	// width inside r; zero fills r.
	Rect(r ScreenRect, border float32, c canvas.RGBA)

	// Polyline strokes connected segments with the given width.
	Polyline(pts []canvas.Vec2, width float32, c canvas.RGBA)

	// Triangle fills a triangle.
	Triangle(tri [3]canvas.Vec2, c canvas.RGBA)

	// Text draws a single line whose top-left corner is at origin, at the
	// given pixel font size.
	Text(origin canvas.Vec2, line string, size float32, c canvas.RGBA)

	// Image draws tex stretched to r.
	Image(r ScreenRect, tex canvas.Texture)

	// End finishes the frame.
	End() error
}
