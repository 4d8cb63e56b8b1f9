// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"slices"

	"github.com/gogpu/canvas"
)

// Recorder is a Backend that stores every call as a Command. It is used
// for tests and for replaying a frame onto another backend.
type Recorder struct {
	width, height int
	commands      []Command
	frames        int
}

var _ Backend = (*Recorder)(nil)

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Begin implements Backend. It discards the previous frame.
func (r *Recorder) Begin(width, height int) error {
	r.width, r.height = width, height
	r.commands = r.commands[:0]
	return nil
}

// Rect implements Backend.
func (r *Recorder) Rect(rect ScreenRect, border float32, c canvas.RGBA) {
	r.commands = append(r.commands, RectCommand{Rect: rect, Border: border, Color: c})
}

// Polyline implements Backend.
func (r *Recorder) Polyline(pts []canvas.Vec2, width float32, c canvas.RGBA) {
	r.commands = append(r.commands, PolylineCommand{Points: slices.Clone(pts), Width: width, Color: c})
}

// Triangle implements Backend.
func (r *Recorder) Triangle(tri [3]canvas.Vec2, c canvas.RGBA) {
	r.commands = append(r.commands, TriangleCommand{Points: tri, Color: c})
}

// Text implements Backend.
func (r *Recorder) Text(origin canvas.Vec2, line string, size float32, c canvas.RGBA) {
	r.commands = append(r.commands, TextCommand{Origin: origin, Line: line, Size: size, Color: c})
}

// Image implements Backend.
func (r *Recorder) Image(rect ScreenRect, tex canvas.Texture) {
	r.commands = append(r.commands, ImageCommand{Rect: rect, Texture: tex})
}

// End implements Backend.
func (r *Recorder) End() error {
	r.frames++
	return nil
}

// Size returns the viewport size of the last frame.
func (r *Recorder) Size() (width, height int) { return r.width, r.height }

// Frames returns the number of completed frames.
func (r *Recorder) Frames() int { return r.frames }

// Commands returns the commands of the current frame.
func (r *Recorder) Commands() []Command {
	return slices.Clone(r.commands)
}

// Len returns the number of recorded commands.
func (r *Recorder) Len() int { return len(r.commands) }

// Playback replays the recorded frame onto b.
func (r *Recorder) Playback(b Backend) error {
	if err := b.Begin(r.width, r.height); err != nil {
		return err
	}
	for _, cmd := range r.commands {
		switch c := cmd.(type) {
		case RectCommand:
			b.Rect(c.Rect, c.Border, c.Color)
		case PolylineCommand:
			b.Polyline(c.Points, c.Width, c.Color)
		case TriangleCommand:
			b.Triangle(c.Points, c.Color)
		case TextCommand:
			b.Text(c.Origin, c.Line, c.Size, c.Color)
		case ImageCommand:
			b.Image(c.Rect, c.Texture)
		}
	}
	return b.End()
}
