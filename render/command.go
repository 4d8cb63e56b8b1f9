// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "github.com/gogpu/canvas"

// CommandType identifies a recorded draw call.
type CommandType uint8

const (
	CmdRect     CommandType = iota // Rectangle fill or outline
	CmdPolyline                    // Stroked polyline
	CmdTriangle                    // Filled triangle
	CmdText                        // Single line of text
	CmdImage                       // Textured quad
)

var commandTypeNames = [...]string{
	CmdRect:     "Rect",
	CmdPolyline: "Polyline",
	CmdTriangle: "Triangle",
	CmdText:     "Text",
	CmdImage:    "Image",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is implemented by all recorded commands.
type Command interface {
	Type() CommandType
}

// RectCommand records a Backend.Rect call.
type RectCommand struct {
	Rect   ScreenRect
	Border float32
	Color  canvas.RGBA
}

// Type implements Command.
func (RectCommand) Type() CommandType { return CmdRect }

// PolylineCommand records a Backend.Polyline call.
type PolylineCommand struct {
	Points []canvas.Vec2
	Width  float32
	Color  canvas.RGBA
}

// Type implements Command.
func (PolylineCommand) Type() CommandType { return CmdPolyline }

// TriangleCommand records a Backend.Triangle call.
type TriangleCommand struct {
	Points [3]canvas.Vec2
	Color  canvas.RGBA
}

// Type implements Command.
func (TriangleCommand) Type() CommandType { return CmdTriangle }

// TextCommand records a Backend.Text call.
type TextCommand struct {
	Origin canvas.Vec2
	Line   string
	Size   float32
	Color  canvas.RGBA
}

// Type implements Command.
func (TextCommand) Type() CommandType { return CmdText }

// ImageCommand records a Backend.Image call.
type ImageCommand struct {
	Rect    ScreenRect
	Texture canvas.Texture
}

// Type implements Command.
func (ImageCommand) Type() CommandType { return CmdImage }
