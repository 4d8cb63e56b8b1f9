package persist

import "github.com/gogpu/canvas"

// FormatVersion is the document version written by Save.
const FormatVersion = 1

// Document is the on-disk form of a scene.
type Document struct {
	Version  int          `yaml:"version"`
	NextID   uint32       `yaml:"next_id"`
	Camera   *CameraDoc   `yaml:"camera,omitempty"`
	Elements []ElementDoc `yaml:"elements"`
}

// CameraDoc stores the view so a reopened document looks the same.
type CameraDoc struct {
	Position Point   `yaml:"position,flow"`
	Zoom     float32 `yaml:"zoom"`
}

// Point is a 2D coordinate written as a flow sequence [x, y].
type Point [2]float32

func pointOf(v canvas.Vec2) Point { return Point{v.X, v.Y} }

func (p Point) vec() canvas.Vec2 { return canvas.Vec2{X: p[0], Y: p[1]} }

// ElementDoc stores one element. Exactly one payload pointer is set, the
// one matching Kind.
type ElementDoc struct {
	ID       uint32  `yaml:"id"`
	Kind     string  `yaml:"kind"`
	Position Point   `yaml:"position,flow"`
	Rotation float32 `yaml:"rotation,omitempty"`
	Scale    Point   `yaml:"scale,flow"`
	Hidden   bool    `yaml:"hidden,omitempty"`

	Text      *TextDoc      `yaml:"text,omitempty"`
	Rectangle *RectangleDoc `yaml:"rectangle,omitempty"`
	Arrow     *ArrowDoc     `yaml:"arrow,omitempty"`
	Image     *ImageDoc     `yaml:"image,omitempty"`
}

// TextDoc is the payload of a text label.
type TextDoc struct {
	Content  string  `yaml:"content"`
	FontSize float32 `yaml:"font_size"`
	Color    string  `yaml:"color"`
}

// RectangleDoc is the payload of a rectangle.
type RectangleDoc struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
	Border float32 `yaml:"border,omitempty"`
	Color  string  `yaml:"color"`
}

// ArrowDoc is the payload of an arrow.
type ArrowDoc struct {
	End       Point   `yaml:"end,flow"`
	Mid       *Point  `yaml:"mid,omitempty,flow"`
	Thickness float32 `yaml:"thickness"`
	HeadSize  float32 `yaml:"head_size"`
	Color     string  `yaml:"color"`
}

// ImageDoc is the payload of an image.
type ImageDoc struct {
	Filename string `yaml:"filename"`
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Data     string `yaml:"data"`
}
