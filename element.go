package canvas

import (
	"bytes"
	"strings"
)

// Space selects the coordinate system an element lives in.
// It is fixed when the element is created.
type Space uint8

const (
	// SpaceWorld elements follow the camera's pan and zoom.
	SpaceWorld Space = iota
	// SpaceScreen elements are fixed viewport overlays (status text, hints).
	SpaceScreen
)

// String returns the space name.
func (s Space) String() string {
	switch s {
	case SpaceWorld:
		return "world"
	case SpaceScreen:
		return "screen"
	default:
		return "unknown"
	}
}

// Kind is the type tag of an element payload.
type Kind uint8

const (
	KindText Kind = iota
	KindRectangle
	KindArrow
	KindImage
)

var kindNames = [...]string{
	KindText:      "text",
	KindRectangle: "rectangle",
	KindArrow:     "arrow",
	KindImage:     "image",
}

// String returns the kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return 0, false
}

// UniformScaleOnly reports whether elements of this kind must be scaled by
// the same factor on both axes. Text is the only such kind because its
// size is driven by a single font size.
func (k Kind) UniformScaleOnly() bool {
	return k == KindText
}

// Transform places an element. Rotation is carried but no tool edits it yet.
type Transform struct {
	Position Vec2
	Rotation float32
	Scale    Vec2
}

// IdentityTransform returns a transform at p with unit scale.
func IdentityTransform(p Vec2) Transform {
	return Transform{Position: p, Scale: Vec2{X: 1, Y: 1}}
}

// Payload is the closed set of element contents: *Text, *Rectangle,
// *Arrow and *Image. Code that handles payloads switches on the concrete
// type.
type Payload interface {
	Kind() Kind
	clone() Payload
}

// Text is a (possibly multi-line) label.
type Text struct {
	Content  string
	FontSize float32
	Color    RGBA
}

// Rectangle is an outlined box. Border is the stroke thickness; zero
// means filled.
type Rectangle struct {
	Width, Height float32
	Border        float32
	Color         RGBA
}

// Arrow is a straight or single-bend arrow from the element position.
// End and Mid are offsets from the position; Mid is used only when HasMid
// is set.
type Arrow struct {
	End       Vec2
	Mid       Vec2
	HasMid    bool
	Thickness float32
	HeadSize  float32
	Color     RGBA
}

// Texture is a decoded, drawable image handle owned by the render side.
type Texture interface {
	Width() int
	Height() int
}

// Image is a placed bitmap. Data holds the raw file bytes and Filename the
// original name, kept so the image can be re-exported unchanged.
type Image struct {
	Texture     Texture
	PixelWidth  int
	PixelHeight int
	Data        []byte
	Filename    string
}

func (*Text) Kind() Kind      { return KindText }
func (*Rectangle) Kind() Kind { return KindRectangle }
func (*Arrow) Kind() Kind     { return KindArrow }
func (*Image) Kind() Kind     { return KindImage }

func (t *Text) clone() Payload {
	c := *t
	c.Content = strings.Clone(t.Content)
	return &c
}

func (r *Rectangle) clone() Payload {
	c := *r
	return &c
}

func (a *Arrow) clone() Payload {
	c := *a
	return &c
}

func (im *Image) clone() Payload {
	c := *im
	c.Data = bytes.Clone(im.Data)
	c.Filename = strings.Clone(im.Filename)
	return &c
}

// Element is the unit of scene content.
//
// Box is stored, not derived: it is the hit-testing and bounds predicate
// and must be refreshed through Scene.UpdateElementBoundingBox after any
// change to position, scale, font size or text.
type Element struct {
	ID        uint32
	Transform Transform
	Visible   bool
	Box       Rect
	Data      Payload

	space Space
}

// Space returns the coordinate space the element was created in.
func (e *Element) Space() Space { return e.space }

// Kind returns the payload's type tag.
func (e *Element) Kind() Kind { return e.Data.Kind() }

// Text returns the text payload, or nil for other kinds.
func (e *Element) Text() *Text {
	t, _ := e.Data.(*Text)
	return t
}

// Rectangle returns the rectangle payload, or nil for other kinds.
func (e *Element) Rectangle() *Rectangle {
	r, _ := e.Data.(*Rectangle)
	return r
}

// Arrow returns the arrow payload, or nil for other kinds.
func (e *Element) Arrow() *Arrow {
	a, _ := e.Data.(*Arrow)
	return a
}

// Image returns the image payload, or nil for other kinds.
func (e *Element) Image() *Image {
	im, _ := e.Data.(*Image)
	return im
}

// Clone returns a deep copy of the element. Text and image bytes are
// copied; the texture handle is shared.
func (e *Element) Clone() *Element {
	c := *e
	if e.Data != nil {
		c.Data = e.Data.clone()
	}
	return &c
}

// ColorOf returns the element's color. Images report White.
func (e *Element) ColorOf() RGBA {
	switch d := e.Data.(type) {
	case *Text:
		return d.Color
	case *Rectangle:
		return d.Color
	case *Arrow:
		return d.Color
	default:
		return White
	}
}

// NewWorldElement builds a detached world-space element from parts. It is
// used to rebuild elements from history snapshots; the caller must refresh
// Box or copy it from a trusted source.
func NewWorldElement(id uint32, tr Transform, visible bool, box Rect, data Payload) *Element {
	return &Element{ID: id, Transform: tr, Visible: visible, Box: box, Data: data}
}

// release drops references to owned buffers.
func (e *Element) release() {
	if im, ok := e.Data.(*Image); ok {
		im.Data = nil
		im.Texture = nil
	}
	e.Data = nil
}

// ElementOption configures an element during creation.
type ElementOption func(*Element)

// InScreenSpace places the element in the fixed overlay space.
func InScreenSpace() ElementOption {
	return func(e *Element) { e.space = SpaceScreen }
}

// Hidden creates the element invisible.
func Hidden() ElementOption {
	return func(e *Element) { e.Visible = false }
}

// WithMidpoint bends an arrow through mid (an offset from its start).
// It has no effect on other kinds.
func WithMidpoint(mid Vec2) ElementOption {
	return func(e *Element) {
		if a, ok := e.Data.(*Arrow); ok {
			a.Mid = mid
			a.HasMid = true
		}
	}
}

// WithScale sets the initial scale.
func WithScale(s Vec2) ElementOption {
	return func(e *Element) { e.Transform.Scale = s }
}
