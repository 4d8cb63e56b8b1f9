package canvas

import (
	"fmt"
	"iter"

	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/canvas/text"
)

// Scene is the ordered collection of elements. Order is z-order, back to
// front. The scene owns every element's buffers and hands out ids from a
// monotonically increasing counter; ids are never reused while live.
//
// Lookups are linear scans. Scenes hold tens to low hundreds of elements,
// so this is a known scaling limit rather than a correctness concern.
//
// A Scene is not safe for concurrent use; all calls are expected on the
// main loop.
type Scene struct {
	elements []*Element
	nextID   uint32
	measurer TextMeasurer
}

// NewScene creates an empty scene.
func NewScene(opts ...SceneOption) *Scene {
	o := defaultSceneOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.measurer == nil {
		m, err := text.Default()
		if err != nil {
			Logger().Warn("canvas: default text measurer unavailable, using fixed advance", "err", err)
			o.measurer = FixedAdvance(0.6)
		} else {
			o.measurer = m
		}
	}
	return &Scene{
		elements: make([]*Element, 0, o.capacity),
		nextID:   o.firstID,
		measurer: o.measurer,
	}
}

// Measurer returns the text measurer used for label bounds.
func (s *Scene) Measurer() TextMeasurer { return s.measurer }

// Len returns the number of live elements.
func (s *Scene) Len() int { return len(s.elements) }

// NextID returns the id the next created element will receive.
func (s *Scene) NextID() uint32 { return s.nextID }

// SetNextID overrides the id counter. History restore uses it to jump past
// ids still referenced by snapshots; loaders use it after assigning ids.
func (s *Scene) SetNextID(id uint32) { s.nextID = id }

// All iterates over every element in z-order, back to front.
func (s *Scene) All() iter.Seq[*Element] {
	return func(yield func(*Element) bool) {
		for _, e := range s.elements {
			if !yield(e) {
				return
			}
		}
	}
}

// World iterates over world-space elements in z-order. This is the
// sequence persisted to disk and captured by history.
func (s *Scene) World() iter.Seq[*Element] {
	return func(yield func(*Element) bool) {
		for _, e := range s.elements {
			if e.space != SpaceWorld {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

func (s *Scene) add(e *Element, opts []ElementOption) uint32 {
	e.ID = s.nextID
	s.nextID++
	e.Visible = true
	if e.Transform.Scale == (Vec2{}) {
		e.Transform.Scale = Vec2{X: 1, Y: 1}
	}
	for _, opt := range opts {
		opt(e)
	}
	e.Box = e.Bounds(s.measurer)
	s.elements = append(s.elements, e)
	Logger().Debug("canvas: element added", "id", e.ID, "kind", e.Kind(), "space", e.space)
	return e.ID
}

// AddTextLabel adds a text label whose top-left corner is at pos and
// returns its id. The content is normalized to NFC and copied.
func (s *Scene) AddTextLabel(pos Vec2, content string, fontSize float32, c RGBA, opts ...ElementOption) uint32 {
	return s.add(&Element{
		Transform: IdentityTransform(pos),
		Data:      &Text{Content: norm.NFC.String(content), FontSize: fontSize, Color: c},
	}, opts)
}

// AddRectangle adds a rectangle whose top-left corner is at pos and returns
// its id.
func (s *Scene) AddRectangle(pos Vec2, width, height, border float32, c RGBA, opts ...ElementOption) uint32 {
	return s.add(&Element{
		Transform: IdentityTransform(pos),
		Data:      &Rectangle{Width: width, Height: height, Border: border, Color: c},
	}, opts)
}

// AddArrow adds an arrow starting at start and pointing to start+end.
// Use WithMidpoint to bend it.
func (s *Scene) AddArrow(start, end Vec2, thickness, headSize float32, c RGBA, opts ...ElementOption) uint32 {
	return s.add(&Element{
		Transform: IdentityTransform(start),
		Data:      &Arrow{End: end, Thickness: thickness, HeadSize: headSize, Color: c},
	}, opts)
}

// AddImage adds an image whose top-left corner is at pos. data and filename
// are the original file contents, copied so the scene owns them.
func (s *Scene) AddImage(pos Vec2, tex Texture, data []byte, filename string, opts ...ElementOption) (uint32, error) {
	if tex == nil {
		return 0, ErrNilTexture
	}
	im := &Image{
		Texture:     tex,
		PixelWidth:  tex.Width(),
		PixelHeight: tex.Height(),
		Data:        data,
		Filename:    filename,
	}
	return s.add(&Element{
		Transform: IdentityTransform(pos),
		Data:      im.clone(),
	}, opts), nil
}

// FindElement returns the live element with the given id, or nil.
func (s *Scene) FindElement(id uint32) *Element {
	if i := s.index(id); i >= 0 {
		return s.elements[i]
	}
	return nil
}

func (s *Scene) index(id uint32) int {
	for i, e := range s.elements {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// RemoveElement removes an element and releases its buffers. The last
// element takes the removed element's slot, so the former topmost element
// changes z-order.
func (s *Scene) RemoveElement(id uint32) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("remove %d: %w", id, ErrElementNotFound)
	}
	e := s.elements[i]
	last := len(s.elements) - 1
	s.elements[i] = s.elements[last]
	s.elements[last] = nil
	s.elements = s.elements[:last]
	e.release()
	Logger().Debug("canvas: element removed", "id", id)
	return nil
}

// UpdateElementBoundingBox recomputes the stored box from the element's
// current transform and content.
func (s *Scene) UpdateElementBoundingBox(id uint32) error {
	e := s.FindElement(id)
	if e == nil {
		return fmt.Errorf("update bounds %d: %w", id, ErrElementNotFound)
	}
	if e.Data == nil {
		return fmt.Errorf("update bounds %d: %w", id, ErrInvalidPayload)
	}
	e.Box = e.Bounds(s.measurer)
	return nil
}

// HitTest returns the topmost visible world-space element whose box
// contains the screen point.
func (s *Scene) HitTest(screen Vec2, cam *Camera) (uint32, bool) {
	p := cam.ScreenToWorld(screen)
	for i := len(s.elements) - 1; i >= 0; i-- {
		e := s.elements[i]
		if !e.Visible || e.space != SpaceWorld {
			continue
		}
		if e.Box.Contains(p) {
			return e.ID, true
		}
	}
	return 0, false
}

// UnionBox returns the union of the boxes of the given live elements.
// Unknown ids are ignored.
func (s *Scene) UnionBox(ids []uint32) (Rect, bool) {
	var u Rect
	found := false
	for _, id := range ids {
		e := s.FindElement(id)
		if e == nil {
			continue
		}
		if !found {
			u = e.Box
			found = true
			continue
		}
		u = u.Union(e.Box)
	}
	return u, found
}

// SetColor changes the color of a text, rectangle or arrow element.
func (s *Scene) SetColor(id uint32, c RGBA) error {
	e := s.FindElement(id)
	if e == nil {
		return fmt.Errorf("set color %d: %w", id, ErrElementNotFound)
	}
	switch d := e.Data.(type) {
	case *Text:
		d.Color = c
	case *Rectangle:
		d.Color = c
	case *Arrow:
		d.Color = c
	default:
		return fmt.Errorf("set color %d (%s): %w", id, e.Kind(), ErrInvalidPayload)
	}
	return nil
}

// SetText replaces a label's content and refreshes its box.
func (s *Scene) SetText(id uint32, content string) error {
	e := s.FindElement(id)
	if e == nil {
		return fmt.Errorf("set text %d: %w", id, ErrElementNotFound)
	}
	t := e.Text()
	if t == nil {
		return fmt.Errorf("set text %d (%s): %w", id, e.Kind(), ErrInvalidPayload)
	}
	t.Content = norm.NFC.String(content)
	e.Box = e.Bounds(s.measurer)
	return nil
}

// SetFontSize changes a label's font size and refreshes its box.
func (s *Scene) SetFontSize(id uint32, size float32) error {
	e := s.FindElement(id)
	if e == nil {
		return fmt.Errorf("set font size %d: %w", id, ErrElementNotFound)
	}
	t := e.Text()
	if t == nil {
		return fmt.Errorf("set font size %d (%s): %w", id, e.Kind(), ErrInvalidPayload)
	}
	t.FontSize = size
	e.Box = e.Bounds(s.measurer)
	return nil
}

// BringToFront moves an element to the top of the z-order.
func (s *Scene) BringToFront(id uint32) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("bring to front %d: %w", id, ErrElementNotFound)
	}
	e := s.elements[i]
	copy(s.elements[i:], s.elements[i+1:])
	s.elements[len(s.elements)-1] = e
	return nil
}

// SendToBack moves an element to the bottom of the z-order.
func (s *Scene) SendToBack(id uint32) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("send to back %d: %w", id, ErrElementNotFound)
	}
	e := s.elements[i]
	copy(s.elements[1:i+1], s.elements[:i])
	s.elements[0] = e
	return nil
}

// ReplaceWorld removes every world-space element and installs elems in
// their given order, forced into world space. Screen-space elements are
// kept and stay above the restored content. Boxes are taken as given.
func (s *Scene) ReplaceWorld(elems []*Element) {
	kept := make([]*Element, 0, len(elems)+len(s.elements))
	kept = append(kept, elems...)
	for i, e := range s.elements {
		if e.space == SpaceWorld {
			e.release()
		} else {
			kept = append(kept, e)
		}
		s.elements[i] = nil
	}
	for _, e := range elems {
		e.space = SpaceWorld
	}
	s.elements = kept
}

// Clear removes every element and releases its buffers. The id counter is
// not reset.
func (s *Scene) Clear() {
	for i, e := range s.elements {
		e.release()
		s.elements[i] = nil
	}
	s.elements = s.elements[:0]
}
