package edit

import (
	"fmt"

	"github.com/gogpu/canvas"
)

// Gesture is a multi-frame edit driven by the cursor.
type Gesture interface {
	// Update applies the gesture for the cursor's current screen position.
	Update(cursor canvas.Vec2)
	// End finishes the gesture and refreshes bounding boxes.
	End()
	// Cancel reverts every element touched by the gesture to its state at
	// the start.
	Cancel()
}

type dragStart struct {
	id  uint32
	pos canvas.Vec2
}

// Drag moves the selected elements with the cursor.
type Drag struct {
	scene       *canvas.Scene
	cam         *canvas.Camera
	primary     uint32
	cursorStart canvas.Vec2
	starts      []dragStart
	done        bool
}

var _ Gesture = (*Drag)(nil)

// BeginDrag starts moving primary together with the other ids. cursor is
// the screen position of the press. Ids that are not live are skipped;
// primary must be live.
func BeginDrag(scene *canvas.Scene, cam *canvas.Camera, primary uint32, ids []uint32, cursor canvas.Vec2) (*Drag, error) {
	if scene.FindElement(primary) == nil {
		return nil, fmt.Errorf("begin drag %d: %w", primary, ErrNoSelection)
	}
	d := &Drag{
		scene:       scene,
		cam:         cam,
		primary:     primary,
		cursorStart: cam.ScreenToWorld(cursor),
	}
	d.track(primary)
	for _, id := range ids {
		if id != primary {
			d.track(id)
		}
	}
	canvas.Logger().Debug("edit: drag started", "primary", primary, "elements", len(d.starts))
	return d, nil
}

func (d *Drag) track(id uint32) {
	for _, s := range d.starts {
		if s.id == id {
			return
		}
	}
	if e := d.scene.FindElement(id); e != nil {
		d.starts = append(d.starts, dragStart{id: id, pos: e.Transform.Position})
	}
}

// Primary returns the element that was clicked to start the drag.
func (d *Drag) Primary() uint32 { return d.primary }

// Update moves every element by the world-space cursor displacement since
// the press.
func (d *Drag) Update(cursor canvas.Vec2) {
	if d.done {
		return
	}
	delta := d.cam.ScreenToWorld(cursor).Sub(d.cursorStart)
	for _, s := range d.starts {
		e := d.scene.FindElement(s.id)
		if e == nil {
			continue
		}
		e.Transform.Position = s.pos.Add(delta)
		_ = d.scene.UpdateElementBoundingBox(s.id)
	}
}

// End finishes the drag.
func (d *Drag) End() {
	if d.done {
		return
	}
	d.done = true
	d.refresh()
}

// Cancel puts every element back where it was when the drag started.
func (d *Drag) Cancel() {
	if d.done {
		return
	}
	d.done = true
	for _, s := range d.starts {
		if e := d.scene.FindElement(s.id); e != nil {
			e.Transform.Position = s.pos
		}
	}
	d.refresh()
}

func (d *Drag) refresh() {
	for _, s := range d.starts {
		_ = d.scene.UpdateElementBoundingBox(s.id)
	}
}
