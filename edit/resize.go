package edit

import (
	"fmt"

	"github.com/gogpu/canvas"
)

// MinScale is the smallest per-axis factor a resize applies, so that a
// cursor resting on the anchor never collapses elements to zero size.
const MinScale = 0.01

type resizeStart struct {
	id       uint32
	kind     canvas.Kind
	pos      canvas.Vec2
	scale    canvas.Vec2
	fontSize float32
	box      canvas.Rect
}

// Resize scales the selection about the corner opposite the dragged
// handle.
//
// The factors come from the cursor's distance to the anchor relative to
// the union box at the start of the gesture. When any selected element
// cannot scale non-uniformly (text), every element gets
// max(widthScale, heightScale) on both axes; the dragged handle then
// overshoots the cursor along the shorter axis. This is intended: the
// selection never clips to the cursor's aspect ratio.
//
// Text is scaled through its font size. The measured box can differ from
// the geometric prediction by a few pixels because glyphs are rasterized
// at whole pixel sizes.
type Resize struct {
	scene   *canvas.Scene
	cam     *canvas.Camera
	handle  Handle
	union   canvas.Rect
	anchor  canvas.Vec2
	uniform bool
	starts  []resizeStart
	applied canvas.Vec2
	done    bool
}

var _ Gesture = (*Resize)(nil)

// BeginResize captures the selection's starting state for a resize with
// the given handle.
func BeginResize(scene *canvas.Scene, cam *canvas.Camera, ids []uint32, handle Handle) (*Resize, error) {
	r := &Resize{
		scene:   scene,
		cam:     cam,
		handle:  handle,
		applied: canvas.V2(1, 1),
	}
	for _, id := range ids {
		e := scene.FindElement(id)
		if e == nil || r.tracked(id) {
			continue
		}
		st := resizeStart{
			id:    id,
			kind:  e.Kind(),
			pos:   e.Transform.Position,
			scale: e.Transform.Scale,
			box:   e.Box,
		}
		if t := e.Text(); t != nil {
			st.fontSize = t.FontSize
		}
		if st.kind.UniformScaleOnly() {
			r.uniform = true
		}
		if len(r.starts) == 0 {
			r.union = e.Box
		} else {
			r.union = r.union.Union(e.Box)
		}
		r.starts = append(r.starts, st)
	}
	if len(r.starts) == 0 {
		return nil, fmt.Errorf("begin resize: %w", ErrNoSelection)
	}
	r.anchor = handle.Anchor(r.union)
	canvas.Logger().Debug("edit: resize started",
		"handle", handle, "elements", len(r.starts), "uniform", r.uniform)
	return r, nil
}

func (r *Resize) tracked(id uint32) bool {
	for _, s := range r.starts {
		if s.id == id {
			return true
		}
	}
	return false
}

// Anchor returns the fixed corner of the union box.
func (r *Resize) Anchor() canvas.Vec2 { return r.anchor }

// Union returns the union box captured at the start of the gesture.
func (r *Resize) Union() canvas.Rect { return r.union }

// Uniform reports whether the selection is constrained to uniform scaling.
func (r *Resize) Uniform() bool { return r.uniform }

// Applied returns the scale factors applied by the last Update.
func (r *Resize) Applied() canvas.Vec2 { return r.applied }

// Update resizes the selection for the cursor's current screen position.
func (r *Resize) Update(cursor canvas.Vec2) {
	if r.done {
		return
	}
	r.apply(r.Scales(r.cam.ScreenToWorld(cursor)))
}

// Scales computes the per-axis factors for a world-space cursor position
// without applying them.
func (r *Resize) Scales(cursor canvas.Vec2) canvas.Vec2 {
	sx := axisScale(cursor.X-r.anchor.X, r.union.W)
	sy := axisScale(cursor.Y-r.anchor.Y, r.union.H)
	if r.uniform {
		s := max(sx, sy)
		return canvas.V2(s, s)
	}
	return canvas.V2(sx, sy)
}

func axisScale(distance, extent float32) float32 {
	if extent <= 0 {
		return 1
	}
	if distance < 0 {
		distance = -distance
	}
	return max(distance/extent, MinScale)
}

func (r *Resize) apply(s canvas.Vec2) {
	r.applied = s
	for _, st := range r.starts {
		e := r.scene.FindElement(st.id)
		if e == nil {
			continue
		}
		// Offsets from the anchor scale, so relative placement inside the
		// union box is preserved and the anchor stays put.
		e.Transform.Position = r.anchor.Add(st.pos.Sub(r.anchor).MulComp(s))
		switch d := e.Data.(type) {
		case *canvas.Text:
			d.FontSize = st.fontSize * s.X
			e.Transform.Scale = st.scale
		default:
			e.Transform.Scale = st.scale.MulComp(s)
		}
		_ = r.scene.UpdateElementBoundingBox(st.id)
	}
}

// End finishes the resize.
func (r *Resize) End() {
	if r.done {
		return
	}
	r.done = true
	for _, st := range r.starts {
		_ = r.scene.UpdateElementBoundingBox(st.id)
	}
}

// Cancel restores every element's starting position, scale and font size.
func (r *Resize) Cancel() {
	if r.done {
		return
	}
	r.done = true
	for _, st := range r.starts {
		e := r.scene.FindElement(st.id)
		if e == nil {
			continue
		}
		e.Transform.Position = st.pos
		e.Transform.Scale = st.scale
		if t := e.Text(); t != nil {
			t.FontSize = st.fontSize
		}
		e.Box = st.box
	}
	r.applied = canvas.V2(1, 1)
}
