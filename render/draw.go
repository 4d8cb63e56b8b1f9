// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"math"

	"github.com/gogpu/canvas"
)

// Options controls a Draw call.
type Options struct {
	// Cull skips world elements whose box lies outside the viewport.
	Cull bool
}

// DrawOption configures Draw.
type DrawOption func(*Options)

// WithCulling enables or disables view culling. It is on by default.
func WithCulling(on bool) DrawOption {
	return func(o *Options) {
		o.Cull = on
	}
}

// Stats reports what a Draw call did.
type Stats struct {
	World  int
	Screen int
	Culled int
	Hidden int
}

// Draw renders every visible element of scene through b: world-space
// elements in z-order, then screen-space elements in z-order.
func Draw(scene *canvas.Scene, cam *canvas.Camera, b Backend, opts ...DrawOption) (Stats, error) {
	o := Options{Cull: true}
	for _, opt := range opts {
		opt(&o)
	}

	var st Stats
	w := int(math.Ceil(float64(cam.ViewportWidth)))
	h := int(math.Ceil(float64(cam.ViewportHeight)))
	if err := b.Begin(w, h); err != nil {
		return st, fmt.Errorf("render: begin frame: %w", err)
	}

	view := cam.VisibleWorld()
	world := worldMapper{cam: cam}
	for e := range scene.World() {
		if !e.Visible {
			st.Hidden++
			continue
		}
		if o.Cull && !view.Intersects(e.Box) {
			st.Culled++
			continue
		}
		drawElement(b, e, world)
		st.World++
	}
	for e := range scene.All() {
		if e.Space() != canvas.SpaceScreen {
			continue
		}
		if !e.Visible {
			st.Hidden++
			continue
		}
		drawElement(b, e, screenMapper{})
		st.Screen++
	}

	if err := b.End(); err != nil {
		return st, fmt.Errorf("render: end frame: %w", err)
	}
	canvas.Logger().Debug("render: frame drawn", "world", st.World, "screen", st.Screen, "culled", st.Culled)
	return st, nil
}

// mapper converts element-space points and lengths to viewport pixels.
type mapper interface {
	point(p canvas.Vec2) canvas.Vec2
	length(l float32) float32
	// down returns the screen offset of a displacement of d units below
	// the element's top edge.
	down(d float32) float32
}

type worldMapper struct{ cam *canvas.Camera }

func (m worldMapper) point(p canvas.Vec2) canvas.Vec2 { return m.cam.WorldToScreen(p) }
func (m worldMapper) length(l float32) float32      { return l * m.cam.Zoom }
func (m worldMapper) down(d float32) float32        { return d * m.cam.Zoom }

type screenMapper struct{}

func (screenMapper) point(p canvas.Vec2) canvas.Vec2 { return p }
func (screenMapper) length(l float32) float32      { return l }
func (screenMapper) down(d float32) float32        { return d }

func drawElement(b Backend, e *canvas.Element, m mapper) {
	pos := e.Transform.Position
	s := e.Transform.Scale
	switch d := e.Data.(type) {
	case *canvas.Text:
		size := d.FontSize * s.Y
		pitch := size * canvas.LineHeightFactor
		origin := m.point(pos)
		for i, line := range canvas.Lines(d.Content) {
			if line == "" {
				continue
			}
			at := canvas.Vec2{X: origin.X, Y: origin.Y + m.down(float32(i)*pitch)}
			b.Text(at, line, m.length(size), d.Color)
		}
	case *canvas.Rectangle:
		b.Rect(boxAt(m, pos, d.Width*s.X, d.Height*s.Y), m.length(d.Border), d.Color)
	case *canvas.Image:
		b.Image(boxAt(m, pos, float32(d.PixelWidth)*s.X, float32(d.PixelHeight)*s.Y), d.Texture)
	case *canvas.Arrow:
		pts := d.Points(pos, s)
		head := d.Head(pts)
		screen := make([]canvas.Vec2, len(pts))
		for i, p := range pts {
			screen[i] = m.point(p)
		}
		// End the shaft at the head's base so wide strokes do not poke
		// through the tip.
		screen[len(screen)-1] = m.point(head[1].Lerp(head[2], 0.5))
		b.Polyline(screen, m.length(d.Thickness), d.Color)
		b.Triangle([3]canvas.Vec2{m.point(head[0]), m.point(head[1]), m.point(head[2])}, d.Color)
	}
}

func boxAt(m mapper, topLeft canvas.Vec2, w, h float32) ScreenRect {
	p := m.point(topLeft)
	return ScreenRect{X: p.X, Y: p.Y, W: m.length(w), H: m.down(h)}
}
