package canvas

// Rect is an axis-aligned rectangle in world units.
// X is the left edge and Y is the bottom edge under the Y-up convention,
// so the top edge is Y+H.
type Rect struct {
	X, Y, W, H float32
}

// Left returns the left edge.
func (r Rect) Left() float32 { return r.X }

// Right returns the right edge.
func (r Rect) Right() float32 { return r.X + r.W }

// Bottom returns the bottom edge.
func (r Rect) Bottom() float32 { return r.Y }

// Top returns the top edge.
func (r Rect) Top() float32 { return r.Y + r.H }

// TopLeft returns the top-left corner.
func (r Rect) TopLeft() Vec2 { return Vec2{X: r.X, Y: r.Y + r.H} }

// TopRight returns the top-right corner.
func (r Rect) TopRight() Vec2 { return Vec2{X: r.X + r.W, Y: r.Y + r.H} }

// BottomLeft returns the bottom-left corner.
func (r Rect) BottomLeft() Vec2 { return Vec2{X: r.X, Y: r.Y} }

// BottomRight returns the bottom-right corner.
func (r Rect) BottomRight() Vec2 { return Vec2{X: r.X + r.W, Y: r.Y} }

// Center returns the center point.
func (r Rect) Center() Vec2 { return Vec2{X: r.X + r.W/2, Y: r.Y + r.H/2} }

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool { return r.W <= 0 || r.H <= 0 }

// Contains reports whether p lies inside the rectangle, edges included.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Intersects reports whether r and o overlap, touching edges included.
func (r Rect) Intersects(o Rect) bool {
	return r.X <= o.Right() && o.X <= r.Right() && r.Y <= o.Top() && o.Y <= r.Top()
}

// Union returns the smallest rectangle containing both r and o.
// A zero-size rectangle (W and H both 0) is treated as absent wherever it
// lies, so a point-sized box does not extend the union.
func (r Rect) Union(o Rect) Rect {
	if r.W == 0 && r.H == 0 {
		return o
	}
	if o.W == 0 && o.H == 0 {
		return r
	}
	x0 := min32(r.X, o.X)
	y0 := min32(r.Y, o.Y)
	x1 := max32(r.Right(), o.Right())
	y1 := max32(r.Top(), o.Top())
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Outset returns the rectangle grown by d on every side (shrunk if d < 0).
func (r Rect) Outset(d float32) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, W: r.W + 2*d, H: r.H + 2*d}
}

// RectFromPoints returns the bounds of the given points.
func RectFromPoints(pts ...Vec2) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	x0, y0 := pts[0].X, pts[0].Y
	x1, y1 := x0, y0
	for _, p := range pts[1:] {
		x0 = min32(x0, p.X)
		y0 = min32(y0, p.Y)
		x1 = max32(x1, p.X)
		y1 = max32(y1, p.Y)
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}
