package edit

import "github.com/gogpu/canvas"

// Handle names a corner resize handle of a bounding box.
type Handle uint8

const (
	TopLeft Handle = iota
	TopRight
	BottomLeft
	BottomRight
)

// String returns the handle name.
func (h Handle) String() string {
	switch h {
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	case BottomLeft:
		return "bottom-left"
	case BottomRight:
		return "bottom-right"
	default:
		return "unknown"
	}
}

// Opposite returns the diagonally opposite handle.
func (h Handle) Opposite() Handle {
	return 3 - h
}

// Corner returns the handle's position on r.
func (h Handle) Corner(r canvas.Rect) canvas.Vec2 {
	switch h {
	case TopLeft:
		return r.TopLeft()
	case TopRight:
		return r.TopRight()
	case BottomLeft:
		return r.BottomLeft()
	default:
		return r.BottomRight()
	}
}

// Anchor returns the corner held fixed while this handle is dragged.
func (h Handle) Anchor(r canvas.Rect) canvas.Vec2 {
	return h.Opposite().Corner(r)
}

// HandleAt returns the handle of box within radius world units of p.
// When handles overlap (tiny boxes) the first in TopLeft..BottomRight
// order wins.
func HandleAt(box canvas.Rect, p canvas.Vec2, radius float32) (Handle, bool) {
	for _, h := range []Handle{TopLeft, TopRight, BottomLeft, BottomRight} {
		if h.Corner(box).ApproxEqual(p, radius) {
			return h, true
		}
	}
	return 0, false
}
