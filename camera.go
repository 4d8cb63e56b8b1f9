package canvas

// Default camera limits.
const (
	DefaultMinZoom = 0.1
	DefaultMaxZoom = 10
)

// Camera maps between world space (Y-up, pannable, zoomable) and screen
// space (viewport pixels, Y-down). Position is the world point shown at the
// center of the viewport.
//
// A Camera is owned by the application loop and passed by reference to the
// scene and the transform editor.
type Camera struct {
	Position       Vec2
	Zoom           float32
	MinZoom        float32
	MaxZoom        float32
	ViewportWidth  float32
	ViewportHeight float32
}

// CameraOption configures a Camera during creation.
type CameraOption func(*Camera)

// WithZoomLimits sets the zoom clamp range. Invalid ranges are ignored.
func WithZoomLimits(minZoom, maxZoom float32) CameraOption {
	return func(c *Camera) {
		if minZoom > 0 && maxZoom >= minZoom {
			c.MinZoom = minZoom
			c.MaxZoom = maxZoom
		}
	}
}

// WithZoom sets the initial zoom. It is clamped to the zoom limits.
func WithZoom(zoom float32) CameraOption {
	return func(c *Camera) {
		c.Zoom = zoom
	}
}

// WithPosition sets the initial world point at the viewport center.
func WithPosition(p Vec2) CameraOption {
	return func(c *Camera) {
		c.Position = p
	}
}

// NewCamera creates a camera for a viewport of the given pixel size.
//
// Example:
//
//	cam := canvas.NewCamera(1280, 720, canvas.WithZoomLimits(0.25, 4))
func NewCamera(viewportWidth, viewportHeight float32, opts ...CameraOption) *Camera {
	c := &Camera{
		Zoom:           1,
		MinZoom:        DefaultMinZoom,
		MaxZoom:        DefaultMaxZoom,
		ViewportWidth:  viewportWidth,
		ViewportHeight: viewportHeight,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Zoom = clamp32(c.Zoom, c.MinZoom, c.MaxZoom)
	return c
}

// Resize updates the viewport extent, e.g. after a window resize.
func (c *Camera) Resize(width, height float32) {
	c.ViewportWidth = width
	c.ViewportHeight = height
}

// WorldToScreen maps a world point to viewport pixels.
func (c *Camera) WorldToScreen(p Vec2) Vec2 {
	d := p.Sub(c.Position).Mul(c.Zoom)
	return Vec2{
		X: d.X + c.ViewportWidth/2,
		Y: -d.Y + c.ViewportHeight/2,
	}
}

// ScreenToWorld maps viewport pixels to a world point.
// It is the exact inverse of WorldToScreen.
func (c *Camera) ScreenToWorld(p Vec2) Vec2 {
	d := Vec2{
		X: p.X - c.ViewportWidth/2,
		Y: -(p.Y - c.ViewportHeight/2),
	}
	return d.Div(c.Zoom).Add(c.Position)
}

// ScreenDeltaToWorld converts a screen-space displacement to world space.
func (c *Camera) ScreenDeltaToWorld(d Vec2) Vec2 {
	return Vec2{X: d.X / c.Zoom, Y: -d.Y / c.Zoom}
}

// Pan moves the camera by a screen-space delta. The delta is converted to
// world units and added to Position, so passing the negated mouse movement
// makes the content follow the cursor.
func (c *Camera) Pan(screenDelta Vec2) {
	c.Position = c.Position.Add(c.ScreenDeltaToWorld(screenDelta))
}

// ZoomAt changes the zoom by delta while keeping the world point under
// cursor fixed on screen. The new zoom is clamped to [MinZoom, MaxZoom];
// the anchor holds even when the delta is clamped.
func (c *Camera) ZoomAt(cursor Vec2, delta float32) {
	before := c.ScreenToWorld(cursor)
	c.Zoom = clamp32(c.Zoom+delta, c.MinZoom, c.MaxZoom)
	after := c.ScreenToWorld(cursor)
	c.Position = c.Position.Add(before.Sub(after))
}

// VisibleWorld returns the world rectangle covered by the viewport.
func (c *Camera) VisibleWorld() Rect {
	tl := c.ScreenToWorld(Vec2{})
	br := c.ScreenToWorld(Vec2{X: c.ViewportWidth, Y: c.ViewportHeight})
	return RectFromPoints(tl, br)
}
