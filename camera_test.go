package canvas

import (
	"math"
	"testing"
)

const eps = 1e-4

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera(800, 600)
	if c.Zoom != 1 {
		t.Errorf("Zoom = %v, want 1", c.Zoom)
	}
	if c.MinZoom != DefaultMinZoom || c.MaxZoom != DefaultMaxZoom {
		t.Errorf("limits = [%v, %v], want [%v, %v]", c.MinZoom, c.MaxZoom, DefaultMinZoom, DefaultMaxZoom)
	}
}

func TestNewCameraOptions(t *testing.T) {
	c := NewCamera(800, 600, WithZoomLimits(0.5, 2), WithZoom(5), WithPosition(V2(10, 20)))
	if c.Zoom != 2 {
		t.Errorf("Zoom = %v, want clamped 2", c.Zoom)
	}
	if c.Position != V2(10, 20) {
		t.Errorf("Position = %v, want (10,20)", c.Position)
	}

	bad := NewCamera(800, 600, WithZoomLimits(3, 1))
	if bad.MinZoom != DefaultMinZoom {
		t.Error("inverted zoom limits should be ignored")
	}
}

func TestWorldToScreen(t *testing.T) {
	c := NewCamera(800, 600)

	tests := []struct {
		name  string
		world Vec2
		want  Vec2
	}{
		{"origin at center", V2(0, 0), V2(400, 300)},
		{"world up is screen up", V2(0, 100), V2(400, 200)},
		{"world right is screen right", V2(100, 0), V2(500, 300)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.WorldToScreen(tt.world); !got.ApproxEqual(tt.want, eps) {
				t.Errorf("WorldToScreen(%v) = %v, want %v", tt.world, got, tt.want)
			}
		})
	}

	c.Zoom = 2
	c.Position = V2(50, 50)
	if got := c.WorldToScreen(V2(60, 40)); !got.ApproxEqual(V2(420, 320), eps) {
		t.Errorf("zoomed WorldToScreen = %v, want (420,320)", got)
	}
}

func TestScreenWorldRoundTrip(t *testing.T) {
	cameras := []*Camera{
		NewCamera(800, 600),
		NewCamera(1920, 1080, WithZoom(0.37), WithPosition(V2(-250.5, 1200))),
		NewCamera(640, 480, WithZoom(7.5), WithPosition(V2(3.25, -9.75))),
	}
	points := []Vec2{V2(0, 0), V2(123.5, -77.25), V2(-999, 512), V2(0.001, 0.002)}

	for ci, c := range cameras {
		for _, p := range points {
			got := c.ScreenToWorld(c.WorldToScreen(p))
			if tol := roundTripTolerance(c, p); !got.ApproxEqual(p, tol) {
				t.Errorf("camera %d: ScreenToWorld(WorldToScreen(%v)) = %v", ci, p, got)
			}
		}
	}
}

// roundTripTolerance bounds the float32 error of a screen round trip: a
// few ulps at the screen magnitude, divided by zoom, plus a few at the
// world magnitude. It is never tighter than eps.
func roundTripTolerance(c *Camera, p Vec2) float32 {
	s := c.WorldToScreen(p)
	screen := max(abs32(s.X), abs32(s.Y), c.ViewportWidth/2, c.ViewportHeight/2)
	world := max(abs32(p.X), abs32(p.Y), abs32(c.Position.X), abs32(c.Position.Y))
	return max(eps*max32(1, max32(abs32(p.X), abs32(p.Y))), 4*(ulp32(screen)/c.Zoom+ulp32(world)))
}

func ulp32(x float32) float32 {
	return math.Nextafter32(x, float32(math.Inf(1))) - x
}

func TestRoundTripToleranceIsTight(t *testing.T) {
	c := NewCamera(1920, 1080, WithZoom(0.37), WithPosition(V2(-250.5, 1200)))
	if tol := roundTripTolerance(c, V2(0, 0)); tol > 2e-3 {
		t.Errorf("tolerance = %v, want <= 2e-3", tol)
	}
}

func TestPan(t *testing.T) {
	c := NewCamera(800, 600, WithZoom(2))
	c.Pan(V2(10, 20))
	if want := V2(5, -10); !c.Position.ApproxEqual(want, eps) {
		t.Errorf("Position after Pan = %v, want %v", c.Position, want)
	}
}

func TestZoomAtKeepsCursorAnchored(t *testing.T) {
	tests := []struct {
		name   string
		cursor Vec2
		delta  float32
	}{
		{"zoom in at center", V2(400, 300), 0.5},
		{"zoom in off center", V2(100, 50), 1.25},
		{"zoom out corner", V2(799, 599), -0.5},
		{"clamped above max", V2(600, 100), 100},
		{"clamped below min", V2(20, 580), -100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCamera(800, 600, WithPosition(V2(40, -30)))
			before := c.ScreenToWorld(tt.cursor)
			c.ZoomAt(tt.cursor, tt.delta)
			after := c.ScreenToWorld(tt.cursor)
			if !before.ApproxEqual(after, eps) {
				t.Errorf("world under cursor moved: %v -> %v", before, after)
			}
			if c.Zoom < c.MinZoom || c.Zoom > c.MaxZoom {
				t.Errorf("Zoom = %v, outside [%v, %v]", c.Zoom, c.MinZoom, c.MaxZoom)
			}
		})
	}
}

func TestVisibleWorld(t *testing.T) {
	c := NewCamera(800, 600, WithZoom(2))
	r := c.VisibleWorld()
	want := Rect{X: -200, Y: -150, W: 400, H: 300}
	if r != want {
		t.Errorf("VisibleWorld() = %+v, want %+v", r, want)
	}
}
