// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/canvas"
	"github.com/gogpu/canvas/imageio"
)

func newRaster(t *testing.T) *Raster {
	t.Helper()
	r, err := NewRaster()
	if err != nil {
		t.Fatalf("NewRaster() error = %v", err)
	}
	return r
}

func isWhite(c color.RGBA) bool { return c == color.RGBA{R: 255, G: 255, B: 255, A: 255} }

func TestRasterRectangles(t *testing.T) {
	s := newScene()
	cam := canvas.NewCamera(100, 100)
	s.AddRectangle(canvas.V2(-10, 10), 20, 20, 0, canvas.Red)
	s.AddRectangle(canvas.V2(20, 40), 30, 30, 4, canvas.Blue)

	r := newRaster(t)
	if _, err := Draw(s, cam, r); err != nil {
		t.Fatal(err)
	}
	img := r.Frame()

	tests := []struct {
		name string
		x, y int
		want color.RGBA
	}{
		{"filled center", 50, 50, color.RGBA{R: 255, A: 255}},
		{"background", 5, 5, color.RGBA{R: 255, G: 255, B: 255, A: 255}},
		{"outline edge", 72, 25, color.RGBA{B: 255, A: 255}},
		{"outline hole", 85, 25, color.RGBA{R: 255, G: 255, B: 255, A: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := img.RGBAAt(tt.x, tt.y); got != tt.want {
				t.Errorf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestRasterText(t *testing.T) {
	s := canvas.NewScene()
	cam := canvas.NewCamera(120, 60)
	s.AddTextLabel(canvas.V2(-50, 20), "Hello", 24, canvas.Black)

	r := newRaster(t)
	if _, err := Draw(s, cam, r); err != nil {
		t.Fatal(err)
	}
	box := s.FindElement(1).Box
	tl := cam.WorldToScreen(box.TopLeft())
	br := cam.WorldToScreen(box.BottomRight())
	inked := 0
	for y := int(tl.Y); y < int(br.Y); y++ {
		for x := int(tl.X); x < int(br.X); x++ {
			if !isWhite(r.Frame().RGBAAt(x, y)) {
				inked++
			}
		}
	}
	if inked == 0 {
		t.Error("no glyph pixels inside the label box")
	}
}

func TestRasterImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := range src.Pix {
		if i%4 == 1 || i%4 == 3 {
			src.Pix[i] = 255
		}
	}
	s := newScene()
	cam := canvas.NewCamera(100, 100)
	if _, err := s.AddImage(canvas.V2(-10, 10), imageio.NewTexture(src), []byte{1}, "g.png",
		canvas.WithScale(canvas.V2(10, 10))); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddImage(canvas.V2(30, -30), fakeTexture{w: 4, h: 4}, []byte{1}, "none.png"); err != nil {
		t.Fatal(err)
	}

	r := newRaster(t)
	if _, err := Draw(s, cam, r); err != nil {
		t.Fatal(err)
	}
	if got := r.Frame().RGBAAt(50, 50); got != (color.RGBA{G: 255, A: 255}) {
		t.Errorf("image pixel = %v, want green", got)
	}
	if got := r.Frame().RGBAAt(82, 82); got != (color.RGBA{R: 204, G: 204, B: 204, A: 255}) {
		t.Errorf("placeholder pixel = %v", got)
	}
}

func TestRasterBackground(t *testing.T) {
	r, err := NewRaster(WithBackground(canvas.Black))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Draw(newScene(), canvas.NewCamera(4, 4), r); err != nil {
		t.Fatal(err)
	}
	if got := r.Frame().RGBAAt(1, 1); got != (color.RGBA{A: 255}) {
		t.Errorf("background = %v, want black", got)
	}
}

func TestRasterInvalidViewport(t *testing.T) {
	r := newRaster(t)
	if _, err := Draw(newScene(), canvas.NewCamera(0, 10), r); err == nil {
		t.Error("Draw() with zero-width viewport should fail")
	}
}

func TestRasterSavePNG(t *testing.T) {
	r := newRaster(t)
	if err := r.EncodePNG(nil); err == nil {
		t.Error("EncodePNG() before the first frame should fail")
	}
	if _, err := Draw(newScene(), canvas.NewCamera(16, 8), r); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := r.SavePNG(path); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 16 || cfg.Height != 8 {
		t.Errorf("saved size = %dx%d, want 16x8", cfg.Width, cfg.Height)
	}
}
