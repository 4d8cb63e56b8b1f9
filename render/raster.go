// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/gogpu/canvas"
	"github.com/gogpu/canvas/internal/cache"
	"github.com/gogpu/canvas/text"
)

// PixelSource is implemented by textures that expose their pixels, such as
// *imageio.Texture. Textures without pixels are drawn as placeholders.
type PixelSource interface {
	Image() *image.RGBA
}

// RasterOption configures a Raster backend.
type RasterOption func(*Raster)

// WithBackground sets the color each frame is cleared to. The default is
// white.
func WithBackground(c canvas.RGBA) RasterOption {
	return func(r *Raster) {
		r.background = c
	}
}

// WithMeasurer draws text with the font and size quantization of m, so
// glyphs match the boxes computed by a scene using the same measurer.
func WithMeasurer(m *text.Measurer) RasterOption {
	return func(r *Raster) {
		r.measurer = m
	}
}

// WithScaler sets the image interpolator. The default is bilinear.
func WithScaler(s draw.Scaler) RasterOption {
	return func(r *Raster) {
		r.scaler = s
	}
}

// Raster is a software Backend drawing into an *image.RGBA with
// anti-aliased vector fills.
type Raster struct {
	dst        *image.RGBA
	z          *vector.Rasterizer
	background canvas.RGBA
	scaler     draw.Scaler

	measurer *text.Measurer
	font     *opentype.Font
	faces    *cache.Cache[float32, font.Face]
}

var _ Backend = (*Raster)(nil)

// NewRaster creates a software backend. Without WithMeasurer it uses the
// shared default text measurer.
func NewRaster(opts ...RasterOption) (*Raster, error) {
	r := &Raster{
		background: canvas.White,
		scaler:     draw.BiLinear,
		faces:      cache.New[float32, font.Face](32),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.measurer == nil {
		m, err := text.Default()
		if err != nil {
			return nil, fmt.Errorf("render: default measurer: %w", err)
		}
		r.measurer = m
	}
	f, err := opentype.Parse(r.measurer.FontData())
	if err != nil {
		return nil, fmt.Errorf("render: parse font: %w", err)
	}
	r.font = f
	return r, nil
}

// Begin implements Backend. The target is reallocated only when the size
// changes.
func (r *Raster) Begin(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("render: invalid viewport %dx%d", width, height)
	}
	if r.dst == nil || r.dst.Bounds().Dx() != width || r.dst.Bounds().Dy() != height {
		r.dst = image.NewRGBA(image.Rect(0, 0, width, height))
		r.z = vector.NewRasterizer(width, height)
	}
	draw.Draw(r.dst, r.dst.Bounds(), image.NewUniform(r.background.Color()), image.Point{}, draw.Src)
	return nil
}

// Rect implements Backend.
func (r *Raster) Rect(rect ScreenRect, border float32, c canvas.RGBA) {
	r.z.Reset(r.dst.Bounds().Dx(), r.dst.Bounds().Dy())
	quad(r.z, rect.X, rect.Y, rect.X+rect.W, rect.Y+rect.H, false)
	if border > 0 && 2*border < rect.W && 2*border < rect.H {
		quad(r.z, rect.X+border, rect.Y+border, rect.X+rect.W-border, rect.Y+rect.H-border, true)
	}
	r.fill(c)
}

// Polyline implements Backend. Segments are drawn as quads with square
// ends; widths below one pixel are widened to one.
func (r *Raster) Polyline(pts []canvas.Vec2, width float32, c canvas.RGBA) {
	if len(pts) < 2 {
		return
	}
	half := max(width, 1) / 2
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		dir := b.Sub(a).Normalize()
		if dir == (canvas.Vec2{}) {
			continue
		}
		n := dir.Perp().Mul(half)
		a = a.Sub(dir.Mul(half))
		b = b.Add(dir.Mul(half))
		r.z.Reset(r.dst.Bounds().Dx(), r.dst.Bounds().Dy())
		polygon(r.z, a.Add(n), b.Add(n), b.Sub(n), a.Sub(n))
		r.fill(c)
	}
}

// Triangle implements Backend.
func (r *Raster) Triangle(tri [3]canvas.Vec2, c canvas.RGBA) {
	r.z.Reset(r.dst.Bounds().Dx(), r.dst.Bounds().Dy())
	polygon(r.z, tri[0], tri[1], tri[2])
	r.fill(c)
}

// Text implements Backend.
func (r *Raster) Text(origin canvas.Vec2, line string, size float32, c canvas.RGBA) {
	px := r.measurer.PixelSize(size)
	face := r.faces.GetOrCreate(px, func() font.Face {
		f, err := opentype.NewFace(r.font, &opentype.FaceOptions{
			Size:    float64(px),
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			canvas.Logger().Warn("render: font face", "size", px, "err", err)
			return nil
		}
		return f
	})
	if face == nil {
		return
	}
	d := &font.Drawer{
		Dst:  r.dst,
		Src:  image.NewUniform(c.Color()),
		Face: face,
		Dot: fixed.Point26_6{
			X: toFixed(origin.X),
			Y: toFixed(origin.Y) + face.Metrics().Ascent,
		},
	}
	d.DrawString(line)
}

// Image implements Backend.
func (r *Raster) Image(rect ScreenRect, tex canvas.Texture) {
	dr := image.Rect(
		int(math.Floor(float64(rect.X))), int(math.Floor(float64(rect.Y))),
		int(math.Ceil(float64(rect.X+rect.W))), int(math.Ceil(float64(rect.Y+rect.H))),
	)
	var src *image.RGBA
	if ps, ok := tex.(PixelSource); ok {
		src = ps.Image()
	}
	if src == nil {
		r.Rect(rect, 0, placeholder)
		return
	}
	r.scaler.Scale(r.dst, dr, src, src.Bounds(), draw.Over, nil)
}

// End implements Backend.
func (r *Raster) End() error { return nil }

// Frame returns the target of the last frame, or nil before the first.
func (r *Raster) Frame() *image.RGBA { return r.dst }

// EncodePNG writes the last frame as PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	if r.dst == nil {
		return fmt.Errorf("render: encode PNG: no frame")
	}
	if err := png.Encode(w, r.dst); err != nil {
		return fmt.Errorf("render: encode PNG: %w", err)
	}
	return nil
}

// SavePNG writes the last frame to a PNG file.
func (r *Raster) SavePNG(path string) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("render: create file: %w", err)
	}
	if err := r.EncodePNG(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

var placeholder = canvas.RGBA{R: 0.8, G: 0.8, B: 0.8, A: 1}

func (r *Raster) fill(c canvas.RGBA) {
	r.z.Draw(r.dst, r.dst.Bounds(), image.NewUniform(c.Color()), image.Point{})
}

// quad adds an axis-aligned rectangle. reverse flips the winding so the
// quad cuts a hole in a previous one.
func quad(z *vector.Rasterizer, x0, y0, x1, y1 float32, reverse bool) {
	if reverse {
		polygon(z, canvas.V2(x0, y0), canvas.V2(x0, y1), canvas.V2(x1, y1), canvas.V2(x1, y0))
		return
	}
	polygon(z, canvas.V2(x0, y0), canvas.V2(x1, y0), canvas.V2(x1, y1), canvas.V2(x0, y1))
}

func polygon(z *vector.Rasterizer, pts ...canvas.Vec2) {
	z.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		z.LineTo(p.X, p.Y)
	}
	z.ClosePath()
}

func toFixed(v float32) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(float64(v) * 64))
}
