package imageio

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/gogpu/canvas"
)

// Texture is a decoded image held as premultiplied RGBA pixels.
type Texture struct {
	img *image.RGBA
}

var _ canvas.Texture = (*Texture)(nil)

// NewTexture copies img into a new texture whose bounds start at the
// origin.
func NewTexture(img image.Image) *Texture {
	b := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) {
		return &Texture{img: rgba}
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return &Texture{img: dst}
}

// Width returns the width in pixels, or 0 after Release.
func (t *Texture) Width() int {
	if t.img == nil {
		return 0
	}
	return t.img.Bounds().Dx()
}

// Height returns the height in pixels, or 0 after Release.
func (t *Texture) Height() int {
	if t.img == nil {
		return 0
	}
	return t.img.Bounds().Dy()
}

// Image returns the pixels, or nil after Release.
func (t *Texture) Image() *image.RGBA { return t.img }

// Released reports whether Release has been called.
func (t *Texture) Released() bool { return t.img == nil }

// Release drops the pixel buffer.
func (t *Texture) Release() { t.img = nil }
