package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gogpu/canvas"
)

// Decode decodes raw image file bytes and returns the texture together
// with the detected format name ("png", "jpeg", "gif", "bmp", "webp",
// "tiff").
func Decode(data []byte) (*Texture, string, error) {
	if len(data) == 0 {
		return nil, "", ErrEmptyData
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, "", ErrUnsupportedFormat
		}
		return nil, "", fmt.Errorf("imageio: decode %s: %w", format, err)
	}
	tex := NewTexture(img)
	canvas.Logger().Debug("imageio: decoded", "format", format, "width", tex.Width(), "height", tex.Height())
	return tex, format, nil
}

// DecodeConfig returns the dimensions and format without decoding pixels.
func DecodeConfig(data []byte) (image.Config, string, error) {
	if len(data) == 0 {
		return image.Config{}, "", ErrEmptyData
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return image.Config{}, "", ErrUnsupportedFormat
		}
		return image.Config{}, "", fmt.Errorf("imageio: decode config: %w", err)
	}
	return cfg, format, nil
}

// Load reads and decodes the file at path. The raw bytes are returned as
// well so the caller can hand them to Scene.AddImage.
func Load(path string) (*Texture, []byte, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, nil, fmt.Errorf("imageio: read file: %w", err)
	}
	tex, _, err := Decode(data)
	if err != nil {
		return nil, nil, fmt.Errorf("imageio: %s: %w", filepath.Base(path), err)
	}
	return tex, data, nil
}

// AddFile loads the image at path and adds it to scene with its top-left
// corner at pos. The element keeps the file's base name.
func AddFile(scene *canvas.Scene, pos canvas.Vec2, path string, opts ...canvas.ElementOption) (uint32, error) {
	tex, data, err := Load(path)
	if err != nil {
		return 0, err
	}
	return scene.AddImage(pos, tex, data, filepath.Base(path), opts...)
}
