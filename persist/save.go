package persist

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/canvas"
)

// Encode builds the document for the world-space elements of scene in
// z-order. cam may be nil.
func Encode(scene *canvas.Scene, cam *canvas.Camera) (*Document, error) {
	doc := &Document{
		Version:  FormatVersion,
		NextID:   scene.NextID(),
		Elements: make([]ElementDoc, 0, scene.Len()),
	}
	if cam != nil {
		doc.Camera = &CameraDoc{Position: pointOf(cam.Position), Zoom: cam.Zoom}
	}
	for e := range scene.World() {
		ed, err := encodeElement(e)
		if err != nil {
			return nil, err
		}
		doc.Elements = append(doc.Elements, ed)
	}
	return doc, nil
}

func encodeElement(e *canvas.Element) (ElementDoc, error) {
	ed := ElementDoc{
		ID:       e.ID,
		Position: pointOf(e.Transform.Position),
		Rotation: e.Transform.Rotation,
		Scale:    pointOf(e.Transform.Scale),
		Hidden:   !e.Visible,
	}
	switch d := e.Data.(type) {
	case *canvas.Text:
		ed.Text = &TextDoc{Content: d.Content, FontSize: d.FontSize, Color: d.Color.Hex()}
	case *canvas.Rectangle:
		ed.Rectangle = &RectangleDoc{Width: d.Width, Height: d.Height, Border: d.Border, Color: d.Color.Hex()}
	case *canvas.Arrow:
		ad := &ArrowDoc{End: pointOf(d.End), Thickness: d.Thickness, HeadSize: d.HeadSize, Color: d.Color.Hex()}
		if d.HasMid {
			mid := pointOf(d.Mid)
			ad.Mid = &mid
		}
		ed.Arrow = ad
	case *canvas.Image:
		ed.Image = &ImageDoc{
			Filename: d.Filename,
			Width:    d.PixelWidth,
			Height:   d.PixelHeight,
			Data:     base64.StdEncoding.EncodeToString(d.Data),
		}
	default:
		return ElementDoc{}, fmt.Errorf("persist: element %d: %w", e.ID, canvas.ErrInvalidPayload)
	}
	ed.Kind = e.Kind().String()
	return ed, nil
}

// Save writes scene and cam as YAML to w.
func Save(w io.Writer, scene *canvas.Scene, cam *canvas.Camera) error {
	doc, err := Encode(scene, cam)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("persist: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("persist: encode: %w", err)
	}
	canvas.Logger().Debug("persist: saved", "elements", len(doc.Elements))
	return nil
}

// SaveFile writes the document to path.
func SaveFile(path string, scene *canvas.Scene, cam *canvas.Camera) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("persist: create file: %w", err)
	}
	if err := Save(f, scene, cam); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
