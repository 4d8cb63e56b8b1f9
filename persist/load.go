package persist

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/canvas"
	"github.com/gogpu/canvas/imageio"
)

// Decoder turns stored image bytes into a texture.
type Decoder func(data []byte) (canvas.Texture, error)

// LoadOption configures Load.
type LoadOption func(*loadOptions)

type loadOptions struct {
	decode Decoder
}

// WithDecoder replaces the image decoder. The default uses imageio.
func WithDecoder(d Decoder) LoadOption {
	return func(o *loadOptions) {
		o.decode = d
	}
}

func decodeImage(data []byte) (canvas.Texture, error) {
	tex, _, err := imageio.Decode(data)
	if err != nil {
		return nil, err
	}
	return tex, nil
}

// Load reads a YAML document from r and applies it to scene and cam.
func Load(r io.Reader, scene *canvas.Scene, cam *canvas.Camera, opts ...LoadOption) error {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return fmt.Errorf("persist: decode: %w", err)
	}
	return Apply(&doc, scene, cam, opts...)
}

// LoadFile reads the document at path.
func LoadFile(path string, scene *canvas.Scene, cam *canvas.Camera, opts ...LoadOption) error {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("persist: open file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Load(f, scene, cam, opts...)
}

// pending is a validated element ready to be added.
type pending struct {
	doc  ElementDoc
	kind canvas.Kind
	tex  canvas.Texture
	data []byte
}

// Apply replaces the world-space elements of scene with the document's.
// The document is validated and every image decoded first; on error the
// scene is left untouched. Stored ids must not repeat or name a
// screen-space element already in scene. cam may be nil.
func Apply(doc *Document, scene *canvas.Scene, cam *canvas.Camera, opts ...LoadOption) error {
	o := loadOptions{decode: decodeImage}
	for _, opt := range opts {
		opt(&o)
	}
	if doc.Version > FormatVersion {
		return fmt.Errorf("persist: version %d: %w", doc.Version, ErrUnsupportedVersion)
	}

	items := make([]pending, 0, len(doc.Elements))
	seen := make(map[uint32]bool, len(doc.Elements))
	// Screen-space elements survive the load and keep their ids.
	for e := range scene.All() {
		if e.Space() == canvas.SpaceScreen {
			seen[e.ID] = true
		}
	}
	maxID := uint32(0)
	for _, ed := range doc.Elements {
		if seen[ed.ID] {
			return fmt.Errorf("persist: element %d: %w", ed.ID, ErrDuplicateID)
		}
		seen[ed.ID] = true
		p, err := validate(ed, o.decode)
		if err != nil {
			return err
		}
		items = append(items, p)
		maxID = max(maxID, ed.ID)
	}

	scene.ReplaceWorld(nil)
	// Constructor-assigned ids must not collide with stored ids before
	// they are overwritten.
	scene.SetNextID(max(scene.NextID(), maxID+1))
	for _, p := range items {
		if err := add(scene, p); err != nil {
			return err
		}
	}
	scene.SetNextID(max(doc.NextID, maxID+1))

	if cam != nil && doc.Camera != nil {
		cam.Position = doc.Camera.Position.vec()
		if doc.Camera.Zoom > 0 {
			cam.Zoom = min(max(doc.Camera.Zoom, cam.MinZoom), cam.MaxZoom)
		}
	}
	canvas.Logger().Debug("persist: loaded", "elements", len(items), "next_id", scene.NextID())
	return nil
}

func validate(ed ElementDoc, decode Decoder) (pending, error) {
	kind, ok := canvas.ParseKind(ed.Kind)
	if !ok {
		return pending{}, fmt.Errorf("persist: element %d kind %q: %w", ed.ID, ed.Kind, ErrUnknownKind)
	}
	p := pending{doc: ed, kind: kind}
	missing := false
	switch kind {
	case canvas.KindText:
		missing = ed.Text == nil
	case canvas.KindRectangle:
		missing = ed.Rectangle == nil
	case canvas.KindArrow:
		missing = ed.Arrow == nil
	case canvas.KindImage:
		if ed.Image == nil {
			missing = true
			break
		}
		data, err := base64.StdEncoding.DecodeString(ed.Image.Data)
		if err != nil {
			return pending{}, fmt.Errorf("persist: element %d image data: %w", ed.ID, err)
		}
		tex, err := decode(data)
		if err != nil {
			return pending{}, fmt.Errorf("persist: element %d image %s: %w", ed.ID, ed.Image.Filename, err)
		}
		p.tex, p.data = tex, data
	}
	if missing {
		return pending{}, fmt.Errorf("persist: element %d (%s): %w", ed.ID, kind, ErrMissingPayload)
	}
	return p, nil
}

func add(scene *canvas.Scene, p pending) error {
	ed := p.doc
	pos := ed.Position.vec()
	var opts []canvas.ElementOption
	if ed.Hidden {
		opts = append(opts, canvas.Hidden())
	}

	var (
		id  uint32
		err error
	)
	switch p.kind {
	case canvas.KindText:
		d := ed.Text
		id = scene.AddTextLabel(pos, d.Content, d.FontSize, canvas.Hex(d.Color), opts...)
	case canvas.KindRectangle:
		d := ed.Rectangle
		id = scene.AddRectangle(pos, d.Width, d.Height, d.Border, canvas.Hex(d.Color), opts...)
	case canvas.KindArrow:
		d := ed.Arrow
		if d.Mid != nil {
			opts = append(opts, canvas.WithMidpoint(d.Mid.vec()))
		}
		id = scene.AddArrow(pos, d.End.vec(), d.Thickness, d.HeadSize, canvas.Hex(d.Color), opts...)
	case canvas.KindImage:
		id, err = scene.AddImage(pos, p.tex, p.data, ed.Image.Filename, opts...)
		if err != nil {
			return fmt.Errorf("persist: element %d: %w", ed.ID, err)
		}
	}

	e := scene.FindElement(id)
	e.ID = ed.ID
	e.Transform.Rotation = ed.Rotation
	if ed.Scale != (Point{}) {
		e.Transform.Scale = ed.Scale.vec()
	}
	e.Box = e.Bounds(scene.Measurer())
	return nil
}
