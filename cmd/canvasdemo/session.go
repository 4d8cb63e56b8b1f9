package main

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"slices"

	"github.com/gogpu/canvas"
	"github.com/gogpu/canvas/edit"
	"github.com/gogpu/canvas/history"
	"github.com/gogpu/canvas/imageio"
	"github.com/gogpu/canvas/persist"
	"github.com/gogpu/canvas/render"
	"github.com/gogpu/canvas/text"
)

// Report summarizes a finished session.
type Report struct {
	Elements  int
	UndoSteps int
	RedoSteps int
	Blobs     int
	Frame     render.Stats
}

type session struct {
	scene *canvas.Scene
	cam   *canvas.Camera
	hist  *history.Engine
	sel   edit.Selection
}

func run(cfg *Config) (Report, error) {
	m, err := newMeasurer(cfg.Text)
	if err != nil {
		return Report{}, err
	}
	s := &session{
		scene: canvas.NewScene(canvas.WithTextMeasurer(m)),
		cam: canvas.NewCamera(cfg.Viewport.Width, cfg.Viewport.Height,
			canvas.WithZoomLimits(cfg.Zoom.Min, cfg.Zoom.Max),
			canvas.WithZoom(cfg.Zoom.Initial)),
		hist: history.New(history.WithCapacity(cfg.History.Capacity)),
	}
	defer func() { _ = s.hist.Close() }()

	if cfg.Input != "" {
		if err := persist.LoadFile(cfg.Input, s.scene, s.cam); err != nil {
			return Report{}, err
		}
	} else if err := s.buildBoard(); err != nil {
		return Report{}, err
	}
	for i, path := range cfg.Images {
		if err := s.atomic(func() error {
			_, err := imageio.AddFile(s.scene, canvas.V2(float32(-300+i*120), -150), path)
			return err
		}); err != nil {
			return Report{}, err
		}
	}
	hud := s.scene.AddTextLabel(canvas.V2(8, 8), "", 14, canvas.Black, canvas.InScreenSpace())

	if err := s.dragFirst(canvas.V2(60, -30)); err != nil {
		return Report{}, err
	}
	if err := s.resizeFirstTwo(canvas.V2(80, -50)); err != nil {
		return Report{}, err
	}
	s.cam.Pan(canvas.V2(-40, 0))
	s.cam.ZoomAt(canvas.V2(cfg.Viewport.Width/2, cfg.Viewport.Height/2), 0.25)

	// Step back over the resize and forward again.
	if err := s.undo(); err != nil {
		return Report{}, err
	}
	if err := s.redo(); err != nil {
		return Report{}, err
	}
	if err := s.deleteAndRestoreTopmost(); err != nil {
		return Report{}, err
	}

	_ = s.scene.SetText(hud, fmt.Sprintf("zoom %.0f%%  undo %d  redo %d",
		s.cam.Zoom*100, s.hist.UndoCount(), s.hist.RedoCount()))

	r, err := render.NewRaster(render.WithMeasurer(m))
	if err != nil {
		return Report{}, err
	}
	st, err := render.Draw(s.scene, s.cam, r)
	if err != nil {
		return Report{}, err
	}
	if err := r.SavePNG(cfg.Output.PNG); err != nil {
		return Report{}, err
	}
	if err := persist.SaveFile(cfg.Output.YAML, s.scene, s.cam); err != nil {
		return Report{}, err
	}

	return Report{
		Elements:  s.scene.Len(),
		UndoSteps: s.hist.UndoCount(),
		RedoSteps: s.hist.RedoCount(),
		Blobs:     s.hist.BlobCount(),
		Frame:     st,
	}, nil
}

func newMeasurer(cfg TextConfig) (*text.Measurer, error) {
	opts := []text.Option{text.WithCacheSize(cfg.CacheSize)}
	if cfg.Font != "" {
		data, err := os.ReadFile(filepath.Clean(cfg.Font))
		if err != nil {
			return nil, fmt.Errorf("read font: %w", err)
		}
		opts = append(opts, text.WithFont(data))
	}
	return text.NewMeasurer(opts...)
}

// atomic records an undo step and applies fn. The step is kept even if fn
// fails part way, matching what an interactive user would see.
func (s *session) atomic(fn func() error) error {
	if err := s.hist.RecordAtomicBefore(s.scene); err != nil {
		return err
	}
	return fn()
}

func (s *session) buildBoard() error {
	steps := []func() error{
		func() error {
			s.scene.AddTextLabel(canvas.V2(-300, 260), "Canvas demo", 32, canvas.Black)
			return nil
		},
		func() error {
			s.scene.AddRectangle(canvas.V2(-250, 180), 220, 140, 4, canvas.Hex("#3366cc"))
			return nil
		},
		func() error {
			s.scene.AddTextLabel(canvas.V2(-230, 160), "drag me\nresize me", 20, canvas.Hex("#202020"))
			return nil
		},
		func() error {
			s.scene.AddArrow(canvas.V2(-20, 100), canvas.V2(170, -60), 4, 18, canvas.Hex("#cc3333"),
				canvas.WithMidpoint(canvas.V2(90, 40)))
			return nil
		},
		func() error {
			data, err := gradientPNG(96, 64)
			if err != nil {
				return err
			}
			tex, _, err := imageio.Decode(data)
			if err != nil {
				return err
			}
			_, err = s.scene.AddImage(canvas.V2(160, 20), tex, data, "gradient.png")
			return err
		},
	}
	for _, step := range steps {
		if err := s.atomic(step); err != nil {
			return err
		}
	}
	return nil
}

func (s *session) firstWorld(n int) []uint32 {
	var ids []uint32
	for e := range s.scene.World() {
		if len(ids) == n {
			break
		}
		ids = append(ids, e.ID)
	}
	return ids
}

// dragFirst presses on the center of the bottom-most element, picks
// whatever the hit test finds there and drags it by delta world units over
// several frames.
func (s *session) dragFirst(delta canvas.Vec2) error {
	ids := s.firstWorld(1)
	if len(ids) == 0 {
		return nil
	}
	center := s.scene.FindElement(ids[0]).Box.Center()
	press := s.cam.WorldToScreen(center)
	hit, ok := s.scene.HitTest(press, s.cam)
	if !ok {
		return nil
	}
	s.sel.Set(hit)

	if err := s.hist.BeginOperation(s.scene); err != nil {
		return err
	}
	d, err := edit.BeginDrag(s.scene, s.cam, hit, s.sel.IDs(), press)
	if err != nil {
		s.hist.CancelOperation()
		return err
	}
	const frames = 8
	for i := 1; i <= frames; i++ {
		step := delta.Mul(float32(i) / frames)
		d.Update(s.cam.WorldToScreen(center.Add(step)))
	}
	d.End()
	return s.hist.EndOperation()
}

// resizeFirstTwo selects the two bottom-most elements and drags the
// bottom-right handle of their union box by delta world units.
func (s *session) resizeFirstTwo(delta canvas.Vec2) error {
	s.sel.Clear()
	for _, id := range s.firstWorld(2) {
		s.sel.Add(id)
	}
	box, ok := s.sel.Bounds(s.scene)
	if !ok {
		return nil
	}
	handle, ok := edit.HandleAt(box, box.BottomRight(), 6/s.cam.Zoom)
	if !ok {
		return nil
	}

	if err := s.hist.BeginOperation(s.scene); err != nil {
		return err
	}
	r, err := edit.BeginResize(s.scene, s.cam, s.sel.IDs(), handle)
	if err != nil {
		s.hist.CancelOperation()
		return err
	}
	corner := handle.Corner(box)
	const frames = 8
	for i := 1; i <= frames; i++ {
		r.Update(s.cam.WorldToScreen(corner.Add(delta.Mul(float32(i) / frames))))
	}
	r.End()
	canvas.Logger().Debug("demo: resized", "scale", r.Applied(), "uniform", r.Uniform())
	return s.hist.EndOperation()
}

func (s *session) deleteAndRestoreTopmost() error {
	var top uint32
	found := false
	for e := range s.scene.World() {
		top, found = e.ID, true
	}
	if !found {
		return nil
	}
	if err := s.atomic(func() error { return s.scene.RemoveElement(top) }); err != nil {
		return err
	}
	return s.undo()
}

func (s *session) undo() error {
	return s.afterRestore(s.hist.Undo(s.scene))
}

func (s *session) redo() error {
	return s.afterRestore(s.hist.Redo(s.scene))
}

// afterRestore drops stale selection entries and turns the recoverable
// restore outcomes into log lines.
func (s *session) afterRestore(err error) error {
	s.sel.Prune(s.scene)
	var re *history.RestoreError
	switch {
	case err == nil:
		return nil
	case history.IsEmptyHistory(err):
		canvas.Logger().Info("demo: nothing to restore", "err", err)
		return nil
	case errors.As(err, &re):
		canvas.Logger().Warn("demo: restore skipped images", "ids", slices.Clone(re.Skipped))
		return nil
	default:
		return err
	}
}

func gradientPNG(w, h int) ([]byte, error) {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(255 * x / (w - 1)),
				G: uint8(255 * y / (h - 1)),
				B: 160,
				A: 255,
			})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
