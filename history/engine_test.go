package history

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/gogpu/canvas"
	"github.com/gogpu/canvas/edit"
)

type fakeTexture struct {
	w, h     int
	released *int
}

func (f fakeTexture) Width() int  { return f.w }
func (f fakeTexture) Height() int { return f.h }
func (f fakeTexture) Release() {
	if f.released != nil {
		*f.released++
	}
}

func newScene() *canvas.Scene {
	return canvas.NewScene(canvas.WithTextMeasurer(canvas.FixedAdvance(0.5)))
}

// describe renders the visible world-space state of a scene as comparable
// strings: ids, kinds and field values in z-order.
func describe(s *canvas.Scene) []string {
	var out []string
	for e := range s.World() {
		line := fmt.Sprintf("%d %s vis=%v pos=%v scale=%v box=%+v", e.ID, e.Kind(), e.Visible,
			e.Transform.Position, e.Transform.Scale, e.Box)
		switch d := e.Data.(type) {
		case *canvas.Text:
			line += fmt.Sprintf(" text=%q size=%v color=%v", d.Content, d.FontSize, d.Color)
		case *canvas.Rectangle:
			line += fmt.Sprintf(" rect=%vx%v border=%v color=%v", d.Width, d.Height, d.Border, d.Color)
		case *canvas.Arrow:
			line += fmt.Sprintf(" arrow=%v mid=%v/%v color=%v", d.End, d.Mid, d.HasMid, d.Color)
		case *canvas.Image:
			line += fmt.Sprintf(" image=%dx%d %s bytes=%v", d.PixelWidth, d.PixelHeight, d.Filename, d.Data)
		}
		out = append(out, line)
	}
	return out
}

func TestUndoRedoInverseLaw(t *testing.T) {
	s := newScene()
	h := New()

	var rect, label uint32
	ops := []struct {
		name string
		run  func()
	}{
		{"add rectangle", func() { rect = s.AddRectangle(canvas.V2(0, 0), 10, 20, 1, canvas.Red) }},
		{"add label", func() { label = s.AddTextLabel(canvas.V2(5, 5), "hello\nworld", 14, canvas.Black) }},
		{"add arrow", func() {
			s.AddArrow(canvas.V2(1, 1), canvas.V2(30, 0), 2, 8, canvas.Blue, canvas.WithMidpoint(canvas.V2(10, 10)))
		}},
		{"recolor", func() { _ = s.SetColor(rect, canvas.Green) }},
		{"edit text", func() { _ = s.SetText(label, "bye") }},
		{"delete rectangle", func() { _ = s.RemoveElement(rect) }},
	}

	for _, op := range ops {
		t.Run(op.name, func(t *testing.T) {
			before := describe(s)
			if err := h.RecordAtomicBefore(s); err != nil {
				t.Fatal(err)
			}
			op.run()
			after := describe(s)

			if err := h.Undo(s); err != nil {
				t.Fatalf("Undo() error = %v", err)
			}
			if got := describe(s); !slices.Equal(got, before) {
				t.Errorf("after Undo:\n got  %q\n want %q", got, before)
			}
			if err := h.Redo(s); err != nil {
				t.Fatalf("Redo() error = %v", err)
			}
			if got := describe(s); !slices.Equal(got, after) {
				t.Errorf("after Redo:\n got  %q\n want %q", got, after)
			}
		})
	}
}

func TestUndoRestoresLiveTextAsCopy(t *testing.T) {
	s := newScene()
	h := New()
	id := s.AddTextLabel(canvas.V2(0, 0), "keep", 10, canvas.Black)
	_ = h.RecordAtomicBefore(s)
	_ = s.SetText(id, "changed")
	_ = h.Undo(s)

	// Mutating the restored element must not leak into the redo snapshot.
	_ = s.SetText(id, "mutated")
	_ = h.Redo(s)
	if got := s.FindElement(id).Text().Content; got != "changed" {
		t.Errorf("content after Redo = %q, want %q", got, "changed")
	}
}

func TestHistoryBound(t *testing.T) {
	s := newScene()
	h := New()
	const extra = 5

	states := make([][]string, 0, DefaultCapacity+extra+1)
	for i := 0; i < DefaultCapacity+extra; i++ {
		states = append(states, describe(s))
		if err := h.RecordAtomicBefore(s); err != nil {
			t.Fatal(err)
		}
		s.AddRectangle(canvas.V2(float32(i), 0), 1, 1, 0, canvas.Red)
	}

	if h.UndoCount() != DefaultCapacity {
		t.Fatalf("UndoCount() = %d, want %d", h.UndoCount(), DefaultCapacity)
	}
	for i := 0; i < DefaultCapacity; i++ {
		if err := h.Undo(s); err != nil {
			t.Fatalf("Undo %d error = %v", i, err)
		}
	}
	if err := h.Undo(s); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("Undo past history error = %v, want ErrNothingToUndo", err)
	}
	// The oldest reachable state is the one after the first five operations.
	if got := describe(s); !slices.Equal(got, states[extra]) {
		t.Errorf("oldest reachable state has %d elements, want %d", len(got), len(states[extra]))
	}
	if s.Len() != extra {
		t.Errorf("scene has %d elements, want %d", s.Len(), extra)
	}
}

func TestNewActionClearsRedo(t *testing.T) {
	s := newScene()
	h := New()
	_ = h.RecordAtomicBefore(s)
	s.AddRectangle(canvas.V2(0, 0), 1, 1, 0, canvas.Red)
	_ = h.Undo(s)
	if h.RedoCount() != 1 {
		t.Fatalf("RedoCount() = %d, want 1", h.RedoCount())
	}

	_ = h.RecordAtomicBefore(s)
	s.AddRectangle(canvas.V2(5, 5), 1, 1, 0, canvas.Blue)
	if h.RedoCount() != 0 {
		t.Errorf("RedoCount() after new action = %d, want 0", h.RedoCount())
	}
	if err := h.Redo(s); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("Redo() error = %v, want ErrNothingToRedo", err)
	}
}

func TestEmptyStacksAreNoOps(t *testing.T) {
	s := newScene()
	s.AddRectangle(canvas.V2(0, 0), 1, 1, 0, canvas.Red)
	before := describe(s)
	h := New()

	if err := h.Undo(s); !IsEmptyHistory(err) {
		t.Errorf("Undo() error = %v", err)
	}
	if err := h.Redo(s); !IsEmptyHistory(err) {
		t.Errorf("Redo() error = %v", err)
	}
	if !slices.Equal(describe(s), before) {
		t.Error("no-op undo/redo changed the scene")
	}
}

func TestMultiFrameGrouping(t *testing.T) {
	s := newScene()
	cam := canvas.NewCamera(800, 600)
	h := New()
	id := s.AddRectangle(canvas.V2(0, 0), 50, 50, 1, canvas.Red)
	before := describe(s)

	if err := h.BeginOperation(s); err != nil {
		t.Fatal(err)
	}
	// Re-entrant begin while pending must not replace the captured state.
	press := cam.WorldToScreen(canvas.V2(10, -10))
	d, err := edit.BeginDrag(s, cam, id, nil, press)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i <= 10; i++ {
		d.Update(press.Add(canvas.V2(float32(i*5), 0)))
		_ = h.BeginOperation(s)
	}
	d.End()
	if err := h.EndOperation(); err != nil {
		t.Fatal(err)
	}

	if h.UndoCount() != 1 {
		t.Fatalf("UndoCount() = %d, want 1", h.UndoCount())
	}
	moved := describe(s)
	if err := h.Undo(s); err != nil {
		t.Fatal(err)
	}
	if got := describe(s); !slices.Equal(got, before) {
		t.Errorf("Undo did not restore pre-gesture state:\n got  %q\n want %q", got, before)
	}
	_ = h.Redo(s)
	if got := describe(s); !slices.Equal(got, moved) {
		t.Errorf("Redo did not restore the moved state")
	}
}

func TestResizeGestureIsOneStep(t *testing.T) {
	s := newScene()
	cam := canvas.NewCamera(800, 600)
	h := New()
	a := s.AddRectangle(canvas.V2(0, 100), 100, 100, 1, canvas.Red)
	b := s.AddTextLabel(canvas.V2(20, 80), "label", 12, canvas.Black)
	before := describe(s)

	_ = h.BeginOperation(s)
	r, err := edit.BeginResize(s, cam, []uint32{a, b}, edit.BottomRight)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		r.Update(cam.WorldToScreen(canvas.V2(float32(120+i*10), -50)))
	}
	r.End()
	_ = h.EndOperation()

	if h.UndoCount() != 1 {
		t.Fatalf("UndoCount() = %d, want 1", h.UndoCount())
	}
	_ = h.Undo(s)
	if got := describe(s); !slices.Equal(got, before) {
		t.Errorf("Undo after resize:\n got  %q\n want %q", got, before)
	}
}

func TestCancelOperation(t *testing.T) {
	s := newScene()
	cam := canvas.NewCamera(800, 600)
	h := New()
	id := s.AddRectangle(canvas.V2(0, 0), 50, 50, 1, canvas.Red)
	before := describe(s)

	_ = h.BeginOperation(s)
	d, _ := edit.BeginDrag(s, cam, id, nil, canvas.V2(400, 300))
	d.Update(canvas.V2(420, 310))
	d.Cancel()
	h.CancelOperation()

	if h.Pending() {
		t.Error("Pending() after CancelOperation = true")
	}
	if h.UndoCount() != 0 {
		t.Errorf("UndoCount() = %d, want 0", h.UndoCount())
	}
	if got := describe(s); !slices.Equal(got, before) {
		t.Error("scene changed after cancelled gesture")
	}
	if err := h.EndOperation(); !errors.Is(err, ErrNoPendingOperation) {
		t.Errorf("EndOperation() error = %v, want ErrNoPendingOperation", err)
	}
}

func TestBlobDedup(t *testing.T) {
	s := newScene()
	h := New()
	if h.BlobCount() != 0 {
		t.Fatal("blob store should start empty")
	}
	data := []byte{0x89, 'P', 'N', 'G', 1, 2, 3}
	if _, err := s.AddImage(canvas.V2(0, 0), fakeTexture{w: 4, h: 3}, data, "pic.png"); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 5; i++ {
		_ = h.RecordAtomicBefore(s)
		s.AddRectangle(canvas.V2(float32(i), 0), 1, 1, 0, canvas.Red)
	}
	for i := 0; i < 5; i++ {
		_ = h.Undo(s)
	}
	if h.BlobCount() != 1 {
		t.Errorf("BlobCount() = %d, want 1", h.BlobCount())
	}
	for e := range s.World() {
		im := e.Image()
		if im == nil {
			continue
		}
		if string(im.Data) != string(data) || im.Filename != "pic.png" || im.Texture == nil {
			t.Errorf("image not rehydrated: %+v", im)
		}
	}
}

func TestSnapshotsDoNotCopyImageBytes(t *testing.T) {
	s := newScene()
	h := New()
	_, _ = s.AddImage(canvas.V2(0, 0), fakeTexture{w: 1, h: 1}, []byte{1, 2, 3}, "a.png")

	snap, err := h.Capture(s)
	if err != nil {
		t.Fatal(err)
	}
	es := snap.Elements()[0]
	key, ok := es.ImageKey()
	if !ok || !slices.Contains(h.blobs.Keys(es.ID()), key) {
		t.Errorf("ImageKey() = %d, %v", key, ok)
	}
	if es.elem.Image().Data != nil {
		t.Error("snapshot holds image bytes")
	}
}

func TestRestoreSkipsMissingBlob(t *testing.T) {
	s := newScene()
	h := New()
	img, _ := s.AddImage(canvas.V2(0, 0), fakeTexture{w: 1, h: 1}, []byte{1}, "a.png")
	rect := s.AddRectangle(canvas.V2(0, 0), 1, 1, 0, canvas.Red)
	_ = h.RecordAtomicBefore(s)
	_ = s.RemoveElement(img)
	_ = s.RemoveElement(rect)

	// The live scene no longer holds the image, so Undo's capture of the
	// current state cannot put the blob back.
	for _, key := range h.blobs.Keys(img) {
		delete(h.blobs.blobs, key)
	}

	err := h.Undo(s)
	var re *RestoreError
	if !errors.As(err, &re) || !errors.Is(err, ErrBlobNotFound) {
		t.Fatalf("Undo() error = %v, want *RestoreError", err)
	}
	if len(re.Skipped) != 1 || re.Skipped[0] != img {
		t.Errorf("Skipped = %v, want [%d]", re.Skipped, img)
	}
	if s.FindElement(rect) == nil {
		t.Error("rectangle should be restored despite the missing blob")
	}
	if s.FindElement(img) != nil {
		t.Error("image without blob should be skipped")
	}
}

func TestIDsNeverCollideAfterRestore(t *testing.T) {
	s := newScene()
	h := New()
	for i := 0; i < 3; i++ {
		_ = h.RecordAtomicBefore(s)
		s.AddRectangle(canvas.V2(0, 0), 1, 1, 0, canvas.Red)
	}
	for i := 0; i < 3; i++ {
		_ = h.Undo(s)
	}
	if s.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", s.Len())
	}
	if h.MaxIDEver() != 4 {
		t.Errorf("MaxIDEver() = %d, want 4", h.MaxIDEver())
	}
	if id := s.AddRectangle(canvas.V2(0, 0), 1, 1, 0, canvas.Blue); id != 4 {
		t.Errorf("new id after restore = %d, want 4", id)
	}
}

func TestScreenSpaceExcludedFromHistory(t *testing.T) {
	s := newScene()
	h := New()
	hud := s.AddTextLabel(canvas.V2(4, 4), "zoom 100%", 12, canvas.Black, canvas.InScreenSpace())

	snap, _ := h.Capture(s)
	if snap.Len() != 0 {
		t.Errorf("snapshot captured %d elements, want 0", snap.Len())
	}

	_ = h.RecordAtomicBefore(s)
	s.AddRectangle(canvas.V2(0, 0), 1, 1, 0, canvas.Red)
	_ = s.SetText(hud, "zoom 200%")
	_ = h.Undo(s)

	e := s.FindElement(hud)
	if e == nil || e.Text().Content != "zoom 200%" {
		t.Error("undo must not touch screen-space elements")
	}
}

func TestCaptureFailurePushesNothing(t *testing.T) {
	s := newScene()
	h := New()
	id := s.AddRectangle(canvas.V2(0, 0), 1, 1, 0, canvas.Red)
	s.FindElement(id).Data = nil

	if err := h.RecordAtomicBefore(s); !errors.Is(err, canvas.ErrInvalidPayload) {
		t.Errorf("RecordAtomicBefore() error = %v, want ErrInvalidPayload", err)
	}
	if h.UndoCount() != 0 {
		t.Errorf("UndoCount() = %d, want 0", h.UndoCount())
	}
	if err := h.BeginOperation(s); err == nil || h.Pending() {
		t.Error("BeginOperation should fail without leaving a pending snapshot")
	}
}

func TestWithCapacity(t *testing.T) {
	s := newScene()
	h := New(WithCapacity(2))
	for i := 0; i < 4; i++ {
		_ = h.RecordAtomicBefore(s)
	}
	if h.UndoCount() != 2 || h.Capacity() != 2 {
		t.Errorf("UndoCount()=%d Capacity()=%d, want 2 and 2", h.UndoCount(), h.Capacity())
	}
}

func TestClearAndClose(t *testing.T) {
	s := newScene()
	h := New()
	released := 0
	img, _ := s.AddImage(canvas.V2(0, 0), fakeTexture{w: 1, h: 1, released: &released}, []byte{1}, "a.png")
	_ = h.RecordAtomicBefore(s)
	_ = h.BeginOperation(s)

	h.Clear()
	if h.UndoCount() != 0 || h.Pending() || h.BlobCount() != 1 {
		t.Errorf("after Clear: undo=%d pending=%v blobs=%d", h.UndoCount(), h.Pending(), h.BlobCount())
	}

	if err := h.Close(); err != nil {
		t.Fatal(err)
	}
	if h.BlobCount() != 0 {
		t.Errorf("after Close: blobs=%d, want 0", h.BlobCount())
	}
	if released != 0 {
		t.Errorf("Close released %d live textures", released)
	}
	im := s.FindElement(img).Image()
	if im == nil || im.Texture == nil || im.Texture.Width() != 1 {
		t.Errorf("live image after Close = %+v", im)
	}
}

func TestReusedIDWithNewContent(t *testing.T) {
	s := newScene()
	h := New()
	first, _ := s.AddImage(canvas.V2(0, 0), fakeTexture{w: 3, h: 2}, []byte{1, 1}, "a.png")
	_ = h.RecordAtomicBefore(s)

	// A loaded document brings a different image under the same id.
	s.ReplaceWorld(nil)
	s.SetNextID(first)
	second, _ := s.AddImage(canvas.V2(0, 0), fakeTexture{w: 5, h: 4}, []byte{2, 2, 2}, "b.png")
	if second != first {
		t.Fatalf("second id = %d, want %d", second, first)
	}
	_ = h.RecordAtomicBefore(s)
	s.AddRectangle(canvas.V2(0, 0), 1, 1, 0, canvas.Red)

	tests := []struct {
		name     string
		filename string
		width    int
		data     []byte
	}{
		{"undo to loaded image", "b.png", 5, []byte{2, 2, 2}},
		{"undo to original image", "a.png", 3, []byte{1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := h.Undo(s); err != nil {
				t.Fatal(err)
			}
			im := s.FindElement(first).Image()
			if im == nil {
				t.Fatal("image not restored")
			}
			if im.Filename != tt.filename || im.Texture.Width() != tt.width || !slices.Equal(im.Data, tt.data) {
				t.Errorf("restored %s width=%d data=%v, want %s width=%d data=%v",
					im.Filename, im.Texture.Width(), im.Data, tt.filename, tt.width, tt.data)
			}
		})
	}
	if h.BlobCount() != 2 {
		t.Errorf("BlobCount() = %d, want 2", h.BlobCount())
	}
}

func BenchmarkRecordAtomicBefore(b *testing.B) {
	s := newScene()
	for i := 0; i < 200; i++ {
		s.AddTextLabel(canvas.V2(float32(i), 0), "label", 12, canvas.Black)
	}
	h := New()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = h.RecordAtomicBefore(s)
	}
}
