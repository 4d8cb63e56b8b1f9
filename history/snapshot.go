package history

import (
	"bytes"
	"fmt"

	"github.com/gogpu/canvas"
)

// ElementSnapshot is a frozen copy of one world-space element. Image
// elements carry only a blob key; their bytes live in the BlobStore.
type ElementSnapshot struct {
	elem     *canvas.Element
	imageKey uint32
	isImage  bool
}

// ID returns the element id at capture time.
func (es ElementSnapshot) ID() uint32 { return es.elem.ID }

// Kind returns the element kind.
func (es ElementSnapshot) Kind() canvas.Kind { return es.elem.Kind() }

// ImageKey returns the blob key of an image snapshot.
func (es ElementSnapshot) ImageKey() (uint32, bool) { return es.imageKey, es.isImage }

// SceneSnapshot is an immutable, deep copy of a scene's world-space
// elements in z-order.
type SceneSnapshot struct {
	elements []ElementSnapshot
}

// Len returns the number of captured elements.
func (s SceneSnapshot) Len() int { return len(s.elements) }

// Elements returns the captured elements in z-order.
func (s SceneSnapshot) Elements() []ElementSnapshot {
	out := make([]ElementSnapshot, len(s.elements))
	copy(out, s.elements)
	return out
}

// capture deep-copies the world-space elements of scene. Image bytes are
// added to blobs unless an identical blob for the same element exists. On error neither blobs nor the returned
// snapshot are touched.
func capture(scene *canvas.Scene, blobs **BlobStore) (SceneSnapshot, error) {
	for e := range scene.World() {
		if e.Data == nil {
			return SceneSnapshot{}, fmt.Errorf("history: capture element %d: %w", e.ID, canvas.ErrInvalidPayload)
		}
	}

	snap := SceneSnapshot{elements: make([]ElementSnapshot, 0, scene.Len())}
	for e := range scene.World() {
		im := e.Image()
		if im == nil {
			snap.elements = append(snap.elements, ElementSnapshot{elem: e.Clone()})
			continue
		}
		if *blobs == nil {
			*blobs = newBlobStore()
		}
		key, inserted := (*blobs).put(e.ID, im)
		if inserted {
			canvas.Logger().Debug("history: blob stored", "id", e.ID, "key", key, "bytes", len(im.Data))
		}
		ref := canvas.NewWorldElement(e.ID, e.Transform, e.Visible, e.Box, &canvas.Image{
			PixelWidth:  im.PixelWidth,
			PixelHeight: im.PixelHeight,
		})
		snap.elements = append(snap.elements, ElementSnapshot{elem: ref, imageKey: key, isImage: true})
	}
	return snap, nil
}

// rebuild creates fresh live elements from snap. Image elements whose blob
// is missing are skipped and reported.
func rebuild(snap SceneSnapshot, blobs *BlobStore) ([]*canvas.Element, []uint32) {
	out := make([]*canvas.Element, 0, len(snap.elements))
	var skipped []uint32
	for _, es := range snap.elements {
		e := es.elem.Clone()
		if es.isImage {
			var blob *Blob
			ok := false
			if blobs != nil {
				blob, ok = blobs.Get(es.imageKey)
			}
			if !ok {
				canvas.Logger().Warn("history: image blob missing, element skipped", "id", es.elem.ID, "key", es.imageKey)
				skipped = append(skipped, es.elem.ID)
				continue
			}
			im := e.Image()
			im.Texture = blob.Texture
			im.Data = bytes.Clone(blob.Data)
			im.Filename = blob.Filename
		}
		out = append(out, e)
	}
	return out, skipped
}
