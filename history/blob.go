package history

import (
	"bytes"
	"reflect"
	"strings"

	"github.com/gogpu/canvas"
)

// Blob is the stored content of an image element.
type Blob struct {
	Data     []byte
	Filename string
	Texture  canvas.Texture
}

// BlobStore holds image content shared by every snapshot of an image
// element. Blobs are grouped by element id; an id that comes back with
// different content (a loaded document reusing it, for one) gets a new
// blob instead of resolving to the old bytes.
type BlobStore struct {
	blobs map[uint32]*Blob
	byID  map[uint32][]uint32
	next  uint32
}

func newBlobStore() *BlobStore {
	return &BlobStore{
		blobs: make(map[uint32]*Blob),
		byID:  make(map[uint32][]uint32),
		next:  1,
	}
}

// put returns the key of the blob holding im for element id, storing a copy
// when none matches. It reports whether a new blob was inserted.
func (b *BlobStore) put(id uint32, im *canvas.Image) (uint32, bool) {
	for _, key := range b.byID[id] {
		if blob, ok := b.blobs[key]; ok && blob.holds(im) {
			return key, false
		}
	}
	key := b.next
	b.next++
	b.blobs[key] = &Blob{
		Data:     bytes.Clone(im.Data),
		Filename: strings.Clone(im.Filename),
		Texture:  im.Texture,
	}
	b.byID[id] = append(b.byID[id], key)
	return key, true
}

// holds reports whether the blob stores the content of im. The texture
// handle is compared first; bytes are compared only when it differs.
func (blob *Blob) holds(im *canvas.Image) bool {
	if blob.Filename != im.Filename || len(blob.Data) != len(im.Data) {
		return false
	}
	if sameTexture(blob.Texture, im.Texture) {
		return true
	}
	return bytes.Equal(blob.Data, im.Data)
}

func sameTexture(a, b canvas.Texture) bool {
	if a == nil || b == nil {
		return false
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}

// Get returns the blob stored under key.
func (b *BlobStore) Get(key uint32) (*Blob, bool) {
	blob, ok := b.blobs[key]
	return blob, ok
}

// Len returns the number of stored blobs.
func (b *BlobStore) Len() int { return len(b.blobs) }

// Keys returns the blob keys recorded for element id, oldest first.
func (b *BlobStore) Keys(id uint32) []uint32 {
	return append([]uint32(nil), b.byID[id]...)
}
