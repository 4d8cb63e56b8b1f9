package edit

import (
	"slices"

	"github.com/gogpu/canvas"
)

// Selection is an ordered set of element ids. The first id is the primary
// element, the one the user clicked first.
type Selection struct {
	ids []uint32
}

// Set replaces the selection with a single element.
func (s *Selection) Set(id uint32) {
	s.ids = append(s.ids[:0], id)
}

// Add appends id if it is not already selected.
func (s *Selection) Add(id uint32) {
	if !s.Contains(id) {
		s.ids = append(s.ids, id)
	}
}

// Toggle adds or removes id.
func (s *Selection) Toggle(id uint32) {
	if i := slices.Index(s.ids, id); i >= 0 {
		s.ids = slices.Delete(s.ids, i, i+1)
		return
	}
	s.ids = append(s.ids, id)
}

// Clear empties the selection.
func (s *Selection) Clear() { s.ids = s.ids[:0] }

// Contains reports whether id is selected.
func (s *Selection) Contains(id uint32) bool { return slices.Contains(s.ids, id) }

// Len returns the number of selected ids.
func (s *Selection) Len() int { return len(s.ids) }

// IDs returns a copy of the selected ids in selection order.
func (s *Selection) IDs() []uint32 { return slices.Clone(s.ids) }

// Primary returns the first selected id.
func (s *Selection) Primary() (uint32, bool) {
	if len(s.ids) == 0 {
		return 0, false
	}
	return s.ids[0], true
}

// Prune drops ids that no longer name a live element, e.g. after undo.
func (s *Selection) Prune(scene *canvas.Scene) {
	s.ids = slices.DeleteFunc(s.ids, func(id uint32) bool {
		return scene.FindElement(id) == nil
	})
}

// Bounds returns the union box of the selection.
func (s *Selection) Bounds(scene *canvas.Scene) (canvas.Rect, bool) {
	return scene.UnionBox(s.ids)
}
