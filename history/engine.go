package history

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/canvas"
)

// DefaultCapacity is the default depth of the undo and redo stacks.
const DefaultCapacity = 50

// Option configures an Engine.
type Option func(*options)

type options struct {
	capacity int
}

// WithCapacity sets the depth of both stacks. Non-positive values are
// ignored.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}

// Engine records scene snapshots for undo and redo.
type Engine struct {
	mu sync.Mutex

	undo    *stack
	redo    *stack
	pending *SceneSnapshot

	// blobs is created on the first image capture and lives as long as
	// the engine.
	blobs *BlobStore

	// maxIDEver is the highest scene id counter seen by any capture.
	// Restores reset the scene counter to it so new elements never reuse
	// an id that a snapshot on either stack still holds.
	maxIDEver uint32
}

// New creates an Engine with empty stacks.
func New(opts ...Option) *Engine {
	o := options{capacity: DefaultCapacity}
	for _, opt := range opts {
		opt(&o)
	}
	return &Engine{
		undo: newStack(o.capacity),
		redo: newStack(o.capacity),
	}
}

// Capture returns a snapshot of the scene's world-space elements.
func (h *Engine) Capture(scene *canvas.Scene) (SceneSnapshot, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.captureLocked(scene)
}

func (h *Engine) captureLocked(scene *canvas.Scene) (SceneSnapshot, error) {
	snap, err := capture(scene, &h.blobs)
	if err != nil {
		return SceneSnapshot{}, err
	}
	h.maxIDEver = max(h.maxIDEver, scene.NextID())
	return snap, nil
}

// pushUndoLocked pushes onto the undo stack as a fresh action: the redo
// stack is cleared.
func (h *Engine) pushUndoLocked(snap SceneSnapshot) {
	if h.undo.push(snap) {
		canvas.Logger().Debug("history: oldest undo step evicted", "capacity", h.undo.capacity())
	}
	h.redo.clear()
}

// RecordAtomicBefore captures the scene and pushes it as an undo step.
// Call it immediately before a single-step mutation such as creating or
// deleting an element. On error nothing is pushed.
func (h *Engine) RecordAtomicBefore(scene *canvas.Scene) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	snap, err := h.captureLocked(scene)
	if err != nil {
		return err
	}
	h.pushUndoLocked(snap)
	canvas.Logger().Debug("history: atomic step recorded", "undo", h.undo.count())
	return nil
}

// BeginOperation captures the state before a multi-frame gesture. While an
// operation is pending further calls are no-ops.
func (h *Engine) BeginOperation(scene *canvas.Scene) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.pending != nil {
		return nil
	}
	snap, err := h.captureLocked(scene)
	if err != nil {
		return err
	}
	h.pending = &snap
	return nil
}

// EndOperation pushes the state captured by BeginOperation as one undo
// step, however many frames the gesture spanned.
func (h *Engine) EndOperation() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.pending == nil {
		return ErrNoPendingOperation
	}
	h.pushUndoLocked(*h.pending)
	h.pending = nil
	canvas.Logger().Debug("history: operation recorded", "undo", h.undo.count())
	return nil
}

// CancelOperation discards the pending gesture snapshot without pushing
// it. Reverting the live scene is the caller's job (see edit.Gesture.Cancel).
func (h *Engine) CancelOperation() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pending = nil
}

// Pending reports whether a multi-frame operation is open.
func (h *Engine) Pending() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pending != nil
}

// Undo restores the most recent undo step and moves the current state to
// the redo stack. It returns ErrNothingToUndo, leaving the scene alone,
// when there is nothing to undo. A *RestoreError means the step was
// applied but some image elements could not be rebuilt.
func (h *Engine) Undo(scene *canvas.Scene) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.undo.count() == 0 {
		canvas.Logger().Debug("history: undo on empty stack")
		return ErrNothingToUndo
	}
	cur, err := h.captureLocked(scene)
	if err != nil {
		return fmt.Errorf("history: undo: %w", err)
	}
	snap, _ := h.undo.pop()
	if h.redo.push(cur) {
		canvas.Logger().Debug("history: oldest redo step evicted")
	}
	return h.restoreLocked(scene, snap)
}

// Redo re-applies the most recently undone step and moves the current
// state back onto the undo stack.
func (h *Engine) Redo(scene *canvas.Scene) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.redo.count() == 0 {
		canvas.Logger().Debug("history: redo on empty stack")
		return ErrNothingToRedo
	}
	cur, err := h.captureLocked(scene)
	if err != nil {
		return fmt.Errorf("history: redo: %w", err)
	}
	snap, _ := h.redo.pop()
	if h.undo.push(cur) {
		canvas.Logger().Debug("history: oldest undo step evicted", "capacity", h.undo.capacity())
	}
	return h.restoreLocked(scene, snap)
}

// Restore replaces the scene's world-space elements with snap without
// touching either stack.
func (h *Engine) Restore(scene *canvas.Scene, snap SceneSnapshot) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.restoreLocked(scene, snap)
}

func (h *Engine) restoreLocked(scene *canvas.Scene, snap SceneSnapshot) error {
	elems, skipped := rebuild(snap, h.blobs)
	scene.ReplaceWorld(elems)
	scene.SetNextID(h.maxIDEver)
	canvas.Logger().Debug("history: restored", "elements", len(elems), "next_id", h.maxIDEver)
	if len(skipped) > 0 {
		return &RestoreError{Skipped: skipped}
	}
	return nil
}

// UndoCount returns the number of undo steps.
func (h *Engine) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.undo.count()
}

// RedoCount returns the number of redo steps.
func (h *Engine) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.redo.count()
}

// Capacity returns the maximum depth of each stack.
func (h *Engine) Capacity() int {
	return h.undo.capacity()
}

// BlobCount returns the number of images held by the blob store.
func (h *Engine) BlobCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.blobs == nil {
		return 0
	}
	return h.blobs.Len()
}

// MaxIDEver returns the id high-water mark.
func (h *Engine) MaxIDEver() uint32 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxIDEver
}

// Clear drops both stacks and any pending operation. The blob store and
// the id high-water mark are kept.
func (h *Engine) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.undo.clear()
	h.redo.clear()
	h.pending = nil
}

// Close clears the history and drops the blob store. Textures are left
// alone: live image elements may still draw with them.
func (h *Engine) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.undo.clear()
	h.redo.clear()
	h.pending = nil
	h.blobs = nil
	return nil
}

// IsEmptyHistory reports whether err is ErrNothingToUndo or
// ErrNothingToRedo.
func IsEmptyHistory(err error) bool {
	return errors.Is(err, ErrNothingToUndo) || errors.Is(err, ErrNothingToRedo)
}
