package history

import (
	"errors"
	"fmt"
)

// Sentinel errors for the history package.
var (
	// ErrNothingToUndo is returned by Undo when the undo stack is empty.
	ErrNothingToUndo = errors.New("history: nothing to undo")

	// ErrNothingToRedo is returned by Redo when the redo stack is empty.
	ErrNothingToRedo = errors.New("history: nothing to redo")

	// ErrNoPendingOperation is returned by EndOperation without a matching
	// BeginOperation.
	ErrNoPendingOperation = errors.New("history: no pending operation")

	// ErrBlobNotFound reports an image snapshot whose blob is missing.
	ErrBlobNotFound = errors.New("history: image blob not found")
)

// RestoreError lists elements that could not be rebuilt during undo or
// redo. Every other element was restored.
type RestoreError struct {
	Skipped []uint32
}

func (e *RestoreError) Error() string {
	return fmt.Sprintf("history: skipped %d element(s) during restore: %v", len(e.Skipped), ErrBlobNotFound)
}

// Unwrap returns ErrBlobNotFound.
func (e *RestoreError) Unwrap() error {
	return ErrBlobNotFound
}
