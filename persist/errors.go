package persist

import "errors"

var (
	// ErrUnknownKind is returned when a document names an element kind
	// this version does not know.
	ErrUnknownKind = errors.New("persist: unknown element kind")

	// ErrUnsupportedVersion is returned for documents written by a newer
	// format version.
	ErrUnsupportedVersion = errors.New("persist: unsupported document version")

	// ErrDuplicateID is returned when two elements share an id, or a stored
	// id is held by a screen-space element of the target scene.
	ErrDuplicateID = errors.New("persist: duplicate element id")

	// ErrMissingPayload is returned when an element lacks the fields its
	// kind requires.
	ErrMissingPayload = errors.New("persist: missing element payload")
)
