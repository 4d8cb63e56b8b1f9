package canvas

import "errors"

// Sentinel errors for the canvas package.
var (
	// ErrElementNotFound is returned when an id does not name a live element.
	ErrElementNotFound = errors.New("canvas: element not found")

	// ErrInvalidPayload is returned when an element's payload does not
	// match its kind tag.
	ErrInvalidPayload = errors.New("canvas: payload does not match element kind")

	// ErrNilTexture is returned when an image element is created without a texture.
	ErrNilTexture = errors.New("canvas: nil texture")
)
