package imageio

import "errors"

var (
	// ErrEmptyData is returned when there are no bytes to decode.
	ErrEmptyData = errors.New("imageio: empty data")

	// ErrUnsupportedFormat is returned when no registered decoder
	// recognizes the data.
	ErrUnsupportedFormat = errors.New("imageio: unsupported format")
)
