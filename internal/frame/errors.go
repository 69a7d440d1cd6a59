package frame

import "errors"

// The recoverable decode outcomes. Each one means "no frame this call"; the
// polling loop logs the reason and tries again. Only transport faults, which
// are returned as-is from the source, should end the loop.
var (
	// ErrNoStartMarker: the start marker did not appear within the scan
	// bound. Normal on a quiet or resynchronizing stream.
	ErrNoStartMarker = errors.New("frame: start marker not found")

	// ErrTimeout: the read timeout elapsed before the end marker.
	ErrTimeout = errors.New("frame: timed out waiting for end marker")

	// ErrSizeMismatch: the pixel count between the markers did not match
	// width*height. The whole frame is discarded; no partial image is
	// ever surfaced.
	ErrSizeMismatch = errors.New("frame: pixel count does not match frame size")
)

// IsTransient reports whether err is a recoverable decode outcome, i.e. the
// caller should keep polling.
func IsTransient(err error) bool {
	return errors.Is(err, ErrNoStartMarker) ||
		errors.Is(err, ErrTimeout) ||
		errors.Is(err, ErrSizeMismatch)
}
