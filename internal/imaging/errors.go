package imaging

import "errors"

// Error classes returned by this package. Every error produced by a
// constructor, accessor or transform wraps exactly one of these, so callers
// can classify failures with errors.Is.
var (
	// ErrInvalidArgument reports a missing or out-of-range parameter, such as an
	// empty image name, an unknown selector or a non-positive dimension.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound reports a source or mask name that is absent from the Store.
	ErrNotFound = errors.New("image not found")

	// ErrDimensionMismatch reports a mask whose size differs from the source image.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrConstruction reports a pixel grid that violates the Image invariants.
	ErrConstruction = errors.New("image construction failed")
)
