package animation

import "errors"

var (
	// ErrIndexOutOfRange is returned when a frame, line or cursor index is outside its bound.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrEmptyAnimation is returned by operations that need at least one frame.
	ErrEmptyAnimation = errors.New("animation has no frames")
	// ErrInvalidSpeed is returned for a non-positive speed.
	ErrInvalidSpeed = errors.New("speed must be a positive number of milliseconds")
)
