package engine

import "errors"

// Scene activation preconditions, wrapped with context and tested with errors.Is
var (
	ErrNoWorld            = errors.New("scene has no world")
	ErrNoCamera           = errors.New("scene has no camera")
	ErrNoTarget           = errors.New("camera has no target")
	ErrDegenerateGeometry = errors.New("degenerate geometry")
	ErrUnknownScene       = errors.New("unknown scene")
	ErrDuplicateScene     = errors.New("duplicate scene")
)
