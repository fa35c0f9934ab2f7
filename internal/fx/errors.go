package fx

import "errors"

var (
	// ErrUnknownEffect indicates a lookup for an effect that is not registered.
	ErrUnknownEffect = errors.New("fx: unknown effect")

	// ErrBadViewport indicates a non-positive viewport dimension.
	ErrBadViewport = errors.New("fx: viewport must be positive")
)
