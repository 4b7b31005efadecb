package assignment

import "errors"

// Failure taxonomy for single-item operations. Callers map these to their
// own status codes with errors.Is; batch operations downgrade them to
// per-load failure results instead of letting them escape.
var (
	ErrDriverNotFound   = errors.New("driver not found")
	ErrLoadNotFound     = errors.New("load not found")
	ErrLoadNotPending   = errors.New("load is not pending")
	ErrDriverIneligible = errors.New("driver not eligible")
	ErrUnsafeOverload   = errors.New("assignment would cause unsafe overload, use override if necessary")
)
