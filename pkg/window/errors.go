package window

import "errors"

var (
	// ErrInvalidConfig is wrapped by every error returned for a configuration
	// that an [Engine] cannot operate with. Such errors are fatal: no engine
	// is created, or the offending call has no effect.
	ErrInvalidConfig = errors.New("invalid window configuration")

	ErrMissingContainer = errors.New("scroll container is required")
	ErrMissingRowFunc   = errors.New("row func is required")
	ErrInvalidRowHeight = errors.New("row height must be greater than zero")
	ErrInvalidGeometry  = errors.New("row gap and buffer must not be negative")
	ErrInvalidTarget    = errors.New("target index must not be negative")

	// ErrIndexOutOfRange is returned when a jump targets an index at or past
	// the end of the dataset. The engine state is left untouched.
	ErrIndexOutOfRange = errors.New("index out of range")
)
