package window

import "errors"

var (
	// ErrEmptyInput is returned when the point set has no positions, so no
	// bounding box can be defined.
	ErrEmptyInput = errors.New("empty input")
	// ErrInvalidWindowSize is returned when a window extent is below 1.
	ErrInvalidWindowSize = errors.New("invalid window size")
	// ErrInvalidAlignment is returned when the alignment modulus is below 1.
	ErrInvalidAlignment = errors.New("invalid alignment")
	// ErrNoValidWindow is returned when no origin satisfies both the fit and
	// the alignment constraints.
	ErrNoValidWindow = errors.New("no valid window")
	// ErrGridTooLarge is returned when the bounding box exceeds the cell limit.
	ErrGridTooLarge = errors.New("grid too large")
)
