package integrate

import "errors"

// Errors returned by the integrator. Check them with errors.Is.
var (
	// ErrLengthMismatch is returned when x and y have different lengths.
	ErrLengthMismatch = errors.New("integrate: x and y must have the same length")

	// ErrInsufficientData is returned when a series has too few points.
	ErrInsufficientData = errors.New("integrate: not enough data points")
)
