package integrate

import "fmt"

// MinPoints is the smallest series for which an estimate covers an interval.
const MinPoints = 2

// Series is a sampled function: X[i] paired positionally with Y[i].
// X is expected to be sorted ascending.
type Series struct {
	X []float64 `json:"x" toml:"x" yaml:"x"`
	Y []float64 `json:"y" toml:"y" yaml:"y"`
}

// Len returns the number of samples, or -1 if X and Y disagree.
func (s Series) Len() int {
	if len(s.X) != len(s.Y) {
		return -1
	}
	return len(s.X)
}

// Validate checks that X and Y have equal length and hold at least MinPoints samples.
func (s Series) Validate() error {
	if err := checkLengths(s.X, s.Y); err != nil {
		return err
	}
	if len(s.X) < MinPoints {
		return fmt.Errorf("%w: got %d, need at least %d", ErrInsufficientData, len(s.X), MinPoints)
	}
	return nil
}

// Ascending reports whether X is strictly increasing.
func (s Series) Ascending() bool {
	for i := 1; i < len(s.X); i++ {
		if !(s.X[i] > s.X[i-1]) {
			return false
		}
	}
	return true
}

// Interp evaluates the series at q. See the package function Interp.
func (s Series) Interp(q float64) float64 {
	return Interp(q, s.X, s.Y)
}

func checkLengths(x, y []float64) error {
	if len(x) != len(y) {
		return fmt.Errorf("%w: len(x)=%d, len(y)=%d", ErrLengthMismatch, len(x), len(y))
	}
	return nil
}
