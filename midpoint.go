// Package midpoint approximates definite integrals of tabulated data with the
// composite midpoint rule.
//
// Example usage:
//
//	x := []float64{1, 1.3, 1.6, 1.9, 2.2, 2.5, 2.8}
//	y := []float64{1.449, 2.06, 2.645, 3.216, 3.779, 4.338, 4.898}
//	v, err := midpoint.Compute(x, y)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%.4f\n", v)
package midpoint

import "github.com/bft-labs/midpoint/pkg/integrate"

// Series is an ordered set of (x, y) samples.
type Series = integrate.Series

// Estimate is an integral estimate with its per-subinterval breakdown.
type Estimate = integrate.Estimate

// Segment is one subinterval of an Estimate.
type Segment = integrate.Segment

var (
	// ErrLengthMismatch is returned when x and y differ in length.
	ErrLengthMismatch = integrate.ErrLengthMismatch

	// ErrInsufficientData is returned for an empty series.
	ErrInsufficientData = integrate.ErrInsufficientData
)

// Compute returns the midpoint-rule estimate of the integral of y over x.
// Each subinterval's height is the linear interpolant of the whole series at
// the subinterval's midpoint.
func Compute(x, y []float64) (float64, error) {
	return integrate.Compute(x, y)
}

// Breakdown is Compute with the per-subinterval detail.
func Breakdown(x, y []float64) (Estimate, error) {
	return integrate.Breakdown(x, y)
}

// Interp evaluates the piecewise-linear interpolant of (xs, ys) at q,
// clamping to the end values outside the sampled range.
func Interp(q float64, xs, ys []float64) float64 {
	return integrate.Interp(q, xs, ys)
}

// Version is the version of the integrate package.
const Version = integrate.Version
