package integrate

import (
	"math"
	"sort"
)

// Interp returns the piecewise-linear interpolant of (xs, ys) at q.
//
// Queries left of xs[0] return ys[0] and queries right of the last abscissa
// return the last y. Inside the range the bracketing pair is found by binary
// search for the last index j with xs[j] <= q, so on duplicated abscissae the
// last sample wins. xs must be ascending for the result to be meaningful.
// Interp returns NaN for an empty series or a NaN query, and panics if ys is
// shorter than xs.
func Interp(q float64, xs, ys []float64) float64 {
	n := len(xs)
	switch {
	case n == 0 || math.IsNaN(q):
		return math.NaN()
	case n == 1:
		return ys[0]
	case q > xs[n-1]:
		return ys[n-1]
	case q < xs[0]:
		return ys[0]
	}

	// last index with xs[j] <= q
	j := sort.Search(n, func(i int) bool { return xs[i] > q }) - 1
	switch {
	case j < 0:
		return ys[0]
	case j >= n-1:
		return ys[n-1]
	case xs[j] == q:
		return ys[j]
	}

	slope := (ys[j+1] - ys[j]) / (xs[j+1] - xs[j])
	v := slope*(q-xs[j]) + ys[j]
	if math.IsNaN(v) {
		// infinite operands; anchor on the right sample instead
		v = slope*(q-xs[j+1]) + ys[j+1]
		if math.IsNaN(v) && ys[j] == ys[j+1] {
			v = ys[j]
		}
	}
	return v
}
