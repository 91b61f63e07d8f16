// Package integrate approximates definite integrals from tabulated samples.
//
// The package has no dependencies beyond the standard library so it can be
// imported on its own, without the CLI, HTTP server or chart renderer.
//
// # Usage
//
// Compute the composite midpoint-rule estimate for a sample series:
//
//	x := []float64{1, 1.3, 1.6, 1.9, 2.2, 2.5, 2.8}
//	y := []float64{1.449, 2.06, 2.645, 3.216, 3.779, 4.338, 4.898}
//	v, err := integrate.Compute(x, y)
//	if err != nil {
//	    return err
//	}
//
// Use Breakdown to obtain the per-subinterval midpoints, interpolated heights
// and areas that make up the estimate (useful for plotting):
//
//	est, err := integrate.Breakdown(x, y)
//
// # Interpolation
//
// Function values at midpoints are obtained with Interp, which linearly
// interpolates over the whole series and clamps to the boundary values outside
// of it. When several samples share an abscissa, a query equal to that abscissa
// resolves to the last of them.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package integrate
