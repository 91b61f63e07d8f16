package integrate

import "fmt"

// Segment is one subinterval [Left, Right] of the composite midpoint rule.
type Segment struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Mid    float64 `json:"mid"`
	Height float64 `json:"height"`
	Area   float64 `json:"area"`
}

// Width returns Right - Left.
func (s Segment) Width() float64 { return s.Right - s.Left }

// Estimate is a midpoint-rule approximation together with its per-subinterval terms.
type Estimate struct {
	Value    float64   `json:"value"`
	Segments []Segment `json:"segments"`
}

// Compute approximates the integral of the sampled function over [x[0], x[n-1]]
// with the composite midpoint rule.
//
// For each pair of consecutive abscissae the function is evaluated at their
// midpoint by linear interpolation over the whole series (see Interp), and the
// value is weighted by the subinterval width. A single point yields 0.
// Compute neither retains nor mutates x and y.
func Compute(x, y []float64) (float64, error) {
	if err := checkInput(x, y); err != nil {
		return 0, err
	}

	var sum float64
	for i := 0; i < len(x)-1; i++ {
		m := (x[i] + x[i+1]) / 2
		sum += (x[i+1] - x[i]) * Interp(m, x, y)
	}
	return sum, nil
}

// Breakdown is Compute with the individual subinterval terms.
// Estimate.Value is accumulated in the same order as Compute and so equals it exactly.
func Breakdown(x, y []float64) (Estimate, error) {
	if err := checkInput(x, y); err != nil {
		return Estimate{}, err
	}

	est := Estimate{Segments: make([]Segment, 0, len(x)-1)}
	for i := 0; i < len(x)-1; i++ {
		m := (x[i] + x[i+1]) / 2
		h := Interp(m, x, y)
		area := (x[i+1] - x[i]) * h
		est.Segments = append(est.Segments, Segment{
			Left:   x[i],
			Right:  x[i+1],
			Mid:    m,
			Height: h,
			Area:   area,
		})
		est.Value += area
	}
	return est, nil
}

// Compute is Compute over the series.
func (s Series) Compute() (float64, error) { return Compute(s.X, s.Y) }

// Breakdown is Breakdown over the series.
func (s Series) Breakdown() (Estimate, error) { return Breakdown(s.X, s.Y) }

func checkInput(x, y []float64) error {
	if err := checkLengths(x, y); err != nil {
		return err
	}
	if len(x) == 0 {
		return fmt.Errorf("%w: empty series", ErrInsufficientData)
	}
	return nil
}
