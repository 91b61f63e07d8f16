// Package input turns user-supplied text and data files into validated sample series.
package input

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/bft-labs/midpoint/pkg/integrate"
)

// ErrParse is returned when a value is not a valid real number.
var ErrParse = errors.New("input: invalid number")

// ParseError reports the position and text of a value that failed to parse.
type ParseError struct {
	Index int
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("item %d is empty", e.Index+1)
	}
	return fmt.Sprintf("item %d (%q) is not a number", e.Index+1, e.Value)
}

// Unwrap makes errors.Is(err, ErrParse) hold for every ParseError.
func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrParse}
	}
	return []error{ErrParse, e.Err}
}

// ParseList parses a comma-separated list of real numbers.
// Surrounding whitespace, including newlines from text areas, is ignored.
func ParseList(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("%w: empty list", ErrParse)
	}

	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, &ParseError{Index: i}
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			var numErr *strconv.NumError
			// out-of-range values still parse to ±Inf, which is a real float64
			if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) && math.IsInf(v, 0) {
				out = append(out, v)
				continue
			}
			return nil, &ParseError{Index: i, Value: p, Err: err}
		}
		out = append(out, v)
	}
	return out, nil
}

// ParseSeries parses the x and y lists and validates the resulting series.
// The returned error wraps ErrParse, integrate.ErrLengthMismatch or
// integrate.ErrInsufficientData.
func ParseSeries(xs, ys string) (integrate.Series, error) {
	x, err := ParseList(xs)
	if err != nil {
		return integrate.Series{}, fmt.Errorf("x: %w", err)
	}
	y, err := ParseList(ys)
	if err != nil {
		return integrate.Series{}, fmt.Errorf("y: %w", err)
	}

	s := integrate.Series{X: x, Y: y}
	if err := s.Validate(); err != nil {
		return integrate.Series{}, err
	}
	return s, nil
}

// FormatList renders values as a comma-separated list that ParseList accepts.
func FormatList(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ", ")
}
