// Package plot renders a midpoint-rule estimate as a chart.
package plot

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bft-labs/midpoint/pkg/integrate"
)

// ErrNotPlottable is returned for series that cannot be drawn: fewer than two
// points, a zero-width x-range or non-finite values.
var ErrNotPlottable = errors.New("plot: series cannot be plotted")

// Format selects the output encoding.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

// ParseFormat accepts "png" or "svg" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case PNG, SVG:
		return f, nil
	default:
		return "", fmt.Errorf("unknown chart format %q (want png or svg)", s)
	}
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == SVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// Options controls the chart layout.
type Options struct {
	Width  int
	Height int
	Format Format
	Title  string
}

// DefaultOptions returns a 1000x600 PNG layout.
func DefaultOptions() Options {
	return Options{
		Width:  1000,
		Height: 600,
		Format: PNG,
		Title:  "Data and Integral Area",
	}
}

var (
	dataColor     = drawing.ColorFromHex("007BFF")
	areaColor     = drawing.ColorFromHex("87CEEB")
	midpointColor = drawing.ColorFromHex("E8590C")
	gridColor     = drawing.ColorFromHex("CCCCCC")
)

// pointStyle draws markers only.
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeColor: drawing.ColorTransparent,
		DotWidth:    4,
		DotColor:    col,
	}
}

// Render draws the samples, the midpoint heights and the midpoint-rule area.
// est must be the breakdown of s.
func Render(w io.Writer, s integrate.Series, est integrate.Estimate, opts Options) error {
	if err := plottable(s, est); err != nil {
		return err
	}
	def := DefaultOptions()
	if opts.Width <= 0 {
		opts.Width = def.Width
	}
	if opts.Height <= 0 {
		opts.Height = def.Height
	}
	if opts.Format == "" {
		opts.Format = def.Format
	}
	if opts.Title == "" {
		opts.Title = def.Title
	}

	ch := chart.Chart{
		Title:      opts.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:           "x",
			GridMajorStyle: chart.Style{StrokeColor: gridColor, StrokeWidth: 1, StrokeDashArray: []float64{4, 4}},
		},
		YAxis: chart.YAxis{
			Name:           "y",
			Range:          yRange(s, est),
			GridMajorStyle: chart.Style{StrokeColor: gridColor, StrokeWidth: 1, StrokeDashArray: []float64{4, 4}},
		},
		Series: series(s, est),
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	provider := chart.PNG
	if opts.Format == SVG {
		provider = chart.SVG
	}
	if err := ch.Render(provider, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

func series(s integrate.Series, est integrate.Estimate) []chart.Series {
	midX := make([]float64, 0, len(est.Segments))
	midY := make([]float64, 0, len(est.Segments))
	for _, seg := range est.Segments {
		midX = append(midX, seg.Mid)
		midY = append(midY, seg.Height)
	}

	return []chart.Series{
		areaSeries{
			Name:     "Integral Area",
			Segments: est.Segments,
			Style: chart.Style{
				StrokeColor: areaColor,
				StrokeWidth: 1,
				FillColor:   areaColor.WithAlpha(128),
			},
		},
		chart.ContinuousSeries{
			Name:    "Data",
			XValues: s.X,
			YValues: s.Y,
			Style: chart.Style{
				StrokeColor: dataColor,
				StrokeWidth: 2,
				DotColor:    dataColor,
				DotWidth:    4,
			},
		},
		chart.ContinuousSeries{
			Name:    "Midpoints",
			XValues: midX,
			YValues: midY,
			Style:   pointStyle(midpointColor),
		},
	}
}

// yRange always includes zero so the filled area reads as an integral.
func yRange(s integrate.Series, est integrate.Estimate) *chart.ContinuousRange {
	lo, hi := 0.0, 0.0
	for _, v := range s.Y {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	for _, seg := range est.Segments {
		lo, hi = math.Min(lo, seg.Height), math.Max(hi, seg.Height)
	}
	if hi == lo {
		hi = lo + 1
	}
	pad := (hi - lo) * 0.05
	if lo < 0 {
		lo -= pad
	}
	return &chart.ContinuousRange{Min: lo, Max: hi + pad}
}

func plottable(s integrate.Series, est integrate.Estimate) error {
	if s.Len() < integrate.MinPoints {
		return fmt.Errorf("%w: need at least %d points", ErrNotPlottable, integrate.MinPoints)
	}
	if len(est.Segments) != s.Len()-1 {
		return fmt.Errorf("%w: estimate does not match series", ErrNotPlottable)
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for i := range s.X {
		if !finite(s.X[i]) || !finite(s.Y[i]) {
			return fmt.Errorf("%w: non-finite value at point %d", ErrNotPlottable, i+1)
		}
		lo, hi = math.Min(lo, s.X[i]), math.Max(hi, s.X[i])
	}
	if hi == lo {
		return fmt.Errorf("%w: x-range is empty", ErrNotPlottable)
	}
	for i, seg := range est.Segments {
		if !finite(seg.Height) {
			return fmt.Errorf("%w: non-finite midpoint height in segment %d", ErrNotPlottable, i+1)
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
