package plot

import (
	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/bft-labs/midpoint/pkg/integrate"
)

// areaSeries draws one midpoint rectangle per segment, from y=0 to the
// segment height, so negative heights shade below the axis.
type areaSeries struct {
	Name     string
	Style    chart.Style
	Segments []integrate.Segment
}

func (a areaSeries) GetName() string           { return a.Name }
func (a areaSeries) GetStyle() chart.Style     { return a.Style }
func (a areaSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (a areaSeries) Validate() error           { return nil }

func (a areaSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, _ chart.Style) {
	r.SetFillColor(a.Style.FillColor)
	r.SetStrokeColor(a.Style.StrokeColor)
	r.SetStrokeWidth(a.Style.StrokeWidth)

	for _, seg := range a.Segments {
		left, base, right, top := rect(seg, canvasBox, xrange, yrange)
		r.MoveTo(left, base)
		r.LineTo(left, top)
		r.LineTo(right, top)
		r.LineTo(right, base)
		r.Close()
		r.FillStroke()
	}
}

// rect maps a segment to canvas coordinates. base is the y=0 line.
func rect(seg integrate.Segment, canvasBox chart.Box, xrange, yrange chart.Range) (left, base, right, top int) {
	left = canvasBox.Left + xrange.Translate(seg.Left)
	right = canvasBox.Left + xrange.Translate(seg.Right)
	base = canvasBox.Bottom - yrange.Translate(0)
	top = canvasBox.Bottom - yrange.Translate(seg.Height)
	return left, base, right, top
}
