package server

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"net/url"

	"github.com/bft-labs/midpoint/internal/input"
	"github.com/bft-labs/midpoint/internal/plot"
	"github.com/bft-labs/midpoint/pkg/log"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type indexPage struct {
	X, Y       string
	Calculated bool
	Result     string
	Error      string
	ChartURL   string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page := indexPage{X: s.cfg.DefaultX, Y: s.cfg.DefaultY}

	if r.Method == http.MethodPost {
		r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}
		page.X = r.PostForm.Get("x")
		page.Y = r.PostForm.Get("y")
		page.Calculated = true

		res, err := s.calc.CalculateText("form", page.X, page.Y)
		switch {
		case err != nil:
			page.Error = input.Message(err)
		case !finite(res.Value()):
			page.Error = nonFiniteMessage
		default:
			page.Result = res.Formatted
			if plottableSeries(res.Series.X) {
				page.ChartURL = "/chart." + string(s.chartFormat()) + "?" + url.Values{
					"x": {input.FormatList(res.Series.X)},
					"y": {input.FormatList(res.Series.Y)},
				}.Encode()
			}
		}
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, page); err != nil {
		s.logger.Error("render index page", log.Err(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Server) chartFormat() plot.Format {
	if s.cfg.Chart.Format == "" {
		return plot.PNG
	}
	return s.cfg.Chart.Format
}

// plottableSeries reports whether x spans a non-empty range.
func plottableSeries(x []float64) bool {
	for i := 1; i < len(x); i++ {
		if x[i] != x[0] {
			return true
		}
	}
	return false
}
