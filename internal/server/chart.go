package server

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/bft-labs/midpoint/internal/input"
	"github.com/bft-labs/midpoint/internal/plot"
	"github.com/bft-labs/midpoint/pkg/log"
)

func (s *Server) handleChart(format plot.Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		res, err := s.calc.CalculateText("chart", q.Get("x"), q.Get("y"))
		if err != nil {
			http.Error(w, input.Message(err), http.StatusBadRequest)
			return
		}

		opts := s.cfg.Chart
		opts.Format = format

		var buf bytes.Buffer
		if err := plot.Render(&buf, res.Series, res.Estimate, opts); err != nil {
			if errors.Is(err, plot.ErrNotPlottable) {
				http.Error(w, err.Error(), http.StatusUnprocessableEntity)
				return
			}
			s.logger.Error("render chart", log.Err(err))
			http.Error(w, "render chart failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", format.ContentType())
		w.Header().Set("Cache-Control", "no-store")
		w.Write(buf.Bytes())
	}
}
