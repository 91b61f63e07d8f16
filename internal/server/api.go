package server

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"

	"github.com/bft-labs/midpoint/internal/app"
	"github.com/bft-labs/midpoint/internal/input"
	"github.com/bft-labs/midpoint/pkg/integrate"
	"github.com/bft-labs/midpoint/pkg/log"
)

const nonFiniteMessage = "The estimate is not a finite number."

type computeRequest struct {
	X         []float64 `json:"x"`
	Y         []float64 `json:"y"`
	Precision *int      `json:"precision,omitempty"`
}

type computeResponse struct {
	Result    float64             `json:"result"`
	Formatted string              `json:"formatted"`
	Ascending bool                `json:"ascending"`
	Segments  []integrate.Segment `json:"segments"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func (s *Server) handleCompute(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeJSONError(w, http.StatusRequestEntityTooLarge, "request body too large", "too_large")
			return
		}
		s.writeJSONError(w, http.StatusBadRequest, "read body: "+err.Error(), "bad_request")
		return
	}

	if err := s.schema.Validate(body); err != nil {
		s.metrics.Observe("api", -1, input.ErrParse)
		s.writeJSONError(w, http.StatusBadRequest, err.Error(), string(input.KindParse))
		return
	}

	var req computeRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error(), string(input.KindParse))
		return
	}

	res, err := s.calc.Calculate("api", integrate.Series{X: req.X, Y: req.Y})
	if err != nil {
		if errors.Is(err, app.ErrTooManyPoints) {
			s.writeJSONError(w, http.StatusRequestEntityTooLarge, err.Error(), "too_many_points")
			return
		}
		s.writeJSONError(w, http.StatusUnprocessableEntity, input.Message(err), string(input.Classify(err)))
		return
	}

	if !finite(res.Value()) {
		s.writeJSONError(w, http.StatusUnprocessableEntity, nonFiniteMessage, "non_finite")
		return
	}

	formatted := res.Formatted
	if req.Precision != nil {
		formatted = input.Format(res.Value(), *req.Precision)
	}
	s.writeJSON(w, http.StatusOK, computeResponse{
		Result:    res.Value(),
		Formatted: formatted,
		Ascending: res.Ascending,
		Segments:  res.Estimate.Segments,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("write json response", log.Err(err))
	}
}

func (s *Server) writeJSONError(w http.ResponseWriter, status int, msg, kind string) {
	s.writeJSON(w, status, errorResponse{Error: msg, Kind: kind})
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
