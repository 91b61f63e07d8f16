package server

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bft-labs/midpoint/internal/app"
	"github.com/bft-labs/midpoint/internal/input"
)

// metrics implements ports.Observer.
type metrics struct {
	computations *prometheus.CounterVec
	points       prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		computations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "midpoint",
			Name:      "computations_total",
			Help:      "Integral computations by source and outcome.",
		}, []string{"source", "outcome"}),
		points: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "midpoint",
			Name:      "series_points",
			Help:      "Number of samples in successfully integrated series.",
			Buckets:   prometheus.ExponentialBuckets(2, 2, 12),
		}),
	}
}

func (m *metrics) Observe(source string, points int, err error) {
	m.computations.WithLabelValues(source, outcome(err)).Inc()
	if err == nil && points > 0 {
		m.points.Observe(float64(points))
	}
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if errors.Is(err, app.ErrTooManyPoints) {
		return "too_many_points"
	}
	return string(input.Classify(err))
}
