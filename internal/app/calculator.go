package app

import (
	"errors"
	"fmt"

	"github.com/bft-labs/midpoint/internal/input"
	"github.com/bft-labs/midpoint/internal/ports"
	"github.com/bft-labs/midpoint/pkg/integrate"
	"github.com/bft-labs/midpoint/pkg/log"
)

// ErrTooManyPoints is returned when a series exceeds the configured limit.
var ErrTooManyPoints = errors.New("app: too many points")

// Result is a validated series together with its estimate.
type Result struct {
	Series    integrate.Series
	Estimate  integrate.Estimate
	Formatted string
	Ascending bool
}

// Value returns the integral estimate.
func (r Result) Value() float64 { return r.Estimate.Value }

// CalculatorConfig holds the settings of a Calculator.
type CalculatorConfig struct {
	Precision int
	MaxPoints int // 0 means unlimited
}

// Calculator validates sample series at the boundary and runs the integrator.
// It is safe for concurrent use.
type Calculator struct {
	cfg      CalculatorConfig
	logger   ports.Logger
	observer ports.Observer
}

// NewCalculator creates a Calculator. logger and observer may be nil.
func NewCalculator(cfg CalculatorConfig, logger ports.Logger, observer ports.Observer) *Calculator {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	if observer == nil {
		observer = noopObserver{}
	}
	return &Calculator{cfg: cfg, logger: logger, observer: observer}
}

// CalculateText parses comma-separated x and y lists and calculates the estimate.
func (c *Calculator) CalculateText(source, xs, ys string) (Result, error) {
	s, err := input.ParseSeries(xs, ys)
	if err != nil {
		c.fail(source, -1, err)
		return Result{}, err
	}
	return c.Calculate(source, s)
}

// Calculate validates s and calculates the estimate.
func (c *Calculator) Calculate(source string, s integrate.Series) (Result, error) {
	if err := s.Validate(); err != nil {
		c.fail(source, s.Len(), err)
		return Result{}, err
	}
	if c.cfg.MaxPoints > 0 && s.Len() > c.cfg.MaxPoints {
		err := fmt.Errorf("%w: %d points, limit is %d", ErrTooManyPoints, s.Len(), c.cfg.MaxPoints)
		c.fail(source, s.Len(), err)
		return Result{}, err
	}

	asc := s.Ascending()
	if !asc {
		c.logger.Warn("x values are not strictly ascending; estimate may be meaningless",
			log.String("source", source), log.Floats("x", s.X))
	}

	est, err := s.Breakdown()
	if err != nil {
		c.fail(source, s.Len(), err)
		return Result{}, err
	}

	res := Result{
		Series:    s,
		Estimate:  est,
		Formatted: input.Format(est.Value, c.cfg.Precision),
		Ascending: asc,
	}
	c.logger.Debug("integral computed",
		log.String("source", source),
		log.Int("points", s.Len()),
		log.Float64("value", est.Value))
	c.observer.Observe(source, s.Len(), nil)
	return res, nil
}

func (c *Calculator) fail(source string, points int, err error) {
	c.logger.Debug("computation rejected",
		log.String("source", source),
		log.String("kind", string(input.Classify(err))),
		log.Err(err))
	c.observer.Observe(source, points, err)
}

type noopObserver struct{}

func (noopObserver) Observe(string, int, error) {}
