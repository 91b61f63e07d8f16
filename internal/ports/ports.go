package ports

import (
	"context"

	"github.com/bft-labs/midpoint/pkg/integrate"
	"github.com/bft-labs/midpoint/pkg/log"
)

// Logger is the structured logger used across midpoint.
type Logger = log.Logger

// Field is a structured log field.
type Field = log.Field

// Observer receives the outcome of every computation.
// err is nil on success; points is the series length, or -1 when unknown.
type Observer interface {
	Observe(source string, points int, err error)
}

// ChartSink persists a chart of an estimate.
type ChartSink interface {
	Save(ctx context.Context, s integrate.Series, est integrate.Estimate) error
}
