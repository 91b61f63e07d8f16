package input

import (
	"errors"

	"github.com/bft-labs/midpoint/pkg/integrate"
)

// Kind classifies boundary errors.
type Kind string

const (
	KindParse        Kind = "parse"
	KindMismatch     Kind = "length_mismatch"
	KindInsufficient Kind = "insufficient_data"
	KindOther        Kind = "other"
)

// Classify returns the Kind of a boundary error.
func Classify(err error) Kind {
	switch {
	case isParse(err):
		return KindParse
	case isMismatch(err):
		return KindMismatch
	case isInsufficient(err):
		return KindInsufficient
	default:
		return KindOther
	}
}

func isParse(err error) bool        { return errors.Is(err, ErrParse) }
func isMismatch(err error) bool     { return errors.Is(err, integrate.ErrLengthMismatch) }
func isInsufficient(err error) bool { return errors.Is(err, integrate.ErrInsufficientData) }
