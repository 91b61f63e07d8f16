package input

import "strconv"

// DefaultPrecision is the number of decimals used to display an estimate.
const DefaultPrecision = 4

// Format renders v with a fixed number of decimals.
// A negative precision falls back to DefaultPrecision.
func Format(v float64, precision int) string {
	if precision < 0 {
		precision = DefaultPrecision
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}

// Message maps a boundary error to the text shown to the user.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case isParse(err):
		return "Enter valid numbers for x and y (" + err.Error() + ")."
	case isMismatch(err):
		return "The x and y lists must have the same length."
	case isInsufficient(err):
		return "Enter at least two points."
	default:
		return err.Error()
	}
}
