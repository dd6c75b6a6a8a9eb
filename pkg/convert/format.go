package convert

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// DefaultPrecision is the number of decimals shown for a result.
	DefaultPrecision = 6
	// MaxPrecision is the largest precision Format accepts.
	MaxPrecision = 15
)

var groupPrinter = message.NewPrinter(language.English)

// Format renders v with a fixed number of decimals. Rounding is for display
// only. When group is set, thousands are separated English style.
func Format(v float64, precision int, group bool) string {
	if precision < 0 || precision > MaxPrecision {
		precision = DefaultPrecision
	}
	// no "-0.000000", including values that only round to zero
	if math.Abs(v) < 0.5*math.Pow10(-precision) {
		v = 0
	}
	if !group {
		return strconv.FormatFloat(v, 'f', precision, 64)
	}
	return groupPrinter.Sprintf(fmt.Sprintf("%%.%df", precision), v)
}
