package vecutil

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// FloatToDecimal converts f to a decimal.Decimal by round-tripping through
// its shortest textual representation, so that e.g. 0.1 becomes exactly
// the decimal "0.1" rather than the binary float's nearest approximation.
func FloatToDecimal(f float64) decimal.Decimal {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	d, err := decimal.NewFromString(s)
	if err != nil {
		// strconv.FormatFloat always produces a string decimal.NewFromString
		// can parse; this path is unreachable in practice.
		return decimal.NewFromFloat(f)
	}
	return d
}

// ParseDecimal parses a textual number into a decimal.Decimal. It is used
// when a dataframe cell or literal comparator arrives as a string that is
// expected to hold a numeric value.
func ParseDecimal(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
