// SPDX-License-Identifier: MPL-2.0

package dataset

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/conformance-labs/ruleops"
	"github.com/conformance-labs/ruleops/internal/vecutil"
	"github.com/conformance-labs/ruleops/value"
)

// cellIsEmpty reports whether v is the clinical-null-handling "empty"
// value: nil or the empty string.
func cellIsEmpty(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return s == ""
	}
	return false
}

// cellString coerces v to a string for string-family operators, treating
// nil as "" per the scalar String wrapper's construction rule. ok is false
// when v holds a non-string, non-nil cell (the "type error when any target
// cell is non-string" precondition of the substring operators).
func cellString(v any) (s string, ok bool) {
	if v == nil {
		return "", true
	}
	if str, isStr := v.(string); isStr {
		return str, true
	}
	return "", false
}

// mustCellStrings converts every cell of col to a string, returning a
// precondition-failure error naming op if any cell is not a string.
func mustCellStrings(op, colName string, col []any) ([]string, error) {
	out := make([]string, len(col))
	for i, v := range col {
		s, ok := cellString(v)
		if !ok {
			return nil, fmt.Errorf("%s: %w: column %q row %d is not a string", op, ruleops.ErrOperatorPrecondition, colName, i)
		}
		out[i] = s
	}
	return out, nil
}

// cellDecimal coerces v to a decimal for numeric-family operators. ok is
// false when v is absent, non-numeric, or an unparsable string -- the
// "non-numeric -> not-a-number -> comparison false" ordering policy.
func cellDecimal(v any) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case decimal.Decimal:
		return x, true
	case int:
		return decimal.NewFromInt(int64(x)), true
	case int64:
		return decimal.NewFromInt(x), true
	case float64:
		return vecutil.FloatToDecimal(x), true
	case string:
		return vecutil.ParseDecimal(x)
	default:
		return decimal.Decimal{}, false
	}
}

// decimalEqual reports a == b within value.Epsilon.
func decimalEqual(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(value.Epsilon)
}
