// SPDX-License-Identifier: MPL-2.0

package value

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/conformance-labs/ruleops"
	"github.com/conformance-labs/ruleops/internal/vecutil"
	"github.com/conformance-labs/ruleops/operator"
)

const typeNumeric = operator.TypeNumeric

func init() {
	operator.Register(typeNumeric, "equal_to", operator.Numeric, true)
	operator.Register(typeNumeric, "not_equal_to", operator.Numeric, true)
	operator.Register(typeNumeric, "greater_than", operator.Numeric, true)
	operator.Register(typeNumeric, "greater_than_or_equal_to", operator.Numeric, true)
	operator.Register(typeNumeric, "less_than", operator.Numeric, true)
	operator.Register(typeNumeric, "less_than_or_equal_to", operator.Numeric, true)
}

// Epsilon is the tolerance used for numeric equality and ordering.
var Epsilon = decimal.NewFromFloat(1e-6)

// Numeric wraps an arbitrary-precision decimal value.
type Numeric struct {
	d decimal.Decimal
}

// NewNumeric constructs a Numeric from an int, int64, float64, string, or
// decimal.Decimal payload. Floats are converted via decimal-reconstruction
// of their shortest textual form to preserve precision.
func NewNumeric(payload any) (Numeric, error) {
	const op = "value.NewNumeric"
	switch v := payload.(type) {
	case decimal.Decimal:
		return Numeric{d: v}, nil
	case int:
		return Numeric{d: decimal.NewFromInt(int64(v))}, nil
	case int64:
		return Numeric{d: decimal.NewFromInt(v)}, nil
	case float64:
		return Numeric{d: vecutil.FloatToDecimal(v)}, nil
	case float32:
		return Numeric{d: vecutil.FloatToDecimal(float64(v))}, nil
	case string:
		d, ok := vecutil.ParseDecimal(v)
		if !ok {
			return Numeric{}, fmt.Errorf("%s: %w: %q is not numeric", op, ruleops.ErrInvalidPayload, v)
		}
		return Numeric{d: d}, nil
	default:
		return Numeric{}, fmt.Errorf("%s: %w: %T is not numeric", op, ruleops.ErrInvalidPayload, payload)
	}
}

func (n Numeric) Decimal() decimal.Decimal { return n.d }

func coerceNumeric(v any) (decimal.Decimal, error) {
	const op = "value.coerceNumeric"
	w, err := NewNumeric(v)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%s: %w", op, err)
	}
	return w.d, nil
}

// EqualTo reports whether |n-other| <= epsilon.
func (n Numeric) EqualTo(other any) (bool, error) {
	const op = "Numeric.EqualTo"
	o, err := coerceNumeric(other)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return n.d.Sub(o).Abs().LessThanOrEqual(Epsilon), nil
}

// NotEqualTo is the negation of EqualTo.
func (n Numeric) NotEqualTo(other any) (bool, error) {
	const op = "Numeric.NotEqualTo"
	eq, err := n.EqualTo(other)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return !eq, nil
}

// GreaterThan reports whether (n-other) > epsilon.
func (n Numeric) GreaterThan(other any) (bool, error) {
	const op = "Numeric.GreaterThan"
	o, err := coerceNumeric(other)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return n.d.Sub(o).GreaterThan(Epsilon), nil
}

// LessThan reports whether (other-n) > epsilon.
func (n Numeric) LessThan(other any) (bool, error) {
	const op = "Numeric.LessThan"
	o, err := coerceNumeric(other)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return o.Sub(n.d).GreaterThan(Epsilon), nil
}

// GreaterThanOrEqualTo is GreaterThan(other) || EqualTo(other).
func (n Numeric) GreaterThanOrEqualTo(other any) (bool, error) {
	const op = "Numeric.GreaterThanOrEqualTo"
	gt, err := n.GreaterThan(other)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if gt {
		return true, nil
	}
	return n.EqualTo(other)
}

// GetAllOperators returns the numeric operator catalog.
func (Numeric) GetAllOperators() []operator.Meta {
	return operator.GetAllOperators(typeNumeric)
}

// LessThanOrEqualTo is LessThan(other) || EqualTo(other).
func (n Numeric) LessThanOrEqualTo(other any) (bool, error) {
	const op = "Numeric.LessThanOrEqualTo"
	lt, err := n.LessThan(other)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if lt {
		return true, nil
	}
	return n.EqualTo(other)
}
