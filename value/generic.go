// SPDX-License-Identifier: MPL-2.0

package value

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/conformance-labs/ruleops/operator"
)

const typeGeneric = operator.TypeGeneric

func init() {
	operator.Register(typeGeneric, "equal_to", operator.Text, false)
	operator.Register(typeGeneric, "not_equal_to", operator.Text, false)
	operator.Register(typeGeneric, "is_contained_by", operator.SelectMultiple, false)
}

// Generic accepts any payload and dispatches equal_to/not_equal_to/
// is_contained_by to the scalar family matching the stored variant's
// runtime shape.
type Generic struct {
	raw any
}

// NewGeneric wraps any payload; construction never fails, since Generic
// accepts any shape.
func NewGeneric(payload any) (Generic, error) {
	return Generic{raw: payload}, nil
}

// EqualTo defers to Numeric.EqualTo when the stored value is a decimal,
// otherwise to String.EqualTo.
func (g Generic) EqualTo(other any) (bool, error) {
	const op = "Generic.EqualTo"
	if d, ok := g.raw.(decimal.Decimal); ok {
		n := Numeric{d: d}
		eq, err := n.EqualTo(other)
		if err != nil {
			return false, fmt.Errorf("%s: %w", op, err)
		}
		return eq, nil
	}
	s, err := NewString(g.raw)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	eq, err := s.EqualTo(other)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return eq, nil
}

// NotEqualTo is the negation of EqualTo.
func (g Generic) NotEqualTo(other any) (bool, error) {
	const op = "Generic.NotEqualTo"
	eq, err := g.EqualTo(other)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return !eq, nil
}

// IsContainedBy wraps a non-sequence scalar raw value as a singleton
// sequence, then defers to SelectMultiple.IsContainedBy. A sequence
// payload is used as-is.
func (g Generic) IsContainedBy(vs []any) bool {
	items, ok := g.raw.([]any)
	if !ok {
		items = []any{g.raw}
	}
	sm := SelectMultiple{items: items}
	return sm.IsContainedBy(vs)
}

// GetAllOperators returns Generic's catalog composed with every family it
// dispatches into.
func (Generic) GetAllOperators() []operator.Meta {
	return operator.GetAllOperators(typeGeneric,
		operator.TypeString,
		operator.TypeNumeric,
		operator.TypeBoolean,
		operator.TypeSelect,
		operator.TypeSelectMultiple,
		operator.TypeDataframe,
	)
}
