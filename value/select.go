// SPDX-License-Identifier: MPL-2.0

package value

import (
	"github.com/conformance-labs/ruleops/internal/vecutil"
	"github.com/conformance-labs/ruleops/operator"
)

const typeSelect = operator.TypeSelect

func init() {
	operator.Register(typeSelect, "contains", operator.Select, false)
	operator.Register(typeSelect, "does_not_contain", operator.Select, false)
}

// Select wraps an order-insensitive iterable of values. Arguments to its
// operators are not coerced through a validator.
type Select struct {
	items []any
}

// NewSelect constructs a Select from items. A nil slice is a valid, empty
// Select.
func NewSelect(items []any) (Select, error) {
	return Select{items: items}, nil
}

// Contains reports whether v equals any element, comparing string elements
// case-insensitively.
func (s Select) Contains(v any) bool {
	return vecutil.IsInCaseInsensitive(v, s.items)
}

// DoesNotContain is the negation of Contains.
func (s Select) DoesNotContain(v any) bool {
	return !s.Contains(v)
}

// GetAllOperators returns the select operator catalog.
func (Select) GetAllOperators() []operator.Meta {
	return operator.GetAllOperators(typeSelect)
}
