// SPDX-License-Identifier: MPL-2.0

package value

import (
	"strings"

	"github.com/conformance-labs/ruleops/operator"
)

const typeSelectMultiple = operator.TypeSelectMultiple

func init() {
	operator.Register(typeSelectMultiple, "contains_all", operator.SelectMultiple, false)
	operator.Register(typeSelectMultiple, "is_contained_by", operator.SelectMultiple, false)
	operator.Register(typeSelectMultiple, "is_not_contained_by", operator.SelectMultiple, false)
	operator.Register(typeSelectMultiple, "shares_at_least_one_element_with", operator.SelectMultiple, false)
	operator.Register(typeSelectMultiple, "shares_exactly_one_element_with", operator.SelectMultiple, false)
	operator.Register(typeSelectMultiple, "shares_no_elements_with", operator.SelectMultiple, false)
}

// SelectMultiple wraps an iterable of values, semantically a set. Like
// Select, its operator arguments are not coerced.
type SelectMultiple struct {
	items []any
}

// NewSelectMultiple constructs a SelectMultiple from items.
func NewSelectMultiple(items []any) (SelectMultiple, error) {
	return SelectMultiple{items: items}, nil
}

func normalizeElement(v any) any {
	if s, ok := v.(string); ok {
		return strings.ToLower(s)
	}
	return v
}

// distinctNormalizedSet returns items reduced to their normalized-form set.
func distinctNormalizedSet(items []any) map[any]struct{} {
	set := make(map[any]struct{}, len(items))
	for _, v := range items {
		set[normalizeElement(v)] = struct{}{}
	}
	return set
}

// intersectionSize reports the number of distinct normalized values shared
// by a and b.
func intersectionSize(a, b []any) int {
	bSet := distinctNormalizedSet(b)
	seen := make(map[any]struct{})
	count := 0
	for _, v := range a {
		n := normalizeElement(v)
		if _, ok := seen[n]; ok {
			continue
		}
		if _, ok := bSet[n]; ok {
			count++
			seen[n] = struct{}{}
		}
	}
	return count
}

// subsetOf reports whether every element of a is present in b.
func subsetOf(a, b []any) bool {
	bSet := distinctNormalizedSet(b)
	for _, v := range a {
		if _, ok := bSet[normalizeElement(v)]; !ok {
			return false
		}
	}
	return true
}

// ContainsAll reports whether every element of vs is present in s.
func (s SelectMultiple) ContainsAll(vs []any) bool {
	return subsetOf(vs, s.items)
}

// IsContainedBy reports whether every element of s is present in vs.
func (s SelectMultiple) IsContainedBy(vs []any) bool {
	return subsetOf(s.items, vs)
}

// IsNotContainedBy is the negation of IsContainedBy.
func (s SelectMultiple) IsNotContainedBy(vs []any) bool {
	return !s.IsContainedBy(vs)
}

// SharesAtLeastOneElementWith reports whether s and vs intersect.
func (s SelectMultiple) SharesAtLeastOneElementWith(vs []any) bool {
	return intersectionSize(s.items, vs) > 0
}

// SharesExactlyOneElementWith reports whether s and vs share exactly one
// distinct element.
func (s SelectMultiple) SharesExactlyOneElementWith(vs []any) bool {
	return intersectionSize(s.items, vs) == 1
}

// SharesNoElementsWith reports whether s and vs do not intersect.
func (s SelectMultiple) SharesNoElementsWith(vs []any) bool {
	return intersectionSize(s.items, vs) == 0
}

// GetAllOperators returns the select-multiple operator catalog.
func (SelectMultiple) GetAllOperators() []operator.Meta {
	return operator.GetAllOperators(typeSelectMultiple)
}
