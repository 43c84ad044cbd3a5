// SPDX-License-Identifier: MPL-2.0

package dataset

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/conformance-labs/ruleops"
	"github.com/conformance-labs/ruleops/operator"
)

const typeDataframe = operator.TypeDataframe

func init() {
	operator.Register(typeDataframe, "exists", operator.Dataframe, false)
	operator.Register(typeDataframe, "not_exists", operator.Dataframe, false)
	operator.Register(typeDataframe, "equal_to", operator.Dataframe, false)
	operator.Register(typeDataframe, "not_equal_to", operator.Dataframe, false)
	operator.Register(typeDataframe, "equal_to_case_insensitive", operator.Dataframe, false)
	operator.Register(typeDataframe, "not_equal_to_case_insensitive", operator.Dataframe, false)
	operator.Register(typeDataframe, "less_than", operator.Dataframe, false)
	operator.Register(typeDataframe, "less_than_or_equal_to", operator.Dataframe, false)
	operator.Register(typeDataframe, "greater_than", operator.Dataframe, false)
	operator.Register(typeDataframe, "greater_than_or_equal_to", operator.Dataframe, false)
}

// cellEqual compares two cell values, treating matching decimal.Decimal
// operands with the epsilon tolerance and falling back to string or raw
// equality otherwise.
func cellEqual(a, b any) bool {
	if da, ok := a.(decimal.Decimal); ok {
		if db, ok2 := b.(decimal.Decimal); ok2 {
			return decimalEqual(da, db)
		}
	}
	as, aok := cellString(a)
	bs, bok := cellString(b)
	if aok && bok {
		return as == bs
	}
	return a == b
}

// Exists returns a uniform mask reporting whether target (after prefix
// rewriting) names a column of d.
func (d *Dataset) Exists(target string) Mask {
	name := d.rewriteColumn(target)
	_, ok := d.table.Column(name)
	out := make(Mask, d.table.Rows())
	for i := range out {
		out[i] = ok
	}
	return out
}

// NotExists is the complement of Exists.
func (d *Dataset) NotExists(target string) Mask {
	return d.Exists(target).Not()
}

// equalityMasks computes the equal_to and not_equal_to masks together,
// since both share the clinical-null rule: when both operands at a row are
// empty/absent, BOTH masks are false at that row, so
// not_equal_to is not simply equal_to's complement.
func (d *Dataset) equalityMasks(op string, args Args, caseInsensitive bool) (eq, ne Mask, err error) {
	target := d.rewriteColumn(args.Target)
	col, ok := d.table.Column(target)
	if !ok {
		return nil, nil, fmt.Errorf("%s: %w: %q", op, ruleops.ErrUnknownColumn, target)
	}
	cmp, err := d.resolveComparator(args)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	cmpCol := broadcast(cmp, d.table.Rows())

	eq = make(Mask, len(col))
	ne = make(Mask, len(col))
	for i := range col {
		a, b := col[i], cmpCol[i]
		if cellIsEmpty(a) && cellIsEmpty(b) {
			eq[i], ne[i] = false, false
			continue
		}
		la, lb := a, b
		if caseInsensitive {
			if as, ok := cellString(a); ok {
				la = strings.ToLower(as)
			}
			if bs, ok := cellString(b); ok {
				lb = strings.ToLower(bs)
			}
		}
		isEq := cellEqual(la, lb)
		eq[i] = isEq
		ne[i] = !isEq
	}
	return eq, ne, nil
}

// EqualTo implements the dataframe equal_to operator with clinical
// null-handling.
func (d *Dataset) EqualTo(args Args) (Mask, error) {
	eq, _, err := d.equalityMasks("Dataset.EqualTo", args, false)
	return eq, err
}

// NotEqualTo implements not_equal_to, preserving the clinical null rule.
func (d *Dataset) NotEqualTo(args Args) (Mask, error) {
	_, ne, err := d.equalityMasks("Dataset.NotEqualTo", args, false)
	return ne, err
}

// EqualToCaseInsensitive lowercases both sides before comparing, keeping
// the clinical null rule.
func (d *Dataset) EqualToCaseInsensitive(args Args) (Mask, error) {
	eq, _, err := d.equalityMasks("Dataset.EqualToCaseInsensitive", args, true)
	return eq, err
}

// NotEqualToCaseInsensitive is EqualToCaseInsensitive's dual.
func (d *Dataset) NotEqualToCaseInsensitive(args Args) (Mask, error) {
	_, ne, err := d.equalityMasks("Dataset.NotEqualToCaseInsensitive", args, true)
	return ne, err
}

// orderingMasks computes an ordering comparison element-wise, coercing
// both sides to decimal and treating non-numeric cells as incomparable
// (the comparison is false for that row).
func (d *Dataset) orderingMasks(op string, args Args) ([]decimalPair, error) {
	target := d.rewriteColumn(args.Target)
	col, ok := d.table.Column(target)
	if !ok {
		return nil, fmt.Errorf("%s: %w: %q", op, ruleops.ErrUnknownColumn, target)
	}
	cmp, err := d.resolveComparator(args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	cmpCol := broadcast(cmp, d.table.Rows())

	out := make([]decimalPair, len(col))
	for i := range col {
		a, aok := cellDecimal(col[i])
		b, bok := cellDecimal(cmpCol[i])
		out[i] = decimalPair{a: a, b: b, ok: aok && bok}
	}
	return out, nil
}

type decimalPair struct {
	a, b decimal.Decimal
	ok   bool
}

// LessThan reports target < comparator element-wise, strict (no epsilon).
func (d *Dataset) LessThan(args Args) (Mask, error) {
	pairs, err := d.orderingMasks("Dataset.LessThan", args)
	if err != nil {
		return nil, err
	}
	out := make(Mask, len(pairs))
	for i, p := range pairs {
		out[i] = p.ok && p.a.LessThan(p.b)
	}
	return out, nil
}

// GreaterThan reports target > comparator element-wise, strict.
func (d *Dataset) GreaterThan(args Args) (Mask, error) {
	pairs, err := d.orderingMasks("Dataset.GreaterThan", args)
	if err != nil {
		return nil, err
	}
	out := make(Mask, len(pairs))
	for i, p := range pairs {
		out[i] = p.ok && p.a.GreaterThan(p.b)
	}
	return out, nil
}

// LessThanOrEqualTo is LessThan OR epsilon-equal.
func (d *Dataset) LessThanOrEqualTo(args Args) (Mask, error) {
	pairs, err := d.orderingMasks("Dataset.LessThanOrEqualTo", args)
	if err != nil {
		return nil, err
	}
	out := make(Mask, len(pairs))
	for i, p := range pairs {
		out[i] = p.ok && (p.a.LessThan(p.b) || decimalEqual(p.a, p.b))
	}
	return out, nil
}

// GreaterThanOrEqualTo is GreaterThan OR epsilon-equal.
func (d *Dataset) GreaterThanOrEqualTo(args Args) (Mask, error) {
	pairs, err := d.orderingMasks("Dataset.GreaterThanOrEqualTo", args)
	if err != nil {
		return nil, err
	}
	out := make(Mask, len(pairs))
	for i, p := range pairs {
		out[i] = p.ok && (p.a.GreaterThan(p.b) || decimalEqual(p.a, p.b))
	}
	return out, nil
}
