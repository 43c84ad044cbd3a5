// SPDX-License-Identifier: MPL-2.0

package dataset

import (
	"fmt"

	"github.com/conformance-labs/ruleops"
	"github.com/conformance-labs/ruleops/internal/scratch"
	"github.com/conformance-labs/ruleops/operator"
)

func init() {
	operator.Register(typeDataframe, "is_ordered_set", operator.Dataframe, false)
	operator.Register(typeDataframe, "is_not_ordered_set", operator.Dataframe, false)
	operator.Register(typeDataframe, "target_is_sorted_by", operator.Dataframe, false)
	operator.Register(typeDataframe, "target_is_not_sorted_by", operator.Dataframe, false)
}

// IsOrderedSet groups rows by the comparator column and reports whether,
// in every group, target's values in encountered order equal their
// ascending sort. Scalar boolean across all groups. The
// comparator must be a single column name.
func (d *Dataset) IsOrderedSet(args Args) (bool, error) {
	const op = "Dataset.IsOrderedSet"
	target := d.rewriteColumn(args.Target)
	targetCol, ok := d.table.Column(target)
	if !ok {
		return false, fmt.Errorf("%s: %w: %q", op, ruleops.ErrUnknownColumn, target)
	}
	cmpCol, ok := args.Comparator.(string)
	if !ok {
		return false, fmt.Errorf("%s: %w: comparator must be a single column name", op, ruleops.ErrOperatorPrecondition)
	}
	groupName := d.rewriteColumn(cmpCol)
	_, groups, err := d.groupRowIndices(groupName)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	for _, idx := range groups {
		sorted := append([]int(nil), idx...)
		sortInts(sorted, func(a, b int) bool { return lessCell(targetCol[a], targetCol[b]) })
		for pos := range idx {
			if !cellEqual(targetCol[idx[pos]], targetCol[sorted[pos]]) {
				return false, nil
			}
		}
	}
	return true, nil
}

// IsNotOrderedSet is IsOrderedSet's dual.
func (d *Dataset) IsNotOrderedSet(args Args) (bool, error) {
	ordered, err := d.IsOrderedSet(args)
	if err != nil {
		return false, err
	}
	return !ordered, nil
}

// SortSpec names one sort key for TargetIsSortedBy, with its own
// direction and null placement.
type SortSpec struct {
	Name         string
	Order        string // "asc" (default) or "dsc"
	NullPosition string // "first" (default) or "last"
}

// sortSpecLess orders rows a and b by one sort key, reporting
// (less, decided): decided is false when the key ties.
func sortSpecLess(col []any, spec SortSpec, a, b int) (less, decided bool) {
	av, bv := col[a], col[b]
	an, bn := cellIsEmpty(av), cellIsEmpty(bv)
	nullsFirst := spec.NullPosition != "last"
	switch {
	case an && bn:
		return false, false
	case an:
		return nullsFirst, true
	case bn:
		return !nullsFirst, true
	}
	if cellEqual(av, bv) {
		return false, false
	}
	lt := lessCell(av, bv)
	if spec.Order == orderDsc {
		lt = !lt
	}
	return lt, true
}

// TargetIsSortedBy checks, per group identified by args.Within, that the
// target column holds each row's 1-based position after sorting the group
// by the comparator sort keys (reversed when args.Order is "dsc"). The
// expected positions are staged in a scratch column on a copy of the
// table, so the caller's table is never touched. Mask output
// is aligned to original row order.
func (d *Dataset) TargetIsSortedBy(args Args) (Mask, error) {
	const op = "Dataset.TargetIsSortedBy"
	target := d.rewriteColumn(args.Target)
	targetCol, ok := d.table.Column(target)
	if !ok {
		return nil, fmt.Errorf("%s: %w: %q", op, ruleops.ErrUnknownColumn, target)
	}
	specs, ok := args.Comparator.([]SortSpec)
	if !ok || len(specs) == 0 {
		return nil, fmt.Errorf("%s: %w: comparator must be a non-empty sort-key list", op, ruleops.ErrInvalidArgument)
	}
	descending := false
	switch args.Order {
	case "", orderAsc:
	case orderDsc:
		descending = true
	default:
		return nil, fmt.Errorf("%s: %w: %q", op, ruleops.ErrUnsupportedOrder, args.Order)
	}
	keyCols := make([][]any, len(specs))
	for i, spec := range specs {
		name := d.rewriteColumn(spec.Name)
		col, ok := d.table.Column(name)
		if !ok {
			return nil, fmt.Errorf("%s: %w: %q", op, ruleops.ErrUnknownColumn, name)
		}
		keyCols[i] = col
	}
	within := d.rewriteColumn(args.Within)
	keys, groups, err := d.groupRowIndices(within)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	expected := make([]any, d.table.Rows())
	for _, k := range keys {
		idx := append([]int(nil), groups[k]...)
		sortInts(idx, func(a, b int) bool {
			for i, spec := range specs {
				if less, decided := sortSpecLess(keyCols[i], spec, a, b); decided {
					return less
				}
			}
			return false
		})
		for pos, row := range idx {
			rank := pos + 1
			if descending {
				rank = len(idx) - pos
			}
			expected[row] = rank
		}
	}

	rankCol := scratch.ColumnName()
	staged, err := d.table.WithColumn(rankCol, expected)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	expectedCol, _ := staged.Column(rankCol)

	out := make(Mask, len(targetCol))
	for i := range targetCol {
		a, aok := cellDecimal(targetCol[i])
		b, bok := cellDecimal(expectedCol[i])
		out[i] = aok && bok && decimalEqual(a, b)
	}
	return out, nil
}

// TargetIsNotSortedBy is TargetIsSortedBy's dual.
func (d *Dataset) TargetIsNotSortedBy(args Args) (Mask, error) {
	m, err := d.TargetIsSortedBy(args)
	if err != nil {
		return nil, err
	}
	return m.Not(), nil
}
