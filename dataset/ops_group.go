// SPDX-License-Identifier: MPL-2.0

package dataset

import (
	"fmt"

	"github.com/conformance-labs/ruleops"
	"github.com/conformance-labs/ruleops/operator"
)

func init() {
	operator.Register(typeDataframe, "empty_within_except_last_row", operator.Dataframe, false)
	operator.Register(typeDataframe, "non_empty_within_except_last_row", operator.Dataframe, false)
	operator.Register(typeDataframe, "is_unique_set", operator.Dataframe, false)
	operator.Register(typeDataframe, "is_not_unique_set", operator.Dataframe, false)
	operator.Register(typeDataframe, "has_next_corresponding_record", operator.Dataframe, false)
	operator.Register(typeDataframe, "does_not_have_next_corresponding_record", operator.Dataframe, false)
	operator.Register(typeDataframe, "present_on_multiple_rows_within", operator.Dataframe, false)
	operator.Register(typeDataframe, "not_present_on_multiple_rows_within", operator.Dataframe, false)
}

// EmptyWithinExceptLastRow groups rows by comparator, drops each group's
// last row in current order, and reports whether any remaining target
// cell is empty. Scalar boolean across the whole table.
func (d *Dataset) EmptyWithinExceptLastRow(args Args) (bool, error) {
	const op = "Dataset.EmptyWithinExceptLastRow"
	target := d.rewriteColumn(args.Target)
	targetCol, ok := d.table.Column(target)
	if !ok {
		return false, fmt.Errorf("%s: %w: %q", op, ruleops.ErrUnknownColumn, target)
	}
	groupCol, ok := args.Comparator.(string)
	if !ok {
		return false, fmt.Errorf("%s: %w: comparator must name the group-by column", op, ruleops.ErrInvalidArgument)
	}
	groupName := d.rewriteColumn(groupCol)
	_, groups, err := d.groupRowIndices(groupName)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	for _, idx := range groups {
		if len(idx) <= 1 {
			continue
		}
		for _, row := range idx[:len(idx)-1] {
			if cellIsEmpty(targetCol[row]) {
				return true, nil
			}
		}
	}
	return false, nil
}

// NonEmptyWithinExceptLastRow is EmptyWithinExceptLastRow's dual.
func (d *Dataset) NonEmptyWithinExceptLastRow(args Args) (bool, error) {
	empty, err := d.EmptyWithinExceptLastRow(args)
	if err != nil {
		return false, err
	}
	return !empty, nil
}

// IsUniqueSet reports, per row, whether its (target,comparator) group has
// at most one member.
func (d *Dataset) IsUniqueSet(args Args) (Mask, error) {
	const op = "Dataset.IsUniqueSet"
	target := d.rewriteColumn(args.Target)
	cmpCol, ok := args.Comparator.(string)
	if !ok {
		return nil, fmt.Errorf("%s: %w: comparator must name a column", op, ruleops.ErrInvalidArgument)
	}
	comparator := d.rewriteColumn(cmpCol)
	_, groups, err := d.groupRowIndicesBy2(target, comparator)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	out := make(Mask, d.table.Rows())
	for _, idx := range groups {
		unique := len(idx) <= 1
		for _, row := range idx {
			out[row] = unique
		}
	}
	return out, nil
}

// IsNotUniqueSet is IsUniqueSet's dual.
func (d *Dataset) IsNotUniqueSet(args Args) (Mask, error) {
	m, err := d.IsUniqueSet(args)
	if err != nil {
		return nil, err
	}
	return m.Not(), nil
}

// HasNextCorrespondingRecord sorts by args.Ordering, groups by args.Within,
// and within each group compares target[:-1] to comparator[1:]; the last
// row of every group gets a null verdict. Output is the exploded
// concatenation of the sorted groups in group-iteration order, not a mask
// over original row positions.
func (d *Dataset) HasNextCorrespondingRecord(args Args) (NullableMask, error) {
	const op = "Dataset.HasNextCorrespondingRecord"
	target := d.rewriteColumn(args.Target)
	targetCol, ok := d.table.Column(target)
	if !ok {
		return nil, fmt.Errorf("%s: %w: %q", op, ruleops.ErrUnknownColumn, target)
	}
	cmpCol, ok := args.Comparator.(string)
	if !ok {
		return nil, fmt.Errorf("%s: %w: comparator must name a column", op, ruleops.ErrInvalidArgument)
	}
	comparator := d.rewriteColumn(cmpCol)
	comparatorCol, ok := d.table.Column(comparator)
	if !ok {
		return nil, fmt.Errorf("%s: %w: %q", op, ruleops.ErrUnknownColumn, comparator)
	}
	within := d.rewriteColumn(args.Within)
	ordering := d.rewriteColumn(args.Ordering)
	orderingCol, ok := d.table.Column(ordering)
	if !ok {
		return nil, fmt.Errorf("%s: %w: %q", op, ruleops.ErrUnknownColumn, ordering)
	}

	keys, groups, err := d.groupRowIndices(within)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make(NullableMask, 0, d.table.Rows())
	for _, k := range keys {
		idx := append([]int(nil), groups[k]...)
		sortRowsByOrdering(idx, orderingCol)
		for pos, row := range idx {
			if pos == len(idx)-1 {
				out = append(out, nil)
				continue
			}
			next := idx[pos+1]
			out = append(out, boolPtr(cellEqual(targetCol[row], comparatorCol[next])))
		}
	}
	return out, nil
}

// sortRowsByOrdering stable-sorts row indices by the values of col.
func sortRowsByOrdering(idx []int, col []any) {
	sortInts(idx, func(i, j int) bool { return lessCell(col[i], col[j]) })
}

// DoesNotHaveNextCorrespondingRecord is the null-preserving complement of
// HasNextCorrespondingRecord.
func (d *Dataset) DoesNotHaveNextCorrespondingRecord(args Args) (NullableMask, error) {
	m, err := d.HasNextCorrespondingRecord(args)
	if err != nil {
		return nil, err
	}
	out := make(NullableMask, len(m))
	for i, v := range m {
		if v == nil {
			out[i] = nil
			continue
		}
		out[i] = boolPtr(!*v)
	}
	return out, nil
}

// PresentOnMultipleRowsWithin reports, per row, whether its args.Within
// group has more than min (args.Min, default 1) members. Output is
// aligned to group iteration order, one entry per group member.
func (d *Dataset) PresentOnMultipleRowsWithin(args Args) (Mask, error) {
	const op = "Dataset.PresentOnMultipleRowsWithin"
	within := d.rewriteColumn(args.Within)
	keys, groups, err := d.groupRowIndices(within)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	min := 1
	if args.Min != nil {
		min = *args.Min
	}
	out := make(Mask, 0, d.table.Rows())
	for _, k := range keys {
		present := len(groups[k]) > min
		for range groups[k] {
			out = append(out, present)
		}
	}
	return out, nil
}

// NotPresentOnMultipleRowsWithin is PresentOnMultipleRowsWithin's dual.
func (d *Dataset) NotPresentOnMultipleRowsWithin(args Args) (Mask, error) {
	m, err := d.PresentOnMultipleRowsWithin(args)
	if err != nil {
		return nil, err
	}
	return m.Not(), nil
}
