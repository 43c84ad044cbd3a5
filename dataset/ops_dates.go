// SPDX-License-Identifier: MPL-2.0

package dataset

import (
	"fmt"

	"github.com/conformance-labs/ruleops"
	"github.com/conformance-labs/ruleops/internal/vecutil"
	"github.com/conformance-labs/ruleops/operator"
)

func init() {
	operator.Register(typeDataframe, "invalid_date", operator.Dataframe, false)
	operator.Register(typeDataframe, "is_complete_date", operator.Dataframe, false)
	operator.Register(typeDataframe, "is_incomplete_date", operator.Dataframe, false)
	operator.Register(typeDataframe, "date_eq", operator.Dataframe, false)
	operator.Register(typeDataframe, "date_ne", operator.Dataframe, false)
	operator.Register(typeDataframe, "date_lt", operator.Dataframe, false)
	operator.Register(typeDataframe, "date_le", operator.Dataframe, false)
	operator.Register(typeDataframe, "date_gt", operator.Dataframe, false)
	operator.Register(typeDataframe, "date_ge", operator.Dataframe, false)
}

// InvalidDate reports where target fails ISO-8601 parsing.
func (d *Dataset) InvalidDate(target string) (Mask, error) {
	const op = "Dataset.InvalidDate"
	name := d.rewriteColumn(target)
	col, ok := d.table.Column(name)
	if !ok {
		return nil, fmt.Errorf("%s: %w: %q", op, ruleops.ErrUnknownColumn, name)
	}
	out := make(Mask, len(col))
	for i, v := range col {
		s, ok := cellString(v)
		out[i] = !ok || !vecutil.IsValidDate(s)
	}
	return out, nil
}

// IsCompleteDate reports where target parses as a full year-month-day
// plus time-of-day value.
func (d *Dataset) IsCompleteDate(target string) (Mask, error) {
	const op = "Dataset.IsCompleteDate"
	name := d.rewriteColumn(target)
	col, ok := d.table.Column(name)
	if !ok {
		return nil, fmt.Errorf("%s: %w: %q", op, ruleops.ErrUnknownColumn, name)
	}
	out := make(Mask, len(col))
	for i, v := range col {
		s, ok := cellString(v)
		out[i] = ok && vecutil.IsCompleteDate(s)
	}
	return out, nil
}

// IsIncompleteDate reports where target parses as a valid ISO-8601 value
// that is not a complete year-month-day-time form (e.g. a bare year).
func (d *Dataset) IsIncompleteDate(target string) (Mask, error) {
	const op = "Dataset.IsIncompleteDate"
	name := d.rewriteColumn(target)
	col, ok := d.table.Column(name)
	if !ok {
		return nil, fmt.Errorf("%s: %w: %q", op, ruleops.ErrUnknownColumn, name)
	}
	out := make(Mask, len(col))
	for i, v := range col {
		s, ok := cellString(v)
		out[i] = ok && vecutil.IsValidDate(s) && !vecutil.IsCompleteDate(s)
	}
	return out, nil
}

// dateComponentMask compares args.DateComponent of target against
// comparisonData using vecutil.CompareDateComponent with comparison op.
// Unparsable dates compare false; the ne/le/ge operators are complements
// of eq/gt/lt, so each pair partitions every row.
func (d *Dataset) dateComponentMask(op string, args Args, cmpOp string) (Mask, error) {
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

	out := make(Mask, len(col))
	for i, v := range col {
		ls, lok := cellString(v)
		rs, rok := cellString(cmpCol[i])
		if !lok || !rok {
			out[i] = false
			continue
		}
		out[i] = vecutil.CompareDateComponent(args.DateComponent, ls, rs, cmpOp)
	}
	return out, nil
}

func (d *Dataset) DateEq(args Args) (Mask, error) { return d.dateComponentMask("Dataset.DateEq", args, "eq") }
func (d *Dataset) DateLt(args Args) (Mask, error) { return d.dateComponentMask("Dataset.DateLt", args, "lt") }
func (d *Dataset) DateGt(args Args) (Mask, error) { return d.dateComponentMask("Dataset.DateGt", args, "gt") }

// DateNe is DateEq's dual.
func (d *Dataset) DateNe(args Args) (Mask, error) {
	m, err := d.dateComponentMask("Dataset.DateNe", args, "eq")
	if err != nil {
		return nil, err
	}
	return m.Not(), nil
}

// DateLe is DateGt's dual.
func (d *Dataset) DateLe(args Args) (Mask, error) {
	m, err := d.dateComponentMask("Dataset.DateLe", args, "gt")
	if err != nil {
		return nil, err
	}
	return m.Not(), nil
}

// DateGe is DateLt's dual.
func (d *Dataset) DateGe(args Args) (Mask, error) {
	m, err := d.dateComponentMask("Dataset.DateGe", args, "lt")
	if err != nil {
		return nil, err
	}
	return m.Not(), nil
}
