// SPDX-License-Identifier: MPL-2.0

package dataset

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/conformance-labs/ruleops"
	"github.com/conformance-labs/ruleops/internal/vecutil"
	"github.com/conformance-labs/ruleops/operator"
)

func init() {
	operator.Register(typeDataframe, "contains_all", operator.Dataframe, false)
	operator.Register(typeDataframe, "not_contains_all", operator.Dataframe, false)
	operator.Register(typeDataframe, "has_different_values", operator.Dataframe, false)
	operator.Register(typeDataframe, "has_same_values", operator.Dataframe, false)
	operator.Register(typeDataframe, "is_ordered_by", operator.Dataframe, false)
	operator.Register(typeDataframe, "is_not_ordered_by", operator.Dataframe, false)
	operator.Register(typeDataframe, "additional_columns_empty", operator.Dataframe, false)
	operator.Register(typeDataframe, "additional_columns_not_empty", operator.Dataframe, false)
}

// cellKey renders v into a hashable comparison key, used wherever the
// engine needs set/uniqueness semantics over heterogeneous cell values.
func cellKey(v any) string {
	if v == nil {
		return "\x00nil"
	}
	return fmt.Sprintf("%v", v)
}

// ContainsAll reports whether target's unique values are a superset of the
// values flattened from the named comparator column(s), or of a literal
// list when ValueIsLiteral is set. Scalar
// boolean; an empty candidate set is vacuously contained.
func (d *Dataset) ContainsAll(args Args) (bool, error) {
	const op = "Dataset.ContainsAll"
	target := d.rewriteColumn(args.Target)
	col, ok := d.table.Column(target)
	if !ok {
		return false, fmt.Errorf("%s: %w: %q", op, ruleops.ErrUnknownColumn, target)
	}

	var candidates []any
	if args.ValueIsLiteral {
		switch v := args.Comparator.(type) {
		case []any:
			candidates = v
		default:
			candidates = []any{v}
		}
	} else {
		var names []string
		switch v := args.Comparator.(type) {
		case string:
			names = []string{v}
		case []string:
			names = v
		default:
			return false, fmt.Errorf("%s: %w: comparator must name one or more columns", op, ruleops.ErrInvalidArgument)
		}
		cols := make([][]any, 0, len(names))
		for _, n := range names {
			rn := d.rewriteColumn(n)
			c, ok := d.table.Column(rn)
			if !ok {
				return false, fmt.Errorf("%s: %w: %q", op, ruleops.ErrUnknownColumn, rn)
			}
			cols = append(cols, c)
		}
		candidates = vecutil.FlattenColumns(cols...)
	}

	targetSet := make(map[string]struct{}, len(col))
	for _, v := range col {
		targetSet[cellKey(v)] = struct{}{}
	}
	seen := make(map[string]struct{})
	for _, c := range candidates {
		k := cellKey(c)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		if _, ok := targetSet[k]; !ok {
			return false, nil
		}
	}
	return true, nil
}

// NotContainsAll is ContainsAll's dual.
func (d *Dataset) NotContainsAll(args Args) (bool, error) {
	all, err := d.ContainsAll(args)
	if err != nil {
		return false, err
	}
	return !all, nil
}

// HasDifferentValues reports whether target has more than one distinct
// value. Scalar boolean.
func (d *Dataset) HasDifferentValues(target string) (bool, error) {
	const op = "Dataset.HasDifferentValues"
	name := d.rewriteColumn(target)
	col, ok := d.table.Column(name)
	if !ok {
		return false, fmt.Errorf("%s: %w: %q", op, ruleops.ErrUnknownColumn, name)
	}
	seen := make(map[string]struct{})
	for _, v := range col {
		seen[cellKey(v)] = struct{}{}
		if len(seen) > 1 {
			return true, nil
		}
	}
	return false, nil
}

// HasSameValues is HasDifferentValues' dual.
func (d *Dataset) HasSameValues(target string) (bool, error) {
	diff, err := d.HasDifferentValues(target)
	if err != nil {
		return false, err
	}
	return !diff, nil
}

// lessCell orders two cells, preferring decimal comparison when both
// parse numerically and falling back to their string form otherwise.
func lessCell(a, b any) bool {
	if da, aok := cellDecimal(a); aok {
		if db, bok := cellDecimal(b); bok {
			return da.LessThan(db)
		}
	}
	as, _ := cellString(a)
	bs, _ := cellString(b)
	return as < bs
}

// IsOrderedBy reports, per row, whether target[i] equals the i-th element
// of target sorted in the given order ("asc" or "dsc").
func (d *Dataset) IsOrderedBy(target, order string) (Mask, error) {
	const op = "Dataset.IsOrderedBy"
	name := d.rewriteColumn(target)
	col, ok := d.table.Column(name)
	if !ok {
		return nil, fmt.Errorf("%s: %w: %q", op, ruleops.ErrUnknownColumn, name)
	}
	var ascending bool
	switch order {
	case orderAsc:
		ascending = true
	case orderDsc:
		ascending = false
	default:
		return nil, fmt.Errorf("%s: %w: %q", op, ruleops.ErrUnsupportedOrder, order)
	}

	sorted := make([]any, len(col))
	copy(sorted, col)
	sort.SliceStable(sorted, func(i, j int) bool {
		if ascending {
			return lessCell(sorted[i], sorted[j])
		}
		return lessCell(sorted[j], sorted[i])
	})

	out := make(Mask, len(col))
	for i := range col {
		out[i] = cellEqual(col[i], sorted[i])
	}
	return out, nil
}

// IsNotOrderedBy is IsOrderedBy's dual.
func (d *Dataset) IsNotOrderedBy(target, order string) (Mask, error) {
	m, err := d.IsOrderedBy(target, order)
	if err != nil {
		return nil, err
	}
	return m.Not(), nil
}

// additionalColumns returns the names of table columns matching
// ^<prefix>\d+$, ordered by ascending numeric suffix.
func (d *Dataset) additionalColumns(prefix string) []string {
	type numbered struct {
		name string
		n    int
	}
	var found []numbered
	re := regexp.MustCompile("^" + regexp.QuoteMeta(prefix) + `(\d+)$`)
	for _, name := range d.table.ColumnNames() {
		m := re.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		found = append(found, numbered{name: name, n: n})
	}
	sort.Slice(found, func(i, j int) bool { return found[i].n < found[j].n })
	out := make([]string, len(found))
	for i, f := range found {
		out[i] = f.name
	}
	return out
}

// AdditionalColumnsEmpty reports, per row, whether there exists a position
// i in the target<N> column family where column i is empty and column i+1
// is non-empty.
func (d *Dataset) AdditionalColumnsEmpty(target string) (Mask, error) {
	const op = "Dataset.AdditionalColumnsEmpty"
	prefix := d.rewriteColumn(target)
	names := d.additionalColumns(prefix)
	rows := d.table.Rows()
	cols := make([][]any, len(names))
	for i, n := range names {
		c, ok := d.table.Column(n)
		if !ok {
			return nil, fmt.Errorf("%s: %w: %q", op, ruleops.ErrUnknownColumn, n)
		}
		cols[i] = c
	}
	out := make(Mask, rows)
	for row := 0; row < rows; row++ {
		for i := 0; i+1 < len(cols); i++ {
			if cellIsEmpty(cols[i][row]) && !cellIsEmpty(cols[i+1][row]) {
				out[row] = true
				break
			}
		}
	}
	return out, nil
}

// AdditionalColumnsNotEmpty is AdditionalColumnsEmpty's dual.
func (d *Dataset) AdditionalColumnsNotEmpty(target string) (Mask, error) {
	m, err := d.AdditionalColumnsEmpty(target)
	if err != nil {
		return nil, err
	}
	return m.Not(), nil
}
