// SPDX-License-Identifier: MPL-2.0

package dataset

import (
	"fmt"

	"github.com/conformance-labs/ruleops"
)

// Table is a minimal ordered, named-column, row-aligned columnar store.
// Cell types are not checked; the operators handle string, decimal.Decimal,
// int, int64, float64, bool, []any, map[string]any, and nil cells.
type Table struct {
	order   []string
	columns map[string][]any
	rows    int
}

// NewTable builds a Table from named columns, in the given column order.
// All columns must have equal length; that length becomes the table's row
// count. An empty columns map yields a valid, zero-row, zero-column table.
func NewTable(order []string, columns map[string][]any) (*Table, error) {
	const op = "dataset.NewTable"
	rows := -1
	for _, name := range order {
		col, ok := columns[name]
		if !ok {
			return nil, fmt.Errorf("%s: %w: column %q listed in order but missing", op, ruleops.ErrInvalidPayload, name)
		}
		if rows == -1 {
			rows = len(col)
		} else if len(col) != rows {
			return nil, fmt.Errorf("%s: %w: column %q has %d rows, want %d", op, ruleops.ErrInvalidPayload, name, len(col), rows)
		}
	}
	if rows == -1 {
		rows = 0
	}
	cp := make(map[string][]any, len(columns))
	for name, col := range columns {
		dup := make([]any, len(col))
		copy(dup, col)
		cp[name] = dup
	}
	ord := make([]string, len(order))
	copy(ord, order)
	return &Table{order: ord, columns: cp, rows: rows}, nil
}

// Rows returns the table's row count.
func (t *Table) Rows() int { return t.rows }

// Has reports whether name is a column of t.
func (t *Table) Has(name string) bool {
	_, ok := t.columns[name]
	return ok
}

// Column returns the named column's values, or ok=false if absent.
func (t *Table) Column(name string) ([]any, bool) {
	col, ok := t.columns[name]
	return col, ok
}

// ColumnNames returns the table's column names in declaration order.
func (t *Table) ColumnNames() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// WithColumn returns a new Table equal to t but with name set to values (or
// added, if name is new), leaving t unmodified. Used by target_is_sorted_by
// to stage its scratch rank column without violating the "operators never
// mutate observable table state" contract.
func (t *Table) WithColumn(name string, values []any) (*Table, error) {
	const op = "Table.WithColumn"
	if len(values) != t.rows {
		return nil, fmt.Errorf("%s: %w: column %q has %d rows, want %d", op, ruleops.ErrInvalidArgument, name, len(values), t.rows)
	}
	cp := make(map[string][]any, len(t.columns)+1)
	for k, v := range t.columns {
		cp[k] = v
	}
	_, existed := cp[name]
	cp[name] = values
	ord := t.order
	if !existed {
		ord = make([]string, len(t.order)+1)
		copy(ord, t.order)
		ord[len(t.order)] = name
	}
	return &Table{order: ord, columns: cp, rows: t.rows}, nil
}
