// SPDX-License-Identifier: MPL-2.0

package dataset

import (
	"fmt"
	"sort"

	"github.com/conformance-labs/ruleops"
	"github.com/conformance-labs/ruleops/internal/setutil"
)

// sortInts stable-sorts a slice of row indices with less comparing the
// row indices themselves (not positions), so callers can close over a
// column and compare cell values directly.
func sortInts(idx []int, less func(a, b int) bool) {
	sort.SliceStable(idx, func(i, j int) bool { return less(idx[i], idx[j]) })
}

// groupRowIndices partitions row indices by the values of the named
// column, returning group keys in first-seen order (so downstream
// operators can iterate groups deterministically) alongside each group's
// row indices in original row order.
func (d *Dataset) groupRowIndices(colName string) (keys []string, groups map[string][]int, err error) {
	const op = "Dataset.groupRowIndices"
	col, ok := d.table.Column(colName)
	if !ok {
		return nil, nil, fmt.Errorf("%s: %w: %q", op, ruleops.ErrUnknownColumn, colName)
	}
	order := setutil.NewOrderedSet[string]()
	groups = make(map[string][]int)
	for i, v := range col {
		k := cellKey(v)
		order.Add(k)
		groups[k] = append(groups[k], i)
	}
	return order.Keys(), groups, nil
}

// groupRowIndicesBy2 partitions rows by the combined key of two columns.
func (d *Dataset) groupRowIndicesBy2(colA, colB string) (keys []string, groups map[string][]int, err error) {
	const op = "Dataset.groupRowIndicesBy2"
	a, ok := d.table.Column(colA)
	if !ok {
		return nil, nil, fmt.Errorf("%s: %w: %q", op, ruleops.ErrUnknownColumn, colA)
	}
	b, ok := d.table.Column(colB)
	if !ok {
		return nil, nil, fmt.Errorf("%s: %w: %q", op, ruleops.ErrUnknownColumn, colB)
	}
	order := setutil.NewOrderedSet[string]()
	groups = make(map[string][]int)
	for i := range a {
		k := cellKey(a[i]) + "\x1f" + cellKey(b[i])
		order.Add(k)
		groups[k] = append(groups[k], i)
	}
	return order.Keys(), groups, nil
}
