// SPDX-License-Identifier: MPL-2.0

// Package dataset implements the dataframe operator suite: vectorized
// equality, ordering, containment, regex, length, date, relational-
// integrity, codelist-reference, ordering-by, and cross-row predicates
// over a Table.
package dataset

import (
	"fmt"
	"strings"

	"github.com/conformance-labs/ruleops"
	"github.com/conformance-labs/ruleops/operator"
)

// Set is an unordered collection of referent values used by relationship
// and codelist lookups.
type Set map[string]struct{}

// NewSet builds a Set from items.
func NewSet(items ...string) Set {
	s := make(Set, len(items))
	for _, v := range items {
		s[v] = struct{}{}
	}
	return s
}

func (s Set) has(v string) bool {
	_, ok := s[v]
	return ok
}

// RowPredicate evaluates a condition against row i of t.
type RowPredicate func(t *Table, row int) bool

// VLMRecord is one value-level-metadata entry: a row filter plus the
// type/length checks that apply to rows it selects.
type VLMRecord struct {
	Filter      RowPredicate
	TypeCheck   RowPredicate
	LengthCheck RowPredicate
}

// CodelistTerms describes one codelist's extensibility and allowed terms.
type CodelistTerms struct {
	Extensible    bool
	AllowedTerms  Set
}

// CodelistTermMap maps codelist id -> its terms.
type CodelistTermMap map[string]CodelistTerms

// Dataset wraps a Table with the auxiliary metadata the rule engine supplies:
// column-prefix rewriting, relationship data, value-level metadata, and
// codelist maps.
type Dataset struct {
	table             *Table
	columnPrefixMap   map[string]string
	relationshipData  RelationshipData
	valueLevelMetadata []VLMRecord
	columnCodelistMap map[string]Set
	codelistTermMaps  []CodelistTermMap
}

// RelationshipData maps a lookup key to its set of valid referents. The
// key is a row's context value (is_valid_reference with context), a row's
// target value (is_valid_relationship with no context), or a
// context+target composite (is_valid_relationship with context) -- see
// relKey. is_valid_reference with no context ignores the keys and searches
// every set.
type RelationshipData map[string]Set

func relKey(context, value string, hasContext bool) string {
	if !hasContext {
		return value
	}
	return context + "\x1f" + value
}

// Option configures a Dataset at construction time.
type Option func(*Dataset) error

// New constructs a Dataset wrapping table, applying opts in order.
func New(table *Table, opts ...Option) (*Dataset, error) {
	const op = "dataset.New"
	if table == nil {
		return nil, fmt.Errorf("%s: %w: nil table", op, ruleops.ErrInvalidPayload)
	}
	d := &Dataset{table: table}
	for _, o := range opts {
		if err := o(d); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	return d, nil
}

// WithColumnPrefixMap sets the abstract->concrete column-name rewrite map.
func WithColumnPrefixMap(m map[string]string) Option {
	return func(d *Dataset) error {
		d.columnPrefixMap = m
		return nil
	}
}

// WithRelationshipData sets the reference-integrity lookup table.
func WithRelationshipData(m RelationshipData) Option {
	return func(d *Dataset) error {
		d.relationshipData = m
		return nil
	}
}

// WithValueLevelMetadata sets the ordered VLM record list.
func WithValueLevelMetadata(records []VLMRecord) Option {
	return func(d *Dataset) error {
		d.valueLevelMetadata = records
		return nil
	}
}

// WithColumnCodelistMap sets which codelists a column may reference.
func WithColumnCodelistMap(m map[string]Set) Option {
	return func(d *Dataset) error {
		d.columnCodelistMap = m
		return nil
	}
}

// WithCodelistTermMaps sets the ordered list of codelist-id -> terms maps.
func WithCodelistTermMaps(maps []CodelistTermMap) Option {
	return func(d *Dataset) error {
		d.codelistTermMaps = maps
		return nil
	}
}

// Table returns the dataset's underlying table.
func (d *Dataset) Table() *Table { return d.table }

// rewriteColumn applies replacePrefix using d's column_prefix_map. Literal
// values never pass through here.
func (d *Dataset) rewriteColumn(name string) string {
	return replacePrefix(name, d.columnPrefixMap)
}

// replacePrefix performs the longest-match column-prefix rewrite: the
// longest key of prefixMap that prefixes s is substituted once; s is
// returned unchanged if no key matches.
func replacePrefix(s string, prefixMap map[string]string) string {
	bestKey := ""
	for k := range prefixMap {
		if strings.HasPrefix(s, k) && len(k) > len(bestKey) {
			bestKey = k
		}
	}
	if bestKey == "" {
		return s
	}
	return prefixMap[bestKey] + s[len(bestKey):]
}

// Args is the structured argument every dataframe operator accepts. Only
// the fields relevant to a given operator are consulted.
type Args struct {
	Target         string
	Comparator     any
	ValueIsLiteral bool
	Context        string
	Within         string
	Ordering       string
	Order          string
	Prefix         int
	Suffix         int
	Regex          string
	DateComponent  string
	Metadata       string
	Min            *int
}

const (
	orderAsc = "asc"
	orderDsc = "dsc"
)

// resolveComparator computes comparison_data: a literal verbatim, a
// resolved column (returned as its []any value slice), or a degraded
// scalar literal when the string names no known column.
func (d *Dataset) resolveComparator(args Args) (any, error) {
	const op = "Dataset.resolveComparator"
	if args.ValueIsLiteral {
		return args.Comparator, nil
	}
	s, ok := args.Comparator.(string)
	if !ok {
		return nil, fmt.Errorf("%s: %w: comparator must be a column name or literal string", op, ruleops.ErrInvalidArgument)
	}
	name := d.rewriteColumn(s)
	if col, ok := d.table.Column(name); ok {
		return col, nil
	}
	return name, nil
}

// broadcast makes v a per-row slice: if v is already []any it is returned
// as-is (its length is not checked against rows), otherwise every row gets
// the scalar v.
func broadcast(v any, rows int) []any {
	if col, ok := v.([]any); ok {
		return col
	}
	out := make([]any, rows)
	for i := range out {
		out[i] = v
	}
	return out
}

// GetAllOperators returns the dataframe operator catalog for rule
// authoring tools.
func (d *Dataset) GetAllOperators() []operator.Meta {
	return operator.GetAllOperators(typeDataframe)
}
