// SPDX-License-Identifier: MPL-2.0

package dataset

import (
	"fmt"
	"strings"

	"github.com/conformance-labs/ruleops"
	"github.com/conformance-labs/ruleops/internal/vecutil"
	"github.com/conformance-labs/ruleops/operator"
)

func init() {
	operator.Register(typeDataframe, "is_valid_reference", operator.Dataframe, false)
	operator.Register(typeDataframe, "is_not_valid_reference", operator.Dataframe, false)
	operator.Register(typeDataframe, "is_valid_relationship", operator.Dataframe, false)
	operator.Register(typeDataframe, "is_not_valid_relationship", operator.Dataframe, false)
	operator.Register(typeDataframe, "is_unique_relationship", operator.Dataframe, false)
	operator.Register(typeDataframe, "is_not_unique_relationship", operator.Dataframe, false)
	operator.Register(typeDataframe, "non_conformant_value_data_type", operator.Dataframe, false)
	operator.Register(typeDataframe, "conformant_value_data_type", operator.Dataframe, false)
	operator.Register(typeDataframe, "non_conformant_value_length", operator.Dataframe, false)
	operator.Register(typeDataframe, "conformant_value_length", operator.Dataframe, false)
	operator.Register(typeDataframe, "references_correct_codelist", operator.Dataframe, false)
	operator.Register(typeDataframe, "does_not_reference_correct_codelist", operator.Dataframe, false)
	operator.Register(typeDataframe, "uses_valid_codelist_terms", operator.Dataframe, false)
	operator.Register(typeDataframe, "does_not_use_valid_codelist_terms", operator.Dataframe, false)
	operator.Register(typeDataframe, "value_has_multiple_references", operator.Dataframe, false)
	operator.Register(typeDataframe, "value_does_not_have_multiple_references", operator.Dataframe, false)
	operator.Register(typeDataframe, "variable_metadata_equal_to", operator.Dataframe, false)
	operator.Register(typeDataframe, "variable_metadata_not_equal_to", operator.Dataframe, false)
}

// referentKey renders a cell into the string form relationship data is
// keyed by, tolerating integer/string type skew: 1 and "1" produce the
// same key.
func referentKey(v any) string {
	if d, ok := cellDecimal(v); ok {
		return d.String()
	}
	s, _ := cellString(v)
	return s
}

// setHasReferent reports membership of v in s under referent-key
// equivalence: an exact string hit first, then the skew-tolerant key.
func setHasReferent(s Set, v any) bool {
	if str, ok := cellString(v); ok && s.has(str) {
		return true
	}
	return s.has(referentKey(v))
}

// IsValidReference checks each target value against relationship_data.
// With a context column, the row's context value selects the sub-keyspace
// (relationship_data[context]); without one, membership in any referent
// set suffices.
func (d *Dataset) IsValidReference(args Args) (Mask, error) {
	const op = "Dataset.IsValidReference"
	target := d.rewriteColumn(args.Target)
	col, ok := d.table.Column(target)
	if !ok {
		return nil, fmt.Errorf("%s: %w: %q", op, ruleops.ErrUnknownColumn, target)
	}
	out := make(Mask, len(col))
	if args.Context == "" {
		for i, v := range col {
			for _, set := range d.relationshipData {
				if setHasReferent(set, v) {
					out[i] = true
					break
				}
			}
		}
		return out, nil
	}
	context := d.rewriteColumn(args.Context)
	ctxCol, ok := d.table.Column(context)
	if !ok {
		return nil, fmt.Errorf("%s: %w: %q", op, ruleops.ErrUnknownColumn, context)
	}
	for i, v := range col {
		ctx, _ := cellString(ctxCol[i])
		if set, ok := d.relationshipData[ctx]; ok {
			out[i] = setHasReferent(set, v)
		}
	}
	return out, nil
}

// IsNotValidReference is IsValidReference's dual.
func (d *Dataset) IsNotValidReference(args Args) (Mask, error) {
	m, err := d.IsValidReference(args)
	if err != nil {
		return nil, err
	}
	return m.Not(), nil
}

// IsValidRelationship looks up, per row, the referent set keyed by the
// target value (composed with the row's context value when a context
// column is given) and requires the row's comparator value to appear in
// it, tolerating integer/string type skew.
func (d *Dataset) IsValidRelationship(args Args) (Mask, error) {
	const op = "Dataset.IsValidRelationship"
	target := d.rewriteColumn(args.Target)
	col, ok := d.table.Column(target)
	if !ok {
		return nil, fmt.Errorf("%s: %w: %q", op, ruleops.ErrUnknownColumn, target)
	}
	cmpName, ok := args.Comparator.(string)
	if !ok {
		return nil, fmt.Errorf("%s: %w: comparator must name a column", op, ruleops.ErrInvalidArgument)
	}
	comparator := d.rewriteColumn(cmpName)
	cmpCol, ok := d.table.Column(comparator)
	if !ok {
		return nil, fmt.Errorf("%s: %w: %q", op, ruleops.ErrUnknownColumn, comparator)
	}
	var ctxCol []any
	hasContext := args.Context != ""
	if hasContext {
		context := d.rewriteColumn(args.Context)
		ctxCol, ok = d.table.Column(context)
		if !ok {
			return nil, fmt.Errorf("%s: %w: %q", op, ruleops.ErrUnknownColumn, context)
		}
	}
	out := make(Mask, len(col))
	for i, v := range col {
		key := referentKey(v)
		if hasContext {
			ctx, _ := cellString(ctxCol[i])
			key = relKey(ctx, key, true)
		}
		set, ok := d.relationshipData[key]
		if !ok {
			continue
		}
		out[i] = setHasReferent(set, cmpCol[i])
	}
	return out, nil
}

// IsNotValidRelationship is IsValidRelationship's dual.
func (d *Dataset) IsNotValidRelationship(args Args) (Mask, error) {
	m, err := d.IsValidRelationship(args)
	if err != nil {
		return nil, err
	}
	return m.Not(), nil
}

// IsNotUniqueRelationship validates that target and comparator stand in a
// one-to-one relationship: after dropping duplicate (target, comparator)
// pairs, any value of either column appearing in more than one surviving
// pair violates the relationship, and every row carrying a violating
// value is flagged.
func (d *Dataset) IsNotUniqueRelationship(args Args) (Mask, error) {
	const op = "Dataset.IsNotUniqueRelationship"
	target := d.rewriteColumn(args.Target)
	col, ok := d.table.Column(target)
	if !ok {
		return nil, fmt.Errorf("%s: %w: %q", op, ruleops.ErrUnknownColumn, target)
	}
	cmpName, ok := args.Comparator.(string)
	if !ok {
		return nil, fmt.Errorf("%s: %w: comparator must name a column", op, ruleops.ErrInvalidArgument)
	}
	comparator := d.rewriteColumn(cmpName)
	cmpCol, ok := d.table.Column(comparator)
	if !ok {
		return nil, fmt.Errorf("%s: %w: %q", op, ruleops.ErrUnknownColumn, comparator)
	}

	pairs := make(map[string]struct{})
	targetCount := make(map[string]int)
	cmpCount := make(map[string]int)
	for i := range col {
		tk, ck := cellKey(col[i]), cellKey(cmpCol[i])
		pair := tk + "\x1f" + ck
		if _, seen := pairs[pair]; seen {
			continue
		}
		pairs[pair] = struct{}{}
		targetCount[tk]++
		cmpCount[ck]++
	}

	out := make(Mask, len(col))
	for i := range col {
		out[i] = targetCount[cellKey(col[i])] > 1 || cmpCount[cellKey(cmpCol[i])] > 1
	}
	return out, nil
}

// IsUniqueRelationship is IsNotUniqueRelationship's dual.
func (d *Dataset) IsUniqueRelationship(args Args) (Mask, error) {
	m, err := d.IsNotUniqueRelationship(args)
	if err != nil {
		return nil, err
	}
	return m.Not(), nil
}

// vlmMask OR-reduces, across every VLM record, the rows its filter
// selects and whose check result matches wantFail.
func (d *Dataset) vlmMask(check func(VLMRecord) RowPredicate, wantFail bool) Mask {
	rows := d.table.Rows()
	out := make(Mask, rows)
	for _, rec := range d.valueLevelMetadata {
		pred := check(rec)
		for row := 0; row < rows; row++ {
			if !rec.Filter(d.table, row) {
				continue
			}
			if pred(d.table, row) != wantFail {
				out[row] = true
			}
		}
	}
	return out
}

// NonConformantValueDataType flags rows selected by any VLM record's
// filter whose type check fails.
func (d *Dataset) NonConformantValueDataType() Mask {
	return d.vlmMask(func(r VLMRecord) RowPredicate { return r.TypeCheck }, true)
}

// ConformantValueDataType flags rows selected by any VLM record's filter
// whose type check succeeds.
func (d *Dataset) ConformantValueDataType() Mask {
	return d.vlmMask(func(r VLMRecord) RowPredicate { return r.TypeCheck }, false)
}

// NonConformantValueLength flags rows selected by any VLM record's filter
// whose length check fails.
func (d *Dataset) NonConformantValueLength() Mask {
	return d.vlmMask(func(r VLMRecord) RowPredicate { return r.LengthCheck }, true)
}

// ConformantValueLength flags rows selected by any VLM record's filter
// whose length check succeeds.
func (d *Dataset) ConformantValueLength() Mask {
	return d.vlmMask(func(r VLMRecord) RowPredicate { return r.LengthCheck }, false)
}

// genericColumnName inverts column_prefix_map: if name starts with a
// concrete prefix, the longest matching one is replaced by its abstract
// form ("AEDECOD" -> "--DECOD"). ok is false when no prefix applies.
func (d *Dataset) genericColumnName(name string) (string, bool) {
	bestAbstract, bestConcrete := "", ""
	for abstract, concrete := range d.columnPrefixMap {
		if strings.HasPrefix(name, concrete) && len(concrete) > len(bestConcrete) {
			bestAbstract, bestConcrete = abstract, concrete
		}
	}
	if bestConcrete == "" {
		return "", false
	}
	return bestAbstract + name[len(bestConcrete):], true
}

// ReferencesCorrectCodelist checks, per row, that the codelist named in
// the comparator column is among those permitted for the target column
// name, trying the exact name in column_codelist_map first and then the
// generic form obtained by inverting column_prefix_map. Columns known
// under neither form are considered valid (open world).
func (d *Dataset) ReferencesCorrectCodelist(args Args) (Mask, error) {
	const op = "Dataset.ReferencesCorrectCodelist"
	target := d.rewriteColumn(args.Target)
	cmpName, ok := args.Comparator.(string)
	if !ok {
		return nil, fmt.Errorf("%s: %w: comparator must name the codelist column", op, ruleops.ErrInvalidArgument)
	}
	codelistCol, ok := d.table.Column(d.rewriteColumn(cmpName))
	if !ok {
		return nil, fmt.Errorf("%s: %w: %q", op, ruleops.ErrUnknownColumn, cmpName)
	}

	permitted, known := d.columnCodelistMap[target]
	if !known {
		if generic, ok := d.genericColumnName(target); ok {
			permitted, known = d.columnCodelistMap[generic]
		}
	}

	out := make(Mask, len(codelistCol))
	for i, v := range codelistCol {
		if !known {
			out[i] = true
			continue
		}
		c, _ := cellString(v)
		out[i] = permitted.has(c)
	}
	return out, nil
}

// DoesNotReferenceCorrectCodelist is ReferencesCorrectCodelist's dual.
func (d *Dataset) DoesNotReferenceCorrectCodelist(args Args) (Mask, error) {
	m, err := d.ReferencesCorrectCodelist(args)
	if err != nil {
		return nil, err
	}
	return m.Not(), nil
}

// UsesValidCodelistTerms checks, per row, the codelist named in the
// target column against the row's term list in the comparator column: the
// row is valid iff some supplied codelist_term_map knows the codelist and
// marks it extensible or lists every term among its allowed_terms.
// Verdicts are OR-reduced across the term maps.
func (d *Dataset) UsesValidCodelistTerms(args Args) (Mask, error) {
	const op = "Dataset.UsesValidCodelistTerms"
	target := d.rewriteColumn(args.Target)
	codelistCol, ok := d.table.Column(target)
	if !ok {
		return nil, fmt.Errorf("%s: %w: %q", op, ruleops.ErrUnknownColumn, target)
	}
	cmpName, ok := args.Comparator.(string)
	if !ok {
		return nil, fmt.Errorf("%s: %w: comparator must name the terms column", op, ruleops.ErrInvalidArgument)
	}
	termsCol, ok := d.table.Column(d.rewriteColumn(cmpName))
	if !ok {
		return nil, fmt.Errorf("%s: %w: %q", op, ruleops.ErrUnknownColumn, cmpName)
	}

	out := make(Mask, len(codelistCol))
	for i := range codelistCol {
		id, _ := cellString(codelistCol[i])
		var terms []any
		switch v := termsCol[i].(type) {
		case []any:
			terms = v
		case nil:
		default:
			terms = []any{v}
		}
		for _, m := range d.codelistTermMaps {
			cl, ok := m[id]
			if !ok {
				continue
			}
			if cl.Extensible || allTermsAllowed(terms, cl.AllowedTerms) {
				out[i] = true
				break
			}
		}
	}
	return out, nil
}

func allTermsAllowed(terms []any, allowed Set) bool {
	for _, t := range terms {
		s, ok := cellString(t)
		if !ok || !allowed.has(s) {
			return false
		}
	}
	return true
}

// DoesNotUseValidCodelistTerms is UsesValidCodelistTerms' dual.
func (d *Dataset) DoesNotUseValidCodelistTerms(args Args) (Mask, error) {
	m, err := d.UsesValidCodelistTerms(args)
	if err != nil {
		return nil, err
	}
	return m.Not(), nil
}

// ValueHasMultipleReferences reports, per row, whether the reference-count
// mapping in the comparator column records more than one reference for
// the row's target value.
func (d *Dataset) ValueHasMultipleReferences(args Args) (Mask, error) {
	const op = "Dataset.ValueHasMultipleReferences"
	target := d.rewriteColumn(args.Target)
	col, ok := d.table.Column(target)
	if !ok {
		return nil, fmt.Errorf("%s: %w: %q", op, ruleops.ErrUnknownColumn, target)
	}
	cmpName, ok := args.Comparator.(string)
	if !ok {
		return nil, fmt.Errorf("%s: %w: comparator must name the reference-count column", op, ruleops.ErrInvalidArgument)
	}
	countsCol, ok := d.table.Column(d.rewriteColumn(cmpName))
	if !ok {
		return nil, fmt.Errorf("%s: %w: %q", op, ruleops.ErrUnknownColumn, cmpName)
	}

	out := make(Mask, len(col))
	for i := range col {
		counts, ok := countsCol[i].(map[string]any)
		if !ok {
			continue
		}
		key, _ := cellString(col[i])
		raw, ok := vecutil.GetDictKey(counts, key)
		if !ok {
			continue
		}
		if n, ok := cellDecimal(raw); ok {
			out[i] = n.IntPart() > 1
		}
	}
	return out, nil
}

// ValueDoesNotHaveMultipleReferences is ValueHasMultipleReferences' dual.
func (d *Dataset) ValueDoesNotHaveMultipleReferences(args Args) (Mask, error) {
	m, err := d.ValueHasMultipleReferences(args)
	if err != nil {
		return nil, err
	}
	return m.Not(), nil
}

// VariableMetadataEqualTo reports, per row, whether the metadata-column
// cell's entry for the target column name equals the comparator value.
func (d *Dataset) VariableMetadataEqualTo(args Args) (Mask, error) {
	const op = "Dataset.VariableMetadataEqualTo"
	target := d.rewriteColumn(args.Target)
	metadata := d.rewriteColumn(args.Metadata)
	metaCol, ok := d.table.Column(metadata)
	if !ok {
		return nil, fmt.Errorf("%s: %w: %q", op, ruleops.ErrUnknownColumn, metadata)
	}
	out := make(Mask, len(metaCol))
	for i := range metaCol {
		meta, ok := metaCol[i].(map[string]any)
		if !ok {
			continue
		}
		v, ok := vecutil.GetDictKey(meta, target)
		if !ok {
			continue
		}
		out[i] = cellEqual(v, args.Comparator)
	}
	return out, nil
}

// VariableMetadataNotEqualTo is VariableMetadataEqualTo's dual.
func (d *Dataset) VariableMetadataNotEqualTo(args Args) (Mask, error) {
	m, err := d.VariableMetadataEqualTo(args)
	if err != nil {
		return nil, err
	}
	return m.Not(), nil
}
