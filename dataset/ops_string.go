// SPDX-License-Identifier: MPL-2.0

package dataset

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/conformance-labs/ruleops"
	"github.com/conformance-labs/ruleops/internal/vecutil"
	"github.com/conformance-labs/ruleops/operator"
)

func init() {
	operator.Register(typeDataframe, "prefix_equal_to", operator.Dataframe, false)
	operator.Register(typeDataframe, "suffix_equal_to", operator.Dataframe, false)
	operator.Register(typeDataframe, "prefix_is_contained_by", operator.Dataframe, false)
	operator.Register(typeDataframe, "suffix_is_contained_by", operator.Dataframe, false)
	operator.Register(typeDataframe, "contains", operator.Dataframe, false)
	operator.Register(typeDataframe, "does_not_contain", operator.Dataframe, false)
	operator.Register(typeDataframe, "contains_case_insensitive", operator.Dataframe, false)
	operator.Register(typeDataframe, "does_not_contain_case_insensitive", operator.Dataframe, false)
	operator.Register(typeDataframe, "is_contained_by", operator.Dataframe, false)
	operator.Register(typeDataframe, "is_not_contained_by", operator.Dataframe, false)
	operator.Register(typeDataframe, "is_contained_by_case_insensitive", operator.Dataframe, false)
	operator.Register(typeDataframe, "is_not_contained_by_case_insensitive", operator.Dataframe, false)
	operator.Register(typeDataframe, "matches_regex", operator.Dataframe, false)
	operator.Register(typeDataframe, "not_matches_regex", operator.Dataframe, false)
	operator.Register(typeDataframe, "prefix_matches_regex", operator.Dataframe, false)
	operator.Register(typeDataframe, "not_prefix_matches_regex", operator.Dataframe, false)
	operator.Register(typeDataframe, "suffix_matches_regex", operator.Dataframe, false)
	operator.Register(typeDataframe, "not_suffix_matches_regex", operator.Dataframe, false)
	operator.Register(typeDataframe, "equals_string_part", operator.Dataframe, false)
	operator.Register(typeDataframe, "starts_with", operator.Dataframe, false)
	operator.Register(typeDataframe, "ends_with", operator.Dataframe, false)
	operator.Register(typeDataframe, "has_equal_length", operator.Dataframe, false)
	operator.Register(typeDataframe, "has_not_equal_length", operator.Dataframe, false)
	operator.Register(typeDataframe, "longer_than", operator.Dataframe, false)
	operator.Register(typeDataframe, "longer_than_or_equal_to", operator.Dataframe, false)
	operator.Register(typeDataframe, "shorter_than", operator.Dataframe, false)
	operator.Register(typeDataframe, "shorter_than_or_equal_to", operator.Dataframe, false)
	operator.Register(typeDataframe, "empty", operator.Dataframe, false)
	operator.Register(typeDataframe, "non_empty", operator.Dataframe, false)
}

// runeSlice returns s sliced to its first (fromStart=true) or last n runes,
// clamping to the whole string when n exceeds its length.
func runeSlice(s string, n int, fromStart bool) string {
	r := []rune(s)
	if n < 0 {
		n = 0
	}
	if n >= len(r) {
		return s
	}
	if fromStart {
		return string(r[:n])
	}
	return string(r[len(r)-n:])
}

// substringMask compares runeSlice(target, n, fromStart) against
// comparisonData element-wise; both sides must be strings.
func (d *Dataset) substringMask(op string, args Args, n int, fromStart bool) (Mask, error) {
	target := d.rewriteColumn(args.Target)
	col, ok := d.table.Column(target)
	if !ok {
		return nil, fmt.Errorf("%s: %w: %q", op, ruleops.ErrUnknownColumn, target)
	}
	targetStrs, err := mustCellStrings(op, target, col)
	if err != nil {
		return nil, err
	}
	cmp, err := d.resolveComparator(args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	cmpCol := broadcast(cmp, d.table.Rows())

	out := make(Mask, len(col))
	for i, s := range targetStrs {
		part := runeSlice(s, n, fromStart)
		cs, ok := cellString(cmpCol[i])
		if !ok {
			return nil, fmt.Errorf("%s: %w: comparator row %d is not a string", op, ruleops.ErrOperatorPrecondition, i)
		}
		out[i] = part == cs
	}
	return out, nil
}

// PrefixEqualTo compares target's first Prefix runes to comparisonData.
func (d *Dataset) PrefixEqualTo(args Args) (Mask, error) {
	return d.substringMask("Dataset.PrefixEqualTo", args, args.Prefix, true)
}

// SuffixEqualTo compares target's last Suffix runes to comparisonData.
func (d *Dataset) SuffixEqualTo(args Args) (Mask, error) {
	return d.substringMask("Dataset.SuffixEqualTo", args, args.Suffix, false)
}

// candidateSet resolves the per-row membership-check operand: a literal is
// broadcast verbatim to every row (a single shared set/scalar); a resolved
// column is used as-is, so a column of list cells gives row-local sets.
func (d *Dataset) candidateSet(args Args) ([]any, error) {
	const op = "Dataset.candidateSet"
	rows := d.table.Rows()
	if args.ValueIsLiteral {
		out := make([]any, rows)
		for i := range out {
			out[i] = args.Comparator
		}
		return out, nil
	}
	s, ok := args.Comparator.(string)
	if !ok {
		return nil, fmt.Errorf("%s: %w: comparator must be a column name or literal", op, ruleops.ErrInvalidArgument)
	}
	name := d.rewriteColumn(s)
	if col, ok := d.table.Column(name); ok {
		return col, nil
	}
	out := make([]any, rows)
	for i := range out {
		out[i] = name
	}
	return out, nil
}

func isMember(needle, candidate any, ci bool) bool {
	if set, ok := candidate.([]any); ok {
		if ci {
			return vecutil.IsInCaseInsensitive(needle, set)
		}
		return vecutil.IsIn(needle, set)
	}
	if ci {
		ns, nok := cellString(needle)
		cs, cok := cellString(candidate)
		if nok && cok {
			return strings.EqualFold(ns, cs)
		}
	}
	return needle == candidate
}

func (d *Dataset) substringContainedBy(op string, args Args, n int, fromStart bool) (Mask, error) {
	target := d.rewriteColumn(args.Target)
	col, ok := d.table.Column(target)
	if !ok {
		return nil, fmt.Errorf("%s: %w: %q", op, ruleops.ErrUnknownColumn, target)
	}
	targetStrs, err := mustCellStrings(op, target, col)
	if err != nil {
		return nil, err
	}
	sets, err := d.candidateSet(args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	out := make(Mask, len(col))
	for i, s := range targetStrs {
		part := runeSlice(s, n, fromStart)
		out[i] = isMember(part, sets[i], false)
	}
	return out, nil
}

// PrefixIsContainedBy checks membership of target's leading Prefix runes
// in comparisonData, supporting row-local list cells.
func (d *Dataset) PrefixIsContainedBy(args Args) (Mask, error) {
	return d.substringContainedBy("Dataset.PrefixIsContainedBy", args, args.Prefix, true)
}

// SuffixIsContainedBy checks membership of target's trailing Suffix runes
// in comparisonData, supporting row-local list cells.
func (d *Dataset) SuffixIsContainedBy(args Args) (Mask, error) {
	return d.substringContainedBy("Dataset.SuffixIsContainedBy", args, args.Suffix, false)
}

// containsMask implements contains/does_not_contain's dual resolution:
// row-wise "is comparator in cell", whether cell is a string (substring
// search) or an iterable (element membership).
func (d *Dataset) containsMask(op string, args Args, ci bool) (Mask, error) {
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
	for i, cell := range col {
		needle := cmpCol[i]
		if list, ok := cell.([]any); ok {
			if ci {
				out[i] = vecutil.IsInCaseInsensitive(needle, list)
			} else {
				out[i] = vecutil.IsIn(needle, list)
			}
			continue
		}
		cellStr, cok := cellString(cell)
		needleStr, nok := cellString(needle)
		if !cok || !nok {
			out[i] = false
			continue
		}
		if ci {
			out[i] = strings.Contains(strings.ToLower(cellStr), strings.ToLower(needleStr))
		} else {
			out[i] = strings.Contains(cellStr, needleStr)
		}
	}
	return out, nil
}

// Contains implements the dataframe contains operator.
func (d *Dataset) Contains(args Args) (Mask, error) {
	return d.containsMask("Dataset.Contains", args, false)
}

// DoesNotContain is Contains' dual.
func (d *Dataset) DoesNotContain(args Args) (Mask, error) {
	m, err := d.containsMask("Dataset.DoesNotContain", args, false)
	if err != nil {
		return nil, err
	}
	return m.Not(), nil
}

// ContainsCaseInsensitive lowercases both sides before the contains check.
func (d *Dataset) ContainsCaseInsensitive(args Args) (Mask, error) {
	return d.containsMask("Dataset.ContainsCaseInsensitive", args, true)
}

// DoesNotContainCaseInsensitive is ContainsCaseInsensitive's dual.
func (d *Dataset) DoesNotContainCaseInsensitive(args Args) (Mask, error) {
	m, err := d.containsMask("Dataset.DoesNotContainCaseInsensitive", args, true)
	if err != nil {
		return nil, err
	}
	return m.Not(), nil
}

func (d *Dataset) isContainedByMask(op string, args Args, ci bool) (Mask, error) {
	target := d.rewriteColumn(args.Target)
	col, ok := d.table.Column(target)
	if !ok {
		return nil, fmt.Errorf("%s: %w: %q", op, ruleops.ErrUnknownColumn, target)
	}
	sets, err := d.candidateSet(args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	out := make(Mask, len(col))
	for i, cell := range col {
		out[i] = isMember(cell, sets[i], ci)
	}
	return out, nil
}

// IsContainedBy reports, row-wise, whether target is in comparisonData.
func (d *Dataset) IsContainedBy(args Args) (Mask, error) {
	return d.isContainedByMask("Dataset.IsContainedBy", args, false)
}

// IsNotContainedBy is IsContainedBy's dual.
func (d *Dataset) IsNotContainedBy(args Args) (Mask, error) {
	m, err := d.isContainedByMask("Dataset.IsNotContainedBy", args, false)
	if err != nil {
		return nil, err
	}
	return m.Not(), nil
}

// IsContainedByCaseInsensitive lowercases both sides first.
func (d *Dataset) IsContainedByCaseInsensitive(args Args) (Mask, error) {
	return d.isContainedByMask("Dataset.IsContainedByCaseInsensitive", args, true)
}

// IsNotContainedByCaseInsensitive is the dual.
func (d *Dataset) IsNotContainedByCaseInsensitive(args Args) (Mask, error) {
	m, err := d.isContainedByMask("Dataset.IsNotContainedByCaseInsensitive", args, true)
	if err != nil {
		return nil, err
	}
	return m.Not(), nil
}

// regexMask applies re (resolved per row from comparisonData, typically a
// literal pattern) to runeSlice(target, n, fromStart); n<0 means "whole
// string" (matches_regex).
func (d *Dataset) regexMask(op string, args Args, n int, fromStart bool) (Mask, error) {
	target := d.rewriteColumn(args.Target)
	col, ok := d.table.Column(target)
	if !ok {
		return nil, fmt.Errorf("%s: %w: %q", op, ruleops.ErrUnknownColumn, target)
	}
	targetStrs, err := mustCellStrings(op, target, col)
	if err != nil {
		return nil, err
	}
	cmp, err := d.resolveComparator(args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	cmpCol := broadcast(cmp, d.table.Rows())

	out := make(Mask, len(col))
	compiled := make(map[string]*regexp.Regexp)
	for i, s := range targetStrs {
		pattern, ok := cellString(cmpCol[i])
		if !ok {
			return nil, fmt.Errorf("%s: %w: regex pattern row %d is not a string", op, ruleops.ErrOperatorPrecondition, i)
		}
		re, cached := compiled[pattern]
		if !cached {
			re, err = regexp.Compile(pattern)
			if err != nil {
				return nil, fmt.Errorf("%s: %w: %s", op, ruleops.ErrInvalidArgument, err)
			}
			compiled[pattern] = re
		}
		subject := s
		if n >= 0 {
			subject = runeSlice(s, n, fromStart)
		}
		out[i] = vecutil.MatchesRegex(re, subject)
	}
	return out, nil
}

// MatchesRegex reports whether comparisonData's pattern matches anywhere
// in target (unanchored search).
func (d *Dataset) MatchesRegex(args Args) (Mask, error) {
	return d.regexMask("Dataset.MatchesRegex", args, -1, true)
}

// NotMatchesRegex is MatchesRegex's dual.
func (d *Dataset) NotMatchesRegex(args Args) (Mask, error) {
	m, err := d.regexMask("Dataset.NotMatchesRegex", args, -1, true)
	if err != nil {
		return nil, err
	}
	return m.Not(), nil
}

// PrefixMatchesRegex applies the search to target's leading Prefix runes.
func (d *Dataset) PrefixMatchesRegex(args Args) (Mask, error) {
	return d.regexMask("Dataset.PrefixMatchesRegex", args, args.Prefix, true)
}

// NotPrefixMatchesRegex is PrefixMatchesRegex's dual.
func (d *Dataset) NotPrefixMatchesRegex(args Args) (Mask, error) {
	m, err := d.regexMask("Dataset.NotPrefixMatchesRegex", args, args.Prefix, true)
	if err != nil {
		return nil, err
	}
	return m.Not(), nil
}

// SuffixMatchesRegex applies the search to target's trailing Suffix runes.
func (d *Dataset) SuffixMatchesRegex(args Args) (Mask, error) {
	return d.regexMask("Dataset.SuffixMatchesRegex", args, args.Suffix, false)
}

// NotSuffixMatchesRegex is SuffixMatchesRegex's dual.
func (d *Dataset) NotSuffixMatchesRegex(args Args) (Mask, error) {
	m, err := d.regexMask("Dataset.NotSuffixMatchesRegex", args, args.Suffix, false)
	if err != nil {
		return nil, err
	}
	return m.Not(), nil
}

// startsEndsMask checks, per row, whether the target string starts
// (fromStart=true) or ends with the comparator string.
func (d *Dataset) startsEndsMask(op string, args Args, fromStart bool) (Mask, error) {
	target := d.rewriteColumn(args.Target)
	col, ok := d.table.Column(target)
	if !ok {
		return nil, fmt.Errorf("%s: %w: %q", op, ruleops.ErrUnknownColumn, target)
	}
	targetStrs, err := mustCellStrings(op, target, col)
	if err != nil {
		return nil, err
	}
	cmp, err := d.resolveComparator(args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	cmpCol := broadcast(cmp, d.table.Rows())

	out := make(Mask, len(col))
	for i, s := range targetStrs {
		cs, ok := cellString(cmpCol[i])
		if !ok {
			out[i] = false
			continue
		}
		if fromStart {
			out[i] = strings.HasPrefix(s, cs)
		} else {
			out[i] = strings.HasSuffix(s, cs)
		}
	}
	return out, nil
}

// StartsWith reports, per row, whether target begins with comparisonData.
func (d *Dataset) StartsWith(args Args) (Mask, error) {
	return d.startsEndsMask("Dataset.StartsWith", args, true)
}

// EndsWith reports, per row, whether target ends with comparisonData.
func (d *Dataset) EndsWith(args Args) (Mask, error) {
	return d.startsEndsMask("Dataset.EndsWith", args, false)
}

// EqualsStringPart parses each comparator cell with args.Regex, capturing
// the first group, and checks equality to target under the clinical null
// rule. Both target and comparator cells must be strings.
func (d *Dataset) EqualsStringPart(args Args) (Mask, error) {
	const op = "Dataset.EqualsStringPart"
	target := d.rewriteColumn(args.Target)
	col, ok := d.table.Column(target)
	if !ok {
		return nil, fmt.Errorf("%s: %w: %q", op, ruleops.ErrUnknownColumn, target)
	}
	targetStrs, err := mustCellStrings(op, target, col)
	if err != nil {
		return nil, err
	}
	re, err := regexp.Compile(args.Regex)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %s", op, ruleops.ErrInvalidArgument, err)
	}
	cmp, err := d.resolveComparator(args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	cmpStrs, err := mustCellStrings(op, "comparator", broadcast(cmp, d.table.Rows()))
	if err != nil {
		return nil, err
	}

	parts := vecutil.VectorizedApplyRegex(re, cmpStrs)
	out := make(Mask, len(col))
	for i, ts := range targetStrs {
		if ts == "" && parts[i] == "" {
			out[i] = false
			continue
		}
		out[i] = ts == parts[i]
	}
	return out, nil
}

// lengthOf resolves v's own comparable length: an integer cell's value
// directly, or a string cell's rune count.
func lengthOf(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case int64:
		return int(x), true
	case string:
		return vecutil.RuneLen(x), true
	default:
		return 0, false
	}
}

// lengthMask compares RuneLen(target) to the comparator's resolved length,
// branching on whether the comparator is an int literal/column or a string
// column whose own length is the comparand. A comparator cell with no
// resolvable length compares false; each not_-dual is the complement of
// its base mask, so the pair stays a partition on such rows.
func (d *Dataset) lengthMask(op string, args Args, cmp func(a, b int) bool) (Mask, error) {
	target := d.rewriteColumn(args.Target)
	col, ok := d.table.Column(target)
	if !ok {
		return nil, fmt.Errorf("%s: %w: %q", op, ruleops.ErrUnknownColumn, target)
	}
	targetStrs, err := mustCellStrings(op, target, col)
	if err != nil {
		return nil, err
	}
	comparison, err := d.resolveComparator(args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	comparisonCol := broadcast(comparison, d.table.Rows())

	lens := vecutil.VectorizedLen(targetStrs)
	out := make(Mask, len(col))
	for i := range targetStrs {
		n, ok := lengthOf(comparisonCol[i])
		if !ok {
			out[i] = false
			continue
		}
		out[i] = cmp(lens[i], n)
	}
	return out, nil
}

// HasEqualLength reports target's length equals the comparator's length.
func (d *Dataset) HasEqualLength(args Args) (Mask, error) {
	return d.lengthMask("Dataset.HasEqualLength", args, func(a, b int) bool { return a == b })
}

// HasNotEqualLength is HasEqualLength's dual.
func (d *Dataset) HasNotEqualLength(args Args) (Mask, error) {
	m, err := d.lengthMask("Dataset.HasNotEqualLength", args, func(a, b int) bool { return a == b })
	if err != nil {
		return nil, err
	}
	return m.Not(), nil
}

// LongerThan reports target's length exceeds the comparator's length.
func (d *Dataset) LongerThan(args Args) (Mask, error) {
	return d.lengthMask("Dataset.LongerThan", args, func(a, b int) bool { return a > b })
}

// LongerThanOrEqualTo is ShorterThan's dual: LongerThan OR HasEqualLength.
func (d *Dataset) LongerThanOrEqualTo(args Args) (Mask, error) {
	m, err := d.lengthMask("Dataset.LongerThanOrEqualTo", args, func(a, b int) bool { return a < b })
	if err != nil {
		return nil, err
	}
	return m.Not(), nil
}

// ShorterThan reports target's length is less than the comparator's length.
func (d *Dataset) ShorterThan(args Args) (Mask, error) {
	return d.lengthMask("Dataset.ShorterThan", args, func(a, b int) bool { return a < b })
}

// ShorterThanOrEqualTo is LongerThan's dual: ShorterThan OR HasEqualLength.
func (d *Dataset) ShorterThanOrEqualTo(args Args) (Mask, error) {
	m, err := d.lengthMask("Dataset.ShorterThanOrEqualTo", args, func(a, b int) bool { return a > b })
	if err != nil {
		return nil, err
	}
	return m.Not(), nil
}

// Empty reports whether target's cell is the empty string or null.
func (d *Dataset) Empty(target string) (Mask, error) {
	const op = "Dataset.Empty"
	name := d.rewriteColumn(target)
	col, ok := d.table.Column(name)
	if !ok {
		return nil, fmt.Errorf("%s: %w: %q", op, ruleops.ErrUnknownColumn, name)
	}
	out := make(Mask, len(col))
	for i, v := range col {
		out[i] = cellIsEmpty(v)
	}
	return out, nil
}

// NonEmpty is Empty's dual.
func (d *Dataset) NonEmpty(target string) (Mask, error) {
	m, err := d.Empty(target)
	if err != nil {
		return nil, err
	}
	return m.Not(), nil
}
