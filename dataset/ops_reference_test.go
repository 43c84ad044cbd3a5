// SPDX-License-Identifier: MPL-2.0

package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/conformance-labs/ruleops"
)

// referenceFixtures holds the auxiliary metadata shared by the reference
// and codelist tests, authored as YAML instead of sprawling literals.
const referenceFixtures = `
relationship_data:
  S1: [a, b]
  IDVAR1: ["1", "2"]
  CTX1|IDVAR1: [x]
prefix_map:
  "--": AE
column_codelists:
  AEDECOD: [C1, C2]
  "--BODSYS": [C3]
term_maps:
  - C1:
      extensible: true
      allowed_terms: [x]
    C2:
      extensible: false
      allowed_terms: [u, v]
`

type fixtureCodelist struct {
	Extensible   bool     `yaml:"extensible"`
	AllowedTerms []string `yaml:"allowed_terms"`
}

type fixtures struct {
	RelationshipData map[string][]string          `yaml:"relationship_data"`
	PrefixMap        map[string]string            `yaml:"prefix_map"`
	ColumnCodelists  map[string][]string          `yaml:"column_codelists"`
	TermMaps         []map[string]fixtureCodelist `yaml:"term_maps"`
}

// loadFixtures decodes referenceFixtures into the option set New accepts.
func loadFixtures(t *testing.T) []Option {
	t.Helper()
	var f fixtures
	require.NoError(t, yaml.Unmarshal([]byte(referenceFixtures), &f))

	rel := make(RelationshipData, len(f.RelationshipData))
	for k, vs := range f.RelationshipData {
		// A "context|value" fixture key becomes the composite two-level key.
		if ctx, val, ok := strings.Cut(k, "|"); ok {
			k = relKey(ctx, val, true)
		}
		rel[k] = NewSet(vs...)
	}
	codelists := make(map[string]Set, len(f.ColumnCodelists))
	for col, ids := range f.ColumnCodelists {
		codelists[col] = NewSet(ids...)
	}
	termMaps := make([]CodelistTermMap, len(f.TermMaps))
	for i, m := range f.TermMaps {
		tm := make(CodelistTermMap, len(m))
		for id, cl := range m {
			tm[id] = CodelistTerms{Extensible: cl.Extensible, AllowedTerms: NewSet(cl.AllowedTerms...)}
		}
		termMaps[i] = tm
	}
	return []Option{
		WithRelationshipData(rel),
		WithColumnPrefixMap(f.PrefixMap),
		WithColumnCodelistMap(codelists),
		WithCodelistTermMaps(termMaps),
	}
}

// Without a context column, membership in any referent set validates.
func TestDataset_IsValidReference(t *testing.T) {
	t.Parallel()
	d := mustDataset(t,
		[]string{"A"}, map[string][]any{"A": {"a", "c", "b"}},
		loadFixtures(t)...,
	)

	m, err := d.IsValidReference(Args{Target: "A"})
	require.NoError(t, err)
	assert.Equal(t, Mask{true, false, true}, m)

	dual, err := d.IsNotValidReference(Args{Target: "A"})
	require.NoError(t, err)
	assert.Equal(t, m.Not(), dual)
}

func TestDataset_IsValidReference_WithContext(t *testing.T) {
	t.Parallel()
	d := mustDataset(t,
		[]string{"A", "CTX"},
		map[string][]any{
			"A":   {"a", "a"},
			"CTX": {"S1", "S9"},
		},
		loadFixtures(t)...,
	)

	m, err := d.IsValidReference(Args{Target: "A", Context: "CTX"})
	require.NoError(t, err)
	assert.Equal(t, Mask{true, false}, m, "unknown context has no referents")
}

func TestDataset_IsValidRelationship(t *testing.T) {
	t.Parallel()
	t.Run("no-context", func(t *testing.T) {
		d := mustDataset(t,
			[]string{"IDVAR", "IDVARVAL"},
			map[string][]any{
				"IDVAR":    {"IDVAR1", "IDVAR1", "IDVAR9"},
				"IDVARVAL": {"1", 2, "3"},
			},
			loadFixtures(t)...,
		)
		m, err := d.IsValidRelationship(Args{Target: "IDVAR", Comparator: "IDVARVAL"})
		require.NoError(t, err)
		assert.Equal(t, Mask{true, true, false}, m, "integer 2 matches the string referent \"2\"")

		dual, err := d.IsNotValidRelationship(Args{Target: "IDVAR", Comparator: "IDVARVAL"})
		require.NoError(t, err)
		assert.Equal(t, m.Not(), dual)
	})
	t.Run("with-context", func(t *testing.T) {
		d := mustDataset(t,
			[]string{"IDVAR", "IDVARVAL", "RDOMAIN"},
			map[string][]any{
				"IDVAR":    {"IDVAR1", "IDVAR1"},
				"IDVARVAL": {"x", "y"},
				"RDOMAIN":  {"CTX1", "CTX1"},
			},
			loadFixtures(t)...,
		)
		m, err := d.IsValidRelationship(Args{Target: "IDVAR", Comparator: "IDVARVAL", Context: "RDOMAIN"})
		require.NoError(t, err)
		assert.Equal(t, Mask{true, false}, m)
	})
}

func TestDataset_IsNotUniqueRelationship(t *testing.T) {
	t.Parallel()
	// TESTCD<->TEST must be one-to-one. T2 maps to two labels, and "Other"
	// is claimed by two codes; every row carrying those values is flagged.
	d := mustDataset(t,
		[]string{"TESTCD", "TEST"},
		map[string][]any{
			"TESTCD": {"T1", "T1", "T2", "T2", "T3"},
			"TEST":   {"Alpha", "Alpha", "Beta", "Other", "Other"},
		},
	)

	m, err := d.IsNotUniqueRelationship(Args{Target: "TESTCD", Comparator: "TEST"})
	require.NoError(t, err)
	assert.Equal(t, Mask{false, false, true, true, true}, m)

	dual, err := d.IsUniqueRelationship(Args{Target: "TESTCD", Comparator: "TEST"})
	require.NoError(t, err)
	assert.Equal(t, m.Not(), dual)
}

func vlmTestRecords() []VLMRecord {
	isAge := func(t *Table, row int) bool {
		col, _ := t.Column("PARAM")
		return col[row] == "AGE"
	}
	valueIsNumeric := func(t *Table, row int) bool {
		col, _ := t.Column("VAL")
		_, ok := cellDecimal(col[row])
		return ok
	}
	valueFits := func(t *Table, row int) bool {
		col, _ := t.Column("VAL")
		s, _ := cellString(col[row])
		return len(s) <= 3
	}
	return []VLMRecord{{Filter: isAge, TypeCheck: valueIsNumeric, LengthCheck: valueFits}}
}

func TestDataset_ValueLevelMetadata(t *testing.T) {
	t.Parallel()
	d := mustDataset(t,
		[]string{"PARAM", "VAL"},
		map[string][]any{
			"PARAM": {"AGE", "AGE", "SEX", "AGE"},
			"VAL":   {"42", "old", "M", "1024"},
		},
		WithValueLevelMetadata(vlmTestRecords()),
	)

	badType := d.NonConformantValueDataType()
	assert.Equal(t, Mask{false, true, false, false}, badType, "unfiltered rows are never flagged")

	goodType := d.ConformantValueDataType()
	assert.Equal(t, Mask{true, false, false, true}, goodType)

	badLen := d.NonConformantValueLength()
	assert.Equal(t, Mask{false, false, false, true}, badLen)

	goodLen := d.ConformantValueLength()
	assert.Equal(t, Mask{true, true, false, false}, goodLen)
}

func TestDataset_ReferencesCorrectCodelist(t *testing.T) {
	t.Parallel()
	t.Run("exact-column-name", func(t *testing.T) {
		d := mustDataset(t,
			[]string{"AEDECOD", "CODELIST"},
			map[string][]any{
				"AEDECOD":  {"HEADACHE", "NAUSEA"},
				"CODELIST": {"C1", "C9"},
			},
			loadFixtures(t)...,
		)
		m, err := d.ReferencesCorrectCodelist(Args{Target: "AEDECOD", Comparator: "CODELIST"})
		require.NoError(t, err)
		assert.Equal(t, Mask{true, false}, m)

		dual, err := d.DoesNotReferenceCorrectCodelist(Args{Target: "AEDECOD", Comparator: "CODELIST"})
		require.NoError(t, err)
		assert.Equal(t, m.Not(), dual)
	})
	t.Run("generic-form-fallback", func(t *testing.T) {
		// AEBODSYS is only known under its generic name --BODSYS.
		d := mustDataset(t,
			[]string{"AEBODSYS", "CODELIST"},
			map[string][]any{
				"AEBODSYS": {"X", "X"},
				"CODELIST": {"C3", "C1"},
			},
			loadFixtures(t)...,
		)
		m, err := d.ReferencesCorrectCodelist(Args{Target: "AEBODSYS", Comparator: "CODELIST"})
		require.NoError(t, err)
		assert.Equal(t, Mask{true, false}, m)
	})
	t.Run("unknown-column-open-world", func(t *testing.T) {
		d := mustDataset(t,
			[]string{"VSTESTCD", "CODELIST"},
			map[string][]any{
				"VSTESTCD": {"PULSE"},
				"CODELIST": {"C9"},
			},
			loadFixtures(t)...,
		)
		m, err := d.ReferencesCorrectCodelist(Args{Target: "VSTESTCD", Comparator: "CODELIST"})
		require.NoError(t, err)
		assert.Equal(t, Mask{true}, m)
	})
}

func TestDataset_UsesValidCodelistTerms(t *testing.T) {
	t.Parallel()
	// An extensible codelist accepts terms beyond its
	// allowed set; a non-extensible one does not.
	d := mustDataset(t,
		[]string{"CODELIST", "TERMS"},
		map[string][]any{
			"CODELIST": {"C1", "C2", "C2", "C9"},
			"TERMS": {
				[]any{"x", "y"},
				[]any{"u", "v"},
				[]any{"u", "w"},
				[]any{"x"},
			},
		},
		loadFixtures(t)...,
	)

	m, err := d.UsesValidCodelistTerms(Args{Target: "CODELIST", Comparator: "TERMS"})
	require.NoError(t, err)
	assert.Equal(t, Mask{true, true, false, false}, m, "unknown codelists fail every term map")

	dual, err := d.DoesNotUseValidCodelistTerms(Args{Target: "CODELIST", Comparator: "TERMS"})
	require.NoError(t, err)
	assert.Equal(t, m.Not(), dual)
}

func TestDataset_ValueHasMultipleReferences(t *testing.T) {
	t.Parallel()
	counts := map[string]any{"a": 2, "b": 1}
	d := mustDataset(t,
		[]string{"A", "REFS"},
		map[string][]any{
			"A":    {"a", "b", "c"},
			"REFS": {counts, counts, counts},
		},
	)

	m, err := d.ValueHasMultipleReferences(Args{Target: "A", Comparator: "REFS"})
	require.NoError(t, err)
	assert.Equal(t, Mask{true, false, false}, m, "values missing from the map count as single-referenced")

	dual, err := d.ValueDoesNotHaveMultipleReferences(Args{Target: "A", Comparator: "REFS"})
	require.NoError(t, err)
	assert.Equal(t, m.Not(), dual)
}

func TestDataset_VariableMetadataEqualTo(t *testing.T) {
	t.Parallel()
	meta := map[string]any{"AEDECOD": "Char", "AESEQ": "Num"}
	d := mustDataset(t,
		[]string{"AEDECOD", "META"},
		map[string][]any{
			"AEDECOD": {"HEADACHE", "NAUSEA"},
			"META":    {meta, meta},
		},
		WithColumnPrefixMap(map[string]string{"--": "AE"}),
	)

	m, err := d.VariableMetadataEqualTo(Args{Target: "--DECOD", Comparator: "Char", Metadata: "META"})
	require.NoError(t, err)
	assert.Equal(t, Mask{true, true}, m, "the rewritten target name keys the metadata map")

	ne, err := d.VariableMetadataNotEqualTo(Args{Target: "--DECOD", Comparator: "Num", Metadata: "META"})
	require.NoError(t, err)
	assert.Equal(t, Mask{true, true}, ne)
}

func TestDataset_ReferenceOps_UnknownColumn(t *testing.T) {
	t.Parallel()
	d := mustDataset(t, []string{"A"}, map[string][]any{"A": {"x"}})

	_, err := d.IsValidReference(Args{Target: "NOPE"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ruleops.ErrUnknownColumn)

	_, err = d.IsValidRelationship(Args{Target: "A", Comparator: 3})
	require.Error(t, err)
	assert.ErrorIs(t, err, ruleops.ErrInvalidArgument)
}
