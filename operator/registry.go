// SPDX-License-Identifier: MPL-2.0

// Package operator holds the operator catalog facade consumed by external
// rule-authoring tools. It is a startup-time table keyed by type name,
// populated by Register calls made from each value/dataset package's
// init(); it does not use reflection.
package operator

import (
	"strings"

	"golang.org/x/exp/slices"

	"github.com/conformance-labs/ruleops/internal/vecutil"
)

// InputShape is a UI hint describing what kind of argument an operator
// expects. It is metadata only; the operator core never branches on it.
type InputShape int

const (
	Text InputShape = iota
	Numeric
	NoInput
	Select
	SelectMultiple
	Dataframe
)

// String renders the shape the way a rule-authoring tool would display it.
func (s InputShape) String() string {
	switch s {
	case Text:
		return "TEXT"
	case Numeric:
		return "NUMERIC"
	case NoInput:
		return "NO_INPUT"
	case Select:
		return "SELECT"
	case SelectMultiple:
		return "SELECT_MULTIPLE"
	case Dataframe:
		return "DATAFRAME"
	default:
		return "UNKNOWN"
	}
}

// Canonical type names the value and dataset packages register their
// operators under. Kept here so Generic can compose family catalogs
// without importing the packages that own them.
const (
	TypeString         = "string"
	TypeNumeric        = "numeric"
	TypeBoolean        = "boolean"
	TypeSelect         = "select"
	TypeSelectMultiple = "select_multiple"
	TypeGeneric        = "generic"
	TypeDataframe      = "dataframe"
)

// Meta describes one registered operator.
type Meta struct {
	Name       string
	Label      string
	InputShape InputShape
	// Coerce reports whether validate_and_cast-style argument coercion
	// runs before the operator body.
	Coerce bool
}

var registry = map[string][]Meta{}

// Register records that typeName exposes an operator with the given
// metadata. Called from package init() functions; not exported for use
// outside this module's own value/dataset packages.
func Register(typeName, name string, shape InputShape, coerce bool, label ...string) {
	m := Meta{
		Name:       name,
		InputShape: shape,
		Coerce:     coerce,
	}
	if len(label) > 0 && label[0] != "" {
		m.Label = label[0]
	} else {
		m.Label = vecutil.PrettyLabel(name)
	}
	registry[typeName] = append(registry[typeName], m)
}

// GetAllOperators returns the operator catalog for typeName, including
// operators registered under any of mixinTypeNames (Generic composes the
// String/Numeric/Boolean/Select/SelectMultiple/Dataframe catalogs this
// way). Results are sorted by name for deterministic output.
func GetAllOperators(typeName string, mixinTypeNames ...string) []Meta {
	var out []Meta
	out = append(out, registry[typeName]...)
	for _, mixin := range mixinTypeNames {
		out = append(out, registry[mixin]...)
	}
	slices.SortFunc(out, func(a, b Meta) int { return strings.Compare(a.Name, b.Name) })
	return out
}
