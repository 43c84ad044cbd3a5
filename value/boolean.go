// SPDX-License-Identifier: MPL-2.0

package value

import (
	"fmt"

	"github.com/conformance-labs/ruleops"
	"github.com/conformance-labs/ruleops/operator"
)

const typeBoolean = operator.TypeBoolean

func init() {
	operator.Register(typeBoolean, "is_true", operator.NoInput, false)
	operator.Register(typeBoolean, "is_false", operator.NoInput, false)
}

// Boolean is a strictly two-valued payload; no coercion is performed.
type Boolean struct {
	b bool
}

// NewBoolean constructs a Boolean. Any non-bool payload is a
// type-assertion failure.
func NewBoolean(payload any) (Boolean, error) {
	const op = "value.NewBoolean"
	b, ok := payload.(bool)
	if !ok {
		return Boolean{}, fmt.Errorf("%s: %w: %T is not a boolean", op, ruleops.ErrInvalidPayload, payload)
	}
	return Boolean{b: b}, nil
}

// IsTrue reports whether the wrapped value is true.
func (b Boolean) IsTrue() bool { return b.b }

// IsFalse reports whether the wrapped value is false.
func (b Boolean) IsFalse() bool { return !b.b }

// GetAllOperators returns the boolean operator catalog.
func (Boolean) GetAllOperators() []operator.Meta {
	return operator.GetAllOperators(typeBoolean)
}
