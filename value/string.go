// SPDX-License-Identifier: MPL-2.0

package value

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/conformance-labs/ruleops"
	"github.com/conformance-labs/ruleops/operator"
)

const typeString = operator.TypeString

func init() {
	operator.Register(typeString, "equal_to", operator.Text, true)
	operator.Register(typeString, "not_equal_to", operator.Text, true)
	operator.Register(typeString, "equal_to_case_insensitive", operator.Text, true)
	operator.Register(typeString, "starts_with", operator.Text, true)
	operator.Register(typeString, "ends_with", operator.Text, true)
	operator.Register(typeString, "contains", operator.Text, true)
	operator.Register(typeString, "matches_regex", operator.Text, false)
	operator.Register(typeString, "non_empty", operator.NoInput, false)
}

// String wraps validated text. A nil or absent payload coerces to "".
type String struct {
	s string
}

// NewString constructs a String, coercing a nil payload to "". Any other
// non-string payload is a type-assertion failure.
func NewString(payload any) (String, error) {
	const op = "value.NewString"
	switch v := payload.(type) {
	case nil:
		return String{}, nil
	case string:
		return String{s: v}, nil
	default:
		return String{}, fmt.Errorf("%s: %w: %T is not a string", op, ruleops.ErrInvalidPayload, payload)
	}
}

// coerceString applies the same construction rule to an operator argument.
func coerceString(v any) (string, error) {
	const op = "value.coerceString"
	w, err := NewString(v)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return w.s, nil
}

func (s String) String() string { return s.s }

// EqualTo reports whether s equals other, coercing other through the
// String validator.
func (s String) EqualTo(other any) (bool, error) {
	const op = "String.EqualTo"
	o, err := coerceString(other)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return s.s == o, nil
}

// NotEqualTo is the negation of EqualTo.
func (s String) NotEqualTo(other any) (bool, error) {
	const op = "String.NotEqualTo"
	eq, err := s.EqualTo(other)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return !eq, nil
}

// EqualToCaseInsensitive reports whether s equals other ignoring case.
func (s String) EqualToCaseInsensitive(other any) (bool, error) {
	const op = "String.EqualToCaseInsensitive"
	o, err := coerceString(other)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return strings.EqualFold(s.s, o), nil
}

// StartsWith reports whether s begins with prefix.
func (s String) StartsWith(prefix any) (bool, error) {
	const op = "String.StartsWith"
	p, err := coerceString(prefix)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return strings.HasPrefix(s.s, p), nil
}

// EndsWith reports whether s ends with suffix.
func (s String) EndsWith(suffix any) (bool, error) {
	const op = "String.EndsWith"
	suf, err := coerceString(suffix)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return strings.HasSuffix(s.s, suf), nil
}

// Contains reports whether substr occurs anywhere in s.
func (s String) Contains(substr any) (bool, error) {
	const op = "String.Contains"
	sub, err := coerceString(substr)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return strings.Contains(s.s, sub), nil
}

// MatchesRegex reports whether pattern matches anywhere in s (unanchored
// search).
func (s String) MatchesRegex(pattern string) (bool, error) {
	const op = "String.MatchesRegex"
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false, fmt.Errorf("%s: %w: %s", op, ruleops.ErrInvalidArgument, err)
	}
	return re.MatchString(s.s), nil
}

// NonEmpty reports the truthiness of s's text.
func (s String) NonEmpty() bool {
	return s.s != ""
}

// GetAllOperators returns the string operator catalog.
func (String) GetAllOperators() []operator.Meta {
	return operator.GetAllOperators(typeString)
}
