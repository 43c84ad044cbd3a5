// SPDX-License-Identifier: MPL-2.0

package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conformance-labs/ruleops"
)

func TestNewString(t *testing.T) {
	t.Parallel()
	t.Run("nil-coerces-to-empty", func(t *testing.T) {
		s, err := NewString(nil)
		require.NoError(t, err)
		assert.Equal(t, "", s.String())
	})
	t.Run("invalid-shape", func(t *testing.T) {
		_, err := NewString(42)
		require.Error(t, err)
		assert.ErrorIs(t, err, ruleops.ErrInvalidPayload)
	})
}

func TestString_EqualTo(t *testing.T) {
	t.Parallel()
	s, err := NewString("abc")
	require.NoError(t, err)

	eq, err := s.EqualTo("abc")
	require.NoError(t, err)
	assert.True(t, eq)

	ne, err := s.NotEqualTo("abc")
	require.NoError(t, err)
	assert.False(t, ne)

	eq, err = s.EqualTo("ABC")
	require.NoError(t, err)
	assert.False(t, eq)
}

func TestString_EqualToCaseInsensitive(t *testing.T) {
	t.Parallel()
	s, err := NewString("AbC")
	require.NoError(t, err)
	eq, err := s.EqualToCaseInsensitive("abc")
	require.NoError(t, err)
	assert.True(t, eq)
}

func TestString_StartsEndsContains(t *testing.T) {
	t.Parallel()
	s, err := NewString("hello world")
	require.NoError(t, err)

	sw, err := s.StartsWith("hello")
	require.NoError(t, err)
	assert.True(t, sw)

	ew, err := s.EndsWith("world")
	require.NoError(t, err)
	assert.True(t, ew)

	c, err := s.Contains("lo wo")
	require.NoError(t, err)
	assert.True(t, c)
}

func TestString_MatchesRegex(t *testing.T) {
	t.Parallel()
	s, err := NewString("abc123")
	require.NoError(t, err)

	m, err := s.MatchesRegex(`\d+`)
	require.NoError(t, err)
	assert.True(t, m)

	_, err = s.MatchesRegex(`(`)
	require.Error(t, err)
	assert.ErrorIs(t, err, ruleops.ErrInvalidArgument)
}

func TestString_NonEmpty(t *testing.T) {
	t.Parallel()
	s, _ := NewString("x")
	assert.True(t, s.NonEmpty())

	empty, _ := NewString("")
	assert.False(t, empty.NonEmpty())
}
