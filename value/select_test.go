// SPDX-License-Identifier: MPL-2.0

package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_Contains(t *testing.T) {
	t.Parallel()
	s, err := NewSelect([]any{"Alice", "Bob", 3})
	require.NoError(t, err)

	assert.True(t, s.Contains("alice"), "case-insensitive string match")
	assert.True(t, s.Contains(3))
	assert.False(t, s.Contains("carol"))

	// Invariant: contains(v) <=> !does_not_contain(v)
	for _, v := range []any{"alice", 3, "carol"} {
		assert.Equal(t, s.Contains(v), !s.DoesNotContain(v))
	}
}
