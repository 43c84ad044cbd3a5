// SPDX-License-Identifier: MPL-2.0

package value

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneric_EqualTo_DispatchesOnVariant(t *testing.T) {
	t.Parallel()

	t.Run("decimal-dispatches-numeric", func(t *testing.T) {
		g, err := NewGeneric(decimal.NewFromFloat(1.0))
		require.NoError(t, err)
		eq, err := g.EqualTo(1.000001)
		require.NoError(t, err)
		assert.True(t, eq, "numeric epsilon tolerance should apply")
	})

	t.Run("string-dispatches-string", func(t *testing.T) {
		g, err := NewGeneric("abc")
		require.NoError(t, err)
		eq, err := g.EqualTo("abc")
		require.NoError(t, err)
		assert.True(t, eq)

		ne, err := g.NotEqualTo("xyz")
		require.NoError(t, err)
		assert.True(t, ne)
	})
}

func TestGeneric_IsContainedBy(t *testing.T) {
	t.Parallel()
	g, err := NewGeneric("a")
	require.NoError(t, err)
	assert.True(t, g.IsContainedBy([]any{"A", "B"}))
	assert.False(t, g.IsContainedBy([]any{"x"}))

	// A sequence payload is not re-wrapped: each element must be present.
	seq, err := NewGeneric([]any{"a", "b"})
	require.NoError(t, err)
	assert.True(t, seq.IsContainedBy([]any{"A", "B", "C"}))
	assert.False(t, seq.IsContainedBy([]any{"A"}))
}
