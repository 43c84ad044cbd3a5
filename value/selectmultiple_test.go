// SPDX-License-Identifier: MPL-2.0

package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectMultiple_ContainsAll(t *testing.T) {
	t.Parallel()
	sm, err := NewSelectMultiple([]any{"A", "B", "C"})
	require.NoError(t, err)
	assert.True(t, sm.ContainsAll([]any{"a", "b"}))
	assert.False(t, sm.ContainsAll([]any{"a", "d"}))
}

func TestSelectMultiple_IsContainedBy(t *testing.T) {
	t.Parallel()
	sm, err := NewSelectMultiple([]any{"a", "b"})
	require.NoError(t, err)
	assert.True(t, sm.IsContainedBy([]any{"A", "B", "C"}))
	assert.False(t, sm.IsContainedBy([]any{"A"}))
	assert.Equal(t, sm.IsNotContainedBy([]any{"A"}), !sm.IsContainedBy([]any{"A"}))
}

func TestSelectMultiple_Shares(t *testing.T) {
	t.Parallel()
	sm, err := NewSelectMultiple([]any{"a", "b", "c"})
	require.NoError(t, err)

	assert.True(t, sm.SharesAtLeastOneElementWith([]any{"c", "d"}))
	assert.False(t, sm.SharesAtLeastOneElementWith([]any{"x", "y"}))

	assert.True(t, sm.SharesExactlyOneElementWith([]any{"c", "d"}))
	assert.False(t, sm.SharesExactlyOneElementWith([]any{"b", "c", "d"}))

	assert.True(t, sm.SharesNoElementsWith([]any{"x", "y"}))
	assert.False(t, sm.SharesNoElementsWith([]any{"c"}))
}
