// SPDX-License-Identifier: MPL-2.0

package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conformance-labs/ruleops"
)

func TestNewBoolean(t *testing.T) {
	t.Parallel()
	b, err := NewBoolean(true)
	require.NoError(t, err)
	assert.True(t, b.IsTrue())
	assert.False(t, b.IsFalse())

	_, err = NewBoolean("true")
	require.Error(t, err)
	assert.ErrorIs(t, err, ruleops.ErrInvalidPayload)
}
