package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseToolsVersion(t *testing.T) {
	v, err := ParseToolsVersion("5.9")
	require.NoError(t, err)
	assert.Equal(t, ToolsVersion{Major: 5, Minor: 9}, v)
	assert.Equal(t, "5.9", v.String())

	for _, input := range []string{"", "5", "5.x", "-1.2", "a.b"} {
		_, err := ParseToolsVersion(input)
		assert.Error(t, err, "input %q should be rejected", input)
	}
}

func TestToolsVersion_Gates(t *testing.T) {
	old, err := ParseToolsVersion("5.4")
	require.NoError(t, err)
	mid, err := ParseToolsVersion("5.5")
	require.NoError(t, err)
	current, err := ParseToolsVersion("5.9")
	require.NoError(t, err)
	next, err := ParseToolsVersion("6.0")
	require.NoError(t, err)

	assert.False(t, old.SupportsTestableExecutables())
	assert.True(t, mid.SupportsTestableExecutables())
	assert.True(t, next.SupportsTestableExecutables())

	assert.False(t, old.ExcludesPlugins())
	assert.False(t, mid.ExcludesPlugins())
	assert.True(t, current.ExcludesPlugins())
	assert.True(t, next.ExcludesPlugins())
}
