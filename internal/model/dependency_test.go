package model

import (
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseExpr compiles a condition expression for tests.
func parseExpr(t *testing.T, src string) hcl.Expression {
	t.Helper()
	expr, diags := hclsyntax.ParseExpression([]byte(src), "test.hcl", hcl.InitialPos)
	require.False(t, diags.HasErrors(), "failed to parse expression %q: %s", src, diags.Error())
	return expr
}

func TestCondition_Satisfied(t *testing.T) {
	env := NewEnvironment("linux", "debug")

	t.Run("nil condition is always satisfied", func(t *testing.T) {
		var c *Condition
		ok, err := c.Satisfied(env)
		require.NoError(t, err)
		assert.True(t, ok)

		assert.Nil(t, NewCondition(nil))
	})

	t.Run("platform predicate", func(t *testing.T) {
		c := NewCondition(parseExpr(t, `platform == "linux"`))
		ok, err := c.Satisfied(env)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = c.Satisfied(NewEnvironment("macosx", "debug"))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("configuration predicate", func(t *testing.T) {
		c := NewCondition(parseExpr(t, `configuration == "release"`))
		ok, err := c.Satisfied(env)
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = c.Satisfied(NewEnvironment("linux", "release"))
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("non-boolean result is an error", func(t *testing.T) {
		c := NewCondition(parseExpr(t, `platform`))
		_, err := c.Satisfied(env)
		assert.ErrorContains(t, err, "must produce a boolean")
	})

	t.Run("unknown variable is an error", func(t *testing.T) {
		c := NewCondition(parseExpr(t, `arch == "x86_64"`))
		_, err := c.Satisfied(env)
		assert.ErrorContains(t, err, "failed to evaluate")
	})
}

func TestDependency_Satisfied(t *testing.T) {
	env := NewEnvironment("linux", "debug")
	dep := Dependency{Target: &Target{Name: "A"}}

	ok, err := dep.Satisfied(env)
	require.NoError(t, err)
	assert.True(t, ok, "unconditional edge is always satisfied")

	dep.Condition = NewCondition(parseExpr(t, `platform == "windows"`))
	ok, err = dep.Satisfied(env)
	require.NoError(t, err)
	assert.False(t, ok)
}
