package model

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// Dependency is a single outgoing edge of a target. Exactly one of Target and
// Product is set. A nil Condition means the edge is unconditional.
type Dependency struct {
	Target    *Target
	Product   *Product
	Condition *Condition
}

// Satisfied evaluates the edge's condition against the given environment.
// Unconditional edges are always satisfied.
func (d Dependency) Satisfied(env *Environment) (bool, error) {
	if d.Condition == nil {
		return true, nil
	}
	return d.Condition.Satisfied(env)
}

// Condition wraps an unevaluated build-environment predicate. The expression
// is captured at load time and evaluated lazily, so the same model can be
// walked under different environments.
type Condition struct {
	expr hcl.Expression
}

// NewCondition wraps an HCL expression as a condition. A nil expression
// yields a nil condition, which callers treat as "always satisfied".
func NewCondition(expr hcl.Expression) *Condition {
	if expr == nil {
		return nil
	}
	return &Condition{expr: expr}
}

// Satisfied evaluates the predicate against the environment. The expression
// must produce a known boolean value; anything else is an error, because a
// predicate the walker cannot decide would make the plan nondeterministic.
func (c *Condition) Satisfied(env *Environment) (bool, error) {
	if c == nil {
		return true, nil
	}
	val, diags := c.expr.Value(env.EvalContext())
	if diags.HasErrors() {
		return false, fmt.Errorf("failed to evaluate dependency condition: %s", diags.Error())
	}
	if val.Type() != cty.Bool || !val.IsKnown() || val.IsNull() {
		return false, fmt.Errorf("dependency condition must produce a boolean, got %s", val.Type().FriendlyName())
	}
	return val.True(), nil
}
