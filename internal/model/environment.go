package model

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// Environment is the active build-environment a condition predicate is
// evaluated against. It is immutable after construction; walking the same
// graph with the same environment always prunes the same edges.
type Environment struct {
	platform      string
	configuration string
}

// NewEnvironment builds an environment from the platform name (the OS part of
// the target triple) and the configuration name (typically "debug" or
// "release").
func NewEnvironment(platform, configuration string) *Environment {
	return &Environment{
		platform:      platform,
		configuration: configuration,
	}
}

// Platform returns the environment's platform name.
func (e *Environment) Platform() string {
	return e.platform
}

// Configuration returns the environment's configuration name.
func (e *Environment) Configuration() string {
	return e.configuration
}

// EvalContext exposes the environment to condition expressions as the
// variables `platform` and `configuration`.
func (e *Environment) EvalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"platform":      cty.StringVal(e.platform),
			"configuration": cty.StringVal(e.configuration),
		},
	}
}
