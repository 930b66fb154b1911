package model

import "fmt"

// DebugInfoStrategy selects how per-module debug information is threaded into
// the plan. The strategy is global per BuildParameters, never per target.
type DebugInfoStrategy int

const (
	// DebugInfoNone adds no debug artifacts to the plan.
	DebugInfoNone DebugInfoStrategy = iota
	// DebugInfoWholeModuleSymbols records a reference to each native
	// module's debug-symbol output.
	DebugInfoWholeModuleSymbols
	// DebugInfoObjectWrap appends one extra wrapped-debug object file per
	// native module.
	DebugInfoObjectWrap
)

// String returns the strategy's name as accepted by configuration.
func (s DebugInfoStrategy) String() string {
	switch s {
	case DebugInfoNone:
		return "none"
	case DebugInfoWholeModuleSymbols:
		return "whole-module-symbols"
	case DebugInfoObjectWrap:
		return "object-wrap"
	default:
		return fmt.Sprintf("DebugInfoStrategy(%d)", int(s))
	}
}

// ParseDebugInfoStrategy parses a strategy name.
func ParseDebugInfoStrategy(s string) (DebugInfoStrategy, error) {
	switch s {
	case "none":
		return DebugInfoNone, nil
	case "whole-module-symbols":
		return DebugInfoWholeModuleSymbols, nil
	case "object-wrap":
		return DebugInfoObjectWrap, nil
	default:
		return DebugInfoNone, fmt.Errorf("unknown debug-info strategy %q: must be 'none', 'whole-module-symbols', or 'object-wrap'", s)
	}
}

// TestingConfiguration controls test-product classification.
type TestingConfiguration struct {
	// DerivedTargets requests that an external synthesizer contribute extra
	// static targets to test products after primary classification.
	DerivedTargets bool
}

// BuildParameters describes one plan computation. Independent products may be
// computed in parallel against the same parameters, so the value is treated
// as immutable once handed to a planner.
type BuildParameters struct {
	Triple      Triple
	Environment *Environment
	DebugInfo   DebugInfoStrategy
	Testing     TestingConfiguration

	// EmbeddedRuntime marks products targeting the embedded runtime variant,
	// which never auto-links a C++ standard library.
	EmbeddedRuntime bool

	// BuildDir is the root all derived artifact paths are placed under.
	BuildDir string
}

// Validate checks the parameters are complete enough to plan against.
func (p *BuildParameters) Validate() error {
	if p.Triple.Arch == "" {
		return fmt.Errorf("build parameters have no target triple")
	}
	if p.Environment == nil {
		return fmt.Errorf("build parameters have no environment")
	}
	if p.BuildDir == "" {
		return fmt.Errorf("build parameters have no build directory")
	}
	return nil
}
