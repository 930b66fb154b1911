package plan

import (
	"fmt"
	"path/filepath"

	"github.com/vk/buildplan/internal/model"
)

// TargetDescription holds the per-target artifacts the planner derives before
// any product is computed: compiled object paths and, for native targets,
// the debug-info outputs the two non-trivial strategies reference.
type TargetDescription struct {
	Target *model.Target

	// Objects are the target's compiled object files, one per source, in
	// source order.
	Objects []string

	// ModuleSymbolPath is the module's debug-symbol output, referenced by
	// the whole-module-symbols strategy. Empty for non-native targets.
	ModuleSymbolPath string

	// WrapObjectPath is the extra object appended by the object-wrap
	// strategy. Empty for non-native targets.
	WrapObjectPath string
}

// NewTargetDescription derives a target's build artifacts under the build
// directory.
func NewTargetDescription(t *model.Target, buildDir string) *TargetDescription {
	targetDir := filepath.Join(buildDir, t.Name+".build")
	d := &TargetDescription{Target: t}
	for _, src := range t.Sources {
		d.Objects = append(d.Objects, filepath.Join(targetDir, src+".o"))
	}
	if t.Native() {
		d.ModuleSymbolPath = filepath.Join(targetDir, t.Name+".symbols")
		d.WrapObjectPath = filepath.Join(targetDir, t.Name+".wrap.o")
	}
	return d
}

// ProductDescription is the mutable build description one product's plan is
// accumulated onto. It must not be read until PlanProduct returns: a
// partially mutated description is never visible outside the computation.
type ProductDescription struct {
	Product *model.Product

	// Objects is the ordered list of object files linked into the product,
	// including any debug-wrap objects.
	Objects []string

	// StaticTargets are the targets whose objects the product embeds, in
	// topological order.
	StaticTargets []*model.Target

	// Dylibs are the names of the dynamic-library products linked by
	// reference.
	Dylibs []string

	// LinkFlags are the assembled extra linker flags.
	LinkFlags []string

	// BinarySearchPaths are the directories prebuilt binaries were resolved
	// into, deduplicated in first-seen order.
	BinarySearchPaths []string

	// Tools maps tool names from toolset artifacts to executable paths.
	Tools map[string]string

	// DebugArtifacts are the debug-symbol references recorded by the
	// whole-module-symbols strategy.
	DebugArtifacts []string
}

func newProductDescription(p *model.Product) *ProductDescription {
	return &ProductDescription{
		Product: p,
		Tools:   make(map[string]string),
	}
}

// MissingDescriptionError reports a natively compiled static target the
// planner holds no build description for. Descriptions are derived for every
// compiled target up front, so this indicates a corrupted plan and aborts
// the product.
type MissingDescriptionError struct {
	Product string
	Target  string
}

// Error implements the error interface for MissingDescriptionError.
func (e *MissingDescriptionError) Error() string {
	return fmt.Sprintf("product %q: no build description for required target %q", e.Product, e.Target)
}
