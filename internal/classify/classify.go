// Package classify partitions a product's walk order into the disjoint sets
// the linker cares about: targets whose objects are embedded, system modules
// that contribute flags only, dynamic-library products linked by reference,
// and the paths and tools surfaced by prebuilt binary artifacts.
package classify

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/buildplan/internal/artifact"
	"github.com/vk/buildplan/internal/ctxlog"
	"github.com/vk/buildplan/internal/graph"
	"github.com/vk/buildplan/internal/model"
)

// ArtifactResolver yields the libraries and tools a binary target provides
// for a triple. Satisfied by *artifact.Resolver; tests substitute fakes.
type ArtifactResolver interface {
	Resolve(ctx context.Context, target *model.Target, triple model.Triple) (artifact.Resolution, error)
}

// DerivedTestSynthesizer supplies additional static targets for test
// products after primary classification, when the testing configuration
// requires derived test targets.
type DerivedTestSynthesizer interface {
	DerivedTargets(ctx context.Context, product *model.Product) ([]*model.Target, error)
}

// Computed is the classification result. It is built in one pass and
// returned as a single value: callers never observe partial state. Every
// target in the walk order lands in exactly one of the sets, or in none when
// it is excluded (plugins, pruned macros).
type Computed struct {
	// StaticTargets are the targets whose objects are linked directly into
	// the product, in topological (dependencies-first) order.
	StaticTargets []*model.Target

	// SystemModules contribute linker flags only, never objects.
	SystemModules []*model.Target

	// DylibProducts are the dynamic-library products linked by reference,
	// one entry per transitively reachable product.
	DylibProducts []*model.Product

	// LibraryPaths and FrameworkPaths come from binary artifacts: paths
	// ending in ".framework" are framework bundles, everything else is
	// treated as a shared library.
	LibraryPaths   []string
	FrameworkPaths []string

	// Tools maps tool names surfaced by toolset artifacts to their paths.
	Tools map[string]string
}

// Compute classifies the walk order for the given product. The order must
// come from graph.Walk for the same product and parameters; each node is
// classified exactly once because the walker already deduplicates.
func Compute(ctx context.Context, product *model.Product, params *model.BuildParameters, order []graph.Node, resolver ArtifactResolver, synth DerivedTestSynthesizer) (*Computed, error) {
	c := &Computed{Tools: make(map[string]string)}
	directOfTest, err := directTestDependencies(product, params.Environment)
	if err != nil {
		return nil, err
	}

	for _, n := range order {
		if n.Product != nil {
			if n.Product.IsDynamicLibrary() {
				c.DylibProducts = append(c.DylibProducts, n.Product)
			}
			// Every other product kind is terminal in the walk and
			// contributes nothing to the link line.
			continue
		}

		t := n.Target
		switch t.Kind {
		case model.KindLibrary:
			c.StaticTargets = append(c.StaticTargets, t)
		case model.KindTest:
			if product.HasTopLevel(t) {
				c.StaticTargets = append(c.StaticTargets, t)
			}
		case model.KindExecutable, model.KindSnippet, model.KindMacro:
			if product.HasTopLevel(t) || testableExecutable(product, t, directOfTest) {
				c.StaticTargets = append(c.StaticTargets, t)
			}
		case model.KindSystemModule:
			c.SystemModules = append(c.SystemModules, t)
		case model.KindBinary:
			if err := c.addBinary(ctx, t, params.Triple, resolver); err != nil {
				return nil, err
			}
		case model.KindPlugin:
			// Plugins never contribute to any link line; the walker has
			// already expanded or pruned whatever they depend on.
		default:
			return nil, fmt.Errorf("target %q has unhandled kind %s", t.Name, t.Kind)
		}
	}

	if product.Kind == model.ProductTest && params.Testing.DerivedTargets && synth != nil {
		extra, err := synth.DerivedTargets(ctx, product)
		if err != nil {
			return nil, fmt.Errorf("failed to synthesize derived test targets for product %q: %w", product.Name, err)
		}
		c.StaticTargets = append(c.StaticTargets, extra...)
		ctxlog.FromContext(ctx).Debug("Appended derived test targets.", "product", product.Name, "count", len(extra))
	}

	return c, nil
}

// testableExecutable applies the test-product rule: a natively compiled
// executable that declares testable-executable support may be embedded when
// the tools-version allows it and the target is a direct dependency of one
// of the product's top-level test targets.
func testableExecutable(product *model.Product, t *model.Target, directOfTest map[*model.Target]struct{}) bool {
	if product.Kind != model.ProductTest {
		return false
	}
	if t.Kind != model.KindExecutable || !t.Native() || !t.TestableExecutable {
		return false
	}
	if !product.ToolsVersion.SupportsTestableExecutables() {
		return false
	}
	_, direct := directOfTest[t]
	return direct
}

// directTestDependencies collects the targets reachable over exactly one
// satisfied edge from the product's top-level test targets. Derived from the
// same canonical top-level set the walker uses, so the two can never
// disagree about what "top-level" means. An undecidable edge condition is
// fatal, matching the walker's treatment of the same edge.
func directTestDependencies(product *model.Product, env *model.Environment) (map[*model.Target]struct{}, error) {
	out := make(map[*model.Target]struct{})
	for _, top := range product.Targets {
		if top.Kind != model.KindTest {
			continue
		}
		for _, dep := range top.Dependencies {
			if dep.Target == nil {
				continue
			}
			ok, err := dep.Satisfied(env)
			if err != nil {
				return nil, fmt.Errorf("target %q: %w", top.Name, err)
			}
			if !ok {
				continue
			}
			out[dep.Target] = struct{}{}
		}
	}
	return out, nil
}

// addBinary dispatches a binary target to the artifact resolver and folds
// the resolution into the computed sets.
func (c *Computed) addBinary(ctx context.Context, t *model.Target, triple model.Triple, resolver ArtifactResolver) error {
	if resolver == nil {
		return fmt.Errorf("target %q requires an artifact resolver and none was provided", t.Name)
	}
	res, err := resolver.Resolve(ctx, t, triple)
	if err != nil {
		return err
	}
	for _, path := range res.LibraryPaths {
		if strings.HasSuffix(path, ".framework") {
			c.FrameworkPaths = append(c.FrameworkPaths, path)
		} else {
			c.LibraryPaths = append(c.LibraryPaths, path)
		}
	}
	for name, path := range res.Tools {
		c.Tools[name] = path
	}
	return nil
}
