package graph

import (
	"fmt"

	"github.com/vk/buildplan/internal/model"
)

// successors computes the outgoing edges of a node under the traversal
// context. It is a pure function: the same node and context always produce
// the same successor list, in the same order.
func successors(n Node, c Context) ([]Node, error) {
	if n.Target != nil {
		return targetSuccessors(n.Target, c)
	}
	return productSuccessors(n.Product, c)
}

func targetSuccessors(t *model.Target, c Context) ([]Node, error) {
	switch t.Kind {
	case model.KindMacro:
		// Macros are build-time tools. Their dependencies join the closure
		// only when the macro itself is a top-level member of a macro or
		// test product.
		hosted := c.Product.Kind == model.ProductMacro || c.Product.Kind == model.ProductTest
		if !(c.IsTopLevel(t) && hosted) {
			return nil, nil
		}
	case model.KindPlugin:
		if c.ToolsVersion.ExcludesPlugins() && !c.IsTopLevel(t) && c.Product.Kind != model.ProductTest {
			return nil, nil
		}
	case model.KindLibrary, model.KindExecutable, model.KindTest, model.KindSnippet, model.KindSystemModule, model.KindBinary:
		// Ordinary edge expansion below.
	default:
		return nil, fmt.Errorf("target %q has unhandled kind %s", t.Name, t.Kind)
	}
	return satisfiedEdges(t, c)
}

// satisfiedEdges returns a node per dependency edge whose condition holds in
// the active environment, preserving declaration order. Unsatisfied product
// edges are pruned here entirely, which is the only place product-reference
// conditions are consulted.
func satisfiedEdges(t *model.Target, c Context) ([]Node, error) {
	var out []Node
	for _, dep := range t.Dependencies {
		ok, err := dep.Satisfied(c.Environment)
		if err != nil {
			return nil, fmt.Errorf("target %q: %w", t.Name, err)
		}
		if !ok {
			continue
		}
		switch {
		case dep.Target != nil:
			out = append(out, TargetNode(dep.Target))
		case dep.Product != nil:
			out = append(out, ProductNode(dep.Product))
		default:
			return nil, fmt.Errorf("target %q has a dependency edge with no destination", t.Name)
		}
	}
	return out, nil
}

func productSuccessors(p *model.Product, c Context) ([]Node, error) {
	switch p.Kind {
	case model.ProductLibrary:
		if p.Library == model.LibraryDynamic {
			// Dynamic libraries never surface their targets: the linker does
			// not auto-propagate transitive shared-library search paths, so
			// each transitively reachable dynamic-library product must be
			// walked and surfaced explicitly instead.
			return dynamicLibraryDependencies(p, c)
		}
		return productTargetNodes(p), nil
	case model.ProductPlugin:
		if c.ToolsVersion.ExcludesPlugins() {
			return nil, nil
		}
		return productTargetNodes(p), nil
	case model.ProductTest, model.ProductExecutable, model.ProductSnippet, model.ProductMacro:
		// Terminal: these product references are never expanded.
		return nil, nil
	default:
		return nil, fmt.Errorf("product %q has unhandled kind %s", p.Name, p.Kind)
	}
}

func productTargetNodes(p *model.Product) []Node {
	out := make([]Node, 0, len(p.Targets))
	for _, t := range p.Targets {
		out = append(out, TargetNode(t))
	}
	return out
}

// dynamicLibraryDependencies collects the dynamic-library products a dynamic
// library itself depends on. The scan covers the dynamic library's full
// transitive target closure, folding through intermediate targets and
// expandable product references, so a dynamic library reached deep inside
// the closure is still surfaced. Found products are returned as walk
// successors: chained dynamic libraries recurse through the walker and stay
// under its cycle detection, which matters because product-level cycles are
// possible even in an acyclic target graph.
func dynamicLibraryDependencies(p *model.Product, c Context) ([]Node, error) {
	var out []Node
	seenProducts := make(map[*model.Product]struct{})
	seenTargets := make(map[*model.Target]struct{})

	var visit func(t *model.Target) error
	visit = func(t *model.Target) error {
		if _, ok := seenTargets[t]; ok {
			return nil
		}
		seenTargets[t] = struct{}{}

		for _, dep := range t.Dependencies {
			ok, err := dep.Satisfied(c.Environment)
			if err != nil {
				return fmt.Errorf("product %q: %w", p.Name, err)
			}
			if !ok {
				continue
			}
			switch {
			case dep.Target != nil:
				if err := visit(dep.Target); err != nil {
					return err
				}
			case dep.Product != nil:
				dest := dep.Product
				if _, dup := seenProducts[dest]; dup {
					continue
				}
				seenProducts[dest] = struct{}{}
				if dest.IsDynamicLibrary() {
					out = append(out, ProductNode(dest))
					continue
				}
				for _, inner := range expandableTargets(dest, c) {
					if err := visit(inner); err != nil {
						return err
					}
				}
			}
		}
		return nil
	}

	for _, t := range p.Targets {
		if err := visit(t); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// expandableTargets returns the targets a product reference folds into its
// consumer: automatic and static libraries always, plugin products only when
// the tools-version gate admits them. Every other product kind is terminal.
func expandableTargets(p *model.Product, c Context) []*model.Target {
	switch p.Kind {
	case model.ProductLibrary:
		return p.Targets
	case model.ProductPlugin:
		if c.ToolsVersion.ExcludesPlugins() {
			return nil
		}
		return p.Targets
	default:
		return nil
	}
}
