package graph

import "github.com/vk/buildplan/internal/model"

// Context is the immutable traversal state the successor function closes
// over. It is built once per walk and never mutated, so successors() stays a
// pure function of (node, context).
type Context struct {
	// Product is the product whose closure is being walked.
	Product *model.Product

	// ToolsVersion gates traversal rules (plugin exclusion, testable
	// executables) and comes from the product's owning package.
	ToolsVersion model.ToolsVersion

	// Environment is the active build environment condition predicates are
	// evaluated against.
	Environment *model.Environment

	topLevel map[*model.Target]struct{}
}

// NewContext builds the traversal context for one product walk.
func NewContext(product *model.Product, params *model.BuildParameters) Context {
	topLevel := make(map[*model.Target]struct{}, len(product.Targets))
	for _, t := range product.Targets {
		topLevel[t] = struct{}{}
	}
	return Context{
		Product:      product,
		ToolsVersion: product.ToolsVersion,
		Environment:  params.Environment,
		topLevel:     topLevel,
	}
}

// IsTopLevel reports whether the target is directly listed by the walked
// product. This is the single canonical top-level definition used by both
// the walker and the classifier.
func (c Context) IsTopLevel(t *model.Target) bool {
	_, ok := c.topLevel[t]
	return ok
}
