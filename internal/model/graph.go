package model

import "fmt"

// Graph is a fully resolved package graph: every dependency edge points at a
// live Target or Product value. The graph is assumed validated and acyclic by
// the resolver that produced it; the walker still defends against cycles.
type Graph struct {
	// PackageName is the owning package's name, used for log annotation only.
	PackageName string

	// ToolsVersion is the package's declared tools-version, copied onto each
	// product at resolution time.
	ToolsVersion ToolsVersion

	// Targets and Products preserve declaration order so that iteration over
	// the graph is deterministic.
	Targets  []*Target
	Products []*Product

	targetsByName  map[string]*Target
	productsByName map[string]*Product
}

// NewGraph assembles a graph and indexes its members by name. Duplicate names
// are rejected; the resolver contract guarantees uniqueness, and silently
// shadowing a target would corrupt every later lookup.
func NewGraph(packageName string, tools ToolsVersion, targets []*Target, products []*Product) (*Graph, error) {
	g := &Graph{
		PackageName:    packageName,
		ToolsVersion:   tools,
		Targets:        targets,
		Products:       products,
		targetsByName:  make(map[string]*Target, len(targets)),
		productsByName: make(map[string]*Product, len(products)),
	}
	for _, t := range targets {
		if err := t.Validate(); err != nil {
			return nil, err
		}
		if _, exists := g.targetsByName[t.Name]; exists {
			return nil, fmt.Errorf("duplicate target name %q", t.Name)
		}
		g.targetsByName[t.Name] = t
	}
	for _, p := range products {
		if _, exists := g.productsByName[p.Name]; exists {
			return nil, fmt.Errorf("duplicate product name %q", p.Name)
		}
		if len(p.Targets) == 0 {
			return nil, fmt.Errorf("product %q lists no targets", p.Name)
		}
		g.productsByName[p.Name] = p
	}
	return g, nil
}

// Target looks up a target by name.
func (g *Graph) Target(name string) (*Target, bool) {
	t, ok := g.targetsByName[name]
	return t, ok
}

// Product looks up a product by name.
func (g *Graph) Product(name string) (*Product, bool) {
	p, ok := g.productsByName[name]
	return p, ok
}
