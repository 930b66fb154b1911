// Package schema defines the HCL block structures of a package-graph
// description file. The loader decodes files into these raw structs and a
// translation pass turns them into the resolved model.
package schema

import "github.com/hashicorp/hcl/v2"

// Package represents the single `package` block naming the owning package
// and its declared tools-version.
type Package struct {
	Name         string  `hcl:"name,label"`
	ToolsVersion *string `hcl:"tools_version,optional"`
}

// Dependency represents a `dependency` block inside a target: an edge to
// another target or to a product, optionally guarded by a `when` condition.
// The condition is kept as a raw expression and evaluated at walk time
// against the active build environment.
type Dependency struct {
	Target  *string        `hcl:"target,optional"`
	Product *string        `hcl:"product,optional"`
	When    hcl.Expression `hcl:"when,optional"`
}

// Target represents a `target` block. Kind-specific attributes are all
// optional here; the translation pass validates them against the declared
// kind.
type Target struct {
	Name               string        `hcl:"name,label"`
	Kind               string        `hcl:"kind"`
	Language           *string       `hcl:"language,optional"`
	Cxx                *bool         `hcl:"cxx,optional"`
	Sources            []string      `hcl:"sources,optional"`
	TestableExecutable *bool         `hcl:"testable_executable,optional"`
	PkgConfig          *string       `hcl:"pkg_config,optional"`
	LinkFlags          []string      `hcl:"link_flags,optional"`
	Artifact           *string       `hcl:"artifact,optional"`
	Dependencies       []*Dependency `hcl:"dependency,block"`
}

// Product represents a `product` block: a named output with a type and its
// ordered list of top-level targets.
type Product struct {
	Name    string   `hcl:"name,label"`
	Type    string   `hcl:"type"`
	Targets []string `hcl:"targets"`
}

// File represents the top-level structure of one graph description file.
// Multiple files merge into a single description before translation.
type File struct {
	Package  *Package   `hcl:"package,block"`
	Targets  []*Target  `hcl:"target,block"`
	Products []*Product `hcl:"product,block"`
}
