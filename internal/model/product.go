package model

import "fmt"

// ProductKind identifies what a named build output is. Like TargetKind, the
// set is closed and is matched exhaustively everywhere it drives a decision.
type ProductKind int

const (
	ProductExecutable ProductKind = iota
	ProductLibrary
	ProductTest
	ProductPlugin
	ProductMacro
	ProductSnippet
)

// String returns the kind's name as it appears in graph description files.
func (k ProductKind) String() string {
	switch k {
	case ProductExecutable:
		return "executable"
	case ProductLibrary:
		return "library"
	case ProductTest:
		return "test"
	case ProductPlugin:
		return "plugin"
	case ProductMacro:
		return "macro"
	case ProductSnippet:
		return "snippet"
	default:
		return fmt.Sprintf("ProductKind(%d)", int(k))
	}
}

// LibraryMode refines ProductLibrary into the three linkage variants.
type LibraryMode int

const (
	LibraryAutomatic LibraryMode = iota
	LibraryStatic
	LibraryDynamic
)

// String returns the mode's name as it appears in graph description files.
func (m LibraryMode) String() string {
	switch m {
	case LibraryAutomatic:
		return "automatic"
	case LibraryStatic:
		return "static"
	case LibraryDynamic:
		return "dynamic"
	default:
		return fmt.Sprintf("LibraryMode(%d)", int(m))
	}
}

// Product is a named build output composed of one or more targets.
type Product struct {
	Name string
	Kind ProductKind

	// Library is the linkage mode and is meaningful only when Kind is
	// ProductLibrary.
	Library LibraryMode

	// Targets are the product's directly listed top-level targets, in the
	// order the product declares them. Direct membership here is the one
	// canonical definition of "top-level" used throughout plan computation.
	Targets []*Target

	// ToolsVersion is the declared tools-version of the product's owning
	// package and gates traversal and classification rules.
	ToolsVersion ToolsVersion
}

// IsDynamicLibrary reports whether the product is linked by reference rather
// than by embedding its objects.
func (p *Product) IsDynamicLibrary() bool {
	return p.Kind == ProductLibrary && p.Library == LibraryDynamic
}

// HasTopLevel reports whether the given target is directly listed by the
// product.
func (p *Product) HasTopLevel(t *Target) bool {
	for _, own := range p.Targets {
		if own == t {
			return true
		}
	}
	return false
}
