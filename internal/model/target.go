package model

import "fmt"

// TargetKind identifies what a target node in the dependency graph is. The set
// is closed; every consumer switches over it exhaustively so that a new kind
// cannot be silently mishandled.
type TargetKind int

const (
	KindLibrary TargetKind = iota
	KindExecutable
	KindTest
	KindSnippet
	KindMacro
	KindPlugin
	KindSystemModule
	KindBinary
)

// String returns the kind's name as it appears in graph description files.
func (k TargetKind) String() string {
	switch k {
	case KindLibrary:
		return "library"
	case KindExecutable:
		return "executable"
	case KindTest:
		return "test"
	case KindSnippet:
		return "snippet"
	case KindMacro:
		return "macro"
	case KindPlugin:
		return "plugin"
	case KindSystemModule:
		return "system-module"
	case KindBinary:
		return "binary"
	default:
		return fmt.Sprintf("TargetKind(%d)", int(k))
	}
}

// Language distinguishes the two compilation families a compiled target can
// belong to. It is meaningless for system-module and binary targets.
type Language int

const (
	// LanguageNative marks a target compiled by the native, module-producing
	// compiler. Only native targets carry per-module debug-info artifacts.
	LanguageNative Language = iota
	// LanguageCFamily marks a C-family target.
	LanguageCFamily
)

// String returns the language's name as it appears in graph description files.
func (l Language) String() string {
	switch l {
	case LanguageNative:
		return "native"
	case LanguageCFamily:
		return "c-family"
	default:
		return fmt.Sprintf("Language(%d)", int(l))
	}
}

// SystemModulePayload carries the kind-specific data of a system-module
// target. System modules contribute linker flags only, never object code.
type SystemModulePayload struct {
	// PkgConfigName is the name the package-config resolver is queried with.
	// Empty means the module declares no package-config mapping.
	PkgConfigName string

	// LinkFlags are flags declared directly on the module, used by resolvers
	// that answer lookups from the graph description instead of the system.
	LinkFlags []string
}

// BinaryPayload carries the kind-specific data of a prebuilt binary target.
type BinaryPayload struct {
	// ArtifactPath is the path to the artifact bundle directory on disk.
	ArtifactPath string
}

// Target is a single node in the resolved dependency graph.
type Target struct {
	Name string
	Kind TargetKind

	// Language and Cxx describe compiled targets. Cxx marks a C-family target
	// whose sources are compiled as C++, which drives runtime auto-linking.
	Language Language
	Cxx      bool

	// Sources lists the target's source files, relative to its own root. The
	// planner derives object-file paths from them.
	Sources []string

	// TestableExecutable is set on executable targets that declare support
	// for being linked into a test product.
	TestableExecutable bool

	SystemModule *SystemModulePayload
	Binary       *BinaryPayload

	// Dependencies are the target's outgoing edges, in declaration order.
	Dependencies []Dependency
}

// Native reports whether the target is natively compiled.
func (t *Target) Native() bool {
	return t.Language == LanguageNative
}

// Compiled reports whether the target produces object code at all.
func (t *Target) Compiled() bool {
	switch t.Kind {
	case KindSystemModule, KindBinary, KindPlugin:
		return false
	}
	return true
}

// BinaryArtifact returns the binary payload of a binary-kind target. A binary
// target without its payload violates the resolver contract and is fatal for
// the product being computed.
func (t *Target) BinaryArtifact() (*BinaryPayload, error) {
	if t.Kind != KindBinary || t.Binary == nil {
		return nil, fmt.Errorf("target %q: %w", t.Name, ErrBinaryPayloadMismatch)
	}
	return t.Binary, nil
}

// Validate checks that the target's payloads agree with its declared kind.
func (t *Target) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("target has no name")
	}
	switch t.Kind {
	case KindSystemModule:
		if t.SystemModule == nil {
			return fmt.Errorf("system-module target %q has no system-module payload", t.Name)
		}
		if t.Binary != nil {
			return fmt.Errorf("system-module target %q carries a binary payload", t.Name)
		}
	case KindBinary:
		if t.Binary == nil {
			return fmt.Errorf("binary target %q has no artifact payload", t.Name)
		}
		if t.SystemModule != nil {
			return fmt.Errorf("binary target %q carries a system-module payload", t.Name)
		}
	default:
		if t.SystemModule != nil || t.Binary != nil {
			return fmt.Errorf("%s target %q carries a kind-specific payload it must not have", t.Kind, t.Name)
		}
	}
	return nil
}
