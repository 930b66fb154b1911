// Package link turns a classification result into concrete linker flags:
// library search paths, framework references, deduplicated link-by-name
// flags, and the C++ runtime selection.
package link

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/vk/buildplan/internal/classify"
	"github.com/vk/buildplan/internal/diag"
	"github.com/vk/buildplan/internal/model"
)

// Assembler assembles linker flags for one product. It is pure and in-memory
// apart from the injected package-config resolver, whose failures are
// reported to the sink and never abort the computation.
type Assembler struct {
	pkgConfig PkgConfig
	sink      diag.Sink
}

// NewAssembler creates an assembler. With a nil sink, diagnostics fall back
// to the context logger.
func NewAssembler(pkgConfig PkgConfig, sink diag.Sink) *Assembler {
	if sink == nil {
		sink = diag.LogSink{}
	}
	return &Assembler{pkgConfig: pkgConfig, sink: sink}
}

// Assemble produces the product's extra linker flags from the classified
// sets. The flag order is deterministic: system-module flags first, then
// search paths in classification order, then one reference per unique bare
// name in first-seen order, then the C++ runtime flag if any. A name reached
// both as a shared library and as a framework bundle is emitted once; the
// first-seen shape decides the flag.
func (a *Assembler) Assemble(ctx context.Context, computed *classify.Computed, params *model.BuildParameters) []string {
	var flags []string
	flags = append(flags, a.systemModuleFlags(ctx, computed.SystemModules)...)

	names := newNameSet()
	triple := params.Triple

	for _, path := range computed.LibraryPaths {
		base := filepath.Base(path)
		name, ok := triple.DynamicLibraryName(base)
		if !ok {
			a.sink.Warn(ctx, "Ignoring binary library path with unexpected shape.", "path", path)
			continue
		}
		flags = append(flags, "-L"+filepath.Dir(path))
		names.add(name, libraryRef)
	}

	for _, path := range computed.FrameworkPaths {
		base := filepath.Base(path)
		switch {
		case strings.HasSuffix(base, ".framework"):
			names.add(strings.TrimSuffix(base, ".framework"), frameworkRef)
		default:
			if name, ok := triple.DynamicLibraryName(base); ok {
				names.add(name, libraryRef)
			} else {
				a.sink.Warn(ctx, "Ignoring binary framework path with unexpected shape.", "path", path)
			}
		}
	}

	for _, ref := range names.ordered {
		if ref.kind == frameworkRef {
			flags = append(flags, "-framework", ref.name)
		} else {
			flags = append(flags, "-l"+ref.name)
		}
	}

	if flag, ok := cxxRuntimeFlag(computed.StaticTargets, params); ok {
		flags = append(flags, flag)
	}
	return flags
}

func (a *Assembler) systemModuleFlags(ctx context.Context, modules []*model.Target) []string {
	var flags []string
	for _, m := range modules {
		moduleFlags, err := a.pkgConfig.LibraryFlags(ctx, m)
		if err != nil {
			a.sink.Warn(ctx, "Package-config lookup failed for system module.", "module", m.Name, "error", err)
			continue
		}
		flags = append(flags, moduleFlags...)
	}
	return flags
}

// cxxRuntimeFlag scans the static targets for a C-family target compiled as
// C++ and selects the platform's C++ standard library. The scan stops at the
// first match; at most one flag is ever emitted, and embedded-runtime
// products never link a C++ runtime.
func cxxRuntimeFlag(staticTargets []*model.Target, params *model.BuildParameters) (string, bool) {
	for _, t := range staticTargets {
		if t.Language != model.LanguageCFamily || !t.Cxx {
			continue
		}
		if params.EmbeddedRuntime {
			return "", false
		}
		switch {
		case params.Triple.IsWindows():
			return "", false
		case params.Triple.IsDarwin():
			return "-lc++", true
		default:
			return "-lstdc++", true
		}
	}
	return "", false
}

type refKind int

const (
	libraryRef refKind = iota
	frameworkRef
)

type nameRef struct {
	name string
	kind refKind
}

// nameSet is an insertion-ordered set of link references, deduplicated by
// bare name across both reference shapes.
type nameSet struct {
	ordered []nameRef
	seen    map[string]struct{}
}

func newNameSet() *nameSet {
	return &nameSet{seen: make(map[string]struct{})}
}

func (s *nameSet) add(name string, kind refKind) {
	if _, ok := s.seen[name]; ok {
		return
	}
	s.seen[name] = struct{}{}
	s.ordered = append(s.ordered, nameRef{name: name, kind: kind})
}
