// Package artifact inspects prebuilt binary-artifact bundles and resolves
// them into library paths and tool executables for the requested platform.
// It is the only component of plan computation that touches the file system.
package artifact

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/vk/buildplan/internal/ctxlog"
	"github.com/vk/buildplan/internal/model"
)

// Resolution is the outcome of inspecting one artifact bundle for one triple.
type Resolution struct {
	// LibraryPaths are absolute paths to the prebuilt libraries the matching
	// framework slice provides. Empty for toolset bundles and for framework
	// bundles with no slice for the requested platform.
	LibraryPaths []string

	// Tools maps tool names to executable paths. Empty for framework
	// bundles. Entries with an empty supported-triple set in the metadata
	// are metadata-only and never appear here.
	Tools map[string]string
}

// UnknownKindError reports an artifact bundle whose metadata declares a kind
// this layer does not recognize. Artifact kinds are validated when the graph
// is resolved, so this is an upstream contract violation and fatal for the
// product being computed.
type UnknownKindError struct {
	Kind string
	Path string
}

// Error implements the error interface for UnknownKindError.
func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("artifact bundle %s declares unrecognized kind %q", e.Path, e.Kind)
}

// metadata mirrors the info.toml file at the root of an artifact bundle.
type metadata struct {
	Kind   string      `toml:"kind"`
	Slices []sliceMeta `toml:"slice"`
	Tools  []toolMeta  `toml:"tool"`
}

// sliceMeta is one platform slice of a framework bundle.
type sliceMeta struct {
	Triples   []string `toml:"triples"`
	Libraries []string `toml:"libraries"`
}

// toolMeta is one executable entry of a toolset bundle.
type toolMeta struct {
	Name             string   `toml:"name"`
	Path             string   `toml:"path"`
	SupportedTriples []string `toml:"supported_triples"`
}

// Resolver inspects artifact bundles, memoizing results per binary-target
// identity in a cache shared across the products of one plan computation.
type Resolver struct {
	cache *Cache
}

// NewResolver creates a resolver backed by the given cache.
func NewResolver(cache *Cache) *Resolver {
	return &Resolver{cache: cache}
}

// Resolve inspects the binary target's artifact bundle for the given triple.
// The first call per target performs the file-system read; subsequent calls,
// from any goroutine, return the memoized result.
func (r *Resolver) Resolve(ctx context.Context, target *model.Target, triple model.Triple) (Resolution, error) {
	payload, err := target.BinaryArtifact()
	if err != nil {
		return Resolution{}, err
	}
	return r.cache.Resolve(target.Name, func() (Resolution, error) {
		ctxlog.FromContext(ctx).Debug("Inspecting artifact bundle.", "target", target.Name, "path", payload.ArtifactPath)
		return load(payload.ArtifactPath, triple)
	})
}

// load reads and interprets a bundle's info.toml for one triple.
func load(bundlePath string, triple model.Triple) (Resolution, error) {
	var meta metadata
	infoPath := filepath.Join(bundlePath, "info.toml")
	if _, err := toml.DecodeFile(infoPath, &meta); err != nil {
		return Resolution{}, fmt.Errorf("failed to read artifact metadata %s: %w", infoPath, err)
	}

	switch meta.Kind {
	case "framework":
		return resolveFramework(bundlePath, meta, triple)
	case "toolset":
		return resolveToolset(bundlePath, meta, triple)
	default:
		return Resolution{}, &UnknownKindError{Kind: meta.Kind, Path: bundlePath}
	}
}

// resolveFramework selects the slice matching the requested triple. A bundle
// with no matching slice yields an empty resolution, not an error: the
// artifact may legitimately cover only other platforms.
func resolveFramework(bundlePath string, meta metadata, triple model.Triple) (Resolution, error) {
	for _, slice := range meta.Slices {
		matched, err := sliceMatches(slice.Triples, triple)
		if err != nil {
			return Resolution{}, fmt.Errorf("artifact bundle %s: %w", bundlePath, err)
		}
		if !matched {
			continue
		}
		res := Resolution{}
		for _, lib := range slice.Libraries {
			res.LibraryPaths = append(res.LibraryPaths, filepath.Join(bundlePath, lib))
		}
		return res, nil
	}
	return Resolution{}, nil
}

// resolveToolset collects the bundle's executables usable on the requested
// triple. Entries with an empty supported-triple set carry metadata only and
// are excluded.
func resolveToolset(bundlePath string, meta metadata, triple model.Triple) (Resolution, error) {
	res := Resolution{Tools: make(map[string]string)}
	for _, tool := range meta.Tools {
		if len(tool.SupportedTriples) == 0 {
			continue
		}
		matched, err := sliceMatches(tool.SupportedTriples, triple)
		if err != nil {
			return Resolution{}, fmt.Errorf("artifact bundle %s: %w", bundlePath, err)
		}
		if matched {
			res.Tools[tool.Name] = filepath.Join(bundlePath, tool.Path)
		}
	}
	return res, nil
}

func sliceMatches(triples []string, triple model.Triple) (bool, error) {
	for _, raw := range triples {
		candidate, err := model.ParseTriple(raw)
		if err != nil {
			return false, err
		}
		if triple.MatchesPlatform(candidate) {
			return true, nil
		}
	}
	return false, nil
}
