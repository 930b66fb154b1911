// Package loader finds and decodes package-graph description files and
// translates them into the resolved model the planner consumes. It stands in
// for the external package-graph provider: everything downstream sees only
// the resolved model.
package loader

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/buildplan/internal/ctxlog"
	"github.com/vk/buildplan/internal/model"
	"github.com/vk/buildplan/internal/schema"
)

// Load resolves the given path (one .hcl file or a directory of them),
// decodes every file, merges them, and translates the result into a model
// graph.
func Load(ctx context.Context, path string) (*model.Graph, error) {
	logger := ctxlog.FromContext(ctx)
	files, err := resolvePath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve graph path %q: %w", path, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl files found at %q", path)
	}
	logger.Debug("Found graph description files.", "count", len(files), "path", path)

	merged := &schema.File{}
	for _, file := range files {
		decoded, err := decodeFile(ctx, file)
		if err != nil {
			return nil, err
		}
		if decoded.Package != nil {
			if merged.Package != nil {
				return nil, fmt.Errorf("duplicate package block in %s: package already declared", file)
			}
			merged.Package = decoded.Package
		}
		merged.Targets = append(merged.Targets, decoded.Targets...)
		merged.Products = append(merged.Products, decoded.Products...)
	}
	if merged.Package == nil {
		return nil, fmt.Errorf("no package block found at %q", path)
	}

	graph, err := translate(merged)
	if err != nil {
		return nil, err
	}
	logger.Debug("Graph description translated.",
		"package", graph.PackageName,
		"targets", len(graph.Targets),
		"products", len(graph.Products))
	return graph, nil
}

// resolvePath accepts either a single .hcl file or a directory searched
// recursively. Directory results are sorted so that merge order, and with it
// declaration order in the model, is deterministic.
func resolvePath(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		if !strings.HasSuffix(path, ".hcl") {
			return nil, fmt.Errorf("%q is not an .hcl file", path)
		}
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".hcl") {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// decodeFile parses and decodes a single graph description file.
func decodeFile(ctx context.Context, filePath string) (*schema.File, error) {
	ctxlog.FromContext(ctx).Debug("Decoding graph description file.", "path", filePath)
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filePath)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %s", filePath, diags.Error())
	}

	var decoded schema.File
	if diags := gohcl.DecodeBody(file.Body, nil, &decoded); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode %s: %s", filePath, diags.Error())
	}
	return &decoded, nil
}
