package loader

import (
	"fmt"

	"github.com/vk/buildplan/internal/model"
	"github.com/vk/buildplan/internal/schema"
)

// defaultToolsVersion applies when the package block declares none.
var defaultToolsVersion = model.ToolsVersion{Major: 5, Minor: 9}

// translate turns the merged raw description into a resolved model graph.
// Targets are created first, then products (which reference targets), and
// dependency edges are linked last so that edges may point at products.
func translate(file *schema.File) (*model.Graph, error) {
	tools := defaultToolsVersion
	if file.Package.ToolsVersion != nil {
		parsed, err := model.ParseToolsVersion(*file.Package.ToolsVersion)
		if err != nil {
			return nil, fmt.Errorf("package %q: %w", file.Package.Name, err)
		}
		tools = parsed
	}

	targets := make([]*model.Target, 0, len(file.Targets))
	targetsByName := make(map[string]*model.Target, len(file.Targets))
	for _, raw := range file.Targets {
		t, err := translateTarget(raw)
		if err != nil {
			return nil, err
		}
		if _, exists := targetsByName[t.Name]; exists {
			return nil, fmt.Errorf("duplicate target name %q", t.Name)
		}
		targets = append(targets, t)
		targetsByName[t.Name] = t
	}

	products := make([]*model.Product, 0, len(file.Products))
	productsByName := make(map[string]*model.Product, len(file.Products))
	for _, raw := range file.Products {
		p, err := translateProduct(raw, tools, targetsByName)
		if err != nil {
			return nil, err
		}
		if _, exists := productsByName[p.Name]; exists {
			return nil, fmt.Errorf("duplicate product name %q", p.Name)
		}
		products = append(products, p)
		productsByName[p.Name] = p
	}

	for i, raw := range file.Targets {
		if err := linkDependencies(targets[i], raw, targetsByName, productsByName); err != nil {
			return nil, err
		}
	}

	return model.NewGraph(file.Package.Name, tools, targets, products)
}

func translateTarget(raw *schema.Target) (*model.Target, error) {
	t := &model.Target{
		Name:    raw.Name,
		Sources: raw.Sources,
	}

	switch raw.Kind {
	case "library":
		t.Kind = model.KindLibrary
	case "executable":
		t.Kind = model.KindExecutable
	case "test":
		t.Kind = model.KindTest
	case "snippet":
		t.Kind = model.KindSnippet
	case "macro":
		t.Kind = model.KindMacro
	case "plugin":
		t.Kind = model.KindPlugin
	case "system-module":
		t.Kind = model.KindSystemModule
		payload := &model.SystemModulePayload{LinkFlags: raw.LinkFlags}
		if raw.PkgConfig != nil {
			payload.PkgConfigName = *raw.PkgConfig
		}
		t.SystemModule = payload
	case "binary":
		t.Kind = model.KindBinary
		if raw.Artifact == nil {
			return nil, fmt.Errorf("binary target %q declares no artifact path", raw.Name)
		}
		t.Binary = &model.BinaryPayload{ArtifactPath: *raw.Artifact}
	default:
		return nil, fmt.Errorf("target %q has unknown kind %q", raw.Name, raw.Kind)
	}

	if raw.Language != nil {
		switch *raw.Language {
		case "native":
			t.Language = model.LanguageNative
		case "c-family":
			t.Language = model.LanguageCFamily
		default:
			return nil, fmt.Errorf("target %q has unknown language %q", raw.Name, *raw.Language)
		}
	}
	if raw.Cxx != nil {
		if t.Language != model.LanguageCFamily {
			return nil, fmt.Errorf("target %q sets cxx but is not a c-family target", raw.Name)
		}
		t.Cxx = *raw.Cxx
	}
	if raw.TestableExecutable != nil {
		if t.Kind != model.KindExecutable {
			return nil, fmt.Errorf("target %q sets testable_executable but is not an executable", raw.Name)
		}
		t.TestableExecutable = *raw.TestableExecutable
	}
	return t, nil
}

func translateProduct(raw *schema.Product, tools model.ToolsVersion, targets map[string]*model.Target) (*model.Product, error) {
	p := &model.Product{
		Name:         raw.Name,
		ToolsVersion: tools,
	}

	switch raw.Type {
	case "executable":
		p.Kind = model.ProductExecutable
	case "library", "library-automatic":
		p.Kind = model.ProductLibrary
		p.Library = model.LibraryAutomatic
	case "library-static":
		p.Kind = model.ProductLibrary
		p.Library = model.LibraryStatic
	case "library-dynamic":
		p.Kind = model.ProductLibrary
		p.Library = model.LibraryDynamic
	case "test":
		p.Kind = model.ProductTest
	case "plugin":
		p.Kind = model.ProductPlugin
	case "macro":
		p.Kind = model.ProductMacro
	case "snippet":
		p.Kind = model.ProductSnippet
	default:
		return nil, fmt.Errorf("product %q has unknown type %q", raw.Name, raw.Type)
	}

	for _, name := range raw.Targets {
		t, ok := targets[name]
		if !ok {
			return nil, fmt.Errorf("product %q lists unknown target %q", raw.Name, name)
		}
		p.Targets = append(p.Targets, t)
	}
	return p, nil
}

func linkDependencies(t *model.Target, raw *schema.Target, targets map[string]*model.Target, products map[string]*model.Product) error {
	for _, dep := range raw.Dependencies {
		edge := model.Dependency{Condition: model.NewCondition(dep.When)}
		switch {
		case dep.Target != nil && dep.Product != nil:
			return fmt.Errorf("target %q has a dependency naming both a target and a product", t.Name)
		case dep.Target != nil:
			dest, ok := targets[*dep.Target]
			if !ok {
				return fmt.Errorf("target %q depends on unknown target %q", t.Name, *dep.Target)
			}
			if dest == t {
				return fmt.Errorf("target %q depends on itself", t.Name)
			}
			edge.Target = dest
		case dep.Product != nil:
			dest, ok := products[*dep.Product]
			if !ok {
				return fmt.Errorf("target %q depends on unknown product %q", t.Name, *dep.Product)
			}
			edge.Product = dest
		default:
			return fmt.Errorf("target %q has a dependency naming neither a target nor a product", t.Name)
		}
		t.Dependencies = append(t.Dependencies, edge)
	}
	return nil
}
