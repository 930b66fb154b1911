// Package plan drives one build-plan computation: for each product it walks
// the dependency graph, classifies the closure, resolves binary artifacts,
// assembles linker flags, and writes everything onto the product's build
// description.
package plan

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vk/buildplan/internal/artifact"
	"github.com/vk/buildplan/internal/classify"
	"github.com/vk/buildplan/internal/ctxlog"
	"github.com/vk/buildplan/internal/diag"
	"github.com/vk/buildplan/internal/graph"
	"github.com/vk/buildplan/internal/link"
	"github.com/vk/buildplan/internal/model"
)

// Config carries a planner's collaborators. Graph and Params are required;
// the rest default to the in-repo implementations.
type Config struct {
	Graph  *model.Graph
	Params *model.BuildParameters

	// PkgConfig resolves system modules to linker flags. Defaults to the
	// declaration-backed StaticPkgConfig.
	PkgConfig link.PkgConfig

	// Synthesizer supplies derived test targets. Nil disables synthesis
	// even when the testing configuration requests it.
	Synthesizer classify.DerivedTestSynthesizer

	// Sink receives non-fatal diagnostics. Defaults to the context logger.
	Sink diag.Sink
}

// Planner owns one build-plan computation: the artifact cache shared across
// its products, the per-target build descriptions, and the collaborators the
// pipeline stages need. A planner is safe for concurrent PlanProduct calls.
type Planner struct {
	graph    *model.Graph
	params   *model.BuildParameters
	resolver *artifact.Resolver
	pkg      link.PkgConfig
	synth    classify.DerivedTestSynthesizer
	sink     diag.Sink
	targets  map[string]*TargetDescription
	id       string
}

// New validates the configuration and derives the per-target build
// descriptions for every compiled target in the graph.
func New(cfg Config) (*Planner, error) {
	if cfg.Graph == nil {
		return nil, fmt.Errorf("planner requires a resolved graph")
	}
	if cfg.Params == nil {
		return nil, fmt.Errorf("planner requires build parameters")
	}
	if err := cfg.Params.Validate(); err != nil {
		return nil, err
	}
	if cfg.PkgConfig == nil {
		cfg.PkgConfig = link.StaticPkgConfig{}
	}
	if cfg.Sink == nil {
		cfg.Sink = diag.LogSink{}
	}

	p := &Planner{
		graph:    cfg.Graph,
		params:   cfg.Params,
		resolver: artifact.NewResolver(artifact.NewCache()),
		pkg:      cfg.PkgConfig,
		synth:    cfg.Synthesizer,
		sink:     cfg.Sink,
		targets:  make(map[string]*TargetDescription),
		id:       uuid.NewString(),
	}
	for _, t := range cfg.Graph.Targets {
		if t.Compiled() {
			p.targets[t.Name] = NewTargetDescription(t, cfg.Params.BuildDir)
		}
	}
	return p, nil
}

// TargetDescription returns the planner's build description for a target.
func (p *Planner) TargetDescription(name string) (*TargetDescription, bool) {
	d, ok := p.targets[name]
	return d, ok
}

// PlanProduct computes the complete build description for one product. The
// computation is synchronous and deterministic; it aborts on the first fatal
// error and reports recoverable problems to the diagnostics sink.
func (p *Planner) PlanProduct(ctx context.Context, product *model.Product) (*ProductDescription, error) {
	logger := ctxlog.FromContext(ctx).With("plan_id", p.id, "product", product.Name)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Planning product.")

	order, err := graph.Walk(product, p.params)
	if err != nil {
		return nil, fmt.Errorf("failed to walk dependencies of product %q: %w", product.Name, err)
	}
	logger.Debug("Dependency walk complete.", "node_count", len(order))

	computed, err := classify.Compute(ctx, product, p.params, order, p.resolver, p.synth)
	if err != nil {
		return nil, fmt.Errorf("failed to classify dependencies of product %q: %w", product.Name, err)
	}

	assembler := link.NewAssembler(p.pkg, p.sink)
	flags := assembler.Assemble(ctx, computed, p.params)

	desc := newProductDescription(product)
	if err := p.mutate(desc, computed, flags); err != nil {
		return nil, err
	}
	logger.Debug("Product planned.",
		"static_targets", len(desc.StaticTargets),
		"objects", len(desc.Objects),
		"dylibs", len(desc.Dylibs),
		"link_flags", len(desc.LinkFlags))
	return desc, nil
}

// PlanAll computes descriptions for every product in the graph. Independent
// products are planned in parallel; a product's description enters the
// result only after its computation fully completed, and the first fatal
// error aborts the whole plan.
func (p *Planner) PlanAll(ctx context.Context) (map[string]*ProductDescription, error) {
	descs := make([]*ProductDescription, len(p.graph.Products))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, product := range p.graph.Products {
		i, product := i, product
		eg.Go(func() error {
			desc, err := p.PlanProduct(egCtx, product)
			if err != nil {
				return err
			}
			descs[i] = desc
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]*ProductDescription, len(descs))
	for _, desc := range descs {
		out[desc.Product.Name] = desc
	}
	return out, nil
}

// mutate writes the classification and assembly results onto the product's
// description, threading the debug-info strategy through native targets.
func (p *Planner) mutate(desc *ProductDescription, computed *classify.Computed, flags []string) error {
	desc.StaticTargets = computed.StaticTargets
	desc.LinkFlags = flags

	for _, t := range computed.StaticTargets {
		td, ok := p.targets[t.Name]
		if !ok {
			if t.Native() {
				return &MissingDescriptionError{Product: desc.Product.Name, Target: t.Name}
			}
			continue
		}
		desc.Objects = append(desc.Objects, td.Objects...)
		if !t.Native() {
			continue
		}
		switch p.params.DebugInfo {
		case model.DebugInfoWholeModuleSymbols:
			desc.DebugArtifacts = append(desc.DebugArtifacts, td.ModuleSymbolPath)
		case model.DebugInfoObjectWrap:
			desc.Objects = append(desc.Objects, td.WrapObjectPath)
		case model.DebugInfoNone:
			// Nothing to thread.
		}
	}

	for _, dylib := range computed.DylibProducts {
		desc.Dylibs = append(desc.Dylibs, dylib.Name)
	}

	searchPaths := newPathSet()
	for _, path := range computed.LibraryPaths {
		searchPaths.add(filepath.Dir(path))
	}
	for _, path := range computed.FrameworkPaths {
		searchPaths.add(filepath.Dir(path))
	}
	desc.BinarySearchPaths = searchPaths.ordered

	for name, path := range computed.Tools {
		desc.Tools[name] = path
	}
	return nil
}

// pathSet is an insertion-ordered string set for search paths.
type pathSet struct {
	ordered []string
	seen    map[string]struct{}
}

func newPathSet() *pathSet {
	return &pathSet{seen: make(map[string]struct{})}
}

func (s *pathSet) add(path string) {
	if _, ok := s.seen[path]; ok {
		return
	}
	s.seen[path] = struct{}{}
	s.ordered = append(s.ordered, path)
}
