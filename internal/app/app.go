// Package app wires configuration, loading, planning, and output rendering
// into the application lifecycle.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/buildplan/internal/ctxlog"
	"github.com/vk/buildplan/internal/loader"
	"github.com/vk/buildplan/internal/model"
	"github.com/vk/buildplan/internal/plan"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger.
func NewApp(outW io.Writer, config *Config) *App {
	logger := newLogger(config.LogLevel, config.LogFormat, os.Stderr)
	logger.Debug("Logger configured successfully.")
	return &App{
		outW:   outW,
		logger: logger,
		config: config,
	}
}

// Run executes the main application logic: load the graph description, build
// the parameters, compute a plan for every product, and render it.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	graph, err := loader.Load(ctx, a.config.GraphPath)
	if err != nil {
		return fmt.Errorf("failed to load package graph: %w", err)
	}
	a.logger.Info("Package graph loaded.", "package", graph.PackageName, "targets", len(graph.Targets), "products", len(graph.Products))

	params, err := a.buildParameters()
	if err != nil {
		return err
	}

	planner, err := plan.New(plan.Config{Graph: graph, Params: params})
	if err != nil {
		return fmt.Errorf("failed to create planner: %w", err)
	}

	descriptions, err := planner.PlanAll(ctx)
	if err != nil {
		return fmt.Errorf("plan computation failed: %w", err)
	}
	a.logger.Info("Plan computation finished.", "products", len(descriptions))

	return renderPlan(a.outW, graph, descriptions)
}

// buildParameters translates the validated config into model parameters.
func (a *App) buildParameters() (*model.BuildParameters, error) {
	triple, err := model.ParseTriple(a.config.Triple)
	if err != nil {
		return nil, err
	}

	configuration := a.config.Configuration
	if configuration == "" {
		configuration = "debug"
	}

	debugInfo := model.DebugInfoNone
	if a.config.DebugInfo != "" {
		debugInfo, err = model.ParseDebugInfoStrategy(a.config.DebugInfo)
		if err != nil {
			return nil, err
		}
	}

	buildDir := a.config.BuildDir
	if buildDir == "" {
		buildDir = ".build"
	}

	return &model.BuildParameters{
		Triple:          triple,
		Environment:     model.NewEnvironment(triple.OSName(), configuration),
		DebugInfo:       debugInfo,
		Testing:         model.TestingConfiguration{DerivedTargets: a.config.DerivedTests},
		EmbeddedRuntime: a.config.EmbeddedRuntime,
		BuildDir:        buildDir,
	}, nil
}
