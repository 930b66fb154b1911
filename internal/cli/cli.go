package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/buildplan/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("buildplan", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
buildplan - computes per-product build descriptions from a package graph.

Usage:
  buildplan [options] [GRAPH_PATH]

Arguments:
  GRAPH_PATH
    Path to a single .hcl file or a directory containing .hcl graph files.

Options:
`)
		flagSet.PrintDefaults()
	}

	graphFlag := flagSet.String("graph", "", "Path to the graph description file or directory.")
	gFlag := flagSet.String("g", "", "Path to the graph description file or directory (shorthand).")
	tripleFlag := flagSet.String("triple", "x86_64-unknown-linux-gnu", "Target triple to plan for.")
	configurationFlag := flagSet.String("configuration", "debug", "Build configuration. Options: 'debug' or 'release'.")
	debugInfoFlag := flagSet.String("debug-info", "none", "Debug-info strategy. Options: 'none', 'whole-module-symbols', 'object-wrap'.")
	buildDirFlag := flagSet.String("build-dir", ".build", "Directory derived artifact paths are placed under.")
	embeddedFlag := flagSet.Bool("embedded-runtime", false, "Target the embedded runtime variant.")
	derivedTestsFlag := flagSet.Bool("derived-tests", false, "Request derived test targets for test products.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *graphFlag != "" {
		path = *graphFlag
	} else if *gFlag != "" {
		path = *gFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Graph path determined.", "path", path)

	if path == "" {
		slog.Debug("No graph path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	configuration := strings.ToLower(*configurationFlag)
	if configuration != "debug" && configuration != "release" {
		return nil, false, &ExitError{Code: 2, Message: "invalid configuration: must be 'debug' or 'release'"}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		GraphPath:       path,
		Triple:          *tripleFlag,
		Configuration:   configuration,
		DebugInfo:       *debugInfoFlag,
		BuildDir:        *buildDirFlag,
		EmbeddedRuntime: *embeddedFlag,
		DerivedTests:    *derivedTestsFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.")
	return config, false, nil
}
