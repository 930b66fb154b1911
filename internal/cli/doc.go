// Package cli parses command-line arguments into an app.Config: the graph
// description path, the target triple and configuration, the plan options,
// and the logging setup. It owns process-level concerns like usage text and
// exit codes.
package cli
