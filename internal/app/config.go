package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	GraphPath string // hcl files describing the package graph

	Triple          string
	Configuration   string // "debug" or "release"
	DebugInfo       string // "none", "whole-module-symbols", "object-wrap"
	BuildDir        string
	EmbeddedRuntime bool
	DerivedTests    bool

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.GraphPath == "" {
		return nil, errors.New("GraphPath is a required configuration field and cannot be empty")
	}
	if cfg.Triple == "" {
		return nil, errors.New("Triple is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
