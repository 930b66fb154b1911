package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/buildplan/internal/cli"
)

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	args := []string{"-h"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, args)

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// Providing an unknown flag will cause cli.Parse to return an error.
	args := []string{"--this-is-not-a-valid-flag"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, args)

	// --- Assert ---
	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_InvalidConfiguration(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	args := []string{"-configuration", "profiling", "graph.hcl"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, args)

	// --- Assert ---
	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 2, exitErr.Code)
	require.Contains(t, exitErr.Message, "invalid configuration")
}

func TestRun_LoadError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// An HCL file with a syntax error fails during the loading phase.
	invalidHCL := `
		target "Core" {
			kind = "library"
		// Missing closing brace here
	`
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "graph.hcl")
	err := os.WriteFile(filePath, []byte(invalidHCL), 0600)
	require.NoError(t, err, "failed to set up test file")

	args := []string{filePath}
	out := &bytes.Buffer{}

	// --- Act ---
	runErr := run(out, args)

	// --- Assert ---
	require.Error(t, runErr)
	require.Contains(t, runErr.Error(), "failed to load package graph")
}

func TestRun_ComputesAndRendersPlan(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	graphHCL := `
package "demo" {
  tools_version = "5.9"
}

target "Utils" {
  kind    = "library"
  sources = ["strings.src"]
}

target "AppMain" {
  kind    = "executable"
  sources = ["main.src"]

  dependency {
    target = "Utils"
  }
}

product "app" {
  type    = "executable"
  targets = ["AppMain"]
}
`
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "graph.hcl")
	err := os.WriteFile(filePath, []byte(graphHCL), 0600)
	require.NoError(t, err, "failed to set up test file")

	args := []string{"-triple", "x86_64-unknown-linux-gnu", "-build-dir", filepath.Join(tempDir, ".build"), filePath}
	out := &bytes.Buffer{}

	// --- Act ---
	runErr := run(out, args)

	// --- Assert ---
	require.NoError(t, runErr)
	rendered := out.String()
	require.Contains(t, rendered, "product app (executable)")
	require.Contains(t, rendered, "Utils")
	require.Contains(t, rendered, "main.src.o")
}
