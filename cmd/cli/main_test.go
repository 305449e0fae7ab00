package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/enginecore/internal/cli"
	"github.com/stretchr/testify/require"
)

func TestRun_InvalidConfigFile(t *testing.T) {
	// --- Arrange ---
	invalidHCL := `
		engine {
			workers = 2
		// Missing closing brace here
	`
	filePath := filepath.Join(t.TempDir(), "main.hcl")
	require.NoError(t, os.WriteFile(filePath, []byte(invalidHCL), 0600), "failed to set up test file")
	out := &bytes.Buffer{}

	// --- Act ---
	runErr := run(context.Background(), out, []string{"--config", filePath})

	// --- Assert ---
	require.Error(t, runErr)
	require.Contains(t, runErr.Error(), "failed to load configuration")
	require.Contains(t, runErr.Error(), "failed to parse")
}

func TestRun_Help(t *testing.T) {
	// --- Arrange ---
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, []string{"-h"})

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error for help")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	// --- Arrange ---
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, []string{"--this-is-not-a-valid-flag"})

	// --- Assert ---
	require.Error(t, err, "run() should return an error when argument parsing fails")
	var exitErr *cli.ExitError
	require.True(t, errors.As(err, &exitErr))
	require.Equal(t, 2, exitErr.Code)
	require.Contains(t, err.Error(), "unknown flag: --this-is-not-a-valid-flag")
}

func TestRun_JobsFromConfig(t *testing.T) {
	// --- Arrange ---
	config := `
job "fib-20" {
  task  = "engine_core:fib"
  input = { iter = 20 }
}
`
	filePath := filepath.Join(t.TempDir(), "jobs.hcl")
	require.NoError(t, os.WriteFile(filePath, []byte(config), 0600))
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, []string{"run", "-c", filePath})

	// --- Assert ---
	require.NoError(t, err)
	require.Contains(t, out.String(), "Job finished.")
	require.Contains(t, out.String(), "job=fib-20")
	require.Contains(t, out.String(), "result:6765")
}
