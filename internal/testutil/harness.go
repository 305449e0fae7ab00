package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/enginecore/internal/app"
	"github.com/specialistvlad/enginecore/internal/plugin"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
}

// RunIntegrationTest runs a full App lifecycle with a background context.
// See RunIntegrationTestWithContext.
func RunIntegrationTest(t *testing.T, configName, configBody string, modules ...plugin.Module) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, configName, configBody, modules...)
}

// RunIntegrationTestWithContext writes configBody to configName inside a
// temporary directory, builds an App around it and runs it to completion.
// An empty configName runs with defaults only. Modules default to the
// compiled-in core modules.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, configName, configBody string, modules ...plugin.Module) *HarnessResult {
	t.Helper()

	cfg := app.Config{LogLevel: "debug", LogFormat: "text"}
	if configName != "" {
		path := filepath.Join(t.TempDir(), configName)
		require.NoError(t, os.WriteFile(path, []byte(configBody), 0o644))
		cfg.ConfigPath = path
	}
	appConfig, err := app.NewConfig(cfg)
	require.NoError(t, err)

	logBuffer := &SafeBuffer{}

	testApp, err := app.NewApp(logBuffer, appConfig, modules...)
	if err != nil {
		return &HarnessResult{
			LogOutput: logBuffer.String(),
			Err:       fmt.Errorf("application startup failed | %w", err),
		}
	}

	runErr := testApp.Run(ctx)

	if os.Getenv("ENGINECORE_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       runErr,
		App:       testApp,
	}
}
