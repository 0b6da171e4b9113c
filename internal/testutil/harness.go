// Package testutil provides a harness for running the full application
// against files written to a temporary directory.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/metagraph/internal/app"
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
	Output    string
	LogOutput string
	Err       error
	App       *app.App
	// Dir is the temporary root the files were written to.
	Dir string
}

// Path returns the absolute path of a file written by the harness.
func (r *HarnessResult) Path(name string) string {
	return filepath.Join(r.Dir, name)
}

// RunIntegrationTest provides a standardized harness for running integration
// tests using a default background context.
func RunIntegrationTest(t *testing.T, files map[string]string, configure func(dir string, cfg *app.Config)) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, configure)
}

// RunIntegrationTestWithContext writes files (relative names) into a fresh
// temporary directory, builds a debug-level App whose inputs default to
// every written file in sorted order, lets configure adjust the config and
// runs it.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, configure func(dir string, cfg *app.Config)) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}

	cfg := app.Config{
		Inputs:      []string{tmpDir},
		LogLevel:    "debug",
		LogFormat:   "text",
		WorkerCount: 4,
	}
	if configure != nil {
		configure(tmpDir, &cfg)
	}
	validated, err := app.NewConfig(cfg)
	require.NoError(t, err)

	logBuffer := &SafeBuffer{}
	out := &SafeBuffer{}
	testApp, err := app.New(logBuffer, validated)
	require.NoError(t, err)

	runErr := testApp.Run(ctx, out)

	t.Cleanup(func() {
		if os.Getenv("METAGRAPH_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return &HarnessResult{
		Output:    out.String(),
		LogOutput: logBuffer.String(),
		Err:       runErr,
		App:       testApp,
		Dir:       tmpDir,
	}
}
