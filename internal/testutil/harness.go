package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/projindex/internal/app"
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

// WriteFiles creates every file in files below root. Keys are
// slash-separated relative paths; parent directories are created as needed.
func WriteFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Root      string
	LogOutput string
	Err       error
	App       *app.App
}

// Path joins a slash-separated path onto the harness root.
func (r *HarnessResult) Path(name string) string {
	return filepath.Join(r.Root, filepath.FromSlash(name))
}

// ReadFile returns the content of a file below the harness root.
func (r *HarnessResult) ReadFile(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(r.Path(name))
	require.NoError(t, err)
	return string(data)
}

// RunIntegrationTest writes files into a fresh temporary root, points every
// relative path of cfg at that root and runs the app once.
func RunIntegrationTest(t *testing.T, files map[string]string, cfg app.Config) *HarnessResult {
	t.Helper()
	root := t.TempDir()
	WriteFiles(t, root, files)
	return RunInRoot(t, root, cfg)
}

// RunInRoot runs the app against an existing root, so tests can run twice
// over the same tree.
func RunInRoot(t *testing.T, root string, cfg app.Config) *HarnessResult {
	t.Helper()

	cfg.ProjectsDir = rooted(root, cfg.ProjectsDir)
	if cfg.BuildDir != "" {
		cfg.BuildDir = rooted(root, cfg.BuildDir)
	} else {
		cfg.Output = rooted(root, cfg.Output)
	}
	cfg.LogLevel = "debug"
	cfg.LogFormat = "text"

	logBuffer := &SafeBuffer{}
	validated, err := app.NewConfig(cfg)
	if err != nil {
		return &HarnessResult{Root: root, Err: fmt.Errorf("invalid configuration | %w", err)}
	}

	testApp := app.NewApp(logBuffer, validated)
	runErr := testApp.Run(context.Background())

	if os.Getenv("PROJINDEX_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		Root:      root,
		LogOutput: logBuffer.String(),
		Err:       runErr,
		App:       testApp,
	}
}

func rooted(root, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}
