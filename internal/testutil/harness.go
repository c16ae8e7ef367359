package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/stagehand/internal/app"
	"github.com/vk/stagehand/internal/execcmd"
	"github.com/vk/stagehand/internal/hclplan"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Dir       string
	LogOutput string
	Err       error
}

// RunPipelineTest provides a standardized harness for integration tests. It
// writes the given files into a fresh temp directory, points the app at
// <dir>/deploy.hcl, and runs the full pipeline with the real command backend.
// The mutate callback may adjust the config before the run.
func RunPipelineTest(t *testing.T, files map[string]string, mutate func(*app.Config)) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}

	cfg, err := app.NewConfig(app.Config{
		PlanPath:  filepath.Join(tmpDir, "deploy.hcl"),
		EnvFile:   filepath.Join(tmpDir, ".env"),
		LogFormat: "text",
		LogLevel:  "debug",
	})
	require.NoError(t, err)
	if mutate != nil {
		mutate(cfg)
	}

	logBuffer := &SafeBuffer{}
	testApp := app.NewApp(logBuffer, logBuffer, cfg, hclplan.NewLoader(), execcmd.OSRunner{})
	runErr := testApp.Run(context.Background())

	if os.Getenv("STAGEHAND_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		Dir:       tmpDir,
		LogOutput: logBuffer.String(),
		Err:       runErr,
	}
}
