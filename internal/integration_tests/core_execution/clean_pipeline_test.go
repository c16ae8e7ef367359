package integration_tests

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/stagehand/internal/app"
	"github.com/vk/stagehand/internal/testutil"
)

// Scenario: all three steps succeed on a clean environment. Every step runs,
// in order, and the run ends cleanly.
func TestCleanPipelineRunsEveryStep(t *testing.T) {
	markerDir := t.TempDir()
	t.Setenv("STAGEHAND_TEST_MARKER_DIR", markerDir)

	planHCL := `
		pipeline "release" {}

		step "install-deps" {
			run = ["sh", "-c", "echo 1 >> ${env.STAGEHAND_TEST_MARKER_DIR}/order"]
		}

		step "collect-static" {
			run = ["sh", "-c", "echo 2 >> ${env.STAGEHAND_TEST_MARKER_DIR}/order"]
		}

		step "migrate" {
			run = ["sh", "-c", "echo 3 >> ${env.STAGEHAND_TEST_MARKER_DIR}/order"]
		}
	`
	result := testutil.RunPipelineTest(t, map[string]string{"deploy.hcl": planHCL}, nil)

	require.NoError(t, result.Err)

	order, err := os.ReadFile(filepath.Join(markerDir, "order"))
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n3\n", string(order), "steps must run strictly in plan order")
	assert.Contains(t, result.LogOutput, "🏁 Pipeline finished.")
}

// With no plan file anywhere, the conventional install / collectstatic /
// migrate pipeline is resolved. Dry run keeps the test off the real tools.
func TestDefaultPlanFallback(t *testing.T) {
	t.Parallel()

	result := testutil.RunPipelineTest(t, nil, func(cfg *app.Config) {
		cfg.DryRun = true
	})

	require.NoError(t, result.Err)
	assert.Contains(t, result.LogOutput, "conventional pipeline")
	assert.Contains(t, result.LogOutput, "install-deps")
	assert.Contains(t, result.LogOutput, "collect-static")
	assert.Contains(t, result.LogOutput, "migrate")
}
