package integration_tests

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/stagehand/internal/testutil"
)

// Values from the conventional .env file must reach the step subprocesses.
func TestEnvFileReachesSteps(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "greeting")
	t.Setenv("STAGEHAND_TEST_OUT_FILE", outPath)

	files := map[string]string{
		".env": "GREETING=hello-from-dotenv\n",
		"deploy.hcl": `
			step "greet" {
				run = ["sh", "-c", "printf '%s' \"$GREETING\" > ${env.STAGEHAND_TEST_OUT_FILE}"]
			}
		`,
	}
	result := testutil.RunPipelineTest(t, files, nil)

	require.NoError(t, result.Err)
	content, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "hello-from-dotenv", string(content))
}

// The process environment wins over the .env file on conflict.
func TestProcessEnvironmentWinsOverEnvFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "greeting")
	t.Setenv("STAGEHAND_TEST_OUT_FILE", outPath)
	t.Setenv("GREETING", "hello-from-process")

	files := map[string]string{
		".env": "GREETING=hello-from-dotenv\n",
		"deploy.hcl": `
			step "greet" {
				run = ["sh", "-c", "printf '%s' \"$GREETING\" > ${env.STAGEHAND_TEST_OUT_FILE}"]
			}
		`,
	}
	result := testutil.RunPipelineTest(t, files, nil)

	require.NoError(t, result.Err)
	content, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "hello-from-process", string(content))
}
