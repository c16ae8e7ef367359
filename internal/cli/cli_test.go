package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_NoArgumentsRunsConventionalPipeline(t *testing.T) {
	out := &bytes.Buffer{}

	cfg, shouldExit, err := Parse(nil, out)

	require.NoError(t, err)
	assert.False(t, shouldExit)
	assert.Equal(t, "deploy.hcl", cfg.PlanPath)
	assert.False(t, cfg.PlanExplicit, "a missing conventional plan must fall back, not fail")
	assert.Equal(t, ".env", cfg.EnvFile)
	assert.False(t, cfg.EnvFileExplicit)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "python", cfg.Python)
	assert.Equal(t, "pip", cfg.Pip)
}

func TestParse_PositionalPlanPath(t *testing.T) {
	out := &bytes.Buffer{}

	cfg, _, err := Parse([]string{"release.hcl"}, out)

	require.NoError(t, err)
	assert.Equal(t, "release.hcl", cfg.PlanPath)
	assert.True(t, cfg.PlanExplicit)
}

func TestParse_PlanFlagWinsOverPositional(t *testing.T) {
	out := &bytes.Buffer{}

	cfg, _, err := Parse([]string{"-plan", "flagged.hcl", "positional.hcl"}, out)

	require.NoError(t, err)
	assert.Equal(t, "flagged.hcl", cfg.PlanPath)
}

func TestParse_Shorthand(t *testing.T) {
	out := &bytes.Buffer{}

	cfg, _, err := Parse([]string{"-p", "short.hcl"}, out)

	require.NoError(t, err)
	assert.Equal(t, "short.hcl", cfg.PlanPath)
	assert.True(t, cfg.PlanExplicit)
}

func TestParse_HelpRequestsCleanExit(t *testing.T) {
	out := &bytes.Buffer{}

	cfg, shouldExit, err := Parse([]string{"-h"}, out)

	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParse_InvalidLogFormat(t *testing.T) {
	out := &bytes.Buffer{}

	_, _, err := Parse([]string{"-log-format", "xml"}, out)

	require.Error(t, err)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}

func TestParse_InvalidLogLevel(t *testing.T) {
	out := &bytes.Buffer{}

	_, _, err := Parse([]string{"-log-level", "verbose"}, out)

	require.Error(t, err)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}

func TestParse_EnvFileFlagIsExplicit(t *testing.T) {
	out := &bytes.Buffer{}

	cfg, _, err := Parse([]string{"-env-file", "production.env"}, out)

	require.NoError(t, err)
	assert.Equal(t, "production.env", cfg.EnvFile)
	assert.True(t, cfg.EnvFileExplicit)
}

func TestParse_EnvironmentDefaults(t *testing.T) {
	t.Setenv("STAGEHAND_LOG_LEVEL", "debug")
	t.Setenv("STAGEHAND_PLAN", "ops/deploy.hcl")
	out := &bytes.Buffer{}

	cfg, _, err := Parse(nil, out)

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "ops/deploy.hcl", cfg.PlanPath)
}

// A plan path coming from STAGEHAND_PLAN must not fall back to the built-in
// pipeline when the file is missing; only the conventional lookup may.
func TestParse_EnvPlanIsExplicit(t *testing.T) {
	t.Setenv("STAGEHAND_PLAN", "ops/deploy.hcl")
	out := &bytes.Buffer{}

	cfg, _, err := Parse(nil, out)

	require.NoError(t, err)
	assert.True(t, cfg.PlanExplicit)
}

func TestParse_FlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("STAGEHAND_LOG_LEVEL", "debug")
	out := &bytes.Buffer{}

	cfg, _, err := Parse([]string{"-log-level", "warn"}, out)

	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
}
