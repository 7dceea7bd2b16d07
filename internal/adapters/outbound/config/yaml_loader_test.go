package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/inbar-marom/botverify/internal/adapters/outbound/config"
	"github.com/inbar-marom/botverify/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".botverify.yaml"), []byte(content), 0o644))
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.New().Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestLoad_OverridesMergeOverDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "compliance_threshold: 80\ncoverage_fatal: true\n")

	cfg, err := config.New().Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 80.0, cfg.ComplianceThreshold)
	assert.True(t, cfg.CoverageFatal)
	// Untouched fields keep their defaults.
	assert.Equal(t, 50.0, cfg.CoverageThreshold)
	assert.Equal(t, []string{"dotnet", "build"}, cfg.Toolchain.BuildCommand)
}

func TestLoad_ToolchainOverride(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
toolchain:
  build_command: ["sh", "-c", "true"]
  timeout_seconds: 5
`)

	cfg, err := config.New().Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"sh", "-c", "true"}, cfg.Toolchain.BuildCommand)
	assert.Equal(t, 5, cfg.Toolchain.TimeoutSeconds)
	assert.Equal(t, []string{"dotnet", "test", "--results-directory", "TestResults"}, cfg.Toolchain.TestCommand)
}

func TestLoad_InvalidValuesRejected(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "compliance_threshold: 150\n")

	_, err := config.New().Load(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestLoad_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "compliance_threshold: [not a number\n")

	_, err := config.New().Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".botverify.yaml")
}
