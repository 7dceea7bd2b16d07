package domain_test

import (
	"testing"
	"time"

	"github.com/inbar-marom/botverify/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := domain.DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 95.0, cfg.ComplianceThreshold)
	assert.Equal(t, 50.0, cfg.CoverageThreshold)
	assert.Equal(t, 300.0, cfg.LatencyCeilingMs)
	assert.Equal(t, []string{".cs"}, cfg.SourceExtensions)
	assert.False(t, cfg.CoverageFatal)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Config)
	}{
		{"compliance above 100", func(c *domain.Config) { c.ComplianceThreshold = 101 }},
		{"negative coverage", func(c *domain.Config) { c.CoverageThreshold = -1 }},
		{"zero latency ceiling", func(c *domain.Config) { c.LatencyCeilingMs = 0 }},
		{"negative min tests", func(c *domain.Config) { c.MinTestCount = -5 }},
		{"zero calls per test", func(c *domain.Config) { c.CallsPerTest = 0 }},
		{"no extensions", func(c *domain.Config) { c.SourceExtensions = nil }},
		{"no build command", func(c *domain.Config) { c.Toolchain.BuildCommand = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := domain.DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidConfig)
		})
	}
}

func TestToolchainConfig_Timeout(t *testing.T) {
	cfg := domain.ToolchainConfig{TimeoutSeconds: 90}
	assert.Equal(t, 90*time.Second, cfg.Timeout())
}
