package domain

import (
	"fmt"
	"time"
)

// ToolchainConfig describes how to invoke the external build/test toolchain.
type ToolchainConfig struct {
	BuildCommand   []string `yaml:"build_command"   json:"build_command,omitempty"`
	TestCommand    []string `yaml:"test_command"    json:"test_command,omitempty"`
	ListCommand    []string `yaml:"list_command"    json:"list_command,omitempty"`
	TimeoutSeconds int      `yaml:"timeout_seconds" json:"timeout_seconds,omitempty"`
}

// Timeout returns the subprocess timeout as a duration.
func (t ToolchainConfig) Timeout() time.Duration {
	return time.Duration(t.TimeoutSeconds) * time.Second
}

// Config holds verification thresholds and toolchain settings, loaded from
// .botverify.yaml with flag overrides on top.
type Config struct {
	ComplianceThreshold float64         `yaml:"compliance_threshold" json:"compliance_threshold"`
	CoverageThreshold   float64         `yaml:"coverage_threshold"   json:"coverage_threshold"`
	LatencyCeilingMs    float64         `yaml:"latency_ceiling_ms"   json:"latency_ceiling_ms"`
	MinTestCount        int             `yaml:"min_test_count"       json:"min_test_count"`
	CallsPerTest        int             `yaml:"calls_per_test"       json:"calls_per_test"`
	CoverageFatal       bool            `yaml:"coverage_fatal"       json:"coverage_fatal"`
	SourceExtensions    []string        `yaml:"source_extensions"    json:"source_extensions,omitempty"`
	ExcludePaths        []string        `yaml:"exclude_paths"        json:"exclude_paths,omitempty"`
	RegistryURL         string          `yaml:"registry_url"         json:"registry_url,omitempty"`
	Toolchain           ToolchainConfig `yaml:"toolchain"            json:"toolchain,omitempty"`
}

// DefaultConfig returns the thresholds and dotnet toolchain commands used
// when no .botverify.yaml is present.
func DefaultConfig() Config {
	return Config{
		ComplianceThreshold: 95,
		CoverageThreshold:   50,
		LatencyCeilingMs:    300,
		MinTestCount:        50,
		CallsPerTest:        5,
		CoverageFatal:       false,
		SourceExtensions:    []string{".cs"},
		RegistryURL:         "http://localhost:8080",
		Toolchain: ToolchainConfig{
			BuildCommand:   []string{"dotnet", "build"},
			TestCommand:    []string{"dotnet", "test", "--results-directory", "TestResults"},
			ListCommand:    []string{"dotnet", "test", "--list-tests"},
			TimeoutSeconds: 120,
		},
	}
}

// Validate rejects unusable thresholds and toolchain settings. A failure here
// is a configuration error: the caller must stop before any check runs.
func (c Config) Validate() error {
	if c.ComplianceThreshold < 0 || c.ComplianceThreshold > 100 {
		return fmt.Errorf("%w: compliance_threshold %.1f must be within [0,100]", ErrInvalidConfig, c.ComplianceThreshold)
	}
	if c.CoverageThreshold < 0 || c.CoverageThreshold > 100 {
		return fmt.Errorf("%w: coverage_threshold %.1f must be within [0,100]", ErrInvalidConfig, c.CoverageThreshold)
	}
	if c.LatencyCeilingMs <= 0 {
		return fmt.Errorf("%w: latency_ceiling_ms must be positive, got %.1f", ErrInvalidConfig, c.LatencyCeilingMs)
	}
	if c.MinTestCount < 0 {
		return fmt.Errorf("%w: min_test_count must not be negative, got %d", ErrInvalidConfig, c.MinTestCount)
	}
	if c.CallsPerTest <= 0 {
		return fmt.Errorf("%w: calls_per_test must be positive, got %d", ErrInvalidConfig, c.CallsPerTest)
	}
	if len(c.SourceExtensions) == 0 {
		return fmt.Errorf("%w: source_extensions must not be empty", ErrInvalidConfig)
	}
	if len(c.Toolchain.BuildCommand) == 0 {
		return fmt.Errorf("%w: toolchain.build_command must not be empty", ErrInvalidConfig)
	}
	if len(c.Toolchain.TestCommand) == 0 {
		return fmt.Errorf("%w: toolchain.test_command must not be empty", ErrInvalidConfig)
	}
	if c.Toolchain.TimeoutSeconds <= 0 {
		return fmt.Errorf("%w: toolchain.timeout_seconds must be positive, got %d", ErrInvalidConfig, c.Toolchain.TimeoutSeconds)
	}
	return nil
}
