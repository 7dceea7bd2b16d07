package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/inbar-marom/botverify/internal/domain"
	"gopkg.in/yaml.v3"
)

const fileName = ".botverify.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .botverify.yaml from
// the submission directory.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .botverify.yaml from submissionPath. A missing file yields the
// defaults; explicit values are merged over them and validated so that a
// bad config fails before any check runs.
func (l *YAMLLoader) Load(submissionPath string) (domain.Config, error) {
	data, err := os.ReadFile(filepath.Join(submissionPath, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.Config{}, err
	}

	var raw domain.Config
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return domain.Config{}, fmt.Errorf("parsing %s: %w", fileName, err)
	}

	cfg := mergeConfig(domain.DefaultConfig(), raw)
	if err := cfg.Validate(); err != nil {
		return domain.Config{}, fmt.Errorf("%s: %w", fileName, err)
	}
	return cfg, nil
}

// mergeConfig overlays explicit (non-zero) overrides on top of the defaults.
// CoverageFatal is the one plain boolean: absent and false are the same,
// and false is the default policy anyway.
func mergeConfig(base, override domain.Config) domain.Config {
	result := base

	if override.ComplianceThreshold != 0 {
		result.ComplianceThreshold = override.ComplianceThreshold
	}
	if override.CoverageThreshold != 0 {
		result.CoverageThreshold = override.CoverageThreshold
	}
	if override.LatencyCeilingMs != 0 {
		result.LatencyCeilingMs = override.LatencyCeilingMs
	}
	if override.MinTestCount != 0 {
		result.MinTestCount = override.MinTestCount
	}
	if override.CallsPerTest != 0 {
		result.CallsPerTest = override.CallsPerTest
	}
	result.CoverageFatal = override.CoverageFatal

	if len(override.SourceExtensions) > 0 {
		result.SourceExtensions = override.SourceExtensions
	}
	if len(override.ExcludePaths) > 0 {
		result.ExcludePaths = override.ExcludePaths
	}
	if override.RegistryURL != "" {
		result.RegistryURL = override.RegistryURL
	}

	if len(override.Toolchain.BuildCommand) > 0 {
		result.Toolchain.BuildCommand = override.Toolchain.BuildCommand
	}
	if len(override.Toolchain.TestCommand) > 0 {
		result.Toolchain.TestCommand = override.Toolchain.TestCommand
	}
	if len(override.Toolchain.ListCommand) > 0 {
		result.Toolchain.ListCommand = override.Toolchain.ListCommand
	}
	if override.Toolchain.TimeoutSeconds != 0 {
		result.Toolchain.TimeoutSeconds = override.Toolchain.TimeoutSeconds
	}

	return result
}
