package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	configAdapter "github.com/inbar-marom/botverify/internal/adapters/outbound/config"
	"github.com/inbar-marom/botverify/internal/adapters/outbound/coverage"
	"github.com/inbar-marom/botverify/internal/adapters/outbound/scanner"
	"github.com/inbar-marom/botverify/internal/adapters/outbound/toolchain"
	"github.com/inbar-marom/botverify/internal/adapters/outbound/tui"
	"github.com/inbar-marom/botverify/internal/application"
	"github.com/inbar-marom/botverify/internal/domain"
)

func newVerifyCmd() *cobra.Command {
	var (
		jsonOutput    bool
		complianceMin float64
		coverageMin   float64
		latencyMax    float64
		coverageFatal bool
	)

	cmd := &cobra.Command{
		Use:   "verify [path]",
		Short: "Run the full verification pipeline on a submission",
		Long:  "Build the submission, scan its sources against the style rules, and estimate test coverage and per-call latency. Exits non-zero when any check fails.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			cfg, err := configAdapter.New().Load(absPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("compliance-min") {
				cfg.ComplianceThreshold = complianceMin
			}
			if cmd.Flags().Changed("coverage-min") {
				cfg.CoverageThreshold = coverageMin
			}
			if cmd.Flags().Changed("latency-max") {
				cfg.LatencyCeilingMs = latencyMax
			}
			if cmd.Flags().Changed("coverage-fatal") {
				cfg.CoverageFatal = coverageFatal
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			svc := application.NewVerifyService(
				scanner.New(cfg.SourceExtensions, cfg.ExcludePaths...),
				toolchain.New(cfg.Toolchain),
				coverage.New(),
				cfg,
			)

			report, err := svc.Verify(cmd.Context(), absPath)
			if err != nil {
				return err
			}

			if jsonOutput {
				if err := renderJSON(cmd, report); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report))
			}

			if !report.OverallPassed() {
				return fmt.Errorf("verification failed: %s", report.Summary())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the report as JSON")
	cmd.Flags().Float64Var(&complianceMin, "compliance-min", 0, "Minimum trailing-marker compliance percentage")
	cmd.Flags().Float64Var(&coverageMin, "coverage-min", 0, "Minimum estimated coverage percentage")
	cmd.Flags().Float64Var(&latencyMax, "latency-max", 0, "Maximum estimated per-call latency in ms")
	cmd.Flags().BoolVar(&coverageFatal, "coverage-fatal", false, "Fail the run when coverage is below threshold")

	return cmd
}

func renderJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func fatalCheck(report *domain.VerificationReport) string {
	for _, r := range report.Results {
		if r.Status == domain.StatusFailed {
			return r.Name
		}
	}
	return ""
}
