package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/inbar-marom/botverify/internal/domain"
	"github.com/inbar-marom/botverify/internal/domain/estimate"
	"github.com/inbar-marom/botverify/internal/domain/rules"
)

// VerifyService runs the verification pipeline over a submission directory:
// compilation, two style-rule scans, coverage estimation, latency estimation,
// strictly in that order. A check failure never stops the run, so the caller
// always sees the full set of results, but an infrastructure failure aborts
// remaining stages and marks them skipped, not failed.
type VerifyService struct {
	scanner   domain.SubmissionScanner
	toolchain domain.ToolchainRunner
	coverage  domain.CoverageReader
	engine    *rules.Engine
	cfg       domain.Config
}

// NewVerifyService creates a VerifyService with all required adapters and a
// validated configuration.
func NewVerifyService(
	scanner domain.SubmissionScanner,
	toolchain domain.ToolchainRunner,
	coverage domain.CoverageReader,
	cfg domain.Config,
) *VerifyService {
	return &VerifyService{
		scanner:   scanner,
		toolchain: toolchain,
		coverage:  coverage,
		engine:    rules.NewEngine(0),
		cfg:       cfg,
	}
}

// runState carries artifacts between stages of a single run. Later stages
// depend on earlier ones (coverage and latency read the test run), which is
// why stages execute sequentially.
type runState struct {
	path string
	scan *domain.ScanResult
	test *domain.TestResult
}

type stage struct {
	name string
	run  func(ctx context.Context, st *runState) (domain.CheckResult, error)
}

// Verify runs the whole pipeline. The only returned error is a configuration
// error raised before any stage runs; everything that happens during the run
// is captured as data in the report.
func (s *VerifyService) Verify(ctx context.Context, submissionPath string) (*domain.VerificationReport, error) {
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}

	stages := []stage{
		{domain.CheckCompilation, s.runBuild},
		{domain.CheckAdjacentTerminator, s.runAdjacentTerminator},
		{domain.CheckTrailingMarker, s.runTrailingMarker},
		{domain.CheckCoverage, s.runCoverage},
		{domain.CheckLatency, s.runLatency},
	}

	report := &domain.VerificationReport{}
	st := &runState{path: submissionPath}

	for i, sg := range stages {
		result, err := sg.run(ctx, st)
		if err != nil {
			// Tooling broke, not the submission: record the aborting stage
			// as failed with the error detail and every unexecuted stage as
			// skipped so callers can tell the two apart.
			report.Add(domain.CheckResult{
				Name:   sg.name,
				Status: domain.StatusFailed,
				Info:   []string{"infrastructure failure: " + err.Error()},
			})
			for _, rest := range stages[i+1:] {
				report.Add(domain.CheckResult{
					Name:   rest.name,
					Status: domain.StatusSkipped,
					Info:   []string{"not run: pipeline aborted after " + sg.name},
				})
			}
			break
		}
		report.Add(result)
	}
	return report, nil
}

func (s *VerifyService) runBuild(ctx context.Context, st *runState) (domain.CheckResult, error) {
	build, err := s.toolchain.Build(ctx, st.path)
	if err != nil {
		return domain.CheckResult{}, err
	}

	if !build.Succeeded {
		info := []string{"build exited with a non-zero status"}
		info = append(info, outputLines(build.Output)...)
		return domain.CheckResult{
			Name:   domain.CheckCompilation,
			Status: domain.StatusFailed,
			Info:   info,
		}, nil
	}
	return domain.CheckResult{
		Name:   domain.CheckCompilation,
		Status: domain.StatusPassed,
		Info:   []string{"submission compiled successfully"},
	}, nil
}

func (s *VerifyService) runAdjacentTerminator(ctx context.Context, st *runState) (domain.CheckResult, error) {
	if err := s.ensureScan(st); err != nil {
		return domain.CheckResult{}, err
	}

	violations, _ := s.engine.Scan(st.scan.SourceFiles, rules.NewAdjacentTerminator())

	result := domain.CheckResult{
		Name:       domain.CheckAdjacentTerminator,
		Status:     domain.StatusPassed,
		Violations: violations,
		Info:       []string{fmt.Sprintf("scanned %d source files", len(st.scan.SourceFiles))},
	}
	if len(violations) > 0 {
		result.Status = domain.StatusFailed
		result.Info = append(result.Info,
			fmt.Sprintf("found %d adjacent terminator violations", len(violations)))
	}
	return result, nil
}

func (s *VerifyService) runTrailingMarker(ctx context.Context, st *runState) (domain.CheckResult, error) {
	if err := s.ensureScan(st); err != nil {
		return domain.CheckResult{}, err
	}

	// Test files follow the same statement-marker convention as sources.
	files := st.scan.AllFiles()
	violations, stats := s.engine.Scan(files, rules.NewTrailingMarker())
	compliance := stats.Compliance()

	result := domain.CheckResult{
		Name:       domain.CheckTrailingMarker,
		Violations: violations,
		Info: []string{
			fmt.Sprintf("statements checked: %d", stats.Statements),
			fmt.Sprintf("compliant statements: %d", stats.Compliant),
			fmt.Sprintf("compliance rate: %.1f%%", compliance),
		},
	}
	if stats.Statements == 0 || compliance >= s.cfg.ComplianceThreshold {
		result.Status = domain.StatusPassed
	} else {
		result.Status = domain.StatusFailed
		result.Info = append(result.Info,
			fmt.Sprintf("compliance below %.1f%% threshold", s.cfg.ComplianceThreshold))
	}
	return result, nil
}

func (s *VerifyService) runCoverage(ctx context.Context, st *runState) (domain.CheckResult, error) {
	if err := s.ensureScan(st); err != nil {
		return domain.CheckResult{}, err
	}

	test, err := s.toolchain.Test(ctx, st.path)
	if err != nil {
		return domain.CheckResult{}, err
	}
	st.test = test

	if !test.Succeeded {
		info := []string{"test run exited with a non-zero status"}
		info = append(info, outputLines(test.Output)...)
		return domain.CheckResult{
			Name:   domain.CheckCoverage,
			Status: domain.StatusFailed,
			Info:   info,
		}, nil
	}

	percent, parsed, found, err := s.coverage.Read(st.scan.TestResultsDir)
	if err != nil {
		return domain.CheckResult{}, domain.Infra("reading coverage artifacts", err)
	}

	testCount := test.TestCount
	if testCount == 0 && !parsed && !found {
		// No artifacts and no run summary: discover tests explicitly for
		// the test-count fallback tier.
		testCount, err = s.toolchain.ListTests(ctx, st.path)
		if err != nil {
			return domain.CheckResult{}, err
		}
	}

	est := estimate.EstimateCoverage(estimate.CoverageInput{
		ReportPercent:   percent,
		ReportParsed:    parsed,
		ArtifactsFound:  found,
		SourceFileCount: len(st.scan.SourceFiles),
		TestFileCount:   len(st.scan.TestFiles),
		TestCount:       testCount,
	})

	info := []string{"estimation method: " + string(est.Method)}
	switch est.Method {
	case estimate.MethodTestCount:
		info = append(info, fmt.Sprintf("discovered tests: %d (minimum %d)", est.TestCount, s.cfg.MinTestCount))
	default:
		info = append(info, fmt.Sprintf("coverage ratio: %.1f%% (threshold %.1f%%)", est.RatioPercent, s.cfg.CoverageThreshold))
	}

	result := domain.CheckResult{Name: domain.CheckCoverage, Status: domain.StatusPassed, Info: info}
	if !est.Satisfies(s.cfg.CoverageThreshold, s.cfg.MinTestCount) {
		if s.cfg.CoverageFatal {
			result.Status = domain.StatusFailed
			result.Info = append(result.Info, "coverage below threshold")
		} else {
			// Soft check by default: warn without failing verification.
			result.Info = append(result.Info, "warning: coverage below threshold (non-fatal)")
		}
	}
	return result, nil
}

func (s *VerifyService) runLatency(ctx context.Context, st *runState) (domain.CheckResult, error) {
	var totalSeconds float64
	var testCount int
	if st.test != nil {
		totalSeconds = st.test.ElapsedSeconds
		testCount = st.test.TestCount
	}

	est := estimate.EstimateLatency(totalSeconds, testCount, s.cfg.CallsPerTest)

	var info []string
	if est.Measured {
		info = append(info,
			fmt.Sprintf("total test time: %.2fs across %d tests", totalSeconds, testCount),
			fmt.Sprintf("estimated per-call latency: %.2fms (ceiling %.0fms)", est.PerCallMs, s.cfg.LatencyCeilingMs))
	} else {
		info = append(info, "aggregate timing unavailable; latency check defaults to pass")
	}

	result := domain.CheckResult{Name: domain.CheckLatency, Status: domain.StatusPassed, Info: info}
	if !est.Within(s.cfg.LatencyCeilingMs) {
		result.Status = domain.StatusFailed
		result.Info = append(result.Info, "estimated latency exceeds ceiling")
	}
	return result, nil
}

// ensureScan snapshots the submission files once; every stage after the
// first style check reuses the same immutable snapshot.
func (s *VerifyService) ensureScan(st *runState) error {
	if st.scan != nil {
		return nil
	}
	scan, err := s.scanner.Scan(st.path)
	if err != nil {
		return err
	}
	st.scan = scan
	return nil
}

// outputLines splits captured tool output for the report, dropping trailing
// blank lines so rendering stays stable.
func outputLines(output string) []string {
	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return nil
	}
	return lines
}
