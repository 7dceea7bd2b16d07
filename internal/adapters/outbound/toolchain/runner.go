package toolchain

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/inbar-marom/botverify/internal/domain"
)

// Runner implements domain.ToolchainRunner by invoking the configured
// build/test commands as subprocesses with a bounded working directory and
// a hard timeout. A non-zero exit code is classified, never raised; only
// launch failures and timeouts surface as errors.
type Runner struct {
	cfg domain.ToolchainConfig
}

// New creates a Runner for the given toolchain configuration.
func New(cfg domain.ToolchainConfig) *Runner {
	return &Runner{cfg: cfg}
}

func (r *Runner) Build(ctx context.Context, submissionPath string) (*domain.BuildResult, error) {
	output, exitCode, err := r.run(ctx, submissionPath, r.cfg.BuildCommand)
	if err != nil {
		return nil, domain.Infra("running build", err)
	}
	return &domain.BuildResult{
		Succeeded: exitCode == 0,
		Output:    output,
	}, nil
}

func (r *Runner) Test(ctx context.Context, submissionPath string) (*domain.TestResult, error) {
	output, exitCode, err := r.run(ctx, submissionPath, r.cfg.TestCommand)
	if err != nil {
		return nil, domain.Infra("running tests", err)
	}
	return &domain.TestResult{
		Succeeded:      exitCode == 0,
		Output:         output,
		TestCount:      parseTestCount(output),
		ElapsedSeconds: parseTotalSeconds(output),
	}, nil
}

func (r *Runner) ListTests(ctx context.Context, submissionPath string) (int, error) {
	if len(r.cfg.ListCommand) == 0 {
		return 0, nil
	}
	output, exitCode, err := r.run(ctx, submissionPath, r.cfg.ListCommand)
	if err != nil {
		return 0, domain.Infra("listing tests", err)
	}
	if exitCode != 0 {
		return 0, nil
	}
	return countListedTests(output), nil
}

// run executes one command vector under the configured timeout, returning
// combined output and the exit code. The subprocess is forcibly terminated
// on timeout; no retry is attempted here.
func (r *Runner) run(ctx context.Context, workDir string, cmdParts []string) (string, int, error) {
	if len(cmdParts) == 0 {
		return "", 0, fmt.Errorf("empty command")
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, r.cfg.Timeout())
	defer cancel()

	cmd := exec.CommandContext(timeoutCtx, cmdParts[0], cmdParts[1:]...)
	cmd.Dir = workDir

	output, err := cmd.CombinedOutput()
	if timeoutCtx.Err() == context.DeadlineExceeded {
		return string(output), 0, fmt.Errorf("%s timed out after %s", cmdParts[0], r.cfg.Timeout())
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return string(output), exitErr.ExitCode(), nil
		}
		// Binary missing, permission denied, I/O error.
		return string(output), 0, err
	}
	return string(output), 0, nil
}

var (
	totalTimeRe = regexp.MustCompile(`Total time: ([\d.]+) Seconds`)
	totalRunRe  = regexp.MustCompile(`Total:\s*(\d+)`)
	elapsedRe   = regexp.MustCompile(`Duration:\s*([\d.]+)\s*s`)
)

// parseTotalSeconds extracts the aggregate test run time from dotnet test
// output. Zero means the tool did not report timing.
func parseTotalSeconds(output string) float64 {
	if m := totalTimeRe.FindStringSubmatch(output); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			return v
		}
	}
	if m := elapsedRe.FindStringSubmatch(output); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			return v
		}
	}
	return 0
}

// parseTestCount extracts the executed test total from the run summary line
// ("Passed! - Failed: 0, Passed: 69, Skipped: 0, Total: 69").
func parseTestCount(output string) int {
	if m := totalRunRe.FindStringSubmatch(output); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			return v
		}
	}
	return 0
}

// countListedTests counts the test names printed after the discovery banner
// of "dotnet test --list-tests".
func countListedTests(output string) int {
	lines := strings.Split(output, "\n")
	banner := -1
	for i, line := range lines {
		if strings.Contains(line, "The following Tests are available") {
			banner = i
			break
		}
	}
	count := 0
	if banner >= 0 {
		for _, line := range lines[banner+1:] {
			if strings.TrimSpace(line) != "" {
				count++
			}
		}
		return count
	}
	// No banner: fall back to counting lines that look like test names.
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && strings.Contains(trimmed, "Test") {
			count++
		}
	}
	return count
}
