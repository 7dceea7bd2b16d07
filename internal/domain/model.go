package domain

import (
	"fmt"
	"strings"
)

// Check names, in the order the pipeline executes them.
const (
	CheckCompilation        = "compilation"
	CheckAdjacentTerminator = "no-adjacent-terminator"
	CheckTrailingMarker     = "trailing-marker"
	CheckCoverage           = "coverage"
	CheckLatency            = "latency"
)

// SourceFile is an immutable snapshot of one submission file, read once per
// verification run.
type SourceFile struct {
	Path      string `json:"path"`
	Content   string `json:"-"`
	LineCount int    `json:"line_count"`
}

// Lines splits the snapshot content into lines. Line numbers reported in
// violations are 1-based indexes into this slice.
func (f SourceFile) Lines() []string {
	return strings.Split(f.Content, "\n")
}

// RuleViolation is a single style-rule hit. Never mutated after creation.
type RuleViolation struct {
	FilePath string `json:"file"`
	Line     int    `json:"line"`
	RuleID   string `json:"rule_id"`
	Snippet  string `json:"snippet,omitempty"`
}

// CheckStatus distinguishes a check that actively failed from one that never
// ran because an earlier stage hit an infrastructure failure.
type CheckStatus string

const (
	StatusPassed  CheckStatus = "passed"
	StatusFailed  CheckStatus = "failed"
	StatusSkipped CheckStatus = "skipped"
)

// CheckResult is the outcome of one pipeline stage. Immutable once produced.
type CheckResult struct {
	Name       string          `json:"name"`
	Status     CheckStatus     `json:"status"`
	Info       []string        `json:"info,omitempty"`
	Violations []RuleViolation `json:"violations,omitempty"`
}

func (r CheckResult) Passed() bool { return r.Status == StatusPassed }

// VerificationReport collects one CheckResult per stage in execution order.
// The overall verdict is always derived from Results, never stored, so the
// report and the verdict cannot drift apart.
type VerificationReport struct {
	Results []CheckResult `json:"results"`
}

// Add appends a stage result. Insertion order is execution order.
func (r *VerificationReport) Add(res CheckResult) {
	r.Results = append(r.Results, res)
}

// Result returns the named check result, if present.
func (r *VerificationReport) Result(name string) (CheckResult, bool) {
	for _, res := range r.Results {
		if res.Name == name {
			return res, true
		}
	}
	return CheckResult{}, false
}

// OverallPassed reports whether every stage ran and passed. A skipped stage
// means the pipeline aborted, so the report cannot be considered passing.
func (r *VerificationReport) OverallPassed() bool {
	if len(r.Results) == 0 {
		return false
	}
	for _, res := range r.Results {
		if res.Status != StatusPassed {
			return false
		}
	}
	return true
}

// PassedCount returns how many checks passed.
func (r *VerificationReport) PassedCount() int {
	n := 0
	for _, res := range r.Results {
		if res.Passed() {
			n++
		}
	}
	return n
}

// Summary returns a one-line verdict suitable for CI logs.
func (r *VerificationReport) Summary() string {
	return fmt.Sprintf("%d/%d checks passed", r.PassedCount(), len(r.Results))
}

// ExitCode is 0 iff the report passed overall, else 1.
func (r *VerificationReport) ExitCode() int {
	if r.OverallPassed() {
		return 0
	}
	return 1
}
