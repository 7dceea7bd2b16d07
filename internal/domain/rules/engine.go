package rules

import (
	"runtime"
	"sync"

	"github.com/inbar-marom/botverify/internal/domain"
)

// Engine fans a rule out over many files. Files are independent, so scanning
// is parallel; each worker writes only its own slot and results are merged
// back in input order, keeping violations ascending by line within a file
// and the overall output deterministic.
type Engine struct {
	workers int
}

// NewEngine creates an engine with the given worker bound. A non-positive
// bound uses one worker per CPU.
func NewEngine(workers int) *Engine {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Engine{workers: workers}
}

// Scan applies rule to every file and returns the merged violations and
// aggregate stats.
func (e *Engine) Scan(files []domain.SourceFile, rule Rule) ([]domain.RuleViolation, Stats) {
	type fileResult struct {
		violations []domain.RuleViolation
		stats      Stats
	}

	results := make([]fileResult, len(files))
	sem := make(chan struct{}, e.workers)
	var wg sync.WaitGroup

	for i := range files {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			v, s := rule.ScanFile(files[i])
			results[i] = fileResult{violations: v, stats: s}
		}(i)
	}
	wg.Wait()

	var (
		violations []domain.RuleViolation
		stats      Stats
	)
	for _, r := range results {
		violations = append(violations, r.violations...)
		stats = stats.add(r.stats)
	}
	return violations, stats
}
