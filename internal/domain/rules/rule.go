// Package rules implements the heuristic text-scanning style rules applied
// to submission source files. The rules are deliberately regex/prefix based
// rather than grammar aware: they trade strictness for usability, and the
// compliance threshold in the pipeline absorbs the small false-positive rate.
package rules

import (
	"strings"

	"github.com/inbar-marom/botverify/internal/domain"
)

// Stats counts how many lines a rule classified as complete statements and
// how many of those complied. Rules that do not score compliance leave it
// zero-valued.
type Stats struct {
	Statements int
	Compliant  int
}

// Compliance returns the compliance rate in percent. With no statements
// found there is nothing to check, which counts as full compliance.
func (s Stats) Compliance() float64 {
	if s.Statements == 0 {
		return 100
	}
	return float64(s.Compliant) / float64(s.Statements) * 100
}

func (s Stats) add(other Stats) Stats {
	return Stats{
		Statements: s.Statements + other.Statements,
		Compliant:  s.Compliant + other.Compliant,
	}
}

// Rule scans a single source file. Implementations are stateless and safe
// for concurrent use across files.
type Rule interface {
	ID() string
	ScanFile(f domain.SourceFile) ([]domain.RuleViolation, Stats)
}

// truncate shortens a diagnostic snippet to at most n characters, never
// splitting a multi-byte rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// hasAnyPrefix reports whether s starts with any of the given prefixes.
func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
