package rules

import (
	"strings"

	"github.com/inbar-marom/botverify/internal/domain"
)

// lineClass is the outcome of classifying one line: excluded lines never
// count, non-statements count for nothing, statements must carry the marker.
type lineClass int

const (
	classExcluded lineClass = iota
	classNonStatement
	classStatement
)

// TrailingMarker requires every complete statement line to end with a
// designated two-character marker. A line is a statement when it contains
// the terminator or matches an expression-bodied/accessor idiom; brace-only
// lines, for-loop headers, method-chain continuations and single-statement
// lambda prefixes are not statements, and comment lines are excluded
// entirely. Terminators provably inside string literals suppress the
// violation but the line still counts toward the statement total.
type TrailingMarker struct {
	Terminator string
	Marker     string
	BlockOpen  string
	BlockClose string
}

// NewTrailingMarker returns the rule with C# defaults: semicolon terminator,
// "//" trailing marker, "/*"/"*/" block comment delimiters.
func NewTrailingMarker() *TrailingMarker {
	return &TrailingMarker{
		Terminator: ";",
		Marker:     "//",
		BlockOpen:  "/*",
		BlockClose: "*/",
	}
}

func (r *TrailingMarker) ID() string { return domain.CheckTrailingMarker }

func (r *TrailingMarker) ScanFile(f domain.SourceFile) ([]domain.RuleViolation, Stats) {
	var (
		violations []domain.RuleViolation
		stats      Stats
		inBlock    bool
	)

	for i, line := range f.Lines() {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		// Block comment tracking happens before any classification so a
		// terminator inside /* ... */ never counts as a statement.
		if strings.Contains(trimmed, r.BlockOpen) {
			inBlock = true
		}
		if strings.Contains(trimmed, r.BlockClose) {
			inBlock = false
			continue
		}
		if inBlock {
			continue
		}

		if r.classify(trimmed) != classStatement {
			continue
		}
		stats.Statements++

		if strings.HasSuffix(trimmed, r.Marker) {
			stats.Compliant++
			continue
		}
		if terminatorInStringLiteral(trimmed) {
			// Counted above, but not reported: the only terminator sits
			// inside a string literal.
			continue
		}
		violations = append(violations, domain.RuleViolation{
			FilePath: f.Path,
			Line:     i + 1,
			RuleID:   r.ID(),
			Snippet:  truncate(trimmed, 80),
		})
	}
	return violations, stats
}

// classify decides whether a trimmed, non-blank line is a complete statement.
func (r *TrailingMarker) classify(trimmed string) lineClass {
	// Documentation and single-line comments are excluded entirely. The
	// marker prefix check covers "///" as well.
	if strings.HasPrefix(trimmed, r.Marker) {
		return classExcluded
	}
	// Attribute lines like [TestMethod].
	if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
		return classExcluded
	}

	hasTerminator := strings.Contains(trimmed, r.Terminator)
	exprBodied := strings.Contains(trimmed, "=>") ||
		strings.Contains(trimmed, "get"+r.Terminator) ||
		strings.Contains(trimmed, "set"+r.Terminator)

	if !hasTerminator && !exprBodied {
		return classNonStatement
	}

	switch trimmed {
	case "{", "}", "{" + r.Terminator, "}" + r.Terminator:
		return classNonStatement
	}
	if strings.HasPrefix(trimmed, "for (") ||
		strings.HasPrefix(trimmed, ".") ||
		strings.HasPrefix(trimmed, "async () =>") {
		return classNonStatement
	}
	return classStatement
}

// terminatorInStringLiteral is the heuristic from the original verifier: a
// line with at least two quote characters is assumed to hold its terminator
// inside a string literal.
func terminatorInStringLiteral(trimmed string) bool {
	return strings.Count(trimmed, `"`) >= 2
}
