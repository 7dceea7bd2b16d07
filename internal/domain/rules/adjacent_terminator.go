package rules

import (
	"strings"

	"github.com/inbar-marom/botverify/internal/domain"
)

// AdjacentTerminator flags lines containing two consecutive statement
// terminators (e.g. ";;"), unless the trimmed line begins with a comment
// marker. Any hit fails the check, so this rule reports no compliance stats.
type AdjacentTerminator struct {
	Terminator      string
	CommentPrefixes []string
}

// NewAdjacentTerminator returns the rule with C# defaults: semicolon
// terminator, "//" and "*" comment prefixes.
func NewAdjacentTerminator() *AdjacentTerminator {
	return &AdjacentTerminator{
		Terminator:      ";",
		CommentPrefixes: []string{"//", "*"},
	}
}

func (r *AdjacentTerminator) ID() string { return domain.CheckAdjacentTerminator }

func (r *AdjacentTerminator) ScanFile(f domain.SourceFile) ([]domain.RuleViolation, Stats) {
	doubled := r.Terminator + r.Terminator

	var violations []domain.RuleViolation
	for i, line := range f.Lines() {
		if !strings.Contains(line, doubled) {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if hasAnyPrefix(trimmed, r.CommentPrefixes...) {
			continue
		}
		violations = append(violations, domain.RuleViolation{
			FilePath: f.Path,
			Line:     i + 1,
			RuleID:   r.ID(),
			Snippet:  truncate(trimmed, 100),
		})
	}
	return violations, Stats{}
}
