package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/inbar-marom/botverify/internal/domain"
)

// ── Claude-inspired warm palette ──
var (
	accent    = lipgloss.Color("#D97706") // amber
	fg        = lipgloss.Color("#E8E6E3") // warm light gray
	dim       = lipgloss.Color("#6B7280") // muted gray
	faint     = lipgloss.Color("#3F3F46") // very dim
	success   = lipgloss.Color("#22C55E") // green
	danger    = lipgloss.Color("#EF4444") // red
	skipColor = lipgloss.Color("#4B5563") // dark gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	skipStyle     = lipgloss.NewStyle().Foreground(skipColor)
	fileStyle     = lipgloss.NewStyle().Foreground(dim)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderReport renders a verification report as a styled, deterministic
// string: one line per check in execution order, diagnostic detail under
// failed checks, and a one-line verdict. No timestamps, so the output is
// diffable in automated gates.
func RenderReport(report *domain.VerificationReport) string {
	var b strings.Builder

	title := headerStyle.Render("botverify")
	subtitle := dimStyle.Render("Submission Verification")
	verdict := passStyle.Bold(true).Render("PASSED")
	if !report.OverallPassed() {
		verdict = failStyle.Bold(true).Render("FAILED")
	}
	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + verdict))
	b.WriteString("\n\n")

	for _, res := range report.Results {
		renderCheck(&b, res)
	}

	b.WriteString("  " + separatorLine + "\n")
	b.WriteString("  " + titleStyle.Render(report.Summary()) + "\n")
	return b.String()
}

func renderCheck(b *strings.Builder, res domain.CheckResult) {
	var marker string
	switch res.Status {
	case domain.StatusPassed:
		marker = passStyle.Render("✓")
	case domain.StatusSkipped:
		marker = skipStyle.Render("-")
	default:
		marker = failStyle.Render("✗")
	}

	name := titleStyle.Render(res.Name)
	if res.Status == domain.StatusSkipped {
		name = skipStyle.Render(res.Name)
	}
	b.WriteString(fmt.Sprintf("  %s %s\n", marker, name))

	// Info lines always show for non-passing checks; passed checks keep a
	// single summary line so the report stays compact.
	info := res.Info
	if res.Passed() && len(info) > 1 {
		info = info[:1]
	}
	for _, line := range info {
		b.WriteString("      " + dimStyle.Render(line) + "\n")
	}

	if res.Status == domain.StatusFailed {
		renderViolations(b, res.Violations)
	}
	b.WriteString("\n")
}

func renderViolations(b *strings.Builder, violations []domain.RuleViolation) {
	const maxShown = 15
	for i, v := range violations {
		if i == maxShown {
			b.WriteString("      " + faintStyle.Render(fmt.Sprintf("... and %d more", len(violations)-maxShown)) + "\n")
			break
		}
		b.WriteString(fmt.Sprintf("      %s %s\n",
			fileStyle.Render(fmt.Sprintf("%s:%d", v.FilePath, v.Line)),
			faintStyle.Render(v.Snippet),
		))
	}
}
