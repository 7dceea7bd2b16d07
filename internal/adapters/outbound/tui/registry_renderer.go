package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/inbar-marom/botverify/internal/domain"
)

var statusStyles = map[domain.SubmissionStatus]lipgloss.Style{
	domain.StatusApproved: passStyle,
	domain.StatusRejected: failStyle,
	domain.StatusPending:  dimStyle,
	domain.StatusTesting:  headerStyle,
}

func renderStatus(s domain.SubmissionStatus) string {
	if style, ok := statusStyles[s]; ok {
		return style.Render(string(s))
	}
	return string(s)
}

// RenderSubmission renders one registry record.
func RenderSubmission(sub domain.Submission) string {
	var b strings.Builder
	b.WriteString("  " + titleStyle.Render(sub.BotName) + "  " + renderStatus(sub.Status) + "\n")
	b.WriteString("  " + dimStyle.Render(sub.ID) + "\n")
	b.WriteString(fmt.Sprintf("      team: %s  version: %s\n", sub.TeamName, sub.Version))
	if sub.RepositoryURL != "" {
		b.WriteString("      repo: " + fileStyle.Render(sub.RepositoryURL) + "\n")
	}
	if sub.Language != "" || sub.Framework != "" {
		b.WriteString(fmt.Sprintf("      language: %s  framework: %s\n", sub.Language, sub.Framework))
	}
	if sub.Description != "" {
		b.WriteString("      " + faintStyle.Render(sub.Description) + "\n")
	}
	return b.String()
}

// RenderSubmissionList renders registry records in store order.
func RenderSubmissionList(subs []domain.Submission) string {
	if len(subs) == 0 {
		return "  " + dimStyle.Render("no submissions found") + "\n"
	}
	var b strings.Builder
	for i, sub := range subs {
		b.WriteString(RenderSubmission(sub))
		if i < len(subs)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// RenderStatistics renders registry aggregates with sorted keys so the
// output is stable.
func RenderStatistics(stats domain.Statistics) string {
	var b strings.Builder
	b.WriteString("  " + titleStyle.Render(fmt.Sprintf("%d submissions", stats.Total)) + "\n\n")
	renderCounts(&b, "by status", stats.ByStatus)
	renderCounts(&b, "by team", stats.ByTeam)
	renderCounts(&b, "by language", stats.ByLanguage)
	return b.String()
}

func renderCounts(b *strings.Builder, title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	b.WriteString("  " + dimStyle.Render(title) + "\n")
	for _, k := range keys {
		b.WriteString(fmt.Sprintf("      %s: %d\n", k, counts[k]))
	}
	b.WriteString("\n")
}
