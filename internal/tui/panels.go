package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/datasmith/datasmith/internal/insights"
	"github.com/datasmith/datasmith/internal/rules"
)

func (a *App) renderIssues(height int) string {
	if len(a.issues) == 0 {
		return "\n  No validation issues. Clean data.\n"
	}

	var lines []string
	for i, is := range a.issues {
		loc := "dataset"
		if is.Row > 0 {
			loc = fmt.Sprintf("row %d", is.Row)
		}
		label := fmt.Sprintf("[%s %s] %s", is.Kind, loc, is.Message)
		if i == a.issueIdx {
			lines = append(lines, selectedStyle.Render("▶ "+label))
		} else {
			lines = append(lines, itemStyle.Render("  "+label))
		}
	}

	// Keep the selection visible
	if len(lines) > height {
		start := a.issueIdx - height/2
		if start < 0 {
			start = 0
		}
		end := start + height
		if end > len(lines) {
			end = len(lines)
			start = max(0, end-height)
		}
		lines = lines[start:end]
	}

	return strings.Join(lines, "\n")
}

func (a *App) renderRules() string {
	var b strings.Builder

	b.WriteString("\n  Rules\n")
	b.WriteString("  " + strings.Repeat("─", 50) + "\n")

	list := a.ruleSet.List()
	if len(list) == 0 {
		b.WriteString("  No rules yet. Type: /rule " + string(rules.TypeCoRun) + " <description>\n")
	}
	for i, r := range list {
		typeLabel := lipgloss.NewStyle().Foreground(secondaryColor).Render(string(r.Type))
		b.WriteString(fmt.Sprintf("  %d. %s  %s\n", i+1, typeLabel, r.Description))
	}

	b.WriteString("\n  Prioritization Weights\n")
	b.WriteString("  " + strings.Repeat("─", 50) + "\n")
	for _, name := range rules.Names {
		v, _ := a.weights.Get(name)
		bar := strings.Repeat("█", v) + strings.Repeat("░", 10-v)
		b.WriteString(fmt.Sprintf("  %-18s %s %2d\n", name, lipgloss.NewStyle().Foreground(cyanColor).Render(bar), v))
	}

	b.WriteString("\n  " + helpStyle.Render("Commands: /rule <type> <desc> | /rmrule <n> | /weight <name> <0-10>") + "\n")
	return b.String()
}

func (a *App) renderInsights() string {
	var b strings.Builder

	b.WriteString("\n  Recommendations\n")
	b.WriteString("  " + strings.Repeat("─", 50) + "\n")

	if a.scanning {
		b.WriteString("  Scanning...\n")
		return b.String()
	}
	if a.report == nil {
		b.WriteString("  No scan yet. Type: /scan\n")
		return b.String()
	}

	if len(a.report.Recommendations) == 0 {
		b.WriteString("  Nothing stood out.\n")
	}
	for _, rec := range a.report.Recommendations {
		conf := lipgloss.NewStyle().Foreground(mutedColor).Render(fmt.Sprintf("(%.0f%%)", rec.Confidence*100))
		b.WriteString(fmt.Sprintf("  • %s %s\n", lipgloss.NewStyle().Bold(true).Render(rec.Title), conf))
		b.WriteString("    " + rec.Description + "\n")
	}

	b.WriteString("\n  Insights\n")
	b.WriteString("  " + strings.Repeat("─", 50) + "\n")
	if len(a.report.Insights) == 0 {
		b.WriteString("  None.\n")
	}
	for _, in := range a.report.Insights {
		b.WriteString(fmt.Sprintf("  %s %s\n", severityIcon(in.Severity), in.Message))
	}

	b.WriteString("\n  " + helpStyle.Render("Add a recommendation as a rule with /rule, re-run with /scan") + "\n")
	return b.String()
}

func severityIcon(severity string) string {
	switch severity {
	case insights.SeverityError:
		return lipgloss.NewStyle().Foreground(errorColor).Render("✗")
	case insights.SeverityWarning:
		return lipgloss.NewStyle().Foreground(warningColor).Render("⚠")
	default:
		return lipgloss.NewStyle().Foreground(successColor).Render("●")
	}
}
