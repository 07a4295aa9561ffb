package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/filegate/filegate/internal/domain"
)

// ── warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
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
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	fileStyle     = lipgloss.NewStyle().Foreground(dim)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderReport formats one validation report for the terminal.
func RenderReport(r *domain.ValidationReport) string {
	var b strings.Builder

	// ── Header ──
	title := headerStyle.Render("filegate")
	subtitle := dimStyle.Render(shortenPath(r.DataFile))
	passed, failed := r.Counts()
	statusLine := statusStyle(r.Passed).Render(strings.ToUpper(r.Status)) +
		"  " + dimStyle.Render(fmt.Sprintf("%d rows · %d passed · %d failed", r.Rows, passed, failed))
	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + statusLine))
	b.WriteString("\n\n")

	// ── Checks ──
	renderOutcome(&b, r.Structural)
	for _, c := range r.Content {
		renderOutcome(&b, c)
	}
	if !r.Structural.Passed {
		b.WriteString("    " + dimStyle.Render("content checks skipped") + "\n")
	}

	// ── Warnings ──
	if len(r.Warnings) > 0 {
		b.WriteString("\n  " + separatorLine + "\n\n")
		for _, w := range r.Warnings {
			fmt.Fprintf(&b, "    %s %s\n", warnTagStyle.Render("warn "), dimStyle.Render(w))
		}
	}

	b.WriteString("\n")
	if r.CommitHash != "" {
		b.WriteString("  " + faintStyle.Render("commit "+shortHash(r.CommitHash)) + "\n")
	}
	return b.String()
}

// RenderScan formats a directory run: one line per file, then failures.
func RenderScan(s *domain.ScanReport) string {
	var b strings.Builder

	title := headerStyle.Render("filegate scan")
	subtitle := dimStyle.Render(shortenPath(s.Dir))
	status := domain.StatusPass
	if !s.Passed {
		status = domain.StatusFail
	}
	summary := statusStyle(s.Passed).Render(strings.ToUpper(status)) +
		"  " + dimStyle.Render(fmt.Sprintf("%d files · %d unreadable", len(s.Reports), len(s.Errors)))
	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + summary))
	b.WriteString("\n\n")

	for _, r := range s.Reports {
		name := padRight(filepath.Base(r.DataFile), 36)
		detail := dimStyle.Render(fmt.Sprintf("%d rows", r.Rows))
		if !r.Passed {
			detail = failStyle.Render(failureSummary(r))
		}
		fmt.Fprintf(&b, "  %s %s %s\n", icon(r.Passed), titleStyle.Render(name), detail)
	}
	for _, e := range s.Errors {
		fmt.Fprintf(&b, "  %s %s\n", errorTagStyle.Render("error"), fileStyle.Render(e.File))
		fmt.Fprintf(&b, "         %s\n", dimStyle.Render(e.Error))
	}

	b.WriteString("\n")
	return b.String()
}

// RenderHistory formats recorded runs for terminal output.
func RenderHistory(entries []domain.RunEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No run history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Run History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for _, e := range entries {
		hash := shortHash(e.CommitHash)
		if hash == "" {
			hash = "·······"
		}
		ts := e.Timestamp
		if len(ts) > 19 {
			ts = ts[:19]
		}

		fmt.Fprintf(&b, "  %s  %s  %s  %s  %s\n",
			dimStyle.Render(ts),
			faintStyle.Render(hash),
			statusStyle(e.Status == domain.StatusPass).Render(padRight(e.Status, 4)),
			padRight(filepath.Base(e.DataFile), 28),
			dimStyle.Render(fmt.Sprintf("%d rows · %d/%d checks", e.Rows, e.Passed, e.Passed+e.Failed)),
		)
	}
	return b.String()
}

func renderOutcome(b *strings.Builder, c domain.CheckOutcome) {
	label := padRight(outcomeLabel(c), 34)
	if c.Passed {
		fmt.Fprintf(b, "    %s %s\n", icon(true), label)
		return
	}
	fmt.Fprintf(b, "    %s %s %s\n", icon(false), label, faintStyle.Render(reasonText(c)))
	if c.Detail != "" {
		fmt.Fprintf(b, "         %s\n", dimStyle.Render(c.Detail))
	}
}

func outcomeLabel(c domain.CheckOutcome) string {
	if c.Kind == "" {
		return c.Name
	}
	return fmt.Sprintf("%s (%s)", KindLabel(c.Kind), c.Column)
}

func reasonText(c domain.CheckOutcome) string {
	if c.Reason != "" {
		return c.Reason
	}
	return fmt.Sprintf("%d violation(s)", c.Violations)
}

func failureSummary(r *domain.ValidationReport) string {
	if !r.Structural.Passed {
		return "header: " + r.Structural.Reason
	}
	var names []string
	for _, c := range r.Failed() {
		names = append(names, c.Name)
	}
	return strings.Join(names, ", ")
}

func icon(passed bool) string {
	if passed {
		return passStyle.Render("●")
	}
	return failStyle.Render("●")
}

func statusStyle(passed bool) lipgloss.Style {
	if passed {
		return passStyle.Bold(true)
	}
	return failStyle.Bold(true)
}

func shortHash(h string) string {
	if len(h) > 7 {
		return h[:7]
	}
	return h
}

func shortenPath(path string) string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	if len(parts) > 3 {
		return strings.Join(parts[len(parts)-3:], "/")
	}
	return path
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
