package tui

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/camelcase"

	"github.com/filegate/filegate/internal/domain"
	"github.com/filegate/filegate/internal/domain/rules"
)

var (
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	hintStyle          = lipgloss.NewStyle().Foreground(dim).Italic(true)
)

// RenderLint renders a schema lint result.
func RenderLint(r *domain.LintReport) string {
	var b strings.Builder

	status := passStyle.Bold(true).Render("valid")
	if !r.Valid {
		status = failStyle.Bold(true).Render(fmt.Sprintf("%d issue(s)", len(r.Issues)))
	}
	b.WriteString(boxStyle.Render(titleStyle.Render(shortenPath(r.SchemaFile)) + "  " + status))
	b.WriteString("\n")

	if r.Valid {
		b.WriteString("\n")
		fmt.Fprintf(&b, "  %s %s\n", sectionHeaderStyle.Render("Columns"), dimStyle.Render(fmt.Sprintf("(%d)", len(r.Columns))))
		for i, c := range r.Columns {
			fmt.Fprintf(&b, "    %s %s\n", faintStyle.Render(fmt.Sprintf("%2d", i+1)), c)
		}
		fmt.Fprintf(&b, "\n  %s %s\n", sectionHeaderStyle.Render("Rules"), dimStyle.Render(fmt.Sprintf("(%d checks)", r.Rules)))
		if r.Fingerprint != "" {
			fmt.Fprintf(&b, "  %s\n", faintStyle.Render("fingerprint "+r.Fingerprint))
		}
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString("\n")
	for _, iss := range r.Issues {
		fmt.Fprintf(&b, "    %s %s\n", errorTagStyle.Render("error"), fileStyle.Render(iss.Path))
		fmt.Fprintf(&b, "         %s\n", dimStyle.Render(iss.Message))
	}
	b.WriteString("\n  " + hintStyle.Render("Fix the schema and run filegate lint again.") + "\n")
	return b.String()
}

// RenderRules lists the registered rule kinds.
func RenderRules(kinds []rules.KindInfo) string {
	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render("Rule kinds") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")
	for _, k := range kinds {
		fmt.Fprintf(&b, "  %s %s\n", sectionHeaderStyle.Render(padRight(string(k.Kind), 16)), KindLabel(k.Kind))
		fmt.Fprintf(&b, "  %s %s\n", padRight("", 16), dimStyle.Render(k.Description))
	}
	b.WriteString("\n")
	return b.String()
}

// KindLabel turns a rule kind key into a title: string_length and
// stringLength both become "String Length".
func KindLabel(kind domain.RuleKind) string {
	var words []string
	for _, w := range camelcase.Split(string(kind)) {
		r := []rune(w)
		if len(r) == 0 || !(unicode.IsLetter(r[0]) || unicode.IsDigit(r[0])) {
			continue
		}
		r[0] = unicode.ToUpper(r[0])
		words = append(words, string(r))
	}
	if len(words) == 0 {
		return string(kind)
	}
	return strings.Join(words, " ")
}
