package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderTermsBar lists the active exclusion terms on one line, stopping
// before the row would overflow width.
func renderTermsBar(terms []string, width int) string {
	label := labelStyle.Render(" hiding ")
	if len(terms) == 0 {
		return label + emptyStyle.Render("nothing")
	}

	sep := termSeparatorStyle.Render(" ")
	row := label
	for i, term := range terms {
		candidate := row
		if i > 0 {
			candidate += sep
		}
		candidate += termStyle.Render(term)
		if lipgloss.Width(candidate) > width-6 {
			row += termSeparatorStyle.Render(fmt.Sprintf(" +%d", len(terms)-i))
			break
		}
		row = candidate
	}
	return row
}

func renderTermsManager(terms []string, cursor, width int) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Exclusion terms"))
	b.WriteString("\n")
	b.WriteString(helpDimStyle.Render("Titles containing any of these are hidden."))
	b.WriteString("\n\n")
	if len(terms) == 0 {
		b.WriteString(emptyStyle.Render("  (none)"))
	}
	for i, term := range terms {
		line := truncateStr(term, width-8)
		if i == cursor {
			b.WriteString(termSelectedStyle.Render("> " + line))
		} else {
			b.WriteString(termStyle.Render("  " + line))
		}
		if i < len(terms)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
