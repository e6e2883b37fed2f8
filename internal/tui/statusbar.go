package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/matheuskafuri/billwatch/internal/congress"
	"github.com/matheuskafuri/billwatch/internal/pager"
)

var countPrinter = message.NewPrinter(language.English)

// formatCount renders n with thousands separators.
func formatCount(n int) string {
	return countPrinter.Sprintf("%d", n)
}

func billsLabel(n int) string {
	if n == 1 {
		return "1 bill"
	}
	return formatCount(n) + " bills"
}

func renderStatusBar(page pager.Page, rng congress.DateRange, loading bool, hints string, width int) string {
	left := fmt.Sprintf("%s · %s · %d/page · %s", billsLabel(page.Total), page.Label(), page.Size, rng)
	if loading {
		left += " (loading...)"
	}

	right := " " + hints + " "

	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 0 {
		gap = 0
	}

	bar := left + fmt.Sprintf("%*s", gap, "") + right

	return statusBarStyle.Width(width).Render(bar)
}
