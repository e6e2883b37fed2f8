package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matheuskafuri/billwatch/internal/congress"
	"github.com/matheuskafuri/billwatch/internal/pager"
)

type column struct {
	key   pager.Column
	label string
	width int // 0 takes the remaining width
}

var columns = []column{
	{pager.ColumnNumber, "Bill Number", 13},
	{pager.ColumnActionDate, "Action Date", 12},
	{pager.ColumnUpdateDate, "Update Date", 12},
	{pager.ColumnOriginChamber, "Chamber", 9},
	{pager.ColumnTitle, "Title", 0},
}

// columnForKey maps the "1".."5" keys to columns.
func columnForKey(key string) (pager.Column, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '0'+byte(len(columns)) {
		return pager.ColumnNone, false
	}
	return columns[key[0]-'1'].key, true
}

func sortIndicator(s pager.Sort, c pager.Column) string {
	if s.Column != c || c == pager.ColumnNone {
		return ""
	}
	if s.Order == pager.Desc {
		return " ▼"
	}
	return " ▲"
}

func billLabel(b congress.BillSummary) string {
	if b.Bill == nil {
		return ""
	}
	if b.Bill.Type == "" {
		return b.Bill.Number
	}
	return b.Bill.Type + " " + b.Bill.Number
}

func cellValue(b congress.BillSummary, c pager.Column) string {
	switch c {
	case pager.ColumnNumber:
		return billLabel(b)
	case pager.ColumnActionDate, pager.ColumnUpdateDate:
		return congress.DisplayDate(b.Field(string(c)))
	default:
		return b.Field(string(c))
	}
}

func columnWidths(width int) []int {
	widths := make([]int, len(columns))
	fixed := 0
	for i, c := range columns {
		widths[i] = c.width
		fixed += c.width + 1
	}
	for i, c := range columns {
		if c.width == 0 {
			widths[i] = max(width-fixed, 10)
		}
	}
	return widths
}

// renderTable draws the header and the visible rows. The cursor row gets a
// "> " marker; the row whose ID is viewedID, the bill last opened in the
// overlay, gets "• ".
func renderTable(rows []congress.BillSummary, s pager.Sort, cursor int, viewedID string, width, height int) string {
	widths := columnWidths(width - 2)

	var header []string
	for i, c := range columns {
		label := padCell(c.label+sortIndicator(s, c.key), widths[i])
		if s.Column == c.key {
			header = append(header, columnActiveStyle.Render(label))
		} else {
			header = append(header, columnHeaderStyle.Render(label))
		}
	}
	lines := []string{"  " + strings.Join(header, " ")}

	if len(rows) == 0 {
		lines = append(lines, "", emptyStyle.Render("  No bills to show"))
		return strings.Join(lines, "\n")
	}

	visible := max(height-1, 1)
	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := min(start+visible, len(rows))

	for i := start; i < end; i++ {
		cells := make([]string, len(columns))
		for j, c := range columns {
			cells[j] = padCell(cellValue(rows[i], c.key), widths[j])
		}
		line := strings.Join(cells, " ")
		switch {
		case i == cursor:
			lines = append(lines, rowSelectedStyle.Render("> "+line))
		case viewedID != "" && rows[i].ID() == viewedID:
			lines = append(lines, rowViewedStyle.Render("• "+line))
		default:
			lines = append(lines, rowStyle.Render("  "+line))
		}
	}
	return strings.Join(lines, "\n")
}

func padCell(s string, width int) string {
	s = truncateStr(s, width)
	if gap := width - lipgloss.Width(s); gap > 0 {
		s += strings.Repeat(" ", gap)
	}
	return s
}

func truncateStr(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}
