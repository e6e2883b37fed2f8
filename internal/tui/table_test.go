package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/matheuskafuri/billwatch/internal/congress"
	"github.com/matheuskafuri/billwatch/internal/pager"
)

func TestTruncateStr(t *testing.T) {
	tests := []struct {
		input string
		n     int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello world", 8, "hello..."},
		{"abc", 3, "abc"},
		{"abcd", 3, "abc"},
		{"", 5, ""},
		{"test", 0, ""},
	}
	for _, tt := range tests {
		got := truncateStr(tt.input, tt.n)
		if got != tt.want {
			t.Errorf("truncateStr(%q, %d) = %q, want %q", tt.input, tt.n, got, tt.want)
		}
	}
}

func TestTruncateStrUTF8(t *testing.T) {
	got := truncateStr("日本語テスト", 5)
	want := "日本..."
	if got != want {
		t.Errorf("truncateStr(Japanese, 5) = %q, want %q", got, want)
	}
}

func TestPadCell(t *testing.T) {
	tests := []struct {
		input string
		width int
		want  string
	}{
		{"HR 1", 6, "HR 1  "},
		{"exactly", 7, "exactly"},
		{"too long value", 8, "too l..."},
	}
	for _, tt := range tests {
		got := padCell(tt.input, tt.width)
		if got != tt.want {
			t.Errorf("padCell(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.want)
		}
		if lipgloss.Width(got) != tt.width {
			t.Errorf("padCell(%q, %d) width = %d", tt.input, tt.width, lipgloss.Width(got))
		}
	}
}

func TestColumnForKey(t *testing.T) {
	tests := []struct {
		key  string
		want pager.Column
		ok   bool
	}{
		{"1", pager.ColumnNumber, true},
		{"2", pager.ColumnActionDate, true},
		{"3", pager.ColumnUpdateDate, true},
		{"4", pager.ColumnOriginChamber, true},
		{"5", pager.ColumnTitle, true},
		{"6", pager.ColumnNone, false},
		{"0", pager.ColumnNone, false},
		{"12", pager.ColumnNone, false},
	}
	for _, tt := range tests {
		got, ok := columnForKey(tt.key)
		if got != tt.want || ok != tt.ok {
			t.Errorf("columnForKey(%q) = %q, %v, want %q, %v", tt.key, got, ok, tt.want, tt.ok)
		}
	}
}

func TestSortIndicator(t *testing.T) {
	s := pager.Sort{Column: pager.ColumnActionDate, Order: pager.Desc}
	if got := sortIndicator(s, pager.ColumnActionDate); got != " ▼" {
		t.Errorf("active desc indicator = %q", got)
	}
	if got := sortIndicator(s, pager.ColumnNumber); got != "" {
		t.Errorf("inactive indicator = %q", got)
	}
	s.Order = pager.Asc
	if got := sortIndicator(s, pager.ColumnActionDate); got != " ▲" {
		t.Errorf("active asc indicator = %q", got)
	}
}

func TestCellValue(t *testing.T) {
	b := congress.BillSummary{
		ActionDate: "2024-03-05",
		Bill:       &congress.BillRef{Type: "HR", Number: "16", OriginChamber: "House", Title: "A bill"},
	}
	tests := []struct {
		col  pager.Column
		want string
	}{
		{pager.ColumnNumber, "HR 16"},
		{pager.ColumnActionDate, "03/05/2024"},
		{pager.ColumnUpdateDate, "N/A"},
		{pager.ColumnOriginChamber, "House"},
		{pager.ColumnTitle, "A bill"},
	}
	for _, tt := range tests {
		if got := cellValue(b, tt.col); got != tt.want {
			t.Errorf("cellValue(%s) = %q, want %q", tt.col, got, tt.want)
		}
	}
	if got := cellValue(congress.BillSummary{}, pager.ColumnNumber); got != "" {
		t.Errorf("cellValue without bill = %q", got)
	}
}

func TestRenderTableEmpty(t *testing.T) {
	out := renderTable(nil, pager.Sort{}, 0, "", 100, 10)
	if !strings.Contains(out, "No bills to show") {
		t.Errorf("empty table should say so:\n%s", out)
	}
	if !strings.Contains(out, "Bill Number") {
		t.Errorf("header missing:\n%s", out)
	}
}

func TestRenderTableScrollsToCursor(t *testing.T) {
	rows := make([]congress.BillSummary, 20)
	for i := range rows {
		rows[i] = congress.BillSummary{Bill: &congress.BillRef{Type: "S", Number: string(rune('a' + i))}}
	}
	out := renderTable(rows, pager.Sort{}, 15, "", 120, 6)
	lines := strings.Split(out, "\n")
	if len(lines) != 6 {
		t.Fatalf("got %d lines, want header plus 5 rows", len(lines))
	}
	if !strings.Contains(lines[5], "S p") {
		t.Errorf("cursor row should be last visible line, got %q", lines[5])
	}
}

func TestRenderTableMarksViewedRow(t *testing.T) {
	rows := []congress.BillSummary{
		{Bill: &congress.BillRef{Congress: 118, Type: "HR", Number: "1"}},
		{Bill: &congress.BillRef{Congress: 118, Type: "HR", Number: "2"}},
		{Bill: &congress.BillRef{Congress: 118, Type: "HR", Number: "3"}},
	}
	lines := strings.Split(renderTable(rows, pager.Sort{}, 0, rows[2].ID(), 120, 10), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header plus 3 rows", len(lines))
	}
	if !strings.Contains(lines[1], "> HR 1") {
		t.Errorf("cursor row = %q", lines[1])
	}
	if strings.Contains(lines[2], "• ") {
		t.Errorf("unviewed row is marked: %q", lines[2])
	}
	if !strings.Contains(lines[3], "• HR 3") {
		t.Errorf("viewed row = %q", lines[3])
	}
}
