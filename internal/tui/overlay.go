package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/matheuskafuri/billwatch/internal/congress"
	"github.com/matheuskafuri/billwatch/internal/detail"
	"github.com/matheuskafuri/billwatch/internal/summary"
)

type detailState int

const (
	detailIdle detailState = iota
	detailLoading
	detailReady
	detailFailed
)

// overlay is the bill detail panel drawn over the table.
type overlay struct {
	open   bool
	bill   congress.BillSummary
	token  uint64
	state  detailState
	detail detail.Value
	err    error

	vp   viewport.Model
	boxW int
	boxH int
}

var detailTheme = detail.Theme{
	Heading: sectionStyle.Render,
	Key:     labelStyle.Render,
	Text:    bodyStyle.Render,
}

func newOverlay(bill congress.BillSummary, token uint64, width, height int) overlay {
	o := overlay{open: true, bill: bill, token: token, vp: viewport.New(0, 0)}
	o.resize(width, height)
	return o
}

func (o *overlay) resize(width, height int) {
	o.boxW = max(min(width-4, 110), 30)
	o.boxH = max(height-4, 10)
	// Border and padding take 4 columns; border, title and hint rows 4 lines.
	o.vp.Width = o.boxW - 4
	o.vp.Height = o.boxH - 4
}

// refresh re-renders the body, keeping the scroll position.
func (o *overlay) refresh(spin string) {
	o.vp.SetContent(o.body(o.vp.Width, spin))
}

// contains reports whether screen cell x,y falls inside the box when it is
// centered on a width x height screen.
func (o *overlay) contains(x, y, width, height int) bool {
	left := max(width-o.boxW, 0) / 2
	top := max(height-o.boxH, 0) / 2
	return x >= left && x < left+o.boxW && y >= top && y < top+o.boxH
}

// view draws the box. A non-empty notice replaces the key hints, so errors
// from overlay keys stay visible while the box covers the status bar.
func (o *overlay) view(notice string) string {
	title := overlayTitleStyle.Render(truncateStr(o.bill.Title(), o.boxW-4))
	if o.bill.Title() == "" {
		title = overlayTitleStyle.Render("(untitled)")
	}
	hints := helpDimStyle.Render("m more details  o open in browser  j/k scroll  esc close")
	if notice != "" {
		hints = noticeStyle.Render(truncateStr(notice, o.boxW-4))
	}
	return overlayStyle.Width(o.boxW - 2).Render(lipgloss.JoinVertical(lipgloss.Left, title, o.vp.View(), hints))
}

func field(label, value string) string {
	return "  " + labelStyle.Render(fmt.Sprintf("%-20s", label)) + bodyStyle.Render(value)
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func (o *overlay) body(width int, spin string) string {
	b := o.bill
	var lines []string

	lines = append(lines, sectionStyle.Render("Bill"))
	if b.Bill != nil {
		congressLabel := "N/A"
		if b.Bill.Congress > 0 {
			congressLabel = fmt.Sprintf("%d", b.Bill.Congress)
		}
		lines = append(lines,
			field("Number", orNA(billLabel(b))),
			field("Congress", congressLabel),
			field("Origin chamber", orNA(b.Bill.OriginChamber)),
		)
	} else {
		lines = append(lines, field("Number", "N/A"))
	}

	lines = append(lines, "", sectionStyle.Render("Summary"),
		field("Action date", congress.DisplayDate(b.ActionDate)),
		field("Action", orNA(b.ActionDesc)),
		field("Update date", congress.DisplayDate(b.UpdateDate)),
		field("Last summary update", congress.DisplayDate(b.LastSummaryUpdateDate)),
		field("Current chamber", orNA(b.CurrentChamber)),
		field("Version", orNA(b.VersionCode)),
	)

	lines = append(lines, "", sectionStyle.Render("Summary text"))
	paras := summary.Paragraphs(b.Text)
	if len(paras) == 0 {
		lines = append(lines, emptyStyle.Render("  No summary text available."))
	}
	for i, p := range paras {
		if i > 0 {
			lines = append(lines, "")
		}
		for _, l := range strings.Split(wrapText(p, width-2), "\n") {
			lines = append(lines, "  "+bodyStyle.Render(l))
		}
	}

	lines = append(lines, "", sectionStyle.Render("More details"))
	switch o.state {
	case detailIdle:
		if b.DetailURL() == "" {
			lines = append(lines, emptyStyle.Render("  No detail link for this bill."))
		} else {
			lines = append(lines, helpDimStyle.Render("  Press m to load more details."))
		}
	case detailLoading:
		lines = append(lines, "  "+spin+" Loading details...")
	case detailFailed:
		lines = append(lines, noticeStyle.Render("  Error loading details: "+o.err.Error()+rateLimitHint(o.err)))
	case detailReady:
		// The bill record sits under "bill"; the "request" echo is noise.
		v := o.detail
		if bill, ok := v.Get("bill"); ok {
			v = bill
		}
		lines = append(lines, strings.Split(detail.Render(v, detailTheme), "\n")...)
	}

	if u := b.PublicURL(); u != "" {
		lines = append(lines, "", linkStyle.Render(u))
	}
	return strings.Join(lines, "\n")
}

func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if lipgloss.Width(line)+1+lipgloss.Width(w) > width {
			lines = append(lines, line)
			line = w
		} else {
			line += " " + w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}
