package detail

import (
	"encoding/json"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Theme styles the pieces of rendered output. The fields take the shape of
// lipgloss.Style.Render. Nil functions leave text as is.
type Theme struct {
	Heading func(...string) string
	Key     func(...string) string
	Text    func(...string) string
}

func apply(f func(...string) string, s string) string {
	if f == nil {
		return s
	}
	return f(s)
}

// Render walks v and returns one line per scalar, heading and table row.
//
// Scalars print literally. Lists recurse one level deeper per element. Each
// map key becomes a heading; a structured child is shown as a key/value
// table whose cells hold scalars verbatim and nested structures as indented
// JSON, and a scalar child is printed below its heading.
func Render(v Value, theme Theme) string {
	var lines []string
	render(&lines, v, 0, theme)
	return strings.Join(lines, "\n")
}

func render(lines *[]string, v Value, level int, theme Theme) {
	indent := strings.Repeat("  ", level)
	switch v.Kind() {
	case Scalar:
		*lines = append(*lines, indent+apply(theme.Text, v.Text()))
	case List:
		for _, item := range v.Items() {
			render(lines, item, level+1, theme)
		}
	case Map:
		for _, e := range v.Entries() {
			*lines = append(*lines, indent+apply(theme.Heading, e.Key))
			if e.Value.IsStructured() {
				renderTable(lines, e.Value, indent+"  ", theme)
				continue
			}
			*lines = append(*lines, indent+apply(theme.Text, e.Value.Text()))
		}
	}
}

type row struct {
	key   string
	value Value
}

func rows(v Value) []row {
	if v.Kind() == List {
		out := make([]row, len(v.Items()))
		for i, item := range v.Items() {
			out[i] = row{key: strconv.Itoa(i), value: item}
		}
		return out
	}
	out := make([]row, len(v.Entries()))
	for i, e := range v.Entries() {
		out[i] = row{key: e.Key, value: e.Value}
	}
	return out
}

func renderTable(lines *[]string, v Value, indent string, theme Theme) {
	rs := rows(v)
	keyWidth := 0
	for _, r := range rs {
		keyWidth = max(keyWidth, utf8.RuneCountInString(r.key))
	}
	for _, r := range rs {
		pad := strings.Repeat(" ", keyWidth-utf8.RuneCountInString(r.key)+2)
		cell := cellLines(r.value)
		*lines = append(*lines, indent+apply(theme.Key, r.key)+pad+apply(theme.Text, cell[0]))
		cont := indent + strings.Repeat(" ", keyWidth+2)
		for _, l := range cell[1:] {
			*lines = append(*lines, cont+apply(theme.Text, l))
		}
	}
}

func cellLines(v Value) []string {
	if !v.IsStructured() {
		return []string{v.Text()}
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return []string{v.Text()}
	}
	return strings.Split(string(data), "\n")
}
