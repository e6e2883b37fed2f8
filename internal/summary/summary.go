// Package summary turns the HTML summary text attached to a bill into plain
// paragraphs for the terminal.
package summary

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// blocks are the elements that start and end a paragraph.
var blocks = map[string]bool{
	"p": true, "div": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "pre": true, "table": true, "tr": true,
	"section": true, "article": true, "dl": true, "dt": true, "dd": true,
}

var skipped = map[string]bool{"script": true, "style": true, "head": true}

// Paragraphs extracts the text of html as paragraphs with whitespace
// collapsed. Block elements and <br> split paragraphs; text between or
// around blocks becomes a paragraph of its own. List items are bulleted.
func Paragraphs(html string) []string {
	if strings.TrimSpace(html) == "" {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return []string{collapse(html)}
	}

	var w walker
	w.walk(doc.Find("body"))
	w.flush()
	return w.out
}

type walker struct {
	out    []string
	buf    strings.Builder
	bullet bool
}

func (w *walker) walk(s *goquery.Selection) {
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		name := goquery.NodeName(c)
		switch {
		case name == "#text":
			w.buf.WriteString(c.Text())
		case name == "br":
			w.flush()
		case skipped[name], strings.HasPrefix(name, "#"):
		case blocks[name]:
			w.flush()
			if name == "li" {
				w.bullet = true
			}
			w.walk(c)
			w.flush()
			if name == "li" {
				w.bullet = false
			}
		default:
			w.walk(c)
		}
	})
}

// flush ends the current paragraph. A pending bullet carries over to the
// first non-empty paragraph inside the list item.
func (w *walker) flush() {
	text := collapse(w.buf.String())
	w.buf.Reset()
	if text == "" {
		return
	}
	if w.bullet {
		text = "• " + text
		w.bullet = false
	}
	w.out = append(w.out, text)
}

// Excerpt returns the first n runes of the paragraphs joined by spaces,
// ending in "..." when shortened.
func Excerpt(html string, n int) string {
	text := strings.Join(Paragraphs(html), " ")
	runes := []rune(text)
	if n <= 0 || len(runes) <= n {
		return text
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
