package inspector

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/sahilm/fuzzy"

	"github.com/samsaffron/mdir/internal/dump"
	"github.com/samsaffron/mdir/internal/ir"
)

// Mode selects what the inspector shows.
type Mode int

const (
	ModeRendered Mode = iota // styled terminal rendering
	ModeTree                 // IR outline
)

func (m Mode) String() string {
	if m == ModeTree {
		return "tree"
	}
	return "rendered"
}

// RenderFunc renders doc for the given width.
type RenderFunc func(doc ir.Document, width int) string

// Heading is a document heading and the content line it starts on.
type Heading struct {
	Level int
	Text  string
	Line  int // -1 when it could not be located in the current content
}

// HeadingSource implements fuzzy.Source for heading search
type HeadingSource []Heading

func (h HeadingSource) String(i int) string {
	return h[i].Text
}

func (h HeadingSource) Len() int {
	return len(h)
}

// FilterHeadings returns indexes of headings matching query, best first.
// An empty query matches every heading in document order.
func FilterHeadings(headings []Heading, query string) []int {
	if query == "" {
		all := make([]int, len(headings))
		for i := range all {
			all[i] = i
		}
		return all
	}
	matches := fuzzy.FindFrom(query, HeadingSource(headings))
	result := make([]int, len(matches))
	for i, match := range matches {
		result[i] = match.Index
	}
	return result
}

// collectHeadings lists top-level headings in reading order.
func collectHeadings(doc ir.Document) []Heading {
	var out []Heading
	for _, e := range doc.Children {
		if h, ok := e.(ir.Header); ok {
			out = append(out, Heading{Level: h.Level, Text: ir.PlainText(h.Children), Line: -1})
		}
	}
	return out
}

// buildContent renders doc in the given mode and locates each heading in
// the resulting lines.
func buildContent(doc ir.Document, mode Mode, width int, render RenderFunc) ([]string, []Heading) {
	var content string
	if mode == ModeTree {
		content = strings.TrimSuffix(dump.Tree(dump.ToNode(doc)), "\n")
	} else {
		content = render(doc, width)
	}
	lines := strings.Split(content, "\n")

	headings := collectHeadings(doc)
	next := 0
	for i := range headings {
		h := &headings[i]
		for line := next; line < len(lines); line++ {
			if headingAt(lines, line, *h, mode) {
				h.Line = line
				next = line + 1
				break
			}
		}
	}
	return lines, headings
}

// headingAt reports whether lines[i] is where h starts.
func headingAt(lines []string, i int, h Heading, mode Mode) bool {
	plain := strings.TrimSpace(ansi.Strip(lines[i]))
	if mode == ModeTree {
		return plain == "header level="+strconv.Itoa(h.Level)
	}
	return strings.HasPrefix(plain, strings.Repeat("#", h.Level)+" ") && strings.Contains(plain, h.Text)
}
