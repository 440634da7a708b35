// Package term renders IR documents as styled terminal text.
package term

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"
	"go.uber.org/zap"

	"github.com/samsaffron/mdir/internal/ir"
)

// DefaultWidth is the wrap width used when none is configured.
const DefaultWidth = 80

// Renderer turns IR documents into ANSI text. Render may be called from
// several goroutines.
type Renderer struct {
	width      int
	theme      *Theme
	hyperlinks bool
	codeStyle  string
	output     io.Writer
	profile    *termenv.Profile
	log        *zap.Logger

	lg *lipgloss.Renderer
	st styles
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithWidth sets the wrap width. Zero or less disables wrapping.
func WithWidth(width int) Option {
	return func(r *Renderer) {
		r.width = width
	}
}

// WithTheme sets the color theme.
func WithTheme(theme *Theme) Option {
	return func(r *Renderer) {
		if theme != nil {
			r.theme = theme
		}
	}
}

// WithHyperlinks emits OSC 8 hyperlinks instead of printing link targets.
func WithHyperlinks(enabled bool) Option {
	return func(r *Renderer) {
		r.hyperlinks = enabled
	}
}

// WithCodeStyle sets the chroma style used for code blocks.
func WithCodeStyle(name string) Option {
	return func(r *Renderer) {
		r.codeStyle = name
	}
}

// WithOutput sets the writer whose terminal capabilities decide the color
// profile. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(r *Renderer) {
		r.output = w
	}
}

// WithColorProfile forces a color profile, e.g. termenv.Ascii for plain
// output.
func WithColorProfile(p termenv.Profile) Option {
	return func(r *Renderer) {
		r.profile = &p
	}
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(r *Renderer) {
		r.log = log
	}
}

// New creates a terminal renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		width:     DefaultWidth,
		theme:     DefaultTheme(),
		codeStyle: "monokai",
		output:    os.Stdout,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = zap.NewNop()
	}
	r.log = r.log.Named("term")

	r.lg = lipgloss.NewRenderer(r.output)
	if r.profile != nil {
		r.lg.SetColorProfile(*r.profile)
	}
	r.st = newStyles(r.lg, r.theme)
	return r
}

// Render renders doc. Lists are regrouped from the flat item sequence and
// footnotes are numbered by first reference and listed at the end.
func (r *Renderer) Render(doc ir.Document) string {
	p := &pass{r: r, st: r.st, notes: ir.NumberFootnotes(doc)}

	var parts []string
	for _, e := range ir.GroupLists(doc.Children) {
		if s := p.block(e, r.width); s != "" {
			parts = append(parts, s)
		}
	}
	if notes := p.footnotes(doc); notes != "" {
		parts = append(parts, notes)
	}
	return strings.Join(parts, "\n\n")
}

// pass holds the state of one Render call.
type pass struct {
	r     *Renderer
	st    styles
	notes ir.FootnoteNumbers
}

func (p *pass) block(e ir.Element, width int) string {
	switch n := e.(type) {
	case ir.Document:
		var parts []string
		for _, child := range ir.GroupLists(n.Children) {
			if s := p.block(child, width); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "\n\n")
	case ir.Header:
		return p.header(n)
	case ir.Paragraph:
		return wrap(p.inline(n.Children), width)
	case ir.List:
		return p.list(n, width)
	case ir.ListItem:
		return p.list(ir.List{Ordered: n.Ordered, Items: []ir.Element{n}}, width)
	case ir.TaskListItem:
		return p.list(ir.List{Items: []ir.Element{n}}, width)
	case ir.BlockQuote:
		return p.quote(n, width)
	case ir.Code:
		if n.IsBlock {
			return p.codeBlock(n)
		}
		return p.inline([]ir.Element{n})
	case ir.Table:
		return p.table(n, width)
	case ir.DefinitionList:
		return p.definitions(n, width)
	case ir.FootnoteDefinition:
		return p.hanging(p.st.muted.Render("[^"+n.ID+"]")+" ", len(n.ID)+4, n.Children, width)
	case ir.HorizontalRule:
		return p.rule(width)
	case ir.LineBreak:
		return ""
	case ir.Text, ir.Bold, ir.Italic, ir.Strikethrough, ir.Link, ir.Image, ir.ImageLink, ir.FootnoteReference:
		return wrap(p.inline([]ir.Element{n}), width)
	default:
		panic(fmt.Sprintf("term: unexpected element %T", e))
	}
}

func (p *pass) header(h ir.Header) string {
	prefix := strings.Repeat("#", h.Level) + " "
	out := p.st.heading.Render(prefix + p.inline(h.Children))
	if h.Level == 1 {
		underline := strings.Repeat("═", runewidth.StringWidth(prefix+ir.PlainText(h.Children)))
		out += "\n" + p.st.heading.Render(underline)
	}
	return out
}

func (p *pass) rule(width int) string {
	if width <= 0 {
		width = DefaultWidth
	}
	return p.st.muted.Render(strings.Repeat("─", width))
}

func (p *pass) quote(q ir.BlockQuote, width int) string {
	bar := p.st.quoteBar.Render("│") + " "
	lines := strings.Split(wrap(p.inline(q.Children), width-2), "\n")
	for i, l := range lines {
		lines[i] = bar + p.st.quote.Render(l)
	}
	return strings.Join(lines, "\n")
}

func (p *pass) codeBlock(c ir.Code) string {
	var h *highlighter
	if p.r.lg.ColorProfile() != termenv.Ascii {
		h = newHighlighter(c.Language, c.Content, p.r.codeStyle)
	}
	lines := strings.Split(c.Content, "\n")
	for i, l := range lines {
		lines[i] = "  " + h.highlightLine(l)
	}
	return strings.Join(lines, "\n")
}

// list renders a grouped list; nested lists are indented one level.
func (p *pass) list(l ir.List, width int) string {
	var lines []string
	for _, item := range l.Items {
		switch it := item.(type) {
		case ir.List:
			lines = append(lines, indent.String(p.list(it, width-ir.IndentWidth), ir.IndentWidth))
		case ir.ListItem:
			marker := "• "
			if it.Ordered {
				marker = fmt.Sprintf("%d. ", it.Number)
			}
			lines = append(lines, p.hanging(p.st.marker.Render(marker), ansi.StringWidth(marker), it.Children, width))
		case ir.TaskListItem:
			marker := "[ ] "
			if it.Checked {
				marker = "[✓] "
			}
			lines = append(lines, p.hanging(p.st.marker.Render(marker), ansi.StringWidth(marker), it.Children, width))
		default:
			panic(fmt.Sprintf("term: unexpected list item %T", item))
		}
	}
	return strings.Join(lines, "\n")
}

// hanging renders children after marker with continuation lines indented
// to the marker width.
func (p *pass) hanging(marker string, markerWidth int, children []ir.Element, width int) string {
	body := wrap(p.inline(children), width-markerWidth)
	pad := strings.Repeat(" ", markerWidth)
	lines := strings.Split(body, "\n")
	for i := range lines {
		if i == 0 {
			lines[i] = marker + lines[i]
		} else {
			lines[i] = pad + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}

func (p *pass) definitions(dl ir.DefinitionList, width int) string {
	var lines []string
	for _, item := range dl.Items {
		lines = append(lines, p.st.strong.Render(p.inline(item.Term)))
		for _, d := range item.Details {
			lines = append(lines, p.hanging("  "+p.st.muted.Render(":")+" ", 4, d, width))
		}
	}
	return strings.Join(lines, "\n")
}

// footnotes lists cited definitions in number order.
func (p *pass) footnotes(doc ir.Document) string {
	var lines []string
	for i, id := range p.notes.Order {
		def, ok := doc.Footnotes[id]
		if !ok {
			p.r.log.Debug("footnote cited but not defined", zap.String("id", id))
			continue
		}
		marker := fmt.Sprintf("[%d] ", i+1)
		lines = append(lines, p.hanging(p.st.muted.Render(marker), len(marker), def.Children, p.r.width))
	}
	if len(p.notes.Unreferenced) > 0 {
		p.r.log.Debug("footnotes never cited", zap.Strings("ids", p.notes.Unreferenced))
	}
	if len(lines) == 0 {
		return ""
	}
	width := p.r.width
	if width <= 0 || width > 20 {
		width = 20
	}
	return p.rule(width) + "\n" + strings.Join(lines, "\n")
}

func wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	return wordwrap.String(s, width)
}
