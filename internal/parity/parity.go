// Package parity compares the IR produced by the parser against goldmark,
// a CommonMark/GFM reference implementation.
package parity

import (
	"bytes"
	"fmt"
	"strings"

	diff "github.com/shogoki/gotextdiff"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/samsaffron/mdir/internal/ir"
	"github.com/samsaffron/mdir/internal/parser"
	htmlrender "github.com/samsaffron/mdir/internal/render/html"
)

// Counts tallies block shapes in a document.
type Counts struct {
	Headings   int `json:"headings" yaml:"headings"`
	CodeBlocks int `json:"code_blocks" yaml:"code_blocks"`
	Tables     int `json:"tables" yaml:"tables"`
	ListItems  int `json:"list_items" yaml:"list_items"`
	TaskItems  int `json:"task_items" yaml:"task_items"`
	Quotes     int `json:"quotes" yaml:"quotes"`
	Rules      int `json:"rules" yaml:"rules"`
	Terms      int `json:"terms" yaml:"terms"`
}

func (c Counts) fields() []struct {
	name string
	n    int
} {
	return []struct {
		name string
		n    int
	}{
		{"headings", c.Headings},
		{"code blocks", c.CodeBlocks},
		{"tables", c.Tables},
		{"list items", c.ListItems},
		{"task items", c.TaskItems},
		{"quotes", c.Quotes},
		{"rules", c.Rules},
		{"definition terms", c.Terms},
	}
}

// Mismatch is one shape whose counts differ.
type Mismatch struct {
	Shape     string `json:"shape" yaml:"shape"`
	IR        int    `json:"ir" yaml:"ir"`
	Reference int    `json:"reference" yaml:"reference"`
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: ir=%d reference=%d", m.Shape, m.IR, m.Reference)
}

// Report is the result of comparing one source.
type Report struct {
	IR         Counts     `json:"ir" yaml:"ir"`
	Reference  Counts     `json:"reference" yaml:"reference"`
	Mismatches []Mismatch `json:"mismatches,omitempty" yaml:"mismatches,omitempty"`
}

// OK reports whether every shape count matched.
func (r Report) OK() bool { return len(r.Mismatches) == 0 }

// Checker runs comparisons. It is safe for concurrent use.
type Checker struct {
	parser *parser.Parser
	md     goldmark.Markdown
	html   *htmlrender.Renderer
	log    *zap.Logger
}

// Option configures a Checker.
type Option func(*Checker)

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *Checker) {
		c.log = log
	}
}

// New creates a Checker with goldmark configured for GFM, definition lists
// and footnotes.
func New(opts ...Option) *Checker {
	c := &Checker{}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	c.log = c.log.Named("parity")
	c.parser = parser.New(parser.WithLogger(c.log))
	c.html = htmlrender.New(htmlrender.WithLogger(c.log))
	c.md = goldmark.New(goldmark.WithExtensions(
		extension.GFM,
		extension.DefinitionList,
		extension.Footnote,
	))
	return c
}

// Compare counts block shapes on both sides.
func (c *Checker) Compare(src string) Report {
	r := Report{
		IR:        CountIR(c.parser.Parse(src)),
		Reference: c.countReference([]byte(src)),
	}
	ours, theirs := r.IR.fields(), r.Reference.fields()
	for i := range ours {
		if ours[i].n != theirs[i].n {
			r.Mismatches = append(r.Mismatches, Mismatch{Shape: ours[i].name, IR: ours[i].n, Reference: theirs[i].n})
		}
	}
	if !r.OK() {
		c.log.Debug("shape mismatch", zap.Int("mismatches", len(r.Mismatches)))
	}
	return r
}

// CountIR tallies block shapes of a parsed document. Consecutive block
// quote lines count as one quote, matching how CommonMark groups them.
func CountIR(doc ir.Document) Counts {
	var c Counts
	inQuote := false
	for _, e := range doc.Children {
		_, isQuote := e.(ir.BlockQuote)
		if isQuote && !inQuote {
			c.Quotes++
		}
		inQuote = isQuote

		switch n := e.(type) {
		case ir.Header:
			c.Headings++
		case ir.Code:
			if n.IsBlock {
				c.CodeBlocks++
			}
		case ir.Table:
			c.Tables++
		case ir.ListItem:
			c.ListItems++
		case ir.TaskListItem:
			c.TaskItems++
		case ir.HorizontalRule:
			c.Rules++
		case ir.DefinitionList:
			c.Terms += len(n.Items)
		}
	}
	return c
}

func (c *Checker) countReference(src []byte) Counts {
	var counts Counts
	var items, tasks int
	root := c.md.Parser().Parse(text.NewReader(src))
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindHeading:
			counts.Headings++
		case ast.KindFencedCodeBlock, ast.KindCodeBlock:
			counts.CodeBlocks++
		case east.KindTable:
			counts.Tables++
		case ast.KindListItem:
			items++
		case east.KindTaskCheckBox:
			tasks++
		case ast.KindBlockquote:
			counts.Quotes++
			// Nested quotes are not a separate shape.
			return ast.WalkSkipChildren, nil
		case ast.KindThematicBreak:
			counts.Rules++
		case east.KindDefinitionTerm:
			counts.Terms++
		}
		return ast.WalkContinue, nil
	})
	counts.TaskItems = tasks
	counts.ListItems = items - tasks
	return counts
}

// HTMLDiff renders src with both implementations and returns a unified
// diff of their normalized HTML, or "" when they agree.
func (c *Checker) HTMLDiff(name, src string) (string, error) {
	var ref bytes.Buffer
	if err := c.md.Convert([]byte(src), &ref); err != nil {
		return "", fmt.Errorf("goldmark convert %s: %w", name, err)
	}
	ours, err := c.html.Render(c.parser.Parse(src))
	if err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}

	a, b := Normalize(ref.String()), Normalize(ours)
	if a == b {
		return "", nil
	}
	return string(diff.Diff(name+" (goldmark)", []byte(a), name+" (mdir)", []byte(b))), nil
}

// Normalize reduces an HTML fragment to one tag or text run per line so
// that whitespace and attribute differences do not dominate a diff. Only
// href and src attributes are kept.
func Normalize(src string) string {
	z := html.NewTokenizer(strings.NewReader(src))
	var sb strings.Builder
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		tok := z.Token()
		switch tt {
		case html.TextToken:
			if s := strings.TrimSpace(tok.Data); s != "" {
				sb.WriteString(html.EscapeString(s))
				sb.WriteByte('\n')
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			sb.WriteByte('<')
			sb.WriteString(tok.Data)
			for _, key := range []string{"href", "src"} {
				if v := attrVal(tok.Attr, key); v != "" {
					fmt.Fprintf(&sb, ` %s="%s"`, key, html.EscapeString(v))
				}
			}
			sb.WriteString(">\n")
		case html.EndTagToken:
			sb.WriteString("</" + tok.Data + ">\n")
		}
	}
	return sb.String()
}

// attrVal returns the value of a named HTML attribute, or "".
func attrVal(attrs []html.Attribute, name string) string {
	for _, a := range attrs {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}
