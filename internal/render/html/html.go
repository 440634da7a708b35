// Package html renders IR documents as HTML fragments.
package html

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"go.uber.org/zap"
	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/samsaffron/mdir/internal/ir"
)

// Renderer converts IR to HTML. The zero value is not usable; call New.
type Renderer struct {
	log *zap.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(r *Renderer) {
		r.log = log
	}
}

// New creates an HTML renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = zap.NewNop()
	}
	r.log = r.log.Named("html")
	return r
}

// Render returns doc as an HTML fragment, one top-level block per line.
func (r *Renderer) Render(doc ir.Document) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderTo(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderTo writes doc as an HTML fragment to w.
func (r *Renderer) RenderTo(w io.Writer, doc ir.Document) error {
	b := &builder{notes: ir.NumberFootnotes(doc), cited: make(map[string]bool)}

	root := &nethtml.Node{Type: nethtml.DocumentNode}
	for _, e := range ir.GroupLists(doc.Children) {
		b.block(root, e)
	}
	if section := b.footnotes(doc); section != nil {
		root.AppendChild(section)
	}
	if len(b.notes.Unreferenced) > 0 {
		r.log.Debug("footnotes never cited", zap.Strings("ids", b.notes.Unreferenced))
	}

	for n := root.FirstChild; n != nil; n = n.NextSibling {
		if err := nethtml.Render(w, n); err != nil {
			return fmt.Errorf("render %s: %w", n.Data, err)
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

// builder holds the state of one render.
type builder struct {
	notes ir.FootnoteNumbers
	cited map[string]bool // ids whose first reference carries the anchor
}

// el creates an element; attrs are key/value pairs.
func el(tag string, attrs ...string) *nethtml.Node {
	n := &nethtml.Node{Type: nethtml.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, nethtml.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func text(s string) *nethtml.Node {
	return &nethtml.Node{Type: nethtml.TextNode, Data: s}
}

func (b *builder) block(parent *nethtml.Node, e ir.Element) {
	switch n := e.(type) {
	case ir.Document:
		for _, child := range ir.GroupLists(n.Children) {
			b.block(parent, child)
		}
	case ir.Header:
		parent.AppendChild(b.wrap(el("h"+strconv.Itoa(n.Level)), n.Children))
	case ir.Paragraph:
		parent.AppendChild(b.wrap(el("p"), n.Children))
	case ir.List:
		parent.AppendChild(b.list(n))
	case ir.ListItem:
		parent.AppendChild(b.list(ir.List{Ordered: n.Ordered, Items: []ir.Element{n}}))
	case ir.TaskListItem:
		parent.AppendChild(b.list(ir.List{Items: []ir.Element{n}}))
	case ir.BlockQuote:
		q := el("blockquote")
		q.AppendChild(b.wrap(el("p"), n.Children))
		parent.AppendChild(q)
	case ir.Code:
		if !n.IsBlock {
			b.inline(parent, n)
			return
		}
		code := el("code")
		if n.Language != "" {
			code = el("code", "class", "language-"+n.Language)
		}
		code.AppendChild(text(n.Content + "\n"))
		pre := el("pre")
		pre.AppendChild(code)
		parent.AppendChild(pre)
	case ir.Table:
		parent.AppendChild(b.table(n))
	case ir.DefinitionList:
		dl := el("dl")
		for _, item := range n.Items {
			dl.AppendChild(b.wrap(el("dt"), item.Term))
			for _, d := range item.Details {
				dl.AppendChild(b.wrap(el("dd"), d))
			}
		}
		parent.AppendChild(dl)
	case ir.FootnoteDefinition:
		div := el("div", "class", "footnote", "id", "fn-def:"+n.ID)
		parent.AppendChild(b.wrap(div, n.Children))
	case ir.HorizontalRule:
		parent.AppendChild(el("hr"))
	case ir.LineBreak, ir.Text, ir.Bold, ir.Italic, ir.Strikethrough, ir.Link, ir.Image, ir.ImageLink, ir.FootnoteReference:
		p := el("p")
		b.inline(p, n)
		parent.AppendChild(p)
	default:
		panic(fmt.Sprintf("html: unexpected element %T", e))
	}
}

// wrap appends the inline children to n and returns it.
func (b *builder) wrap(n *nethtml.Node, children []ir.Element) *nethtml.Node {
	for _, c := range children {
		b.inline(n, c)
	}
	return n
}

func (b *builder) inline(parent *nethtml.Node, e ir.Element) {
	switch n := e.(type) {
	case ir.Text:
		parent.AppendChild(text(n.Content))
	case ir.LineBreak:
		parent.AppendChild(el("br"))
	case ir.Bold:
		parent.AppendChild(b.wrap(el("strong"), n.Children))
	case ir.Italic:
		parent.AppendChild(b.wrap(el("em"), n.Children))
	case ir.Strikethrough:
		parent.AppendChild(b.wrap(el("del"), n.Children))
	case ir.Code:
		code := el("code")
		code.AppendChild(text(n.Content))
		parent.AppendChild(code)
	case ir.Link:
		parent.AppendChild(b.wrap(el("a", "href", n.URL), n.Children))
	case ir.Image:
		parent.AppendChild(el("img", "src", n.URL, "alt", n.Alt))
	case ir.ImageLink:
		a := el("a", "href", n.LinkURL)
		a.AppendChild(el("img", "src", n.ImageURL, "alt", n.Alt))
		parent.AppendChild(a)
	case ir.FootnoteReference:
		parent.AppendChild(b.footnoteRef(n.ID))
	default:
		panic(fmt.Sprintf("html: unexpected inline element %T", e))
	}
}

func (b *builder) footnoteRef(id string) *nethtml.Node {
	num := b.notes.Number(id)
	label := strconv.Itoa(num)
	if num == 0 {
		label = id
	}
	a := el("a", "href", "#fn:"+label)
	if !b.cited[id] {
		b.cited[id] = true
		a.Attr = append(a.Attr, nethtml.Attribute{Key: "id", Val: "fnref:" + label})
	}
	a.AppendChild(text(label))
	sup := el("sup", "class", "footnote-ref")
	sup.AppendChild(a)
	return sup
}

func (b *builder) list(l ir.List) *nethtml.Node {
	list := el("ul")
	if l.Ordered {
		list = el("ol")
		if first, ok := l.Items[0].(ir.ListItem); ok && first.Number != 1 {
			list.Attr = append(list.Attr, nethtml.Attribute{Key: "start", Val: strconv.Itoa(first.Number)})
		}
	}

	var last *nethtml.Node
	for _, item := range l.Items {
		switch it := item.(type) {
		case ir.List:
			// Nested lists belong to the preceding item.
			if last == nil {
				last = el("li")
				list.AppendChild(last)
			}
			last.AppendChild(b.list(it))
		case ir.ListItem:
			last = b.wrap(el("li"), it.Children)
			list.AppendChild(last)
		case ir.TaskListItem:
			last = el("li", "class", "task-list-item")
			box := el("input", "type", "checkbox", "disabled", "")
			if it.Checked {
				box.Attr = append(box.Attr, nethtml.Attribute{Key: "checked", Val: ""})
			}
			last.AppendChild(box)
			last.AppendChild(text(" "))
			b.wrap(last, it.Children)
			list.AppendChild(last)
		default:
			panic(fmt.Sprintf("html: unexpected list item %T", item))
		}
	}
	return list
}

func (b *builder) table(t ir.Table) *nethtml.Node {
	table := el("table")
	var body *nethtml.Node
	for _, row := range t.Rows {
		tr := el("tr")
		for i, cell := range row.Cells {
			tag := "td"
			if cell.IsHeader {
				tag = "th"
			}
			c := el(tag)
			if i < len(t.Alignments) && t.Alignments[i] != ir.AlignLeft {
				c.Attr = append(c.Attr, nethtml.Attribute{Key: "style", Val: "text-align:" + t.Alignments[i].String()})
			}
			tr.AppendChild(b.wrap(c, cell.Children))
		}
		if row.IsHeader {
			head := el("thead")
			head.AppendChild(tr)
			table.AppendChild(head)
			continue
		}
		if body == nil {
			body = el("tbody")
			table.AppendChild(body)
		}
		body.AppendChild(tr)
	}
	return table
}

// footnotes builds the trailing footnote section for cited definitions.
func (b *builder) footnotes(doc ir.Document) *nethtml.Node {
	ol := el("ol")
	for i, id := range b.notes.Order {
		def, ok := doc.Footnotes[id]
		if !ok {
			continue
		}
		label := strconv.Itoa(i + 1)
		li := b.wrap(el("li", "id", "fn:"+label), def.Children)
		li.AppendChild(text(" "))
		back := el("a", "href", "#fnref:"+label, "class", "footnote-backref")
		back.AppendChild(text("↩"))
		li.AppendChild(back)
		ol.AppendChild(li)
	}
	if ol.FirstChild == nil {
		return nil
	}
	section := el("section", "class", "footnotes")
	section.AppendChild(ol)
	return section
}
