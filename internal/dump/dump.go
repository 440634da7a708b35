// Package dump converts IR documents into a generic tree for inspection and
// serializes it as YAML, JSON or an indented text tree.
package dump

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"

	"github.com/samsaffron/mdir/internal/ir"
)

// Node is a format-neutral view of an IR element.
type Node struct {
	Kind     string         `yaml:"kind" json:"kind"`
	Attrs    map[string]any `yaml:"attrs,omitempty" json:"attrs,omitempty"`
	Children []Node         `yaml:"children,omitempty" json:"children,omitempty"`
}

// Format selects a serialization.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTree Format = "tree"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatYAML, FormatJSON, FormatTree:
		return f, nil
	case "":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown dump format %q (want yaml, json or tree)", s)
	}
}

// ToNode converts a document. Footnote definitions follow the body,
// sorted by id.
func ToNode(doc ir.Document) Node {
	n := Node{Kind: string(ir.KindDocument), Children: nodes(doc.Children)}

	ids := make([]string, 0, len(doc.Footnotes))
	for id := range doc.Footnotes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		n.Children = append(n.Children, FromElement(doc.Footnotes[id]))
	}
	return n
}

// FromElement converts a single element and its subtree.
func FromElement(e ir.Element) Node {
	n := Node{Kind: string(e.Kind())}
	switch v := e.(type) {
	case ir.Document:
		return ToNode(v)
	case ir.Header:
		n.Attrs = map[string]any{"level": v.Level}
		n.Children = nodes(v.Children)
	case ir.Paragraph:
		n.Children = nodes(v.Children)
	case ir.List:
		n.Attrs = map[string]any{"ordered": v.Ordered}
		n.Children = nodes(v.Items)
	case ir.ListItem:
		n.Attrs = map[string]any{"ordered": v.Ordered, "indent": v.Indent}
		if v.Ordered {
			n.Attrs["number"] = v.Number
		}
		n.Children = nodes(v.Children)
	case ir.TaskListItem:
		n.Attrs = map[string]any{"checked": v.Checked, "indent": v.Indent}
		n.Children = nodes(v.Children)
	case ir.BlockQuote:
		n.Children = nodes(v.Children)
	case ir.Code:
		n.Attrs = map[string]any{"content": v.Content, "block": v.IsBlock}
		if v.Language != "" {
			n.Attrs["language"] = v.Language
		}
	case ir.Table:
		aligns := make([]string, len(v.Alignments))
		for i, a := range v.Alignments {
			aligns[i] = a.String()
		}
		n.Attrs = map[string]any{"alignments": aligns}
		for _, row := range v.Rows {
			r := Node{Kind: "table_row", Attrs: map[string]any{"header": row.IsHeader}}
			for _, cell := range row.Cells {
				r.Children = append(r.Children, Node{
					Kind:     "table_cell",
					Attrs:    map[string]any{"header": cell.IsHeader},
					Children: nodes(cell.Children),
				})
			}
			n.Children = append(n.Children, r)
		}
	case ir.DefinitionList:
		for _, item := range v.Items {
			it := Node{Kind: "definition_item"}
			it.Children = append(it.Children, Node{Kind: "term", Children: nodes(item.Term)})
			for _, d := range item.Details {
				it.Children = append(it.Children, Node{Kind: "detail", Children: nodes(d)})
			}
			n.Children = append(n.Children, it)
		}
	case ir.FootnoteDefinition:
		n.Attrs = map[string]any{"id": v.ID}
		n.Children = nodes(v.Children)
	case ir.FootnoteReference:
		n.Attrs = map[string]any{"id": v.ID}
	case ir.HorizontalRule, ir.LineBreak:
	case ir.Text:
		n.Attrs = map[string]any{"content": v.Content}
	case ir.Bold:
		n.Children = nodes(v.Children)
	case ir.Italic:
		n.Children = nodes(v.Children)
	case ir.Strikethrough:
		n.Children = nodes(v.Children)
	case ir.Link:
		n.Attrs = map[string]any{"url": v.URL}
		n.Children = nodes(v.Children)
	case ir.Image:
		n.Attrs = map[string]any{"url": v.URL, "alt": v.Alt}
	case ir.ImageLink:
		n.Attrs = map[string]any{"image_url": v.ImageURL, "alt": v.Alt, "link_url": v.LinkURL}
	default:
		panic(fmt.Sprintf("dump: unexpected element %T", e))
	}
	return n
}

func nodes(elems []ir.Element) []Node {
	if len(elems) == 0 {
		return nil
	}
	out := make([]Node, len(elems))
	for i, e := range elems {
		out[i] = FromElement(e)
	}
	return out
}

// Write serializes n to w in the given format.
func Write(w io.Writer, n Node, f Format) error {
	switch f {
	case FormatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(n); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(n); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case FormatTree:
		_, err := io.WriteString(w, Tree(n))
		return err
	default:
		return fmt.Errorf("unknown dump format %q", f)
	}
}

// Tree renders n as an indented outline, one node per line:
//
//	document
//	  header level=1
//	    text content="Title"
func Tree(n Node) string {
	var sb strings.Builder
	writeTree(&sb, n, 0)
	return sb.String()
}

// Line renders a single node and its subtree with the given base depth,
// used when elements are printed as they arrive.
func Line(e ir.Element, depth int) string {
	var sb strings.Builder
	writeTree(&sb, FromElement(e), depth)
	return sb.String()
}

func writeTree(sb *strings.Builder, n Node, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(n.Kind)

	keys := make([]string, 0, len(n.Attrs))
	for k := range n.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		switch v := n.Attrs[k].(type) {
		case string:
			fmt.Fprintf(sb, " %s=%q", k, v)
		case []string:
			fmt.Fprintf(sb, " %s=[%s]", k, strings.Join(v, ","))
		default:
			fmt.Fprintf(sb, " %s=%v", k, v)
		}
	}
	sb.WriteByte('\n')

	for _, c := range n.Children {
		writeTree(sb, c, depth+1)
	}
}

// Select returns the subtrees of n whose kind matches pattern, in reading
// order. Matched subtrees are not searched further. Patterns use glob
// syntax over kind names, e.g. "footnote_*" or "{header,table}".
func Select(n Node, pattern string) ([]Node, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid kind pattern %q: %w", pattern, err)
	}
	var out []Node
	var visit func(Node)
	visit = func(n Node) {
		if g.Match(n.Kind) {
			out = append(out, n)
			return
		}
		for _, c := range n.Children {
			visit(c)
		}
	}
	visit(n)
	return out, nil
}
