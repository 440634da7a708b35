package ir

import "strings"

// Children returns the direct child elements of e in reading order. Table
// cells and definition terms/details are flattened in row and item order.
func Children(e Element) []Element {
	switch n := e.(type) {
	case Document:
		return n.Children
	case Header:
		return n.Children
	case Paragraph:
		return n.Children
	case List:
		return n.Items
	case ListItem:
		return n.Children
	case TaskListItem:
		return n.Children
	case BlockQuote:
		return n.Children
	case FootnoteDefinition:
		return n.Children
	case Bold:
		return n.Children
	case Italic:
		return n.Children
	case Strikethrough:
		return n.Children
	case Link:
		return n.Children
	case Table:
		var out []Element
		for _, row := range n.Rows {
			for _, cell := range row.Cells {
				out = append(out, cell.Children...)
			}
		}
		return out
	case DefinitionList:
		var out []Element
		for _, item := range n.Items {
			out = append(out, item.Term...)
			for _, d := range item.Details {
				out = append(out, d...)
			}
		}
		return out
	}
	return nil
}

// Walk visits elems depth-first in reading order. When fn returns false the
// children of that element are skipped.
func Walk(elems []Element, fn func(Element) bool) {
	for _, e := range elems {
		if fn(e) {
			Walk(Children(e), fn)
		}
	}
}

// PlainText concatenates the textual content of elems: text runs, code
// content and image alt text. Line breaks become "\n".
func PlainText(elems []Element) string {
	var sb strings.Builder
	Walk(elems, func(e Element) bool {
		switch n := e.(type) {
		case Text:
			sb.WriteString(n.Content)
		case Code:
			sb.WriteString(n.Content)
		case Image:
			sb.WriteString(n.Alt)
		case ImageLink:
			sb.WriteString(n.Alt)
		case LineBreak:
			sb.WriteByte('\n')
		}
		return true
	})
	return sb.String()
}
