// Package ir defines the intermediate tree produced by the markdown parser.
//
// The tree is renderer-agnostic: a presentation layer walks it with a type
// switch over the Element variants declared here. The variant set is closed
// (Element carries an unexported marker method), so a switch that handles
// every type below is exhaustive.
package ir

// Kind names an Element variant.
type Kind string

const (
	KindDocument           Kind = "document"
	KindHeader             Kind = "header"
	KindParagraph          Kind = "paragraph"
	KindList               Kind = "list"
	KindListItem           Kind = "list_item"
	KindTaskListItem       Kind = "task_list_item"
	KindBlockQuote         Kind = "block_quote"
	KindCode               Kind = "code"
	KindTable              Kind = "table"
	KindDefinitionList     Kind = "definition_list"
	KindFootnoteDefinition Kind = "footnote_definition"
	KindFootnoteReference  Kind = "footnote_reference"
	KindHorizontalRule     Kind = "horizontal_rule"
	KindLineBreak          Kind = "line_break"
	KindText               Kind = "text"
	KindBold               Kind = "bold"
	KindItalic             Kind = "italic"
	KindStrikethrough      Kind = "strikethrough"
	KindLink               Kind = "link"
	KindImage              Kind = "image"
	KindImageLink          Kind = "image_link"
)

// IndentWidth is the number of raw leading spaces that make up one logical
// list nesting level.
const IndentWidth = 2

// Element is a node of the IR tree.
type Element interface {
	Kind() Kind
	element()
}

// Document is the root of a parsed markdown source.
type Document struct {
	Children []Element
	// Footnotes maps a footnote identifier to its definition. Definitions
	// never appear in Children.
	Footnotes map[string]FootnoteDefinition
}

// Header is an ATX heading.
type Header struct {
	Level    int
	Children []Element
}

type Paragraph struct {
	Children []Element
}

// List groups consecutive list items. The parser emits flat items; lists
// are assembled by consumers with GroupLists.
type List struct {
	Ordered bool
	Items   []Element // ListItem, TaskListItem or nested List
}

// ListItem is a bullet or numbered item. Number is meaningful only when
// Ordered is set. Indent counts raw leading whitespace characters.
type ListItem struct {
	Ordered  bool
	Number   int
	Indent   int
	Children []Element
}

// Level returns the logical nesting level of the item.
func (li ListItem) Level() int { return li.Indent / IndentWidth }

type TaskListItem struct {
	Checked  bool
	Indent   int
	Children []Element
}

func (ti TaskListItem) Level() int { return ti.Indent / IndentWidth }

// BlockQuote holds the inline content of a single quoted line.
type BlockQuote struct {
	Children []Element
}

// Code is either a fenced block (IsBlock) or an inline span. Content is
// raw; no inline parsing is applied to it.
type Code struct {
	Content  string
	Language string
	IsBlock  bool
}

// Alignment of a table column.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
	AlignCenter
)

func (a Alignment) String() string {
	switch a {
	case AlignRight:
		return "right"
	case AlignCenter:
		return "center"
	default:
		return "left"
	}
}

// Table holds one alignment per column; every row has exactly
// len(Alignments) cells.
type Table struct {
	Alignments []Alignment
	Rows       []TableRow
}

type TableRow struct {
	IsHeader bool
	Cells    []TableCell
}

type TableCell struct {
	IsHeader bool
	Children []Element
}

type DefinitionList struct {
	Items []DefinitionItem
}

// DefinitionItem is a term with one or more details.
type DefinitionItem struct {
	Term    []Element
	Details [][]Element
}

type FootnoteDefinition struct {
	ID       string
	Children []Element
}

// FootnoteReference cites a footnote by identifier. Display numbers are
// computed out of band, see NumberFootnotes.
type FootnoteReference struct {
	ID string
}

type HorizontalRule struct{}

type LineBreak struct{}

type Text struct {
	Content string
}

type Bold struct {
	Children []Element
}

type Italic struct {
	Children []Element
}

type Strikethrough struct {
	Children []Element
}

type Link struct {
	URL      string
	Children []Element
}

type Image struct {
	URL string
	Alt string
}

// ImageLink is an image wrapped in a link: [![alt](img)](url).
type ImageLink struct {
	ImageURL string
	Alt      string
	LinkURL  string
}

func (Document) Kind() Kind           { return KindDocument }
func (Header) Kind() Kind             { return KindHeader }
func (Paragraph) Kind() Kind          { return KindParagraph }
func (List) Kind() Kind               { return KindList }
func (ListItem) Kind() Kind           { return KindListItem }
func (TaskListItem) Kind() Kind       { return KindTaskListItem }
func (BlockQuote) Kind() Kind         { return KindBlockQuote }
func (Code) Kind() Kind               { return KindCode }
func (Table) Kind() Kind              { return KindTable }
func (DefinitionList) Kind() Kind     { return KindDefinitionList }
func (FootnoteDefinition) Kind() Kind { return KindFootnoteDefinition }
func (FootnoteReference) Kind() Kind  { return KindFootnoteReference }
func (HorizontalRule) Kind() Kind     { return KindHorizontalRule }
func (LineBreak) Kind() Kind          { return KindLineBreak }
func (Text) Kind() Kind               { return KindText }
func (Bold) Kind() Kind               { return KindBold }
func (Italic) Kind() Kind             { return KindItalic }
func (Strikethrough) Kind() Kind      { return KindStrikethrough }
func (Link) Kind() Kind               { return KindLink }
func (Image) Kind() Kind              { return KindImage }
func (ImageLink) Kind() Kind          { return KindImageLink }

func (Document) element()           {}
func (Header) element()             {}
func (Paragraph) element()          {}
func (List) element()               {}
func (ListItem) element()           {}
func (TaskListItem) element()       {}
func (BlockQuote) element()         {}
func (Code) element()               {}
func (Table) element()              {}
func (DefinitionList) element()     {}
func (FootnoteDefinition) element() {}
func (FootnoteReference) element()  {}
func (HorizontalRule) element()     {}
func (LineBreak) element()          {}
func (Text) element()               {}
func (Bold) element()               {}
func (Italic) element()             {}
func (Strikethrough) element()      {}
func (Link) element()               {}
func (Image) element()              {}
func (ImageLink) element()          {}
