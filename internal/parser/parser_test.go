package parser

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/samsaffron/mdir/internal/ir"
)

func text(s string) ir.Text { return ir.Text{Content: s} }

func para(children ...ir.Element) ir.Paragraph {
	return ir.Paragraph{Children: children}
}

func assertBlocks(t *testing.T, input string, want []ir.Element) {
	t.Helper()
	got := Parse(input).Children
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Parse(%q) mismatch (-want +got):\n%s", input, diff)
	}
}

func TestParseBlocks(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []ir.Element
	}{
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "blank lines only",
			input: "\n  \n\t\n",
			want:  nil,
		},
		{
			name:  "paragraph soft breaks collapse",
			input: "hello\n  world  here\nagain",
			want:  []ir.Element{para(text("hello world  here again"))},
		},
		{
			name:  "carriage returns dropped",
			input: "a\r\nb\r\n",
			want:  []ir.Element{para(text("a b"))},
		},
		{
			name:  "headers",
			input: "# One\n###### Six ##\n####### seven",
			want: []ir.Element{
				ir.Header{Level: 1, Children: []ir.Element{text("One")}},
				ir.Header{Level: 6, Children: []ir.Element{text("Six")}},
				para(text("####### seven")),
			},
		},
		{
			name:  "header needs a space",
			input: "#hashtag",
			want:  []ir.Element{para(text("#hashtag"))},
		},
		{
			name:  "block quote",
			input: "> quoted *text*",
			want: []ir.Element{
				ir.BlockQuote{Children: []ir.Element{
					text("quoted "),
					ir.Italic{Children: []ir.Element{text("text")}},
				}},
			},
		},
		{
			name:  "list items stay flat",
			input: "- a\n  - b\n1. one\n* [x] done\n+ [ ] todo",
			want: []ir.Element{
				ir.ListItem{Children: []ir.Element{text("a")}},
				ir.ListItem{Indent: 2, Children: []ir.Element{text("b")}},
				ir.ListItem{Ordered: true, Number: 1, Children: []ir.Element{text("one")}},
				ir.TaskListItem{Checked: true, Children: []ir.Element{text("done")}},
				ir.TaskListItem{Children: []ir.Element{text("todo")}},
			},
		},
		{
			name:  "ordered number that does not fit an int",
			input: "99999999999999999999. big",
			want:  []ir.Element{para(text("99999999999999999999. big"))},
		},
		{
			name:  "rules",
			input: "---\n* * *\n___",
			want:  []ir.Element{ir.HorizontalRule{}, ir.HorizontalRule{}, ir.HorizontalRule{}},
		},
		{
			name:  "paragraph ends at list item",
			input: "intro\n- item",
			want: []ir.Element{
				para(text("intro")),
				ir.ListItem{Children: []ir.Element{text("item")}},
			},
		},
		{
			name:  "hard break before rule is trimmed",
			input: "line one  \n---",
			want:  []ir.Element{para(text("line one")), ir.HorizontalRule{}},
		},
		{
			name:  "hard breaks inside paragraph",
			input: "one  \ntwo\\\nthree",
			want: []ir.Element{para(
				text("one"), ir.LineBreak{},
				text("two"), ir.LineBreak{},
				text("three"),
			)},
		},
		{
			name:  "trailing spaces on the last line add no break",
			input: "foo  ",
			want:  []ir.Element{para(text("foo"))},
		},
		{
			name:  "trailing backslash on the last line stays literal",
			input: "foo\\",
			want:  []ir.Element{para(text("foo\\"))},
		},
		{
			name:  "hard break before list item is dropped",
			input: "para  \n- item",
			want: []ir.Element{
				para(text("para")),
				ir.ListItem{Children: []ir.Element{text("item")}},
			},
		},
		{
			name:  "hard break then final backslash",
			input: "one\\\ntwo\\",
			want:  []ir.Element{para(text("one"), ir.LineBreak{}, text("two\\"))},
		},
		{
			name:  "code fence",
			input: "```go title\nfmt.Println(\"*x*\")\n\n  indented\n```",
			want: []ir.Element{
				ir.Code{Content: "fmt.Println(\"*x*\")\n\n  indented", Language: "go", IsBlock: true},
			},
		},
		{
			name:  "tilde fence with longer closer",
			input: "~~~\n```\n~~~~",
			want:  []ir.Element{ir.Code{Content: "```", IsBlock: true}},
		},
		{
			name:  "fence interrupts paragraph",
			input: "text\n```\ncode\n```",
			want: []ir.Element{
				para(text("text")),
				ir.Code{Content: "code", IsBlock: true},
			},
		},
		{
			name:  "definition list",
			input: "Term\n: first\n:   second\nOther *term*\n: detail\nafter",
			want: []ir.Element{
				ir.DefinitionList{Items: []ir.DefinitionItem{
					{
						Term:    []ir.Element{text("Term")},
						Details: [][]ir.Element{{text("first")}, {text("second")}},
					},
					{
						Term:    []ir.Element{text("Other "), ir.Italic{Children: []ir.Element{text("term")}}},
						Details: [][]ir.Element{{text("detail")}},
					},
				}},
				para(text("after")),
			},
		},
		{
			name:  "definition list groups with several details each",
			input: "Go\n: a language\n: a game\nRust\n: a language\n: oxidation",
			want: []ir.Element{
				ir.DefinitionList{Items: []ir.DefinitionItem{
					{
						Term:    []ir.Element{text("Go")},
						Details: [][]ir.Element{{text("a language")}, {text("a game")}},
					},
					{
						Term:    []ir.Element{text("Rust")},
						Details: [][]ir.Element{{text("a language")}, {text("oxidation")}},
					},
				}},
			},
		},
		{
			name:  "paragraph ends before definition term",
			input: "intro\nTerm\n: detail",
			want: []ir.Element{
				para(text("intro")),
				ir.DefinitionList{Items: []ir.DefinitionItem{{
					Term:    []ir.Element{text("Term")},
					Details: [][]ir.Element{{text("detail")}},
				}}},
			},
		},
		{
			name:  "footnote definitions leave the body",
			input: "see[^n]\n[^n]: the note",
			want:  []ir.Element{para(text("see"), ir.FootnoteReference{ID: "n"})},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertBlocks(t, tt.input, tt.want)
		})
	}
}

func TestParseTableShape(t *testing.T) {
	doc := Parse("| A | B |\n|---|--:|\n| 1 | 2 |")
	if len(doc.Children) != 1 {
		t.Fatalf("got %d blocks, want 1", len(doc.Children))
	}
	tbl, ok := doc.Children[0].(ir.Table)
	if !ok {
		t.Fatalf("got %T, want ir.Table", doc.Children[0])
	}

	want := ir.Table{
		Alignments: []ir.Alignment{ir.AlignLeft, ir.AlignRight},
		Rows: []ir.TableRow{
			{IsHeader: true, Cells: []ir.TableCell{
				{IsHeader: true, Children: []ir.Element{text("A")}},
				{IsHeader: true, Children: []ir.Element{text("B")}},
			}},
			{Cells: []ir.TableCell{
				{Children: []ir.Element{text("1")}},
				{Children: []ir.Element{text("2")}},
			}},
		},
	}
	if diff := cmp.Diff(want, tbl); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTableNormalizesRows(t *testing.T) {
	input := "a|b\n:-:|-\n1|2|3\n|x|\n| esc \\| pipe | `a|b` |\nnot a row"
	want := []ir.Element{
		ir.Table{
			Alignments: []ir.Alignment{ir.AlignCenter, ir.AlignLeft},
			Rows: []ir.TableRow{
				{IsHeader: true, Cells: []ir.TableCell{
					{IsHeader: true, Children: []ir.Element{text("a")}},
					{IsHeader: true, Children: []ir.Element{text("b")}},
				}},
				{Cells: []ir.TableCell{
					{Children: []ir.Element{text("1")}},
					{Children: []ir.Element{text("2")}},
				}},
				{Cells: []ir.TableCell{
					{Children: []ir.Element{text("x")}},
					{},
				}},
				{Cells: []ir.TableCell{
					{Children: []ir.Element{text("esc | pipe")}},
					{Children: []ir.Element{text("`a")}},
				}},
			},
		},
		para(text("not a row")),
	}
	assertBlocks(t, input, want)
}

func TestParseTableStopsAtFenceAndSeparator(t *testing.T) {
	// A row followed by a separator starts the next table.
	input := "|h|\n|-|\n|r|\n|---|\n|z|"
	doc := Parse(input)
	if len(doc.Children) != 2 {
		t.Fatalf("got %d blocks, want 2 tables", len(doc.Children))
	}
	for i, want := range []int{1, 2} {
		tbl, ok := doc.Children[i].(ir.Table)
		if !ok {
			t.Fatalf("block %d: got %T, want ir.Table", i, doc.Children[i])
		}
		if len(tbl.Rows) != want {
			t.Errorf("table %d: got %d rows, want %d", i, len(tbl.Rows), want)
		}
	}

	input = "|h|\n|-|\n```\ncode\n```"
	doc = Parse(input)
	if len(doc.Children) != 2 {
		t.Fatalf("got %d blocks, want table and code", len(doc.Children))
	}
	if _, ok := doc.Children[1].(ir.Code); !ok {
		t.Errorf("got %T, want ir.Code", doc.Children[1])
	}
}

func TestParseInline(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []ir.Element
	}{
		{
			name:  "escape fidelity",
			input: `\*not italic\*`,
			want:  []ir.Element{text("*not italic*")},
		},
		{
			name:  "backslash before letter stays",
			input: `C:\dir`,
			want:  []ir.Element{text(`C:\dir`)},
		},
		{
			name:  "balanced emphasis",
			input: "**bold *and italic* text**",
			want: []ir.Element{ir.Bold{Children: []ir.Element{
				text("bold "),
				ir.Italic{Children: []ir.Element{text("and italic")}},
				text(" text"),
			}}},
		},
		{
			name:  "unterminated emphasis",
			input: "*oops",
			want:  []ir.Element{text("*oops")},
		},
		{
			name:  "unterminated bold",
			input: "**oops *x*",
			want:  []ir.Element{text("**oops "), ir.Italic{Children: []ir.Element{text("x")}}},
		},
		{
			name:  "flanking whitespace",
			input: "a * b * c",
			want:  []ir.Element{text("a * b * c")},
		},
		{
			name:  "underscore emphasis",
			input: "_it_ and __bold__",
			want: []ir.Element{
				ir.Italic{Children: []ir.Element{text("it")}},
				text(" and "),
				ir.Bold{Children: []ir.Element{text("bold")}},
			},
		},
		{
			name:  "intraword underscores",
			input: "snake_case_name",
			want:  []ir.Element{text("snake_case_name")},
		},
		{
			name:  "triple delimiters",
			input: "***a***",
			want: []ir.Element{ir.Bold{Children: []ir.Element{
				ir.Italic{Children: []ir.Element{text("a")}},
			}}},
		},
		{
			name:  "italic ending in bold",
			input: "*a **b***",
			want: []ir.Element{ir.Italic{Children: []ir.Element{
				text("a "),
				ir.Bold{Children: []ir.Element{text("b")}},
			}}},
		},
		{
			name:  "openers are not flanking checked",
			input: "x * a*",
			want:  []ir.Element{text("x "), ir.Italic{Children: []ir.Element{text(" a")}}},
		},
		{
			name:  "strikethrough",
			input: "~~gone~~ ~x",
			want: []ir.Element{
				ir.Strikethrough{Children: []ir.Element{text("gone")}},
				text(" ~x"),
			},
		},
		{
			name:  "code span is raw",
			input: "`*a*` and ` b `",
			want: []ir.Element{
				ir.Code{Content: "*a*"},
				text(" and "),
				ir.Code{Content: "b"},
			},
		},
		{
			name:  "code span closes at the first following backtick",
			input: "`a``b`",
			want:  []ir.Element{ir.Code{Content: "a"}, ir.Code{Content: "b"}},
		},
		{
			name:  "empty code span",
			input: "x``y",
			want:  []ir.Element{text("x"), ir.Code{}, text("y")},
		},
		{
			name:  "unterminated code span",
			input: "a `b",
			want:  []ir.Element{text("a `b")},
		},
		{
			name:  "delimiters inside code spans are inert",
			input: "*a `*` b*",
			want: []ir.Element{ir.Italic{Children: []ir.Element{
				text("a "),
				ir.Code{Content: "*"},
				text(" b"),
			}}},
		},
		{
			name:  "link with nested markup and title",
			input: `[a **b**](http://x.test/p "title")`,
			want: []ir.Element{ir.Link{URL: "http://x.test/p", Children: []ir.Element{
				text("a "),
				ir.Bold{Children: []ir.Element{text("b")}},
			}}},
		},
		{
			name:  "link with balanced brackets",
			input: "[a [b] `]`](<u (1)>)",
			want: []ir.Element{ir.Link{URL: "u (1)", Children: []ir.Element{
				text("a [b] "),
				ir.Code{Content: "]"},
			}}},
		},
		{
			name:  "bracket without destination",
			input: "[not a link] here",
			want:  []ir.Element{text("[not a link] here")},
		},
		{
			name:  "image",
			input: "![an *alt*](img.png)",
			want:  []ir.Element{ir.Image{URL: "img.png", Alt: "an alt"}},
		},
		{
			name:  "image without url falls through to a link",
			input: "![a]()",
			want:  []ir.Element{text("!"), ir.Link{Children: []ir.Element{text("a")}}},
		},
		{
			name:  "empty image falls through",
			input: "![]() x",
			want:  []ir.Element{text("!"), ir.Link{}, text(" x")},
		},
		{
			name:  "image with blank url falls through",
			input: "![a](  ) b",
			want:  []ir.Element{text("!"), ir.Link{Children: []ir.Element{text("a")}}, text(" b")},
		},
		{
			name:  "image link",
			input: "[![alt](i.png)](http://x.test)",
			want:  []ir.Element{ir.ImageLink{ImageURL: "i.png", Alt: "alt", LinkURL: "http://x.test"}},
		},
		{
			name:  "link containing image and text",
			input: "[![alt](i.png) more](u)",
			want: []ir.Element{ir.Link{URL: "u", Children: []ir.Element{
				ir.Image{URL: "i.png", Alt: "alt"},
				text(" more"),
			}}},
		},
		{
			name:  "footnote reference",
			input: "see[^note-1] and [^bad id]",
			want: []ir.Element{
				text("see"),
				ir.FootnoteReference{ID: "note-1"},
				text(" and [^bad id]"),
			},
		},
		{
			name:  "hard break marker",
			input: "a\nb",
			want:  []ir.Element{text("a"), ir.LineBreak{}, text("b")},
		},
		{
			name:  "unicode passes through",
			input: "héllo *wörld* ✓",
			want: []ir.Element{
				text("héllo "),
				ir.Italic{Children: []ir.Element{text("wörld")}},
				text(" ✓"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseInline(tt.input)
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("parseInline(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestFootnoteFirstDefinitionWins(t *testing.T) {
	doc := Parse("[^x]: first\n[^x]: second\n[^y]:  *why*")
	if len(doc.Children) != 0 {
		t.Errorf("definitions leaked into body: %v", doc.Children)
	}
	want := map[string]ir.FootnoteDefinition{
		"x": {ID: "x", Children: []ir.Element{text("first")}},
		"y": {ID: "y", Children: []ir.Element{ir.Italic{Children: []ir.Element{text("why")}}}},
	}
	if diff := cmp.Diff(want, doc.Footnotes); diff != "" {
		t.Errorf("footnotes mismatch (-want +got):\n%s", diff)
	}
}

func TestMalformedFenceDegradesToText(t *testing.T) {
	doc := Parse("```go\ncode\nmore")
	ir.Walk(doc.Children, func(e ir.Element) bool {
		if c, ok := e.(ir.Code); ok && c.IsBlock {
			t.Errorf("unexpected code block %+v", c)
		}
		return true
	})
	want := []ir.Element{para(text("```go code more"))}
	if diff := cmp.Diff(want, doc.Children); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseIsIdempotent(t *testing.T) {
	input := strings.Join([]string{
		"# Title[^1]",
		"",
		"Some **bold** and [link](u).",
		"",
		"| a | b |",
		"|:-:|---|",
		"| 1 | 2 |",
		"",
		"- [x] done",
		"1. first",
		"",
		"```sh",
		"echo hi",
		"```",
		"",
		"[^1]: note",
	}, "\n")

	first := Parse(input)
	second := New().Parse(input)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("re-parse differs (-first +second):\n%s", diff)
	}
}

func TestRoundTripPlainText(t *testing.T) {
	inputs := []string{
		"hello world",
		"first line\nsecond line\n\nnext paragraph",
		"numbers 1 2 3 and symbols like + = ?",
		"  leading and trailing spaces ",
	}
	for _, input := range inputs {
		var want []string
		for _, block := range strings.Split(input, "\n\n") {
			var parts []string
			for _, l := range strings.Split(block, "\n") {
				parts = append(parts, strings.TrimSpace(l))
			}
			want = append(want, strings.Join(parts, " "))
		}

		var got []string
		for _, block := range Parse(input).Children {
			p, ok := block.(ir.Paragraph)
			if !ok {
				t.Fatalf("Parse(%q): got %T, want paragraphs only", input, block)
			}
			got = append(got, ir.PlainText(p.Children))
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Parse(%q) text mismatch (-want +got):\n%s", input, diff)
		}
	}
}

func TestAppendBlocks(t *testing.T) {
	dst := []ir.Element{para(text("a"), ir.LineBreak{})}
	got := AppendBlocks(dst, []ir.Element{ir.HorizontalRule{}})
	want := []ir.Element{para(text("a")), ir.HorizontalRule{}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AppendBlocks mismatch (-want +got):\n%s", diff)
	}
	if _, ok := dst[0].(ir.Paragraph).Children[1].(ir.LineBreak); !ok {
		t.Errorf("AppendBlocks modified dst")
	}

	got = AppendBlocks(dst, []ir.Element{para(text("b"))})
	if len(got) != 2 {
		t.Errorf("got %d blocks, want 2", len(got))
	}
}

func TestSafeBoundary(t *testing.T) {
	tests := []struct {
		name  string
		input string
		rest  string // text after the boundary; "-" means no boundary
	}{
		{"no newline", "abc", "-"},
		{"no blank line", "a\nb\n", "-"},
		{"after paragraph", "a\n\nb", "b"},
		{"latest boundary wins", "a\n\nb\n\nc", "c"},
		{"blank line with spaces", "a\n  \nb", "b"},
		{"incomplete last line ignored", "a\n\nb\n", "b\n"},
		{"inside open fence", "p\n\n```\nx\n\ny", "```\nx\n\ny"},
		{"open fence only", "```\nx\n\n", "-"},
		{"after closed fence", "p\n\n```\nx\n\n```\n\nz", "z"},
		{"blank inside closed fence skipped", "```\nx\n\n```\ny", "-"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SafeBoundary(tt.input)
			if tt.rest == "-" {
				if got != -1 {
					t.Errorf("SafeBoundary(%q) = %d, want -1", tt.input, got)
				}
				return
			}
			if got < 0 {
				t.Fatalf("SafeBoundary(%q) = -1, want a boundary", tt.input)
			}
			if rest := tt.input[got:]; rest != tt.rest {
				t.Errorf("SafeBoundary(%q) leaves %q, want %q", tt.input, rest, tt.rest)
			}
		})
	}
}

func TestParseTableAbandonedOnPanic(t *testing.T) {
	orig := parseCell
	defer func() { parseCell = orig }()
	parseCell = func(string) []ir.Element { panic("boom") }

	assertBlocks(t, "| a |\n|---|\n| 1 |", []ir.Element{para(text("| a | |---| | 1 |"))})
}
