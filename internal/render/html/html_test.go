package html

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/samsaffron/mdir/internal/ir"
	"github.com/samsaffron/mdir/internal/parser"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"header", "# Title", "<h1>Title</h1>"},
		{"paragraph", "hello **world**", "<p>hello <strong>world</strong></p>"},
		{"escaping", "a < b & c", "<p>a &lt; b &amp; c</p>"},
		{"nested list", "- a\n  - b\n- c", "<ul><li>a<ul><li>b</li></ul></li><li>c</li></ul>"},
		{"ordered start", "3. x\n4. y", `<ol start="3"><li>x</li><li>y</li></ol>`},
		{"task", "- [x] done", `<ul><li class="task-list-item"><input type="checkbox" disabled="" checked=""/> done</li></ul>`},
		{"code block", "```go\nx := 1\n```", "<pre><code class=\"language-go\">x := 1\n</code></pre>"},
		{"quote", "> q", "<blockquote><p>q</p></blockquote>"},
		{"rule", "---", "<hr/>"},
		{"definition list", "Term\n: meaning", "<dl><dt>Term</dt><dd>meaning</dd></dl>"},
		{"link", "[d](http://x.test)", `<p><a href="http://x.test">d</a></p>`},
		{"image", "![alt](i.png)", `<p><img src="i.png" alt="alt"/></p>`},
		{"strike and code", "~~old~~ `new`", "<p><del>old</del> <code>new</code></p>"},
		{
			"table",
			"| a | b |\n|:---:|---:|\n| 1 | 2 |",
			`<table><thead><tr><th style="text-align:center">a</th><th style="text-align:right">b</th></tr></thead>` +
				`<tbody><tr><td style="text-align:center">1</td><td style="text-align:right">2</td></tr></tbody></table>`,
		},
	}

	r := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Render(parser.Parse(tt.src))
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			if diff := cmp.Diff(tt.want+"\n", got); diff != "" {
				t.Errorf("Render(%q) mismatch (-want +got):\n%s", tt.src, diff)
			}
		})
	}
}

func TestRenderFootnotes(t *testing.T) {
	got, err := New().Render(parser.Parse("A[^n] B[^n]\n\n[^n]: note\n[^x]: unused"))
	if err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		`<p>A<sup class="footnote-ref"><a href="#fn:1" id="fnref:1">1</a></sup>` +
			` B<sup class="footnote-ref"><a href="#fn:1">1</a></sup></p>`,
		`<section class="footnotes"><ol><li id="fn:1">note <a href="#fnref:1" class="footnote-backref">↩</a></li></ol></section>`,
		"",
	}, "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderPanicsOnUnknownInline(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for paragraph nested inline")
		}
	}()
	New().Render(ir.Document{Children: []ir.Element{
		ir.Paragraph{Children: []ir.Element{ir.Paragraph{}}},
	}})
}
