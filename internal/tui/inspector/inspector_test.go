package inspector

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"

	"github.com/samsaffron/mdir/internal/ir"
	"github.com/samsaffron/mdir/internal/parser"
	"github.com/samsaffron/mdir/internal/render/term"
)

func plainRender(doc ir.Document, width int) string {
	return term.New(term.WithColorProfile(termenv.Ascii), term.WithWidth(width)).Render(doc)
}

func longDoc() ir.Document {
	var sb strings.Builder
	for _, title := range []string{"Alpha", "Beta", "Zeta"} {
		fmt.Fprintf(&sb, "## %s\n\n", title)
		for i := 0; i < 20; i++ {
			fmt.Fprintf(&sb, "%s paragraph %d\n\n", title, i)
		}
	}
	return parser.Parse(sb.String())
}

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNew(t *testing.T) {
	m := New(parser.Parse("# Title\n\nbody"), plainRender, 80, 24, &Config{Title: "doc.md"})

	if m.width != 80 || m.height != 24 {
		t.Errorf("unexpected size %dx%d", m.width, m.height)
	}
	if len(m.headings) != 1 || m.headings[0].Text != "Title" || m.headings[0].Line != 0 {
		t.Errorf("unexpected headings %+v", m.headings)
	}
	if !strings.Contains(m.View(), "doc.md (2 blocks, rendered)") {
		t.Errorf("View() missing header:\n%s", m.View())
	}
}

func TestScrolling(t *testing.T) {
	m := New(longDoc(), plainRender, 80, 24, nil)

	// Should start at top
	if m.scrollY != 0 {
		t.Errorf("expected scrollY 0, got %d", m.scrollY)
	}

	m, _ = m.Update(keys("j"))
	if m.scrollY != 1 {
		t.Errorf("expected scrollY 1 after scrolling down, got %d", m.scrollY)
	}

	m, _ = m.Update(keys("k"))
	if m.scrollY != 0 {
		t.Errorf("expected scrollY 0 after scrolling up, got %d", m.scrollY)
	}

	m, _ = m.Update(keys("G"))
	if m.scrollY != m.maxScroll() {
		t.Errorf("expected scrollY %d (maxScroll) after G, got %d", m.maxScroll(), m.scrollY)
	}

	m, _ = m.Update(keys("g"))
	if m.scrollY != 0 {
		t.Errorf("expected scrollY 0 after g, got %d", m.scrollY)
	}
}

func TestHeadingNavigation(t *testing.T) {
	m := New(longDoc(), plainRender, 80, 24, nil)
	beta := m.headings[1].Line
	if beta <= 0 {
		t.Fatalf("Beta heading not located: %+v", m.headings)
	}

	m, _ = m.Update(keys("n"))
	if m.scrollY != beta {
		t.Errorf("n: scrollY = %d, want %d", m.scrollY, beta)
	}
	if got := strings.TrimSpace(m.contentLines[m.scrollY]); got != "## Beta" {
		t.Errorf("line at scroll = %q", got)
	}

	m, _ = m.Update(keys("N"))
	if m.scrollY != 0 {
		t.Errorf("N: scrollY = %d, want 0", m.scrollY)
	}
}

func TestHeadingSearch(t *testing.T) {
	m := New(longDoc(), plainRender, 80, 24, nil)
	zeta := m.headings[2].Line

	m, _ = m.Update(keys("/"))
	if !m.searching {
		t.Fatal("expected search mode after /")
	}
	m, _ = m.Update(keys("zt"))
	if len(m.matches) == 0 || m.headings[m.matches[0]].Text != "Zeta" {
		t.Fatalf("expected Zeta as best match, got %v", m.matches)
	}
	if !strings.Contains(m.View(), "→ Zeta") {
		t.Errorf("search footer missing match:\n%s", m.View())
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.searching {
		t.Error("search should end on enter")
	}
	if want := min(zeta, m.maxScroll()); m.scrollY != want {
		t.Errorf("scrollY = %d, want %d", m.scrollY, want)
	}
}

func TestSearchCancelKeepsPosition(t *testing.T) {
	m := New(longDoc(), plainRender, 80, 24, nil)
	m, _ = m.Update(keys("/"))
	m, _ = m.Update(keys("beta"))
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.searching || m.scrollY != 0 {
		t.Errorf("esc should cancel search without moving: searching=%v scrollY=%d", m.searching, m.scrollY)
	}
	if cmd != nil {
		t.Error("esc in search mode should not close the inspector")
	}
}

func TestToggleMode(t *testing.T) {
	m := New(longDoc(), plainRender, 80, 24, nil)
	m, _ = m.Update(keys("n"))

	m, _ = m.Update(keys("t"))
	if m.mode != ModeTree {
		t.Fatalf("mode = %v, want tree", m.mode)
	}
	if m.contentLines[0] != "document" {
		t.Errorf("tree content starts with %q", m.contentLines[0])
	}
	if got := strings.TrimSpace(m.contentLines[m.scrollY]); got != "header level=2" {
		t.Errorf("toggle should keep the current heading in view, top line %q", got)
	}
}

func TestFilterHeadings(t *testing.T) {
	hs := []Heading{{Text: "Install"}, {Text: "Usage"}, {Text: "License"}}
	if got := FilterHeadings(hs, ""); len(got) != 3 || got[0] != 0 || got[2] != 2 {
		t.Errorf("empty query = %v", got)
	}
	got := FilterHeadings(hs, "lic")
	if len(got) != 1 || got[0] != 2 {
		t.Errorf("FilterHeadings(lic) = %v", got)
	}
}

func TestQuit(t *testing.T) {
	m := New(parser.Parse("Test"), plainRender, 80, 24, nil)

	_, cmd := m.Update(keys("q"))
	if cmd == nil {
		t.Fatal("expected non-nil command from q key")
	}
	if _, ok := cmd().(CloseMsg); !ok {
		t.Errorf("expected CloseMsg")
	}
}

func TestViewOnTinyTerminal(t *testing.T) {
	m := New(longDoc(), plainRender, 10, 2, nil)
	if m.View() == "" {
		t.Error("View() returned empty string")
	}
}
