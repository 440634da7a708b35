// Package inspector is a full-screen viewer for parsed markdown. It shows
// either the rendered document or its IR outline and can jump between
// headings.
package inspector

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/samsaffron/mdir/internal/ir"
)

// CloseMsg signals that the inspector should be closed
type CloseMsg struct{}

// Config holds optional configuration for the inspector
type Config struct {
	Title  string
	Mode   Mode
	Accent lipgloss.Color // header background
	Muted  lipgloss.Color // footer text
}

// Model is the document inspector model
type Model struct {
	// Dimensions
	width  int
	height int

	// Content
	doc          ir.Document
	render       RenderFunc
	mode         Mode
	contentLines []string // Pre-rendered content split into lines
	totalLines   int
	headings     []Heading

	// Scroll state
	scrollY int

	// Heading search
	searching   bool
	searchInput textinput.Model
	matches     []int // indexes into headings, best first

	// Components
	keyMap KeyMap
	title  string
	accent lipgloss.Color
	muted  lipgloss.Color
}

// New creates a new inspector model. render draws the document in
// rendered mode; it is called again whenever the width changes.
func New(doc ir.Document, render RenderFunc, width, height int, cfg *Config) *Model {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "heading"
	ti.CharLimit = 100
	ti.Width = 30

	m := &Model{
		width:       width,
		height:      height,
		doc:         doc,
		render:      render,
		keyMap:      DefaultKeyMap(),
		searchInput: ti,
		title:       "mdir",
		accent:      lipgloss.Color("#504945"),
		muted:       lipgloss.Color("#928374"),
	}

	// Apply config if provided
	if cfg != nil {
		m.mode = cfg.Mode
		if cfg.Title != "" {
			m.title = cfg.Title
		}
		if cfg.Accent != "" {
			m.accent = cfg.Accent
		}
		if cfg.Muted != "" {
			m.muted = cfg.Muted
		}
	}

	m.renderContent()
	return m
}

// renderContent renders the document and splits into lines
func (m *Model) renderContent() {
	m.contentLines, m.headings = buildContent(m.doc, m.mode, m.width-2, m.render) // -2 for padding
	m.totalLines = len(m.contentLines)
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.searching {
			return m.handleSearchKey(msg)
		}
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.renderContent()
		// Adjust scroll if needed
		m.clampScroll()
	}

	return m, nil
}

// handleMouseMsg handles mouse input
func (m *Model) handleMouseMsg(msg tea.MouseMsg) (*Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scrollY -= 3
		m.clampScroll()
	case tea.MouseButtonWheelDown:
		m.scrollY += 3
		m.clampScroll()
	}
	return m, nil
}

// handleKeyMsg handles keyboard input
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, func() tea.Msg { return CloseMsg{} }

	case key.Matches(msg, m.keyMap.ScrollUp):
		m.scrollY--
		m.clampScroll()

	case key.Matches(msg, m.keyMap.ScrollDown):
		m.scrollY++
		m.clampScroll()

	case key.Matches(msg, m.keyMap.PageUp):
		m.scrollY -= m.viewportHeight()
		m.clampScroll()

	case key.Matches(msg, m.keyMap.PageDown):
		m.scrollY += m.viewportHeight()
		m.clampScroll()

	case key.Matches(msg, m.keyMap.HalfPageUp):
		m.scrollY -= m.viewportHeight() / 2
		m.clampScroll()

	case key.Matches(msg, m.keyMap.HalfPageDown):
		m.scrollY += m.viewportHeight() / 2
		m.clampScroll()

	case key.Matches(msg, m.keyMap.GoToTop):
		m.scrollY = 0

	case key.Matches(msg, m.keyMap.GoToBottom):
		m.scrollY = m.maxScroll()

	case key.Matches(msg, m.keyMap.ToggleMode):
		m.toggleMode()

	case key.Matches(msg, m.keyMap.NextHeading):
		m.jumpRelative(1)

	case key.Matches(msg, m.keyMap.PrevHeading):
		m.jumpRelative(-1)

	case key.Matches(msg, m.keyMap.Search):
		if len(m.headings) == 0 {
			return m, nil
		}
		m.searching = true
		m.searchInput.SetValue("")
		m.matches = FilterHeadings(m.headings, "")
		return m, m.searchInput.Focus()
	}

	return m, nil
}

// handleSearchKey routes input to the heading search box
func (m *Model) handleSearchKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Cancel):
		m.stopSearch()
		return m, nil

	case key.Matches(msg, m.keyMap.Accept):
		if len(m.matches) > 0 {
			m.jumpTo(m.matches[0])
		}
		m.stopSearch()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.matches = FilterHeadings(m.headings, m.searchInput.Value())
	return m, cmd
}

func (m *Model) stopSearch() {
	m.searching = false
	m.searchInput.Blur()
	m.matches = nil
}

// toggleMode switches between rendered and tree views, keeping the
// heading nearest the top of the viewport in view.
func (m *Model) toggleMode() {
	current := m.currentHeading()
	if m.mode == ModeRendered {
		m.mode = ModeTree
	} else {
		m.mode = ModeRendered
	}
	m.renderContent()
	if current >= 0 {
		m.jumpTo(current)
		return
	}
	m.clampScroll()
}

// currentHeading returns the index of the last heading at or above the
// top of the viewport, or -1.
func (m *Model) currentHeading() int {
	idx := -1
	for i, h := range m.headings {
		if h.Line >= 0 && h.Line <= m.scrollY {
			idx = i
		}
	}
	return idx
}

func (m *Model) jumpRelative(delta int) {
	for i := range m.headings {
		idx := i
		if delta < 0 {
			idx = len(m.headings) - 1 - i
		}
		line := m.headings[idx].Line
		if line < 0 {
			continue
		}
		if (delta > 0 && line > m.scrollY) || (delta < 0 && line < m.scrollY) {
			m.scrollY = line
			m.clampScroll()
			return
		}
	}
}

func (m *Model) jumpTo(idx int) {
	if idx < 0 || idx >= len(m.headings) || m.headings[idx].Line < 0 {
		return
	}
	m.scrollY = m.headings[idx].Line
	m.clampScroll()
}

// viewportHeight returns the available height for content
func (m *Model) viewportHeight() int {
	// Reserve 3 lines for header and footer
	// Clamp to at least 1 to avoid invalid slice bounds on very small terminals
	return max(1, m.height-3)
}

// maxScroll returns the maximum scroll position
func (m *Model) maxScroll() int {
	return max(0, m.totalLines-m.viewportHeight())
}

// clampScroll ensures scroll is within bounds
func (m *Model) clampScroll() {
	m.scrollY = min(max(m.scrollY, 0), m.maxScroll())
}

// View renders the model
func (m *Model) View() string {
	var b strings.Builder

	// Header
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Background(m.accent).
		Padding(0, 1).
		Width(m.width)

	blocks := len(m.doc.Children)
	title := fmt.Sprintf("%s (%d blocks, %s)", m.title, blocks, m.mode)
	if blocks == 1 {
		title = fmt.Sprintf("%s (1 block, %s)", m.title, m.mode)
	}

	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n")

	// Content viewport
	vpHeight := m.viewportHeight()
	endIdx := min(m.scrollY+vpHeight, m.totalLines)
	startIdx := min(m.scrollY, endIdx)

	visibleLines := m.contentLines[startIdx:endIdx]
	content := strings.Join(visibleLines, "\n")

	// Pad content to fill viewport
	if lineCount := len(visibleLines); lineCount < vpHeight {
		content += strings.Repeat("\n", vpHeight-lineCount)
	}

	b.WriteString(content)
	b.WriteString("\n")

	footerStyle := lipgloss.NewStyle().Foreground(m.muted)
	if m.searching {
		footer := m.searchInput.View()
		if len(m.matches) > 0 {
			footer += "  → " + m.headings[m.matches[0]].Text
		} else {
			footer += "  no match"
		}
		b.WriteString(footerStyle.Render(footer))
		return b.String()
	}

	// Scroll indicator
	scrollInfo := ""
	if m.totalLines > vpHeight {
		pct := 0
		if m.maxScroll() > 0 {
			pct = (m.scrollY * 100) / m.maxScroll()
		}
		scrollInfo = fmt.Sprintf("%d-%d/%d (%d%%)", m.scrollY+1, endIdx, m.totalLines, pct)
	}

	// Help text (plain, no styling that could interfere with width calc)
	help := "q:close  j/k:scroll  t:tree  n/N:heading  /:jump"

	// Combine footer with manual padding
	padding := max(1, m.width-len(scrollInfo)-len(help))
	footer := scrollInfo + strings.Repeat(" ", padding) + help
	b.WriteString(footerStyle.Render(footer))

	return b.String()
}
