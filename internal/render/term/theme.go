package term

import (
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette for terminal output
type Theme struct {
	Heading  lipgloss.Color // headers
	Strong   lipgloss.Color // bold text, list markers
	Emphasis lipgloss.Color // italic text, quotes
	Code     lipgloss.Color // code spans
	Link     lipgloss.Color // link text and urls
	Muted    lipgloss.Color // rules, footnote markers, image captions
	Text     lipgloss.Color // primary text
	Border   lipgloss.Color // table borders
}

// DefaultTheme returns the default color theme (gruvbox)
func DefaultTheme() *Theme {
	return &Theme{
		Heading:  lipgloss.Color("#83a598"), // gruvbox aqua
		Strong:   lipgloss.Color("#b8bb26"), // gruvbox green
		Emphasis: lipgloss.Color("#fabd2f"), // gruvbox yellow
		Code:     lipgloss.Color("#b8bb26"),
		Link:     lipgloss.Color("#83a598"),
		Muted:    lipgloss.Color("#928374"), // gruvbox gray
		Text:     lipgloss.Color("#ebdbb2"), // gruvbox foreground
		Border:   lipgloss.Color("#83a598"),
	}
}

// ThemeConfig mirrors config.ThemeConfig for applying overrides
type ThemeConfig struct {
	Heading  string
	Strong   string
	Emphasis string
	Code     string
	Link     string
	Muted    string
	Text     string
}

// ThemeFromConfig creates a theme with config overrides applied
func ThemeFromConfig(cfg ThemeConfig) *Theme {
	theme := DefaultTheme()

	if cfg.Heading != "" {
		theme.Heading = lipgloss.Color(cfg.Heading)
		theme.Border = lipgloss.Color(cfg.Heading) // border follows headings
	}
	if cfg.Strong != "" {
		theme.Strong = lipgloss.Color(cfg.Strong)
	}
	if cfg.Emphasis != "" {
		theme.Emphasis = lipgloss.Color(cfg.Emphasis)
	}
	if cfg.Code != "" {
		theme.Code = lipgloss.Color(cfg.Code)
	}
	if cfg.Link != "" {
		theme.Link = lipgloss.Color(cfg.Link)
	}
	if cfg.Muted != "" {
		theme.Muted = lipgloss.Color(cfg.Muted)
	}
	if cfg.Text != "" {
		theme.Text = lipgloss.Color(cfg.Text)
	}

	return theme
}

// styles holds the lipgloss styles derived from a theme.
type styles struct {
	heading     lipgloss.Style
	strong      lipgloss.Style
	emphasis    lipgloss.Style
	strike      lipgloss.Style
	code        lipgloss.Style
	link        lipgloss.Style
	quote       lipgloss.Style
	quoteBar    lipgloss.Style
	muted       lipgloss.Style
	marker      lipgloss.Style
	tableHeader lipgloss.Style
	border      lipgloss.Style
}

func newStyles(r *lipgloss.Renderer, t *Theme) styles {
	return styles{
		heading:     r.NewStyle().Foreground(t.Heading).Bold(true),
		strong:      r.NewStyle().Foreground(t.Strong).Bold(true),
		emphasis:    r.NewStyle().Foreground(t.Emphasis).Italic(true),
		strike:      r.NewStyle().Strikethrough(true),
		code:        r.NewStyle().Foreground(t.Code),
		link:        r.NewStyle().Foreground(t.Link).Underline(true),
		quote:       r.NewStyle().Foreground(t.Emphasis).Italic(true),
		quoteBar:    r.NewStyle().Foreground(t.Muted),
		muted:       r.NewStyle().Foreground(t.Muted),
		marker:      r.NewStyle().Foreground(t.Strong),
		tableHeader: r.NewStyle().Foreground(t.Heading).Bold(true),
		border:      r.NewStyle().Foreground(t.Border),
	}
}

// glamourStyle creates a glamour StyleConfig matching the theme, used by
// the reference renderer.
func glamourStyle(theme *Theme) ansi.StyleConfig {
	heading := string(theme.Heading)
	strong := string(theme.Strong)
	emphasis := string(theme.Emphasis)
	code := string(theme.Code)
	link := string(theme.Link)
	muted := string(theme.Muted)
	text := string(theme.Text)

	return ansi.StyleConfig{
		Document: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Color: &text,
			},
			Margin: uintPtr(0),
		},
		BlockQuote: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Color:  &emphasis,
				Italic: boolPtr(true),
			},
			Indent:      uintPtr(1),
			IndentToken: stringPtr("│ "),
		},
		List: ansi.StyleList{
			LevelIndent: 2,
		},
		Heading: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				BlockSuffix: "\n",
				Color:       &heading,
				Bold:        boolPtr(true),
			},
		},
		H1: ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Prefix: "# "}},
		H2: ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Prefix: "## "}},
		H3: ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Prefix: "### "}},
		H4: ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Prefix: "#### "}},
		H5: ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Prefix: "##### "}},
		H6: ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Prefix: "###### "}},
		Strikethrough: ansi.StylePrimitive{
			CrossedOut: boolPtr(true),
		},
		Emph: ansi.StylePrimitive{
			Color:  &emphasis,
			Italic: boolPtr(true),
		},
		Strong: ansi.StylePrimitive{
			Color: &strong,
			Bold:  boolPtr(true),
		},
		HorizontalRule: ansi.StylePrimitive{
			Color:  &muted,
			Format: "\n--------\n",
		},
		Item: ansi.StylePrimitive{
			BlockPrefix: "• ",
		},
		Enumeration: ansi.StylePrimitive{
			BlockPrefix: ". ",
		},
		Task: ansi.StyleTask{
			Ticked:   "[✓] ",
			Unticked: "[ ] ",
		},
		Link: ansi.StylePrimitive{
			Color:     &link,
			Underline: boolPtr(true),
		},
		LinkText: ansi.StylePrimitive{
			Color: &link,
		},
		Image: ansi.StylePrimitive{
			Color:     &link,
			Underline: boolPtr(true),
		},
		ImageText: ansi.StylePrimitive{
			Color:  &muted,
			Format: "Image: {{.text}} →",
		},
		Code: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Color: &code,
			},
		},
		CodeBlock: ansi.StyleCodeBlock{
			StyleBlock: ansi.StyleBlock{
				StylePrimitive: ansi.StylePrimitive{
					Color: &text,
				},
				Margin: uintPtr(2),
			},
		},
		Table: ansi.StyleTable{
			CenterSeparator: stringPtr("┼"),
			ColumnSeparator: stringPtr("│"),
			RowSeparator:    stringPtr("─"),
		},
		DefinitionDescription: ansi.StylePrimitive{
			BlockPrefix: "\n: ",
		},
	}
}

func boolPtr(b bool) *bool {
	return &b
}

func uintPtr(u uint) *uint {
	return &u
}

func stringPtr(s string) *string {
	return &s
}
