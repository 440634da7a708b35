package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/samsaffron/mdir/internal/input"
	"github.com/samsaffron/mdir/internal/ir"
	"github.com/samsaffron/mdir/internal/parser"
	termrender "github.com/samsaffron/mdir/internal/render/term"
	"github.com/samsaffron/mdir/internal/tui/inspector"
)

var viewTree bool

var viewCmd = &cobra.Command{
	Use:   "view [file]",
	Short: "Browse a document in a full-screen viewer",
	Long: `Open a parsed document in a scrollable viewer. Toggle between the
rendered document and its intermediate tree with t, jump between headings
with n/N, or search headings with /.

Examples:
  mdir view README.md
  mdir view README.md --tree`,
	Args: cobra.MaximumNArgs(1),
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
	viewCmd.Flags().BoolVar(&viewTree, "tree", false, "Start in tree mode")
}

// inspectorProgram adapts the inspector to tea.Model and quits on close.
type inspectorProgram struct {
	m *inspector.Model
}

func (p inspectorProgram) Init() tea.Cmd { return p.m.Init() }

func (p inspectorProgram) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(inspector.CloseMsg); ok {
		return p, tea.Quit
	}
	m, cmd := p.m.Update(msg)
	p.m = m
	return p, cmd
}

func (p inspectorProgram) View() string { return p.m.View() }

func runView(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("view needs a terminal; use render instead")
	}

	files, err := readInputs(args)
	if err != nil {
		return err
	}
	doc := parser.New(parser.WithLogger(logger)).Parse(files[0].Content)

	rc := cfg.Render
	render := func(doc ir.Document, width int) string {
		rc.Width = width
		return newTermRenderer(rc).Render(doc)
	}

	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		width, height = termrender.DefaultWidth, 24
	}

	icfg := &inspector.Config{Title: files[0].Path}
	if viewTree {
		icfg.Mode = inspector.ModeTree
	}
	if rc.Theme.Muted != "" {
		icfg.Muted = lipgloss.Color(rc.Theme.Muted)
	}

	m := inspector.New(doc, render, width, height, icfg)
	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}
	if files[0].Path == input.StdinPath {
		// Stdin carried the document; keys come from the terminal.
		opts = append(opts, tea.WithInputTTY())
	}
	_, err = tea.NewProgram(inspectorProgram{m: m}, opts...).Run()
	return err
}
