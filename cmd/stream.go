package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/samsaffron/mdir/internal/dump"
	"github.com/samsaffron/mdir/internal/ir"
	"github.com/samsaffron/mdir/internal/parser"
	"github.com/samsaffron/mdir/internal/stream"
)

var (
	streamRender bool
	streamWidth  int
)

var streamCmd = &cobra.Command{
	Use:   "stream",
	Short: "Parse markdown from stdin as it arrives",
	Long: `Read markdown from stdin incrementally, the way an LLM response
arrives, and print each block as soon as it can no longer change.

Examples:
  llm-tool ask "explain tcp" | mdir stream
  cat README.md | mdir stream --render`,
	Args: cobra.NoArgs,
	RunE: runStream,
}

func init() {
	rootCmd.AddCommand(streamCmd)
	streamCmd.Flags().BoolVarP(&streamRender, "render", "r", false, "Render blocks in the terminal instead of dumping them")
	AddWidthFlag(streamCmd, &streamWidth)
}

func runStream(cmd *cobra.Command, args []string) error {
	cfg.ApplyOverrides("", streamWidth, "", "")
	out := cmd.OutOrStdout()

	var emit func(ir.Element) error
	if streamRender {
		r := newTermRenderer(cfg.Render)
		first := true
		emit = func(e ir.Element) error {
			sep := "\n"
			if first {
				sep = ""
				first = false
			}
			_, err := fmt.Fprintf(out, "%s%s\n", sep, r.Render(ir.Document{Children: []ir.Element{e}}))
			return err
		}
	} else {
		emit = func(e ir.Element) error {
			_, err := io.WriteString(out, dump.Line(e, 0))
			return err
		}
	}

	var writeErr error
	sp := stream.New(
		stream.WithParser(parser.New(parser.WithLogger(logger))),
		stream.WithLogger(logger),
		stream.OnElement(func(e ir.Element) {
			if writeErr == nil {
				writeErr = emit(e)
			}
		}),
	)

	n, err := io.Copy(sp, os.Stdin)
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}
	tail := sp.Buffered()
	doc, err := sp.Close()
	if err != nil {
		return err
	}
	logger.Debug("stream finished",
		zap.Int64("bytes", n),
		zap.Int("tail_bytes", tail),
		zap.Int("blocks", len(doc.Children)))
	if writeErr != nil {
		return writeErr
	}

	// Definitions are only complete once the input ends.
	ids := make([]string, 0, len(doc.Footnotes))
	for id := range doc.Footnotes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if err := emit(doc.Footnotes[id]); err != nil {
			return err
		}
	}
	return nil
}
