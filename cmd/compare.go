package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/samsaffron/mdir/internal/parity"
)

var compareDiff bool

var compareCmd = &cobra.Command{
	Use:   "compare [files...]",
	Short: "Compare parsed block shapes against goldmark",
	Long: `Count headings, code blocks, tables, list items, quotes, rules and
definition terms in the intermediate tree and in goldmark's AST, and report
where they disagree. Exits non-zero when any file mismatches.

Examples:
  mdir compare README.md
  mdir compare 'docs/**/*.md'
  mdir compare notes.md --diff    # also show a normalized HTML diff`,
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
	compareCmd.Flags().BoolVar(&compareDiff, "diff", false, "Show a unified diff of normalized HTML output")
}

func runCompare(cmd *cobra.Command, args []string) error {
	files, readErr := readInputs(args)
	if files == nil && readErr != nil {
		return readErr
	}

	checker := parity.New(parity.WithLogger(logger))
	out := cmd.OutOrStdout()
	mismatched := 0
	var errs error
	for _, f := range files {
		report := checker.Compare(f.Content)
		if report.OK() {
			fmt.Fprintf(out, "ok    %s\n", f.Path)
		} else {
			mismatched++
			fmt.Fprintf(out, "FAIL  %s\n", f.Path)
			for _, m := range report.Mismatches {
				fmt.Fprintf(out, "      %s\n", m)
			}
		}

		if compareDiff {
			diff, err := checker.HTMLDiff(f.Path, f.Content)
			if err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			if diff != "" {
				fmt.Fprintln(out, diff)
			}
		}
	}

	errs = multierr.Append(readErr, errs)
	if mismatched > 0 {
		errs = multierr.Append(errs, fmt.Errorf("%d of %d files differ from goldmark", mismatched, len(files)))
	}
	return errs
}
