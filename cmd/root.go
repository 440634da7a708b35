package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/samsaffron/mdir/internal/config"
	"github.com/samsaffron/mdir/internal/logging"
)

// Version is set at build time.
var Version = "dev"

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Diagnostics on stderr: none, normal or debug")
	if err := rootCmd.RegisterFlagCompletionFunc("log-level", fixedCompletion(logging.LevelNone, logging.LevelNormal, logging.LevelDebug)); err != nil {
		panic("failed to register log-level completion: " + err.Error())
	}
}

var rootCmd = &cobra.Command{
	Use:   "mdir",
	Short: "Parse markdown into a typed intermediate tree",
	Long: `mdir parses markdown (including LLM output) into an intermediate
representation and renders or inspects it.

Examples:
  mdir parse README.md                  # dump the tree as YAML
  mdir parse 'docs/**/*.md' -f tree     # many files, outline format
  mdir render README.md:1-40            # render a line range in the terminal
  cat answer.md | mdir stream           # print blocks as they complete
  mdir compare README.md --diff         # compare against goldmark

  mdir config                           # view configuration`,
	Version:           Version,
	SilenceUsage:      true,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

var (
	logLevel string

	cfg    *config.Config
	logger = zap.NewNop()
)

// setup loads configuration and builds the logger before any subcommand
// runs.
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load()
	if err != nil {
		return err
	}
	loaded.ApplyOverrides("", 0, "", logLevel)
	cfg = loaded

	logger, err = logging.New(cfg.Log.Level)
	if err != nil {
		return err
	}
	logger.Debug("configuration loaded", zap.String("engine", cfg.Render.Engine), zap.Int("width", cfg.Render.Width))
	return nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func fixedCompletion(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}
