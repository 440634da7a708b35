package cmd

import (
	"github.com/spf13/cobra"

	"github.com/samsaffron/mdir/internal/config"
)

// AddWidthFlag adds the --width/-w flag
func AddWidthFlag(cmd *cobra.Command, dest *int) {
	cmd.Flags().IntVarP(dest, "width", "w", 0, "Wrap width (default: config, then terminal width)")
}

// AddEngineFlag adds the --engine/-e flag with completion
func AddEngineFlag(cmd *cobra.Command, dest *string) {
	cmd.Flags().StringVarP(dest, "engine", "e", "", "Renderer: native, glamour or html")
	if err := cmd.RegisterFlagCompletionFunc("engine", fixedCompletion(config.Engines...)); err != nil {
		panic("failed to register engine completion: " + err.Error())
	}
}

// AddFormatFlag adds the --format/-f flag with completion
func AddFormatFlag(cmd *cobra.Command, dest *string) {
	cmd.Flags().StringVarP(dest, "format", "f", "", "Dump format: yaml, json or tree")
	if err := cmd.RegisterFlagCompletionFunc("format", fixedCompletion("yaml", "json", "tree")); err != nil {
		panic("failed to register format completion: " + err.Error())
	}
}
