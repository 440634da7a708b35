package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samsaffron/mdir/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage mdir configuration",
	Long: `View your mdir configuration.

Examples:
  mdir config                     # show effective config
  mdir config path                # print config file path
  mdir config init                # write defaults to the config file`,
	Args: cobra.NoArgs,
	RunE: configShow, // Default to show
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print configuration file path",
	Args:  cobra.NoArgs,
	RunE:  configPath,
}

var configInitForce bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the effective configuration to the config file",
	Args:  cobra.NoArgs,
	RunE:  configInit,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing config file")
}

func configShow(cmd *cobra.Command, args []string) error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	out, err := cfg.YAML()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if config.Exists() {
		fmt.Fprintf(w, "# %s\n", configPath)
	} else {
		fmt.Fprintf(w, "# %s (not found, showing defaults)\n", configPath)
	}
	fmt.Fprint(w, out)
	return nil
}

func configPath(cmd *cobra.Command, args []string) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func configInit(cmd *cobra.Command, args []string) error {
	if config.Exists() && !configInitForce {
		return fmt.Errorf("config file already exists (use --force to overwrite)")
	}
	if err := config.Save(cfg); err != nil {
		return err
	}
	path, _ := config.GetConfigPath()
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
