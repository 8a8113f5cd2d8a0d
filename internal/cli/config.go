package cli

import (
	"fmt"

	"github.com/ariel-frischer/termkeys/internal/config"
	clierrors "github.com/ariel-frischer/termkeys/internal/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect termkeys configuration",
		Long: `Inspect termkeys configuration.

Configuration is loaded with the following priority (highest to lowest):
  1. Command-line flags
  2. Environment variables (TERMKEYS_*)
  3. Config file (--config, or the user config file)
  4. Built-in defaults`,
		Example: `  # Show the effective configuration
  termkeys config show

  # Start a user config file
  termkeys config template > "$(termkeys config path)"`,
		Args:              noArgs,
		PersistentPreRunE: skipConfig(a),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration as YAML",
			Args:  noArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.loadConfig(cmd, args); err != nil {
					return err
				}
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				if err := enc.Encode(a.cfg); err != nil {
					return clierrors.Wrap(fmt.Errorf("encoding configuration: %w", err), clierrors.Runtime)
				}
				return enc.Close()
			},
		},
		&cobra.Command{
			Use:   "template",
			Short: "Print a commented default config file",
			Args:  noArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				fmt.Fprint(cmd.OutOrStdout(), config.GetDefaultConfigTemplate())
				return nil
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the user config file location",
			Args:  noArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				path, err := config.UserConfigPath()
				if err != nil {
					return clierrors.Wrap(err, clierrors.Configuration)
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			},
		},
	)

	return cmd
}
