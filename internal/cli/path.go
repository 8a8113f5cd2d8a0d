package cli

import (
	"fmt"

	"github.com/ariel-frischer/termkeys/internal/output"
	"github.com/ariel-frischer/termkeys/internal/settings"
	"github.com/spf13/cobra"
)

func newPathCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the settings file termkeys would modify",
		Long: `Print the resolved Windows Terminal settings.json path.

The path comes from --settings, TERMKEYS_SETTINGS_PATH or the config file,
and otherwise from the default location of the selected --variant.
A warning is printed to stderr when the file does not exist.`,
		Example: `  termkeys path
  termkeys path --variant preview`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := a.settingsPath()
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), path)

			if _, err := settings.Locate(path); err != nil {
				stderr := cmd.ErrOrStderr()
				output.NewPrinter(stderr, capabilitiesOf(stderr)).PrintWarning("%s does not exist", path)
			}
			return nil
		},
	}
}
