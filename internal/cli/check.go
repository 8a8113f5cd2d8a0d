package cli

import (
	"github.com/spf13/cobra"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report whether the keybindings are present without writing",
		Long: `Check whether ctrl+. and ctrl+, are already bound in settings.json.
The file is never written.

Exit codes:
  0 - Both keybindings are present
  1 - At least one keybinding is missing
  2 - Settings file not found
  3 - Settings file could not be parsed`,
		Example: `  # Use in scripts
  termkeys check || termkeys apply

  # YAML report
  termkeys check -o yaml`,
		Args: noArgs,
		RunE: a.runCheck,
	}
}

func (a *app) runCheck(cmd *cobra.Command, _ []string) error {
	path, err := a.settingsPath()
	if err != nil {
		return err
	}

	result, err := a.newMerger(path, true).Run(cmd.Context())
	if err != nil {
		return err
	}

	if err := a.report(cmd, result); err != nil {
		return err
	}

	if result.Changed {
		return errChangesNeeded
	}
	return nil
}
