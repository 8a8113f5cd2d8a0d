package cli

import (
	"errors"
	"io"
	"os"

	"github.com/ariel-frischer/termkeys/internal/config"
	clierrors "github.com/ariel-frischer/termkeys/internal/errors"
	"github.com/ariel-frischer/termkeys/internal/output"
	"github.com/ariel-frischer/termkeys/internal/settings"
	"github.com/spf13/cobra"
)

func newApplyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "apply",
		Short: "Add the font-size keybindings if they are missing (default)",
		Long: `Add the font-size keybindings to Windows Terminal's settings.json.

The file is read, whole-line // comments are dropped, and the keybindings
list is created if absent. ctrl+. and ctrl+, are appended only when no
existing binding uses those chords. Nothing is written when both are
already bound.

When the file is rewritten it is written to a temporary file first and
renamed into place, so a failed save leaves the previous content intact.
Whole-line comments are not preserved in a rewritten file.

Exit codes:
  0 - Keybindings present
  2 - Settings file not found
  3 - Settings file could not be parsed
  4 - Settings file could not be written (unless fail_on_write_error is false)`,
		Example: `  # Apply to the default install
  termkeys apply

  # Apply to Windows Terminal Preview
  termkeys apply --variant preview

  # Machine-readable report
  termkeys apply --output json`,
		Args: noArgs,
		RunE: a.runApply,
	}
}

func (a *app) runApply(cmd *cobra.Command, _ []string) error {
	a.pause = a.cfg.Pause

	path, err := a.settingsPath()
	if err != nil {
		return err
	}

	result, err := a.newMerger(path, a.cfg.DryRun).Run(cmd.Context())
	if err != nil {
		if errors.Is(err, settings.ErrWrite) && !a.cfg.FailOnWriteError {
			clierrors.FprintError(cmd.ErrOrStderr(), toCLIError(err))
			return nil
		}
		return err
	}

	return a.report(cmd, result)
}

// settingsPath resolves the settings file from the configuration.
func (a *app) settingsPath() (string, error) {
	path, err := a.cfg.ResolveSettingsPath()
	if err != nil {
		if errors.Is(err, config.ErrUnsupportedPlatform) {
			return "", clierrors.UnsupportedPlatform(err)
		}
		return "", clierrors.NewConfigError(err.Error(),
			"Set the variant to stable, preview or unpackaged",
			"Or pass the path explicitly: termkeys --settings <path>")
	}
	return path, nil
}

func (a *app) newMerger(path string, dryRun bool) *settings.Merger {
	return settings.NewMerger(path,
		settings.WithDryRun(dryRun),
		settings.WithBackup(a.cfg.Backup),
		settings.WithIndent(a.cfg.IndentString()),
	)
}

// report writes the result in the configured format.
func (a *app) report(cmd *cobra.Command, result *settings.Result) error {
	out := cmd.OutOrStdout()
	printer := output.NewPrinter(out, capabilitiesOf(out))
	if err := output.WriteReport(out, a.cfg.Output, printer, result); err != nil {
		return clierrors.Wrap(err, clierrors.Runtime)
	}
	return nil
}

// capabilitiesOf detects terminal support when w is a file.
func capabilitiesOf(w io.Writer) output.Capabilities {
	if f, ok := w.(*os.File); ok {
		return output.DetectCapabilities(f)
	}
	return output.Capabilities{}
}
