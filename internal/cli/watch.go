package cli

import (
	"context"
	"errors"

	clierrors "github.com/ariel-frischer/termkeys/internal/errors"
	"github.com/ariel-frischer/termkeys/internal/output"
	"github.com/ariel-frischer/termkeys/internal/settings"
	"github.com/ariel-frischer/termkeys/internal/watch"
	"github.com/spf13/cobra"
)

func newWatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep the keybindings in place while Windows Terminal rewrites its settings",
		Long: `Apply once, then re-apply whenever settings.json changes.

Windows Terminal rewrites settings.json when settings are changed through
its UI. watch notices each rewrite and adds the keybindings back after a
short quiet period. Parse errors are reported and watching continues, since
the file is often saved mid-edit. Press Ctrl+C to stop.`,
		Example: `  # Watch the default install
  termkeys watch

  # Wait two seconds after the last change
  termkeys watch --debounce 2s`,
		Args: noArgs,
		RunE: a.runWatch,
	}

	cmd.Flags().StringVar(&a.flags.debounce, "debounce", "", "Quiet period after a change before re-applying (e.g. 500ms, 2s)")
	return cmd
}

func (a *app) runWatch(cmd *cobra.Command, _ []string) error {
	path, err := a.settingsPath()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	caps := capabilitiesOf(out)
	merger := a.newMerger(path, a.cfg.DryRun)

	first := true
	run := func(ctx context.Context) error {
		result, err := merger.Run(ctx)
		if err != nil {
			return err
		}
		if !first && !result.Changed {
			return nil
		}
		first = false
		return a.report(cmd, result)
	}

	onError := func(err error) error {
		if errors.Is(err, settings.ErrWrite) && a.cfg.FailOnWriteError {
			return err
		}
		clierrors.FprintError(cmd.ErrOrStderr(), toCLIError(err))
		return nil
	}

	opts := []watch.WatcherOption{
		watch.WithDebounce(a.cfg.WatchDebounce),
		watch.WithErrorHandler(onError),
	}
	if caps.IsTTY {
		opts = append(opts, watch.WithSpinner(cmd.ErrOrStderr(), output.SelectSymbols(caps).SpinnerSet))
	}

	output.NewPrinter(out, caps).PrintInfo("watching %s (Ctrl+C to stop)", path)
	return watch.New(path, run, opts...).Run(cmd.Context())
}
