package cli

import (
	"context"
	"errors"
	"io"

	"github.com/ariel-frischer/termkeys/internal/config"
	clierrors "github.com/ariel-frischer/termkeys/internal/errors"
	"github.com/ariel-frischer/termkeys/internal/settings"
)

// errChangesNeeded is returned by check when bindings are missing. It is an
// outcome rather than a failure, so nothing is printed for it.
var errChangesNeeded = errors.New("keybindings missing")

// reportError prints err for the user and returns the matching exit code.
func reportError(w io.Writer, err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, errChangesNeeded):
		return ExitChangesNeeded
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	}

	cliErr := toCLIError(err)
	clierrors.FprintError(w, cliErr)
	return exitCodeFor(cliErr)
}

// toCLIError converts run errors into structured CLI errors with
// phase-specific messages. Errors of unknown origin come from cobra's
// flag and argument parsing.
func toCLIError(err error) *clierrors.CLIError {
	var phaseErr *settings.PhaseError
	if errors.As(err, &phaseErr) {
		switch phaseErr.Kind {
		case settings.ErrNotFound:
			return clierrors.SettingsNotFound(phaseErr.Path, phaseErr.Err)
		case settings.ErrParse:
			return clierrors.SettingsParseError(phaseErr.Path, phaseErr.Line, phaseErr.Column, phaseErr.Err)
		case settings.ErrWrite:
			return clierrors.SettingsWriteError(phaseErr.Path, phaseErr.Err)
		}
	}

	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		return cliErr
	}

	if errors.Is(err, config.ErrUnsupportedPlatform) {
		return clierrors.UnsupportedPlatform(err)
	}

	return clierrors.Wrap(err, clierrors.Argument, "Run 'termkeys --help' for usage")
}

func exitCodeFor(err *clierrors.CLIError) int {
	switch err.Category {
	case clierrors.NotFound:
		return ExitNotFound
	case clierrors.Parse:
		return ExitParseError
	case clierrors.Write:
		return ExitWriteError
	case clierrors.Argument, clierrors.Configuration:
		return ExitInvalidArguments
	default:
		return ExitRuntimeError
	}
}
