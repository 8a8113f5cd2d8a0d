package cli

// Exit codes for the termkeys CLI
// These codes support scripting and CI/CD integration
const (
	// ExitSuccess indicates the bindings are present (added now or already there)
	ExitSuccess = 0

	// ExitChangesNeeded indicates `check` found missing bindings
	ExitChangesNeeded = 1

	// ExitNotFound indicates the settings file does not exist
	ExitNotFound = 2

	// ExitParseError indicates the settings file is not readable JSON
	ExitParseError = 3

	// ExitWriteError indicates the updated settings could not be saved
	ExitWriteError = 4

	// ExitInvalidArguments indicates invalid arguments or configuration
	ExitInvalidArguments = 5

	// ExitRuntimeError indicates any other failure
	ExitRuntimeError = 6

	// ExitInterrupted indicates the run was cancelled by a signal
	ExitInterrupted = 130
)
