package errors

import "fmt"

// Common error messages for the termkeys CLI.
// Each run phase has its own message so "file missing", "file unreadable as
// JSON" and "could not save" are easy to tell apart.

// withCause appends cause to message when there is one.
func withCause(message string, cause error) string {
	if cause == nil {
		return message
	}
	return fmt.Sprintf("%s: %v", message, cause)
}

// SettingsNotFound creates an error for a missing Windows Terminal settings file.
func SettingsNotFound(path string, cause error) *CLIError {
	return &CLIError{
		Category: NotFound,
		Message:  "Windows Terminal settings file not found",
		Path:     path,
		Err:      cause,
		Remediation: []string{
			"Start Windows Terminal once so it creates settings.json",
			"Or point termkeys at the file: termkeys --settings <path>",
			"Preview or unpackaged installs: termkeys --variant preview|unpackaged",
		},
	}
}

// SettingsParseError creates an error for a settings file that is not readable JSON.
// line is 0 when the failure has no position.
func SettingsParseError(path string, line, column int, cause error) *CLIError {
	location := path
	if line > 0 {
		location = fmt.Sprintf("%s:%d:%d", path, line, column)
	}
	return &CLIError{
		Category: Parse,
		Message:  withCause("could not parse settings file", cause),
		Path:     location,
		Err:      cause,
		Remediation: []string{
			"Only whole-line // comments are supported; move trailing comments onto their own line",
			"Remove trailing commas and other non-JSON syntax",
			"Nothing was changed; fix the file and run termkeys again",
		},
	}
}

// SettingsWriteError creates an error for a failed save.
func SettingsWriteError(path string, cause error) *CLIError {
	return &CLIError{
		Category: Write,
		Message:  withCause("could not save settings file", cause),
		Path:     path,
		Err:      cause,
		Remediation: []string{
			"Close any editor that has the file locked and run termkeys again",
			"Check that you have write permission to the settings folder",
			"The previous content was left in place",
		},
	}
}

// UnsupportedPlatform creates an error when no default settings path exists.
func UnsupportedPlatform(cause error) *CLIError {
	return &CLIError{
		Category: Configuration,
		Message:  withCause("cannot determine the Windows Terminal settings path", cause),
		Err:      cause,
		Remediation: []string{
			"Pass the path explicitly: termkeys --settings <path>",
			"Or set TERMKEYS_SETTINGS_PATH",
		},
	}
}

// ConfigLoadError creates an error for invalid termkeys configuration.
func ConfigLoadError(cause error) *CLIError {
	return &CLIError{
		Category: Configuration,
		Message:  withCause("failed to load termkeys configuration", cause),
		Err:      cause,
		Remediation: []string{
			"Check the config file for syntax errors",
			"Print the default template with: termkeys config template",
		},
	}
}
