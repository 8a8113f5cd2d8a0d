package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	// Color functions with auto-detection for terminal support.
	// These fall back gracefully when colors are unavailable.
	errorLabel  = color.New(color.FgRed, color.Bold).SprintFunc()
	errorMsg    = color.New(color.FgRed).SprintFunc()
	fixLabel    = color.New(color.FgGreen, color.Bold).SprintFunc()
	usageLabel  = color.New(color.FgCyan, color.Bold).SprintFunc()
	usageText   = color.New(color.FgCyan).SprintFunc()
	fileLabel   = color.New(color.FgWhite, color.Bold).SprintFunc()
	bullet      = color.New(color.FgGreen).SprintFunc()
	categoryFmt = color.New(color.FgYellow).SprintFunc()
)

// FormatError formats a CLIError for display in the terminal.
// Colors are used unless color.NoColor is set (NO_COLOR, --no-color, non-TTY).
func FormatError(err *CLIError) string {
	if err == nil {
		return ""
	}
	return formatError(err, !color.NoColor)
}

// paint applies fn only when colors are enabled.
func paint(useColors bool, fn func(a ...interface{}) string, s string) string {
	if useColors {
		return fn(s)
	}
	return s
}

func formatError(err *CLIError, useColors bool) string {
	var sb strings.Builder

	// Error category and message
	sb.WriteString(paint(useColors, errorLabel, "Error"))
	sb.WriteString(" [")
	sb.WriteString(paint(useColors, categoryFmt, err.Category.String()))
	sb.WriteString("]: ")
	sb.WriteString(paint(useColors, errorMsg, err.Message))
	sb.WriteString("\n")

	if err.Path != "" {
		sb.WriteString(paint(useColors, fileLabel, "File: "))
		sb.WriteString(err.Path)
		sb.WriteString("\n")
	}

	// Correct usage (for argument errors)
	if err.Usage != "" {
		sb.WriteString("\n")
		sb.WriteString(paint(useColors, usageLabel, "Usage: "))
		sb.WriteString(paint(useColors, usageText, err.Usage))
		sb.WriteString("\n")
	}

	// Remediation steps
	if len(err.Remediation) > 0 {
		sb.WriteString("\n")
		sb.WriteString(paint(useColors, fixLabel, "To fix this:"))
		sb.WriteString("\n")
		for _, step := range err.Remediation {
			sb.WriteString("  ")
			sb.WriteString(paint(useColors, bullet, "•"))
			sb.WriteString(" ")
			sb.WriteString(step)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// FprintError prints a formatted CLIError to the given writer.
func FprintError(w io.Writer, err *CLIError) {
	if err == nil {
		return
	}
	fmt.Fprint(w, FormatError(err))
}
