// Package output renders termkeys run results for the terminal and for
// scripts. It depends only on the settings result type, so every command
// can share it without import cycles.
package output

import (
	"os"

	"golang.org/x/term"
)

// Capabilities describes what the attached terminal can display.
type Capabilities struct {
	IsTTY           bool
	SupportsColor   bool
	SupportsUnicode bool
}

// Symbols is the glyph set used in text output.
type Symbols struct {
	Checkmark  string
	Pending    string
	SpinnerSet int
}

// DetectCapabilities inspects f (normally os.Stdout).
// Checks isatty plus the NO_COLOR and TERMKEYS_ASCII env vars.
func DetectCapabilities(f *os.File) Capabilities {
	isTTY := f != nil && term.IsTerminal(int(f.Fd()))

	noColor := os.Getenv("NO_COLOR") != ""
	forceASCII := os.Getenv("TERMKEYS_ASCII") == "1"

	return Capabilities{
		IsTTY:           isTTY,
		SupportsColor:   isTTY && !noColor,
		SupportsUnicode: isTTY && !forceASCII,
	}
}

// SelectSymbols returns Unicode glyphs with a braille spinner (set 14) when
// the terminal supports them, otherwise ASCII with the |/-\ spinner (set 9).
func SelectSymbols(caps Capabilities) Symbols {
	if caps.SupportsUnicode {
		return Symbols{
			Checkmark:  "✓",
			Pending:    "+",
			SpinnerSet: 14,
		}
	}

	return Symbols{
		Checkmark:  "[OK]",
		Pending:    "[+]",
		SpinnerSet: 9,
	}
}
