// Package jsonc removes full-line comments from JSON text.
//
// The accepted grammar is deliberately narrow. A line is a comment line when,
// after any run of spaces and tabs at the start of the line, the next two
// characters are "//". The whole line (up to but not including its line
// terminator) is discarded. Nothing else is recognized: a "//" that follows
// real content on the same line is left in place and will make the JSON
// parser fail, and block comments are not supported.
//
// Line terminators are kept, so line and column numbers reported against the
// stripped text match the original file.
package jsonc

import (
	"bytes"
	"strings"
)

// StripLineComments blanks every full-line comment in text.
func StripLineComments(text string) string {
	if !strings.Contains(text, "//") {
		return text
	}

	var sb strings.Builder
	sb.Grow(len(text))
	for _, line := range strings.SplitAfter(text, "\n") {
		if isCommentLine(line) {
			sb.WriteString(lineTerminator(line))
			continue
		}
		sb.WriteString(line)
	}
	return sb.String()
}

// isCommentLine reports whether line starts with "//" after leading spaces and tabs.
func isCommentLine(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " \t"), "//")
}

func lineTerminator(line string) string {
	switch {
	case strings.HasSuffix(line, "\r\n"):
		return "\r\n"
	case strings.HasSuffix(line, "\n"):
		return "\n"
	default:
		return ""
	}
}

// Position converts a byte offset in data into a 1-based line and column.
// Offsets past the end clamp to the last position.
func Position(data []byte, offset int64) (line, col int) {
	if offset < 0 {
		offset = 0
	}
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	before := data[:offset]
	line = bytes.Count(before, []byte("\n")) + 1
	col = int(offset) - (bytes.LastIndexByte(before, '\n') + 1) + 1
	return line, col
}
