package output

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// WaitForKey prints a prompt and blocks until one key is pressed on in.
// It returns immediately when in is not a terminal, so piped and CI runs
// never hang.
func WaitForKey(in *os.File, out io.Writer) error {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil
	}

	fmt.Fprint(out, "Press any key to continue...")
	defer fmt.Fprintln(out)

	state, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("setting raw mode: %w", err)
	}
	defer func() { _ = term.Restore(fd, state) }()

	buf := make([]byte, 1)
	if _, err := in.Read(buf); err != nil && err != io.EOF {
		return fmt.Errorf("reading key: %w", err)
	}
	return nil
}
