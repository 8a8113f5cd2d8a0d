// Command termkeys adds ctrl+. and ctrl+, font-size keybindings to the
// Windows Terminal settings file, leaving everything else in place.
package main

import (
	"os"

	"github.com/ariel-frischer/termkeys/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
