package cli

import (
	"fmt"
	"runtime"

	"github.com/ariel-frischer/termkeys/internal/build"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:     "version",
		Aliases: []string{"v"},
		Short:   "Display version information (v)",
		Long:    "Display version, commit, build date, and Go version information for termkeys",
		Example: `  # Show version info
  termkeys version

  # Plain output (for scripts)
  termkeys version --plain`,
		Args:              noArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			if plain {
				printPlainVersion(cmd)
				return
			}
			printPrettyVersion(cmd)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Plain output without formatting")
	return cmd
}

// printPlainVersion prints a simple version output for scripting
func printPlainVersion(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "termkeys %s\n", build.Version)
	fmt.Fprintf(out, "commit: %s\n", build.Commit)
	fmt.Fprintf(out, "built: %s\n", build.BuildDate)
	fmt.Fprintf(out, "go: %s\n", runtime.Version())
	fmt.Fprintf(out, "platform: %s\n", build.Platform())
}

func printPrettyVersion(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	version := build.Version
	if build.IsDevBuild() {
		version += " " + dim("(development build)")
	}
	fmt.Fprintf(out, "%s %s\n", cyan("termkeys"), version)
	info := []struct {
		label string
		value string
	}{
		{"Commit", build.ShortCommit()},
		{"Built", build.BuildDate},
		{"Go", runtime.Version()},
		{"Platform", build.Platform()},
	}
	for _, row := range info {
		fmt.Fprintf(out, "  %s %s\n", dim(fmt.Sprintf("%-9s", row.label+":")), row.value)
	}
}
