// Package cli implements the termkeys command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ariel-frischer/termkeys/internal/config"
	clierrors "github.com/ariel-frischer/termkeys/internal/errors"
	"github.com/ariel-frischer/termkeys/internal/output"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// app holds the state shared by one invocation of the command tree.
type app struct {
	stdin *os.File
	flags globalFlags
	cfg   *config.Configuration
	// pause is set by commands that honor the pause setting.
	pause bool
}

type globalFlags struct {
	configPath   string
	settingsPath string
	variant      string
	output       string
	indent       int
	dryRun       bool
	backup       bool
	pause        bool
	noColor      bool
	debounce     string
}

// Execute runs the CLI with the process arguments and returns the exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdin *os.File, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin}
	root := newRootCmd(a)
	root.SetArgs(args)
	if stdin != nil {
		root.SetIn(stdin)
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	code := reportError(stderr, err)

	if a.pause && stdin != nil {
		if perr := output.WaitForKey(stdin, stdout); perr != nil {
			fmt.Fprintln(stderr, perr)
		}
	}
	return code
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "termkeys",
		Short: "Add font-size keybindings to Windows Terminal",
		Long: `termkeys makes sure Windows Terminal's settings.json binds
ctrl+. to "increase font size" and ctrl+, to "decrease font size".

Only missing bindings are appended; every other setting and keybinding is
kept. Running it again is a no-op and leaves the file untouched.

Without a subcommand, termkeys runs 'apply'.

Configuration is loaded with the following priority (highest to lowest):
  1. Command-line flags
  2. Environment variables (TERMKEYS_*)
  3. Config file (--config, or the user config file)
  4. Built-in defaults

Exit codes:
  0 - Keybindings present (added now or already there)
  1 - 'check' found missing keybindings
  2 - Settings file not found
  3 - Settings file could not be parsed
  4 - Settings file could not be written
  5 - Invalid arguments or configuration
  6 - Other failure`,
		Example: `  # Add the bindings to the stable Windows Terminal install
  termkeys

  # Preview the change without writing
  termkeys --dry-run

  # Patch a specific file and keep a backup
  termkeys --settings ./settings.json --backup

  # Fail a CI job when the bindings are missing
  termkeys check`,
		Args:              noArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.loadConfig,
		RunE:              a.runApply,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&a.flags.configPath, "config", "c", "", "Path to a termkeys config file (.yml or .json)")
	pf.StringVarP(&a.flags.settingsPath, "settings", "s", "", "Path to Windows Terminal settings.json (overrides --variant)")
	pf.StringVar(&a.flags.variant, "variant", config.VariantStable, "Windows Terminal install: stable, preview or unpackaged")
	pf.BoolVarP(&a.flags.dryRun, "dry-run", "n", false, "Show what would change without writing")
	pf.BoolVar(&a.flags.backup, "backup", false, "Keep a settings.json.bak copy of the previous content")
	pf.IntVar(&a.flags.indent, "indent", 4, "Spaces of indentation when rewriting (0 for compact)")
	pf.StringVarP(&a.flags.output, "output", "o", output.FormatText, "Report format: text, yaml or json")
	pf.BoolVar(&a.flags.pause, "pause", false, "Wait for a key press before exiting (for double-click launches)")
	pf.BoolVar(&a.flags.noColor, "no-color", false, "Disable colored output")

	cmd.SetFlagErrorFunc(flagError)

	cmd.AddCommand(
		newApplyCmd(a),
		newCheckCmd(a),
		newPathCmd(a),
		newWatchCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)

	return cmd
}

// loadConfig resolves the configuration for the command being run.
func (a *app) loadConfig(cmd *cobra.Command, _ []string) error {
	a.applyColorMode(cmd)

	cfg, err := config.Load(config.LoadOptions{
		ConfigPath: a.flags.configPath,
		Overrides:  a.flagOverrides(cmd),
	})
	if err != nil {
		return clierrors.ConfigLoadError(err)
	}

	a.cfg = cfg
	return nil
}

// flagOverrides maps explicitly set flags to config keys, so unset flags
// never mask file or environment values.
func (a *app) flagOverrides(cmd *cobra.Command) map[string]interface{} {
	overrides := make(map[string]interface{})
	flags := cmd.Flags()

	set := func(flag, key string, value interface{}) {
		if flags.Lookup(flag) != nil && flags.Changed(flag) {
			overrides[key] = value
		}
	}

	set("settings", "settings_path", a.flags.settingsPath)
	set("variant", "variant", a.flags.variant)
	set("dry-run", "dry_run", a.flags.dryRun)
	set("backup", "backup", a.flags.backup)
	set("indent", "indent", a.flags.indent)
	set("output", "output", a.flags.output)
	set("pause", "pause", a.flags.pause)
	set("debounce", "watch_debounce", a.flags.debounce)

	return overrides
}

// skipConfig replaces the root's config loading for commands that work
// without a valid configuration.
func skipConfig(a *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		a.applyColorMode(cmd)
		return nil
	}
}

// applyColorMode turns colors off for --no-color and for output that is not
// a color terminal, such as a pipe or NO_COLOR being set.
func (a *app) applyColorMode(cmd *cobra.Command) {
	if a.flags.noColor || !capabilitiesOf(cmd.OutOrStdout()).SupportsColor {
		color.NoColor = true
	}
}

// noArgs rejects positional arguments with the command's usage line.
func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return nil
	}
	return clierrors.NewArgumentErrorWithUsage(
		fmt.Sprintf("unexpected argument %q", args[0]),
		cmd.UseLine(),
		fmt.Sprintf("Run '%s --help' for usage", cmd.CommandPath()),
	)
}

// flagError attaches the usage line to flag parsing failures.
func flagError(cmd *cobra.Command, err error) error {
	return clierrors.NewArgumentErrorWithUsage(
		err.Error(),
		cmd.UseLine(),
		fmt.Sprintf("Run '%s --help' for usage", cmd.CommandPath()),
	)
}
