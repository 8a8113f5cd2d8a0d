package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/ariel-frischer/termkeys/internal/jsontree"
	"github.com/ariel-frischer/termkeys/internal/settings"
	"github.com/fatih/color"
)

// Printer narrates merge results as colored text.
type Printer struct {
	out io.Writer
	sym Symbols
}

// NewPrinter creates a Printer writing to out with the glyphs for caps.
// Colors follow color.NoColor.
func NewPrinter(out io.Writer, caps Capabilities) *Printer {
	return &Printer{out: out, sym: SelectSymbols(caps)}
}

// PrintResult writes the human-readable summary of one run.
func (p *Printer) PrintResult(r *settings.Result) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	for _, b := range r.Present {
		fmt.Fprintf(p.out, "%s %s %s\n", green(p.sym.Checkmark), cyan(b.Keys), dim("already bound"))
	}
	for _, b := range r.Added {
		verb := "added"
		if !r.Written {
			verb = "missing"
		}
		fmt.Fprintf(p.out, "%s %s %s %s\n", yellow(p.sym.Pending), cyan(b.Keys), verb, dim(DescribeCommand(b.Command)))
	}

	switch {
	case !r.Changed:
		fmt.Fprintf(p.out, "%s no change needed: %s\n", green(p.sym.Checkmark), r.Path)
	case r.DryRun:
		fmt.Fprintf(p.out, "%s dry run: would add %d keybinding(s) to %s\n", yellow("→"), len(r.Added), r.Path)
	case r.Written:
		fmt.Fprintf(p.out, "%s updated %s\n", green(p.sym.Checkmark), r.Path)
		if r.BackupPath != "" {
			fmt.Fprintf(p.out, "  %s %s\n", dim("backup:"), r.BackupPath)
		}
	}
}

// PrintWarning writes a yellow warning line.
func (p *Printer) PrintWarning(format string, args ...interface{}) {
	yellow := color.New(color.FgYellow, color.Bold).SprintFunc()
	fmt.Fprintf(p.out, "%s %s\n", yellow("Warning:"), fmt.Sprintf(format, args...))
}

// PrintInfo writes a dim informational line.
func (p *Printer) PrintInfo(format string, args ...interface{}) {
	dim := color.New(color.Faint).SprintFunc()
	fmt.Fprintln(p.out, dim(fmt.Sprintf(format, args...)))
}

// DescribeCommand renders a binding command compactly, e.g.
// "adjustFontSize delta=-1". Non-object commands are printed as JSON.
func DescribeCommand(cmd *jsontree.Value) string {
	members, err := cmd.Members()
	if err != nil {
		raw, err := cmd.MarshalJSON()
		if err != nil {
			return ""
		}
		return string(raw)
	}

	var action string
	var args []string
	for _, m := range members {
		if m.Key == "action" {
			if s, err := m.Value.AsString(); err == nil {
				action = s
				continue
			}
		}
		raw, err := m.Value.MarshalJSON()
		if err != nil {
			continue
		}
		args = append(args, m.Key+"="+string(raw))
	}

	if action == "" {
		return strings.Join(args, " ")
	}
	return strings.TrimSpace(action + " " + strings.Join(args, " "))
}
