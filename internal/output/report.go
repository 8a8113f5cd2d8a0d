package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ariel-frischer/termkeys/internal/settings"
	"gopkg.in/yaml.v3"
)

// Report formats accepted by WriteReport.
const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Report is the machine-readable form of a run result.
type Report struct {
	Path       string          `json:"path" yaml:"path"`
	Changed    bool            `json:"changed" yaml:"changed"`
	Written    bool            `json:"written" yaml:"written"`
	DryRun     bool            `json:"dry_run" yaml:"dry_run"`
	BackupPath string          `json:"backup_path,omitempty" yaml:"backup_path,omitempty"`
	Added      []BindingReport `json:"added" yaml:"added"`
	Present    []BindingReport `json:"present" yaml:"present"`
}

// BindingReport is one keybinding in a Report.
type BindingReport struct {
	Keys    string `json:"keys" yaml:"keys"`
	Command any    `json:"command" yaml:"command"`
}

// NewReport converts a run result.
func NewReport(r *settings.Result) Report {
	return Report{
		Path:       r.Path,
		Changed:    r.Changed,
		Written:    r.Written,
		DryRun:     r.DryRun,
		BackupPath: r.BackupPath,
		Added:      bindingReports(r.Added),
		Present:    bindingReports(r.Present),
	}
}

func bindingReports(bindings []settings.Binding) []BindingReport {
	out := make([]BindingReport, 0, len(bindings))
	for _, b := range bindings {
		out = append(out, BindingReport{Keys: b.Keys, Command: b.Command.Interface()})
	}
	return out
}

// WriteReport writes r to w in the given format. Text output goes
// through p; yaml and json are uncolored.
func WriteReport(w io.Writer, format string, p *Printer, r *settings.Result) error {
	switch format {
	case FormatText, "":
		p.PrintResult(r)
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(NewReport(r)); err != nil {
			return fmt.Errorf("encoding yaml report: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(NewReport(r)); err != nil {
			return fmt.Errorf("encoding json report: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
