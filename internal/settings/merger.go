package settings

import (
	"context"
)

// Result summarizes one merge run.
type Result struct {
	// Path is the settings file that was inspected.
	Path string
	// Added lists the bindings that were missing, in the order appended.
	Added []Binding
	// Present lists the managed bindings that were already bound.
	Present []Binding
	// Changed is true when at least one binding was missing.
	Changed bool
	// Written is true when the file was rewritten.
	Written bool
	// DryRun is true when writing was suppressed.
	DryRun bool
	// BackupPath is set when a backup copy was made before writing.
	BackupPath string
}

// Merger runs the locate/load/merge/persist pass against one settings file.
type Merger struct {
	path    string
	desired []Binding
	dryRun  bool
	persist PersistOptions
}

// Option configures a Merger.
type Option func(*Merger)

// WithDryRun computes the merge without writing the file.
func WithDryRun(dryRun bool) Option {
	return func(m *Merger) {
		m.dryRun = dryRun
	}
}

// WithIndent sets the indentation used when the file is rewritten.
func WithIndent(indent string) Option {
	return func(m *Merger) {
		m.persist.Indent = indent
	}
}

// WithBackup keeps a <path>.bak copy of the previous content.
func WithBackup(backup bool) Option {
	return func(m *Merger) {
		m.persist.Backup = backup
	}
}

// WithBindings replaces the desired binding set.
func WithBindings(bindings []Binding) Option {
	return func(m *Merger) {
		m.desired = bindings
	}
}

// NewMerger creates a Merger for the settings file at path.
func NewMerger(path string, opts ...Option) *Merger {
	m := &Merger{
		path:    path,
		desired: ManagedBindings(),
		persist: PersistOptions{Indent: DefaultIndent},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Path returns the settings file this merger operates on.
func (m *Merger) Path() string {
	return m.path
}

// Run performs one merge pass. The file is written only when a binding was
// missing and dry run is off. Errors are *PhaseError values matching
// ErrNotFound, ErrParse or ErrWrite; a cancelled context is returned as is.
func (m *Merger) Run(ctx context.Context) (*Result, error) {
	path, err := Locate(m.path)
	if err != nil {
		return nil, err
	}

	doc, err := Load(path)
	if err != nil {
		return nil, err
	}

	if err := doc.EnsureBindingList(); err != nil {
		return nil, parseError(PhaseMerge, path, err)
	}

	missing, changed, err := ComputeMissing(doc, m.desired)
	if err != nil {
		return nil, parseError(PhaseMerge, path, err)
	}

	result := &Result{
		Path:    path,
		Added:   missing,
		Present: present(m.desired, missing),
		Changed: changed,
		DryRun:  m.dryRun,
	}
	if !changed || m.dryRun {
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := Apply(doc, missing); err != nil {
		return nil, parseError(PhaseMerge, path, err)
	}

	backupPath, err := Persist(path, doc, m.persist)
	result.BackupPath = backupPath
	if err != nil {
		return result, err
	}
	result.Written = true
	return result, nil
}

func present(desired, missing []Binding) []Binding {
	skip := make(map[string]struct{}, len(missing))
	for _, b := range missing {
		skip[b.Keys] = struct{}{}
	}
	var out []Binding
	for _, b := range desired {
		if _, ok := skip[b.Keys]; !ok {
			out = append(out, b)
		}
	}
	return out
}
