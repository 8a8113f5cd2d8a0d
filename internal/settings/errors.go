package settings

import (
	"errors"
	"fmt"
)

// Sentinel errors identifying which phase of a run failed. Every error
// returned by this package matches exactly one of them via errors.Is.
var (
	ErrNotFound = errors.New("settings file not found")
	ErrParse    = errors.New("settings file could not be parsed")
	ErrWrite    = errors.New("settings file could not be written")
)

// Phase names the step of a run in which an error occurred.
type Phase string

const (
	PhaseLocate  Phase = "locate"
	PhaseLoad    Phase = "load"
	PhaseMerge   Phase = "merge"
	PhasePersist Phase = "persist"
)

// PhaseError describes a failed run step. Line and Column are set for
// syntax errors and are 1-based positions in the original file.
type PhaseError struct {
	Phase  Phase
	Kind   error
	Path   string
	Line   int
	Column int
	Err    error
}

func (e *PhaseError) Error() string {
	loc := e.Path
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d:%d", e.Path, e.Line, e.Column)
	}
	if e.Err == nil {
		return fmt.Sprintf("%v: %s", e.Kind, loc)
	}
	return fmt.Sprintf("%v: %s: %v", e.Kind, loc, e.Err)
}

// Unwrap exposes both the sentinel kind and the underlying cause.
func (e *PhaseError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func notFoundError(path string, err error) *PhaseError {
	return &PhaseError{Phase: PhaseLocate, Kind: ErrNotFound, Path: path, Err: err}
}

func parseError(phase Phase, path string, err error) *PhaseError {
	return &PhaseError{Phase: phase, Kind: ErrParse, Path: path, Err: err}
}

func writeError(path string, err error) *PhaseError {
	return &PhaseError{Phase: PhasePersist, Kind: ErrWrite, Path: path, Err: err}
}
