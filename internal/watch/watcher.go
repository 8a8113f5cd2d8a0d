// Package watch re-applies the keybinding merge whenever the Windows
// Terminal settings file changes, e.g. after the terminal's own settings
// UI rewrites it.
package watch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"
)

// DefaultDebounce is the quiet period after the last file event before the
// merge runs again.
const DefaultDebounce = 500 * time.Millisecond

// RunFunc performs one merge pass.
type RunFunc func(ctx context.Context) error

// ErrorHandler decides what to do with a failed pass. Returning nil keeps
// watching; returning an error stops the watcher with that error.
type ErrorHandler func(err error) error

// Watcher runs a RunFunc once and then again after every change to a file.
type Watcher struct {
	path       string
	run        RunFunc
	debounce   time.Duration
	onError    ErrorHandler
	out        io.Writer
	spinnerSet int
	showSpin   bool

	mu   sync.Mutex
	spin *spinner.Spinner
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the quiet period between the last event and the next pass.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithErrorHandler sets how failed passes are handled. By default the
// first failure stops the watcher.
func WithErrorHandler(h ErrorHandler) WatcherOption {
	return func(w *Watcher) {
		w.onError = h
	}
}

// WithSpinner shows an idle spinner on out using the given
// briandowns/spinner character set.
func WithSpinner(out io.Writer, charSet int) WatcherOption {
	return func(w *Watcher) {
		w.out = out
		w.spinnerSet = charSet
		w.showSpin = true
	}
}

// New creates a Watcher for the file at path.
func New(path string, run RunFunc, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		path:     path,
		run:      run,
		debounce: DefaultDebounce,
		onError:  func(err error) error { return err },
		out:      os.Stdout,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Run applies once, then watches until ctx is cancelled. The parent
// directory is watched rather than the file, because editors and our own
// atomic write replace the file instead of modifying it in place.
// A cancelled context is a normal stop and returns nil.
func (w *Watcher) Run(ctx context.Context) error {
	target, err := filepath.Abs(w.path)
	if err != nil {
		return fmt.Errorf("resolving watch path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	defer fw.Close()

	dir := filepath.Dir(target)
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("watching directory %s: %w", dir, err)
	}

	if err := w.pass(ctx); err != nil {
		return err
	}

	w.startSpinner()
	defer w.stopSpinner()

	triggers := make(chan struct{}, 1)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return w.pump(gctx, fw, target, triggers)
	})
	g.Go(func() error {
		return w.loop(gctx, triggers)
	})

	return g.Wait()
}

// pump forwards relevant fsnotify events as coalesced triggers.
func (w *Watcher) pump(ctx context.Context, fw *fsnotify.Watcher, target string, triggers chan<- struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !Relevant(event, target) {
				continue
			}
			select {
			case triggers <- struct{}{}:
			default:
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

// loop runs a pass once no trigger has arrived for the debounce period.
func (w *Watcher) loop(ctx context.Context, triggers <-chan struct{}) error {
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-triggers:
			timer.Reset(w.debounce)
		case <-timer.C:
			w.stopSpinner()
			err := w.pass(ctx)
			w.startSpinner()
			if err != nil {
				return err
			}
		}
	}
}

func (w *Watcher) pass(ctx context.Context) error {
	err := w.run(ctx)
	if err == nil || ctx.Err() != nil {
		return nil
	}
	return w.onError(err)
}

// Relevant reports whether event changes the file at target.
func Relevant(event fsnotify.Event, target string) bool {
	if filepath.Clean(event.Name) != target {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

func (w *Watcher) startSpinner() {
	if !w.showSpin {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.spin == nil {
		w.spin = spinner.New(spinner.CharSets[w.spinnerSet], 100*time.Millisecond, spinner.WithWriter(w.out))
		w.spin.Suffix = " watching " + w.path
	}
	w.spin.Start()
}

func (w *Watcher) stopSpinner() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.spin != nil {
		w.spin.Stop()
	}
}
