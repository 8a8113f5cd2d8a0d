package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ariel-frischer/termkeys/internal/settings"
	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelevant(t *testing.T) {
	t.Parallel()

	target := filepath.Join(string(filepath.Separator), "cfg", "settings.json")

	tests := map[string]struct {
		event fsnotify.Event
		want  bool
	}{
		"write to target": {
			event: fsnotify.Event{Name: target, Op: fsnotify.Write},
			want:  true,
		},
		"create by rename onto target": {
			event: fsnotify.Event{Name: target, Op: fsnotify.Create},
			want:  true,
		},
		"target renamed away": {
			event: fsnotify.Event{Name: target, Op: fsnotify.Rename},
			want:  true,
		},
		"chmod only": {
			event: fsnotify.Event{Name: target, Op: fsnotify.Chmod},
			want:  false,
		},
		"sibling temp file": {
			event: fsnotify.Event{Name: filepath.Join(filepath.Dir(target), ".settings.json.123.tmp"), Op: fsnotify.Write},
			want:  false,
		},
		"remove": {
			event: fsnotify.Event{Name: target, Op: fsnotify.Remove},
			want:  false,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Relevant(tt.event, target))
		})
	}
}

func hasManagedBindings(t *testing.T, path string) bool {
	t.Helper()
	doc, err := settings.Load(path)
	if err != nil {
		return false
	}
	missing, _, err := settings.ComputeMissing(doc, settings.ManagedBindings())
	return err == nil && len(missing) == 0
}

func TestWatcher_RestoresBindings(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"theme": "dark"}`), 0o644))

	var passes atomic.Int32
	merger := settings.NewMerger(path)
	run := func(ctx context.Context) error {
		passes.Add(1)
		_, err := merger.Run(ctx)
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		// a pass may observe a half-written file; keep watching through it
		done <- New(path, run,
			WithDebounce(20*time.Millisecond),
			WithErrorHandler(func(error) error { return nil }),
		).Run(ctx)
	}()

	require.Eventually(t, func() bool { return hasManagedBindings(t, path) },
		5*time.Second, 20*time.Millisecond, "initial pass adds the bindings")

	// simulate the terminal rewriting its settings without our bindings
	require.Eventually(t, func() bool { return passes.Load() >= 1 }, time.Second, 10*time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(`{"theme": "light"}`), 0o644))

	require.Eventually(t, func() bool { return hasManagedBindings(t, path) },
		5*time.Second, 20*time.Millisecond, "bindings are restored after an external rewrite")

	doc, err := settings.Load(path)
	require.NoError(t, err)
	theme, _, err := doc.Root().Get("theme")
	require.NoError(t, err)
	s, err := theme.AsString()
	require.NoError(t, err)
	assert.Equal(t, "light", s)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestWatcher_InitialFailureStops(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	boom := errors.New("boom")

	err := New(filepath.Join(dir, "settings.json"), func(context.Context) error { return boom }).
		Run(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestWatcher_ErrorHandlerKeepsWatching(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")

	var handled atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		run := func(context.Context) error { return errors.New("not yet") }
		done <- New(path, run,
			WithDebounce(10*time.Millisecond),
			WithErrorHandler(func(error) error {
				handled.Add(1)
				return nil
			}),
		).Run(ctx)
	}()

	require.Eventually(t, func() bool { return handled.Load() >= 1 }, 5*time.Second, 10*time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))
	require.Eventually(t, func() bool { return handled.Load() >= 2 }, 5*time.Second, 10*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}

func TestWatcher_MissingDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing", "settings.json")
	err := New(path, func(context.Context) error { return nil }).Run(context.Background())
	assert.ErrorContains(t, err, "watching directory")
}
