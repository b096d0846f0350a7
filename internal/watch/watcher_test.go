package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rohmanhakim/richtext-icons/internal/metadata"
	"github.com/rohmanhakim/richtext-icons/internal/watch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const debounce = 50 * time.Millisecond

type runner struct {
	calls  chan struct{}
	cancel context.CancelFunc
	done   chan error
}

func start(t *testing.T, dir string) *runner {
	t.Helper()
	r := &runner{
		calls: make(chan struct{}, 16),
		done:  make(chan error, 1),
	}
	w, err := watch.NewWatcher(dir, debounce, func(context.Context) {
		r.calls <- struct{}{}
	}, &metadata.NoopSink{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	go func() { r.done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-r.done
	})
	return r
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(`<svg/>`), 0o644))
}

func TestWatcher_BurstTriggersOnce(t *testing.T) {
	dir := t.TempDir()
	r := start(t, dir)

	for _, name := range []string{"a.svg", "b.svg", "C.SVG"} {
		writeFile(t, filepath.Join(dir, name))
	}

	select {
	case <-r.calls:
	case <-time.After(5 * time.Second):
		t.Fatal("no callback after a burst of changes")
	}

	select {
	case <-r.calls:
		t.Fatal("a single burst triggered more than one callback")
	case <-time.After(10 * debounce):
	}
}

func TestWatcher_RemovalTriggers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gone.svg")
	writeFile(t, path)
	r := start(t, dir)

	require.NoError(t, os.Remove(path))

	select {
	case <-r.calls:
	case <-time.After(5 * time.Second):
		t.Fatal("no callback after removing an icon")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	r := start(t, dir)

	writeFile(t, filepath.Join(dir, "notes.txt"))
	writeFile(t, filepath.Join(dir, "icon.svg.bak"))

	select {
	case <-r.calls:
		t.Fatal("callback for a non-SVG file")
	case <-time.After(10 * debounce):
	}
}

func TestWatcher_StopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	r := start(t, dir)

	r.cancel()
	select {
	case err := <-r.done:
		assert.NoError(t, err)
		r.done <- err
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestNewWatcher_MissingDirectory(t *testing.T) {
	_, err := watch.NewWatcher(filepath.Join(t.TempDir(), "nope"), 0, func(context.Context) {}, &metadata.NoopSink{})
	assert.Error(t, err)
}
