package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RequiresPaths(t *testing.T) {
	t.Parallel()

	_, err := New(nil, 0)
	require.Error(t, err)
}

func TestWatcher_Relevant(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	spec := filepath.Join(dir, "openapi_new.yaml")

	w, err := New([]string{spec}, 0)
	require.NoError(t, err)
	defer w.Close()

	tests := map[string]struct {
		event fsnotify.Event
		want  bool
	}{
		"write to target":  {event: fsnotify.Event{Name: spec, Op: fsnotify.Write}, want: true},
		"create target":    {event: fsnotify.Event{Name: spec, Op: fsnotify.Create}, want: true},
		"rename target":    {event: fsnotify.Event{Name: spec, Op: fsnotify.Rename}, want: true},
		"chmod target":     {event: fsnotify.Event{Name: spec, Op: fsnotify.Chmod}, want: false},
		"remove target":    {event: fsnotify.Event{Name: spec, Op: fsnotify.Remove}, want: false},
		"write other file": {event: fsnotify.Event{Name: filepath.Join(dir, "RELEASE_NOTES.md"), Op: fsnotify.Write}, want: false},
		"unclean name":     {event: fsnotify.Event{Name: dir + "/./openapi_new.yaml", Op: fsnotify.Write}, want: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, w.relevant(tt.event))
		})
	}
}

func TestWatcher_Run(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	spec := filepath.Join(dir, "openapi_new.yaml")
	require.NoError(t, os.WriteFile(spec, []byte("openapi: 3.0.3\n"), 0o644))

	w, err := New([]string{spec}, 20*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan string, 10)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(path string) { changed <- path })
	}()

	// Several writes in quick succession collapse into one notification.
	for i := range 3 {
		require.NoError(t, os.WriteFile(spec, []byte("openapi: 3.0.3\n# edit "+string(rune('a'+i))+"\n"), 0o644))
	}

	select {
	case path := <-changed:
		assert.Equal(t, spec, path)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change notification")
	}

	require.NoError(t, os.WriteFile(filepath.Join(dir, "unrelated.txt"), []byte("x"), 0o644))
	select {
	case path := <-changed:
		t.Fatalf("unexpected notification for %s", path)
	case <-time.After(200 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestWatcher_CloseTwice(t *testing.T) {
	t.Parallel()

	w, err := New([]string{filepath.Join(t.TempDir(), "spec.yaml")}, 0)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}
