package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWatcher(t *testing.T, root string) *FileWatcherImpl {
	t.Helper()
	fw, err := NewFileWatcher(root, ".yaml", []string{"node_modules"})
	require.NoError(t, err)
	fw.FileWatcher.Debounce = 20 * time.Millisecond
	return fw
}

func TestShouldExcludePath(t *testing.T) {
	root := t.TempDir()
	fw := newWatcher(t, root)
	defer fw.Close()

	assert.True(t, fw.shouldExcludePath(filepath.Join(root, "node_modules")))
	assert.True(t, fw.shouldExcludePath(filepath.Join(root, "orders", "node_modules", "x.yaml")))
	assert.False(t, fw.shouldExcludePath(filepath.Join(root, "orders", "create.yaml")))
}

func TestIsDefinition(t *testing.T) {
	fw := newWatcher(t, t.TempDir())
	defer fw.Close()

	assert.True(t, fw.isDefinition(fsnotify.Event{Name: "a/create.yaml", Op: fsnotify.Create}))
	assert.True(t, fw.isDefinition(fsnotify.Event{Name: "a/create.yaml", Op: fsnotify.Rename}))
	assert.False(t, fw.isDefinition(fsnotify.Event{Name: "a/create.yaml", Op: fsnotify.Chmod}))
	assert.False(t, fw.isDefinition(fsnotify.Event{Name: "a/notes.md", Op: fsnotify.Create}))
}

func TestWatchTriggersOnNewDefinition(t *testing.T) {
	root := t.TempDir()
	fw := newWatcher(t, root)
	defer fw.Close()

	var changes atomic.Int32
	started := make(chan struct{})
	fw.FileWatcher.AddOnStartFunc(func() error {
		close(started)
		return nil
	})
	fw.FileWatcher.AddOnChangeFunc(func() error {
		changes.Add(1)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- fw.Watch(ctx) }()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not start")
	}

	require.NoError(t, os.WriteFile(filepath.Join(root, "health.yaml"), []byte("{}"), 0644))

	assert.Eventually(t, func() bool { return changes.Load() > 0 }, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestOnChangeRunsDoNotOverlap(t *testing.T) {
	fw := newWatcher(t, t.TempDir())
	defer fw.Close()

	var running, maxRunning, runs atomic.Int32
	fw.FileWatcher.AddOnChangeFunc(func() error {
		n := running.Add(1)
		if n > maxRunning.Load() {
			maxRunning.Store(n)
		}
		time.Sleep(100 * time.Millisecond)
		running.Add(-1)
		runs.Add(1)
		return nil
	})

	fw.debounceGenerate()
	time.Sleep(50 * time.Millisecond)
	fw.debounceGenerate()

	assert.Eventually(t, func() bool { return runs.Load() == 2 }, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, int32(1), maxRunning.Load())
}

func TestCloseCancelsPendingOnChange(t *testing.T) {
	fw := newWatcher(t, t.TempDir())

	var changes atomic.Int32
	fw.FileWatcher.AddOnChangeFunc(func() error {
		changes.Add(1)
		return nil
	})

	fw.debounceGenerate()
	require.NoError(t, fw.Close())
	fw.debounceGenerate()

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), changes.Load())
	assert.NoError(t, fw.Close())
}

func TestCloseWaitsForRunningOnChange(t *testing.T) {
	fw := newWatcher(t, t.TempDir())

	entered := make(chan struct{})
	var finished atomic.Bool
	fw.FileWatcher.AddOnChangeFunc(func() error {
		close(entered)
		time.Sleep(50 * time.Millisecond)
		finished.Store(true)
		return nil
	})

	fw.debounceGenerate()
	select {
	case <-entered:
	case <-time.After(5 * time.Second):
		t.Fatal("OnChange did not run")
	}

	require.NoError(t, fw.Close())
	assert.True(t, finished.Load())
}
