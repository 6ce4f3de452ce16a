package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/tristendillon/gsqa/core/logger"
	"github.com/tristendillon/gsqa/core/models"
)

type FileWatcher interface {
	Watch(ctx context.Context) error
	Close() error
}

type FileWatcherImpl struct {
	FileWatcher *models.FileWatcher
}

func NewFileWatcher(rootDir, extension string, excludePaths []string) (*FileWatcherImpl, error) {
	fw, err := models.NewFileWatcher(rootDir, extension, excludePaths)
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &FileWatcherImpl{
		FileWatcher: fw,
	}, nil
}

// Watch blocks until ctx is cancelled, calling OnChange (debounced) whenever
// a definition file appears or is renamed under the root.
func (fw *FileWatcherImpl) Watch(ctx context.Context) error {
	if err := fw.addWatchersRecursively(fw.FileWatcher.RootDir); err != nil {
		return fmt.Errorf("failed to add watchers: %w", err)
	}

	if err := fw.FileWatcher.OnStart(); err != nil {
		logger.Error("Watcher.OnStart failed: %v", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.FileWatcher.Watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if fw.shouldExcludePath(event.Name) {
				continue
			}

			logger.Debug("File event: %s %s", event.Op, event.Name)

			if event.Has(fsnotify.Create) {
				if stat, err := os.Stat(event.Name); err == nil && stat.IsDir() {
					logger.Debug("Adding watcher for new directory: %s", event.Name)
					if err := fw.addWatchersRecursively(event.Name); err != nil {
						logger.Error("Watcher error: %v", err)
					}
					fw.debounceGenerate()
					continue
				}
			}

			if fw.isDefinition(event) {
				fw.debounceGenerate()
			}

		case err, ok := <-fw.FileWatcher.Watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			logger.Error("Watcher error: %v", err)
		}
	}
}

func (fw *FileWatcherImpl) isDefinition(event fsnotify.Event) bool {
	if !strings.HasSuffix(event.Name, fw.FileWatcher.Extension) {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) || event.Has(fsnotify.Write)
}

func (fw *FileWatcherImpl) debounceGenerate() {
	fw.FileWatcher.Mutex.Lock()
	defer fw.FileWatcher.Mutex.Unlock()

	if fw.FileWatcher.Closed {
		return
	}

	if fw.FileWatcher.DebounceTimer != nil {
		fw.FileWatcher.DebounceTimer.Stop()
	}

	fw.FileWatcher.DebounceTimer = time.AfterFunc(fw.FileWatcher.Debounce, fw.runOnChange)
}

// runOnChange calls OnChange unless the watcher has been closed. Calls are
// serialised on RunMutex.
func (fw *FileWatcherImpl) runOnChange() {
	fw.FileWatcher.RunMutex.Lock()
	defer fw.FileWatcher.RunMutex.Unlock()

	fw.FileWatcher.Mutex.Lock()
	closed := fw.FileWatcher.Closed
	fw.FileWatcher.Mutex.Unlock()
	if closed {
		return
	}

	logger.Debug("Event definitions changed, scaffolding...")
	if err := fw.FileWatcher.OnChange(); err != nil {
		logger.Error("Watcher.OnChange failed: %v", err)
	}
}

// Close stops pending runs and waits for one in flight before closing the
// underlying watcher. Calling it again is a no-op.
func (fw *FileWatcherImpl) Close() error {
	fw.FileWatcher.Mutex.Lock()
	if fw.FileWatcher.Closed {
		fw.FileWatcher.Mutex.Unlock()
		return nil
	}
	fw.FileWatcher.Closed = true
	if fw.FileWatcher.DebounceTimer != nil {
		fw.FileWatcher.DebounceTimer.Stop()
	}
	fw.FileWatcher.Mutex.Unlock()

	fw.FileWatcher.RunMutex.Lock()
	defer fw.FileWatcher.RunMutex.Unlock()

	if err := fw.FileWatcher.OnClose(); err != nil {
		logger.Error("Watcher.OnClose failed: %v", err)
	}

	return fw.FileWatcher.Watcher.Close()
}

func (fw *FileWatcherImpl) shouldExcludePath(path string) bool {
	relPath, err := filepath.Rel(fw.FileWatcher.RootDir, path)
	if err != nil {
		return false
	}

	for _, seg := range strings.Split(filepath.ToSlash(filepath.Clean(relPath)), "/") {
		for _, excludePath := range fw.FileWatcher.ExcludePaths {
			if seg == excludePath {
				return true
			}
		}
	}

	return false
}

func (fw *FileWatcherImpl) addWatchersRecursively(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() {
			return nil
		}

		if fw.shouldExcludePath(path) {
			logger.Debug("Excluding directory: %s", path)
			return filepath.SkipDir
		}

		logger.Debug("Adding watcher for: %s", path)
		if err := fw.FileWatcher.Watcher.Add(path); err != nil {
			return fmt.Errorf("failed to add watcher for %s: %w", path, err)
		}

		return nil
	})
}
