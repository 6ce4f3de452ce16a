package models

import (
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

type FileWatcher struct {
	Watcher       *fsnotify.Watcher
	RootDir       string
	Extension     string
	ExcludePaths  []string
	Debounce      time.Duration
	DebounceTimer *time.Timer
	Mutex         sync.Mutex
	// RunMutex is held while OnChange runs so runs never overlap.
	RunMutex sync.Mutex
	Closed   bool
	OnStart       func() error
	OnChange      func() error
	OnClose       func() error
}

func NewFileWatcher(rootDir, extension string, excludePaths []string) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	return &FileWatcher{
		Watcher:      watcher,
		RootDir:      rootDir,
		Extension:    extension,
		ExcludePaths: excludePaths,
		Debounce:     500 * time.Millisecond,
		OnStart:      func() error { return nil },
		OnChange:     func() error { return fmt.Errorf("OnChange not set") },
		OnClose:      func() error { return nil },
	}, nil
}

func (fw *FileWatcher) AddOnStartFunc(onStart func() error) {
	fw.OnStart = onStart
}

func (fw *FileWatcher) AddOnChangeFunc(generateFunc func() error) {
	fw.OnChange = generateFunc
}

func (fw *FileWatcher) AddOnCloseFunc(onClose func() error) {
	fw.OnClose = onClose
}
