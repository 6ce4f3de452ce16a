package emitter

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/tristendillon/gsqa/core/logger"
)

type Result int

const (
	Written Result = iota
	Skipped
)

func (r Result) String() string {
	switch r {
	case Written:
		return "written"
	case Skipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Emitter writes files only when nothing exists at the target path, so a
// scaffold can be re-run without touching files a developer has edited.
type Emitter struct {
	mu      sync.Mutex
	written []string
	skipped []string
}

func New() *Emitter {
	return &Emitter{}
}

func (e *Emitter) Emit(path, content string) (Result, error) {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return Skipped, fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if os.IsExist(err) {
		logger.Info("File already exists: %s", path)
		e.record(Skipped, path)
		return Skipped, nil
	}
	if err != nil {
		return Skipped, fmt.Errorf("failed to create output file %s: %w", path, err)
	}

	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return Skipped, fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return Skipped, fmt.Errorf("failed to close %s: %w", path, err)
	}

	logger.Info("Wrote: %s", path)
	e.record(Written, path)
	return Written, nil
}

func (e *Emitter) record(r Result, path string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if r == Written {
		e.written = append(e.written, path)
	} else {
		e.skipped = append(e.skipped, path)
	}
}

func (e *Emitter) Written() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.written...)
}

func (e *Emitter) Skipped() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.skipped...)
}
