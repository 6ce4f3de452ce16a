package walker

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tristendillon/gsqa/core/logger"
	"github.com/tristendillon/gsqa/core/models"
)

type EventWalker interface {
	Walk(root string) ([]models.SourceEntry, error)
}

type EventWalkerImpl struct {
	Extension string
	Exclude   []string
}

func NewEventWalker(extension string, exclude []string) *EventWalkerImpl {
	return &EventWalkerImpl{
		Extension: extension,
		Exclude:   exclude,
	}
}

// Walk lists every regular file under root ending in w.Extension. Directories
// are visited from an explicit worklist so deep trees do not grow the stack.
// Symlinked directories are not followed.
func (w *EventWalkerImpl) Walk(root string) ([]models.SourceEntry, error) {
	var discovered []models.SourceEntry

	pending := []string{root}
	for len(pending) > 0 {
		dir := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
		}

		for _, entry := range entries {
			fullPath := filepath.Join(dir, entry.Name())

			if entry.IsDir() {
				if w.isExcluded(entry.Name()) {
					logger.Debug("Excluding directory: %s", fullPath)
					continue
				}
				pending = append(pending, fullPath)
				continue
			}

			if !entry.Type().IsRegular() || !strings.HasSuffix(entry.Name(), w.Extension) {
				continue
			}

			relPath, err := filepath.Rel(root, fullPath)
			if err != nil {
				return nil, err
			}

			logger.Debug("Discovered event definition: %s", relPath)
			discovered = append(discovered, models.SourceEntry{
				Path:         fullPath,
				RelativePath: relPath,
			})
		}
	}

	return discovered, nil
}

func (w *EventWalkerImpl) isExcluded(name string) bool {
	for _, ex := range w.Exclude {
		if name == ex {
			return true
		}
	}
	return false
}
