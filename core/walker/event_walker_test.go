package walker

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, root string, rel string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("summary: test\n"), 0644))
}

func relPaths(t *testing.T, w *EventWalkerImpl, root string) []string {
	t.Helper()
	entries, err := w.Walk(root)
	require.NoError(t, err)

	var rels []string
	for _, e := range entries {
		assert.Equal(t, filepath.Join(root, e.RelativePath), e.Path)
		rels = append(rels, filepath.ToSlash(e.RelativePath))
	}
	sort.Strings(rels)
	return rels
}

func TestWalkFindsNestedDefinitions(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "health.yaml")
	touch(t, root, "orders/create.yaml")
	touch(t, root, "orders/v1/admin/list.yaml")

	got := relPaths(t, NewEventWalker(".yaml", nil), root)
	assert.Equal(t, []string{"health.yaml", "orders/create.yaml", "orders/v1/admin/list.yaml"}, got)
}

func TestWalkSkipsNonMatchingFiles(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "README.md")
	touch(t, root, "orders/create.yml")
	touch(t, root, "orders/deep/er/notes.txt")
	touch(t, root, "orders/deep/er/keep.yaml")

	got := relPaths(t, NewEventWalker(".yaml", nil), root)
	assert.Equal(t, []string{"orders/deep/er/keep.yaml"}, got)
}

func TestWalkHonoursExcludedDirectories(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "node_modules/pkg/events.yaml")
	touch(t, root, "users/get.yaml")

	got := relPaths(t, NewEventWalker(".yaml", []string{"node_modules"}), root)
	assert.Equal(t, []string{"users/get.yaml"}, got)
}

func TestWalkDeepTree(t *testing.T) {
	root := t.TempDir()
	segments := make([]string, 64)
	for i := range segments {
		segments[i] = "d"
	}
	deep := strings.Join(segments, "/") + "/leaf.yaml"
	touch(t, root, deep)

	got := relPaths(t, NewEventWalker(".yaml", nil), root)
	assert.Equal(t, []string{deep}, got)
}

func TestWalkMissingRoot(t *testing.T) {
	_, err := NewEventWalker(".yaml", nil).Walk(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}
