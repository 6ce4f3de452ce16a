package report

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ddddddO/gtree"
)

// Tree renders paths, relative to the project root, as a directory tree
// under label.
func Tree(label string, paths []string) (string, error) {
	root := gtree.NewRoot(label)
	for _, p := range paths {
		node := root
		for _, seg := range strings.Split(filepath.ToSlash(p), "/") {
			if seg == "" || seg == "." {
				continue
			}
			node = node.Add(seg)
		}
	}

	var buf bytes.Buffer
	if err := gtree.OutputProgrammably(&buf, root); err != nil {
		return "", fmt.Errorf("failed to render tree: %w", err)
	}
	return buf.String(), nil
}
