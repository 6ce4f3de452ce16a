package mapper

import (
	"path/filepath"
	"strings"

	"github.com/tristendillon/gsqa/core/models"
)

// Map derives the output location, logical name and import prefix for a
// discovered definition file.
func Map(entry models.SourceEntry, layout models.Layout) models.EventTarget {
	depth := ImportDepth(entry.RelativePath)
	return models.EventTarget{
		Source:       entry,
		LogicalName:  LogicalName(entry.RelativePath, layout.SourceExtension),
		OutputPath:   OutputPath(entry.RelativePath, layout),
		ImportDepth:  depth,
		ImportPrefix: ImportPrefix(depth),
	}
}

// LogicalName joins the directory segments of rel and its base name, minus
// the source extension, with dots: orders/create.yaml becomes orders.create.
func LogicalName(rel, sourceExt string) string {
	base := strings.TrimSuffix(filepath.Base(rel), sourceExt)
	return strings.Join(append(dirSegments(rel), base), ".")
}

func OutputPath(rel string, layout models.Layout) string {
	out := filepath.Join(layout.OutputRoot, rel)
	if strings.HasSuffix(out, layout.SourceExtension) {
		out = strings.TrimSuffix(out, layout.SourceExtension) + layout.OutputExtension
	}
	return out
}

// ImportDepth counts the segments of the directory part of rel only.
func ImportDepth(rel string) int {
	return len(dirSegments(rel))
}

// ImportPrefix climbs depth+1 levels: the generated file sits one directory
// below the test root, next to helpers/ and hooks/.
func ImportPrefix(depth int) string {
	return strings.Repeat("../", depth+1)
}

func dirSegments(rel string) []string {
	dir := filepath.Dir(rel)
	if dir == "." {
		return nil
	}
	return strings.Split(filepath.ToSlash(dir), "/")
}
