package models

// SourceEntry is an event definition file found under the source root.
type SourceEntry struct {
	Path         string
	RelativePath string
}

// EventTarget is where the test stub for a SourceEntry goes and how it refers
// back to the shared test helpers.
type EventTarget struct {
	Source       SourceEntry
	LogicalName  string
	OutputPath   string
	ImportDepth  int
	ImportPrefix string
}

// Layout describes the source and destination trees for event scaffolding.
type Layout struct {
	SourceRoot      string
	SourceExtension string
	OutputRoot      string
	OutputExtension string
}
