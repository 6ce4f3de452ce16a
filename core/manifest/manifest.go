package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
	"github.com/tristendillon/gsqa/core/logger"
)

var ErrManifestNotFound = errors.New("manifest not found")

type Script struct {
	Name    string
	Command string
}

// TestScripts are the package.json entries that build and run the scaffolded
// mocha suite.
var TestScripts = []Script{
	{Name: "build:test", Command: "rm -rf dist && godspeed build && rm -rf test/dist && tsc -p tsconfig.test.json"},
	{Name: "test", Command: "npm run build:test && mocha test/dist/**/*.test.js"},
	{Name: "test:single", Command: "mocha -r ts-node/register --project tsconfig.test.json"},
}

var prettyOptions = &pretty.Options{Width: 80, Indent: "  "}

// MergeScripts sets each script under "scripts" in the manifest at path.
// Existing entries keep their position and are replaced on a name clash;
// nothing is removed.
func MergeScripts(path string, scripts []Script) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("%w at %s", ErrManifestNotFound, path)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	merged, err := Merge(data, scripts)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", path, err)
	}

	if err := os.WriteFile(path, merged, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	logger.Info("Updated scripts in %s", path)
	return nil
}

// Merge returns data with scripts applied, re-indented with two spaces and a
// trailing newline.
func Merge(data []byte, scripts []Script) ([]byte, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON")
	}

	out := data
	if !gjson.GetBytes(out, "scripts").IsObject() {
		var err error
		if out, err = sjson.SetRawBytes(out, "scripts", []byte("{}")); err != nil {
			return nil, err
		}
	}

	for _, s := range scripts {
		if prev := gjson.GetBytes(out, scriptPath(s.Name)); prev.Exists() && prev.String() != s.Command {
			logger.Debug("Replacing script %q: %q", s.Name, prev.String())
		}

		var err error
		out, err = sjson.SetBytes(out, scriptPath(s.Name), s.Command)
		if err != nil {
			return nil, fmt.Errorf("failed to set script %s: %w", s.Name, err)
		}
	}

	out = pretty.PrettyOptions(out, prettyOptions)
	if !bytes.HasSuffix(out, []byte("\n")) {
		out = append(out, '\n')
	}
	return out, nil
}

var pathEscaper = strings.NewReplacer(
	`\`, `\\`,
	`.`, `\.`,
	`*`, `\*`,
	`?`, `\?`,
	`|`, `\|`,
	`#`, `\#`,
	`@`, `\@`,
)

func scriptPath(name string) string {
	return "scripts." + pathEscaper.Replace(name)
}
