package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lithammer/dedent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(dedent.Dedent(body)), 0644))
	return path
}

func TestLoadFromMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromOverridesKeepDefaults(t *testing.T) {
	path := writeConfig(t, `
		tests:
		  extension: .ts
		dependency:
		  manager: npm
	`)

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, ".ts", cfg.Tests.Extension)
	assert.Equal(t, filepath.Join("test", "eventHandlers"), cfg.Tests.Output)
	assert.Equal(t, "npm", cfg.Dependency.Manager)
	assert.Equal(t, "@types/mocha", cfg.Dependency.Name)
	assert.Equal(t, ".yaml", cfg.Events.Extension)
}

func TestLoadFromRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "unknown_manager", body: "dependency:\n  manager: bun\n"},
		{name: "extension_without_dot", body: "events:\n  extension: yaml\n"},
		{name: "env_target_equals_base", body: "env:\n  target: .env\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadFromMalformedYaml(t *testing.T) {
	_, err := LoadFrom(writeConfig(t, "events: [unterminated"))
	assert.ErrorContains(t, err, "failed to parse yaml")
}

func TestExcludeIsOptIn(t *testing.T) {
	assert.Empty(t, Default().Events.Exclude)

	cfg, err := LoadFrom(writeConfig(t, `
		events:
		  exclude: [node_modules]
	`))
	require.NoError(t, err)
	assert.Equal(t, []string{"node_modules"}, cfg.Events.Exclude)
}
