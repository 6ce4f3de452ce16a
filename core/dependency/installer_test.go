package dependency

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	output    []byte
	outputErr error
	runErr    error
	calls     [][]string
}

func (f *fakeRunner) Output(_ context.Context, _ string, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	return f.output, f.outputErr
}

func (f *fakeRunner) Run(_ context.Context, _ string, name string, args ...string) error {
	f.calls = append(f.calls, append([]string{name}, args...))
	return f.runErr
}

func newPM(t *testing.T, manager string, r *fakeRunner) *PackageManager {
	t.Helper()
	pm, err := NewPackageManager(manager, t.TempDir())
	require.NoError(t, err)
	pm.Runner = r
	return pm
}

func TestEnsureAlreadyInstalled(t *testing.T) {
	r := &fakeRunner{output: []byte(`[{"name":"app","devDependencies":{"@types/mocha":{"version":"10.0.6"}}}]`)}

	require.NoError(t, Ensure(context.Background(), newPM(t, "pnpm", r), "@types/mocha"))
	assert.Equal(t, [][]string{{"pnpm", "ls", "@types/mocha", "--json"}}, r.calls)
}

func TestEnsureInstallsWhenMissing(t *testing.T) {
	r := &fakeRunner{output: []byte(`[{"name":"app","dependencies":{"@types/mocha":{}}}]`)}

	require.NoError(t, Ensure(context.Background(), newPM(t, "pnpm", r), "@types/mocha"))
	assert.Equal(t, [][]string{
		{"pnpm", "ls", "@types/mocha", "--json"},
		{"pnpm", "install", "--save-dev", "@types/mocha"},
	}, r.calls)
}

func TestEnsureFallsBackWhenCheckFails(t *testing.T) {
	r := &fakeRunner{outputErr: errors.New("exit status 1")}

	require.NoError(t, Ensure(context.Background(), newPM(t, "pnpm", r), "@types/mocha"))
	assert.Len(t, r.calls, 2)
	assert.Equal(t, "install", r.calls[1][1])
}

func TestEnsureFallsBackOnGarbageOutput(t *testing.T) {
	r := &fakeRunner{output: []byte("not json")}

	require.NoError(t, Ensure(context.Background(), newPM(t, "pnpm", r), "@types/mocha"))
	assert.Len(t, r.calls, 2)
}

func TestEnsureInstallFailurePropagates(t *testing.T) {
	r := &fakeRunner{outputErr: errors.New("boom"), runErr: errors.New("network down")}

	err := Ensure(context.Background(), newPM(t, "pnpm", r), "@types/mocha")
	assert.ErrorContains(t, err, "network down")
}

func TestNpmTreeShape(t *testing.T) {
	r := &fakeRunner{output: []byte(`{"name":"app","dependencies":{"@types/mocha":{"version":"10.0.6"}}}`)}

	installed, err := newPM(t, "npm", r).Installed(context.Background(), "@types/mocha")
	require.NoError(t, err)
	assert.True(t, installed)
}

func TestUnsupportedManager(t *testing.T) {
	_, err := NewPackageManager("bun", ".")
	assert.Error(t, err)
}
