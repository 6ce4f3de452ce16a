package dependency

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/tidwall/gjson"
)

// Runner executes external commands in a working directory.
type Runner interface {
	Output(ctx context.Context, dir, name string, args ...string) ([]byte, error)
	Run(ctx context.Context, dir, name string, args ...string) error
}

type ExecRunner struct{}

func (ExecRunner) Output(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.Output()
}

// Run attaches the child to this process's stdio so install progress is
// visible.
func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// PackageManager is an Installer backed by a node package manager CLI.
type PackageManager struct {
	Name   string
	Dir    string
	Runner Runner
	// Fields lists the manifest sections of an `ls --json` tree that count
	// as installed.
	Fields []string
}

func NewPackageManager(name, dir string) (*PackageManager, error) {
	pm := &PackageManager{Name: name, Dir: dir, Runner: ExecRunner{}}
	switch name {
	case "pnpm":
		pm.Fields = []string{"devDependencies"}
	case "npm":
		pm.Fields = []string{"devDependencies", "dependencies"}
	default:
		return nil, fmt.Errorf("unsupported package manager: %s", name)
	}
	return pm, nil
}

func (pm *PackageManager) Installed(ctx context.Context, name string) (bool, error) {
	out, err := pm.Runner.Output(ctx, pm.Dir, pm.Name, "ls", name, "--json")
	if err != nil {
		return false, fmt.Errorf("%s ls %s: %w", pm.Name, name, err)
	}
	if !gjson.ValidBytes(out) {
		return false, fmt.Errorf("%s ls %s: unexpected output", pm.Name, name)
	}
	return pm.hasDependency(gjson.ParseBytes(out), name), nil
}

func (pm *PackageManager) Install(ctx context.Context, name string) error {
	return pm.Runner.Run(ctx, pm.Dir, pm.Name, "install", "--save-dev", name)
}

// hasDependency accepts either an array of project trees (pnpm) or a single
// tree (npm).
func (pm *PackageManager) hasDependency(result gjson.Result, name string) bool {
	trees := []gjson.Result{result}
	if result.IsArray() {
		trees = result.Array()
	}

	for _, tree := range trees {
		for _, field := range pm.Fields {
			found := false
			tree.Get(field).ForEach(func(key, _ gjson.Result) bool {
				found = key.String() == name
				return !found
			})
			if found {
				return true
			}
		}
	}
	return false
}
