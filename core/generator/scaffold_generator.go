package generator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tristendillon/gsqa/core/config"
	"github.com/tristendillon/gsqa/core/dependency"
	"github.com/tristendillon/gsqa/core/emitter"
	"github.com/tristendillon/gsqa/core/envfile"
	"github.com/tristendillon/gsqa/core/logger"
	"github.com/tristendillon/gsqa/core/manifest"
	"github.com/tristendillon/gsqa/core/mapper"
	"github.com/tristendillon/gsqa/core/models"
	"github.com/tristendillon/gsqa/core/report"
	"github.com/tristendillon/gsqa/core/template_engine"
	"github.com/tristendillon/gsqa/core/walker"
)

type ScaffoldGenerator struct {
	wd          string
	cfg         *config.Config
	Walker      walker.EventWalker
	Engine      *template_engine.TemplateEngine
	Installer   dependency.Installer
	SkipInstall bool
}

// Summary lists the files a run wrote and the ones it left alone.
type Summary struct {
	Written []string
	Skipped []string
}

func NewScaffoldGenerator(wd string, cfg *config.Config) (*ScaffoldGenerator, error) {
	installer, err := dependency.NewPackageManager(cfg.Dependency.Manager, wd)
	if err != nil {
		return nil, err
	}

	return &ScaffoldGenerator{
		wd:        wd,
		cfg:       cfg,
		Walker:    walker.NewEventWalker(cfg.Events.Extension, cfg.Events.Exclude),
		Engine:    template_engine.NewTemplateEngine(),
		Installer: installer,
	}, nil
}

func (g *ScaffoldGenerator) path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(g.wd, p)
}

func (g *ScaffoldGenerator) Layout() models.Layout {
	return models.Layout{
		SourceRoot:      g.path(g.cfg.Events.Source),
		SourceExtension: g.cfg.Events.Extension,
		OutputRoot:      g.path(g.cfg.Tests.Output),
		OutputExtension: g.cfg.Tests.Extension,
	}
}

// ScaffoldEventTests writes a test stub for every event definition that does
// not have one yet.
func (g *ScaffoldGenerator) ScaffoldEventTests() (*Summary, error) {
	em := emitter.New()
	if err := g.scaffoldEvents(em); err != nil {
		return nil, err
	}
	return g.summarize(em), nil
}

// Scaffold sets up the whole test harness: support files, package.json
// scripts, .test.env, the mocha types, and finally the event stubs.
func (g *ScaffoldGenerator) Scaffold(ctx context.Context) (*Summary, error) {
	em := emitter.New()

	if err := g.writeSupportFiles(em); err != nil {
		return nil, err
	}

	if err := manifest.MergeScripts(g.path(g.cfg.Manifest.Path), manifest.TestScripts); err != nil {
		return nil, err
	}

	if _, err := envfile.EnsureFiltered(em, g.path(g.cfg.Env.Base), g.path(g.cfg.Env.Target), g.cfg.Env.Allow); err != nil {
		return nil, err
	}

	if g.SkipInstall {
		logger.Debug("Skipping dependency check for %s", g.cfg.Dependency.Name)
	} else if err := dependency.Ensure(ctx, g.Installer, g.cfg.Dependency.Name); err != nil {
		return nil, err
	}

	if err := g.scaffoldEvents(em); err != nil {
		return nil, err
	}

	logger.Info("Scaffold complete. Ready to run tests.")
	return g.summarize(em), nil
}

func (g *ScaffoldGenerator) writeSupportFiles(em *emitter.Emitter) error {
	files, err := g.Engine.SupportFiles(template_engine.TEMPLATES.SUPPORT.Ref, nil)
	if err != nil {
		return fmt.Errorf("failed to load support templates: %w", err)
	}

	for _, f := range files {
		if _, err := em.Emit(g.path(filepath.FromSlash(f.RelPath)), f.Content); err != nil {
			return err
		}
	}
	return nil
}

func (g *ScaffoldGenerator) scaffoldEvents(em *emitter.Emitter) error {
	layout := g.Layout()

	if info, err := os.Stat(layout.SourceRoot); os.IsNotExist(err) {
		logger.Warn("No events directory found at %s", g.cfg.Events.Source)
		return nil
	} else if err != nil {
		return fmt.Errorf("error checking for %s: %w", layout.SourceRoot, err)
	} else if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", layout.SourceRoot)
	}

	entries, err := g.Walker.Walk(layout.SourceRoot)
	if err != nil {
		return fmt.Errorf("failed to walk directory: %w", err)
	}

	for _, entry := range entries {
		target := mapper.Map(entry, layout)

		content, err := g.Engine.RenderEventTest(template_engine.EventTestData{
			ImportPrefix: target.ImportPrefix,
			LogicalName:  target.LogicalName,
		})
		if err != nil {
			return fmt.Errorf("failed to render test for %s: %w", entry.RelativePath, err)
		}

		if _, err := em.Emit(target.OutputPath, content); err != nil {
			return err
		}
	}

	logger.Info("Event test scaffolding complete.")
	return nil
}

func (g *ScaffoldGenerator) summarize(em *emitter.Emitter) *Summary {
	s := &Summary{Written: em.Written(), Skipped: em.Skipped()}
	logger.Info("%d file(s) written, %d already present", len(s.Written), len(s.Skipped))

	if len(s.Written) == 0 {
		return s
	}

	rel := make([]string, 0, len(s.Written))
	for _, p := range s.Written {
		if r, err := filepath.Rel(g.wd, p); err == nil {
			p = r
		}
		rel = append(rel, p)
	}

	tree, err := report.Tree(filepath.Base(g.wd), rel)
	if err != nil {
		logger.Debug("Could not render summary tree: %v", err)
		return s
	}
	logger.Info("Generated files:\n%s", tree)
	return s
}
