package template_engine

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
	"text/template"

	"github.com/tristendillon/gsqa/core/logger"
)

const templateRoot = "templates"

type TemplateRef struct {
	Path  string
	IsDir bool
}

func (tr TemplateRef) IsFile() bool {
	return !tr.IsDir
}

func (tr TemplateRef) IsDirectory() bool {
	return tr.IsDir
}

// RenderedFile is a template output addressed relative to the project root.
type RenderedFile struct {
	RelPath string
	Content string
}

type TemplateEngine struct {
	fsys fs.FS
}

func NewTemplateEngine() *TemplateEngine {
	return NewTemplateEngineFS(TemplateFS)
}

// NewTemplateEngineFS reads templates from fsys instead of the embedded set.
// fsys must contain a top-level "templates" directory.
func NewTemplateEngineFS(fsys fs.FS) *TemplateEngine {
	return &TemplateEngine{fsys: fsys}
}

// Render executes a single file template and returns the text. It never
// touches the file system outside the template set.
func (te *TemplateEngine) Render(templateRef TemplateRef, data interface{}) (string, error) {
	if templateRef.IsDirectory() {
		return "", fmt.Errorf("cannot render directory reference: %s", templateRef.Path)
	}
	return te.renderPath(path.Join(templateRoot, templateRef.Path), data)
}

// RenderEventTest renders the test stub for one event definition.
func (te *TemplateEngine) RenderEventTest(data EventTestData) (string, error) {
	return te.Render(TEMPLATES.EVENTS.EVENT_TEST_TS, data)
}

// SupportFiles walks a template folder. Files ending in .tmpl are executed
// with data and lose the suffix; everything else is returned verbatim.
func (te *TemplateEngine) SupportFiles(templateRef TemplateRef, data interface{}) ([]RenderedFile, error) {
	if templateRef.IsFile() {
		return nil, fmt.Errorf("cannot list folder from file reference: %s", templateRef.Path)
	}

	templateDir := path.Join(templateRoot, templateRef.Path)
	logger.Debug("Collecting support files from template reference: %s", templateDir)

	var files []RenderedFile
	err := fs.WalkDir(te.fsys, templateDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		relPath := strings.TrimPrefix(p, templateDir+"/")

		if !strings.HasSuffix(p, ".tmpl") {
			content, err := fs.ReadFile(te.fsys, p)
			if err != nil {
				return fmt.Errorf("failed to read template file %s: %w", p, err)
			}
			files = append(files, RenderedFile{RelPath: relPath, Content: string(content)})
			return nil
		}

		content, err := te.renderPath(p, data)
		if err != nil {
			return err
		}
		files = append(files, RenderedFile{
			RelPath: strings.TrimSuffix(relPath, ".tmpl"),
			Content: content,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

func (te *TemplateEngine) renderPath(templatePath string, data interface{}) (string, error) {
	content, err := fs.ReadFile(te.fsys, templatePath)
	if err != nil {
		return "", fmt.Errorf("failed to read template file %s: %w", templatePath, err)
	}

	tmpl, err := template.New(path.Base(templatePath)).
		Option("missingkey=error").
		Parse(string(content))
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", templatePath, err)
	}

	var out strings.Builder
	if err := tmpl.Execute(&out, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", templatePath, err)
	}

	return out.String(), nil
}

func (te *TemplateEngine) ValidateTemplate(templateRef TemplateRef) error {
	templatePath := path.Join(templateRoot, templateRef.Path)

	info, err := fs.Stat(te.fsys, templatePath)
	if err != nil {
		return fmt.Errorf("template not found: %s", templateRef.Path)
	}

	if info.IsDir() != templateRef.IsDirectory() {
		return fmt.Errorf("template reference type mismatch for %s: expected dir=%t, got dir=%t",
			templateRef.Path, templateRef.IsDirectory(), info.IsDir())
	}

	return nil
}
