package codegen

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"text/template"
)

// Embed the templates directory
//
//go:embed templates
var templates embed.FS

// TemplateFunctions is passed to the template engine, and we can call each
// function here by keyName from the template code.
var TemplateFunctions = template.FuncMap{
	"snake":     ToSnakeCase,
	"pascal":    ToPascalCase,
	"camel":     ToCamelCase,
	"caps":      strings.ToUpper,
	"lower":     strings.ToLower,
	"ternary":   ternary,
	"join":      join,
	"hasPrefix": strings.HasPrefix,
	"hasSuffix": strings.HasSuffix,
}

// Ternary function
func ternary(cond bool, trueVal, falseVal string) string {
	if cond {
		return trueVal
	}
	return falseVal
}

func join(sep string, values []string) string {
	return strings.Join(values, sep)
}

// loadTemplates parses the embedded templates, then layers any templates
// found under overrideDir on top of them, replacing built-in versions by
// name. A non-empty overrideDir that does not exist is an error.
func loadTemplates(overrideDir string) (*template.Template, error) {
	tpl := template.New("templates").Funcs(TemplateFunctions)

	err := fs.WalkDir(templates, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("error walking directory %s: %w", path, err)
		}
		if d.IsDir() {
			return nil
		}

		buf, err := templates.ReadFile(path)
		if err != nil {
			return fmt.Errorf("error reading file '%s': %w", path, err)
		}

		templateName := strings.TrimPrefix(path, "templates/")
		if _, err := tpl.New(templateName).Parse(string(buf)); err != nil {
			return fmt.Errorf("parsing template '%s': %w", path, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if overrideDir == "" {
		return tpl, nil
	}

	info, err := os.Stat(overrideDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %q", ErrTemplateDirNotFound, overrideDir)
	}

	dirFS := os.DirFS(overrideDir)
	err = fs.WalkDir(dirFS, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("error walking directory %s: %w", path, err)
		}
		if d.IsDir() || !strings.HasSuffix(path, ".tmpl") {
			return nil
		}

		buf, err := fs.ReadFile(dirFS, path)
		if err != nil {
			return fmt.Errorf("error reading file '%s': %w", path, err)
		}
		if _, err := tpl.New(path).Parse(string(buf)); err != nil {
			return fmt.Errorf("parsing template '%s': %w", path, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tpl, nil
}

// templateNames lists the loaded .tmpl templates, override versions already
// merged in.
func templateNames(tpl *template.Template) []string {
	var names []string
	for _, t := range tpl.Templates() {
		if strings.HasSuffix(t.Name(), ".tmpl") {
			names = append(names, t.Name())
		}
	}
	return names
}
