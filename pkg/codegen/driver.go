// Copyright 2025 DoorDash, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the specific language governing permissions and limitations under the License.

package codegen

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/pb33f/libopenapi"
	v3high "github.com/pb33f/libopenapi/datamodel/high/v3"
)

// TemplateContext is the data handed to every output template.
type TemplateContext struct {
	Title       string
	Version     string
	Description string
	BaseURL     string

	PrefixClass string
	ClientClass string
	BaseClass   string
	ModelBase   string

	Imports      string
	ModelImports string

	Operations []*Operation
	Models     []*ModelDefinition
}

// Generator renders a typed client package from an API document. Construct
// one per configuration; Generate may be called for multiple documents.
type Generator struct {
	cfg       Configuration
	tpl       *template.Template
	formatter CodeFormatter
	logger    *slog.Logger
}

// NewGenerator loads the templates (built-in plus any override directory)
// and probes for the external formatting tools.
func NewGenerator(cfg Configuration) (*Generator, error) {
	cfg = cfg.WithDefaults()

	tpl, err := loadTemplates(cfg.TemplateDir)
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}

	return &Generator{
		cfg:       cfg,
		tpl:       tpl,
		formatter: NewCodeFormatter(),
		logger:    slog.Default(),
	}, nil
}

// SetLogger replaces the default logger.
func (g *Generator) SetLogger(logger *slog.Logger) {
	if logger != nil {
		g.logger = logger
	}
}

// Generate parses the document and renders every loaded template, returning
// output filename to formatted contents.
func (g *Generator) Generate(specContents []byte) (map[string]string, error) {
	if len(bytes.TrimSpace(specContents)) == 0 {
		return nil, ErrEmptyDocument
	}

	aliases, err := g.cfg.LoadAliases()
	if err != nil {
		return nil, err
	}

	doc, err := libopenapi.NewDocument(specContents)
	if err != nil {
		return nil, fmt.Errorf("error loading document: %w", err)
	}
	builtModel, errs := doc.BuildV3Model()
	if len(errs) > 0 {
		return nil, fmt.Errorf("error building document model: %w", errors.Join(errs...))
	}
	model := &builtModel.Model

	componentModels, err := collectComponentModels(model, g.cfg, aliases)
	if err != nil {
		return nil, err
	}

	extractor := NewExtractor(model, g.cfg, aliases, g.logger)
	if err := extractor.ExtractAll(); err != nil {
		return nil, err
	}

	ctx := g.buildContext(model, extractor, componentModels)

	files := make(map[string]string)
	names := templateNames(g.tpl)
	sort.Strings(names)

	for _, name := range names {
		var buf bytes.Buffer
		if err := g.tpl.ExecuteTemplate(&buf, name, ctx); err != nil {
			return nil, fmt.Errorf("error generating %s: %w", name, err)
		}

		outName := strings.TrimSuffix(name, ".tmpl") + ".py"
		if name == "models.tmpl" {
			outName = g.cfg.Output.ModelsFilename
		}

		formatted, err := g.formatter.Format(buf.String())
		if err != nil {
			return nil, fmt.Errorf("error formatting %s (template %s): %w", outName, name, err)
		}
		files[outName] = formatted
	}
	return files, nil
}

// buildContext assembles the template data: sorted operations, component
// models followed by synthesized bundles, and the two import blocks.
func (g *Generator) buildContext(model *v3high.Document, extractor *Extractor, componentModels []*ModelDefinition) *TemplateContext {
	ctx := &TemplateContext{
		PrefixClass: g.cfg.PrefixClass,
		ClientClass: g.cfg.ClientClassName(),
		BaseClass:   g.cfg.BaseClientClassName(),
		ModelBase:   g.cfg.BaseModelClassName(),
		BaseURL:     g.cfg.BaseURL,
		Operations:  extractor.SortedOperations(),
		Models:      append(componentModels, extractor.BundleModels()...),
	}

	if model.Info != nil {
		ctx.Title = model.Info.Title
		ctx.Version = model.Info.Version
		ctx.Description = model.Info.Description
	}
	if ctx.BaseURL == "" && len(model.Servers) > 0 {
		ctx.BaseURL = model.Servers[0].URL
	}

	modelImports := NewImportSet()
	if imp, ok := g.cfg.BaseModelClassImport(); ok {
		modelImports.Add(imp.From, imp.Name)
	}
	for _, m := range ctx.Models {
		modelImports.AddAll(m.imports())
	}
	ctx.ModelImports = modelImports.Render()

	clientImports := extractor.Imports()
	clientImports.Add(".endpoints", "Endpoints")
	if imp, ok := g.cfg.BaseClientClassImport(); ok {
		clientImports.Add(imp.From, imp.Name)
	}
	for _, ref := range extractor.ModelRefs() {
		clientImports.Add(".models", ref)
	}
	for _, op := range ctx.Operations {
		if !op.HasNoContent() {
			clientImports.Add("pydantic", "parse_obj_as")
			break
		}
	}
	ctx.Imports = clientImports.Render()

	return ctx
}

// WriteFiles writes the generated files under the configured output
// directory, each ending with exactly one newline.
func (g *Generator) WriteFiles(files map[string]string) error {
	if err := os.MkdirAll(g.cfg.Output.Directory, 0o755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	for name, contents := range files {
		contents = strings.TrimRight(contents, "\n") + "\n"
		target := filepath.Join(g.cfg.Output.Directory, name)
		if err := os.WriteFile(target, []byte(contents), 0o644); err != nil {
			return fmt.Errorf("error writing %s: %w", target, err)
		}
	}
	return nil
}

// Generate is the one-shot entry point used by the command line tool.
func Generate(specContents []byte, cfg Configuration) error {
	g, err := NewGenerator(cfg)
	if err != nil {
		return err
	}
	files, err := g.Generate(specContents)
	if err != nil {
		return err
	}
	return g.WriteFiles(files)
}
