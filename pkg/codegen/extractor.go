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
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	v3high "github.com/pb33f/libopenapi/datamodel/high/v3"
)

const (
	pathParamsSuffix  = "PathParams"
	queryParamsSuffix = "QueryParams"

	bodyArgumentName = "body"
)

// responsePriority lists the status codes considered a successful response,
// highest priority first.
var responsePriority = []string{"200", "201", "202"}

// Extractor walks every operation of a built document and derives the typed
// call signature for each one: synthesized parameter bundle models, the
// request body argument, and the selected response annotation.
type Extractor struct {
	cfg     Configuration
	model   *v3high.Document
	aliases map[string]string
	logger  *slog.Logger

	operations  map[string]*Operation
	order       []string
	bundleNames map[string]struct{}
	bundles     []*ModelDefinition
	modelRefs   map[string]struct{}
	imports     *ImportSet
}

// NewExtractor builds an extractor over a resolved document model. A nil
// logger falls back to slog.Default.
func NewExtractor(model *v3high.Document, cfg Configuration, aliases map[string]string, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		cfg:         cfg,
		model:       model,
		aliases:     aliases,
		logger:      logger,
		operations:  make(map[string]*Operation),
		bundleNames: make(map[string]struct{}),
		modelRefs:   make(map[string]struct{}),
		imports:     NewImportSet(),
	}
}

// ExtractAll processes every path and operation in document order. Each
// operation is keyed by its resolved path, so a key collision keeps only the
// last occurrence. Unresolvable parameters are dropped with a debug log;
// references into other documents abort extraction.
func (e *Extractor) ExtractAll() error {
	if e.model.Paths == nil {
		return nil
	}

	for path, pathItem := range e.model.Paths.PathItems.FromOldest() {
		for method, op := range pathItem.GetOperations().FromOldest() {
			if op.Deprecated != nil && *op.Deprecated && e.cfg.SkipDeprecatedEnabled() {
				e.logger.Debug("skipping deprecated operation", "path", path, "method", method)
				continue
			}

			extracted, err := e.extractOperation(path, method, pathItem, op)
			if err != nil {
				return fmt.Errorf("error extracting %s %s: %w", strings.ToUpper(method), path, err)
			}

			key := resolvedPathKey(path, method)
			if _, exists := e.operations[key]; !exists {
				e.order = append(e.order, key)
			}
			e.operations[key] = extracted
		}
	}
	return nil
}

// SortedOperations returns the extracted operations ordered by path, then by
// first appearance for operations sharing a path.
func (e *Extractor) SortedOperations() []*Operation {
	ops := make([]*Operation, 0, len(e.order))
	for _, key := range e.order {
		ops = append(ops, e.operations[key])
	}
	sort.SliceStable(ops, func(i, j int) bool {
		return ops[i].Path < ops[j].Path
	})
	return ops
}

// BundleModels returns the synthesized parameter bundle models, one per
// distinct class name, in order of first synthesis.
func (e *Extractor) BundleModels() []*ModelDefinition {
	return e.bundles
}

// ModelRefs returns the sorted names of every model class referenced from a
// generated signature.
func (e *Extractor) ModelRefs() []string {
	refs := make([]string, 0, len(e.modelRefs))
	for ref := range e.modelRefs {
		refs = append(refs, ref)
	}
	sort.Strings(refs)
	return refs
}

// Imports returns the accumulated imports the generated signatures need.
func (e *Extractor) Imports() *ImportSet {
	return e.imports
}

func (e *Extractor) extractOperation(path, method string, pathItem *v3high.PathItem, op *v3high.Operation) (*Operation, error) {
	if method == "" {
		return nil, ErrOperationNameEmpty
	}
	if path == "" {
		return nil, ErrRequestPathEmpty
	}

	result := &Operation{
		Method:      method,
		Path:        path,
		OperationID: op.OperationId,
		Summary:     op.Summary,
		Description: op.Description,
		Deprecated:  op.Deprecated != nil && *op.Deprecated,
		Tags:        op.Tags,
		Security:    op.Security,
	}

	pathFields, queryFields, err := e.collectParameterFields(path, method, pathItem, op)
	if err != nil {
		return nil, err
	}

	if len(pathFields) > 0 {
		result.PathArgument = e.synthesizeBundle(pathFields, pathParamsSuffix)
	}
	if len(queryFields) > 0 {
		result.QueryArgument = e.synthesizeBundle(queryFields, queryParamsSuffix)
	}

	request, err := e.extractRequestBody(path, method, op)
	if err != nil {
		return nil, err
	}
	result.Request = request

	response, err := e.resolveResponse(path, method, op)
	if err != nil {
		return nil, err
	}
	result.Response = response

	result.Arguments = assembleArguments(result.PathArgument, result.QueryArgument, result.Request)
	return result, nil
}

// collectParameterFields merges path-item level parameters with operation
// level ones, the operation winning on a name+location collision, and splits
// the result into path and query bundle fields.
func (e *Extractor) collectParameterFields(path, method string, pathItem *v3high.PathItem, op *v3high.Operation) (pathFields, queryFields []*FieldDefinition, err error) {
	merged := make([]*v3high.Parameter, 0, len(pathItem.Parameters)+len(op.Parameters))
	for _, param := range pathItem.Parameters {
		if overridden(param, op.Parameters) {
			continue
		}
		merged = append(merged, param)
	}
	merged = append(merged, op.Parameters...)

	for _, param := range merged {
		if param.In != "path" && param.In != "query" {
			e.logger.Debug("ignoring parameter location",
				"path", path, "method", method, "name", param.Name, "in", param.In)
			continue
		}

		field, ferr := e.deriveParameterField(param)
		if ferr != nil {
			if errors.Is(ferr, ErrModularReference) {
				return nil, nil, ferr
			}
			e.logger.Debug("dropping unresolvable parameter",
				"path", path, "method", method, "name", param.Name, "error", ferr)
			continue
		}

		if param.In == "path" {
			pathFields = append(pathFields, field)
		} else {
			queryFields = append(queryFields, field)
		}
	}
	return pathFields, queryFields, nil
}

func overridden(param *v3high.Parameter, locals []*v3high.Parameter) bool {
	for _, local := range locals {
		if local.Name == param.Name && local.In == param.In {
			return true
		}
	}
	return false
}

// deriveParameterField maps one declared parameter to a bundle model field.
// Parameter names are always snake_cased so bundle fields line up with the
// rewritten path placeholders. Path parameters are always required
// regardless of flags, and carry no alias: the URL template is formatted
// with the field names directly.
func (e *Extractor) deriveParameterField(param *v3high.Parameter) (*FieldDefinition, error) {
	required := param.Required != nil && *param.Required

	cfg := e.cfg
	cfg.SnakeCaseField = true
	if param.In == "path" {
		required = true
		cfg.ForceOptional = false
	}

	field, err := newFieldDefinition(param.Name, param.Schema, required, cfg, e.aliases)
	if err != nil {
		return nil, err
	}
	if param.In == "path" {
		field.Alias = ""
	}
	return field, nil
}

// synthesizeBundle creates (or reuses) the bundle model for a set of fields
// and returns the argument that receives it. The class name is derived from
// the field names, so two operations with identical parameter sets share one
// model class.
func (e *Extractor) synthesizeBundle(fields []*FieldDefinition, suffix string) *Argument {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, ToPascalCase(f.Name))
	}
	className := strings.Join(parts, "") + suffix

	if _, exists := e.bundleNames[className]; !exists {
		e.bundleNames[className] = struct{}{}
		e.bundles = append(e.bundles, &ModelDefinition{
			Name:           className,
			BaseClass:      e.cfg.BaseModelClassName(),
			Fields:         fields,
			PopulateByName: e.cfg.AllowPopulationByFieldName,
		})
	}
	e.modelRefs[className] = struct{}{}

	return &Argument{
		Name:     ToSnakeCase(suffix),
		Type:     className,
		Required: true,
	}
}

// extractRequestBody returns the body argument for the first JSON media type
// declared by the request body, or nil when the operation takes none.
func (e *Extractor) extractRequestBody(path, method string, op *v3high.Operation) (*Argument, error) {
	rb := op.RequestBody
	if rb == nil || rb.Content == nil {
		return nil, nil
	}

	for mediaType, mt := range rb.Content.FromOldest() {
		if !jsonMediaTypeRE.MatchString(mediaType) {
			continue
		}

		typ, err := annotationForSchema(mt.Schema)
		if err != nil {
			if errors.Is(err, ErrModularReference) {
				return nil, err
			}
			e.logger.Debug("dropping unresolvable request body",
				"path", path, "method", method, "mediaType", mediaType, "error", err)
			return nil, nil
		}

		e.recordType(typ)
		return &Argument{
			Name:     bodyArgumentName,
			Type:     typ.Annotation,
			Required: rb.Required != nil && *rb.Required,
		}, nil
	}
	return nil, nil
}

// resolveResponse picks the successful response annotation: the first status
// code in priority order, its application/json content (or first declared
// JSON variant, or any content as a last resort). Operations without a
// usable schema resolve to the no-content sentinel.
func (e *Extractor) resolveResponse(path, method string, op *v3high.Operation) (string, error) {
	if op.Responses == nil || op.Responses.Codes == nil {
		return NoContentResponse, nil
	}

	for _, code := range responsePriority {
		resp, ok := op.Responses.Codes.Get(code)
		if !ok || resp == nil || resp.Content == nil || resp.Content.Len() == 0 {
			continue
		}

		mt, ok := resp.Content.Get("application/json")
		if !ok {
			for mediaType, candidate := range resp.Content.FromOldest() {
				if jsonMediaTypeRE.MatchString(mediaType) {
					mt = candidate
					break
				}
			}
		}
		if mt == nil {
			if first := resp.Content.First(); first != nil {
				mt = first.Value()
			}
		}
		if mt == nil || mt.Schema == nil {
			continue
		}

		typ, err := annotationForSchema(mt.Schema)
		if err != nil {
			if errors.Is(err, ErrModularReference) {
				return "", err
			}
			e.logger.Debug("dropping unresolvable response schema",
				"path", path, "method", method, "status", code, "error", err)
			continue
		}

		e.recordType(typ)
		return typ.Annotation, nil
	}
	return NoContentResponse, nil
}

// recordType accumulates the imports and model references a signature
// annotation pulls in.
func (e *Extractor) recordType(typ PyType) {
	e.imports.AddAll(typ.Imports)
	if typ.ModelRef != "" {
		e.modelRefs[typ.ModelRef] = struct{}{}
	}
}

// assembleArguments orders the arguments as path bundle, query bundle, then
// body, and repairs the list so no required bare argument follows a
// defaulted one: such arguments are assigned the mandatory placeholder in
// place, never reordered.
func assembleArguments(args ...*Argument) []*Argument {
	result := make([]*Argument, 0, len(args))
	for _, a := range args {
		if a != nil {
			result = append(result, a)
		}
	}

	seenDefaulted := false
	for _, a := range result {
		bare := a.Required && a.Default == ""
		if bare && seenDefaulted {
			a.Default = mandatoryDefault
			bare = false
		}
		if !bare {
			seenDefaulted = true
		}
	}
	return result
}
