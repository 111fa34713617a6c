package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pb33f/libopenapi/datamodel/high/base"
	v3high "github.com/pb33f/libopenapi/datamodel/high/v3"
)

// FieldDefinition is one typed field of a generated data model. Name is the
// output identifier, already cased, alias-mapped and disambiguated; Alias
// holds the original wire name whenever it differs from Name.
type FieldDefinition struct {
	Name        string
	Alias       string
	Type        PyType
	Required    bool
	Default     string
	Constraints []string
	Description string
}

// Render returns the field as one class-body line.
func (f *FieldDefinition) Render() string {
	decl := f.Name + ": " + f.Type.Annotation

	if f.Alias == "" && len(f.Constraints) == 0 {
		if f.Default == "" {
			return decl
		}
		return decl + " = " + f.Default
	}

	args := []string{f.Default}
	if f.Default == "" {
		if f.Required {
			args[0] = mandatoryDefault
		} else {
			args[0] = noneDefault
		}
	}
	if f.Alias != "" {
		args = append(args, fmt.Sprintf("alias='%s'", f.Alias))
	}
	args = append(args, f.Constraints...)
	return decl + " = Field(" + strings.Join(args, ", ") + ")"
}

// UsesField reports whether the rendered line calls Field(...), so the
// driver knows to import it.
func (f *FieldDefinition) UsesField() bool {
	return f.Alias != "" || len(f.Constraints) > 0
}

// ModelDefinition is one class (or type alias) emitted into the consolidated
// model file: a component schema or a synthesized parameter bundle.
type ModelDefinition struct {
	Name           string
	BaseClass      string
	Description    string
	Fields         []*FieldDefinition
	IsAlias        bool
	AliasOf        string
	PopulateByName bool
}

// imports aggregates the imports required by every field annotation.
func (m *ModelDefinition) imports() []PyImport {
	var res []PyImport
	for _, f := range m.Fields {
		res = append(res, f.Type.Imports...)
		if f.UsesField() {
			res = append(res, PyImport{From: "pydantic", Name: "Field"})
		}
	}
	return res
}

// newFieldDefinition builds one field descriptor from a schema, applying the
// casing flag, the alias table and reserved-word disambiguation. The
// original name is preserved as the alias whenever the output name differs.
func newFieldDefinition(origName string, proxy *base.SchemaProxy, required bool, cfg Configuration, aliases map[string]string) (*FieldDefinition, error) {
	name := origName
	if cfg.SnakeCaseField {
		name = ToSnakeCase(name)
	}
	if mapped, ok := aliases[origName]; ok {
		name = mapped
	}
	name = Disambiguate(name)

	typ, err := annotationForSchema(proxy)
	if err != nil {
		return nil, err
	}

	if cfg.ForceOptional {
		required = false
	}

	field := &FieldDefinition{
		Name:     name,
		Type:     typ,
		Required: required,
	}
	if name != origName {
		field.Alias = origName
	}

	var schema *base.Schema
	if !proxy.IsReference() {
		schema = proxy.Schema()
	}

	if schema != nil {
		field.Description = schema.Description
		if lit, ok := pyLiteral(schema.Default); ok {
			if !required || cfg.UseDefault {
				field.Default = lit
			}
		}
		if cfg.FieldConstraints {
			field.Constraints = schemaConstraints(schema)
		}
	}

	if !required {
		if !strings.HasPrefix(field.Type.Annotation, "Optional[") {
			field.Type = optionalType(field.Type)
		}
		if field.Default == "" && !cfg.StripDefaultNone {
			field.Default = noneDefault
		}
	}

	return field, nil
}

// schemaConstraints renders validation keyword arguments for Field(...).
func schemaConstraints(schema *base.Schema) []string {
	var res []string
	if schema.MinLength != nil {
		res = append(res, fmt.Sprintf("min_length=%d", *schema.MinLength))
	}
	if schema.MaxLength != nil {
		res = append(res, fmt.Sprintf("max_length=%d", *schema.MaxLength))
	}
	if schema.Minimum != nil {
		res = append(res, "ge="+formatNumber(*schema.Minimum))
	}
	if schema.Maximum != nil {
		res = append(res, "le="+formatNumber(*schema.Maximum))
	}
	if schema.MinItems != nil {
		res = append(res, fmt.Sprintf("min_items=%d", *schema.MinItems))
	}
	if schema.MaxItems != nil {
		res = append(res, fmt.Sprintf("max_items=%d", *schema.MaxItems))
	}
	if schema.Pattern != "" {
		res = append(res, fmt.Sprintf("regex=r'%s'", schema.Pattern))
	}
	return res
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// collectComponentModels turns every component schema into a model
// definition, in document order. Object schemas become classes extending the
// configured base model class; anything else becomes a type alias. Schemas
// that fail to build are skipped, mirroring the parameter-drop behavior.
func collectComponentModels(model *v3high.Document, cfg Configuration, aliases map[string]string) ([]*ModelDefinition, error) {
	if model.Components == nil || model.Components.Schemas == nil {
		return nil, nil
	}

	baseClass := cfg.BaseModelClassName()
	var models []*ModelDefinition

	for name, proxy := range model.Components.Schemas.FromOldest() {
		schema := proxy.Schema()
		if schema == nil {
			continue
		}

		className := ToPascalCase(name)
		typ, _ := schemaBaseType(schema)
		isObject := typ == "object" || (typ == "" && schema.Properties != nil && schema.Properties.Len() > 0)

		if !isObject {
			aliasType, err := resolveSchemaType(schema)
			if err != nil {
				continue
			}
			models = append(models, &ModelDefinition{
				Name:    className,
				IsAlias: true,
				AliasOf: aliasType.Annotation,
				Fields:  []*FieldDefinition{{Type: aliasType}},
			})
			continue
		}

		requiredSet := make(map[string]struct{}, len(schema.Required))
		for _, r := range schema.Required {
			requiredSet[r] = struct{}{}
		}

		def := &ModelDefinition{
			Name:           className,
			BaseClass:      baseClass,
			Description:    strings.TrimSpace(schema.Description),
			PopulateByName: cfg.AllowPopulationByFieldName,
		}

		if schema.Properties != nil {
			for propName, propProxy := range schema.Properties.FromOldest() {
				_, required := requiredSet[propName]
				field, err := newFieldDefinition(propName, propProxy, required, cfg, aliases)
				if err != nil {
					return nil, fmt.Errorf("error deriving field %q of schema %q: %w", propName, name, err)
				}
				def.Fields = append(def.Fields, field)
			}
		}
		models = append(models, def)
	}

	return models, nil
}
