package codegen

import (
	"fmt"
	"strings"

	"github.com/pb33f/libopenapi/datamodel/high/base"
	"gopkg.in/yaml.v3"
)

// PyImport is one imported name, eg {From: "typing", Name: "Optional"}.
// A plain "import module" is expressed with an empty Name.
type PyImport struct {
	From string
	Name string
}

// PyType is the annotation text for a resolved schema plus the imports the
// annotation needs. ModelRef is set when the annotation references a model
// class emitted into the consolidated model file.
type PyType struct {
	Annotation string
	Imports    []PyImport
	ModelRef   string
}

func (t *PyType) addImport(from, name string) {
	t.Imports = append(t.Imports, PyImport{From: from, Name: name})
}

// annotationForSchema resolves a schema, inline or by reference, into an
// annotation. Reference targets are not inlined; the referenced model class
// name is used directly. A reference into another document is a fatal
// ErrModularReference; anything else unresolvable is ErrSchemaUnresolved.
func annotationForSchema(proxy *base.SchemaProxy) (PyType, error) {
	if proxy == nil {
		return PyType{}, ErrSchemaUnresolved
	}

	if proxy.IsReference() {
		name, err := modelNameFromRef(proxy.GetReference())
		if err != nil {
			return PyType{}, err
		}
		return PyType{Annotation: name, ModelRef: name}, nil
	}

	schema := proxy.Schema()
	if schema == nil {
		return PyType{}, fmt.Errorf("%w: schema failed to build", ErrSchemaUnresolved)
	}

	return resolveSchemaType(schema)
}

func resolveSchemaType(schema *base.Schema) (PyType, error) {
	typ, nullable := schemaBaseType(schema)

	var (
		res PyType
		err error
	)

	switch typ {
	case "string":
		res = stringAnnotation(schema)
	case "integer":
		res = PyType{Annotation: "int"}
	case "number":
		res = PyType{Annotation: "float"}
	case "boolean":
		res = PyType{Annotation: "bool"}
	case "array":
		res, err = arrayAnnotation(schema)
	case "object":
		res, err = objectAnnotation(schema)
	case "":
		res = PyType{Annotation: "Any"}
		res.addImport("typing", "Any")
	default:
		return PyType{}, fmt.Errorf("%w: unsupported type %q", ErrSchemaUnresolved, typ)
	}
	if err != nil {
		return PyType{}, err
	}

	if nullable {
		res = optionalType(res)
	}
	return res, nil
}

// schemaBaseType picks the first non-null entry of the type list, tracking
// whether "null" appeared alongside it.
func schemaBaseType(schema *base.Schema) (string, bool) {
	nullable := schema.Nullable != nil && *schema.Nullable
	typ := ""
	for _, t := range schema.Type {
		if t == "null" {
			nullable = true
			continue
		}
		if typ == "" {
			typ = t
		}
	}
	return typ, nullable
}

func stringAnnotation(schema *base.Schema) PyType {
	if len(schema.Enum) > 0 {
		values := make([]string, 0, len(schema.Enum))
		for _, node := range schema.Enum {
			if lit, ok := pyLiteral(node); ok {
				values = append(values, lit)
			}
		}
		if len(values) > 0 {
			t := PyType{Annotation: "Literal[" + strings.Join(values, ", ") + "]"}
			t.addImport("typing", "Literal")
			return t
		}
	}

	switch schema.Format {
	case "date-time":
		t := PyType{Annotation: "datetime"}
		t.addImport("datetime", "datetime")
		return t
	case "date":
		t := PyType{Annotation: "date"}
		t.addImport("datetime", "date")
		return t
	case "uuid":
		t := PyType{Annotation: "UUID"}
		t.addImport("uuid", "UUID")
		return t
	case "binary", "byte":
		return PyType{Annotation: "bytes"}
	}
	return PyType{Annotation: "str"}
}

func arrayAnnotation(schema *base.Schema) (PyType, error) {
	if schema.Items == nil || !schema.Items.IsA() {
		t := PyType{Annotation: "List[Any]"}
		t.addImport("typing", "List")
		t.addImport("typing", "Any")
		return t, nil
	}

	inner, err := annotationForSchema(schema.Items.A)
	if err != nil {
		return PyType{}, err
	}
	inner.Annotation = "List[" + inner.Annotation + "]"
	inner.addImport("typing", "List")
	return inner, nil
}

// objectAnnotation handles inline object schemas in parameter or body
// position. Named object models come from the component collector; an inline
// object degrades to a dict annotation.
func objectAnnotation(schema *base.Schema) (PyType, error) {
	if schema.AdditionalProperties != nil && schema.AdditionalProperties.IsA() {
		inner, err := annotationForSchema(schema.AdditionalProperties.A)
		if err != nil {
			return PyType{}, err
		}
		inner.Annotation = "Dict[str, " + inner.Annotation + "]"
		inner.addImport("typing", "Dict")
		return inner, nil
	}

	t := PyType{Annotation: "Dict[str, Any]"}
	t.addImport("typing", "Dict")
	t.addImport("typing", "Any")
	return t, nil
}

func optionalType(t PyType) PyType {
	t.Annotation = "Optional[" + t.Annotation + "]"
	t.addImport("typing", "Optional")
	return t
}

// pyLiteral renders a scalar YAML node as a literal in the generated
// language. Sequence and mapping defaults are not supported and report false.
func pyLiteral(node *yaml.Node) (string, bool) {
	if node == nil || node.Kind != yaml.ScalarNode {
		return "", false
	}

	switch node.Tag {
	case "!!str":
		escaped := strings.ReplaceAll(node.Value, `\`, `\\`)
		escaped = strings.ReplaceAll(escaped, "'", `\'`)
		return "'" + escaped + "'", true
	case "!!bool":
		if node.Value == "true" {
			return "True", true
		}
		return "False", true
	case "!!int", "!!float":
		return node.Value, true
	case "!!null":
		return "None", true
	}
	return "", false
}
