package codegen

// mandatoryDefault is the placeholder assigned to a required argument that
// ends up positioned after a defaulted one. It renders as the Ellipsis
// literal, which the base client convention reads as "value required".
const mandatoryDefault = "..."

// noneDefault is the literal used when an optional argument declares no
// explicit default.
const noneDefault = "None"

// Argument represents one formal parameter of a generated function.
// Name is the parameter name before reserved-word disambiguation.
// Type is the annotation text, eg "PageQueryParams" or "Optional[int]".
// Default is the default literal text, empty when absent.
// DefaultValue carries a constructor/sentinel expression for cases where the
// default cannot be expressed as a plain literal.
type Argument struct {
	Name         string
	Type         string
	Default      string
	DefaultValue string
	Required     bool

	rendered string
}

// Render returns the argument as it appears in a generated signature.
// A required argument with no default renders as "name: type"; anything else
// renders as "name: type = default". The result is memoized; source fields
// must not change after the first call.
func (a *Argument) Render() string {
	if a.rendered != "" {
		return a.rendered
	}

	name := Disambiguate(a.Name)
	if a.Required && a.Default == "" {
		a.rendered = name + ": " + a.Type
		return a.rendered
	}

	def := a.Default
	if def == "" {
		def = noneDefault
	}
	a.rendered = name + ": " + a.Type + " = " + def
	return a.rendered
}
