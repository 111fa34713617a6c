package codegen

import (
	"strings"

	"github.com/pb33f/libopenapi/datamodel/high/base"
)

// NoContentResponse is the sentinel annotation recorded when an operation
// declares no successful response schema.
const NoContentResponse = "None"

// Operation describes one API endpoint: the raw fields lifted from its spec
// declaration plus the derived call signature. An Operation is immutable
// after construction; the derived properties below are computed lazily and
// cached, which is safe because the source fields never change.
type Operation struct {
	Method      string
	Path        string
	OperationID string
	Summary     string
	Description string
	Deprecated  bool
	Tags        []string
	Security    []*base.SecurityRequirement

	Arguments     []*Argument
	PathArgument  *Argument
	QueryArgument *Argument
	Request       *Argument
	Response      string

	functionName  string
	snakeCasePath string
	argumentsStr  string
	argumentsSet  bool
}

// SnakeCasePath returns the path template with each placeholder name
// converted to snake_case, eg /users/{userId} -> /users/{user_id}.
func (o *Operation) SnakeCasePath() string {
	if o.snakeCasePath == "" {
		o.snakeCasePath = snakeCasePathTemplate(o.Path)
	}
	return o.snakeCasePath
}

// RootPath returns the first path segment, used for grouping in templates.
func (o *Operation) RootPath() string {
	parts := strings.Split(o.Path, "/")
	if len(parts) > 1 {
		return parts[1]
	}
	return ""
}

// FunctionName derives the generated method name. The operation id wins when
// present; otherwise the name is synthesized from the method and path, so
// POST /v1/query becomes post_v1_query.
func (o *Operation) FunctionName() string {
	if o.functionName != "" {
		return o.functionName
	}

	if o.OperationID != "" {
		o.functionName = ToSnakeCase(o.OperationID)
		return o.functionName
	}

	p := o.SnakeCasePath()
	p = strings.ReplaceAll(p, "/{", "_")
	p = strings.ReplaceAll(p, "/", "_")
	p = strings.ReplaceAll(p, "}", "")
	o.functionName = ToSnakeCase(o.Method + p)
	return o.functionName
}

// ArgumentsString renders the full argument list for the generated
// signature, in final order, separated by ", ".
func (o *Operation) ArgumentsString() string {
	if o.argumentsSet {
		return o.argumentsStr
	}

	parts := make([]string, 0, len(o.Arguments))
	for _, arg := range o.Arguments {
		parts = append(parts, arg.Render())
	}
	o.argumentsStr = strings.Join(parts, ", ")
	o.argumentsSet = true
	return o.argumentsStr
}

// SummaryAsDocstring collapses the summary to a single docstring line.
func (o *Operation) SummaryAsDocstring() string {
	s := strings.TrimSpace(o.Summary)
	if s == "" {
		s = strings.TrimSpace(o.Description)
	}
	return strings.ReplaceAll(s, "\n", " ")
}

// HasNoContent reports whether the operation resolved to the no-content
// sentinel rather than a response model.
func (o *Operation) HasNoContent() bool {
	return o.Response == NoContentResponse
}
