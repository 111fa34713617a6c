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
	"fmt"
	"regexp"
	"strings"

	"github.com/iancoleman/strcase"
)

var (
	pathParamRE = regexp.MustCompile(`{([^{}]+)}`)

	// Media types that carry a JSON body, eg application/json,
	// application/problem+json. The match is case-sensitive on purpose.
	jsonMediaTypeRE = regexp.MustCompile(`^application/.*json$`)

	reservedWordSet map[string]struct{}
)

// reservedWords is the set of identifiers that must never appear bare in a
// generated call signature: keywords plus the builtin namespace of the
// target language.
var reservedWords = []string{
	// Keywords
	"False", "None", "True", "and", "as", "assert", "async", "await",
	"break", "class", "continue", "def", "del", "elif", "else", "except",
	"finally", "for", "from", "global", "if", "import", "in", "is",
	"lambda", "nonlocal", "not", "or", "pass", "raise", "return", "try",
	"while", "with", "yield",
	// Builtin functions and types
	"abs", "aiter", "all", "anext", "any", "ascii", "bin", "bool",
	"breakpoint", "bytearray", "bytes", "callable", "chr", "classmethod",
	"compile", "complex", "copyright", "credits", "delattr", "dict", "dir",
	"divmod", "enumerate", "eval", "exec", "exit", "filter", "float",
	"format", "frozenset", "getattr", "globals", "hasattr", "hash", "help",
	"hex", "id", "input", "int", "isinstance", "issubclass", "iter", "len",
	"license", "list", "locals", "map", "max", "memoryview", "min", "next",
	"object", "oct", "open", "ord", "pow", "print", "property", "quit",
	"range", "repr", "reversed", "round", "set", "setattr", "slice",
	"sorted", "staticmethod", "str", "sum", "super", "tuple", "type",
	"vars", "zip",
}

func init() {
	reservedWordSet = make(map[string]struct{}, len(reservedWords))
	for _, w := range reservedWords {
		reservedWordSet[w] = struct{}{}
	}
}

// ToSnakeCase converts an identifier to snake_case. It is total and
// idempotent: already-snake-cased input passes through unchanged.
func ToSnakeCase(name string) string {
	return strcase.ToSnake(strings.TrimSpace(name))
}

// ToPascalCase converts an identifier to PascalCase.
func ToPascalCase(name string) string {
	return strcase.ToCamel(strings.TrimSpace(name))
}

// ToCamelCase converts an identifier to camelCase.
func ToCamelCase(name string) string {
	return strcase.ToLowerCamel(strings.TrimSpace(name))
}

// IsReservedWord reports whether name collides with a keyword or builtin
// identifier of the generated language.
func IsReservedWord(name string) bool {
	_, exists := reservedWordSet[name]
	return exists
}

// Disambiguate appends a trailing underscore when the name is reserved,
// otherwise returns the name unchanged.
func Disambiguate(name string) string {
	if IsReservedWord(name) {
		return name + "_"
	}
	return name
}

// resolvedPathKey builds the globally unique key for one HTTP operation,
// eg ("/v1/query", "post") -> "#/paths/v1/query/post".
func resolvedPathKey(path, method string) string {
	return fmt.Sprintf("#/paths%s/%s", path, method)
}

// snakeCasePathTemplate rewrites each {param} placeholder in a path template
// so the placeholder name is snake_cased, leaving literal segments alone.
func snakeCasePathTemplate(path string) string {
	return pathParamRE.ReplaceAllStringFunc(path, func(m string) string {
		inner := m[1 : len(m)-1]
		return "{" + ToSnakeCase(inner) + "}"
	})
}

// orderedParamsFromPath returns the placeholder names, in order, in a given
// path template, so /users/{userId}/posts/{postId} yields userId, postId.
func orderedParamsFromPath(path string) []string {
	matches := pathParamRE.FindAllStringSubmatch(path, -1)
	result := make([]string, len(matches))
	for i, m := range matches {
		result[i] = m[1]
	}
	return result
}

// modelNameFromRef resolves a $ref path to the model class name it targets.
//
//	#/components/schemas/QueryRequestOut -> QueryRequestOut
//
// References into other documents cannot be resolved in single-file output
// mode and yield ErrModularReference.
func modelNameFromRef(ref string) (string, error) {
	if !strings.HasPrefix(ref, "#/") {
		return "", fmt.Errorf("%w: %q", ErrModularReference, ref)
	}
	parts := strings.Split(ref, "/")
	last := parts[len(parts)-1]
	if last == "" {
		return "", fmt.Errorf("%w: empty reference %q", ErrSchemaUnresolved, ref)
	}
	return ToPascalCase(last), nil
}
