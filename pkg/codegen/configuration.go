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
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Configuration drives generation. Every knob can come from the YAML config
// file, with command line flags overwriting individual fields.
type Configuration struct {
	// BaseClientClass is the dotted path of the class the generated client
	// extends, eg "apiclient.APIClient".
	BaseClientClass string `yaml:"base-api-class,omitempty"`
	// BaseModelClass is the dotted path of the base class for generated
	// data models.
	BaseModelClass string `yaml:"base-class,omitempty"`
	// PrefixClass is prepended to the generated client class name.
	PrefixClass string `yaml:"prefix,omitempty"`
	// ClassName, when set, names the generated client class outright and
	// the prefix is ignored.
	ClassName string `yaml:"class-name,omitempty"`
	// BaseURL overrides the server URL declared in the document.
	BaseURL string `yaml:"base-url,omitempty"`

	SnakeCaseField             bool `yaml:"snake-case-field,omitempty"`
	FieldConstraints           bool `yaml:"field-constraints,omitempty"`
	StripDefaultNone           bool `yaml:"strip-default-none,omitempty"`
	AllowPopulationByFieldName bool `yaml:"allow-population-by-field-name,omitempty"`
	UseDefault                 bool `yaml:"use-default,omitempty"`
	ForceOptional              bool `yaml:"force-optional,omitempty"`

	// SkipDeprecated controls whether deprecated operations are omitted.
	// Defaults to true when unset.
	SkipDeprecated *bool `yaml:"skip-deprecated,omitempty"`

	// AliasesFile points at a flat JSON object mapping original field names
	// to output names.
	AliasesFile string `yaml:"aliases,omitempty"`
	// TemplateDir overrides the embedded templates.
	TemplateDir string `yaml:"templates,omitempty"`

	Output OutputConfiguration `yaml:"output,omitempty"`
}

// OutputConfiguration says where generated files land.
type OutputConfiguration struct {
	Directory      string `yaml:"directory,omitempty"`
	ModelsFilename string `yaml:"models-filename,omitempty"`
}

// NewDefaultConfiguration returns the configuration used when no config file
// is given.
func NewDefaultConfiguration() Configuration {
	return Configuration{}.WithDefaults()
}

// WithDefaults fills in anything the user left unset.
func (c Configuration) WithDefaults() Configuration {
	if c.BaseClientClass == "" {
		c.BaseClientClass = "apiclient.APIClient"
	}
	if c.BaseModelClass == "" {
		c.BaseModelClass = "pydantic.BaseModel"
	}
	if c.PrefixClass == "" {
		c.PrefixClass = "My"
	}
	if c.SkipDeprecated == nil {
		enabled := true
		c.SkipDeprecated = &enabled
	}
	if c.Output.Directory == "" {
		c.Output.Directory = "."
	}
	if c.Output.ModelsFilename == "" {
		c.Output.ModelsFilename = "models.py"
	}
	return c
}

// OverwriteWith layers non-zero fields of other on top of c. Used to apply
// command line flags over a loaded config file.
func (c Configuration) OverwriteWith(other Configuration) Configuration {
	if other.BaseClientClass != "" {
		c.BaseClientClass = other.BaseClientClass
	}
	if other.BaseModelClass != "" {
		c.BaseModelClass = other.BaseModelClass
	}
	if other.PrefixClass != "" {
		c.PrefixClass = other.PrefixClass
	}
	if other.ClassName != "" {
		c.ClassName = other.ClassName
	}
	if other.BaseURL != "" {
		c.BaseURL = other.BaseURL
	}
	if other.SnakeCaseField {
		c.SnakeCaseField = true
	}
	if other.FieldConstraints {
		c.FieldConstraints = true
	}
	if other.StripDefaultNone {
		c.StripDefaultNone = true
	}
	if other.AllowPopulationByFieldName {
		c.AllowPopulationByFieldName = true
	}
	if other.UseDefault {
		c.UseDefault = true
	}
	if other.ForceOptional {
		c.ForceOptional = true
	}
	if other.SkipDeprecated != nil {
		c.SkipDeprecated = other.SkipDeprecated
	}
	if other.AliasesFile != "" {
		c.AliasesFile = other.AliasesFile
	}
	if other.TemplateDir != "" {
		c.TemplateDir = other.TemplateDir
	}
	if other.Output.Directory != "" {
		c.Output.Directory = other.Output.Directory
	}
	if other.Output.ModelsFilename != "" {
		c.Output.ModelsFilename = other.Output.ModelsFilename
	}
	return c
}

// ClientClassName is the name of the generated client class.
func (c Configuration) ClientClassName() string {
	if c.ClassName != "" {
		return c.ClassName
	}
	return c.PrefixClass + "APIClient"
}

// SkipDeprecatedEnabled resolves the tri-state flag with its default.
func (c Configuration) SkipDeprecatedEnabled() bool {
	return c.SkipDeprecated == nil || *c.SkipDeprecated
}

// BaseModelClassName is the bare class name of the model base class.
func (c Configuration) BaseModelClassName() string {
	_, name := splitDottedPath(c.BaseModelClass)
	return name
}

// BaseModelClassImport is the import the model base class needs, if any.
func (c Configuration) BaseModelClassImport() (PyImport, bool) {
	module, name := splitDottedPath(c.BaseModelClass)
	if module == "" {
		return PyImport{}, false
	}
	return PyImport{From: module, Name: name}, true
}

// BaseClientClassName is the bare class name of the client base class.
func (c Configuration) BaseClientClassName() string {
	_, name := splitDottedPath(c.BaseClientClass)
	return name
}

// BaseClientClassImport is the import the client base class needs, if any.
func (c Configuration) BaseClientClassImport() (PyImport, bool) {
	module, name := splitDottedPath(c.BaseClientClass)
	if module == "" {
		return PyImport{}, false
	}
	return PyImport{From: module, Name: name}, true
}

// splitDottedPath splits "pkg.mod.Class" into ("pkg.mod", "Class"). A bare
// name has an empty module part.
func splitDottedPath(path string) (module, name string) {
	idx := strings.LastIndex(path, ".")
	if idx < 0 {
		return "", path
	}
	return path[:idx], path[idx+1:]
}

// LoadAliases reads the alias table from disk. The file must be a flat JSON
// object whose values are all strings; anything else is ErrAliasMapping.
func (c Configuration) LoadAliases() (map[string]string, error) {
	if c.AliasesFile == "" {
		return nil, nil
	}

	contents, err := os.ReadFile(c.AliasesFile)
	if err != nil {
		return nil, fmt.Errorf("error reading aliases file: %w", err)
	}
	return ParseAliases(contents)
}

// ParseAliases validates and decodes an alias table.
func ParseAliases(contents []byte) (map[string]string, error) {
	var raw map[string]any
	if err := json.Unmarshal(contents, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAliasMapping, err)
	}

	aliases := make(map[string]string, len(raw))
	for key, value := range raw {
		str, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("%w: value for %q is not a string", ErrAliasMapping, key)
		}
		aliases[key] = str
	}
	return aliases, nil
}
