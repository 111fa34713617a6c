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
	"embed"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/*
var testdataFS embed.FS

func readTestdata(t *testing.T, name string) string {
	t.Helper()
	data, err := testdataFS.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatalf("failed to read testdata/%s: %v", name, err)
	}
	return string(data)
}

func generateTestFiles(t *testing.T, cfg Configuration) map[string]string {
	t.Helper()
	g, err := NewGenerator(cfg)
	require.NoError(t, err)
	files, err := g.Generate([]byte(readTestdata(t, "test_spec.yml")))
	require.NoError(t, err)
	return files
}

func TestGenerateProducesClientPackage(t *testing.T) {
	files := generateTestFiles(t, Configuration{})

	require.Contains(t, files, "apis.py")
	require.Contains(t, files, "endpoints.py")
	require.Contains(t, files, "models.py")

	apis := files["apis.py"]
	assert.Contains(t, apis, "class MyAPIClient(APIClient):")
	assert.Contains(t, apis, "from apiclient import APIClient")
	assert.Contains(t, apis, "from .endpoints import Endpoints")
	assert.Contains(t, apis, "from .models import Pet, PetIdPathParams, PetIn, VerboseQueryParams")
	assert.Contains(t, apis, "from pydantic import parse_obj_as")
	assert.Contains(t, apis, "def get_pet(self, path_params: PetIdPathParams, query_params: VerboseQueryParams) -> Pet:")
	assert.Contains(t, apis, "url = Endpoints.GET_PET.format(**path_params.dict())")
	assert.Contains(t, apis, "return parse_obj_as(Pet, response)")
	assert.Contains(t, apis, "def delete_pet(self, path_params: PetIdPathParams) -> None:")
	assert.Contains(t, apis, "def create_pet(self, body: PetIn) -> Pet:")
	assert.Contains(t, apis, `"""Register a new pet"""`)

	// Deprecated operations are skipped by default.
	assert.NotContains(t, apis, "list_pets_legacy")

	// Operations are sorted by path, so /v1/pets precedes /v1/pets/{petId}.
	assert.Less(t, strings.Index(apis, "def create_pet"), strings.Index(apis, "def get_pet"))
}

func TestGenerateEndpoints(t *testing.T) {
	files := generateTestFiles(t, Configuration{})

	endpoints := files["endpoints.py"]
	assert.Contains(t, endpoints, "class Endpoints:")
	assert.Contains(t, endpoints, "BASE_URL = 'https://api.example.com'")
	assert.Contains(t, endpoints, "CREATE_PET = '/v1/pets'")
	assert.Contains(t, endpoints, "GET_PET = '/v1/pets/{pet_id}'")
	assert.Contains(t, endpoints, "DELETE_PET = '/v1/pets/{pet_id}'")
}

func TestGenerateModels(t *testing.T) {
	files := generateTestFiles(t, Configuration{})

	models := files["models.py"]
	assert.Contains(t, models, "from pydantic import BaseModel, Field")
	assert.Contains(t, models, "class Pet(BaseModel):")
	// "id" collides with a builtin; the original name survives as the alias.
	assert.Contains(t, models, "id_: int = Field(..., alias='id')")
	assert.Contains(t, models, "name: str")
	assert.Contains(t, models, "tag: Optional[str] = None")
	assert.Contains(t, models, "from typing import List, Optional")
	assert.Contains(t, models, "PetIds = List[int]")
	assert.Contains(t, models, "class PetIdPathParams(BaseModel):")
	assert.Contains(t, models, "pet_id: str")
	assert.Contains(t, models, "class VerboseQueryParams(BaseModel):")
	assert.Contains(t, models, "verbose: Optional[bool] = None")
}

func TestGenerateBaseURLOverride(t *testing.T) {
	cfg := Configuration{BaseURL: "https://staging.example.com"}
	files := generateTestFiles(t, cfg)
	assert.Contains(t, files["endpoints.py"], "BASE_URL = 'https://staging.example.com'")
}

func TestGenerateClassNameOverride(t *testing.T) {
	files := generateTestFiles(t, Configuration{ClassName: "PetsClient"})
	assert.Contains(t, files["apis.py"], "class PetsClient(APIClient):")
}

func TestGenerateIsDeterministic(t *testing.T) {
	first := generateTestFiles(t, Configuration{})
	second := generateTestFiles(t, Configuration{})
	require.Equal(t, first, second)
}

func TestGenerateEmptyDocument(t *testing.T) {
	g, err := NewGenerator(Configuration{})
	require.NoError(t, err)

	_, err = g.Generate(nil)
	require.ErrorIs(t, err, ErrEmptyDocument)

	_, err = g.Generate([]byte("   \n"))
	require.ErrorIs(t, err, ErrEmptyDocument)
}

func TestNewGeneratorMissingTemplateDir(t *testing.T) {
	cfg := Configuration{TemplateDir: filepath.Join(t.TempDir(), "missing")}
	_, err := NewGenerator(cfg)
	require.ErrorIs(t, err, ErrTemplateDirNotFound)
}

func TestNewGeneratorTemplateOverride(t *testing.T) {
	dir := t.TempDir()
	override := "# custom endpoints\nclass Endpoints:\n    pass\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "endpoints.tmpl"), []byte(override), 0o644))

	files := generateTestFiles(t, Configuration{TemplateDir: dir})
	assert.Contains(t, files["endpoints.py"], "# custom endpoints")
	assert.NotContains(t, files["endpoints.py"], "GET_PET")
}

func TestWriteFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := Configuration{}
	cfg.Output.Directory = dir

	g, err := NewGenerator(cfg)
	require.NoError(t, err)

	err = g.WriteFiles(map[string]string{"apis.py": "class C:\n    pass\n\n\n"})
	require.NoError(t, err)

	contents, err := os.ReadFile(filepath.Join(dir, "apis.py"))
	require.NoError(t, err)
	assert.Equal(t, "class C:\n    pass\n", string(contents))
}

func TestGenerateModelsFilename(t *testing.T) {
	cfg := Configuration{}
	cfg.Output.ModelsFilename = "schemas.py"

	files := generateTestFiles(t, cfg)
	require.Contains(t, files, "schemas.py")
	require.NotContains(t, files, "models.py")
}
