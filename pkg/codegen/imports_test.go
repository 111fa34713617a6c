package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportSetRender(t *testing.T) {
	s := NewImportSet()
	s.Add("typing", "Optional")
	s.Add("typing", "List")
	s.Add("typing", "Optional")
	s.Add("pydantic", "BaseModel")
	s.Add("json", "")
	s.Add("", "ignored")

	want := "import json\n" +
		"from pydantic import BaseModel\n" +
		"from typing import List, Optional\n"
	require.Equal(t, want, s.Render())
}

func TestImportSetRenderEmpty(t *testing.T) {
	assert.Equal(t, "", NewImportSet().Render())
}

func TestImportSetAddAll(t *testing.T) {
	s := NewImportSet()
	s.AddAll([]PyImport{
		{From: "datetime", Name: "datetime"},
		{From: "uuid", Name: "UUID"},
	})

	want := "from datetime import datetime\nfrom uuid import UUID\n"
	assert.Equal(t, want, s.Render())
}
