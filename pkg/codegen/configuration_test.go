package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigurationDefaults(t *testing.T) {
	cfg := NewDefaultConfiguration()

	assert.Equal(t, "apiclient.APIClient", cfg.BaseClientClass)
	assert.Equal(t, "pydantic.BaseModel", cfg.BaseModelClass)
	assert.Equal(t, "My", cfg.PrefixClass)
	assert.True(t, cfg.SkipDeprecatedEnabled())
	assert.Equal(t, ".", cfg.Output.Directory)
	assert.Equal(t, "models.py", cfg.Output.ModelsFilename)
}

func TestConfigurationOverwriteWith(t *testing.T) {
	cfg := NewDefaultConfiguration()

	skip := false
	overrides := Configuration{
		PrefixClass:    "Billing",
		BaseURL:        "https://billing.example.com",
		SnakeCaseField: true,
		SkipDeprecated: &skip,
	}
	overrides.Output.Directory = "out"

	cfg = cfg.OverwriteWith(overrides)
	assert.Equal(t, "Billing", cfg.PrefixClass)
	assert.Equal(t, "https://billing.example.com", cfg.BaseURL)
	assert.True(t, cfg.SnakeCaseField)
	assert.False(t, cfg.SkipDeprecatedEnabled())
	assert.Equal(t, "out", cfg.Output.Directory)
	// Untouched fields keep their values.
	assert.Equal(t, "apiclient.APIClient", cfg.BaseClientClass)
	assert.Equal(t, "models.py", cfg.Output.ModelsFilename)
}

func TestClientClassName(t *testing.T) {
	cfg := NewDefaultConfiguration()
	assert.Equal(t, "MyAPIClient", cfg.ClientClassName())

	cfg.PrefixClass = "Billing"
	assert.Equal(t, "BillingAPIClient", cfg.ClientClassName())

	cfg.ClassName = "PaymentsClient"
	assert.Equal(t, "PaymentsClient", cfg.ClientClassName())
}

func TestConfigurationClassNames(t *testing.T) {
	cfg := NewDefaultConfiguration()

	assert.Equal(t, "BaseModel", cfg.BaseModelClassName())
	imp, ok := cfg.BaseModelClassImport()
	require.True(t, ok)
	assert.Equal(t, PyImport{From: "pydantic", Name: "BaseModel"}, imp)

	assert.Equal(t, "APIClient", cfg.BaseClientClassName())
	imp, ok = cfg.BaseClientClassImport()
	require.True(t, ok)
	assert.Equal(t, PyImport{From: "apiclient", Name: "APIClient"}, imp)

	cfg.BaseModelClass = "BareClass"
	assert.Equal(t, "BareClass", cfg.BaseModelClassName())
	_, ok = cfg.BaseModelClassImport()
	assert.False(t, ok)

	cfg.BaseClientClass = "acme.clients.http.Client"
	assert.Equal(t, "Client", cfg.BaseClientClassName())
	imp, ok = cfg.BaseClientClassImport()
	require.True(t, ok)
	assert.Equal(t, PyImport{From: "acme.clients.http", Name: "Client"}, imp)
}

func TestParseAliases(t *testing.T) {
	aliases, err := ParseAliases([]byte(`{"userName": "login", "id": "ident"}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"userName": "login", "id": "ident"}, aliases)
}

func TestParseAliasesRejectsNonFlat(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{{
		name:     "nested object",
		contents: `{"user": {"name": "login"}}`,
	}, {
		name:     "numeric value",
		contents: `{"user": 1}`,
	}, {
		name:     "top level array",
		contents: `["user"]`,
	}, {
		name:     "not json",
		contents: `user=login`,
	},
	}
	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAliases([]byte(tt.contents))
			require.ErrorIs(t, err, ErrAliasMapping)
		})
	}
}

func TestLoadAliasesEmptyPath(t *testing.T) {
	cfg := NewDefaultConfiguration()
	aliases, err := cfg.LoadAliases()
	require.NoError(t, err)
	assert.Nil(t, aliases)
}
