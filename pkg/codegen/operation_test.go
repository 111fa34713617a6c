package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFunctionName(t *testing.T) {
	tests := []struct {
		name string
		op   Operation
		want string
	}{{
		name: "operation id wins",
		op:   Operation{Method: "get", Path: "/v1/pets/{petId}", OperationID: "getPet"},
		want: "get_pet",
	}, {
		name: "synthesized from method and path",
		op:   Operation{Method: "post", Path: "/v1/query"},
		want: "post_v1_query",
	}, {
		name: "path parameters flattened",
		op:   Operation{Method: "get", Path: "/v1/pets/{petId}"},
		want: "get_v1_pets_pet_id",
	}, {
		name: "trailing placeholder",
		op:   Operation{Method: "delete", Path: "/users/{userId}/posts/{postId}"},
		want: "delete_users_user_id_posts_post_id",
	},
	}
	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.op.FunctionName())
		})
	}
}

func TestRootPath(t *testing.T) {
	op := Operation{Path: "/v1/pets/{petId}"}
	assert.Equal(t, "v1", op.RootPath())
}

func TestArgumentsString(t *testing.T) {
	op := Operation{
		Arguments: []*Argument{
			{Name: "path_params", Type: "PetIdPathParams", Required: true},
			{Name: "query_params", Type: "VerboseQueryParams", Required: true},
			{Name: "body", Type: "PetIn"},
		},
	}
	want := "path_params: PetIdPathParams, query_params: VerboseQueryParams, body: PetIn = None"
	require.Equal(t, want, op.ArgumentsString())
}

func TestArgumentsStringEmpty(t *testing.T) {
	op := Operation{}
	require.Equal(t, "", op.ArgumentsString())
}

func TestSummaryAsDocstring(t *testing.T) {
	op := Operation{Summary: "  Register a new pet\nwith details  "}
	assert.Equal(t, "Register a new pet with details", op.SummaryAsDocstring())

	op = Operation{Description: "Falls back to description"}
	assert.Equal(t, "Falls back to description", op.SummaryAsDocstring())
}

func TestHasNoContent(t *testing.T) {
	assert.True(t, (&Operation{Response: NoContentResponse}).HasNoContent())
	assert.False(t, (&Operation{Response: "Pet"}).HasNoContent())
}
