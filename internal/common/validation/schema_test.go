package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const addressSchema = `{
	"type": "object",
	"properties": {
		"address": {"type": "string", "minLength": 1},
		"requestId": {"type": "string"}
	},
	"required": ["address"],
	"additionalProperties": false
}`

func TestSchema_Validate(t *testing.T) {
	schema, err := Compile("address", addressSchema)
	require.NoError(t, err)

	tests := []struct {
		name      string
		input     map[string]interface{}
		wantValid bool
		badField  string
	}{
		{
			name:      "valid address",
			input:     map[string]interface{}{"address": "123 Main St, Atlanta, GA"},
			wantValid: true,
		},
		{
			name:      "missing address",
			input:     map[string]interface{}{"requestId": "abc"},
			wantValid: false,
			badField:  "(root)",
		},
		{
			name:      "wrong type",
			input:     map[string]interface{}{"address": 42},
			wantValid: false,
			badField:  "address",
		},
		{
			name:      "extra field",
			input:     map[string]interface{}{"address": "x", "foo": true},
			wantValid: false,
			badField:  "(root)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateInput(tt.input, schema)
			assert.Equal(t, tt.wantValid, result.Valid)
			if !tt.wantValid {
				assert.NotEmpty(t, result.GetErrorMessages())
				assert.True(t, result.HasErrors(tt.badField), "errors: %v", result.GetErrorMessages())
			}
		})
	}
}

func TestCompile_InvalidSchema(t *testing.T) {
	_, err := Compile("broken", `{"type": 12}`)
	assert.Error(t, err)
	assert.Panics(t, func() { MustCompile("broken", `{`) })
}
