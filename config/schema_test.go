package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generatedSchema(t *testing.T) map[string]interface{} {
	t.Helper()
	data, err := GenerateSchema()
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc
}

func TestSchemaSections(t *testing.T) {
	doc := generatedSchema(t)
	props := doc["properties"].(map[string]interface{})

	section, ok := props["testmod"].(map[string]interface{})
	require.True(t, ok, "registered sections appear as properties")
	assert.Equal(t, false, section["additionalProperties"])
	assert.Contains(t, section["properties"], "symbol")
	assert.NotContains(t, section, "required")

	assert.NotContains(t, props, "Sections")
	assert.NotContains(t, props, "Path")
	assert.Equal(t, map[string]interface{}{"type": "object"}, doc["additionalProperties"])
}

func TestSchemaValidation(t *testing.T) {
	tests := []struct {
		name    string
		doc     map[string]interface{}
		wantErr bool
	}{
		{"empty", map[string]interface{}{}, false},
		{"known section", map[string]interface{}{"testmod": map[string]interface{}{"symbol": "x"}}, false},
		{"unregistered table", map[string]interface{}{"ruby": map[string]interface{}{"symbol": "x"}}, false},
		{"unregistered scalar", map[string]interface{}{"ruby": "x"}, true},
		{"unknown key in section", map[string]interface{}{"testmod": map[string]interface{}{"colour": "x"}}, true},
		{"wrong type", map[string]interface{}{"add_newline": "yes"}, true},
		{"modules must be strings", map[string]interface{}{"modules": []interface{}{1}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate(tt.doc)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
