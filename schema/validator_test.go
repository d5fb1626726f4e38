package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "command_timeout": {"type": "integer", "minimum": 1},
    "modules": {"type": "array", "items": {"type": "string"}}
  },
  "additionalProperties": {"type": "object"}
}`

func TestValidator(t *testing.T) {
	v, err := NewValidator([]byte(testSchema))
	require.NoError(t, err)

	t.Run("valid document", func(t *testing.T) {
		doc := map[string]interface{}{
			"command_timeout": int64(500),
			"modules":         []interface{}{"perl"},
			"perl":            map[string]interface{}{"symbol": "🐪 "},
		}
		assert.NoError(t, v.Validate(doc))
	})

	t.Run("wrong type", func(t *testing.T) {
		err := v.Validate(map[string]interface{}{"command_timeout": "fast"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "/command_timeout")
	})

	t.Run("module section must be a table", func(t *testing.T) {
		err := v.Validate(map[string]interface{}{"perl": "yes"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "/perl")
	})
}

func TestNewValidatorRejectsBrokenSchema(t *testing.T) {
	_, err := NewValidator([]byte(`{"type": `))
	assert.Error(t, err)
}
