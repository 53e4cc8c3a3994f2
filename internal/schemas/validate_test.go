package schemas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogSchema_IsValidJSON(t *testing.T) {
	var v map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(CatalogSchema()), &v))

	_, hasSchema := v["$schema"]
	_, hasProps := v["properties"]
	assert.True(t, hasSchema && hasProps, "schema should declare $schema and properties")
}

func TestValidateCatalog_Valid(t *testing.T) {
	doc := map[string]interface{}{
		"services": []interface{}{
			map[string]interface{}{"id": "landing-page", "name": "Landing Page", "category": "web"},
		},
		"questions": map[string]interface{}{
			"landing-page": []interface{}{
				map[string]interface{}{"id": "cta", "prompt": "CTA?", "kind": "short_text", "required": true},
				map[string]interface{}{
					"id": "sections", "prompt": "Sections?", "kind": "multi_choice",
					"choices": []interface{}{"Hero", "FAQ"},
				},
			},
		},
	}

	assert.NoError(t, ValidateCatalog(doc))
}

func TestValidateCatalog_UnknownKind(t *testing.T) {
	doc := map[string]interface{}{
		"services": []interface{}{
			map[string]interface{}{"id": "pwa", "name": "PWA", "category": "mobile"},
		},
		"questions": map[string]interface{}{
			"pwa": []interface{}{
				map[string]interface{}{"id": "offline", "prompt": "Offline?", "kind": "checkbox"},
			},
		},
	}

	err := ValidateCatalog(doc)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.NotEmpty(t, validationErr.Errors)
}

func TestValidateCatalog_UnknownCategory(t *testing.T) {
	doc := map[string]interface{}{
		"services": []interface{}{
			map[string]interface{}{"id": "x", "name": "X", "category": "hardware"},
		},
		"questions": map[string]interface{}{},
	}

	err := ValidateCatalog(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidateCatalog_MissingServices(t *testing.T) {
	err := ValidateCatalog(map[string]interface{}{"questions": map[string]interface{}{}})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)
}

func TestValidateJSONString(t *testing.T) {
	schema := `{"type":"object","required":["name"],"properties":{"name":{"type":"string"}}}`

	assert.NoError(t, ValidateJSONString(schema, `{"name":"ok"}`))
	assert.Error(t, ValidateJSONString(schema, `{"name":1}`))
}

func TestValidateJSONString_BadSchema(t *testing.T) {
	err := ValidateJSONString(`{not json`, `{}`)

	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.NotNil(t, loadErr.Unwrap())
}
