package targeting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfigSchemaAcceptsValidConfig(t *testing.T) {
	errs, err := ValidateConfigSchema([]byte(`{
		"header_name": "x-features",
		"explicit": [],
		"implicit": [{"name": "f", "rule": {"constant": true}}]
	}`))
	require.NoError(t, err)
	assert.Empty(t, errs)
}

func TestValidateConfigSchemaRejectsMissingRule(t *testing.T) {
	errs, err := ValidateConfigSchema([]byte(`{"implicit": [{"name": "f"}]}`))
	require.NoError(t, err)
	require.NotEmpty(t, errs)
}

func TestValidateConfigSchemaRejectsNonObject(t *testing.T) {
	_, err := ValidateConfigSchema([]byte(`"not an object"`))
	assert.Error(t, err)
}
