package targeting

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/kaptinlin/jsonschema"
)

// configSchema is a deliberately shallow JSON Schema: it checks the
// top-level Config shape (header_name, explicit, implicit) and the
// {name, rule} shape of each implicit feature, but does not attempt to
// describe every expression variant's payload shape recursively — the
// tagged-union discriminator space is exactly what expr's own
// UnmarshalJSON already enforces at parse time, so duplicating it in
// JSON Schema would just be two sources of truth drifting apart.
// Schema compilation is a pre-pass in front of strongly-typed decoding,
// not a replacement for it.
const configSchema = `{
  "type": "object",
  "properties": {
    "header_name": {"type": "string"},
    "explicit": {"type": "array"},
    "implicit": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "rule"],
        "properties": {
          "name": {"type": "string"},
          "rule": {"type": "object"}
        }
      }
    }
  }
}`

// SchemaError describes a single JSON Schema validation failure.
type SchemaError struct {
	Field   string
	Message string
}

// ValidateConfigSchema checks data against the shallow Config schema
// before attempting ParseConfig, so operators get a field-addressed
// error for a structurally malformed config instead of a generic JSON
// decode error.
func ValidateConfigSchema(data []byte) ([]SchemaError, error) {
	compiler := jsonschema.NewCompiler()
	compiler.WithDecoderJSON(sonic.Unmarshal)
	compiler.WithEncoderJSON(sonic.Marshal)

	schema, err := compiler.Compile([]byte(configSchema))
	if err != nil {
		return nil, fmt.Errorf("targeting: compiling config schema: %w", err)
	}

	var doc map[string]any
	if err := sonic.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("targeting: config is not a JSON object: %w", err)
	}

	result := schema.ValidateMap(doc)
	if result.IsValid() {
		return nil, nil
	}

	errs := make([]SchemaError, 0, len(result.Errors))
	for field, e := range result.Errors {
		errs = append(errs, SchemaError{Field: field, Message: e.Message})
	}
	return errs, nil
}
