package targeting

import (
	"fmt"
	"os"
)

// LoadConfig reads path, validates it against the shallow config
// schema, and parses it into a Config. Schema validation runs first so
// a structurally malformed file produces a field-addressed error
// instead of a generic JSON decode failure.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("targeting: reading config %s: %w", path, err)
	}
	if errs, err := ValidateConfigSchema(data); err != nil {
		return nil, fmt.Errorf("targeting: validating config %s: %w", path, err)
	} else if len(errs) > 0 {
		return nil, fmt.Errorf("targeting: config %s failed schema validation: %s: %s", path, errs[0].Field, errs[0].Message)
	}
	return ParseConfig(data)
}

// SaveConfig encodes cfg and writes it to path.
func SaveConfig(path string, cfg *Config) error {
	data, err := cfg.Encode()
	if err != nil {
		return fmt.Errorf("targeting: encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("targeting: writing config %s: %w", path, err)
	}
	return nil
}
