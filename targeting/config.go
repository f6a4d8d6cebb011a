// Package targeting implements the two targeting modes (explicit,
// implicit) and the output assembler that sit on top of package expr,
// plus the host-facing Config (de)serialization contract.
package targeting

import (
	"encoding/json"
	"fmt"

	"github.com/feature-mesh/targeting/expr"
)

// DefaultHeaderName is used when a Config omits header_name.
const DefaultHeaderName = "x-features"

// Feature pairs a feature name with the Bool rule that, on true, emits
// it under implicit targeting.
type Feature struct {
	Name string        `json:"name"`
	Rule expr.BoolExpr `json:"rule"`
}

// Config is the host-supplied, read-only targeting configuration.
// Configs are built once per host-reconfiguration event and shared by
// reference across concurrent requests.
type Config struct {
	HeaderName string             `json:"header_name"`
	Explicit   []expr.StrListExpr `json:"explicit"`
	Implicit   []Feature          `json:"implicit"`

	regexes *expr.RegexCache
}

// ParseConfig decodes a Config from its JSON representation, using
// encoding/json directly rather than the faster jsonenc default,
// because config decoding needs to preserve the tagged-union
// discriminator and child ordering exactly — a correctness property,
// not a throughput one.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("targeting: parsing config: %w", err)
	}
	if cfg.HeaderName == "" {
		cfg.HeaderName = DefaultHeaderName
	}
	cfg.regexes = expr.NewRegexCache()
	return &cfg, nil
}

// Encode serializes cfg back to JSON. Round-tripping ParseConfig then
// Encode preserves structure exactly, including child ordering.
func (c *Config) Encode() ([]byte, error) {
	return json.Marshal(c)
}
