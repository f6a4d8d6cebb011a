// Package jsonenc is a configurable JSON encoding/decoding layer: it
// defaults to github.com/bytedance/sonic instead of encoding/json for
// throughput, while staying swappable back to encoding/json for call
// sites that need exact structural fidelity rather than speed.
package jsonenc

import (
	stdjson "encoding/json"

	"github.com/bytedance/sonic"
)

// Config holds the JSON encoding/decoding functions in use.
type Config struct {
	Marshal   func(v any) ([]byte, error)
	Unmarshal func(data []byte, v any) error
}

// SonicConfig returns a Config backed by bytedance/sonic.
func SonicConfig() Config {
	return Config{
		Marshal:   sonic.Marshal,
		Unmarshal: sonic.Unmarshal,
	}
}

// StdConfig returns a Config backed by encoding/json. Call sites that
// need byte-for-byte structural fidelity (e.g. preserving
// json.RawMessage child ordering across a round trip) should use this
// directly rather than the package-level default.
func StdConfig() Config {
	return Config{
		Marshal:   stdjson.Marshal,
		Unmarshal: stdjson.Unmarshal,
	}
}

var config = SonicConfig()

// SetConfig replaces the package-level default.
func SetConfig(c Config) { config = c }

// Marshal returns the JSON encoding of v using the active config.
func Marshal(v any) ([]byte, error) { return config.Marshal(v) }

// Unmarshal parses data into v using the active config.
func Unmarshal(data []byte, v any) error { return config.Unmarshal(data, v) }

// RawMessage is a raw encoded JSON value.
type RawMessage = stdjson.RawMessage
