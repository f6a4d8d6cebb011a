package targeting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigDefaultsHeaderName(t *testing.T) {
	cfg, err := ParseConfig([]byte(`{"explicit": [], "implicit": []}`))
	require.NoError(t, err)
	assert.Equal(t, DefaultHeaderName, cfg.HeaderName)
}

func TestParseConfigHonorsExplicitHeaderName(t *testing.T) {
	cfg, err := ParseConfig([]byte(`{"header_name": "x-flags", "explicit": [], "implicit": []}`))
	require.NoError(t, err)
	assert.Equal(t, "x-flags", cfg.HeaderName)
}

func TestConfigEncodeRoundTrip(t *testing.T) {
	raw := `{"header_name":"x-features","explicit":[{"constant":["a","b"]}],"implicit":[{"name":"f","rule":{"constant":true}}]}`
	cfg, err := ParseConfig([]byte(raw))
	require.NoError(t, err)

	out, err := cfg.Encode()
	require.NoError(t, err)

	cfg2, err := ParseConfig(out)
	require.NoError(t, err)
	assert.Equal(t, cfg.HeaderName, cfg2.HeaderName)
	assert.Equal(t, cfg.Implicit[0].Name, cfg2.Implicit[0].Name)
}

func TestLoadConfigAndSaveConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "targeting.json")

	cfg, err := ParseConfig([]byte(`{"explicit": [], "implicit": []}`))
	require.NoError(t, err)
	require.NoError(t, SaveConfig(path, cfg))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultHeaderName, loaded.HeaderName)
}

func TestLoadConfigRejectsMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.json"))
	assert.Error(t, err)
}

func TestLoadConfigRejectsSchemaViolation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "targeting.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"implicit": [{"name": "x"}]}`), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
