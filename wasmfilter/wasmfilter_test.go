package wasmfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleRequestHeadersBeforeConfigureReturnsEmpty(t *testing.T) {
	f := New()
	name, value := f.HandleRequestHeaders(map[string]string{"x-features": "a b"})
	assert.Empty(t, name)
	assert.Empty(t, value)
}

func TestConfigureThenHandleRequestHeaders(t *testing.T) {
	f := New()
	raw := []byte(`{
		"header_name": "x-features",
		"explicit": [{"split": {"separator": " ", "value": {"attribute": "x-features"}}}],
		"implicit": []
	}`)
	require.NoError(t, f.Configure(raw))

	name, value := f.HandleRequestHeaders(map[string]string{"x-features": "beta alpha"})
	assert.Equal(t, "x-features", name)
	assert.Equal(t, "alpha beta", value)
}

func TestConfigureRejectsInvalidConfig(t *testing.T) {
	f := New()
	err := f.Configure([]byte(`{"implicit": [{"name": "no-rule"}]}`))
	assert.Error(t, err)
}

func TestConfigureLeavesPriorConfigOnFailure(t *testing.T) {
	f := New()
	good := []byte(`{"explicit": [{"constant": ["kept"]}], "implicit": []}`)
	require.NoError(t, f.Configure(good))

	bad := []byte(`{"implicit": [{"name": "no-rule"}]}`)
	assert.Error(t, f.Configure(bad))

	_, value := f.HandleRequestHeaders(nil)
	assert.Equal(t, "kept", value)
}
