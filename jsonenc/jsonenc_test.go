package jsonenc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name string `json:"name"`
	N    int    `json:"n"`
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	data, err := Marshal(payload{Name: "a", N: 1})
	require.NoError(t, err)

	var out payload
	require.NoError(t, Unmarshal(data, &out))
	assert.Equal(t, payload{Name: "a", N: 1}, out)
}

func TestSetConfigSwapsBackend(t *testing.T) {
	original := config
	defer SetConfig(original)

	SetConfig(StdConfig())
	data, err := Marshal(payload{Name: "b", N: 2})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name":"b"`)
}
