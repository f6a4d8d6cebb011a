package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feature-mesh/targeting/request"
)

func evalNum(t *testing.T, raw string, req request.Request) (float64, error) {
	t.Helper()
	var e NumExpr
	require.NoError(t, e.UnmarshalJSON([]byte(raw)))
	ctx := NewContext(req, NewRegexCache())
	return e.Eval(ctx)
}

func TestNumConstant(t *testing.T) {
	v, err := evalNum(t, `{"constant": 3.5}`, request.New(nil))
	require.NoError(t, err)
	assert.Equal(t, 3.5, v)
}

func TestNumAttribute(t *testing.T) {
	req := request.New(map[string]string{"age": "42"})
	v, err := evalNum(t, `{"attribute": "age"}`, req)
	require.NoError(t, err)
	assert.Equal(t, float64(42), v)
}

func TestNumAttributeUnparseable(t *testing.T) {
	req := request.New(map[string]string{"age": "not-a-number"})
	_, err := evalNum(t, `{"attribute": "age"}`, req)
	require.Error(t, err)
	assert.Equal(t, ParseFailure, err.(*Error).Kind)
}

func TestNumRankIsDeterministicAndBounded(t *testing.T) {
	raw := `{"rank": {"constant": "user-1234"}}`
	a, err := evalNum(t, raw, request.New(nil))
	require.NoError(t, err)
	b, err := evalNum(t, raw, request.New(nil))
	require.NoError(t, err)
	assert.Equal(t, a, b, "same input hashes to the same rank every time")
	assert.GreaterOrEqual(t, a, 0.0)
	assert.Less(t, a, 100.0)
}

func TestNumRankVariesAcrossInputs(t *testing.T) {
	a, err := evalNum(t, `{"rank": {"constant": "user-1"}}`, request.New(nil))
	require.NoError(t, err)
	b, err := evalNum(t, `{"rank": {"constant": "user-2"}}`, request.New(nil))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestNumJSONPointer(t *testing.T) {
	raw := `{"json_pointer": {"pointer": "/score", "value": {"constant": "{\"score\": 9.5}"}}}`
	v, err := evalNum(t, raw, request.New(nil))
	require.NoError(t, err)
	assert.Equal(t, 9.5, v)
}
