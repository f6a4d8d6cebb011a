package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRoundTripPreservesChildOrder guards the config round-trip
// fidelity obligation: marshaling then unmarshaling an And/Or node
// must not reorder its children, since targeting.Config round-trips
// through encoding/json for exact structural fidelity.
func TestRoundTripPreservesChildOrder(t *testing.T) {
	raw := []byte(`{"or":[{"str_eq":[{"constant":"x"},{"constant":"y"}]},{"constant":true},{"not":{"constant":false}}]}`)
	var e BoolExpr
	require.NoError(t, e.UnmarshalJSON(raw))

	or, ok := e.Node.(BoolOr)
	require.True(t, ok)
	require.Len(t, or.Xs, 3)

	out, err := e.MarshalJSON()
	require.NoError(t, err)

	var e2 BoolExpr
	require.NoError(t, e2.UnmarshalJSON(out))
	or2, ok := e2.Node.(BoolOr)
	require.True(t, ok)
	require.Len(t, or2.Xs, 3)

	assert.Equal(t, or.Xs, or2.Xs)
}

func TestRoundTripPreservesStrListChildOrder(t *testing.T) {
	raw := []byte(`{"constant":["delta","alpha","charlie","bravo"]}`)
	var e StrListExpr
	require.NoError(t, e.UnmarshalJSON(raw))

	out, err := e.MarshalJSON()
	require.NoError(t, err)

	var e2 StrListExpr
	require.NoError(t, e2.UnmarshalJSON(out))
	assert.Equal(t, e.Node, e2.Node, "order must survive a marshal/unmarshal cycle unchanged")
}
