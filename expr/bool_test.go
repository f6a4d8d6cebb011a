package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feature-mesh/targeting/request"
)

func evalBool(t *testing.T, raw string, req request.Request) (bool, error) {
	t.Helper()
	var e BoolExpr
	require.NoError(t, e.UnmarshalJSON([]byte(raw)))
	ctx := NewContext(req, NewRegexCache())
	return e.Eval(ctx)
}

func TestBoolConstant(t *testing.T) {
	ok, err := evalBool(t, `{"constant": true}`, request.New(nil))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBoolAttribute(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		ok, err := evalBool(t, `{"attribute": "plan"}`, request.New(map[string]string{"plan": "pro"}))
		require.NoError(t, err)
		assert.True(t, ok)
	})
	t.Run("missing", func(t *testing.T) {
		_, err := evalBool(t, `{"attribute": "plan"}`, request.New(nil))
		require.Error(t, err)
		assert.Equal(t, MissingAttribute, err.(*Error).Kind)
	})
}

func TestBoolIn(t *testing.T) {
	raw := `{"in": {"list": {"constant": ["a", "b", "c"]}, "value": {"constant": "b"}}}`
	ok, err := evalBool(t, raw, request.New(nil))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBoolAnyIn(t *testing.T) {
	raw := `{"any_in": {"list": {"constant": ["a", "b"]}, "values": {"constant": ["z", "b"]}}}`
	ok, err := evalBool(t, raw, request.New(nil))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBoolAllIn(t *testing.T) {
	t.Run("all present", func(t *testing.T) {
		raw := `{"all_in": {"list": {"constant": ["a", "b", "c"]}, "values": {"constant": ["a", "b"]}}}`
		ok, err := evalBool(t, raw, request.New(nil))
		require.NoError(t, err)
		assert.True(t, ok)
	})
	t.Run("one missing", func(t *testing.T) {
		raw := `{"all_in": {"list": {"constant": ["a", "b"]}, "values": {"constant": ["a", "z"]}}}`
		ok, err := evalBool(t, raw, request.New(nil))
		require.NoError(t, err)
		assert.False(t, ok)
	})
	t.Run("empty values vacuously true", func(t *testing.T) {
		raw := `{"all_in": {"list": {"constant": ["a"]}, "values": {"constant": []}}}`
		ok, err := evalBool(t, raw, request.New(nil))
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestBoolMatches(t *testing.T) {
	raw := `{"matches": ["^[a-z]+$", {"constant": "hello"}]}`
	ok, err := evalBool(t, raw, request.New(nil))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBoolMatchesIsSearchNotFullMatch(t *testing.T) {
	raw := `{"matches": ["ell", {"constant": "hello world"}]}`
	ok, err := evalBool(t, raw, request.New(nil))
	require.NoError(t, err)
	assert.True(t, ok, "matches is a search, not an anchored full match")
}

func TestBoolComparisons(t *testing.T) {
	cases := []struct {
		raw  string
		want bool
	}{
		{`{"str_eq": [{"constant": "a"}, {"constant": "a"}]}`, true},
		{`{"str_eq": [{"constant": "a"}, {"constant": "b"}]}`, false},
		{`{"num_eq": [{"constant": 1.0}, {"constant": 1.0}]}`, true},
		{`{"num_eq": [{"constant": 1.0}, {"constant": 1.0000000001}]}`, false},
		{`{"gt": [{"constant": 2}, {"constant": 1}]}`, true},
		{`{"lt": [{"constant": 1}, {"constant": 2}]}`, true},
		{`{"gte": [{"constant": 2}, {"constant": 2}]}`, true},
		{`{"lte": [{"constant": 2}, {"constant": 2}]}`, true},
	}
	for _, tc := range cases {
		ok, err := evalBool(t, tc.raw, request.New(nil))
		require.NoError(t, err)
		assert.Equal(t, tc.want, ok, tc.raw)
	}
}

func TestBoolNot(t *testing.T) {
	ok, err := evalBool(t, `{"not": {"constant": false}}`, request.New(nil))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBoolAndPropagatesError(t *testing.T) {
	raw := `{"and": [{"constant": true}, {"attribute": "missing"}]}`
	_, err := evalBool(t, raw, request.New(nil))
	require.Error(t, err)
}

func TestBoolAndEvaluatesEveryChild(t *testing.T) {
	// the first child is false; and must still evaluate the second,
	// whose error fails the whole node.
	raw := `{"and": [{"constant": false}, {"attribute": "b"}]}`
	_, err := evalBool(t, raw, request.New(nil))
	require.Error(t, err)
}

func TestBoolOr(t *testing.T) {
	raw := `{"or": [{"constant": false}, {"constant": true}]}`
	ok, err := evalBool(t, raw, request.New(nil))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBoolOrPropagatesErrorEvenIfOneChildTrue(t *testing.T) {
	raw := `{"or": [{"constant": true}, {"attribute": "missing"}]}`
	_, err := evalBool(t, raw, request.New(nil))
	require.Error(t, err, "combinators propagate errors strictly, no short-circuit on success")
}

func TestBoolRoundTrip(t *testing.T) {
	raw := []byte(`{"and":[{"constant":true},{"not":{"attribute":"x"}}]}`)
	var e BoolExpr
	require.NoError(t, e.UnmarshalJSON(raw))
	out, err := e.MarshalJSON()
	require.NoError(t, err)
	var e2 BoolExpr
	require.NoError(t, e2.UnmarshalJSON(out))
	assert.Equal(t, e.Node, e2.Node)
}
