package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetReturnsPresenceBit(t *testing.T) {
	r := New(map[string]string{"x": "1"})
	v, ok := r.Get("x")
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	_, ok = r.Get("missing")
	assert.False(t, ok)
}

func TestNewCopiesInputMap(t *testing.T) {
	src := map[string]string{"x": "1"}
	r := New(src)
	src["x"] = "mutated"

	v, _ := r.Get("x")
	assert.Equal(t, "1", v)
}
