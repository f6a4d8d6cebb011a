package targeting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssembleSortsDedupesAndJoins(t *testing.T) {
	got := Assemble([]string{"gamma", "alpha"}, []string{"beta", "alpha"})
	assert.Equal(t, "alpha beta gamma", got)
}

func TestAssembleEmptyInputsYieldEmptyString(t *testing.T) {
	assert.Equal(t, "", Assemble(nil, nil))
}

func TestAssembleNoLeadingOrTrailingWhitespace(t *testing.T) {
	got := Assemble([]string{"x"}, nil)
	assert.Equal(t, "x", got)
	assert.NotContains(t, got, "  ")
}
