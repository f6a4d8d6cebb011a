package obslog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type nested struct {
	Name string
	Tags []string
}

type sample struct {
	Country string
	Plan    string
	Meta    nested
	Skip    string
}

func TestFlattenProducesDotNotationPairs(t *testing.T) {
	v := sample{
		Country: "US",
		Plan:    "pro",
		Meta:    nested{Name: "ada", Tags: []string{"x", "y"}},
	}
	got := Flatten(v)
	assert.Contains(t, got, "Country=US")
	assert.Contains(t, got, "Plan=pro")
	assert.Contains(t, got, "Meta.Name=ada")
	assert.Contains(t, got, "Meta.Tags=[x,y]")
}

func TestFlattenSkipsEmptyStrings(t *testing.T) {
	got := Flatten(sample{Country: "US"})
	assert.NotContains(t, got, "Plan=")
	assert.NotContains(t, got, "Skip=")
}

func TestFlattenQuotesValuesWithSpaces(t *testing.T) {
	got := Flatten(sample{Country: "United States"})
	assert.Contains(t, got, `Country="United States"`)
}
