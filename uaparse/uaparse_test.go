package uaparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEmptyReturnsNil(t *testing.T) {
	assert.Nil(t, Parse(""))
}

func TestParseChrome(t *testing.T) {
	ua := Parse("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	if assert.NotNil(t, ua) {
		name, version := ua.Browser()
		assert.NotEmpty(t, name)
		assert.NotEmpty(t, version)
		assert.NotEmpty(t, ua.OS())
	}
}
