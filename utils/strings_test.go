package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	{ // Adjacent separators give empty elements
		assert.Equal(t, []string{"", "3", "", "2"}, Split(":3::2", ":", false))
		assert.Equal(t, []string{"a", "b", ""}, Split("a:b:", ":", false))
		assert.Equal(t, []string{"", ""}, Split(":", ":", false))
		assert.Equal(t, []string{""}, Split("", ":", false))
		assert.Equal(t, []string{"abc"}, Split("abc", ":", false))
	}
	{ // Multi character separators
		assert.Equal(t, []string{"x", "y", "", "z"}, Split("x::y::::z", "::", false))
		assert.Equal(t, []string{"a", "b:c"}, Split("a->b:c", "->", false))
	}
	{ // Trimming
		assert.Equal(t, []string{"a", "b", "", "c"}, Split(" a :\tb\t: : c ", ":", true))
		assert.Equal(t, []string{" a ", "\tb\t"}, Split(" a :\tb\t", ":", false))
		assert.Equal(t, []string{"a", "b"}, Split("--a--,-b-", ",", true, "-"))
	}
	{ // Empty separator returns the whole input
		assert.Equal(t, []string{"a:b"}, Split("a:b", "", false))
		assert.Equal(t, []string{"a:b"}, Split(" a:b ", "", true))
	}
}

func TestIsIn(t *testing.T) {
	names := []string{"electrons", "protons", "photons"}
	assert.True(t, IsIn(names, "protons"))
	assert.False(t, IsIn(names, "positrons"))
	assert.False(t, IsIn(nil, "protons"))
	assert.True(t, IsInAny(names, []string{"positrons", "photons"}))
	assert.False(t, IsInAny(names, []string{"positrons", "muons"}))
	assert.False(t, IsInAny(names, nil))
}
