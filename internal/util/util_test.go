package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "a b c", Truncate("a\n b   c", 10))
	assert.Equal(t, "abcdefg...", Truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", Truncate("abcdef", 2))
	assert.Equal(t, "crème b...", Truncate("crème brûlée tart", 10))
	assert.Equal(t, "unbounded", Truncate("unbounded", 0))
}

func TestFormatRating(t *testing.T) {
	assert.Equal(t, "not rated", FormatRating(0))
	assert.Equal(t, "4.5/5", FormatRating(4.5))
	assert.Equal(t, "3.3/5", FormatRating(3.333))
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "1 recipe", Plural(1, "recipe"))
	assert.Equal(t, "0 recipes", Plural(0, "recipe"))
	assert.Equal(t, "3 favorites", Plural(3, "favorite"))
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, IsNumeric("123"))
	assert.False(t, IsNumeric(""))
	assert.False(t, IsNumeric("12a"))
	assert.False(t, IsNumeric("-1"))
}
