package util

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTrimString(t *testing.T) {
	assert.Equal(t, "Chateau", TrimString("Chateau de Vincennes", 7))
	assert.Equal(t, "abc", TrimString("abc", 10))
	assert.Equal(t, "abc", TrimString("abc", 3))
	assert.Equal(t, "abc", TrimString("abc", 0))
}

func TestTrimStringCountsRunes(t *testing.T) {
	assert.Equal(t, "Dé", TrimString("Défense", 2))
	assert.Equal(t, "Château", TrimString("Château de Vincennes", 7))

	trimmed := TrimString("Créteil-Préfecture", 9)
	assert.True(t, utf8.ValidString(trimmed))
	assert.Equal(t, "Créteil-P", trimmed)
}
