package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomString(t *testing.T) {
	s := RandomString(10)

	assert.Len(t, s, 10)

	for _, r := range s {
		assert.True(t, strings.ContainsRune("abcdefghijklmnopqrstuvwxyz0123456789", r))
	}
}
