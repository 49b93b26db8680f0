package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandStr(t *testing.T) {
	for i := 0; i <= 16; i++ {
		assert.Len(t, RandStr(i), i)
	}

	// Salt-sized strings should not collide.
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		s := RandStr(16)
		assert.False(t, seen[s], "duplicate salt %q", s)
		seen[s] = true
	}
}
