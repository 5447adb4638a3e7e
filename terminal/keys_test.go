package terminal

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestKeyFor(t *testing.T) {
	tests := []struct {
		c    byte
		want int
		ok   bool
	}{
		{'x', 0x0, true},
		{'1', 0x1, true},
		{'4', 0xC, true},
		{'v', 0xF, true},
		{'V', 0xF, true}, // case insensitive
		{'Q', 0x4, true},
		{'5', 0, false},
		{'g', 0, false},
		{0x1b, 0, false},
	}

	for _, tt := range tests {
		k, ok := keyFor(tt.c)
		assert.Equal(t, tt.ok, ok)
		if ok {
			assert.Equal(t, tt.want, k)
		}
	}
}
