package sdl

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/veandco/go-sdl2/sdl"
)

func TestKeymap(t *testing.T) {
	tests := []struct {
		code     sdl.Scancode
		expected int8
	}{
		{sdl.SCANCODE_1, 0x1},
		{sdl.SCANCODE_4, 0xC},
		{sdl.SCANCODE_Q, 0x4},
		{sdl.SCANCODE_R, 0xD},
		{sdl.SCANCODE_F, 0xE},
		{sdl.SCANCODE_X, 0x0},
		{sdl.SCANCODE_V, 0xF},
		{sdl.SCANCODE_P, -1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, keymap(tt.code))
	}

	seen := map[int8]bool{}
	for code := sdl.Scancode(0); code < 512; code++ {
		if key := keymap(code); key != -1 {
			assert.False(t, seen[key])
			seen[key] = true
		}
	}
	assert.Equal(t, 16, len(seen))
}
