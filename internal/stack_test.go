package internal

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestCallStack(t *testing.T) {
	var s callStack

	_, err := s.pop()
	assert.True(t, errors.Is(err, ErrStackUnderflow))

	for i := 0; i < StackSize; i++ {
		assert.NoError(t, s.push(uint16(0x200+2*i)))
	}
	assert.True(t, errors.Is(s.push(0x300), ErrStackOverflow))
	assert.Equal(t, StackSize, s.depth())
	assert.Equal(t, uint16(0x200), s.entriesCopy()[0])

	addr, err := s.pop()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x200+2*(StackSize-1)), addr)

	s.reset()
	assert.Equal(t, 0, s.depth())
	assert.Equal(t, 0, len(s.entriesCopy()))
}
