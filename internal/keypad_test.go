package internal

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestSetKey(t *testing.T) {
	vm := newTestVM(t)

	assert.NoError(t, vm.SetKey(0x0, true))
	assert.NoError(t, vm.SetKey(0xF, true))
	assert.True(t, vm.IsKeyPressed(0x0))
	assert.True(t, vm.IsKeyPressed(0xF))
	assert.False(t, vm.IsKeyPressed(0x1))

	// releasing twice must not set the key again
	assert.NoError(t, vm.SetKey(0xF, false))
	assert.NoError(t, vm.SetKey(0xF, false))
	assert.False(t, vm.IsKeyPressed(0xF))

	assert.True(t, errors.Is(vm.SetKey(KeyCount, true), ErrInvalidKey))
	assert.False(t, vm.IsKeyPressed(KeyCount))

	vm.ReleaseKeys()
	assert.False(t, vm.IsKeyPressed(0x0))
}
