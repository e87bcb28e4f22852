package host

import (
	"errors"
	"testing"

	"github.com/mnafees/chopper/internal"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func newVM(t *testing.T, mode internal.TimerMode, program ...uint8) *internal.C8VM {
	t.Helper()
	vm, err := internal.NewC8VM(internal.WithTimerMode(mode))
	assert.NoError(t, err)
	assert.NoError(t, vm.Load(program))
	return vm
}

func TestFrame(t *testing.T) {
	// LD V0, 0x05; LD DT, V0; JP 0x204
	vm := newVM(t, internal.TimerWallClock, 0x60, 0x05, 0xF0, 0x15, 0x12, 0x04)
	r := NewRunner(vm, log.NewTestLogger(t), 4, true)

	assert.NoError(t, r.Frame(FrameDuration))
	assert.Equal(t, uint16(0x204), vm.PC())
	assert.Equal(t, uint8(4), vm.DelayTimer())

	assert.NoError(t, r.Frame(2*FrameDuration))
	assert.Equal(t, uint8(2), vm.DelayTimer())
}

func TestFrameStopsWhileAwaitingKey(t *testing.T) {
	// LD V1, K; LD V2, 0x01; JP 0x204
	vm := newVM(t, internal.TimerPerStep, 0xF1, 0x0A, 0x62, 0x01, 0x12, 0x04)
	r := NewRunner(vm, log.NewTestLogger(t), 10, false)

	assert.NoError(t, r.Frame(FrameDuration))
	assert.Equal(t, internal.AwaitingKey, vm.Status())
	assert.Equal(t, uint16(internal.ProgramStart), vm.PC())

	assert.NoError(t, vm.SetKey(4, true))
	assert.NoError(t, r.Frame(FrameDuration))
	assert.Equal(t, uint8(1), vm.Snapshot().Registers[2])
	assert.Equal(t, uint8(4), vm.Snapshot().Registers[1])
}

func TestFrameError(t *testing.T) {
	vm := newVM(t, internal.TimerWallClock, 0x00, 0xEE)
	r := NewRunner(vm, log.NewTestLogger(t), 0, false)

	err := r.Frame(FrameDuration)
	assert.True(t, errors.Is(err, internal.ErrStackUnderflow))
}
