// Package host drives a CHIP-8 VM the way a frontend does: a fixed number
// of instructions per 60 Hz frame, with timers fed from elapsed time.
package host

import (
	"fmt"
	"time"

	"github.com/mnafees/chopper/internal"
	"github.com/retroenv/retrogolib/log"
)

// FrameDuration is the time between two displayed frames.
const FrameDuration = internal.TimerFrequency

// Runner executes instructions on a VM.
type Runner struct {
	vm     *internal.C8VM
	logger *log.Logger
	cycles int
	trace  bool
}

// NewRunner returns a runner executing cycles instructions per frame. With
// trace set every instruction is logged at debug level.
func NewRunner(vm *internal.C8VM, logger *log.Logger, cycles int, trace bool) *Runner {
	if cycles < 1 {
		cycles = 1
	}
	return &Runner{
		vm:     vm,
		logger: logger,
		cycles: cycles,
		trace:  trace,
	}
}

// Step executes a single instruction.
func (r *Runner) Step() error {
	if r.vm.Status() == internal.AwaitingKey {
		return r.vm.Step()
	}

	pc := r.vm.PC()
	if err := r.vm.Step(); err != nil {
		return err
	}
	if r.trace {
		r.logger.Debug("Executed instruction",
			log.String("pc", fmt.Sprintf("%03X", pc)),
			log.String("opcode", fmt.Sprintf("%04X", r.vm.Opcode())),
			log.String("instruction", internal.Disassemble(r.vm.Opcode())))
	}
	if r.trace && r.vm.Status() == internal.AwaitingKey {
		r.logger.Debug("Waiting for key press")
	}
	return nil
}

// Frame runs one frame worth of instructions, stopping early while the VM
// waits for a key, then advances the timers by elapsed.
func (r *Runner) Frame(elapsed time.Duration) error {
	for i := 0; i < r.cycles; i++ {
		if r.vm.Status() == internal.AwaitingKey {
			break
		}
		if err := r.Step(); err != nil {
			return err
		}
	}
	r.vm.AdvanceTimers(elapsed)
	return nil
}
