package config

import (
	"time"

	"github.com/mnafees/chopper/internal"
	"github.com/mnafees/chopper/internal/options"
)

// CreateVM creates a VM configured from the options and loads the program.
func CreateVM(opts options.Program) (*internal.C8VM, error) {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	vm, err := internal.NewC8VM(
		internal.WithRandom(internal.NewRandomSource(seed)),
		internal.WithTimerMode(opts.TimerMode()),
	)
	if err != nil {
		return nil, err
	}
	if err := vm.LoadProgram(opts.Input); err != nil {
		return nil, err
	}
	return vm, nil
}
