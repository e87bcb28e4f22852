package main

// Follows the CHIP-8 technical reference found at http://devernay.free.fr/hacks/chip8/C8TECH10.HTM

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bradleyjkemp/memviz"
	"github.com/mnafees/chopper/internal"
	"github.com/mnafees/chopper/internal/config"
	"github.com/mnafees/chopper/internal/options"
	"github.com/mnafees/chopper/pkg/host"
	"github.com/mnafees/chopper/pkg/tty"
	"github.com/retroenv/retrogolib/log"
)

// chopper runs a program headless for a fixed number of instructions and
// prints the final framebuffer and registers.
func main() {
	os.Exit(chopper(os.Args[1:], os.Stdout, os.Stderr))
}

func chopper(args []string, stdout, stderr io.Writer) int {
	opts, err := options.ParseFlags("chopper-headless", args)
	logger := config.CreateLogger(opts)
	if err != nil {
		var usageErr *options.UsageError
		if errors.As(err, &usageErr) {
			logger.Error(usageErr.Error(), nil)
			usageErr.ShowUsage(stderr)
		}
		return 1
	}

	vm, err := config.CreateVM(opts)
	if err != nil {
		logger.Error("Loading program failed", err)
		return 1
	}

	steps, runErr := runHeadless(vm, logger, opts)
	printState(stdout, vm, steps)

	if opts.MemViz != "" {
		if err := dumpState(opts.MemViz, vm); err != nil {
			logger.Error("Writing state dump failed", err)
			return 1
		}
	}
	if runErr != nil {
		logger.Error("Emulation stopped", runErr)
		return 1
	}
	return 0
}

// runHeadless executes up to opts.Steps instructions. Headless runs have no
// keyboard, so a key wait ends the run.
func runHeadless(vm *internal.C8VM, logger *log.Logger, opts options.Program) (int, error) {
	runner := host.NewRunner(vm, logger, 1, opts.Trace)
	for i := 0; i < opts.Steps; i++ {
		if vm.Status() == internal.AwaitingKey {
			logger.Info("Program waits for a key, stopping", log.Int("steps", i))
			return i, nil
		}
		if err := runner.Step(); err != nil {
			return i, err
		}
		if opts.TimerMode() == internal.TimerWallClock && (i+1)%opts.Cycles == 0 {
			vm.AdvanceTimers(host.FrameDuration)
		}
	}
	return opts.Steps, nil
}

func printState(w io.Writer, vm *internal.C8VM, steps int) {
	state := vm.Snapshot()
	fmt.Fprint(w, tty.Frame(vm.Pixels(), "\n"))
	fmt.Fprintf(w, "steps=%d pc=%03X i=%03X dt=%d st=%d status=%s\n",
		steps, state.PC, state.Index, state.DelayTimer, state.SoundTimer, state.Status)
	for i, v := range state.Registers {
		fmt.Fprintf(w, "V%X=%02X", i, v)
		if i%8 == 7 {
			fmt.Fprintln(w)
		} else {
			fmt.Fprint(w, " ")
		}
	}
}

// dumpState writes a graphviz representation of the processor state.
func dumpState(filename string, vm *internal.C8VM) (rerr error) {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating state dump: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("closing state dump: %w", err)
		}
	}()

	state := vm.Snapshot()
	memviz.Map(f, &state)
	return nil
}
