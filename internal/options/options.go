// Package options contains the command line options of the chopper programs.
package options

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/mnafees/chopper/internal"
)

// Defaults for the runtime options.
const (
	DefaultCycles = 10
	DefaultScale  = 20
	DefaultHold   = 6
	DefaultSteps  = 1000
)

// Program contains the options shared by all frontends.
type Program struct {
	Input string // program file to run

	Debug bool
	Quiet bool
	Trace bool // log every executed instruction

	Cycles int    // instructions per 60 Hz frame
	Timers string // "step" or "clock"
	Seed   int64  // 0 picks a time based seed

	Scale int // SDL pixel size
	Hold  int // terminal frames a key stays pressed

	Steps  int    // headless step count
	MemViz string // headless state dump file

	Wav       string // record beeper output to this file
	StatsView bool
}

// TimerMode returns the VM timer mode selected by the Timers option.
func (p Program) TimerMode() internal.TimerMode {
	if p.Timers == "step" {
		return internal.TimerPerStep
	}
	return internal.TimerWallClock
}

// UsageError represents an error that should show usage information
type UsageError struct {
	name  string
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	if e.msg == "" {
		return "invalid usage"
	}
	return e.msg
}

// ShowUsage prints the usage and the flag defaults.
func (e *UsageError) ShowUsage(w io.Writer) {
	fmt.Fprintf(w, "usage: %s [options] <CHIP-8 program>\n\n", e.name)
	e.flags.SetOutput(w)
	e.flags.PrintDefaults()
	fmt.Fprintln(w)
}

// ParseFlags parses the command line arguments, without the program name.
func ParseFlags(name string, args []string) (Program, error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var opts Program
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, implies -debug")
	flags.IntVar(&opts.Cycles, "cycles", DefaultCycles, "instructions executed per 60 Hz frame")
	flags.StringVar(&opts.Timers, "timers", "clock", "timer mode: step (one tick per instruction) or clock (60 Hz)")
	flags.Int64Var(&opts.Seed, "seed", 0, "random seed, 0 picks a time based seed")
	flags.IntVar(&opts.Scale, "scale", DefaultScale, "size of a CHIP-8 pixel in window pixels")
	flags.IntVar(&opts.Hold, "hold", DefaultHold, "frames a terminal key press is held down")
	flags.IntVar(&opts.Steps, "steps", DefaultSteps, "instructions to execute in headless mode")
	flags.StringVar(&opts.MemViz, "memviz", "", "write a graphviz dump of the final machine state to this file")
	flags.StringVar(&opts.Wav, "wav", "", "record the sound output to this WAV file")
	flags.BoolVar(&opts.StatsView, "statsview", false, "serve runtime statistics over http (needs -tags statsview)")

	usage := &UsageError{name: name, flags: flags}
	if err := flags.Parse(args); err != nil {
		usage.msg = err.Error()
		return opts, usage
	}

	rest := flags.Args()
	if len(rest) != 1 {
		usage.msg = "expected exactly one program file"
		return opts, usage
	}
	opts.Input = rest[0]

	if err := validate(&opts); err != nil {
		usage.msg = err.Error()
		return opts, usage
	}
	return opts, nil
}

func validate(opts *Program) error {
	opts.Timers = strings.ToLower(opts.Timers)
	if opts.Timers != "step" && opts.Timers != "clock" {
		return fmt.Errorf("unsupported timer mode '%s'", opts.Timers)
	}
	if opts.Cycles < 1 {
		return fmt.Errorf("cycles must be positive, got %d", opts.Cycles)
	}
	if opts.Scale < 1 {
		return fmt.Errorf("scale must be positive, got %d", opts.Scale)
	}
	if opts.Hold < 1 {
		return fmt.Errorf("hold must be positive, got %d", opts.Hold)
	}
	if opts.Steps < 0 {
		return fmt.Errorf("steps must not be negative, got %d", opts.Steps)
	}
	return nil
}
