package tty

import (
	"fmt"
	"os"
	"time"

	"github.com/mnafees/chopper/internal"
	"github.com/mnafees/chopper/internal/options"
	"github.com/mnafees/chopper/pkg/host"
	"github.com/pkg/term"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/sys/unix"
)

const (
	cursorHome = "\x1b[H"
	clearAll   = "\x1b[2J"
	hideCursor = "\x1b[?25l"
	showCursor = "\x1b[?25h"
)

// Terminal runs the VM in a text terminal.
type Terminal struct {
	tty    *term.Term
	output *os.File

	vm     *internal.C8VM
	runner *host.Runner
	logger *log.Logger
	hold   *keyHold

	input chan byte
}

// New returns a terminal frontend for vm.
func New(vm *internal.C8VM, logger *log.Logger, opts options.Program) *Terminal {
	return &Terminal{
		output: os.Stdout,
		vm:     vm,
		runner: host.NewRunner(vm, logger, opts.Cycles, opts.Trace),
		logger: logger,
		hold:   newKeyHold(opts.Hold),
		input:  make(chan byte, 64),
	}
}

// Open puts the controlling terminal into raw mode.
func (t *Terminal) Open() error {
	if err := checkSize(t.output); err != nil {
		return err
	}

	tty, err := term.Open("/dev/tty", term.RawMode)
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	t.tty = tty

	go t.readInput()

	fmt.Fprint(t.output, hideCursor+clearAll)
	return nil
}

// Close restores the terminal.
func (t *Terminal) Close() error {
	fmt.Fprint(t.output, showCursor+"\r\n")
	if t.tty == nil {
		return nil
	}
	if err := t.tty.Restore(); err != nil {
		return fmt.Errorf("restoring terminal: %w", err)
	}
	return t.tty.Close()
}

// checkSize verifies the window fits the frame when out is a terminal.
func checkSize(out *os.File) error {
	ws, err := unix.IoctlGetWinsize(int(out.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		// not a terminal, nothing to check
		return nil
	}
	if int(ws.Col) < Columns || int(ws.Row) < Rows {
		return fmt.Errorf("terminal is %dx%d, at least %dx%d is needed",
			ws.Col, ws.Row, Columns, Rows)
	}
	return nil
}

func (t *Terminal) readInput() {
	buf := make([]byte, 16)
	for {
		n, err := t.tty.Read(buf)
		if err != nil {
			close(t.input)
			return
		}
		for _, b := range buf[:n] {
			t.input <- b
		}
	}
}

// Loop runs the VM until the user quits with Escape or Ctrl-C, or the VM
// fails to execute an instruction.
func (t *Terminal) Loop() error {
	ticker := time.NewTicker(host.FrameDuration)
	defer ticker.Stop()

	prevTime := time.Now()
	for {
		if !t.handleInput() {
			return nil
		}

		now := time.Now()
		if err := t.runner.Frame(now.Sub(prevTime)); err != nil {
			return err
		}
		prevTime = now

		if t.vm.IsDrawFlagSet() {
			fmt.Fprint(t.output, cursorHome+Frame(t.vm.Pixels(), "\r\n"))
			t.vm.UnsetDrawFlag()
		}
		if t.vm.SoundTimer() > 0 {
			fmt.Fprint(t.output, "\a")
		}

		<-ticker.C
	}
}

// handleInput drains pending input bytes and returns false on quit.
func (t *Terminal) handleInput() bool {
	for _, key := range t.hold.tick() {
		t.setKey(key, false)
	}

	for {
		select {
		case b, ok := <-t.input:
			if !ok {
				return false
			}
			switch b {
			case keyCtrlC, keyEscape:
				return false
			case keyCtrlR:
				if err := t.vm.Reset(); err != nil {
					t.logger.Error("Resetting VM failed", err)
				}
				continue
			}
			if key, ok := mapKey(b); ok {
				t.hold.press(key)
				t.setKey(key, true)
			}
		default:
			return true
		}
	}
}

func (t *Terminal) setKey(key uint8, pressed bool) {
	if err := t.vm.SetKey(key, pressed); err != nil {
		t.logger.Error("Setting key failed", err)
	}
}
