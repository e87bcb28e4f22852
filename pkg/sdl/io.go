package sdl

import (
	"fmt"
	"time"

	"github.com/mnafees/chopper/internal"
	"github.com/mnafees/chopper/internal/options"
	"github.com/mnafees/chopper/pkg/host"
	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	screenColor = 0x1A237E
	spriteColor = 0x9FA8DA
)

// IO is the input/output abstraction layer for the VM
type IO struct {
	window  *sdl.Window
	surface *sdl.Surface
	audio   *audioOutput

	vm     *internal.C8VM
	runner *host.Runner
	logger *log.Logger

	pixelSize int32
	wavFile   string
}

// NewIO returns a new I/O instance for the SDL frontend
func NewIO(vm *internal.C8VM, logger *log.Logger, opts options.Program) *IO {
	return &IO{
		vm:        vm,
		runner:    host.NewRunner(vm, logger, opts.Cycles, opts.Trace),
		logger:    logger,
		pixelSize: int32(opts.Scale),
		wavFile:   opts.Wav,
	}
}

// SetupWindow initialises and sets up the main SDL window and audio device
func (io *IO) SetupWindow(title string) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("initialising SDL: %w", err)
	}

	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		internal.ScreenWidth*io.pixelSize, internal.ScreenHeight*io.pixelSize, sdl.WINDOW_SHOWN)
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	io.window = window
	io.surface, err = window.GetSurface()
	if err != nil {
		return fmt.Errorf("getting window surface: %w", err)
	}
	if err := io.surface.FillRect(nil, screenColor); err != nil {
		return fmt.Errorf("clearing window surface: %w", err)
	}

	io.audio, err = openAudio(io.wavFile)
	if err != nil {
		// the emulator is playable without sound
		io.logger.Warn("Audio disabled", log.Err(err))
		io.audio = nil
	}
	return nil
}

// Destroy should be called before quitting the application
func (io *IO) Destroy() {
	if io.audio != nil {
		if err := io.audio.close(); err != nil {
			io.logger.Error("Closing audio failed", err)
		}
	}
	if io.window != nil {
		if err := io.window.Destroy(); err != nil {
			io.logger.Error("Destroying window failed", err)
		}
	}
	sdl.Quit()
}

// Loop is the main application loop. It returns when the window is closed
// or the VM fails to execute an instruction.
func (io *IO) Loop() error {
	ticker := time.NewTicker(host.FrameDuration)
	defer ticker.Stop()

	prevTime := time.Now()
	for {
		if !io.handleEvents() {
			return nil
		}

		now := time.Now()
		if err := io.runner.Frame(now.Sub(prevTime)); err != nil {
			return err
		}
		prevTime = now

		if io.vm.IsDrawFlagSet() {
			if err := io.draw(); err != nil {
				return err
			}
		}
		if io.audio != nil {
			if err := io.audio.update(io.vm.SoundTimer() > 0); err != nil {
				return err
			}
		}

		<-ticker.C
	}
}

// handleEvents processes pending SDL events and returns false on quit.
func (io *IO) handleEvents() bool {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch t := event.(type) {
		case *sdl.KeyboardEvent:
			keycode := t.Keysym.Scancode
			switch t.GetType() {
			case sdl.KEYDOWN:
				switch keycode {
				case sdl.SCANCODE_ESCAPE:
					return false
				case sdl.SCANCODE_F5:
					io.reset()
				default:
					io.setKey(keycode, true)
				}
			case sdl.KEYUP:
				io.setKey(keycode, false)
			}
		case *sdl.QuitEvent:
			return false
		}
	}
	return true
}

func (io *IO) reset() {
	if err := io.vm.Reset(); err != nil {
		io.logger.Error("Resetting VM failed", err)
		return
	}
	io.logger.Info("VM reset")
}

// Draws the current framebuffer on screen
func (io *IO) draw() error {
	if err := io.surface.FillRect(nil, screenColor); err != nil {
		return fmt.Errorf("clearing window surface: %w", err)
	}
	pixels := io.vm.Pixels()
	for w := int32(0); w < internal.ScreenWidth; w++ {
		for h := int32(0); h < internal.ScreenHeight; h++ {
			if pixels[w][h] == 1 {
				rect := &sdl.Rect{X: w * io.pixelSize, Y: h * io.pixelSize, W: io.pixelSize, H: io.pixelSize}
				if err := io.surface.FillRect(rect, spriteColor); err != nil {
					return fmt.Errorf("drawing pixel: %w", err)
				}
			}
		}
	}
	if err := io.window.UpdateSurface(); err != nil {
		return fmt.Errorf("updating window surface: %w", err)
	}
	io.vm.UnsetDrawFlag()
	return nil
}

func (io *IO) setKey(keycode sdl.Scancode, pressed bool) {
	code := keymap(keycode)
	if code == -1 {
		return
	}
	if err := io.vm.SetKey(uint8(code), pressed); err != nil {
		io.logger.Error("Setting key failed", err)
	}
}

// Maps keys from a QWERTY keyboard to the keypad used by CHIP-8
// Below we have a mapping QWERTY keyboard to the CHIP-8 keypad
// +--------+--------+--------+--------+
// | 1 -> 1 | 2 -> 2 | 3 -> 3 | 4 -> C |
// +--------+--------+--------+--------+
// | Q -> 4 | W -> 5 | E -> 6 | R -> D |
// +--------+--------+--------+--------+
// | A -> 7 | S -> 8 | D -> 9 | F -> E |
// +--------+--------+--------+--------+
// | Z -> A | X -> 0 | C -> B | V -> F |
// +--------+--------+--------+--------+
func keymap(code sdl.Scancode) int8 {
	switch code {
	case sdl.SCANCODE_1:
		return 0x1
	case sdl.SCANCODE_2:
		return 0x2
	case sdl.SCANCODE_3:
		return 0x3
	case sdl.SCANCODE_4:
		return 0xC
	case sdl.SCANCODE_Q:
		return 0x4
	case sdl.SCANCODE_W:
		return 0x5
	case sdl.SCANCODE_E:
		return 0x6
	case sdl.SCANCODE_R:
		return 0xD
	case sdl.SCANCODE_A:
		return 0x7
	case sdl.SCANCODE_S:
		return 0x8
	case sdl.SCANCODE_D:
		return 0x9
	case sdl.SCANCODE_F:
		return 0xE
	case sdl.SCANCODE_Z:
		return 0xA
	case sdl.SCANCODE_X:
		return 0x0
	case sdl.SCANCODE_C:
		return 0xB
	case sdl.SCANCODE_V:
		return 0xF
	default:
		return -1
	}
}
