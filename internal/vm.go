package internal

// Follows the CHIP-8 technical reference found at http://devernay.free.fr/hacks/chip8/C8TECH10.HTM

import (
	"fmt"
	"os"
	"time"
)

// CHIP-8 VM constants
const (
	totalMemory    = 0x1000
	pcStartAddr    = 0x200
	maxProgramSize = totalMemory - pcStartAddr

	// TimerFrequency is the duration of one 60 Hz timer tick.
	TimerFrequency = time.Second / 60
	ScreenWidth    = 64
	ScreenHeight   = 32
)

// ProgramStart is the address programs are loaded at and executed from.
const ProgramStart = pcStartAddr

// Status is the execution state of the VM.
type Status uint8

const (
	// Running means the next Step fetches and executes an instruction.
	Running Status = iota
	// AwaitingKey means an FX0A instruction is waiting for a key press.
	AwaitingKey
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case AwaitingKey:
		return "awaiting key"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// TimerMode selects what drives the delay and sound timers.
type TimerMode uint8

const (
	// TimerPerStep decrements both timers once per Step call.
	TimerPerStep TimerMode = iota
	// TimerWallClock leaves Step alone and decrements the timers from
	// AdvanceTimers at 60 Hz of elapsed host time.
	TimerWallClock
)

// C8VM is an emulated CHIP-8 VM
type C8VM struct {
	opcode     uint16             // 16-bit opcode of the current instruction
	regV       [16]uint8          // 16 general purpose 8-bit registers
	regI       uint16             // 16-bit register that is generally used to store memory addresses
	delayTimer uint8              // Delay timer
	soundTimer uint8              // Sound timer
	pc         uint16             // Program counter
	stack      callStack          // Return addresses of active subroutine calls
	memory     [totalMemory]uint8 // 4 KB global memory

	status  Status // running or waiting on FX0A
	waitReg uint8  // register FX0A stores the pressed key into

	timerMode  TimerMode
	timerAccum time.Duration // wall-clock time not yet converted into ticks

	rnd     RandomSource
	program []byte // last loaded program image, used by Reset

	drawFlag bool // framebuffer changed since the host last drew it

	// A 16-bit integer to hold the current key values in the form of individual bits.
	// So when 0 is pushed in the keypad, the 0'th bit will be set and so on.
	key uint16

	// 64 px x 32 px display
	pixels [ScreenWidth][ScreenHeight]uint8
}

// Option configures a C8VM at construction.
type Option func(*C8VM)

// WithRandom sets the source used by the CXNN instruction.
func WithRandom(src RandomSource) Option {
	return func(vm *C8VM) {
		vm.rnd = src
	}
}

// WithTimerMode sets how the delay and sound timers are decremented.
func WithTimerMode(mode TimerMode) Option {
	return func(vm *C8VM) {
		vm.timerMode = mode
	}
}

// NewC8VM creates a new instance of an emulated CHIP-8 VM
func NewC8VM(opts ...Option) (*C8VM, error) {
	vm := &C8VM{}
	for _, opt := range opts {
		opt(vm)
	}
	if vm.rnd == nil {
		vm.rnd = NewRandomSource(time.Now().UnixNano())
	}
	if vm.timerMode != TimerPerStep && vm.timerMode != TimerWallClock {
		return nil, fmt.Errorf("invalid timer mode %d", vm.timerMode)
	}
	vm.init()
	return vm, nil
}

// init zeroes all machine state and seeds the font.
func (vm *C8VM) init() {
	vm.memory = [totalMemory]uint8{}
	copy(vm.memory[fontStartAddr:], fontset[:])
	vm.regV = [16]uint8{}
	vm.regI = 0
	vm.pc = pcStartAddr
	vm.opcode = 0
	vm.stack.reset()
	vm.delayTimer = 0
	vm.soundTimer = 0
	vm.timerAccum = 0
	vm.status = Running
	vm.waitReg = 0
	vm.key = 0
	vm.clearPixels()
	vm.drawFlag = true
}

// Reset returns the VM to its power-on state and reloads the last program.
func (vm *C8VM) Reset() error {
	vm.init()
	if vm.program == nil {
		return nil
	}
	return vm.Load(vm.program)
}

// Load copies a program image into memory at the program start address.
func (vm *C8VM) Load(data []byte) error {
	if len(data) > maxProgramSize {
		return fmt.Errorf("%w: program size %d exceeds the maximum of %d bytes",
			ErrMemoryOutOfBounds, len(data), maxProgramSize)
	}
	copy(vm.memory[pcStartAddr:], data)
	vm.program = append(vm.program[:0], data...)
	return nil
}

// LoadProgram loads a given CHIP-8 program file into the VM's memory
func (vm *C8VM) LoadProgram(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}
	return vm.Load(data)
}

// Step executes a single instruction and then ticks the timers when the VM
// runs in TimerPerStep mode. While awaiting a key no instruction is fetched.
// On error the program counter is left on the failing instruction and the
// timers are not ticked.
func (vm *C8VM) Step() error {
	if vm.status == Running {
		if err := vm.execute(); err != nil {
			return err
		}
	}
	if vm.timerMode == TimerPerStep {
		vm.tickTimers()
	}
	return nil
}

// RunCycles executes up to n steps. It stops early on error or once the VM
// waits for a key, and returns the number of steps taken.
func (vm *C8VM) RunCycles(n int) (int, error) {
	for i := 0; i < n; i++ {
		if vm.status == AwaitingKey {
			return i, nil
		}
		if err := vm.Step(); err != nil {
			return i, err
		}
	}
	return n, nil
}

// AdvanceTimers converts elapsed host time into 60 Hz timer ticks. It has
// no effect in TimerPerStep mode.
func (vm *C8VM) AdvanceTimers(elapsed time.Duration) {
	if vm.timerMode != TimerWallClock || elapsed <= 0 {
		return
	}
	vm.timerAccum += elapsed
	for vm.timerAccum >= TimerFrequency {
		vm.timerAccum -= TimerFrequency
		vm.tickTimers()
	}
}

func (vm *C8VM) tickTimers() {
	if vm.delayTimer > 0 {
		vm.delayTimer--
	}
	if vm.soundTimer > 0 {
		vm.soundTimer--
	}
}

// Status returns whether the VM is running or waiting for a key.
func (vm *C8VM) Status() Status {
	return vm.status
}

// PC returns the program counter.
func (vm *C8VM) PC() uint16 {
	return vm.pc
}

// Opcode returns the most recently fetched instruction word.
func (vm *C8VM) Opcode() uint16 {
	return vm.opcode
}

// DelayTimer returns the value of DT
func (vm *C8VM) DelayTimer() uint8 {
	return vm.delayTimer
}

// SoundTimer returns the value of ST
func (vm *C8VM) SoundTimer() uint8 {
	return vm.soundTimer
}

// ReadMemory returns the byte at addr.
func (vm *C8VM) ReadMemory(addr uint16) (uint8, error) {
	if int(addr) >= totalMemory {
		return 0, fmt.Errorf("%w: address %04X", ErrMemoryOutOfBounds, addr)
	}
	return vm.memory[addr], nil
}

// State is a copy of the processor state.
type State struct {
	Registers  [16]uint8
	Index      uint16
	PC         uint16
	Opcode     uint16
	DelayTimer uint8
	SoundTimer uint8
	Stack      []uint16
	Status     Status
}

// Snapshot returns a copy of the processor state.
func (vm *C8VM) Snapshot() State {
	return State{
		Registers:  vm.regV,
		Index:      vm.regI,
		PC:         vm.pc,
		Opcode:     vm.opcode,
		DelayTimer: vm.delayTimer,
		SoundTimer: vm.soundTimer,
		Stack:      vm.stack.entriesCopy(),
		Status:     vm.status,
	}
}
