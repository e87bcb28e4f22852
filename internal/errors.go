package internal

import (
	"errors"
	"fmt"
)

// Errors returned by the VM. Step failures are wrapped in an *OpcodeError.
var (
	ErrDecode            = errors.New("unknown opcode")
	ErrStackUnderflow    = errors.New("stack underflow")
	ErrStackOverflow     = errors.New("stack overflow")
	ErrMemoryOutOfBounds = errors.New("memory access out of bounds")
	ErrUnimplemented     = errors.New("unimplemented instruction")
	ErrInvalidKey        = errors.New("invalid key")
)

// OpcodeError describes an instruction that failed to execute.
type OpcodeError struct {
	Opcode  uint16 // instruction word, zero when it could not be fetched
	PC      uint16 // address the instruction was fetched from
	Fetched bool   // false when the fetch itself failed
	Err     error
}

func (e *OpcodeError) Error() string {
	if !e.Fetched {
		return fmt.Sprintf("%v: instruction fetch at %03X", e.Err, e.PC)
	}
	return fmt.Sprintf("%v: %04X (%s) at %03X", e.Err, e.Opcode, Disassemble(e.Opcode), e.PC)
}

func (e *OpcodeError) Unwrap() error {
	return e.Err
}
