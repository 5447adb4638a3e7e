package emulator

import (
	"errors"
	"fmt"
)

// Execution is deterministic: a cycle error means the ROM is corrupt or the
// host mis-drove the core, never a transient condition. The core returns
// these synchronously from LoadROM and RunCycle and leaves retry, logging
// and user reporting decisions to the host.
var (
	// ErrROMTooLarge is returned by LoadROM when the program image does not
	// fit in the memory above StartAddress.
	ErrROMTooLarge = errors.New("rom too large for program space")

	// ErrStackOverflow is returned by RunCycle when a subroutine call would
	// exceed StackDepth nested calls.
	ErrStackOverflow = errors.New("call stack overflow")

	// ErrStackUnderflow is returned by RunCycle when a return is executed
	// with no call outstanding.
	ErrStackUnderflow = errors.New("call stack underflow")
)

// UnknownOpcodeError is returned by RunCycle when the fetched opcode matches
// no instruction in the CHIP-8 set.
type UnknownOpcodeError struct {
	Opcode uint16
	PC     uint16
}

func (e UnknownOpcodeError) Error() string {
	return fmt.Sprintf("unknown opcode %04X at %03X", e.Opcode, e.PC)
}

// OutOfBoundsError is returned by RunCycle when a fetch or an index-relative
// memory access falls outside the 4096-byte address space. Addr is the first
// offending address.
type OutOfBoundsError struct {
	Addr uint16
}

func (e OutOfBoundsError) Error() string {
	return fmt.Sprintf("memory access out of bounds at %04X", e.Addr)
}
