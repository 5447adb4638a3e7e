// Package emulator implements the CHIP-8 virtual machine core: memory,
// registers, call stack, timers, keypad, framebuffer and the
// fetch-decode-execute engine that drives them.
//
// The core performs no I/O and enforces no pacing of its own. A host drives
// it with two independent clocks: RunCycle() at an instruction rate of the
// host's choosing (historically 500-1000Hz) and TickTimers() at 60Hz. The
// host reads the framebuffer through Screen() and the beep state through
// Sound(). A single Emulator must only be driven by one goroutine at a time.
//
// Memory map:
//
//	0x000-0x1FF: reserved for the interpreter; the core never executes here
//	0x050-0x09F: the built-in hexadecimal font, written by LoadFont()
//	0x200-0xFFF: program space, written by LoadROM()
package emulator

import (
	"os"
	"time"
)

const (
	// MemorySize is the size of the CHIP-8 address space in bytes.
	MemorySize = 4096

	// StartAddress is where loaded programs begin execution.
	StartAddress = 0x200

	// FontAddress is where LoadFont writes the 16-glyph hexadecimal font.
	FontAddress = 0x050

	// StackDepth is the maximum number of nested subroutine calls.
	StackDepth = 16

	// NumRegisters is the number of general purpose V registers.
	NumRegisters = 16

	// NumKeys is the number of keys on the hexadecimal keypad.
	NumKeys = 16

	// CyclesPerFrame is the number of instruction cycles RunFrame executes
	// before ticking the timers. At 60 frames per second this works out to
	// the traditional ~600Hz instruction rate.
	CyclesPerFrame = 10
)

// CPUTick is the traditional delay between instruction cycles (~700Hz).
// The core does not use this value itself; hosts may pace RunCycle with it.
const CPUTick = 1430 * time.Microsecond

// TimerTick is the delay between timer decrements (60Hz). The core does not
// use this value itself; hosts must pace TickTimers with it.
const TimerTick = 16667 * time.Microsecond

// fontset is the standard hexadecimal font: 16 glyphs of 5 bytes each,
// drawable as 4x5 sprites. ROMs locate the glyphs with the Fx29 instruction.
var fontset = [80]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Emulator is a CHIP-8 virtual machine. It exclusively owns all machine
// state for its lifetime. The zero value is not usable; construct with New.
type Emulator struct {
	// 4k bytes of memory, shared by the font, the program and its data
	memory [MemorySize]byte

	// sixteen 8-bit registers V0-VF. VF doubles as the flag register for
	// carry, borrow, shift and sprite collision results
	registers [NumRegisters]byte

	// the index register holds a memory address for the memory-indexed
	// instructions. 16 bits because an address does not fit in 8
	index uint16

	// the program counter holds the address of the next instruction
	pc uint16

	// return addresses for nested subroutine calls. sp points at the next
	// free slot
	stack [StackDepth]uint16
	sp    byte

	// both timers decrement at 60Hz while non-zero, independently of the
	// instruction rate
	delayTimer byte
	soundTimer byte

	// current keypad state, set by the host
	keypad [NumKeys]bool

	// key-wait latch for the Fx0A instruction. While waiting is true the
	// engine fetches nothing and only polls the keypad; waitReg is the
	// register the resolved key lands in and waitKeys is the keypad state
	// at the previous poll, for edge detection
	waiting  bool
	waitReg  byte
	waitKeys [NumKeys]bool

	// the monochrome framebuffer, mutated only by 00E0 and Dxyn
	screen Screen

	// injected random byte source for the Cxkk instruction
	rand RandomSource
}

// New returns an Emulator in its reset state with no font or program
// loaded. A nil RandomSource selects a time-seeded default; tests that need
// reproducible Cxkk results should pass a SeededSource.
func New(rnd RandomSource) *Emulator {
	if rnd == nil {
		rnd = newTimeSource()
	}
	e := &Emulator{rand: rnd}
	e.Reset()
	return e
}

// Reset returns every piece of machine state to its power-on value and sets
// the program counter to StartAddress. Any pending key-wait is abandoned.
// The font is not reloaded; callers must call LoadFont again.
func (e *Emulator) Reset() {
	e.memory = [MemorySize]byte{}
	e.registers = [NumRegisters]byte{}
	e.index = 0
	e.pc = StartAddress
	e.stack = [StackDepth]uint16{}
	e.sp = 0
	e.delayTimer = 0
	e.soundTimer = 0
	e.keypad = [NumKeys]bool{}
	e.waiting = false
	e.waitReg = 0
	e.waitKeys = [NumKeys]bool{}
	e.screen.clear()
}

// LoadFont writes the built-in hexadecimal font into the reserved low
// memory region at FontAddress. Idempotent.
func (e *Emulator) LoadFont() {
	copy(e.memory[FontAddress:], fontset[:])
}

// LoadROM copies a raw, headerless program image into memory at
// StartAddress. If the program does not fit in the space above StartAddress
// it returns ErrROMTooLarge and memory is left untouched.
func (e *Emulator) LoadROM(data []byte) error {
	if len(data) > MemorySize-StartAddress {
		return ErrROMTooLarge
	}
	copy(e.memory[StartAddress:], data)
	return nil
}

// LoadROMFile reads the named file and loads it with LoadROM.
func (e *Emulator) LoadROMFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return e.LoadROM(data)
}

// TickTimers decrements the delay and sound timers by one each if they are
// currently above zero. Hosts call this at 60Hz regardless of the
// instruction rate.
func (e *Emulator) TickTimers() {
	if e.delayTimer > 0 {
		e.delayTimer--
	}
	if e.soundTimer > 0 {
		e.soundTimer--
	}
}

// Sound reports whether the sound timer is running. The host uses this to
// drive its beeper; the core has no audio output of its own.
func (e *Emulator) Sound() bool {
	return e.soundTimer > 0
}

// SetKey records a key press or release on the hexadecimal keypad. Keys
// outside [0,NumKeys) are ignored.
func (e *Emulator) SetKey(k int, pressed bool) {
	if k < 0 || k >= NumKeys {
		return
	}
	e.keypad[k] = pressed
}

// ClearKeys releases every key on the keypad.
func (e *Emulator) ClearKeys() {
	e.keypad = [NumKeys]bool{}
}

// Screen returns the framebuffer the host renders from. The host must treat
// it as read-only.
func (e *Emulator) Screen() *Screen {
	return &e.screen
}

// push places a return address on the call stack.
func (e *Emulator) push(addr uint16) error {
	if e.sp >= StackDepth {
		return ErrStackOverflow
	}
	e.stack[e.sp] = addr
	e.sp++
	return nil
}

// pop removes and returns the most recent return address.
func (e *Emulator) pop() (uint16, error) {
	if e.sp == 0 {
		return 0, ErrStackUnderflow
	}
	e.sp--
	return e.stack[e.sp], nil
}
