package emulator

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

// loadWords assembles 16-bit instruction words into a ROM and loads it.
func loadWords(t *testing.T, emu *Emulator, words ...uint16) {
	t.Helper()

	rom := make([]byte, 0, len(words)*2)
	for _, w := range words {
		rom = append(rom, byte(w>>8), byte(w))
	}
	assert.NoError(t, emu.LoadROM(rom))
}

func TestRunCycleClearScreen(t *testing.T) {
	emu := New(nil)
	emu.screen.pixels[0] = true
	emu.screen.pixels[ScreenArea-1] = true

	loadWords(t, emu, 0x00E0)
	assert.NoError(t, emu.RunCycle())

	for _, p := range emu.Screen().Pixels() {
		if p {
			t.Fatal("pixel still set after CLS")
		}
	}
	assert.Equal(t, uint16(0x202), emu.pc)
}

func TestRunCycleImmediateArithmetic(t *testing.T) {
	emu := New(nil)
	loadWords(t, emu, 0x6012, 0x7003) // V0 = 0x12; V0 += 0x03

	assert.NoError(t, emu.RunCycle())
	assert.NoError(t, emu.RunCycle())

	assert.Equal(t, byte(0x15), emu.registers[0])
	assert.Equal(t, uint16(0x204), emu.pc)
}

func TestRunCycleUnknownOpcode(t *testing.T) {
	emu := New(nil)
	loadWords(t, emu, 0xFFFF)

	err := emu.RunCycle()
	assert.Error(t, err)

	var unknownErr UnknownOpcodeError
	assert.True(t, errors.As(err, &unknownErr))
	assert.Equal(t, uint16(0xFFFF), unknownErr.Opcode)
	assert.Equal(t, uint16(0x200), unknownErr.PC)
}

func TestRunCycleFetchOutOfBounds(t *testing.T) {
	emu := New(nil)
	emu.pc = MemorySize - 1 // only one byte left, not a full opcode

	err := emu.RunCycle()

	var oobErr OutOfBoundsError
	assert.True(t, errors.As(err, &oobErr))
	assert.Equal(t, uint16(MemorySize-1), oobErr.Addr)
}

func TestRunCycleStackOverflow(t *testing.T) {
	emu := New(nil)

	// seventeen consecutive calls, each into the following instruction
	words := make([]uint16, StackDepth+1)
	for i := range words {
		target := StartAddress + 2*(i+1)
		words[i] = 0x2000 | uint16(target)
	}
	loadWords(t, emu, words...)

	for range StackDepth {
		assert.NoError(t, emu.RunCycle())
	}
	assert.Equal(t, byte(StackDepth), emu.sp)

	err := emu.RunCycle()
	assert.True(t, errors.Is(err, ErrStackOverflow))

	// the failed call must leave the machine as the fetch left it
	assert.Equal(t, byte(StackDepth), emu.sp)
	assert.Equal(t, uint16(StartAddress+2*(StackDepth+1)), emu.pc)
}

func TestRunCycleSubtractBorrow(t *testing.T) {
	emu := New(nil)
	loadWords(t, emu, 0x6105, 0x620A, 0x8125) // V1 = 5; V2 = 10; V1 -= V2

	for range 3 {
		assert.NoError(t, emu.RunCycle())
	}

	assert.Equal(t, byte(0xFB), emu.registers[1]) // wrapped
	assert.Equal(t, byte(0), emu.registers[0xF])  // borrow occurred
}

func TestKeyWait(t *testing.T) {
	emu := New(nil)
	loadWords(t, emu, 0xF30A, 0x6ABB) // V3 = key; V10 = 0xBB

	assert.NoError(t, emu.RunCycle())
	assert.True(t, emu.waiting)
	assert.Equal(t, uint16(0x202), emu.pc)

	// with no key pressed, polling makes no progress and mutates nothing
	before := *emu
	for range 10 {
		assert.NoError(t, emu.RunCycle())
	}
	assert.Equal(t, before.pc, emu.pc)
	assert.Equal(t, before.registers, emu.registers)
	assert.Equal(t, before.memory, emu.memory)
	assert.Equal(t, before.screen, emu.screen)
	assert.True(t, emu.waiting)

	// the first key seen transitioning to pressed resolves the wait
	emu.SetKey(0x5, true)
	assert.NoError(t, emu.RunCycle())
	assert.False(t, emu.waiting)
	assert.Equal(t, byte(0x5), emu.registers[3])
	assert.Equal(t, uint16(0x202), emu.pc)

	// execution resumes at the instruction after the wait
	assert.NoError(t, emu.RunCycle())
	assert.Equal(t, byte(0xBB), emu.registers[0xA])
}

func TestKeyWaitHeldKey(t *testing.T) {
	emu := New(nil)
	loadWords(t, emu, 0xF00A)

	// a key already held when the wait begins does not count
	emu.SetKey(0x2, true)
	assert.NoError(t, emu.RunCycle())
	assert.NoError(t, emu.RunCycle())
	assert.True(t, emu.waiting)

	// it must be released and pressed again
	emu.SetKey(0x2, false)
	assert.NoError(t, emu.RunCycle())
	emu.SetKey(0x2, true)
	assert.NoError(t, emu.RunCycle())

	assert.False(t, emu.waiting)
	assert.Equal(t, byte(0x2), emu.registers[0])
}

func TestProgramCounterInvariant(t *testing.T) {
	emu := New(nil)

	// a small loop: count up then jump back
	loadWords(t, emu,
		0x6000, // V0 = 0
		0x7001, // V0 += 1
		0x3005, // skip if V0 == 5
		0x1202, // jump to V0 += 1
		0x1200, // jump to start
	)

	for range 500 {
		assert.NoError(t, emu.RunCycle())
		if emu.pc%2 != 0 {
			t.Fatalf("odd program counter %04X", emu.pc)
		}
		if emu.pc < StartAddress || emu.pc >= MemorySize {
			t.Fatalf("program counter %04X outside program space", emu.pc)
		}
	}
}

func TestRunFrame(t *testing.T) {
	emu := New(nil)
	loadWords(t, emu, 0x1200) // jump to self
	emu.delayTimer = 3

	assert.NoError(t, emu.RunFrame())

	// one frame is CyclesPerFrame cycles plus a single timer tick
	assert.Equal(t, byte(2), emu.delayTimer)
	assert.Equal(t, uint16(0x200), emu.pc)
}

func TestRunFrameStopsOnError(t *testing.T) {
	emu := New(nil)
	loadWords(t, emu, 0xFFFF)
	emu.delayTimer = 3

	err := emu.RunFrame()
	assert.Error(t, err)

	// the frame aborted before the timer tick
	assert.Equal(t, byte(3), emu.delayTimer)
}
