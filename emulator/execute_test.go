package emulator

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestALUFlags(t *testing.T) {
	tests := []struct {
		name   string
		op     uint16
		v1, v2 byte
		want   byte
		wantVF byte
	}{
		{"add no carry", 0x8124, 0x10, 0x20, 0x30, 0},
		{"add carry", 0x8124, 0xFF, 0x02, 0x01, 1},
		{"add carry exact", 0x8124, 0x80, 0x80, 0x00, 1},
		{"sub no borrow", 0x8125, 0x20, 0x10, 0x10, 1},
		{"sub equal no borrow", 0x8125, 0x10, 0x10, 0x00, 1},
		{"sub borrow", 0x8125, 0x05, 0x0A, 0xFB, 0},
		{"subn no borrow", 0x8127, 0x10, 0x20, 0x10, 1},
		{"subn borrow", 0x8127, 0x20, 0x10, 0xF0, 0},
		{"shr lsb clear", 0x8126, 0x10, 0, 0x08, 0},
		{"shr lsb set", 0x8126, 0x11, 0, 0x08, 1},
		{"shl msb clear", 0x812E, 0x41, 0, 0x82, 0},
		{"shl msb set", 0x812E, 0x81, 0, 0x02, 1},
		{"or", 0x8121, 0xF0, 0x0F, 0xFF, 0xEE},
		{"and", 0x8122, 0xF0, 0x3C, 0x30, 0xEE},
		{"xor", 0x8123, 0xFF, 0x3C, 0xC3, 0xEE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emu := New(nil)
			emu.registers[1] = tt.v1
			emu.registers[2] = tt.v2
			emu.registers[0xF] = 0xEE // sentinel: detect unwanted flag writes

			in, ok := decode(opcode(tt.op))
			assert.True(t, ok)
			assert.NoError(t, emu.execute(in))

			assert.Equal(t, tt.want, emu.registers[1])
			assert.Equal(t, tt.wantVF, emu.registers[0xF])
		})
	}
}

// The flag write happens after the result write, so an ALU instruction
// naming VF as its destination ends with the flag, not the result.
func TestALUFlagOrdering(t *testing.T) {
	emu := New(nil)
	emu.registers[0xF] = 0xFF
	emu.registers[1] = 0x01

	in, ok := decode(opcode(0x8F14)) // VF += V1
	assert.True(t, ok)
	assert.NoError(t, emu.execute(in))

	assert.Equal(t, byte(1), emu.registers[0xF]) // carry, not 0x00
}

func TestSkips(t *testing.T) {
	tests := []struct {
		name     string
		op       uint16
		v1, v2   byte
		key      int
		wantSkip bool
	}{
		{"se byte taken", 0x3142, 0x42, 0, -1, true},
		{"se byte not taken", 0x3142, 0x41, 0, -1, false},
		{"sne byte taken", 0x4142, 0x41, 0, -1, true},
		{"sne byte not taken", 0x4142, 0x42, 0, -1, false},
		{"se reg taken", 0x5120, 0x07, 0x07, -1, true},
		{"se reg not taken", 0x5120, 0x07, 0x08, -1, false},
		{"sne reg taken", 0x9120, 0x07, 0x08, -1, true},
		{"sne reg not taken", 0x9120, 0x07, 0x07, -1, false},
		{"skp taken", 0xE19E, 0x05, 0, 0x05, true},
		{"skp not taken", 0xE19E, 0x05, 0, 0x06, false},
		{"sknp taken", 0xE1A1, 0x05, 0, 0x06, true},
		{"sknp not taken", 0xE1A1, 0x05, 0, 0x05, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emu := New(nil)
			loadWords(t, emu, tt.op)
			emu.registers[1] = tt.v1
			emu.registers[2] = tt.v2
			if tt.key >= 0 {
				emu.SetKey(tt.key, true)
			}

			assert.NoError(t, emu.RunCycle())

			want := uint16(0x202)
			if tt.wantSkip {
				want = 0x204
			}
			assert.Equal(t, want, emu.pc)
		})
	}
}

func TestJumpAndCall(t *testing.T) {
	emu := New(nil)
	loadWords(t, emu, 0x2206, 0x0000, 0x0000, 0x00EE) // call 0x206; ... ret

	assert.NoError(t, emu.RunCycle())
	assert.Equal(t, uint16(0x206), emu.pc)
	assert.Equal(t, byte(1), emu.sp)

	assert.NoError(t, emu.RunCycle()) // ret
	assert.Equal(t, uint16(0x202), emu.pc)
	assert.Equal(t, byte(0), emu.sp)
}

func TestJumpOffset(t *testing.T) {
	emu := New(nil)
	loadWords(t, emu, 0xB300) // jump to 0x300 + V0
	emu.registers[0] = 0x24

	assert.NoError(t, emu.RunCycle())
	assert.Equal(t, uint16(0x324), emu.pc)
}

func TestRandomMasked(t *testing.T) {
	a := New(SeededSource(7))
	b := New(SeededSource(7))
	loadWords(t, a, 0xC10F, 0xC1FF)
	loadWords(t, b, 0xC10F, 0xC1FF)

	assert.NoError(t, a.RunCycle())
	assert.NoError(t, b.RunCycle())

	// masked load: only bits of kk can be set
	assert.Equal(t, byte(0), a.registers[1]&0xF0)

	// same seed, same sequence
	assert.Equal(t, a.registers[1], b.registers[1])
	assert.NoError(t, a.RunCycle())
	assert.NoError(t, b.RunCycle())
	assert.Equal(t, a.registers[1], b.registers[1])
}

func TestTimerInstructions(t *testing.T) {
	emu := New(nil)
	loadWords(t, emu,
		0x6030, // V0 = 0x30
		0xF015, // DT = V0
		0xF018, // ST = V0
		0xF107, // V1 = DT
	)

	for range 4 {
		assert.NoError(t, emu.RunCycle())
	}

	assert.Equal(t, byte(0x30), emu.delayTimer)
	assert.Equal(t, byte(0x30), emu.soundTimer)
	assert.Equal(t, byte(0x30), emu.registers[1])
	assert.True(t, emu.Sound())
}

func TestIndexInstructions(t *testing.T) {
	emu := New(nil)
	loadWords(t, emu,
		0xA123, // I = 0x123
		0x6005, // V0 = 5
		0xF01E, // I += V0
	)

	for range 3 {
		assert.NoError(t, emu.RunCycle())
	}
	assert.Equal(t, uint16(0x128), emu.index)
}

func TestAddIndexOutOfBounds(t *testing.T) {
	emu := New(nil)
	loadWords(t, emu, 0xF01E)
	emu.index = MemorySize - 1
	emu.registers[0] = 1

	err := emu.RunCycle()

	var oobErr OutOfBoundsError
	assert.True(t, errors.As(err, &oobErr))
	assert.Equal(t, uint16(MemorySize), oobErr.Addr)
	assert.Equal(t, uint16(MemorySize-1), emu.index) // unchanged on failure
}

func TestFontLookup(t *testing.T) {
	emu := New(nil)
	emu.LoadFont()
	loadWords(t, emu, 0xF029)
	emu.registers[0] = 0xA

	assert.NoError(t, emu.RunCycle())
	assert.Equal(t, uint16(FontAddress+5*0xA), emu.index)

	// the glyph bytes at the looked-up address are the A glyph
	assert.Equal(t, fontset[5*0xA:5*0xA+5], emu.memory[emu.index:emu.index+5])
}

func TestBCD(t *testing.T) {
	tests := []struct {
		value byte
		want  [3]byte
	}{
		{0, [3]byte{0, 0, 0}},
		{7, [3]byte{0, 0, 7}},
		{42, [3]byte{0, 4, 2}},
		{234, [3]byte{2, 3, 4}},
		{255, [3]byte{2, 5, 5}},
	}

	for _, tt := range tests {
		emu := New(nil)
		loadWords(t, emu, 0xF033)
		emu.registers[0] = tt.value
		emu.index = 0x300

		assert.NoError(t, emu.RunCycle())
		assert.Equal(t, tt.want[:], emu.memory[0x300:0x303])
	}
}

func TestBCDOutOfBounds(t *testing.T) {
	emu := New(nil)
	loadWords(t, emu, 0xF033)
	emu.index = MemorySize - 2

	var oobErr OutOfBoundsError
	assert.True(t, errors.As(emu.RunCycle(), &oobErr))
	assert.Equal(t, byte(0), emu.memory[MemorySize-2]) // no partial write
}

func TestStoreLoadRegisters(t *testing.T) {
	emu := New(nil)
	loadWords(t, emu, 0xF355, 0x6000, 0x6100, 0x6200, 0x6300, 0xF365)
	for i := range byte(4) {
		emu.registers[i] = 0x10 + i
	}
	emu.index = 0x400

	// dump V0..V3, zero them, load them back
	for range 6 {
		assert.NoError(t, emu.RunCycle())
	}

	for i := range byte(4) {
		assert.Equal(t, 0x10+i, emu.registers[i])
		assert.Equal(t, 0x10+i, emu.memory[0x400+int(i)])
	}

	// V4 was not part of the dump
	assert.Equal(t, byte(0), emu.memory[0x404])
}

func TestStoreLoadRegistersOutOfBounds(t *testing.T) {
	for _, op := range []uint16{0xF155, 0xF165} {
		emu := New(nil)
		loadWords(t, emu, op)
		emu.index = MemorySize - 1

		var oobErr OutOfBoundsError
		assert.True(t, errors.As(emu.RunCycle(), &oobErr))
	}
}
