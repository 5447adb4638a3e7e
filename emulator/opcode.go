package emulator

import "fmt"

// opcode is a 2-byte instruction word, fetched big-endian from memory at
// the program counter. The accessor names follow Cowgod's conventions:
//
//	nnn  lowest 12 bits, an address
//	n    lowest 4 bits, a nibble
//	x    lower 4 bits of the high byte, a register index
//	y    upper 4 bits of the low byte, a register index
//	kk   lowest 8 bits, an immediate byte
type opcode uint16

// h is the highest nibble, the primary decode selector.
func (op opcode) h() byte {
	return byte(op >> 12)
}

func (op opcode) nnn() uint16 {
	return uint16(op) & 0x0FFF
}

func (op opcode) n() byte {
	return byte(op) & 0x0F
}

func (op opcode) x() byte {
	return byte(op>>8) & 0x0F
}

func (op opcode) y() byte {
	return byte(op>>4) & 0x0F
}

func (op opcode) kk() byte {
	return byte(op)
}

func (op opcode) String() string {
	return fmt.Sprintf("%04X", uint16(op))
}
