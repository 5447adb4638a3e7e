package emulator

// opClass identifies one of the 34 CHIP-8 instruction classes. Decode
// produces a tagged instruction value so that execution is a single
// exhaustive dispatch rather than bit tests scattered through the engine.
type opClass int

const (
	opCls       opClass = iota // 00E0 - CLS
	opRet                      // 00EE - RET
	opJp                       // 1nnn - JP addr
	opCall                     // 2nnn - CALL addr
	opSeByte                   // 3xkk - SE Vx, byte
	opSneByte                  // 4xkk - SNE Vx, byte
	opSeReg                    // 5xy0 - SE Vx, Vy
	opLdByte                   // 6xkk - LD Vx, byte
	opAddByte                  // 7xkk - ADD Vx, byte
	opLdReg                    // 8xy0 - LD Vx, Vy
	opOr                       // 8xy1 - OR Vx, Vy
	opAnd                      // 8xy2 - AND Vx, Vy
	opXor                      // 8xy3 - XOR Vx, Vy
	opAddReg                   // 8xy4 - ADD Vx, Vy
	opSub                      // 8xy5 - SUB Vx, Vy
	opShr                      // 8xy6 - SHR Vx
	opSubn                     // 8xy7 - SUBN Vx, Vy
	opShl                      // 8xyE - SHL Vx
	opSneReg                   // 9xy0 - SNE Vx, Vy
	opLdIndex                  // Annn - LD I, addr
	opJpV0                     // Bnnn - JP V0, addr
	opRnd                      // Cxkk - RND Vx, byte
	opDrw                      // Dxyn - DRW Vx, Vy, nibble
	opSkp                      // Ex9E - SKP Vx
	opSknp                     // ExA1 - SKNP Vx
	opLdDelay                  // Fx07 - LD Vx, DT
	opWaitKey                  // Fx0A - LD Vx, K
	opSetDelay                 // Fx15 - LD DT, Vx
	opSetSound                 // Fx18 - LD ST, Vx
	opAddIndex                 // Fx1E - ADD I, Vx
	opLdFont                   // Fx29 - LD F, Vx
	opLdBCD                    // Fx33 - LD B, Vx
	opStoreRegs                // Fx55 - LD [I], Vx
	opLoadRegs                 // Fx65 - LD Vx, [I]
)

// instruction is a decoded opcode: its class plus every operand field. The
// fields are populated unconditionally; each class reads only the ones it
// defines.
type instruction struct {
	class opClass
	x     byte
	y     byte
	n     byte
	kk    byte
	nnn   uint16
}

// decode selects the instruction class from the opcode's nibble fields.
// The second return value is false when the opcode matches no class.
func decode(op opcode) (instruction, bool) {
	in := instruction{
		x:   op.x(),
		y:   op.y(),
		n:   op.n(),
		kk:  op.kk(),
		nnn: op.nnn(),
	}

	switch op.h() {
	case 0x0:
		switch op.kk() {
		case 0xE0:
			in.class = opCls
		case 0xEE:
			in.class = opRet
		default:
			return in, false
		}
	case 0x1:
		in.class = opJp
	case 0x2:
		in.class = opCall
	case 0x3:
		in.class = opSeByte
	case 0x4:
		in.class = opSneByte
	case 0x5:
		if op.n() != 0 {
			return in, false
		}
		in.class = opSeReg
	case 0x6:
		in.class = opLdByte
	case 0x7:
		in.class = opAddByte
	case 0x8:
		switch op.n() {
		case 0x0:
			in.class = opLdReg
		case 0x1:
			in.class = opOr
		case 0x2:
			in.class = opAnd
		case 0x3:
			in.class = opXor
		case 0x4:
			in.class = opAddReg
		case 0x5:
			in.class = opSub
		case 0x6:
			in.class = opShr
		case 0x7:
			in.class = opSubn
		case 0xE:
			in.class = opShl
		default:
			return in, false
		}
	case 0x9:
		if op.n() != 0 {
			return in, false
		}
		in.class = opSneReg
	case 0xA:
		in.class = opLdIndex
	case 0xB:
		in.class = opJpV0
	case 0xC:
		in.class = opRnd
	case 0xD:
		in.class = opDrw
	case 0xE:
		switch op.kk() {
		case 0x9E:
			in.class = opSkp
		case 0xA1:
			in.class = opSknp
		default:
			return in, false
		}
	case 0xF:
		switch op.kk() {
		case 0x07:
			in.class = opLdDelay
		case 0x0A:
			in.class = opWaitKey
		case 0x15:
			in.class = opSetDelay
		case 0x18:
			in.class = opSetSound
		case 0x1E:
			in.class = opAddIndex
		case 0x29:
			in.class = opLdFont
		case 0x33:
			in.class = opLdBCD
		case 0x55:
			in.class = opStoreRegs
		case 0x65:
			in.class = opLoadRegs
		default:
			return in, false
		}
	}

	return in, true
}
