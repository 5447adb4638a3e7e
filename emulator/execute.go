package emulator

// execute mutates machine state according to the decoded instruction. It is
// the single dispatch point over every instruction class.
//
// Flag discipline: instructions whose side effect lands in VF (carry,
// borrow, shift, collision) write their explicit result register first and
// VF second, so that an instruction naming VF as its destination still ends
// with the flag value.
func (e *Emulator) execute(in instruction) error {
	switch in.class {
	// 00E0 - CLS. Clear the display.
	case opCls:
		e.screen.clear()

	// 00EE - RET. Return from a subroutine.
	case opRet:
		addr, err := e.pop()
		if err != nil {
			return err
		}
		e.pc = addr

	// 1nnn - JP addr. A jump does not remember its origin.
	case opJp:
		e.pc = in.nnn

	// 2nnn - CALL addr. Push the return address, then jump.
	case opCall:
		if err := e.push(e.pc); err != nil {
			return err
		}
		e.pc = in.nnn

	// 3xkk - SE Vx, byte. Skip next instruction if Vx == kk.
	case opSeByte:
		if e.registers[in.x] == in.kk {
			e.pc += 2
		}

	// 4xkk - SNE Vx, byte. Skip next instruction if Vx != kk.
	case opSneByte:
		if e.registers[in.x] != in.kk {
			e.pc += 2
		}

	// 5xy0 - SE Vx, Vy. Skip next instruction if Vx == Vy.
	case opSeReg:
		if e.registers[in.x] == e.registers[in.y] {
			e.pc += 2
		}

	// 6xkk - LD Vx, byte.
	case opLdByte:
		e.registers[in.x] = in.kk

	// 7xkk - ADD Vx, byte. No carry flag.
	case opAddByte:
		e.registers[in.x] += in.kk

	// 8xy0 - LD Vx, Vy.
	case opLdReg:
		e.registers[in.x] = e.registers[in.y]

	// 8xy1 - OR Vx, Vy.
	case opOr:
		e.registers[in.x] |= e.registers[in.y]

	// 8xy2 - AND Vx, Vy.
	case opAnd:
		e.registers[in.x] &= e.registers[in.y]

	// 8xy3 - XOR Vx, Vy.
	case opXor:
		e.registers[in.x] ^= e.registers[in.y]

	// 8xy4 - ADD Vx, Vy. VF = 1 on unsigned overflow, else 0.
	case opAddReg:
		sum := uint16(e.registers[in.x]) + uint16(e.registers[in.y])
		e.registers[in.x] = byte(sum)
		e.registers[0xF] = byte(sum >> 8)

	// 8xy5 - SUB Vx, Vy. VF = 1 if no borrow (Vx >= Vy), else 0.
	case opSub:
		vx, vy := e.registers[in.x], e.registers[in.y]
		e.registers[in.x] = vx - vy
		e.registers[0xF] = flag(vx >= vy)

	// 8xy6 - SHR Vx. VF receives the bit shifted out of the pre-shift Vx.
	case opShr:
		vx := e.registers[in.x]
		e.registers[in.x] = vx >> 1
		e.registers[0xF] = vx & 0x1

	// 8xy7 - SUBN Vx, Vy. Vx = Vy - Vx; VF = 1 if no borrow (Vy >= Vx).
	case opSubn:
		vx, vy := e.registers[in.x], e.registers[in.y]
		e.registers[in.x] = vy - vx
		e.registers[0xF] = flag(vy >= vx)

	// 8xyE - SHL Vx. VF receives the bit shifted out of the pre-shift Vx.
	case opShl:
		vx := e.registers[in.x]
		e.registers[in.x] = vx << 1
		e.registers[0xF] = vx >> 7

	// 9xy0 - SNE Vx, Vy. Skip next instruction if Vx != Vy.
	case opSneReg:
		if e.registers[in.x] != e.registers[in.y] {
			e.pc += 2
		}

	// Annn - LD I, addr.
	case opLdIndex:
		e.index = in.nnn

	// Bnnn - JP V0, addr. Jump to nnn plus V0.
	case opJpV0:
		e.pc = in.nnn + uint16(e.registers[0])

	// Cxkk - RND Vx, byte. Vx = random byte AND kk.
	case opRnd:
		e.registers[in.x] = e.rand.Byte() & in.kk

	// Dxyn - DRW Vx, Vy, nibble.
	case opDrw:
		return e.draw(in.x, in.y, in.n)

	// Ex9E - SKP Vx. Skip next instruction if key Vx is pressed.
	case opSkp:
		if e.keyPressed(e.registers[in.x]) {
			e.pc += 2
		}

	// ExA1 - SKNP Vx. Skip next instruction if key Vx is not pressed.
	case opSknp:
		if !e.keyPressed(e.registers[in.x]) {
			e.pc += 2
		}

	// Fx07 - LD Vx, DT.
	case opLdDelay:
		e.registers[in.x] = e.delayTimer

	// Fx0A - LD Vx, K. Suspend until a key press is observed; see RunCycle.
	case opWaitKey:
		e.waiting = true
		e.waitReg = in.x
		e.waitKeys = e.keypad

	// Fx15 - LD DT, Vx.
	case opSetDelay:
		e.delayTimer = e.registers[in.x]

	// Fx18 - LD ST, Vx.
	case opSetSound:
		e.soundTimer = e.registers[in.x]

	// Fx1E - ADD I, Vx. The sum must stay inside the address space.
	case opAddIndex:
		sum := e.index + uint16(e.registers[in.x])
		if sum >= MemorySize {
			return OutOfBoundsError{Addr: sum}
		}
		e.index = sum

	// Fx29 - LD F, Vx. Point I at the 5-byte font glyph for digit Vx.
	case opLdFont:
		e.index = FontAddress + 5*uint16(e.registers[in.x])

	// Fx33 - LD B, Vx. Store the decimal digits of Vx at I, I+1, I+2.
	case opLdBCD:
		if int(e.index)+2 >= MemorySize {
			return OutOfBoundsError{Addr: e.index + 2}
		}
		v := e.registers[in.x]
		e.memory[e.index] = v / 100
		e.memory[e.index+1] = (v / 10) % 10
		e.memory[e.index+2] = v % 10

	// Fx55 - LD [I], Vx. Dump V0 through Vx to memory starting at I.
	case opStoreRegs:
		if int(e.index)+int(in.x) >= MemorySize {
			return OutOfBoundsError{Addr: e.index + uint16(in.x)}
		}
		copy(e.memory[e.index:], e.registers[:in.x+1])

	// Fx65 - LD Vx, [I]. Load V0 through Vx from memory starting at I.
	case opLoadRegs:
		if int(e.index)+int(in.x) >= MemorySize {
			return OutOfBoundsError{Addr: e.index + uint16(in.x)}
		}
		copy(e.registers[:in.x+1], e.memory[e.index:])
	}

	return nil
}

// draw XORs an n-byte sprite from memory at I onto the screen at (Vx, Vy).
// Coordinates wrap modulo the screen dimensions, the classic toroidal
// quirk, so a sprite drawn at the right edge continues at column zero. VF
// is set to 1 if any pixel transitioned from set to unset, else 0.
func (e *Emulator) draw(x, y, n byte) error {
	if int(e.index)+int(n) > MemorySize {
		return OutOfBoundsError{Addr: e.index + uint16(n) - 1}
	}

	px := int(e.registers[x]) % ScreenWidth
	py := int(e.registers[y]) % ScreenHeight

	e.registers[0xF] = 0
	for row := range int(n) {
		bits := e.memory[int(e.index)+row]
		for col := range 8 {
			if bits&(0x80>>col) == 0 {
				continue
			}
			if e.screen.xor((px+col)%ScreenWidth, (py+row)%ScreenHeight) {
				e.registers[0xF] = 1
			}
		}
	}

	return nil
}

func (e *Emulator) keyPressed(k byte) bool {
	return k < NumKeys && e.keypad[k]
}

func flag(b bool) byte {
	if b {
		return 1
	}
	return 0
}
