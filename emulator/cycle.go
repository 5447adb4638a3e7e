package emulator

// RunCycle performs exactly one fetch-decode-execute step.
//
// If a key-wait (Fx0A) is pending, no instruction is fetched: the call only
// polls the keypad for a key transitioning to pressed, stores it in the wait
// register when one is seen, and returns. The program counter advanced past
// the Fx0A instruction at its fetch, so execution resumes at the following
// instruction once the wait resolves.
//
// All failures are returned synchronously: UnknownOpcodeError,
// OutOfBoundsError, ErrStackOverflow or ErrStackUnderflow. The core never
// retries and never panics on a bad program.
func (e *Emulator) RunCycle() error {
	if e.waiting {
		e.pollWaitKey()
		return nil
	}

	// fetch the two opcode bytes big-endian
	if int(e.pc)+1 >= MemorySize {
		return OutOfBoundsError{Addr: e.pc}
	}
	op := opcode(uint16(e.memory[e.pc])<<8 | uint16(e.memory[e.pc+1]))

	// the program counter moves past the instruction before execution;
	// jumps, calls and skips overwrite or advance it again
	fetched := e.pc
	e.pc += 2

	in, ok := decode(op)
	if !ok {
		return UnknownOpcodeError{Opcode: uint16(op), PC: fetched}
	}

	return e.execute(in)
}

// RunFrame executes CyclesPerFrame instruction cycles and then ticks the
// timers once, which at 60 frames per second matches the historical rates.
// It stops at the first cycle error.
func (e *Emulator) RunFrame() error {
	for range CyclesPerFrame {
		if err := e.RunCycle(); err != nil {
			return err
		}
	}
	e.TickTimers()
	return nil
}

// pollWaitKey looks for a key that has transitioned to pressed since the
// previous poll. A key already held when the wait began must be released
// and pressed again to count. No other machine state is touched while the
// wait is pending.
func (e *Emulator) pollWaitKey() {
	for k, pressed := range e.keypad {
		if pressed && !e.waitKeys[k] {
			e.registers[e.waitReg] = byte(k)
			e.waiting = false
			return
		}
	}
	e.waitKeys = e.keypad
}
