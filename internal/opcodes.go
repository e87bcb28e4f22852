package internal

import "fmt"

const regVF = 0xF

// execute fetches, decodes and executes the instruction at pc.
func (vm *C8VM) execute() error {
	addr := vm.pc
	if int(addr)+1 >= totalMemory {
		return &OpcodeError{PC: addr, Err: ErrMemoryOutOfBounds}
	}
	vm.opcode = uint16(vm.memory[addr])<<8 | uint16(vm.memory[addr+1])
	vm.pc += 2

	if err := vm.dispatch(); err != nil {
		vm.pc = addr
		return &OpcodeError{Opcode: vm.opcode, PC: addr, Fetched: true, Err: err}
	}
	return nil
}

func (vm *C8VM) dispatch() error {
	x := uint8((vm.opcode >> 8) & 0x000F) // the lower 4 bits of the high byte of the instruction
	y := uint8((vm.opcode >> 4) & 0x000F) // the upper 4 bits of the low byte of the instruction
	n := uint8(vm.opcode & 0x000F)        // the lowest 4 bits of the instruction
	kk := uint8(vm.opcode & 0x00FF)       // the lowest 8 bits of the instruction
	nnn := vm.opcode & 0x0FFF             // the lowest 12 bits of the instruction

	switch vm.opcode & 0xF000 { // Compare against the first 4 bits of the instruction only
	case 0x0000:
		return vm.system(nnn)
	case 0x1000: // JP nnn
		vm.pc = nnn
	case 0x2000: // CALL nnn
		if err := vm.stack.push(vm.pc); err != nil {
			return err
		}
		vm.pc = nnn
	case 0x3000: // SE Vx, kk
		vm.skipIf(vm.regV[x] == kk)
	case 0x4000: // SNE Vx, kk
		vm.skipIf(vm.regV[x] != kk)
	case 0x5000: // SE Vx, Vy
		if n != 0 {
			return ErrDecode
		}
		vm.skipIf(vm.regV[x] == vm.regV[y])
	case 0x6000: // LD Vx, kk
		vm.regV[x] = kk
	case 0x7000: // ADD Vx, kk
		vm.regV[x] += kk
	case 0x8000:
		return vm.arithmetic(x, y, n)
	case 0x9000: // SNE Vx, Vy
		if n != 0 {
			return ErrDecode
		}
		vm.skipIf(vm.regV[x] != vm.regV[y])
	case 0xA000: // LD I, nnn
		vm.regI = nnn
	case 0xB000: // JP V0, nnn
		vm.pc = nnn + uint16(vm.regV[0])
	case 0xC000: // RND Vx, kk
		vm.regV[x] = vm.rnd.NextByte() & kk
	case 0xD000: // DRW Vx, Vy, n
		return vm.draw(x, y, n)
	case 0xE000:
		return vm.keyboard(x, kk)
	case 0xF000:
		return vm.misc(x, kk)
	}
	return nil
}

func (vm *C8VM) skipIf(cond bool) {
	if cond {
		vm.pc += 2
	}
}

func (vm *C8VM) system(nnn uint16) error {
	switch nnn {
	case 0x0E0: // CLS
		vm.clearPixels()
		vm.drawFlag = true
	case 0x0EE: // RET
		addr, err := vm.stack.pop()
		if err != nil {
			return err
		}
		vm.pc = addr
	default: // SYS nnn
		return ErrUnimplemented
	}
	return nil
}

// arithmetic executes the 8XYn family. Results and flags are computed from
// the operands before either register is written. VF is written before the
// destination, so with X = F the result is kept.
func (vm *C8VM) arithmetic(x, y, n uint8) error {
	vx, vy := vm.regV[x], vm.regV[y]
	var result, flag uint8

	switch n {
	case 0x0: // LD Vx, Vy
		vm.regV[x] = vy
		return nil
	case 0x1: // OR Vx, Vy
		vm.regV[x] = vx | vy
		return nil
	case 0x2: // AND Vx, Vy
		vm.regV[x] = vx & vy
		return nil
	case 0x3: // XOR Vx, Vy
		vm.regV[x] = vx ^ vy
		return nil
	case 0x4: // ADD Vx, Vy
		sum := uint16(vx) + uint16(vy)
		result = uint8(sum)
		if sum > 0xFF {
			flag = 1
		}
	case 0x5: // SUB Vx, Vy
		result = vx - vy
		if vx >= vy {
			flag = 1
		}
	case 0x6: // SHR Vx {, Vy}
		result = vx >> 1
		flag = vx & 0x01
	case 0x7: // SUBN Vx, Vy
		result = vy - vx
		if vy >= vx {
			flag = 1
		}
	case 0xE: // SHL Vx {, Vy}
		result = vx << 1
		flag = vx >> 7
	default:
		return ErrDecode
	}

	vm.regV[regVF] = flag
	vm.regV[x] = result
	return nil
}

// checkRange verifies that size bytes starting at I are addressable.
func (vm *C8VM) checkRange(size int) error {
	if int(vm.regI)+size > totalMemory {
		return fmt.Errorf("%w: %d bytes at I=%04X", ErrMemoryOutOfBounds, size, vm.regI)
	}
	return nil
}

func (vm *C8VM) draw(x, y, n uint8) error {
	if err := vm.checkRange(int(n)); err != nil {
		return err
	}
	rows := vm.memory[vm.regI : int(vm.regI)+int(n)]
	collision := vm.drawSprite(vm.regV[x], vm.regV[y], rows)
	if collision {
		vm.regV[regVF] = 1
	} else {
		vm.regV[regVF] = 0
	}
	vm.drawFlag = true
	return nil
}

func (vm *C8VM) keyboard(x, kk uint8) error {
	code := vm.regV[x]
	if kk != 0x9E && kk != 0xA1 {
		return ErrDecode
	}
	if code >= KeyCount {
		return fmt.Errorf("%w: V%X holds %02X", ErrInvalidKey, x, code)
	}

	switch kk {
	case 0x9E: // SKP Vx
		vm.skipIf(vm.IsKeyPressed(code))
	case 0xA1: // SKNP Vx
		vm.skipIf(!vm.IsKeyPressed(code))
	}
	return nil
}

func (vm *C8VM) misc(x, kk uint8) error {
	switch kk {
	case 0x07: // LD Vx, DT
		vm.regV[x] = vm.delayTimer
	case 0x0A: // LD Vx, K
		vm.status = AwaitingKey
		vm.waitReg = x
		vm.pc -= 2
	case 0x15: // LD DT, Vx
		vm.delayTimer = vm.regV[x]
	case 0x18: // LD ST, Vx
		vm.soundTimer = vm.regV[x]
	case 0x1E: // ADD I, Vx
		vm.regI += uint16(vm.regV[x])
	case 0x29: // LD F, Vx
		vm.regI = fontStartAddr + fontGlyphSize*uint16(vm.regV[x])
	case 0x33: // LD B, Vx
		if err := vm.checkRange(3); err != nil {
			return err
		}
		v := vm.regV[x]
		vm.memory[vm.regI] = v / 100
		vm.memory[vm.regI+1] = (v / 10) % 10
		vm.memory[vm.regI+2] = v % 10
	case 0x55: // LD [I], Vx
		if err := vm.checkRange(int(x) + 1); err != nil {
			return err
		}
		copy(vm.memory[vm.regI:], vm.regV[:x+1])
	case 0x65: // LD Vx, [I]
		if err := vm.checkRange(int(x) + 1); err != nil {
			return err
		}
		copy(vm.regV[:x+1], vm.memory[vm.regI:])
	default:
		return ErrDecode
	}
	return nil
}
