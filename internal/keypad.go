package internal

// KeyCount is the number of keys on the CHIP-8 hex keypad.
const KeyCount = 16

// SetKey reports the state of a keypad key. A key going from released to
// pressed while an FX0A instruction waits resumes execution.
func (vm *C8VM) SetKey(code uint8, pressed bool) error {
	if code >= KeyCount {
		return ErrInvalidKey
	}
	mask := uint16(1) << code
	if !pressed {
		vm.key &^= mask
		return nil
	}

	wasPressed := vm.key&mask != 0
	vm.key |= mask
	if vm.status == AwaitingKey && !wasPressed {
		vm.regV[vm.waitReg] = code
		vm.pc += 2
		vm.status = Running
	}
	return nil
}

// IsKeyPressed returns whether the key is currently held down.
func (vm *C8VM) IsKeyPressed(code uint8) bool {
	if code >= KeyCount {
		return false
	}
	mask := uint16(1) << code
	return vm.key&mask == mask
}

// ReleaseKeys marks every key as released.
func (vm *C8VM) ReleaseKeys() {
	vm.key = 0
}
