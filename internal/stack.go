package internal

// StackSize is the number of nested subroutine calls the VM supports.
const StackSize = 16

// callStack is a fixed-size stack of return addresses.
type callStack struct {
	entries [StackSize]uint16
	sp      uint8 // number of entries in use
}

func (s *callStack) push(addr uint16) error {
	if int(s.sp) >= len(s.entries) {
		return ErrStackOverflow
	}
	s.entries[s.sp] = addr
	s.sp++
	return nil
}

func (s *callStack) pop() (uint16, error) {
	if s.sp == 0 {
		return 0, ErrStackUnderflow
	}
	s.sp--
	return s.entries[s.sp], nil
}

func (s *callStack) depth() int {
	return int(s.sp)
}

func (s *callStack) reset() {
	s.entries = [StackSize]uint16{}
	s.sp = 0
}

// entriesCopy returns the active entries, oldest first.
func (s *callStack) entriesCopy() []uint16 {
	out := make([]uint16, s.sp)
	copy(out, s.entries[:s.sp])
	return out
}
