package tty

// Same layout as the SDL frontend
// +---+---+---+---+
// | 1 | 2 | 3 | 4 |  ->  1 2 3 C
// | Q | W | E | R |  ->  4 5 6 D
// | A | S | D | F |  ->  7 8 9 E
// | Z | X | C | V |  ->  A 0 B F
// +---+---+---+---+
var keymap = map[byte]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// control bytes read in raw mode
const (
	keyCtrlC  = 0x03
	keyCtrlR  = 0x12
	keyEscape = 0x1B
)

// mapKey returns the keypad key for an input byte, ignoring case.
func mapKey(b byte) (uint8, bool) {
	if b >= 'A' && b <= 'Z' {
		b += 'a' - 'A'
	}
	key, ok := keymap[b]
	return key, ok
}

// keyHold tracks keys of a terminal, which only reports presses. A key
// counts as held for a number of frames after its last press.
type keyHold struct {
	frames    int
	remaining [16]int
}

func newKeyHold(frames int) *keyHold {
	return &keyHold{frames: frames}
}

func (h *keyHold) press(key uint8) {
	h.remaining[key] = h.frames
}

// tick advances one frame and returns the keys released during it.
func (h *keyHold) tick() []uint8 {
	var released []uint8
	for key := range h.remaining {
		if h.remaining[key] == 0 {
			continue
		}
		h.remaining[key]--
		if h.remaining[key] == 0 {
			released = append(released, uint8(key))
		}
	}
	return released
}
