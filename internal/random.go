package internal

import "math/rand"

// RandomSource supplies the random bytes consumed by the CXNN instruction.
type RandomSource interface {
	NextByte() uint8
}

type mathRandom struct {
	rnd *rand.Rand
}

// NewRandomSource returns a uniformly distributed source seeded with seed.
func NewRandomSource(seed int64) RandomSource {
	return &mathRandom{rnd: rand.New(rand.NewSource(seed))}
}

func (r *mathRandom) NextByte() uint8 {
	return uint8(r.rnd.Intn(256))
}

// SequenceSource replays a fixed sequence of bytes, starting over once it
// runs out. The zero value always returns 0.
type SequenceSource struct {
	Bytes []uint8
	next  int
}

// NextByte returns the next byte of the sequence.
func (s *SequenceSource) NextByte() uint8 {
	if len(s.Bytes) == 0 {
		return 0
	}
	b := s.Bytes[s.next%len(s.Bytes)]
	s.next = (s.next + 1) % len(s.Bytes)
	return b
}
