// Package beeper generates the tone played while the CHIP-8 sound timer is
// non-zero. Samples are unsigned 8-bit mono, centred on 128.
package beeper

import (
	"github.com/go-audio/audio"
)

// Audio defaults.
const (
	SampleRate = 44100
	ToneHz     = 440
	BitDepth   = 8

	silence = 128
	volume  = 32
)

// Beeper produces a square wave tone. Its phase is kept between calls so
// consecutive buffers join without clicks.
type Beeper struct {
	format     *audio.Format
	halfPeriod int
	phase      int
}

// New returns a beeper for the given sample rate and tone frequency.
func New(sampleRate, toneHz int) *Beeper {
	halfPeriod := sampleRate / (2 * toneHz)
	if halfPeriod < 1 {
		halfPeriod = 1
	}
	return &Beeper{
		format: &audio.Format{
			NumChannels: 1,
			SampleRate:  sampleRate,
		},
		halfPeriod: halfPeriod,
	}
}

// SamplesPerFrame returns the number of samples covering one 60 Hz frame.
func (b *Beeper) SamplesPerFrame() int {
	return b.format.SampleRate / 60
}

// Samples returns n samples of tone, or of silence when on is false.
func (b *Beeper) Samples(n int, on bool) *audio.IntBuffer {
	buf := &audio.IntBuffer{
		Format:         b.format,
		Data:           make([]int, n),
		SourceBitDepth: BitDepth,
	}

	for i := range buf.Data {
		if !on {
			buf.Data[i] = silence
			continue
		}
		if (b.phase/b.halfPeriod)%2 == 0 {
			buf.Data[i] = silence + volume
		} else {
			buf.Data[i] = silence - volume
		}
		b.phase = (b.phase + 1) % (2 * b.halfPeriod)
	}
	return buf
}

// Bytes converts a buffer to the unsigned 8-bit layout SDL expects.
func Bytes(buf *audio.IntBuffer) []byte {
	out := make([]byte, len(buf.Data))
	for i, v := range buf.Data {
		out[i] = byte(v)
	}
	return out
}
