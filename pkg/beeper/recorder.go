package beeper

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Recorder writes beeper output to a WAV file.
type Recorder struct {
	file *os.File
	enc  *wav.Encoder
}

// NewRecorder creates the WAV file. Close must be called to finalise it.
func NewRecorder(filename string, sampleRate int) (*Recorder, error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("creating wav file: %w", err)
	}

	// audio format 1 is uncompressed PCM
	enc := wav.NewEncoder(f, sampleRate, BitDepth, 1, 1)
	return &Recorder{file: f, enc: enc}, nil
}

// Write appends the samples to the file.
func (r *Recorder) Write(buf *audio.IntBuffer) error {
	if err := r.enc.Write(buf); err != nil {
		return fmt.Errorf("writing wav samples: %w", err)
	}
	return nil
}

// Close writes the WAV header sizes and closes the file.
func (r *Recorder) Close() (rerr error) {
	defer func() {
		if err := r.file.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("closing wav file: %w", err)
		}
	}()

	if err := r.enc.Close(); err != nil {
		return fmt.Errorf("finalising wav file: %w", err)
	}
	return nil
}
