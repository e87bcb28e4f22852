package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mnafees/chopper/internal"
	"github.com/mnafees/chopper/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestCreateLogger(t *testing.T) {
	tests := []struct {
		name string
		opts options.Program
		want log.Level
	}{
		{"default", options.Program{}, log.DefaultConfig().Level},
		{"debug", options.Program{Debug: true}, log.DebugLevel},
		{"trace implies debug", options.Program{Trace: true}, log.DebugLevel},
		{"quiet", options.Program{Quiet: true}, log.ErrorLevel},
		{"quiet wins over trace", options.Program{Quiet: true, Trace: true, Debug: true}, log.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CreateLogger(tt.opts).Level())
		})
	}
}

func TestCreateVM(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "rnd.ch8")
	// RND V0, 0xFF
	assert.NoError(t, os.WriteFile(filename, []byte{0xC0, 0xFF}, 0o600))

	opts := options.Program{Input: filename, Timers: "step", Seed: 99}
	a, err := CreateVM(opts)
	assert.NoError(t, err)
	b, err := CreateVM(opts)
	assert.NoError(t, err)

	assert.NoError(t, a.Step())
	assert.NoError(t, b.Step())
	assert.Equal(t, a.Snapshot().Registers[0], b.Snapshot().Registers[0])

	opts.Input = filepath.Join(t.TempDir(), "missing.ch8")
	_, err = CreateVM(opts)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	big := filepath.Join(t.TempDir(), "big.ch8")
	assert.NoError(t, os.WriteFile(big, make([]byte, 0x1000), 0o600))
	opts.Input = big
	_, err = CreateVM(opts)
	assert.True(t, errors.Is(err, internal.ErrMemoryOutOfBounds))
}
