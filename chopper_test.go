package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func writeProgram(t *testing.T, program ...byte) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "test.ch8")
	assert.NoError(t, os.WriteFile(filename, program, 0o600))
	return filename
}

func TestHeadlessRun(t *testing.T) {
	// LD V0, 0x0A; LD V1, 0x05; ADD V0, V1; LD F, V0; DRW V2, V2, 5; JP 0x20A
	program := writeProgram(t, 0x60, 0x0A, 0x61, 0x05, 0x80, 0x14, 0xF0, 0x29, 0xD2, 0x25, 0x12, 0x0A)
	var stdout, stderr bytes.Buffer

	code := chopper([]string{"-q", "-steps", "8", program}, &stdout, &stderr)
	assert.Equal(t, 0, code)

	out := stdout.String()
	lines := strings.Split(out, "\n")
	assert.True(t, strings.HasPrefix(lines[0], "█▀▀▀ "))
	assert.True(t, strings.HasPrefix(lines[1], "█▀▀▀ "))
	assert.True(t, strings.HasPrefix(lines[2], "▀ "))
	assert.True(t, strings.Contains(out, "steps=8 pc=20A"))
	assert.True(t, strings.Contains(out, "V0=0F"))
	assert.True(t, strings.Contains(out, "status=running"))
}

func TestHeadlessKeyWait(t *testing.T) {
	program := writeProgram(t, 0xF0, 0x0A)
	var stdout, stderr bytes.Buffer

	code := chopper([]string{"-q", program}, &stdout, &stderr)
	assert.Equal(t, 0, code)
	assert.True(t, strings.Contains(stdout.String(), "steps=1 pc=200"))
	assert.True(t, strings.Contains(stdout.String(), "status=awaiting key"))
}

func TestHeadlessError(t *testing.T) {
	program := writeProgram(t, 0x00, 0xEE)
	var stdout, stderr bytes.Buffer

	code := chopper([]string{"-q", program}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.True(t, strings.Contains(stdout.String(), "steps=0 pc=200"))
}

func TestHeadlessMemViz(t *testing.T) {
	program := writeProgram(t, 0x22, 0x04, 0x00, 0x00, 0x12, 0x04)
	dump := filepath.Join(t.TempDir(), "state.dot")
	var stdout, stderr bytes.Buffer

	code := chopper([]string{"-q", "-steps", "3", "-memviz", dump, program}, &stdout, &stderr)
	assert.Equal(t, 0, code)

	data, err := os.ReadFile(dump)
	assert.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "digraph"))
}

func TestHeadlessUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := chopper(nil, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.True(t, strings.Contains(stderr.String(), "usage: chopper-headless"))
}
