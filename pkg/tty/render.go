// Package tty is a terminal frontend for the VM. Two framebuffer rows are
// packed into one line of half-block characters.
package tty

import (
	"strings"

	"github.com/mnafees/chopper/internal"
)

// Size of the rendered frame in character cells.
const (
	Columns = internal.ScreenWidth
	Rows    = internal.ScreenHeight / 2
)

var halfBlocks = [4]string{
	" ", // neither
	"▀", // upper
	"▄", // lower
	"█", // both
}

// Frame renders the framebuffer as lines of text.
func Frame(pixels [internal.ScreenWidth][internal.ScreenHeight]uint8, newline string) string {
	var sb strings.Builder
	for row := 0; row < Rows; row++ {
		for x := 0; x < Columns; x++ {
			idx := pixels[x][2*row] | pixels[x][2*row+1]<<1
			sb.WriteString(halfBlocks[idx&3])
		}
		sb.WriteString(newline)
	}
	return sb.String()
}
