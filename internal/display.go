package internal

const spriteWidth = 8

func (vm *C8VM) clearPixels() {
	vm.pixels = [ScreenWidth][ScreenHeight]uint8{}
}

// drawSprite XORs the sprite rows onto the framebuffer with the top left
// corner at (x, y), wrapping both axes. It reports whether any set pixel
// was cleared.
func (vm *C8VM) drawSprite(x, y uint8, rows []uint8) bool {
	collision := false
	for row, spriteByte := range rows {
		py := (int(y) + row) % ScreenHeight
		for col := 0; col < spriteWidth; col++ {
			if spriteByte&(0x80>>col) == 0 {
				continue
			}
			px := &vm.pixels[(int(x)+col)%ScreenWidth][py]
			if *px == 1 {
				collision = true
			}
			*px ^= 1
		}
	}
	return collision
}

// Pixels returns a copy of the framebuffer indexed [x][y]
func (vm *C8VM) Pixels() [ScreenWidth][ScreenHeight]uint8 {
	return vm.pixels
}

// Pixel returns the framebuffer cell at (x, y), wrapping both coordinates.
func (vm *C8VM) Pixel(x, y int) uint8 {
	x %= ScreenWidth
	if x < 0 {
		x += ScreenWidth
	}
	y %= ScreenHeight
	if y < 0 {
		y += ScreenHeight
	}
	return vm.pixels[x][y]
}

// IsDrawFlagSet returns whether the framebuffer changed since UnsetDrawFlag
func (vm *C8VM) IsDrawFlagSet() bool {
	return vm.drawFlag
}

// UnsetDrawFlag unsets the draw flag
func (vm *C8VM) UnsetDrawFlag() {
	vm.drawFlag = false
}
