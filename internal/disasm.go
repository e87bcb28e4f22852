package internal

import "fmt"

// Disassemble returns the mnemonic form of an instruction word, using the
// notation of the technical reference. Unknown words render as a data
// directive.
func Disassemble(opcode uint16) string {
	x := (opcode >> 8) & 0x000F
	y := (opcode >> 4) & 0x000F
	n := opcode & 0x000F
	kk := opcode & 0x00FF
	nnn := opcode & 0x0FFF

	switch opcode & 0xF000 {
	case 0x0000:
		switch nnn {
		case 0x0E0:
			return "CLS"
		case 0x0EE:
			return "RET"
		default:
			return fmt.Sprintf("SYS 0x%03X", nnn)
		}
	case 0x1000:
		return fmt.Sprintf("JP 0x%03X", nnn)
	case 0x2000:
		return fmt.Sprintf("CALL 0x%03X", nnn)
	case 0x3000:
		return fmt.Sprintf("SE V%X, 0x%02X", x, kk)
	case 0x4000:
		return fmt.Sprintf("SNE V%X, 0x%02X", x, kk)
	case 0x5000:
		if n == 0 {
			return fmt.Sprintf("SE V%X, V%X", x, y)
		}
	case 0x6000:
		return fmt.Sprintf("LD V%X, 0x%02X", x, kk)
	case 0x7000:
		return fmt.Sprintf("ADD V%X, 0x%02X", x, kk)
	case 0x8000:
		if name, ok := aluMnemonics[n]; ok {
			if n == 0x6 || n == 0xE {
				return fmt.Sprintf("%s V%X", name, x)
			}
			return fmt.Sprintf("%s V%X, V%X", name, x, y)
		}
	case 0x9000:
		if n == 0 {
			return fmt.Sprintf("SNE V%X, V%X", x, y)
		}
	case 0xA000:
		return fmt.Sprintf("LD I, 0x%03X", nnn)
	case 0xB000:
		return fmt.Sprintf("JP V0, 0x%03X", nnn)
	case 0xC000:
		return fmt.Sprintf("RND V%X, 0x%02X", x, kk)
	case 0xD000:
		return fmt.Sprintf("DRW V%X, V%X, %d", x, y, n)
	case 0xE000:
		switch kk {
		case 0x9E:
			return fmt.Sprintf("SKP V%X", x)
		case 0xA1:
			return fmt.Sprintf("SKNP V%X", x)
		}
	case 0xF000:
		if format, ok := miscMnemonics[kk]; ok {
			return fmt.Sprintf(format, x)
		}
	}
	return fmt.Sprintf("DW 0x%04X", opcode)
}

var aluMnemonics = map[uint16]string{
	0x0: "LD",
	0x1: "OR",
	0x2: "AND",
	0x3: "XOR",
	0x4: "ADD",
	0x5: "SUB",
	0x6: "SHR",
	0x7: "SUBN",
	0xE: "SHL",
}

var miscMnemonics = map[uint16]string{
	0x07: "LD V%X, DT",
	0x0A: "LD V%X, K",
	0x15: "LD DT, V%X",
	0x18: "LD ST, V%X",
	0x1E: "ADD I, V%X",
	0x29: "LD F, V%X",
	0x33: "LD B, V%X",
	0x55: "LD [I], V%X",
	0x65: "LD V%X, [I]",
}
