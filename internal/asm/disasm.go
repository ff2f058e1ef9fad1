package asm

import (
	"fmt"
	"strings"

	"github.com/chip8vm/chippy8/internal/chip8"
)

func reg(x uint8) string {
	return fmt.Sprintf("V%X", x&0x0F)
}

// renderInstruction renders inst in the canonical mnemonic form that
// Assemble's parser would accept back, so Assemble(Disassemble(rom)) round
// trips per spec.md §8.
func renderInstruction(inst chip8.Instruction) string {
	switch inst.Op {
	case chip8.OpClearScreen:
		return "clr"
	case chip8.OpSubReturn:
		return "retn"
	case chip8.OpMachineInst:
		return fmt.Sprintf("mc 0x%x", inst.NNN)
	case chip8.OpJump:
		return fmt.Sprintf("jmp 0x%x", inst.NNN)
	case chip8.OpJumpReg:
		return fmt.Sprintf("jmpv 0x%x", inst.NNN)
	case chip8.OpSubCall:
		return fmt.Sprintf("call 0x%x", inst.NNN)
	case chip8.OpSkipEqConst:
		return fmt.Sprintf("skipeq %s, 0x%x", reg(inst.X), inst.NN)
	case chip8.OpSkipNeqConst:
		return fmt.Sprintf("skipne %s, 0x%x", reg(inst.X), inst.NN)
	case chip8.OpSkipEqReg:
		return fmt.Sprintf("skipeq %s, %s", reg(inst.X), reg(inst.Y))
	case chip8.OpSkipNeqReg:
		return fmt.Sprintf("skipne %s, %s", reg(inst.X), reg(inst.Y))
	case chip8.OpRegSet:
		return fmt.Sprintf("mov %s, 0x%x", reg(inst.X), inst.NN)
	case chip8.OpRegAddNoCarry:
		return fmt.Sprintf("add %s, 0x%x", reg(inst.X), inst.NN)
	case chip8.OpAssign:
		return fmt.Sprintf("mov %s, %s", reg(inst.X), reg(inst.Y))
	case chip8.OpBinOr:
		return fmt.Sprintf("or %s, %s", reg(inst.X), reg(inst.Y))
	case chip8.OpBinAnd:
		return fmt.Sprintf("and %s, %s", reg(inst.X), reg(inst.Y))
	case chip8.OpBinXor:
		return fmt.Sprintf("xor %s, %s", reg(inst.X), reg(inst.Y))
	case chip8.OpArithAdd:
		return fmt.Sprintf("add %s, %s", reg(inst.X), reg(inst.Y))
	case chip8.OpArithSub:
		return fmt.Sprintf("sub %s, %s", reg(inst.X), reg(inst.Y))
	case chip8.OpArithSubReverse:
		return fmt.Sprintf("subr %s, %s", reg(inst.X), reg(inst.Y))
	case chip8.OpShiftLeft:
		return fmt.Sprintf("shl %s, %s", reg(inst.X), reg(inst.Y))
	case chip8.OpShiftRight:
		return fmt.Sprintf("shr %s, %s", reg(inst.X), reg(inst.Y))
	case chip8.OpReadDelay:
		return fmt.Sprintf("mov %s, D", reg(inst.X))
	case chip8.OpSetDelay:
		return fmt.Sprintf("mov D, %s", reg(inst.X))
	case chip8.OpSetSound:
		return fmt.Sprintf("mov S, %s", reg(inst.X))
	case chip8.OpSetIndex:
		return fmt.Sprintf("mov I, 0x%x", inst.NNN)
	case chip8.OpAddIndex:
		return fmt.Sprintf("add I, %s", reg(inst.X))
	case chip8.OpRandom:
		return fmt.Sprintf("rand %s, 0x%x", reg(inst.X), inst.NN)
	case chip8.OpSkipEqKey:
		return fmt.Sprintf("skipeqk %s", reg(inst.X))
	case chip8.OpSkipNeqKey:
		return fmt.Sprintf("skipnek %s", reg(inst.X))
	case chip8.OpDisplay:
		return fmt.Sprintf("draw %s, %s, 0x%x", reg(inst.X), reg(inst.Y), inst.N)
	case chip8.OpGetKey:
		return fmt.Sprintf("read %s", reg(inst.X))
	case chip8.OpLoadFont:
		return fmt.Sprintf("font %s", reg(inst.X))
	case chip8.OpBCDConvert:
		return fmt.Sprintf("bcd %s", reg(inst.X))
	case chip8.OpStoreMem:
		return fmt.Sprintf("str %s", reg(inst.X))
	case chip8.OpLoadMem:
		return fmt.Sprintf("load %s", reg(inst.X))
	default:
		return ""
	}
}

// Disassemble walks rom two bytes at a time, decoding each word through
// chip8.Decode and rendering it via the shared mnemonic table. A word that
// fails to decode falls back to a raw `.data` line, the inverse of how
// Assemble accepts raw data -- matching the original disassemble.rs
// behavior of not failing outright on unknown opcodes.
func Disassemble(rom []byte, withAddresses bool) []string {
	var lines []string
	addr := uint16(origin)
	for i := 0; i+1 < len(rom); i += 2 {
		word := uint16(rom[i])<<8 | uint16(rom[i+1])
		var text string
		if inst, err := chip8.Decode(word, addr); err == nil {
			text = renderInstruction(inst)
		} else {
			text = fmt.Sprintf(".data 0x%02x 0x%02x", rom[i], rom[i+1])
		}
		if withAddresses {
			lines = append(lines, fmt.Sprintf("0x%03x: %s", addr, text))
		} else {
			lines = append(lines, text)
		}
		addr += 2
	}
	if len(rom)%2 == 1 {
		last := rom[len(rom)-1]
		text := fmt.Sprintf(".data 0x%02x", last)
		if withAddresses {
			text = fmt.Sprintf("0x%03x: %s", addr, text)
		}
		lines = append(lines, text)
	}
	return lines
}

// Join renders disassembly lines as a single newline-terminated string,
// for CLI output.
func Join(lines []string) string {
	return strings.Join(lines, "\n") + "\n"
}
