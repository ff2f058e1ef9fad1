package asm

import (
	"strconv"
	"strings"

	"github.com/chip8vm/chippy8/internal/chip8"
)

func parseNumber(tok string) (uint64, error) {
	if strings.HasPrefix(tok, "0x") || strings.HasPrefix(tok, "0X") {
		return strconv.ParseUint(tok[2:], 16, 64)
	}
	return strconv.ParseUint(tok, 10, 64)
}

func parseRegister(tok string) (uint8, bool) {
	if len(tok) != 2 {
		return 0, false
	}
	if tok[0] != 'V' && tok[0] != 'v' {
		return 0, false
	}
	v, err := strconv.ParseUint(tok[1:], 16, 8)
	if err != nil {
		return 0, false
	}
	return uint8(v), true
}

// parseProgram lowers assembly source into the flat ordered element
// sequence described in spec.md §4.5, pass 1 (no label resolution yet).
func parseProgram(source string) ([]element, error) {
	var prog []element
	danglingLine := 0
	for _, line := range splitLines(source) {
		mnemonic, operands := tokenizeRest(line.rest)

		var el element
		var err error
		switch {
		case mnemonic == "" && line.label != "":
			// Label-only line: attaches to the next statement. Emit
			// nothing now; fold the label into the next element instead.
			prog = append(prog, element{kind: kindData, data: nil, label: line.label})
			danglingLine = line.num
			continue
		case mnemonic == ".data":
			el, err = parseData(line.num, operands)
		default:
			el, err = parseMnemonic(line.num, mnemonic, operands)
		}
		if err != nil {
			return nil, err
		}

		if line.label != "" {
			el.label = line.label
		}
		prog = appendMerging(prog, el)
	}
	if n := len(prog); n > 0 {
		if last := prog[n-1]; last.kind == kindData && last.data == nil && last.label != "" {
			return nil, &ParseError{Line: danglingLine, Msg: "label " + last.label + " has no following instruction or data"}
		}
	}
	return prog, nil
}

// appendMerging folds a dangling label-only placeholder (data:nil, kind
// kindData) from the previous line into the element that follows it.
func appendMerging(prog []element, el element) []element {
	if n := len(prog); n > 0 {
		prev := prog[n-1]
		if prev.kind == kindData && prev.data == nil && prev.label != "" && el.label == "" {
			el.label = prev.label
			prog[n-1] = el
			return prog
		}
	}
	return append(prog, el)
}

func parseData(lineNum int, operands []string) (element, error) {
	data := make([]byte, 0, len(operands))
	for _, tok := range operands {
		for _, piece := range strings.Fields(tok) {
			v, err := parseNumber(piece)
			if err != nil || v > 0xFF {
				return element{}, &ParseError{Line: lineNum, Msg: "bad .data byte: " + piece}
			}
			data = append(data, byte(v))
		}
	}
	return element{kind: kindData, data: data}, nil
}

// parseMnemonic parses one instruction mnemonic plus its operands into an
// element. Address operands accept either a numeric literal (folded
// straight into an encoded instruction) or a label (resolved in pass 2).
func parseMnemonic(lineNum int, mnemonic string, ops []string) (element, error) {
	fail := func(msg string) (element, error) {
		return element{}, &ParseError{Line: lineNum, Msg: msg}
	}

	instrOf := func(inst chip8.Instruction) element {
		return element{kind: kindInstr, word: chip8.Encode(inst)}
	}

	addrOp := func(kindWhenLabel kind, op chip8.Op) (element, error) {
		if len(ops) != 1 {
			return fail(mnemonic + ": expected one address operand")
		}
		if v, err := parseNumber(ops[0]); err == nil {
			return instrOf(chip8.Instruction{Op: op, NNN: uint16(v) & 0x0FFF}), nil
		}
		if !isIdentifier(ops[0]) {
			return fail(mnemonic + ": bad address operand " + ops[0])
		}
		return element{kind: kindWhenLabel, ref: ops[0]}, nil
	}

	regReg := func(op chip8.Op) (element, error) {
		if len(ops) != 2 {
			return fail(mnemonic + ": expected Vx, Vy")
		}
		x, xok := parseRegister(ops[0])
		y, yok := parseRegister(ops[1])
		if !xok || !yok {
			return fail(mnemonic + ": expected two registers")
		}
		return instrOf(chip8.Instruction{Op: op, X: x, Y: y}), nil
	}

	regOnly := func(op chip8.Op) (element, error) {
		if len(ops) != 1 {
			return fail(mnemonic + ": expected Vx")
		}
		x, ok := parseRegister(ops[0])
		if !ok {
			return fail(mnemonic + ": expected a register")
		}
		return instrOf(chip8.Instruction{Op: op, X: x}), nil
	}

	switch mnemonic {
	case "clr":
		return instrOf(chip8.Instruction{Op: chip8.OpClearScreen}), nil
	case "retn":
		return instrOf(chip8.Instruction{Op: chip8.OpSubReturn}), nil
	case "mc":
		return addrOp(kindInstr, chip8.OpMachineInst)
	case "jmp":
		return addrOp(kindJump, chip8.OpJump)
	case "jmpv":
		return addrOp(kindJumpReg, chip8.OpJumpReg)
	case "call":
		return addrOp(kindCall, chip8.OpSubCall)

	case "skipeq", "skipne":
		if len(ops) != 2 {
			return fail(mnemonic + ": expected two operands")
		}
		x, xok := parseRegister(ops[0])
		if !xok {
			return fail(mnemonic + ": first operand must be a register")
		}
		if y, yok := parseRegister(ops[1]); yok {
			op := chip8.OpSkipEqReg
			if mnemonic == "skipne" {
				op = chip8.OpSkipNeqReg
			}
			return instrOf(chip8.Instruction{Op: op, X: x, Y: y}), nil
		}
		nn, err := parseNumber(ops[1])
		if err != nil || nn > 0xFF {
			return fail(mnemonic + ": bad immediate " + ops[1])
		}
		op := chip8.OpSkipEqConst
		if mnemonic == "skipne" {
			op = chip8.OpSkipNeqConst
		}
		return instrOf(chip8.Instruction{Op: op, X: x, NN: uint8(nn)}), nil

	case "mov":
		return parseMov(lineNum, ops)

	case "add":
		return parseAdd(lineNum, ops)

	case "or":
		return regReg(chip8.OpBinOr)
	case "and":
		return regReg(chip8.OpBinAnd)
	case "xor":
		return regReg(chip8.OpBinXor)
	case "sub":
		return regReg(chip8.OpArithSub)
	case "subr":
		return regReg(chip8.OpArithSubReverse)
	case "shl":
		return regReg(chip8.OpShiftLeft)
	case "shr":
		return regReg(chip8.OpShiftRight)

	case "rand":
		if len(ops) != 2 {
			return fail("rand: expected Vx, nn")
		}
		x, ok := parseRegister(ops[0])
		if !ok {
			return fail("rand: first operand must be a register")
		}
		nn, err := parseNumber(ops[1])
		if err != nil || nn > 0xFF {
			return fail("rand: bad immediate " + ops[1])
		}
		return instrOf(chip8.Instruction{Op: chip8.OpRandom, X: x, NN: uint8(nn)}), nil

	case "draw":
		if len(ops) != 3 {
			return fail("draw: expected Vx, Vy, n")
		}
		x, xok := parseRegister(ops[0])
		y, yok := parseRegister(ops[1])
		n, err := parseNumber(ops[2])
		if !xok || !yok || err != nil || n > 0xF {
			return fail("draw: bad operands")
		}
		return instrOf(chip8.Instruction{Op: chip8.OpDisplay, X: x, Y: y, N: uint8(n)}), nil

	case "skipeqk":
		return regOnly(chip8.OpSkipEqKey)
	case "skipnek":
		return regOnly(chip8.OpSkipNeqKey)
	case "read":
		return regOnly(chip8.OpGetKey)
	case "font":
		return regOnly(chip8.OpLoadFont)
	case "bcd":
		return regOnly(chip8.OpBCDConvert)
	case "str":
		return regOnly(chip8.OpStoreMem)
	case "load":
		return regOnly(chip8.OpLoadMem)
	}

	return fail("unknown mnemonic " + mnemonic)
}

func parseMov(lineNum int, ops []string) (element, error) {
	fail := func(msg string) (element, error) {
		return element{}, &ParseError{Line: lineNum, Msg: msg}
	}
	if len(ops) != 2 {
		return fail("mov: expected two operands")
	}
	dst, src := ops[0], ops[1]

	switch {
	case strings.EqualFold(dst, "I"):
		v, err := parseNumber(src)
		if err != nil {
			return fail("mov: bad address operand " + src)
		}
		return element{kind: kindInstr, word: chip8.Encode(chip8.Instruction{Op: chip8.OpSetIndex, NNN: uint16(v) & 0x0FFF})}, nil
	case strings.EqualFold(dst, "D"):
		x, ok := parseRegister(src)
		if !ok {
			return fail("mov: expected register source")
		}
		return element{kind: kindInstr, word: chip8.Encode(chip8.Instruction{Op: chip8.OpSetDelay, X: x})}, nil
	case strings.EqualFold(dst, "S"):
		x, ok := parseRegister(src)
		if !ok {
			return fail("mov: expected register source")
		}
		return element{kind: kindInstr, word: chip8.Encode(chip8.Instruction{Op: chip8.OpSetSound, X: x})}, nil
	}

	x, ok := parseRegister(dst)
	if !ok {
		return fail("mov: bad destination " + dst)
	}
	if strings.EqualFold(src, "D") {
		return element{kind: kindInstr, word: chip8.Encode(chip8.Instruction{Op: chip8.OpReadDelay, X: x})}, nil
	}
	if y, ok := parseRegister(src); ok {
		return element{kind: kindInstr, word: chip8.Encode(chip8.Instruction{Op: chip8.OpAssign, X: x, Y: y})}, nil
	}
	nn, err := parseNumber(src)
	if err != nil || nn > 0xFF {
		return fail("mov: bad source " + src)
	}
	return element{kind: kindInstr, word: chip8.Encode(chip8.Instruction{Op: chip8.OpRegSet, X: x, NN: uint8(nn)})}, nil
}

func parseAdd(lineNum int, ops []string) (element, error) {
	fail := func(msg string) (element, error) {
		return element{}, &ParseError{Line: lineNum, Msg: msg}
	}
	if len(ops) != 2 {
		return fail("add: expected two operands")
	}
	dst, src := ops[0], ops[1]

	if strings.EqualFold(dst, "I") {
		x, ok := parseRegister(src)
		if !ok {
			return fail("add: expected register source")
		}
		return element{kind: kindInstr, word: chip8.Encode(chip8.Instruction{Op: chip8.OpAddIndex, X: x})}, nil
	}

	x, ok := parseRegister(dst)
	if !ok {
		return fail("add: bad destination " + dst)
	}
	if y, ok := parseRegister(src); ok {
		return element{kind: kindInstr, word: chip8.Encode(chip8.Instruction{Op: chip8.OpArithAdd, X: x, Y: y})}, nil
	}
	nn, err := parseNumber(src)
	if err != nil || nn > 0xFF {
		return fail("add: bad source " + src)
	}
	return element{kind: kindInstr, word: chip8.Encode(chip8.Instruction{Op: chip8.OpRegAddNoCarry, X: x, NN: uint8(nn)})}, nil
}
