// Package asm implements the line-oriented CHIP-8 mnemonic assembler and
// its disassembler counterpart. Both share the opcode encoding table in
// internal/chip8, so a round trip through Assemble then Disassemble always
// reproduces the canonical mnemonic for an opcode.
package asm

import "fmt"

// ParseError reports a malformed mnemonic line: bad mnemonic, bad operand,
// or a literal of the wrong width.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("asm: line %d: %s", e.Line, e.Msg)
}

// LabelError reports a duplicate label definition or a reference to a
// label that was never defined.
type LabelError struct {
	Label string
	Msg   string
}

func (e *LabelError) Error() string {
	return fmt.Sprintf("asm: label %q: %s", e.Label, e.Msg)
}
