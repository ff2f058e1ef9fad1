package chip8

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeEncodeRoundTrip(t *testing.T) {
	t.Parallel()

	for code := 0; code <= 0xFFFF; code += 7 {
		inst, err := Decode(uint16(code), 0x200)
		if err != nil {
			var decErr *DecodeError
			require.ErrorAs(t, err, &decErr)
			continue
		}
		require.Equal(t, uint16(code), Encode(inst), "re-encoding %#04x via %+v", code, inst)
	}
}

func TestDecodeKnownOpcodes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		code uint16
		want Instruction
	}{
		{"clear screen", 0x00E0, Instruction{Op: OpClearScreen}},
		{"sub return", 0x00EE, Instruction{Op: OpSubReturn}},
		{"machine inst", 0x0123, Instruction{Op: OpMachineInst, NNN: 0x123}},
		{"jump", 0x1234, Instruction{Op: OpJump, NNN: 0x234}},
		{"sub call", 0x2345, Instruction{Op: OpSubCall, NNN: 0x345}},
		{"skip eq const", 0x3A11, Instruction{Op: OpSkipEqConst, X: 0xA, NN: 0x11}},
		{"skip neq const", 0x4B22, Instruction{Op: OpSkipNeqConst, X: 0xB, NN: 0x22}},
		{"skip eq reg", 0x5120, Instruction{Op: OpSkipEqReg, X: 0x1, Y: 0x2}},
		{"reg set", 0x6A33, Instruction{Op: OpRegSet, X: 0xA, NN: 0x33}},
		{"reg add no carry", 0x7B44, Instruction{Op: OpRegAddNoCarry, X: 0xB, NN: 0x44}},
		{"assign", 0x8120, Instruction{Op: OpAssign, X: 0x1, Y: 0x2}},
		{"bin or", 0x8121, Instruction{Op: OpBinOr, X: 0x1, Y: 0x2}},
		{"bin and", 0x8122, Instruction{Op: OpBinAnd, X: 0x1, Y: 0x2}},
		{"bin xor", 0x8123, Instruction{Op: OpBinXor, X: 0x1, Y: 0x2}},
		{"arith add", 0x8124, Instruction{Op: OpArithAdd, X: 0x1, Y: 0x2}},
		{"arith sub", 0x8125, Instruction{Op: OpArithSub, X: 0x1, Y: 0x2}},
		{"shift right", 0x8126, Instruction{Op: OpShiftRight, X: 0x1, Y: 0x2}},
		{"arith sub reverse", 0x8127, Instruction{Op: OpArithSubReverse, X: 0x1, Y: 0x2}},
		{"shift left", 0x812E, Instruction{Op: OpShiftLeft, X: 0x1, Y: 0x2}},
		{"skip neq reg", 0x9120, Instruction{Op: OpSkipNeqReg, X: 0x1, Y: 0x2}},
		{"set index", 0xA123, Instruction{Op: OpSetIndex, NNN: 0x123}},
		{"jump reg", 0xB123, Instruction{Op: OpJumpReg, NNN: 0x123}},
		{"random", 0xC1AB, Instruction{Op: OpRandom, X: 0x1, NN: 0xAB}},
		{"display", 0xD125, Instruction{Op: OpDisplay, X: 0x1, Y: 0x2, N: 0x5}},
		{"skip eq key", 0xE19E, Instruction{Op: OpSkipEqKey, X: 0x1}},
		{"skip neq key", 0xE1A1, Instruction{Op: OpSkipNeqKey, X: 0x1}},
		{"read delay", 0xF107, Instruction{Op: OpReadDelay, X: 0x1}},
		{"get key", 0xF10A, Instruction{Op: OpGetKey, X: 0x1}},
		{"set delay", 0xF115, Instruction{Op: OpSetDelay, X: 0x1}},
		{"set sound", 0xF118, Instruction{Op: OpSetSound, X: 0x1}},
		{"add index", 0xF11E, Instruction{Op: OpAddIndex, X: 0x1}},
		{"load font", 0xF129, Instruction{Op: OpLoadFont, X: 0x1}},
		{"bcd convert", 0xF133, Instruction{Op: OpBCDConvert, X: 0x1}},
		{"store mem", 0xF155, Instruction{Op: OpStoreMem, X: 0x1}},
		{"load mem", 0xF165, Instruction{Op: OpLoadMem, X: 0x1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Decode(tc.code, 0x200)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	badCodes := []uint16{0x5001, 0x8128, 0x9001, 0xE000, 0xF000}
	for _, code := range badCodes {
		_, err := Decode(code, 0x300)
		require.Error(t, err)
		var decErr *DecodeError
		require.ErrorAs(t, err, &decErr)
		require.Equal(t, code, decErr.Opcode)
		require.Equal(t, uint16(0x300), decErr.PC)
	}
}
