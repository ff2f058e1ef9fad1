package asm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAssembleLabelSelfJump(t *testing.T) {
	rom, err := Assemble("L: jmp L\n")
	require.NoError(t, err)
	require.Equal(t, []byte{0x12, 0x00}, rom)
}

func TestAssembleDuplicateLabelIsFatal(t *testing.T) {
	_, err := Assemble("L: clr\nL: retn\n")
	require.Error(t, err)
	var labelErr *LabelError
	require.ErrorAs(t, err, &labelErr)
}

func TestAssembleUnresolvedLabelIsFatal(t *testing.T) {
	_, err := Assemble("jmp nowhere\n")
	require.Error(t, err)
	var labelErr *LabelError
	require.ErrorAs(t, err, &labelErr)
}

func TestAssembleTrailingDanglingLabelIsParseError(t *testing.T) {
	rom, err := Assemble("clr\nL:\n")
	require.Error(t, err)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Nil(t, rom)
}

func TestAssembleDataDirective(t *testing.T) {
	rom, err := Assemble(".data 0x01 2 0xFF\n")
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x02, 0xFF}, rom)
}

func TestAssembleBadMnemonicIsParseError(t *testing.T) {
	_, err := Assemble("nonsense V0, V1\n")
	require.Error(t, err)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

// TestMnemonicRoundTrip covers every mnemonic in spec.md §6.3: assembling a
// single-line source then disassembling the resulting ROM must yield the
// canonical mnemonic form, per spec.md §8.
func TestMnemonicRoundTrip(t *testing.T) {
	cases := []string{
		"clr",
		"retn",
		"mc 0x123",
		"jmp 0x204",
		"jmpv 0x204",
		"call 0x204",
		"skipeq V1, 0x22",
		"skipeq V1, V2",
		"skipne V1, 0x22",
		"skipne V1, V2",
		"mov V1, 0x22",
		"mov V1, V2",
		"mov I, 0x204",
		"mov V1, D",
		"mov D, V1",
		"mov S, V1",
		"add V1, 0x22",
		"add V1, V2",
		"add I, V1",
		"or V1, V2",
		"and V1, V2",
		"xor V1, V2",
		"sub V1, V2",
		"subr V1, V2",
		"shl V1, V2",
		"shr V1, V2",
		"rand V1, 0x22",
		"draw V1, V2, 0x5",
		"skipeqk V1",
		"skipnek V1",
		"read V1",
		"font V1",
		"bcd V1",
		"str V1",
		"load V1",
	}

	for _, src := range cases {
		t.Run(src, func(t *testing.T) {
			rom, err := Assemble(src + "\n")
			require.NoError(t, err)
			lines := Disassemble(rom, false)
			require.Len(t, lines, 1)
			require.Equal(t, src, lines[0])
		})
	}
}

func TestDisassembleUnknownOpcodeFallsBackToData(t *testing.T) {
	// 0x5001 is not a valid instruction (n must be 0 for 5xy0).
	lines := Disassemble([]byte{0x50, 0x01}, false)
	require.Equal(t, []string{".data 0x50 0x01"}, lines)
}

func TestDisassembleWithAddresses(t *testing.T) {
	rom, err := Assemble("clr\nretn\n")
	require.NoError(t, err)
	lines := Disassemble(rom, true)
	require.Equal(t, []string{"0x200: clr", "0x202: retn"}, lines)
}
