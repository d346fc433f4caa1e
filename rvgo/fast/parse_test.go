package fast

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Cra2yPierr0t/riscv-emu/rvgo/riscv"
)

func s64(v int64) uint64 {
	return uint64(v)
}

func TestParseImmediates(t *testing.T) {
	t.Run("I-type", func(t *testing.T) {
		require.Equal(t, uint64(5), ParseImmTypeI(riscv.ADDI(1, 0, 5)))
		require.Equal(t, s64(-1), ParseImmTypeI(riscv.ADDI(1, 0, -1)))
		require.Equal(t, uint64(2047), ParseImmTypeI(riscv.ADDI(1, 0, 2047)))
		require.Equal(t, s64(-2048), ParseImmTypeI(riscv.ADDI(1, 0, -2048)))
	})
	t.Run("S-type", func(t *testing.T) {
		require.Equal(t, uint64(8), ParseImmTypeS(riscv.SD(2, 5, 8)))
		require.Equal(t, s64(-8), ParseImmTypeS(riscv.SD(2, 5, -8)))
		require.Equal(t, uint64(2047), ParseImmTypeS(riscv.SD(2, 5, 2047)))
		require.Equal(t, s64(-2048), ParseImmTypeS(riscv.SD(2, 5, -2048)))
	})
	t.Run("B-type", func(t *testing.T) {
		require.Equal(t, s64(-4), ParseImmTypeB(0xFE000EE3)) // beq x0, x0, -4
		require.Equal(t, uint64(8), ParseImmTypeB(riscv.BEQ(1, 2, 8)))
		require.Equal(t, uint64(4094), ParseImmTypeB(riscv.BEQ(1, 2, 4094)))
		require.Equal(t, s64(-4096), ParseImmTypeB(riscv.BEQ(1, 2, -4096)))
		require.Equal(t, uint64(2048), ParseImmTypeB(riscv.BEQ(1, 2, 2048)))
	})
	t.Run("U-type", func(t *testing.T) {
		require.Equal(t, uint64(0x1000), ParseImmTypeU(riscv.LUI(2, 1)))
		require.Equal(t, uint64(0x7FFFF000), ParseImmTypeU(riscv.LUI(2, 0x7FFFF)))
		require.Equal(t, uint64(0xFFFF_FFFF_8000_0000), ParseImmTypeU(riscv.LUI(2, 0x80000)))
	})
	t.Run("J-type", func(t *testing.T) {
		require.Equal(t, s64(-4), ParseImmTypeJ(0xFFDFF06F)) // j -4
		require.Equal(t, uint64(8), ParseImmTypeJ(riscv.JAL(1, 8)))
		require.Equal(t, uint64(2048), ParseImmTypeJ(riscv.JAL(1, 2048)))
		require.Equal(t, uint64(1<<20-2), ParseImmTypeJ(riscv.JAL(1, 1<<20-2)))
		require.Equal(t, s64(-(1 << 20)), ParseImmTypeJ(riscv.JAL(1, -(1<<20))))
	})
}

func TestDecode(t *testing.T) {
	in := Decode(riscv.EncodeR(riscv.OpReg, 3, 5, 17, 31, riscv.Funct7Alt))
	require.Equal(t, U64(riscv.OpReg), in.Opcode)
	require.Equal(t, U64(3), in.Rd)
	require.Equal(t, U64(5), in.Funct3)
	require.Equal(t, U64(17), in.Rs1)
	require.Equal(t, U64(31), in.Rs2)
	require.Equal(t, U64(riscv.Funct7Alt), in.Funct7)

	require.True(t, Recognized(riscv.ADDI(1, 0, 5)))
	require.False(t, Recognized(riscv.Halt))
	require.False(t, Recognized(0x0000000F)) // fence
	require.True(t, Recognized(0x00000073))  // ecall
}
