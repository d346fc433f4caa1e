package fast

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/Cra2yPierr0t/riscv-emu/rvgo/riscv"
)

func TestStateWitness(t *testing.T) {
	us, state := newTestVM(t, DefaultConfig(), riscv.ADDI(1, 0, 5), riscv.SD(0, 1, 0x100), riscv.Halt)

	pre := state.EncodeWitness()
	require.Len(t, pre, StateWitnessSize)
	preHash, err := pre.StateHash()
	require.NoError(t, err)
	require.Equal(t, crypto.Keccak256Hash(pre), preHash)

	require.NoError(t, us.Run(context.Background()))
	post := state.EncodeWitness()
	postHash, err := post.StateHash()
	require.NoError(t, err)
	require.NotEqual(t, preHash, postHash)

	// same program, same end state
	us2, state2 := newTestVM(t, DefaultConfig(), riscv.ADDI(1, 0, 5), riscv.SD(0, 1, 0x100), riscv.Halt)
	require.NoError(t, us2.Run(context.Background()))
	postHash2, err := state2.EncodeWitness().StateHash()
	require.NoError(t, err)
	require.Equal(t, postHash, postHash2)

	memHash := crypto.Keccak256Hash(state.Memory.Bytes())
	require.Equal(t, memHash[:], []byte(post[:32]))
	require.Equal(t, byte(1), post[32+8+8], "exited flag")

	_, err = StateWitness(post[:len(post)-1]).StateHash()
	require.Error(t, err)
}
