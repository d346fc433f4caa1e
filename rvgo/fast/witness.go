package fast

import (
	"encoding/binary"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// StateWitnessSize is the length of an encoded state witness:
// memory hash, memory size, pc, exited, step, writableX0 and the 32 registers.
const StateWitnessSize = 32 + 8 + 8 + 1 + 8 + 1 + 32*8

type StateWitness []byte

// EncodeWitness packs the state into a fixed-size binary form. Memory is
// committed to by its Keccak-256 hash.
func (state *VMState) EncodeWitness() StateWitness {
	out := make([]byte, 0, StateWitnessSize)
	memHash := crypto.Keccak256Hash(state.Memory.data)
	out = append(out, memHash[:]...)
	out = binary.BigEndian.AppendUint64(out, state.Memory.Size())
	out = binary.BigEndian.AppendUint64(out, state.PC)
	out = append(out, boolByte(state.Exited))
	out = binary.BigEndian.AppendUint64(out, state.Step)
	out = append(out, boolByte(state.WritableX0))
	for _, r := range state.Registers {
		out = binary.BigEndian.AppendUint64(out, r)
	}
	return out
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// StateHash is the Keccak-256 hash of the witness. Two runs that end in the
// same state produce the same hash.
func (sw StateWitness) StateHash() (common.Hash, error) {
	if len(sw) != StateWitnessSize {
		return common.Hash{}, fmt.Errorf("invalid witness length: got %d, expected %d", len(sw), StateWitnessSize)
	}
	return crypto.Keccak256Hash(sw), nil
}
