package cmd

import (
	"fmt"
	"io"

	"github.com/Cra2yPierr0t/riscv-emu/rvgo/fast"
)

// DumpRegisters writes the 32 integer registers, x0 first, one per line as
// lowercase hex without a prefix.
func DumpRegisters(w io.Writer, state *fast.VMState) error {
	for i := range state.Registers {
		if _, err := fmt.Fprintf(w, "%x\n", state.GetRegister(uint64(i))); err != nil {
			return err
		}
	}
	return nil
}
