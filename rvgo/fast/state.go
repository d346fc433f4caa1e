package fast

import (
	"fmt"

	"github.com/Cra2yPierr0t/riscv-emu/rvgo/riscv"
)

// Config holds the machine parameters that are fixed for the life of a VMState.
type Config struct {
	// MemorySize is the capacity of the flat address space in bytes.
	MemorySize uint64
	// WritableX0 keeps writes to register 0, instead of hardwiring it to zero.
	WritableX0 bool
}

func DefaultConfig() Config {
	return Config{MemorySize: riscv.DefaultMemorySize}
}

func (c Config) Check() error {
	if c.MemorySize == 0 {
		return fmt.Errorf("%w: memory size must be positive", riscv.ErrInvalidMemorySize)
	}
	if c.MemorySize > riscv.MaxMemorySize {
		return fmt.Errorf("%w: %d bytes exceeds the maximum of %d", riscv.ErrInvalidMemorySize, c.MemorySize, riscv.MaxMemorySize)
	}
	return nil
}

type VMState struct {
	Memory *Memory `json:"memory"`

	PC uint64 `json:"pc"`

	Exited bool `json:"exited"`

	Step uint64 `json:"step"`

	WritableX0 bool `json:"writableX0"`

	Registers [riscv.RegisterCount]uint64 `json:"registers"`
}

func NewVMState(cfg Config) (*VMState, error) {
	if err := cfg.Check(); err != nil {
		return nil, err
	}
	return &VMState{
		Memory:     NewMemory(cfg.MemorySize),
		WritableX0: cfg.WritableX0,
	}, nil
}

// Check verifies that a state, for example one decoded from JSON, can be run.
func (state *VMState) Check() error {
	if state.Memory == nil || state.Memory.Size() == 0 {
		return fmt.Errorf("%w: state has no memory", riscv.ErrInvalidMemorySize)
	}
	if state.Memory.Size() > riscv.MaxMemorySize {
		return fmt.Errorf("%w: state memory of %d bytes exceeds the maximum of %d", riscv.ErrInvalidMemorySize, state.Memory.Size(), riscv.MaxMemorySize)
	}
	if !state.WritableX0 && state.Registers[0] != 0 {
		return fmt.Errorf("register x0 is hardwired to zero but holds %#x", state.Registers[0])
	}
	return nil
}

// SetWritableX0 switches the x0 policy of a state, e.g. one resumed from JSON.
// Hardwiring x0 clears any value it held.
func (state *VMState) SetWritableX0(writable bool) {
	state.WritableX0 = writable
	if !writable {
		state.Registers[0] = 0
	}
}

func (state *VMState) GetStep() uint64 {
	return state.Step
}

// GetRegister returns register i; the index is masked to 5 bits.
// x0 reads as zero unless the state was created with WritableX0.
func (state *VMState) GetRegister(i uint64) uint64 {
	i &= 0x1F
	if i == 0 && !state.WritableX0 {
		return 0
	}
	return state.Registers[i]
}

// SetRegister writes register i; the index is masked to 5 bits.
// Writes to x0 are dropped unless the state was created with WritableX0.
func (state *VMState) SetRegister(i uint64, v uint64) {
	i &= 0x1F
	if i == 0 && !state.WritableX0 {
		return
	}
	state.Registers[i] = v
}

func (state *VMState) GetPC() uint64 {
	return state.PC
}

func (state *VMState) SetPC(pc uint64) {
	state.PC = pc
}

// Instr returns the instruction word at the current PC, or 0 when the PC is outside of memory.
func (state *VMState) Instr() uint32 {
	instr, err := state.Memory.Fetch(state.PC)
	if err != nil {
		return 0
	}
	return instr
}
