package fast

import (
	"context"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/log"

	"github.com/Cra2yPierr0t/riscv-emu/rvgo/riscv"
)

// InstrumentedState drives a VMState: it owns the state for its lifetime
// and adds the parts that are not architectural, a logger for traces and
// warnings, the step budget and statistics.
type InstrumentedState struct {
	state *VMState

	log log.Logger

	maxSteps uint64

	unknownFunctions uint64
}

type Option func(m *InstrumentedState)

// WithLogger routes LOAD/STORE traces and unknown-function warnings to l.
func WithLogger(l log.Logger) Option {
	return func(m *InstrumentedState) {
		m.log = l
	}
}

// WithMaxSteps bounds the number of iterations of Run, including the one
// that decodes the halting instruction. 0 means no limit.
func WithMaxSteps(n uint64) Option {
	return func(m *InstrumentedState) {
		m.maxSteps = n
	}
}

func NewInstrumentedState(state *VMState, opts ...Option) *InstrumentedState {
	m := &InstrumentedState{state: state}
	for _, opt := range opts {
		opt(m)
	}
	if m.log == nil {
		m.log = log.NewLogger(log.LogfmtHandlerWithLevel(io.Discard, log.LevelCrit))
	}
	return m
}

func (m *InstrumentedState) State() *VMState {
	return m.state
}

// UnknownFunctions counts the instructions of a known opcode group that
// were skipped because their funct3/funct7 selected no operation.
func (m *InstrumentedState) UnknownFunctions() uint64 {
	return m.unknownFunctions
}

// Step runs a single instruction. A state that has exited is left untouched.
// On error the instruction has no effect: registers, memory and PC are unchanged.
func (m *InstrumentedState) Step() (outErr error) {
	if m.state.Exited {
		return nil
	}
	defer func() {
		if err := recover(); err != nil {
			outErr = fmt.Errorf("err: %v", err)
		}
	}()
	return m.riscvStep()
}

// StepHook is consulted before each step of Run. Returning stop ends the run
// early without error.
type StepHook func(state *VMState) (stop bool, err error)

// Run steps until the program halts, the step budget is spent, ctx is done,
// or a hook asks to stop. Reaching the halt is not an error.
func (m *InstrumentedState) Run(ctx context.Context, hooks ...StepHook) error {
	for i := uint64(0); !m.state.Exited; i++ {
		if i%100 == 0 { // don't do the ctx err check too often
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if m.maxSteps != 0 && i >= m.maxSteps {
			return fmt.Errorf("%w: %d steps (PC: %08x)", riscv.ErrStepLimit, m.maxSteps, m.state.PC)
		}
		for _, hook := range hooks {
			stop, err := hook(m.state)
			if err != nil {
				return err
			}
			if stop {
				return nil
			}
		}
		if err := m.Step(); err != nil {
			return fmt.Errorf("failed at step %d (PC: %08x): %w", m.state.Step, m.state.PC, err)
		}
	}
	return nil
}

func (m *InstrumentedState) unknownFunction(in Instruction, pc U64) (U64, error) {
	m.unknownFunctions++
	m.log.Warn("unknown function, skipping instruction",
		"pc", HexU64(pc), "insn", HexU32(in.Raw),
		"opcode", HexU32(in.Opcode), "funct3", in.Funct3, "funct7", HexU32(in.Funct7))
	return add64(pc, riscv.InstrSize), nil
}

// HexU32 to lazy-format integer attributes for logging
type HexU32 uint32

func (v HexU32) String() string {
	return fmt.Sprintf("%08x", uint32(v))
}

func (v HexU32) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// HexU64 is the 64-bit counterpart of HexU32, used for addresses.
type HexU64 uint64

func (v HexU64) String() string {
	return fmt.Sprintf("%016x", uint64(v))
}

func (v HexU64) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}
