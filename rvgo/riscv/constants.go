package riscv

// Opcode groups, the low 7 bits of every instruction word.
const (
	OpLoad     = 0x03 // 000_0011
	OpImm      = 0x13 // 001_0011
	OpAUIPC    = 0x17 // 001_0111
	OpImm32    = 0x1B // 001_1011
	OpStore    = 0x23 // 010_0011
	OpAMO      = 0x2F // 010_1111
	OpReg      = 0x33 // 011_0011
	OpLUI      = 0x37 // 011_0111
	OpReg32    = 0x3B // 011_1011
	OpBranch   = 0x63 // 110_0011
	OpJALR     = 0x67 // 110_0111
	OpJAL      = 0x6F // 110_1111
	OpSystem   = 0x73 // 111_0011
	OpcodeMask = 0x7F
)

// funct7 values selecting the sub-family of OP and OP-32.
const (
	Funct7Base   = 0x00
	Funct7Alt    = 0x20 // SUB, SRA
	Funct7MulDiv = 0x01
)

// The upper six bits of an OP-IMM shift immediate.
const (
	ShiftLogical64    = 0x00
	ShiftArithmetic64 = 0x10
)

// InstrSize is the width of one (uncompressed) instruction in bytes.
const InstrSize = 4

// RegisterCount is the number of general purpose registers.
const RegisterCount = 32

// DefaultMemorySize is the size of the address space when none is configured.
const DefaultMemorySize = 1024

// MaxMemorySize bounds the configurable size of the address space (1 GiB).
const MaxMemorySize = 1 << 30
