package riscv

import "encoding/binary"

// Encoders assemble instruction words from their fields. Immediates are
// given as their signed value and truncated to the width of the format.

func EncodeR(opcode, rd, funct3, rs1, rs2, funct7 uint32) uint32 {
	return (funct7&0x7F)<<25 | (rs2&0x1F)<<20 | (rs1&0x1F)<<15 | (funct3&0x7)<<12 | (rd&0x1F)<<7 | (opcode & OpcodeMask)
}

func EncodeI(opcode, rd, funct3, rs1 uint32, imm int32) uint32 {
	return (uint32(imm)&0xFFF)<<20 | (rs1&0x1F)<<15 | (funct3&0x7)<<12 | (rd&0x1F)<<7 | (opcode & OpcodeMask)
}

func EncodeS(opcode, funct3, rs1, rs2 uint32, imm int32) uint32 {
	u := uint32(imm)
	return ((u>>5)&0x7F)<<25 | (rs2&0x1F)<<20 | (rs1&0x1F)<<15 | (funct3&0x7)<<12 | (u&0x1F)<<7 | (opcode & OpcodeMask)
}

// EncodeB takes the byte offset of the branch target; bit 0 is dropped.
func EncodeB(opcode, funct3, rs1, rs2 uint32, imm int32) uint32 {
	u := uint32(imm)
	return ((u>>12)&1)<<31 | ((u>>5)&0x3F)<<25 | (rs2&0x1F)<<20 | (rs1&0x1F)<<15 |
		(funct3&0x7)<<12 | ((u>>1)&0xF)<<8 | ((u>>11)&1)<<7 | (opcode & OpcodeMask)
}

// EncodeU takes the 20-bit upper immediate, i.e. the value before it is shifted left by 12.
func EncodeU(opcode, rd, imm20 uint32) uint32 {
	return (imm20&0xFFFFF)<<12 | (rd&0x1F)<<7 | (opcode & OpcodeMask)
}

// EncodeJ takes the byte offset of the jump target; bit 0 is dropped.
func EncodeJ(opcode, rd uint32, imm int32) uint32 {
	u := uint32(imm)
	return ((u>>20)&1)<<31 | ((u>>1)&0x3FF)<<21 | ((u>>11)&1)<<20 | ((u>>12)&0xFF)<<12 |
		(rd&0x1F)<<7 | (opcode & OpcodeMask)
}

// Program lays out instruction words little-endian, ready to be loaded at address 0.
func Program(instrs ...uint32) []byte {
	out := make([]byte, 0, len(instrs)*InstrSize)
	for _, in := range instrs {
		out = binary.LittleEndian.AppendUint32(out, in)
	}
	return out
}

// Shorthands for the instructions used most when building programs by hand.

func ADDI(rd, rs1 uint32, imm int32) uint32 { return EncodeI(OpImm, rd, 0, rs1, imm) }

func ADD(rd, rs1, rs2 uint32) uint32 { return EncodeR(OpReg, rd, 0, rs1, rs2, Funct7Base) }

func SUB(rd, rs1, rs2 uint32) uint32 { return EncodeR(OpReg, rd, 0, rs1, rs2, Funct7Alt) }

func LUI(rd, imm20 uint32) uint32 { return EncodeU(OpLUI, rd, imm20) }

func AUIPC(rd, imm20 uint32) uint32 { return EncodeU(OpAUIPC, rd, imm20) }

func JAL(rd uint32, offset int32) uint32 { return EncodeJ(OpJAL, rd, offset) }

func JALR(rd, rs1 uint32, imm int32) uint32 { return EncodeI(OpJALR, rd, 0, rs1, imm) }

func BEQ(rs1, rs2 uint32, offset int32) uint32 { return EncodeB(OpBranch, 0, rs1, rs2, offset) }

func BNE(rs1, rs2 uint32, offset int32) uint32 { return EncodeB(OpBranch, 1, rs1, rs2, offset) }

func LD(rd, rs1 uint32, imm int32) uint32 { return EncodeI(OpLoad, rd, 3, rs1, imm) }

func SD(rs1, rs2 uint32, imm int32) uint32 { return EncodeS(OpStore, 3, rs1, rs2, imm) }

// Halt is an all-zero word: opcode 0 is not a recognized group, so it stops the interpreter.
const Halt = uint32(0)
