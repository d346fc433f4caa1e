package fast

// Functions to parse the instruction field values from the different RISC-V instruction formats.
// All immediates are returned sign-extended to 64 bits.

func parseImmTypeI(instr U64) U64 {
	return signExtend64(shr64(toU64(20), instr), toU64(11))
}

func parseImmTypeS(instr U64) U64 {
	return signExtend64(or64(shl64(toU64(5), shr64(toU64(25), instr)), and64(shr64(toU64(7), instr), toU64(0x1F))), toU64(11))
}

// parseImmTypeB returns the branch offset in bytes: imm[12|10:5|4:1|11], bit 0 is always zero.
func parseImmTypeB(instr U64) U64 {
	return signExtend64(
		or64(
			or64(
				shl64(toU64(1), and64(shr64(toU64(8), instr), toU64(0xF))),   // imm[4:1]
				shl64(toU64(5), and64(shr64(toU64(25), instr), toU64(0x3F))), // imm[10:5]
			),
			or64(
				shl64(toU64(11), and64(shr64(toU64(7), instr), toU64(1))),  // imm[11]
				shl64(toU64(12), and64(shr64(toU64(31), instr), toU64(1))), // imm[12]
			),
		),
		toU64(12),
	)
}

// parseImmTypeU returns the upper immediate already shifted into bits [31:12].
func parseImmTypeU(instr U64) U64 {
	return signExtend64(and64(instr, 0xFFFF_F000), toU64(31))
}

// parseImmTypeJ returns the jump offset in bytes: imm[20|10:1|11|19:12], bit 0 is always zero.
func parseImmTypeJ(instr U64) U64 {
	return signExtend64(
		or64(
			or64(
				shl64(toU64(1), and64(shr64(toU64(21), instr), shortToU64(0x3FF))), // imm[10:1]
				shl64(toU64(11), and64(shr64(toU64(20), instr), toU64(1))),         // imm[11]
			),
			or64(
				shl64(toU64(12), and64(shr64(toU64(12), instr), toU64(0xFF))), // imm[19:12]
				shl64(toU64(20), and64(shr64(toU64(31), instr), toU64(1))),    // imm[20]
			),
		),
		toU64(20),
	)
}

func parseOpcode(instr U64) U64 {
	return and64(instr, toU64(0x7F))
}

func parseRd(instr U64) U64 {
	return and64(shr64(toU64(7), instr), toU64(0x1F))
}

func parseFunct3(instr U64) U64 {
	return and64(shr64(toU64(12), instr), toU64(0x7))
}

func parseRs1(instr U64) U64 {
	return and64(shr64(toU64(15), instr), toU64(0x1F))
}

func parseRs2(instr U64) U64 {
	return and64(shr64(toU64(20), instr), toU64(0x1F))
}

func parseFunct7(instr U64) U64 {
	return and64(shr64(toU64(25), instr), toU64(0x7F))
}

func ParseImmTypeI(instr uint32) uint64 { return parseImmTypeI(U64(instr)) }

func ParseImmTypeS(instr uint32) uint64 { return parseImmTypeS(U64(instr)) }

func ParseImmTypeB(instr uint32) uint64 { return parseImmTypeB(U64(instr)) }

func ParseImmTypeU(instr uint32) uint64 { return parseImmTypeU(U64(instr)) }

func ParseImmTypeJ(instr uint32) uint64 { return parseImmTypeJ(U64(instr)) }

// Instruction holds the fields of one instruction word. Fields that do not
// apply to the instruction's format are still filled in, and ignored.
type Instruction struct {
	Raw    uint32
	Opcode U64
	Rd     U64 // destination register index
	Funct3 U64
	Rs1    U64 // source register 1 index
	Rs2    U64 // source register 2 index
	Funct7 U64
}

func Decode(instr uint32) Instruction {
	v := U64(instr)
	return Instruction{
		Raw:    instr,
		Opcode: parseOpcode(v),
		Rd:     parseRd(v),
		Funct3: parseFunct3(v),
		Rs1:    parseRs1(v),
		Rs2:    parseRs2(v),
		Funct7: parseFunct7(v),
	}
}

func (in Instruction) ImmI() U64 { return parseImmTypeI(U64(in.Raw)) }

func (in Instruction) ImmS() U64 { return parseImmTypeS(U64(in.Raw)) }

func (in Instruction) ImmB() U64 { return parseImmTypeB(U64(in.Raw)) }

func (in Instruction) ImmU() U64 { return parseImmTypeU(U64(in.Raw)) }

func (in Instruction) ImmJ() U64 { return parseImmTypeJ(U64(in.Raw)) }
