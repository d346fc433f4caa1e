package fast

import (
	"github.com/Cra2yPierr0t/riscv-emu/rvgo/riscv"
)

// opHandler executes one instruction of an opcode group and returns the next PC.
// A handler that returns an error must not have changed any state.
type opHandler func(m *InstrumentedState, in Instruction, pc U64) (U64, error)

// opcodes maps the recognized opcode groups to their handler.
// An instruction whose opcode has no handler halts the machine.
var opcodes = [riscv.OpcodeMask + 1]opHandler{
	riscv.OpLoad:   (*InstrumentedState).execLoad,
	riscv.OpImm:    (*InstrumentedState).execOpImm,
	riscv.OpAUIPC:  (*InstrumentedState).execAUIPC,
	riscv.OpImm32:  (*InstrumentedState).execOpImm32,
	riscv.OpStore:  (*InstrumentedState).execStore,
	riscv.OpAMO:    (*InstrumentedState).execPlaceholder,
	riscv.OpReg:    (*InstrumentedState).execOp,
	riscv.OpLUI:    (*InstrumentedState).execLUI,
	riscv.OpReg32:  (*InstrumentedState).execOp32,
	riscv.OpBranch: (*InstrumentedState).execBranch,
	riscv.OpJALR:   (*InstrumentedState).execJALR,
	riscv.OpJAL:    (*InstrumentedState).execJAL,
	riscv.OpSystem: (*InstrumentedState).execPlaceholder,
}

// Recognized reports whether the opcode group of instr is implemented.
func Recognized(instr uint32) bool {
	return opcodes[parseOpcode(U64(instr))] != nil
}

func (m *InstrumentedState) riscvStep() error {
	s := m.state
	pc := s.GetPC()
	instr, err := s.Memory.Fetch(pc)
	if err != nil {
		return err
	}
	in := Decode(instr)

	handler := opcodes[in.Opcode]
	if handler == nil {
		// the PC stays on the instruction that halted the machine
		s.Exited = true
		m.log.Debug("halted on unrecognized opcode", "pc", HexU64(pc), "insn", HexU32(instr), "step", s.Step)
		return nil
	}
	nextPC, err := handler(m, in, pc)
	if err != nil {
		return err
	}
	s.SetPC(nextPC)
	s.Step += 1
	return nil
}

func nextInstr(pc U64) U64 {
	return add64(pc, riscv.InstrSize)
}

// 000_0011: memory loading
func (m *InstrumentedState) execLoad(in Instruction, pc U64) (U64, error) {
	// LB, LH, LW, LD, LBU, LHU, LWU
	if in.Funct3 == 7 {
		return m.unknownFunction(in, pc)
	}
	signed := and64(in.Funct3, toU64(4)) == 0           // 4 = 100 -> bitflag
	size := shl64(and64(in.Funct3, toU64(3)), toU64(1)) // 3 = 11 -> 1, 2, 4, 8 bytes size
	addr := add64(m.state.GetRegister(in.Rs1), in.ImmI())
	m.log.Trace("LOAD", "rd", in.Rd, "rs1", in.Rs1, "funct3", in.Funct3, "addr", HexU64(addr))
	rdValue, err := m.state.Memory.Read(addr, size)
	if err != nil {
		return 0, err
	}
	if signed {
		rdValue = signExtend64(rdValue, sub64(shl64(toU64(3), size), 1))
	}
	m.state.SetRegister(in.Rd, rdValue)
	return nextInstr(pc), nil
}

// 010_0011: memory storing
func (m *InstrumentedState) execStore(in Instruction, pc U64) (U64, error) {
	// SB, SH, SW, SD
	if in.Funct3 > 3 {
		return m.unknownFunction(in, pc)
	}
	size := shl64(in.Funct3, toU64(1))
	addr := add64(m.state.GetRegister(in.Rs1), in.ImmS())
	m.log.Trace("STORE", "rs1", in.Rs1, "funct3", in.Funct3, "addr", HexU64(addr), "rs2", in.Rs2)
	if err := m.state.Memory.Write(addr, size, m.state.GetRegister(in.Rs2)); err != nil {
		return 0, err
	}
	return nextInstr(pc), nil
}

// 001_0011: immediate arithmetic and logic
func (m *InstrumentedState) execOpImm(in Instruction, pc U64) (U64, error) {
	rs1Value := m.state.GetRegister(in.Rs1)
	imm := in.ImmI()
	// in rv64i the top 6 bits of the 12 bit immediate select the shift type
	shiftType := shr64(toU64(6), and64(imm, shortToU64(0xFFF)))
	shamt := and64(imm, toU64(0x3F)) // lower 6 bits in 64 bit mode
	var rdValue U64
	switch in.Funct3 {
	case 0: // 000 = ADDI
		rdValue = add64(rs1Value, imm)
	case 1: // 001 = SLLI
		if shiftType != riscv.ShiftLogical64 {
			return m.unknownFunction(in, pc)
		}
		rdValue = shl64(shamt, rs1Value)
	case 2: // 010 = SLTI
		rdValue = slt64(rs1Value, imm)
	case 3: // 011 = SLTIU
		rdValue = lt64(rs1Value, imm)
	case 4: // 100 = XORI
		rdValue = xor64(rs1Value, imm)
	case 5: // 101 = SR~
		switch shiftType {
		case riscv.ShiftLogical64: // 000000 = SRLI
			rdValue = shr64(shamt, rs1Value)
		case riscv.ShiftArithmetic64: // 010000 = SRAI
			rdValue = sar64(shamt, rs1Value)
		default:
			return m.unknownFunction(in, pc)
		}
	case 6: // 110 = ORI
		rdValue = or64(rs1Value, imm)
	case 7: // 111 = ANDI
		rdValue = and64(rs1Value, imm)
	}
	m.state.SetRegister(in.Rd, rdValue)
	return nextInstr(pc), nil
}

// 001_0111: AUIPC = Add upper immediate to PC
func (m *InstrumentedState) execAUIPC(in Instruction, pc U64) (U64, error) {
	m.state.SetRegister(in.Rd, add64(pc, in.ImmU()))
	return nextInstr(pc), nil
}

// 001_1011: immediate arithmetic and logic signed 32 bit
func (m *InstrumentedState) execOpImm32(in Instruction, pc U64) (U64, error) {
	rs1Value := m.state.GetRegister(in.Rs1)
	imm := in.ImmI()
	shamt := and64(imm, toU64(0x1F))
	var rdValue U64
	switch in.Funct3 {
	case 0: // 000 = ADDIW
		rdValue = addw(rs1Value, imm)
	case 1: // 001 = SLLIW
		if in.Funct7 != riscv.Funct7Base {
			return m.unknownFunction(in, pc)
		}
		rdValue = sllw(rs1Value, shamt)
	case 5: // 101 = SR~
		switch in.Funct7 {
		case riscv.Funct7Base: // 0000000 = SRLIW
			rdValue = srlw(rs1Value, shamt)
		case riscv.Funct7Alt: // 0100000 = SRAIW
			rdValue = sraw(rs1Value, shamt)
		default:
			return m.unknownFunction(in, pc)
		}
	default:
		return m.unknownFunction(in, pc)
	}
	m.state.SetRegister(in.Rd, rdValue)
	return nextInstr(pc), nil
}

// 011_0011: register arithmetic and logic
func (m *InstrumentedState) execOp(in Instruction, pc U64) (U64, error) {
	rs1Value := m.state.GetRegister(in.Rs1)
	rs2Value := m.state.GetRegister(in.Rs2)
	var rdValue U64
	switch in.Funct7 {
	case riscv.Funct7MulDiv: // RV M extension
		switch in.Funct3 {
		case 0: // 000 = MUL: signed x signed
			rdValue = mul64(rs1Value, rs2Value)
		case 1: // 001 = MULH: upper bits of signed x signed
			rdValue = mulh(rs1Value, rs2Value)
		case 2: // 010 = MULHSU: upper bits of signed x unsigned
			rdValue = mulhsu(rs1Value, rs2Value)
		case 3: // 011 = MULHU: upper bits of unsigned x unsigned
			rdValue = mulhu(rs1Value, rs2Value)
		case 4: // 100 = DIV
			rdValue = sdiv64(rs1Value, rs2Value)
		case 5: // 101 = DIVU
			rdValue = div64(rs1Value, rs2Value)
		case 6: // 110 = REM
			rdValue = smod64(rs1Value, rs2Value)
		case 7: // 111 = REMU
			rdValue = mod64(rs1Value, rs2Value)
		}
	case riscv.Funct7Base:
		switch in.Funct3 {
		case 0: // 000 = ADD
			rdValue = add64(rs1Value, rs2Value)
		case 1: // 001 = SLL
			rdValue = shl64(and64(rs2Value, toU64(0x3F)), rs1Value) // only the low 6 bits are considered in RV64I
		case 2: // 010 = SLT
			rdValue = slt64(rs1Value, rs2Value)
		case 3: // 011 = SLTU
			rdValue = lt64(rs1Value, rs2Value)
		case 4: // 100 = XOR
			rdValue = xor64(rs1Value, rs2Value)
		case 5: // 101 = SRL
			rdValue = shr64(and64(rs2Value, toU64(0x3F)), rs1Value) // logical: fill with zeroes
		case 6: // 110 = OR
			rdValue = or64(rs1Value, rs2Value)
		case 7: // 111 = AND
			rdValue = and64(rs1Value, rs2Value)
		}
	case riscv.Funct7Alt:
		switch in.Funct3 {
		case 0: // 000 = SUB
			rdValue = sub64(rs1Value, rs2Value)
		case 5: // 101 = SRA
			rdValue = sar64(and64(rs2Value, toU64(0x3F)), rs1Value) // arithmetic: sign bit is extended
		default:
			return m.unknownFunction(in, pc)
		}
	default:
		return m.unknownFunction(in, pc)
	}
	m.state.SetRegister(in.Rd, rdValue)
	return nextInstr(pc), nil
}

// 011_0111: LUI = Load upper immediate
func (m *InstrumentedState) execLUI(in Instruction, pc U64) (U64, error) {
	m.state.SetRegister(in.Rd, in.ImmU())
	return nextInstr(pc), nil
}

// 011_1011: register arithmetic and logic in 32 bits
func (m *InstrumentedState) execOp32(in Instruction, pc U64) (U64, error) {
	rs1Value := m.state.GetRegister(in.Rs1)
	rs2Value := m.state.GetRegister(in.Rs2)
	var rdValue U64
	switch in.Funct7 {
	case riscv.Funct7MulDiv: // RV M extension
		switch in.Funct3 {
		case 0: // 000 = MULW
			rdValue = mulw(rs1Value, rs2Value)
		case 4: // 100 = DIVW
			rdValue = divw(rs1Value, rs2Value)
		case 5: // 101 = DIVUW
			rdValue = divuw(rs1Value, rs2Value)
		case 6: // 110 = REMW
			rdValue = remw(rs1Value, rs2Value)
		case 7: // 111 = REMUW
			rdValue = remuw(rs1Value, rs2Value)
		default:
			return m.unknownFunction(in, pc)
		}
	case riscv.Funct7Base:
		switch in.Funct3 {
		case 0: // 000 = ADDW
			rdValue = addw(rs1Value, rs2Value)
		case 1: // 001 = SLLW
			rdValue = sllw(rs1Value, rs2Value)
		case 5: // 101 = SRLW
			rdValue = srlw(rs1Value, rs2Value)
		default:
			return m.unknownFunction(in, pc)
		}
	case riscv.Funct7Alt:
		switch in.Funct3 {
		case 0: // 000 = SUBW
			rdValue = subw(rs1Value, rs2Value)
		case 5: // 101 = SRAW
			rdValue = sraw(rs1Value, rs2Value)
		default:
			return m.unknownFunction(in, pc)
		}
	default:
		return m.unknownFunction(in, pc)
	}
	m.state.SetRegister(in.Rd, rdValue)
	return nextInstr(pc), nil
}

// 110_0011: branching
func (m *InstrumentedState) execBranch(in Instruction, pc U64) (U64, error) {
	rs1Value := m.state.GetRegister(in.Rs1)
	rs2Value := m.state.GetRegister(in.Rs2)
	var branchHit U64
	switch in.Funct3 {
	case 0: // 000 = BEQ
		branchHit = eq64(rs1Value, rs2Value)
	case 1: // 001 = BNE
		branchHit = and64(not64(eq64(rs1Value, rs2Value)), toU64(1))
	case 4: // 100 = BLT
		branchHit = slt64(rs1Value, rs2Value)
	case 5: // 101 = BGE
		branchHit = and64(not64(slt64(rs1Value, rs2Value)), toU64(1))
	case 6: // 110 = BLTU
		branchHit = lt64(rs1Value, rs2Value)
	case 7: // 111 = BGEU
		branchHit = and64(not64(lt64(rs1Value, rs2Value)), toU64(1))
	default:
		return m.unknownFunction(in, pc)
	}
	if branchHit == 0 {
		return nextInstr(pc), nil
	}
	// imm is a signed offset, in multiples of 2 bytes.
	return add64(pc, in.ImmB()), nil
}

// 110_0111: JALR = Jump and link register
func (m *InstrumentedState) execJALR(in Instruction, pc U64) (U64, error) {
	if in.Funct3 != 0 {
		return m.unknownFunction(in, pc)
	}
	// read rs1 before the link is written, rd may equal rs1
	rs1Value := m.state.GetRegister(in.Rs1)
	target := and64(add64(rs1Value, in.ImmI()), xor64(u64Mask(), toU64(1))) // least significant bit is set to 0
	m.state.SetRegister(in.Rd, nextInstr(pc))
	return target, nil
}

// 110_1111: JAL = Jump and link
func (m *InstrumentedState) execJAL(in Instruction, pc U64) (U64, error) {
	m.state.SetRegister(in.Rd, nextInstr(pc))
	return add64(pc, in.ImmJ()), nil
}

// AMO and SYSTEM are recognized so that they do not halt the machine, but have no effect.
func (m *InstrumentedState) execPlaceholder(in Instruction, pc U64) (U64, error) {
	m.log.Trace("placeholder instruction", "pc", HexU64(pc), "opcode", HexU32(in.Opcode))
	return nextInstr(pc), nil
}
