package fast

import "github.com/holiman/uint256"

type U256 = uint256.Int

func u64ToU256(v U64) *U256 {
	return uint256.NewInt(v)
}

// signExtend64To256 widens v as a two's complement 64-bit value.
func signExtend64To256(v U64) *U256 {
	out := uint256.NewInt(v)
	if v&(1<<63) != 0 {
		hi := new(uint256.Int).Not(uint256.NewInt(0))
		hi.Lsh(hi, 64)
		out.Or(out, hi)
	}
	return out
}

// mulHigh returns bits [127:64] of x*y. The product is taken mod 2**256,
// which keeps those bits exact for sign-extended operands too.
func mulHigh(x, y *U256) U64 {
	var p U256
	p.Mul(x, y)
	p.Rsh(&p, 64)
	return p.Uint64()
}

func mulh(a, b U64) U64 {
	return mulHigh(signExtend64To256(a), signExtend64To256(b))
}

func mulhsu(a, b U64) U64 {
	return mulHigh(signExtend64To256(a), u64ToU256(b))
}

func mulhu(a, b U64) U64 {
	return mulHigh(u64ToU256(a), u64ToU256(b))
}

// Word (32-bit) operations. Operands are truncated to their low 32 bits,
// and every result is sign-extended from bit 31.

func addw(a, b U64) U64 {
	return mask32Signed64(add64(a, b))
}

func subw(a, b U64) U64 {
	return mask32Signed64(sub64(a, b))
}

func sllw(a, shamt U64) U64 {
	return mask32Signed64(shl64(and64(shamt, toU64(0x1F)), a))
}

func srlw(a, shamt U64) U64 {
	return signExtend64(shr64(and64(shamt, toU64(0x1F)), and64(a, u32Mask())), toU64(31))
}

func sraw(a, shamt U64) U64 {
	shamt = and64(shamt, toU64(0x1F))
	return signExtend64(shr64(shamt, and64(a, u32Mask())), sub64(toU64(31), shamt))
}

func mulw(a, b U64) U64 {
	return mask32Signed64(mul64(and64(a, u32Mask()), and64(b, u32Mask())))
}

func divw(a, b U64) U64 {
	divisor := mask32Signed64(b)
	if divisor == 0 {
		return u64Mask()
	}
	return mask32Signed64(sdiv64(mask32Signed64(a), divisor))
}

func divuw(a, b U64) U64 {
	divisor := and64(b, u32Mask())
	if divisor == 0 {
		return u64Mask()
	}
	return mask32Signed64(div64(and64(a, u32Mask()), divisor))
}

func remw(a, b U64) U64 {
	divisor := mask32Signed64(b)
	if divisor == 0 {
		return mask32Signed64(a)
	}
	return mask32Signed64(smod64(mask32Signed64(a), divisor))
}

func remuw(a, b U64) U64 {
	divisor := and64(b, u32Mask())
	if divisor == 0 {
		return mask32Signed64(a)
	}
	return mask32Signed64(mod64(and64(a, u32Mask()), divisor))
}
