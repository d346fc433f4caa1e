package fast

// Small 64-bit helpers, shared by the decoder and the execution unit.
// Shift helpers take the shift amount first.

type U64 = uint64

func toU64(v uint8) U64 { return uint64(v) }

func shortToU64(v uint16) U64 {
	return uint64(v)
}

func u64Mask() uint64 { // max uint64
	return 0xFFFF_FFFF_FFFF_FFFF
}

func u32Mask() uint64 {
	return 0xFFFF_FFFF
}

// mask32Signed64 truncates v to 32 bits and sign-extends the result from bit 31.
func mask32Signed64(v U64) U64 {
	return signExtend64(and64(v, u32Mask()), toU64(31))
}

// signExtend64 replicates bit into all the higher bits of v.
func signExtend64(v uint64, bit uint64) uint64 {
	switch and64(v, shl64(bit, 1)) {
	case 0:
		// fill with zeroes, by masking
		return and64(v, shr64(sub64(63, bit), u64Mask()))
	default:
		// fill with ones, by or-ing
		return or64(v, shl64(bit, shr64(bit, u64Mask())))
	}
}

func add64(x, y uint64) uint64 {
	return x + y
}

func sub64(x, y uint64) uint64 {
	return x - y
}

func mul64(x, y uint64) uint64 {
	return x * y
}

// div64 is DIVU: division by zero yields all ones.
func div64(x, y uint64) uint64 {
	if y == 0 {
		return u64Mask()
	}
	return x / y
}

// sdiv64 is DIV: division by zero yields -1, and MinInt64 / -1 overflows to MinInt64.
func sdiv64(x, y uint64) uint64 {
	if y == 0 {
		return u64Mask()
	}
	if x == uint64(1<<63) && y == u64Mask() {
		return 1 << 63
	}
	return uint64(int64(x) / int64(y))
}

// mod64 is REMU: the remainder of a division by zero is the dividend.
func mod64(x, y uint64) uint64 {
	if y == 0 {
		return x
	}
	return x % y
}

// smod64 is REM: the remainder of a division by zero is the dividend, and of MinInt64 % -1 is zero.
func smod64(x, y uint64) uint64 {
	if y == 0 {
		return x
	}
	if y == u64Mask() {
		return 0
	}
	return uint64(int64(x) % int64(y))
}

func lt64(x, y uint64) uint64 {
	if x < y {
		return 1
	} else {
		return 0
	}
}

func slt64(x, y uint64) uint64 {
	if int64(x) < int64(y) {
		return 1
	} else {
		return 0
	}
}

func eq64(x, y uint64) uint64 {
	if x == y {
		return 1
	} else {
		return 0
	}
}

func and64(x, y uint64) uint64 {
	return x & y
}

func or64(x, y uint64) uint64 {
	return x | y
}

func xor64(x, y uint64) uint64 {
	return x ^ y
}

func not64(x uint64) uint64 {
	return ^x
}

func shl64(x, y uint64) uint64 {
	return y << x
}

func shr64(x, y uint64) uint64 {
	return y >> x
}

func sar64(x, y uint64) uint64 {
	return uint64(int64(y) >> x)
}
