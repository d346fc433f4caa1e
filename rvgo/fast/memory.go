package fast

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/Cra2yPierr0t/riscv-emu/rvgo/riscv"
)

// Memory is a fixed-size, zero-initialized, byte-addressable store.
// Every access is bounds-checked; multi-byte values are little-endian and
// need not be aligned.
type Memory struct {
	data []byte
}

func NewMemory(size uint64) *Memory {
	return &Memory{data: make([]byte, size)}
}

func (m *Memory) Size() uint64 {
	return uint64(len(m.data))
}

// Bytes returns a copy of the memory contents.
func (m *Memory) Bytes() []byte {
	return append([]byte(nil), m.data...)
}

// MemoryFault describes an access that touches bytes outside of memory.
type MemoryFault struct {
	Op   string // "read", "write" or "fetch"
	Addr uint64
	Size uint64
}

func (f *MemoryFault) Error() string {
	return fmt.Sprintf("%v: %s of %d bytes at 0x%x", riscv.ErrMemoryFault, f.Op, f.Size, f.Addr)
}

func (f *MemoryFault) Unwrap() error {
	return riscv.ErrMemoryFault
}

// check returns the slice [addr, addr+size), or a fault if any byte of it is out of range.
func (m *Memory) check(op string, addr, size uint64) ([]byte, error) {
	n := uint64(len(m.data))
	if addr >= n || size > n-addr {
		return nil, &MemoryFault{Op: op, Addr: addr, Size: size}
	}
	return m.data[addr : addr+size], nil
}

// Load copies data into memory starting at base.
func (m *Memory) Load(data []byte, base uint64) error {
	if base > m.Size() || uint64(len(data)) > m.Size()-base {
		return fmt.Errorf("%w: %d bytes at 0x%x, capacity %d", riscv.ErrFirmwareTooLarge, len(data), base, m.Size())
	}
	copy(m.data[base:], data)
	return nil
}

// Read loads size bytes (1, 2, 4 or 8) at addr and zero-extends them.
func (m *Memory) Read(addr, size uint64) (uint64, error) {
	b, err := m.check("read", addr, size)
	if err != nil {
		return 0, err
	}
	switch size {
	case 1:
		return uint64(b[0]), nil
	case 2:
		return uint64(binary.LittleEndian.Uint16(b)), nil
	case 4:
		return uint64(binary.LittleEndian.Uint32(b)), nil
	case 8:
		return binary.LittleEndian.Uint64(b), nil
	default:
		return 0, fmt.Errorf("unsupported read size %d", size)
	}
}

// Write stores the low size bytes (1, 2, 4 or 8) of value at addr.
func (m *Memory) Write(addr, size, value uint64) error {
	b, err := m.check("write", addr, size)
	if err != nil {
		return err
	}
	switch size {
	case 1:
		b[0] = uint8(value)
	case 2:
		binary.LittleEndian.PutUint16(b, uint16(value))
	case 4:
		binary.LittleEndian.PutUint32(b, uint32(value))
	case 8:
		binary.LittleEndian.PutUint64(b, value)
	default:
		return fmt.Errorf("unsupported write size %d", size)
	}
	return nil
}

func (m *Memory) Read8(addr uint64) (uint8, error) {
	v, err := m.Read(addr, 1)
	return uint8(v), err
}

func (m *Memory) Read16(addr uint64) (uint16, error) {
	v, err := m.Read(addr, 2)
	return uint16(v), err
}

func (m *Memory) Read32(addr uint64) (uint32, error) {
	v, err := m.Read(addr, 4)
	return uint32(v), err
}

func (m *Memory) Read64(addr uint64) (uint64, error) {
	return m.Read(addr, 8)
}

func (m *Memory) Write8(addr uint64, v uint8) error {
	return m.Write(addr, 1, uint64(v))
}

func (m *Memory) Write16(addr uint64, v uint16) error {
	return m.Write(addr, 2, uint64(v))
}

func (m *Memory) Write32(addr uint64, v uint32) error {
	return m.Write(addr, 4, uint64(v))
}

func (m *Memory) Write64(addr uint64, v uint64) error {
	return m.Write(addr, 8, v)
}

// Fetch reads the instruction word at pc.
func (m *Memory) Fetch(pc uint64) (uint32, error) {
	b, err := m.check("fetch", pc, riscv.InstrSize)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (m *Memory) MarshalJSON() ([]byte, error) {
	return json.Marshal(hexutil.Bytes(m.data))
}

func (m *Memory) UnmarshalJSON(data []byte) error {
	var dat hexutil.Bytes
	if err := json.Unmarshal(data, &dat); err != nil {
		return err
	}
	if len(dat) == 0 {
		return fmt.Errorf("%w: empty memory", riscv.ErrInvalidMemorySize)
	}
	m.data = dat
	return nil
}
