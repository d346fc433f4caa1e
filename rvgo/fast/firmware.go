package fast

import (
	"fmt"
	"io"
	"os"

	"github.com/Cra2yPierr0t/riscv-emu/rvgo/riscv"
)

// LoadFirmware creates a fresh state and copies the flat binary image read
// from r to address 0. Memory past the end of the image stays zero.
func LoadFirmware(r io.Reader, cfg Config) (*VMState, error) {
	out, err := NewVMState(cfg)
	if err != nil {
		return nil, err
	}
	// read one byte past the capacity, to detect an oversized image without consuming all of it
	dat, err := io.ReadAll(io.LimitReader(r, int64(cfg.MemorySize)+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read firmware: %w", err)
	}
	if uint64(len(dat)) > cfg.MemorySize {
		return nil, fmt.Errorf("%w: image is larger than %d bytes", riscv.ErrFirmwareTooLarge, cfg.MemorySize)
	}
	if err := out.Memory.Load(dat, 0); err != nil {
		return nil, err
	}
	return out, nil
}

func LoadFirmwareFile(path string, cfg Config) (*VMState, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open firmware file %q: %w", path, err)
	}
	defer f.Close()
	state, err := LoadFirmware(f, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load firmware %q: %w", path, err)
	}
	return state, nil
}
