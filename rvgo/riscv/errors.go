package riscv

import "errors"

var (
	// ErrMemoryFault is wrapped by every out-of-bounds memory access.
	ErrMemoryFault = errors.New("memory fault")
	// ErrFirmwareTooLarge means the image does not fit in memory.
	ErrFirmwareTooLarge = errors.New("firmware exceeds memory capacity")
	// ErrStepLimit is returned when the configured step budget runs out before the program halts.
	ErrStepLimit = errors.New("step limit reached")
	// ErrInvalidMemorySize rejects a zero-sized memory configuration.
	ErrInvalidMemorySize = errors.New("invalid memory size")
)
