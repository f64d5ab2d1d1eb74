package cpu

import (
	"errors"
	"fmt"
)

var (
	// ErrIllegalOpcode is the cause of a Fault for an opcode without an
	// instruction.
	ErrIllegalOpcode = errors.New("undefined opcode")
	// ErrStackBounds is the cause of a memory fault for a stack access
	// outside of work RAM and high RAM.
	ErrStackBounds = errors.New("stack access outside of work RAM and high RAM")
	// ErrStopped is returned by Run when its context is done.
	ErrStopped = errors.New("execution stopped")
	// ErrHalted is returned when stepping a CPU that has already halted.
	ErrHalted = errors.New("cpu halted")
	// ErrROMTooSmall is returned by Run for a ROM shorter than a bank.
	ErrROMTooSmall = errors.New("rom is smaller than the fixed bank")
)

// Fault is returned when an instruction can not be executed. Err is
// either ErrIllegalOpcode, or the *mmu.Fault returned by the bus.
type Fault struct {
	// PC is the address of the faulting instruction.
	PC       uint16
	Opcode   uint8
	Prefixed bool
	// Fetched is false when the opcode could not be read, in which case
	// Opcode and Prefixed are unset.
	Fetched bool
	Err     error
	// Dump is an image of the address space at the time of the fault.
	Dump []byte
}

func (f *Fault) Error() string {
	if !f.Fetched {
		return fmt.Sprintf("cpu fault at %04X: %v", f.PC, f.Err)
	}
	opcode := fmt.Sprintf("%02X", f.Opcode)
	if f.Prefixed {
		opcode = "CB " + opcode
	}
	return fmt.Sprintf("cpu fault at %04X (opcode %s): %v", f.PC, opcode, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}
