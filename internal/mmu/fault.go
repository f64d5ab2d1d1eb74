package mmu

import (
	"errors"
	"fmt"
)

var (
	// ErrUnmapped is the cause of a Fault on an address without backing store.
	ErrUnmapped = errors.New("address is not mapped")
	// ErrBankNotLoaded is the cause of a Fault reading the fixed bank before it was loaded.
	ErrBankNotLoaded = errors.New("fixed ROM bank not loaded")
	// ErrBankLoaded is returned when loading the fixed bank a second time.
	ErrBankLoaded = errors.New("fixed ROM bank already loaded")
	// ErrBankSize is returned when loading a bank of the wrong size.
	ErrBankSize = errors.New("invalid ROM bank size")
)

// Access is the kind of memory access that caused a Fault.
type Access uint8

const (
	AccessRead Access = iota
	AccessWrite
)

func (a Access) String() string {
	if a == AccessWrite {
		return "write"
	}
	return "read"
}

// Fault is returned for a memory access that can not be served.
type Fault struct {
	Address uint16
	Access  Access
	Region  string
	Err     error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("memory fault: %s at %04X (%s): %v", f.Access, f.Address, f.Region, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}
