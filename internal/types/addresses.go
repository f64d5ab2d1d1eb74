package types

// The address space is partitioned into the following regions. Each
// constant is the first address of the region, the region ending one
// byte before the next constant.
const (
	// ROM0 is the fixed ROM bank, holding the first 16kB of the cartridge.
	ROM0 uint16 = 0x0000
	// ROM1 is the switchable ROM bank. Bank switching is not emulated.
	ROM1 uint16 = 0x4000
	// VRAM is the video RAM. Nothing consumes it.
	VRAM uint16 = 0x8000
	// SRAM is the switchable cartridge RAM.
	SRAM uint16 = 0xA000
	// WRAM is the internal work RAM.
	WRAM uint16 = 0xC000
	// Echo is the start of the echo, OAM and unusable range, which
	// has no backing store.
	Echo uint16 = 0xE000
	// IO is the start of the I/O ports.
	IO uint16 = 0xFF00
	// IOGap is the unusable range following the I/O ports.
	IOGap uint16 = 0xFF4C
	// HRAM is the high RAM, which also holds the default stack.
	HRAM uint16 = 0xFF80
)

// BankSize is the size of a single ROM bank.
const BankSize = 0x4000

// HighPage is the base address used by the zero page addressing modes.
const HighPage uint16 = 0xFF00
