// Package mmu provides the memory bus of the CPU. The MMU owns every
// addressable region of the 16-bit address space, and resolves each
// address to the region backing it, reporting a Fault for addresses
// that have no backing store.
package mmu

import (
	"fmt"
	"io"

	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/log"
	"github.com/thelolagemann/dmgcore/pkg/utils"
)

// Region describes a contiguous range of the address space, and the
// policy used when accessing it.
type Region struct {
	Name  string
	Start uint16
	End   uint16 // inclusive

	// Mapped is false for ranges without a backing store. Any access
	// to an unmapped region is a Fault.
	Mapped bool
	// Writable is false for ROM. Writes to ROM are ignored.
	Writable bool
}

// Size returns the number of addresses covered by the Region.
func (r Region) Size() int {
	return int(r.End) - int(r.Start) + 1
}

// Contains reports whether the address falls within the Region.
func (r Region) Contains(address uint16) bool {
	return address >= r.Start && address <= r.End
}

func (r Region) String() string {
	return fmt.Sprintf("%s (%04X-%04X)", r.Name, r.Start, r.End)
}

type region struct {
	Region
	data []byte
}

// layout is the partition of the address space, in address order.
var layout = []Region{
	{Name: "ROM0", Start: types.ROM0, End: types.ROM1 - 1, Mapped: true},
	{Name: "ROM1", Start: types.ROM1, End: types.VRAM - 1, Mapped: true},
	{Name: "VRAM", Start: types.VRAM, End: types.SRAM - 1, Mapped: true, Writable: true},
	{Name: "SRAM", Start: types.SRAM, End: types.WRAM - 1, Mapped: true, Writable: true},
	{Name: "WRAM", Start: types.WRAM, End: types.Echo - 1, Mapped: true, Writable: true},
	{Name: "Echo/OAM", Start: types.Echo, End: types.IO - 1},
	{Name: "IO", Start: types.IO, End: types.IOGap - 1, Mapped: true, Writable: true},
	{Name: "Unusable", Start: types.IOGap, End: types.HRAM - 1},
	{Name: "HRAM", Start: types.HRAM, End: 0xFFFF, Mapped: true, Writable: true},
}

// MMU is the memory bus. It handles all memory reads and writes to the
// 64kB address space. Each address resolves through a lookup table to
// exactly one region.
type MMU struct {
	// 64kB address space
	raw [0x10000]*region

	regions []*region
	rom0    *region

	// the fixed bank is populated exactly once, before execution starts
	fixedLoaded bool

	Log log.Logger
}

// NewMMU returns a new MMU with every region allocated and zeroed.
func NewMMU() *MMU {
	m := &MMU{
		Log: log.NewNullLogger(),
	}

	for _, l := range layout {
		r := &region{Region: l}
		if l.Mapped {
			r.data = make([]byte, l.Size())
		}
		for i := int(l.Start); i <= int(l.End); i++ {
			m.raw[i] = r
		}
		m.regions = append(m.regions, r)
	}
	m.rom0 = m.raw[types.ROM0]

	return m
}

// LoadFixedBank copies the first bank of the cartridge into the fixed
// ROM region. It must be called exactly once, with exactly one bank of
// data.
func (m *MMU) LoadFixedBank(bank []byte) error {
	if m.fixedLoaded {
		return ErrBankLoaded
	}
	if len(bank) != types.BankSize {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrBankSize, len(bank), types.BankSize)
	}

	copy(m.rom0.data, bank)
	m.fixedLoaded = true
	m.Log.Debugf("loaded fixed ROM bank (%d bytes)", len(bank))

	return nil
}

// resolve returns the region backing the address, or a Fault if the
// address may not be accessed.
func (m *MMU) resolve(address uint16, access Access) (*region, error) {
	r := m.raw[address]
	if !r.Mapped {
		return nil, &Fault{Address: address, Access: access, Region: r.Name, Err: ErrUnmapped}
	}
	if r == m.rom0 && !m.fixedLoaded && access == AccessRead {
		return nil, &Fault{Address: address, Access: access, Region: r.Name, Err: ErrBankNotLoaded}
	}

	return r, nil
}

// Read returns the value at the given address.
func (m *MMU) Read(address uint16) (uint8, error) {
	r, err := m.resolve(address, AccessRead)
	if err != nil {
		return 0, err
	}

	return r.data[address-r.Start], nil
}

// Write writes the value to the given address. Writes to ROM are
// ignored.
func (m *MMU) Write(address uint16, value uint8) error {
	r, err := m.resolve(address, AccessWrite)
	if err != nil {
		return err
	}

	m.store(r, address, value)
	return nil
}

func (m *MMU) store(r *region, address uint16, value uint8) {
	if !r.Writable {
		m.Log.Debugf("ignored write of %02X to %04X (%s)", value, address, r.Name)
		return
	}
	r.data[address-r.Start] = value
}

// Read16 returns the little-endian 16-bit value at the given address.
// Each byte is resolved on its own, so a word may straddle two regions.
func (m *MMU) Read16(address uint16) (uint16, error) {
	low, err := m.Read(address)
	if err != nil {
		return 0, err
	}
	high, err := m.Read(address + 1)
	if err != nil {
		return 0, err
	}

	return utils.BytesToUint16(high, low), nil
}

// Write16 writes value little-endian at the given address, the low byte
// at address and the high byte at address+1. Both addresses are resolved
// before either byte is written, so a faulting write has no effect.
func (m *MMU) Write16(address uint16, value uint16) error {
	lowRegion, err := m.resolve(address, AccessWrite)
	if err != nil {
		return err
	}
	highRegion, err := m.resolve(address+1, AccessWrite)
	if err != nil {
		return err
	}

	high, low := utils.Uint16ToBytes(value)
	m.store(lowRegion, address, low)
	m.store(highRegion, address+1, high)
	return nil
}

// Region returns the Region the given address belongs to.
func (m *MMU) Region(address uint16) Region {
	return m.raw[address].Region
}

// Regions returns every Region of the address space, in address order.
func (m *MMU) Regions() []Region {
	regions := make([]Region, len(m.regions))
	for i, r := range m.regions {
		regions[i] = r.Region
	}
	return regions
}

// Dump returns an image of the full address space, in address order.
// Unmapped regions are filled with 0xFF.
func (m *MMU) Dump() []byte {
	dump := make([]byte, 0, len(m.raw))
	for _, r := range m.regions {
		if r.Mapped {
			dump = append(dump, r.data...)
			continue
		}
		for i := 0; i < r.Size(); i++ {
			dump = append(dump, 0xFF)
		}
	}
	return dump
}

// WriteDump writes a textual dump of the address space to w, as a
// header line per region followed by its contents in rows of 16 bytes.
// Unmapped regions are written as a header line only.
func (m *MMU) WriteDump(w io.Writer) error {
	for _, r := range m.regions {
		if !r.Mapped {
			if _, err := fmt.Fprintf(w, "# %s unmapped\n", r); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "# %s\n", r); err != nil {
			return err
		}
		for offset := 0; offset < len(r.data); offset += 16 {
			end := offset + 16
			if end > len(r.data) {
				end = len(r.data)
			}
			row := utils.HexDump(r.data[offset:end], "")
			if _, err := fmt.Fprintf(w, "%04X: %s\n", int(r.Start)+offset, row); err != nil {
				return err
			}
		}
	}
	return nil
}
