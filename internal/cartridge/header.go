package cartridge

import (
	"bytes"
	"fmt"
	"unicode/utf8"
)

// CGBFlag is the Colour Game Boy compatibility of a cartridge.
type CGBFlag uint8

const (
	FlagOnlyDMG CGBFlag = iota
	FlagSupportsCGB
	FlagOnlyCGB
)

var (
	ramMAP = map[uint8]uint{
		0x00: 0,
		0x02: 8 * 1024,
		0x03: 32 * 1024,
		0x04: 128 * 1024,
		0x05: 64 * 1024,
	}
)

// Type is the hardware found on the cartridge, such as the bank
// controller.
type Type uint8

const (
	ROM               Type = 0x00
	MBC1              Type = 0x01
	MBC1RAM           Type = 0x02
	MBC1RAMBATT       Type = 0x03
	MBC2              Type = 0x05
	MBC2BATT          Type = 0x06
	ROMRAM            Type = 0x08
	ROMRAMBATT        Type = 0x09
	MMM01             Type = 0x0B
	MMM01RAM          Type = 0x0C
	MMM01RAMBATT      Type = 0x0D
	MBC3TIMERBATT     Type = 0x0F
	MBC3TIMERRAMBATT  Type = 0x10
	MBC3              Type = 0x11
	MBC3RAM           Type = 0x12
	MBC3RAMBATT       Type = 0x13
	MBC5              Type = 0x19
	MBC5RAM           Type = 0x1A
	MBC5RAMBATT       Type = 0x1B
	MBC5RUMBLE        Type = 0x1C
	MBC5RUMBLERAM     Type = 0x1D
	MBC5RUMBLERAMBATT Type = 0x1E
	POCKETCAMERA      Type = 0x1F
	BANDAITAMA5       Type = 0xFD
	HUDSONHUC3        Type = 0xFE
	HUDSONHUC1        Type = 0xFF
)

var typeNames = map[Type]string{
	ROM:               "ROM ONLY",
	MBC1:              "MBC1",
	MBC1RAM:           "MBC1+RAM",
	MBC1RAMBATT:       "MBC1+RAM+BATTERY",
	MBC2:              "MBC2",
	MBC2BATT:          "MBC2+BATTERY",
	ROMRAM:            "ROM+RAM",
	ROMRAMBATT:        "ROM+RAM+BATTERY",
	MMM01:             "MMM01",
	MMM01RAM:          "MMM01+RAM",
	MMM01RAMBATT:      "MMM01+RAM+BATTERY",
	MBC3TIMERBATT:     "MBC3+TIMER+BATTERY",
	MBC3TIMERRAMBATT:  "MBC3+TIMER+RAM+BATTERY",
	MBC3:              "MBC3",
	MBC3RAM:           "MBC3+RAM",
	MBC3RAMBATT:       "MBC3+RAM+BATTERY",
	MBC5:              "MBC5",
	MBC5RAM:           "MBC5+RAM",
	MBC5RAMBATT:       "MBC5+RAM+BATTERY",
	MBC5RUMBLE:        "MBC5+RUMBLE",
	MBC5RUMBLERAM:     "MBC5+RUMBLE+RAM",
	MBC5RUMBLERAMBATT: "MBC5+RUMBLE+RAM+BATTERY",
	POCKETCAMERA:      "POCKET CAMERA",
	BANDAITAMA5:       "BANDAI TAMA5",
	HUDSONHUC3:        "HuC3",
	HUDSONHUC1:        "HuC1+RAM+BATTERY",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("unknown (%02X)", uint8(t))
}

// BankSwitched reports whether the cartridge needs a bank controller,
// which is not emulated.
func (t Type) BankSwitched() bool {
	return t != ROM && t != ROMRAM && t != ROMRAMBATT
}

// Header represents the header of a cartridge, each cartridge has a header and is
// located at the address space 0x0100-0x014F. The header contains information about
// the cartridge itself, and the hardware it expects to run on.
type Header struct {
	// 0x0134-0x0142 - Title of the game, with trailing NULs removed
	Title string

	// 0x0143 - CGB compatibility. In older cartridges this byte was part
	// of the title.
	CGB CGBFlag

	// 0x0144-0x0145 - NewLicenseeCode of the game.
	NewLicenseeCode string
	SGBFlag         bool
	CartridgeType   Type
	ROMSize         uint
	RAMSize         uint
	CountryCode     uint8
	OldLicenseeCode uint8
	MaskROMVersion  uint8
	HeaderChecksum  uint8
	GlobalChecksum  uint16

	raw [0x50]byte
}

// parseHeader parses the header of the given ROM, located at
// 0x0100-0x014F.
func parseHeader(header []byte) (Header, error) {
	h := Header{}
	if len(header) != 0x50 {
		return h, fmt.Errorf("invalid header length: %d", len(header))
	}
	copy(h.raw[:], header)

	// parse the title, which must be text
	title := bytes.TrimRight(header[0x34:0x43], "\x00")
	if !utf8.Valid(title) {
		return h, fmt.Errorf("%w: % X", ErrInvalidTitle, title)
	}
	h.Title = string(title)

	switch header[0x43] {
	case 0x80:
		h.CGB = FlagSupportsCGB
	case 0xC0:
		h.CGB = FlagOnlyCGB
	default:
		h.CGB = FlagOnlyDMG
	}

	h.NewLicenseeCode = string(header[0x44:0x46])
	h.SGBFlag = header[0x46] == 0x03
	h.CartridgeType = Type(header[0x47])

	// parse the ROM size (calculated by 32kB x (1 << n))
	h.ROMSize = (32 * 1024) << (header[0x48] & 0x0F)
	h.RAMSize = ramMAP[header[0x49]]

	h.CountryCode = header[0x4A]
	h.OldLicenseeCode = header[0x4B]
	h.MaskROMVersion = header[0x4C]
	h.HeaderChecksum = header[0x4D]
	// the global checksum is stored big-endian
	h.GlobalChecksum = uint16(header[0x4E])<<8 | uint16(header[0x4F])

	return h, nil
}

// Logo returns the logo bitmap stored at 0x0104-0x0133.
func (h *Header) Logo() []byte {
	return h.raw[0x04:0x34]
}

// ComputeHeaderChecksum returns the checksum over 0x0134-0x014C, which
// should equal HeaderChecksum.
func (h *Header) ComputeHeaderChecksum() uint8 {
	var x uint8
	for _, b := range h.raw[0x34:0x4D] {
		x = x - b - 1
	}
	return x
}

func (h *Header) Hardware() string {
	switch h.CGB {
	case FlagSupportsCGB, FlagOnlyCGB:
		return "CGB"
	default:
		return "DMG"
	}
}

func (h *Header) String() string {
	return fmt.Sprintf("%s | Mode: %s | Type: %s | ROM Size: %dkB | RAM Size: %dkB", h.Title, h.Hardware(), h.CartridgeType, h.ROMSize/1024, h.RAMSize/1024)
}
