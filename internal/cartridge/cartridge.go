// Package cartridge loads and validates cartridge images, before they are
// handed to the CPU.
package cartridge

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/cespare/xxhash"
	"github.com/thelolagemann/dmgcore/internal/types"
)

var (
	// ErrTooSmall is returned for an image shorter than the fixed bank.
	ErrTooSmall = errors.New("cartridge image is smaller than the fixed bank")
	// ErrInvalidTitle is returned when the title is not valid text.
	ErrInvalidTitle = errors.New("cartridge title is not valid UTF-8")
	// ErrInvalidLogo is a warning for a logo that does not match the
	// expected bitmap.
	ErrInvalidLogo = errors.New("cartridge logo does not match")
	// ErrHeaderChecksum is a warning for a header checksum mismatch.
	ErrHeaderChecksum = errors.New("cartridge header checksum mismatch")
)

// logo is the bitmap every licensed cartridge carries at 0x0104-0x0133.
var logo = []byte{
	0xCE, 0xED, 0x66, 0x66, 0xCC, 0x0D, 0x00, 0x0B, 0x03, 0x73, 0x00, 0x83, 0x00, 0x0C, 0x00, 0x0D,
	0x00, 0x08, 0x11, 0x1F, 0x88, 0x89, 0x00, 0x0E, 0xDC, 0xCC, 0x6E, 0xE6, 0xDD, 0xDD, 0xD9, 0x99,
	0xBB, 0xBB, 0x67, 0x63, 0x6E, 0x0E, 0xEC, 0xCC, 0xDD, 0xDC, 0x99, 0x9F, 0xBB, 0xB9, 0x33, 0x3E,
}

// Cartridge represents a cartridge image and its parsed header.
type Cartridge struct {
	rom    []byte
	header Header
}

// NewCartridge parses the header of the given image. It fails for images
// too small to hold the fixed bank, and for titles that are not text.
// Conditions that do not prevent running the image are reported by
// Validate.
func NewCartridge(rom []byte) (*Cartridge, error) {
	if len(rom) < types.BankSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooSmall, len(rom))
	}

	// parse the cartridge header (0x0100 - 0x014F)
	header, err := parseHeader(rom[0x100:0x150])
	if err != nil {
		return nil, err
	}

	return &Cartridge{
		rom:    rom,
		header: header,
	}, nil
}

// Header returns the parsed header.
func (c *Cartridge) Header() Header {
	return c.header
}

// Title returns the title of the cartridge.
func (c *Cartridge) Title() string {
	return c.header.Title
}

// ROM returns the full image.
func (c *Cartridge) ROM() []byte {
	return c.rom
}

// FixedBank returns the first bank of the image.
func (c *Cartridge) FixedBank() []byte {
	return c.rom[:types.BankSize]
}

// Fingerprint returns the xxhash of the full image, identifying the
// cartridge in logs.
func (c *Cartridge) Fingerprint() uint64 {
	return xxhash.Sum64(c.rom)
}

// Logo returns the bitmap a licensed cartridge carries at 0x0104-0x0133.
func Logo() []byte {
	return append([]byte(nil), logo...)
}

// Validate checks the logo and header checksum, returning ErrInvalidLogo
// and ErrHeaderChecksum joined. Neither prevents running the image.
func (c *Cartridge) Validate() error {
	var errs []error
	if !bytes.Equal(c.header.Logo(), logo) {
		errs = append(errs, ErrInvalidLogo)
	}
	if sum := c.header.ComputeHeaderChecksum(); sum != c.header.HeaderChecksum {
		errs = append(errs, fmt.Errorf("%w: computed %02X, header has %02X", ErrHeaderChecksum, sum, c.header.HeaderChecksum))
	}
	return errors.Join(errs...)
}
