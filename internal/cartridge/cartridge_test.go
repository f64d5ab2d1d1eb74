package cartridge

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestImage returns a 32kB image with a valid header.
func newTestImage(title string) []byte {
	rom := make([]byte, 0x8000)
	copy(rom[0x104:], logo)
	copy(rom[0x134:], title)
	rom[0x147] = byte(ROM)
	rom[0x148] = 0x00
	rom[0x149] = 0x02
	rom[0x14E], rom[0x14F] = 0x12, 0x34

	var x uint8
	for _, b := range rom[0x134:0x14D] {
		x = x - b - 1
	}
	rom[0x14D] = x
	return rom
}

func TestNewCartridge(t *testing.T) {
	c, err := NewCartridge(newTestImage("TETRIS"))
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	h := c.Header()
	assert.Equal(t, "TETRIS", c.Title())
	assert.Equal(t, ROM, h.CartridgeType)
	assert.Equal(t, uint(32*1024), h.ROMSize)
	assert.Equal(t, uint(8*1024), h.RAMSize)
	assert.Equal(t, uint16(0x1234), h.GlobalChecksum)
	assert.Equal(t, "DMG", h.Hardware())
	assert.Equal(t, "TETRIS | Mode: DMG | Type: ROM ONLY | ROM Size: 32kB | RAM Size: 8kB", h.String())
	assert.Len(t, c.FixedBank(), 0x4000)
	assert.Len(t, c.ROM(), 0x8000)
}

func TestNewCartridge_TooSmall(t *testing.T) {
	_, err := NewCartridge(make([]byte, 0x3FFF))
	assert.ErrorIs(t, err, ErrTooSmall)
}

func TestNewCartridge_InvalidTitle(t *testing.T) {
	rom := newTestImage("")
	copy(rom[0x134:], []byte{0x41, 0xFF, 0xFE})

	_, err := NewCartridge(rom)
	assert.ErrorIs(t, err, ErrInvalidTitle)
}

func TestNewCartridge_UTF8Title(t *testing.T) {
	c, err := NewCartridge(newTestImage("ポケモン"))
	require.NoError(t, err)
	assert.Equal(t, "ポケモン", c.Title())
}

func TestCartridge_Validate(t *testing.T) {
	t.Run("logo", func(t *testing.T) {
		rom := newTestImage("TEST")
		rom[0x104] = 0x00

		c, err := NewCartridge(rom)
		require.NoError(t, err)

		err = c.Validate()
		assert.ErrorIs(t, err, ErrInvalidLogo)
		assert.False(t, errors.Is(err, ErrHeaderChecksum))

		h := c.Header()
		assert.Equal(t, uint8(0x00), h.Logo()[0])
		assert.Equal(t, uint8(0xCE), Logo()[0])
		assert.Equal(t, Logo()[1:], h.Logo()[1:])
	})
	t.Run("checksum", func(t *testing.T) {
		rom := newTestImage("TEST")
		rom[0x14D]++

		c, err := NewCartridge(rom)
		require.NoError(t, err)

		err = c.Validate()
		assert.ErrorIs(t, err, ErrHeaderChecksum)
		assert.False(t, errors.Is(err, ErrInvalidLogo))
	})
	t.Run("both", func(t *testing.T) {
		c, err := NewCartridge(make([]byte, 0x4000))
		require.NoError(t, err)

		err = c.Validate()
		assert.ErrorIs(t, err, ErrInvalidLogo)
		assert.ErrorIs(t, err, ErrHeaderChecksum)
	})
}

func TestCartridge_Fingerprint(t *testing.T) {
	a, err := NewCartridge(newTestImage("A"))
	require.NoError(t, err)
	b, err := NewCartridge(newTestImage("B"))
	require.NoError(t, err)
	again, err := NewCartridge(newTestImage("A"))
	require.NoError(t, err)

	assert.Equal(t, a.Fingerprint(), again.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

func TestType(t *testing.T) {
	assert.Equal(t, "MBC1+RAM+BATTERY", MBC1RAMBATT.String())
	assert.Equal(t, "unknown (42)", Type(0x42).String())
	assert.False(t, ROM.BankSwitched())
	assert.True(t, MBC5.BankSwitched())
}
