package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thelolagemann/dmgcore/internal/mmu"
)

// flags returns the F register for the given flag values.
func flags(zero, subtract, halfCarry, carry bool) uint8 {
	var f uint8
	for i, set := range []bool{carry, halfCarry, subtract, zero} {
		if set {
			f |= 1 << (4 + i)
		}
	}
	return f
}

func TestCPU_addCarry(t *testing.T) {
	c := NewCPU(mmu.NewMMU())
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			for carry := 0; carry < 2; carry++ {
				c.A = uint8(a)
				c.F = uint8(carry) << FlagCarry
				c.addCarry(uint8(b))

				sum := a + b + carry
				want := flags(sum&0xFF == 0, false, a&0x0F+b&0x0F+carry > 0x0F, sum > 0xFF)
				if c.A != uint8(sum) || c.F != want {
					t.Fatalf("ADC %02X+%02X+%d: got A=%02X F=%02X, want A=%02X F=%02X", a, b, carry, c.A, c.F, uint8(sum), want)
				}
			}
		}
	}
}

func TestCPU_subCarry(t *testing.T) {
	c := NewCPU(mmu.NewMMU())
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			for carry := 0; carry < 2; carry++ {
				c.A = uint8(a)
				c.F = uint8(carry) << FlagCarry
				c.subCarry(uint8(b))

				difference := a - b - carry
				want := flags(difference&0xFF == 0, true, a&0x0F-b&0x0F-carry < 0, difference < 0)
				if c.A != uint8(difference) || c.F != want {
					t.Fatalf("SBC %02X-%02X-%d: got A=%02X F=%02X, want A=%02X F=%02X", a, b, carry, c.A, c.F, uint8(difference), want)
				}
			}
		}
	}
}

func TestInstruction_Arithmetic(t *testing.T) {
	tests := []struct {
		name    string
		program []byte
		a, f    uint8
		wantA   uint8
		wantF   uint8
	}{
		{"ADD A, d8 zero", []byte{0xC6, 0xC6}, 0x3A, 0x00, 0x00, flags(true, false, true, true)},
		{"ADD A, d8 half carry", []byte{0xC6, 0x01}, 0x0F, 0x00, 0x10, flags(false, false, true, false)},
		{"ADD A, A", []byte{0x87}, 0x80, 0x00, 0x00, flags(true, false, false, true)},
		{"ADC A, d8", []byte{0xCE, 0x0F}, 0xE1, 0x10, 0xF1, flags(false, false, true, false)},
		{"SUB d8 equal", []byte{0xD6, 0x3E}, 0x3E, 0x00, 0x00, flags(true, true, false, false)},
		{"SUB d8 borrow", []byte{0xD6, 0x40}, 0x3E, 0x00, 0xFE, flags(false, true, false, true)},
		{"SBC A, d8", []byte{0xDE, 0x2A}, 0x3B, 0x10, 0x10, flags(false, true, false, false)},
		{"CP d8", []byte{0xFE, 0x2F}, 0x3C, 0x00, 0x3C, flags(false, true, true, false)},
		{"CP A", []byte{0xBF}, 0x12, 0x00, 0x12, flags(true, true, false, false)},
		{"AND d8", []byte{0xE6, 0xF0}, 0x0F, 0x00, 0x00, flags(true, false, true, false)},
		{"OR d8", []byte{0xF6, 0x0F}, 0x5A, 0xF0, 0x5F, flags(false, false, false, false)},
		{"XOR A", []byte{0xAF}, 0xFF, 0x70, 0x00, flags(true, false, false, false)},
		{"CPL", []byte{0x2F}, 0x35, 0x90, 0xCA, flags(true, true, true, true)},
		{"SCF", []byte{0x37}, 0x00, 0xE0, 0x00, flags(true, false, false, true)},
		{"CCF", []byte{0x3F}, 0x00, 0x70, 0x00, flags(false, false, false, false)},
		{"DAA add", []byte{0xC6, 0x38, 0x27}, 0x45, 0x00, 0x83, flags(false, false, false, false)},
		{"DAA add carry", []byte{0xC6, 0x01, 0x27}, 0x99, 0x00, 0x00, flags(true, false, false, true)},
		{"DAA sub", []byte{0xD6, 0x01, 0x27}, 0x10, 0x00, 0x09, flags(false, true, false, false)},
		{"DAA sub borrow", []byte{0xD6, 0x20, 0x27}, 0x10, 0x00, 0x90, flags(false, true, false, true)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCPU(t, tt.program)
			c.A, c.F = tt.a, tt.f

			for c.PC < 0x0100+uint16(len(tt.program)) {
				step(t, c, 1)
			}

			assert.Equal(t, tt.wantA, c.A, "A")
			assert.Equal(t, tt.wantF, c.F, "F: %08b", c.F)
		})
	}
}

func TestInstruction_IncDec(t *testing.T) {
	// 0x04 - INC B
	testInstruction(t, "INC B", 0x04, func(t *testing.T, _ Instruction) {
		c := newTestCPU(t, []byte{0x04})
		c.B = 0xFF
		c.F = flags(false, true, false, true)
		step(t, c, 1)

		assert.Equal(t, Register(0x00), c.B)
		// the carry flag is not affected
		assert.Equal(t, flags(true, false, true, true), c.F)
	})
	// 0x3D - DEC A
	testInstruction(t, "DEC A", 0x3D, func(t *testing.T, _ Instruction) {
		c := newTestCPU(t, []byte{0x3D, 0x3D})
		c.A = 0x01
		step(t, c, 1)
		assert.Equal(t, Register(0x00), c.A)
		assert.Equal(t, flags(true, true, false, false), c.F)

		step(t, c, 1)
		assert.Equal(t, Register(0xFF), c.A)
		assert.Equal(t, flags(false, true, true, false), c.F)
	})
	// 0x34 - INC (HL)
	testInstruction(t, "INC (HL)", 0x34, func(t *testing.T, _ Instruction) {
		c := newTestCPU(t, []byte{0x34})
		c.HL.SetUint16(0xC010)
		poke(t, c, 0xC010, 0x0F)
		step(t, c, 1)

		assert.Equal(t, uint8(0x10), peek(t, c, 0xC010))
		assert.Equal(t, flags(false, false, true, false), c.F)
	})
	// 0x35 - DEC (HL)
	testInstruction(t, "DEC (HL)", 0x35, func(t *testing.T, _ Instruction) {
		c := newTestCPU(t, []byte{0x35})
		c.HL.SetUint16(0xFF80)
		poke(t, c, 0xFF80, 0x01)
		step(t, c, 1)

		assert.Equal(t, uint8(0x00), peek(t, c, 0xFF80))
		assert.True(t, c.isFlagSet(FlagZero))
	})
	// 16-bit increments do not affect the flags
	testInstruction(t, "INC BC", 0x03, func(t *testing.T, _ Instruction) {
		c := newTestCPU(t, []byte{0x03})
		c.BC.SetUint16(0xFFFF)
		c.F = 0xB0
		step(t, c, 1)

		assert.Equal(t, uint16(0x0000), c.BC.Uint16())
		assert.Equal(t, uint8(0xB0), c.F)
	})
	testInstruction(t, "DEC SP", 0x3B, func(t *testing.T, _ Instruction) {
		c := newTestCPU(t, []byte{0x3B})
		c.SP = 0x0000
		step(t, c, 1)

		assert.Equal(t, uint16(0xFFFF), c.SP)
		assert.Equal(t, uint8(0x00), c.F)
	})
}

func TestInstruction_Arithmetic16(t *testing.T) {
	testInstruction(t, "ADD HL, BC", 0x09, func(t *testing.T, _ Instruction) {
		c := newTestCPU(t, []byte{0x09, 0x09})
		c.HL.SetUint16(0x0FFF)
		c.BC.SetUint16(0x0001)
		c.F = flags(true, true, false, false)
		step(t, c, 1)

		assert.Equal(t, uint16(0x1000), c.HL.Uint16())
		// the zero flag is not affected
		assert.Equal(t, flags(true, false, true, false), c.F)

		c.BC.SetUint16(0xF000)
		step(t, c, 1)
		assert.Equal(t, uint16(0x0000), c.HL.Uint16())
		assert.Equal(t, flags(true, false, false, true), c.F)
	})
	testInstruction(t, "ADD HL, HL", 0x29, func(t *testing.T, _ Instruction) {
		c := newTestCPU(t, []byte{0x29})
		c.HL.SetUint16(0x8A23)
		step(t, c, 1)

		assert.Equal(t, uint16(0x1446), c.HL.Uint16())
		assert.Equal(t, flags(false, false, true, true), c.F)
	})
	testInstruction(t, "ADD SP, r8", 0xE8, func(t *testing.T, _ Instruction) {
		c := newTestCPU(t, []byte{0xE8, 0x08, 0xE8, 0xFE})
		c.SP = 0xFFF8
		c.F = flags(true, true, false, false)
		step(t, c, 1)

		assert.Equal(t, uint16(0x0000), c.SP)
		assert.Equal(t, flags(false, false, true, true), c.F)

		step(t, c, 1)
		assert.Equal(t, uint16(0xFFFE), c.SP)
		assert.Equal(t, flags(false, false, false, false), c.F)
	})
	testInstruction(t, "LD HL, SP+r8", 0xF8, func(t *testing.T, _ Instruction) {
		c := newTestCPU(t, []byte{0xF8, 0x02})
		c.SP = 0xFFF8
		step(t, c, 1)

		assert.Equal(t, uint16(0xFFFA), c.HL.Uint16())
		assert.Equal(t, uint16(0xFFF8), c.SP)
		assert.Equal(t, flags(false, false, false, false), c.F)
	})
}
