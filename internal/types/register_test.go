package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterPair(t *testing.T) {
	r := &Registers{}
	r.Pair()

	r.BC.SetUint16(0x1234)
	assert.Equal(t, uint8(0x12), r.B)
	assert.Equal(t, uint8(0x34), r.C)

	r.H, r.L = 0xC0, 0x01
	assert.Equal(t, uint16(0xC001), r.HL.Uint16())

	r.DE.SetUint16(0xFFFF)
	r.DE.SetUint16(r.DE.Uint16() + 1)
	assert.Equal(t, uint16(0x0000), r.DE.Uint16())

	r.AF.SetUint16(0xABF0)
	assert.Equal(t, uint8(0xAB), r.A)
	assert.Equal(t, uint8(0xF0), r.F)
}
