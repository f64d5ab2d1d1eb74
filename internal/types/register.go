package types

import "github.com/thelolagemann/dmgcore/pkg/utils"

// Register represents a register which is used to hold an 8-bit value.
// The CPU has 8 registers: A, B, C, D, E, H, L, and F. The F register is
// special in that it is used to hold the flags.
type Register = uint8

// RegisterPair represents a pair of Registers which is used to hold a 16-bit
// value. The CPU has 4 register pairs: AF, BC, DE, and HL. The High
// register holds the most significant byte.
type RegisterPair struct {
	High *Register
	Low  *Register
}

// Uint16 returns the value of the RegisterPair as an uint16.
func (r *RegisterPair) Uint16() uint16 {
	return utils.BytesToUint16(*r.High, *r.Low)
}

// SetUint16 sets the value of the RegisterPair to the given value.
func (r *RegisterPair) SetUint16(value uint16) {
	*r.High, *r.Low = utils.Uint16ToBytes(value)
}

// Registers represents the CPU registers.
type Registers struct {
	A Register
	B Register
	C Register
	D Register
	E Register
	F Register
	H Register
	L Register

	BC *RegisterPair
	DE *RegisterPair
	HL *RegisterPair
	AF *RegisterPair
}

// Pair wires the register pairs to their 8-bit halves. It must be
// called once the Registers have their final address.
func (r *Registers) Pair() {
	r.BC = &RegisterPair{High: &r.B, Low: &r.C}
	r.DE = &RegisterPair{High: &r.D, Low: &r.E}
	r.HL = &RegisterPair{High: &r.H, Low: &r.L}
	r.AF = &RegisterPair{High: &r.A, Low: &r.F}
}
