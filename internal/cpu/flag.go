package cpu

import "github.com/thelolagemann/dmgcore/pkg/bits"

// Flag is the index of a flag in the F register. The low nibble of F is
// unused and always zero.
type Flag = uint8

const (
	FlagZero      Flag = 7
	FlagSubtract  Flag = 6
	FlagHalfCarry Flag = 5
	FlagCarry     Flag = 4
)

// clearFlag clears a flag from the F register.
func (c *CPU) clearFlag(flag Flag) {
	c.F = bits.Reset(c.F, flag)
}

// setFlag sets a flag in the F register.
func (c *CPU) setFlag(flag Flag) {
	c.F = bits.Set(c.F, flag)
}

// isFlagSet returns true if the given flag is set.
func (c *CPU) isFlagSet(flag Flag) bool {
	return bits.Test(c.F, flag)
}

// setFlags sets all four flags at once.
func (c *CPU) setFlags(zero, subtract, halfCarry, carry bool) {
	f := bits.Assign(c.F, FlagZero, zero)
	f = bits.Assign(f, FlagSubtract, subtract)
	f = bits.Assign(f, FlagHalfCarry, halfCarry)
	f = bits.Assign(f, FlagCarry, carry)
	c.F = f & 0xF0
}

// carry returns the carry flag as 0 or 1.
func (c *CPU) carry() uint8 {
	return bits.Val(c.F, FlagCarry)
}

// Condition is the flag condition of a conditional jump, call or return.
type Condition uint8

const (
	ConditionNZ Condition = iota
	ConditionZ
	ConditionNC
	ConditionC
)

// conditions is ordered by encoding.
var conditions = [4]Condition{ConditionNZ, ConditionZ, ConditionNC, ConditionC}

func (cc Condition) String() string {
	switch cc {
	case ConditionNZ:
		return "NZ"
	case ConditionZ:
		return "Z"
	case ConditionNC:
		return "NC"
	case ConditionC:
		return "C"
	}
	return "?"
}

// test reports whether the condition holds for the current flags.
func (c *CPU) test(cc Condition) bool {
	switch cc {
	case ConditionNZ:
		return !c.isFlagSet(FlagZero)
	case ConditionZ:
		return c.isFlagSet(FlagZero)
	case ConditionNC:
		return !c.isFlagSet(FlagCarry)
	case ConditionC:
		return c.isFlagSet(FlagCarry)
	}
	panic("invalid condition")
}
