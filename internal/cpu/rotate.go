package cpu

import "github.com/thelolagemann/dmgcore/pkg/bits"

// rotateLeftCarry rotates n left by 1 bit. The most significant bit is copied
// to both the carry flag and the least significant bit.
//
//	RLC n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func (c *CPU) rotateLeftCarry(n uint8) uint8 {
	carry := bits.Val(n, 7)
	computed := n<<1 | carry
	c.setFlags(computed == 0, false, false, carry == 1)
	return computed
}

// rotateRightCarry rotates n right by 1 bit. The least significant bit is
// copied to both the carry flag and the most significant bit.
//
//	RRC n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func (c *CPU) rotateRightCarry(n uint8) uint8 {
	carry := bits.Val(n, 0)
	computed := n>>1 | carry<<7
	c.setFlags(computed == 0, false, false, carry == 1)
	return computed
}

// rotateLeftThroughCarry rotates n left by 1 bit. The carry flag is copied to
// the least significant bit, and the most significant bit is copied to the
// carry flag.
//
//	RL n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func (c *CPU) rotateLeftThroughCarry(n uint8) uint8 {
	computed := n<<1 | c.carry()
	c.setFlags(computed == 0, false, false, bits.Test(n, 7))
	return computed
}

// rotateRightThroughCarry rotates n right by 1 bit. The carry flag is copied to
// the most significant bit, and the least significant bit is copied to the
// carry flag.
//
//	RR n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func (c *CPU) rotateRightThroughCarry(n uint8) uint8 {
	computed := n>>1 | c.carry()<<7
	c.setFlags(computed == 0, false, false, bits.Test(n, 0))
	return computed
}

// shiftLeftArithmetic shifts n left by 1 bit into the carry flag. Bit 0 is
// reset.
//
//	SLA n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func (c *CPU) shiftLeftArithmetic(n uint8) uint8 {
	computed := n << 1
	c.setFlags(computed == 0, false, false, bits.Test(n, 7))
	return computed
}

// shiftRightArithmetic shifts n right by 1 bit into the carry flag. Bit 7
// is unchanged.
//
//	SRA n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func (c *CPU) shiftRightArithmetic(n uint8) uint8 {
	computed := n>>1 | n&0x80
	c.setFlags(computed == 0, false, false, bits.Test(n, 0))
	return computed
}

// shiftRightLogical shifts n right by 1 bit into the carry flag. Bit 7 is
// reset.
//
//	SRL n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func (c *CPU) shiftRightLogical(n uint8) uint8 {
	computed := n >> 1
	c.setFlags(computed == 0, false, false, bits.Test(n, 0))
	return computed
}

// swap the upper and lower nibbles of n.
//
//	SWAP n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) swap(n uint8) uint8 {
	c.setFlags(n == 0, false, false, false)
	return n<<4 | n>>4
}

// defineRotateA defines a rotate of the A Register. Unlike the extended
// rotates, the zero flag is always reset.
//
//	RLCA, RRCA, RLA, RRA
func defineRotateA(opcode uint8, mnemonic string, fn func(*CPU, uint8) uint8) {
	DefineInstruction(opcode, mnemonic, func(c *CPU) {
		c.A = fn(c, c.A)
		c.clearFlag(FlagZero)
	})
}

func init() {
	defineRotateA(0x07, "RLCA", (*CPU).rotateLeftCarry)
	defineRotateA(0x0F, "RRCA", (*CPU).rotateRightCarry)
	defineRotateA(0x17, "RLA", (*CPU).rotateLeftThroughCarry)
	defineRotateA(0x1F, "RRA", (*CPU).rotateRightThroughCarry)
}
