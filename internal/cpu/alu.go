package cpu

import "fmt"

// add adds n to the A Register.
//
//	ADD A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) add(n uint8) {
	c.addWithCarry(n, 0)
}

// addCarry adds n plus the carry flag to the A Register.
//
//	ADC A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) addCarry(n uint8) {
	c.addWithCarry(n, c.carry())
}

func (c *CPU) addWithCarry(n, carry uint8) {
	sum := uint16(c.A) + uint16(n) + uint16(carry)
	halfCarry := c.A&0x0F+n&0x0F+carry > 0x0F
	c.A = uint8(sum)
	c.setFlags(c.A == 0, false, halfCarry, sum > 0xFF)
}

// sub subtracts n from the A Register.
//
//	SUB n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func (c *CPU) sub(n uint8) {
	c.A = c.subtract(n, 0)
}

// subCarry subtracts n plus the carry flag from the A Register.
//
//	SBC A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func (c *CPU) subCarry(n uint8) {
	c.A = c.subtract(n, c.carry())
}

// compare compares n to the A Register, setting the flags as sub would
// without storing the result.
//
//	CP n
//	n = d8, B, C, D, E, H, L, (HL), A
func (c *CPU) compare(n uint8) {
	c.subtract(n, 0)
}

func (c *CPU) subtract(n, carry uint8) uint8 {
	difference := int(c.A) - int(n) - int(carry)
	halfCarry := int(c.A&0x0F)-int(n&0x0F)-int(carry) < 0
	result := uint8(difference)
	c.setFlags(result == 0, true, halfCarry, difference < 0)
	return result
}

// and performs a bitwise AND operation on n and the A Register.
//
//	AND n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set.
//	C - Reset.
func (c *CPU) and(n uint8) {
	c.A &= n
	c.setFlags(c.A == 0, false, true, false)
}

// or performs a bitwise OR operation on n and the A Register.
//
//	OR n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) or(n uint8) {
	c.A |= n
	c.setFlags(c.A == 0, false, false, false)
}

// xor performs a bitwise XOR operation on n and the A Register.
//
//	XOR n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) xor(n uint8) {
	c.A ^= n
	c.setFlags(c.A == 0, false, false, false)
}

// increment n by 1 and set the flags accordingly.
//
//	INC n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Not affected.
func (c *CPU) increment(n uint8) uint8 {
	incremented := n + 1
	c.setFlags(incremented == 0, false, n&0x0F == 0x0F, c.isFlagSet(FlagCarry))
	return incremented
}

// decrement n by 1 and set the flags accordingly.
//
//	DEC n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Not affected.
func (c *CPU) decrement(n uint8) uint8 {
	decremented := n - 1
	c.setFlags(decremented == 0, true, n&0x0F == 0, c.isFlagSet(FlagCarry))
	return decremented
}

// addHL adds n to the HL RegisterPair.
//
//	ADD HL, nn
//	nn = BC, DE, HL, SP
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Set if carry from bit 11.
//	C - Set if carry from bit 15.
func (c *CPU) addHL(n uint16) {
	hl := c.HL.Uint16()
	sum := uint32(hl) + uint32(n)
	c.setFlags(c.isFlagSet(FlagZero), false, hl&0x0FFF+n&0x0FFF > 0x0FFF, sum > 0xFFFF)
	c.HL.SetUint16(uint16(sum))
}

// addSPSigned returns SP plus the signed offset e. The flags are computed
// from the unsigned addition of e to the low byte of SP.
//
//	ADD SP, r8
//	LD HL, SP+r8
//
// Flags affected:
//
//	Z - Reset.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) addSPSigned(e uint8) uint16 {
	low := uint8(c.SP)
	c.setFlags(false, false, low&0x0F+e&0x0F > 0x0F, uint16(low)+uint16(e) > 0xFF)
	return c.SP + uint16(int8(e))
}

// aluOperations is ordered by the encoding of opcodes 0x80 - 0xBF.
var aluOperations = [8]struct {
	mnemonic    string
	accumulator bool // the name lists A as the first operand
	fn          func(*CPU, uint8)
}{
	{"ADD", true, (*CPU).add},
	{"ADC", true, (*CPU).addCarry},
	{"SUB", false, (*CPU).sub},
	{"SBC", true, (*CPU).subCarry},
	{"AND", false, (*CPU).and},
	{"XOR", false, (*CPU).xor},
	{"OR", false, (*CPU).or},
	{"CP", false, (*CPU).compare},
}

// defineALU defines an operation of the A Register with src.
func defineALU(opcode uint8, mnemonic string, accumulator bool, fn func(*CPU, uint8), src Operand) {
	mustRead8(src)

	execute := func(c *CPU) { fn(c, src.read8(c)) }
	if accumulator {
		DefineInstruction(opcode, mnemonic, execute, reg(RegA), src)
		return
	}
	DefineInstruction(opcode, mnemonic, execute, src)
}

// defineReadModifyWrite defines an instruction that replaces the value of
// o with the result of fn.
func defineReadModifyWrite(table func(uint8, string, func(*CPU), ...fmt.Stringer), opcode uint8, mnemonic string, fn func(*CPU, uint8) uint8, o Operand, args ...fmt.Stringer) {
	mustWrite8(o)
	table(opcode, mnemonic, func(c *CPU) {
		o.write8(c, fn(c, o.read8(c)))
	}, append(args, o)...)
}

func init() {
	for i, op := range aluOperations {
		// 0x80 - 0xBF - op r
		for j, src := range operandIndex {
			defineALU(0x80+uint8(i)<<3+uint8(j), op.mnemonic, op.accumulator, op.fn, src)
		}
		// 0xC6 - 0xFE - op d8
		defineALU(0xC6+uint8(i)<<3, op.mnemonic, op.accumulator, op.fn, d8)
	}

	// 0x04 - 0x3D - INC r, DEC r
	for i, o := range operandIndex {
		defineReadModifyWrite(DefineInstruction, 0x04+uint8(i)<<3, "INC", (*CPU).increment, o)
		defineReadModifyWrite(DefineInstruction, 0x05+uint8(i)<<3, "DEC", (*CPU).decrement, o)
	}

	for i, r := range []Reg{RegBC, RegDE, RegHL, RegSP} {
		defineIncrement16(0x03+uint8(i)<<4, "INC", r, 1)
		defineIncrement16(0x0B+uint8(i)<<4, "DEC", r, 0xFFFF)
		defineAddHL(0x09+uint8(i)<<4, r)
	}

	DefineInstruction(0xE8, "ADD", func(c *CPU) {
		c.SP = c.addSPSigned(c.readOperand())
	}, reg(RegSP), s8)
}

// defineIncrement16 defines a 16-bit increment or decrement, which does
// not affect the flags.
//
//	INC nn, DEC nn
//	nn = BC, DE, HL, SP
func defineIncrement16(opcode uint8, mnemonic string, r Reg, delta uint16) {
	mustPair(reg(r))
	DefineInstruction(opcode, mnemonic, func(c *CPU) {
		c.setPair(r, c.pair(r)+delta)
	}, reg(r))
}

func defineAddHL(opcode uint8, r Reg) {
	mustPair(reg(r))
	DefineInstruction(opcode, "ADD", func(c *CPU) {
		c.addHL(c.pair(r))
	}, reg(RegHL), reg(r))
}
