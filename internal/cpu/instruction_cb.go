package cpu

import (
	"fmt"

	"github.com/thelolagemann/dmgcore/pkg/bits"
)

// shiftOperations is ordered by the encoding of opcodes CB 0x00 - CB 0x3F.
var shiftOperations = [8]struct {
	mnemonic string
	fn       func(*CPU, uint8) uint8
}{
	{"RLC", (*CPU).rotateLeftCarry},
	{"RRC", (*CPU).rotateRightCarry},
	{"RL", (*CPU).rotateLeftThroughCarry},
	{"RR", (*CPU).rotateRightThroughCarry},
	{"SLA", (*CPU).shiftLeftArithmetic},
	{"SRA", (*CPU).shiftRightArithmetic},
	{"SWAP", (*CPU).swap},
	{"SRL", (*CPU).shiftRightLogical},
}

// testBit tests the bit at the given index of n.
//
//	BIT b, n
//	b = 0-7
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if bit b of n is 0.
//	N - Reset.
//	H - Set.
//	C - Not affected.
func (c *CPU) testBit(n uint8, index uint8) {
	c.setFlags(!bits.Test(n, index), false, true, c.isFlagSet(FlagCarry))
}

func defineBit(opcode uint8, index uint8, o Operand) {
	mustRead8(o)
	DefineInstructionCB(opcode, "BIT", func(c *CPU) {
		c.testBit(o.read8(c), index)
	}, literal(fmt.Sprint(index)), o)
}

func init() {
	for i, op := range shiftOperations {
		for j, o := range operandIndex {
			defineReadModifyWrite(DefineInstructionCB, uint8(i)<<3+uint8(j), op.mnemonic, op.fn, o)
		}
	}

	for index := uint8(0); index < 8; index++ {
		index := index
		// RES b, n and SET b, n do not affect the flags
		reset := func(_ *CPU, n uint8) uint8 { return bits.Reset(n, index) }
		set := func(_ *CPU, n uint8) uint8 { return bits.Set(n, index) }
		arg := literal(fmt.Sprint(index))

		for j, o := range operandIndex {
			defineBit(0x40+index<<3+uint8(j), index, o)
			defineReadModifyWrite(DefineInstructionCB, 0x80+index<<3+uint8(j), "RES", reset, o, arg)
			defineReadModifyWrite(DefineInstructionCB, 0xC0+index<<3+uint8(j), "SET", set, o, arg)
		}
	}
}
