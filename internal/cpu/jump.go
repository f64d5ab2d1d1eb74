package cpu

import (
	"fmt"

	"github.com/thelolagemann/dmgcore/internal/mmu"
	"github.com/thelolagemann/dmgcore/internal/types"
)

// inStack reports whether the address may hold the stack, which must lie
// in work RAM or high RAM.
func inStack(address uint16) bool {
	return address >= types.WRAM && address < types.Echo || address >= types.HRAM
}

// checkStack records a fault unless both bytes of the word at address are
// in the stack regions.
func (c *CPU) checkStack(address uint16, access mmu.Access) bool {
	if c.fault != nil {
		return false
	}
	for _, a := range [2]uint16{address, address + 1} {
		if !inStack(a) {
			c.stackFault(a, access)
			return false
		}
	}
	return true
}

// stackFault records an ErrStackBounds fault at address.
func (c *CPU) stackFault(address uint16, access mmu.Access) {
	if c.fault == nil {
		c.fault = &mmu.Fault{Address: address, Access: access, Region: c.bus.Region(address).Name, Err: ErrStackBounds}
	}
}

// push decrements SP by 2 and writes value to the top of the stack. SP
// never wraps below 0x0000.
func (c *CPU) push(value uint16) {
	if c.SP < 2 {
		c.stackFault(0x0000, mmu.AccessWrite)
	}
	c.SP -= 2
	if c.checkStack(c.SP, mmu.AccessWrite) {
		c.write16(c.SP, value)
	}
}

// pop reads the value at the top of the stack and increments SP by 2. SP
// never wraps above 0xFFFF.
func (c *CPU) pop() uint16 {
	if uint32(c.SP)+2 > 0x10000 {
		c.stackFault(c.SP+2, mmu.AccessRead)
	}
	var value uint16
	if c.checkStack(c.SP, mmu.AccessRead) {
		value = c.read16(c.SP)
	}
	c.SP += 2
	return value
}

// call pushes the address of the next instruction onto the stack and jumps to
// the given address.
//
//	CALL nn
//	nn = 16-bit immediate value
func (c *CPU) call(address uint16) {
	c.push(c.PC)
	c.PC = address
}

// ret pops the return address off the stack and jumps to it.
//
//	RET
func (c *CPU) ret() {
	c.PC = c.pop()
}

// jumpRelative jumps to the address relative to the current PC, which
// already points to the next instruction.
//
//	JR e
//	e = 8-bit signed immediate value
func (c *CPU) jumpRelative(offset uint8) {
	c.PC += uint16(int8(offset))
}

func defineJump(opcode uint8, cc *Condition) {
	execute := func(c *CPU) {
		address := c.readOperand16()
		if cc == nil || c.test(*cc) {
			c.PC = address
		}
	}
	defineConditional(opcode, "JP", execute, cc, a16)
}

func defineJumpRelative(opcode uint8, cc *Condition) {
	execute := func(c *CPU) {
		offset := c.readOperand()
		if cc == nil || c.test(*cc) {
			c.jumpRelative(offset)
		}
	}
	defineConditional(opcode, "JR", execute, cc, r8)
}

func defineCall(opcode uint8, cc *Condition) {
	execute := func(c *CPU) {
		address := c.readOperand16()
		if cc == nil || c.test(*cc) {
			c.call(address)
		}
	}
	defineConditional(opcode, "CALL", execute, cc, a16)
}

func defineReturn(opcode uint8, cc *Condition) {
	execute := func(c *CPU) {
		if cc == nil || c.test(*cc) {
			c.ret()
		}
	}
	defineConditional(opcode, "RET", execute, cc)
}

// defineConditional defines an instruction that is unconditional when cc
// is nil.
func defineConditional(opcode uint8, mnemonic string, fn func(*CPU), cc *Condition, args ...fmt.Stringer) {
	if cc != nil {
		args = append([]fmt.Stringer{*cc}, args...)
	}
	DefineInstruction(opcode, mnemonic, fn, args...)
}

func definePush(opcode uint8, r Reg) {
	mustPair(reg(r))
	DefineInstruction(opcode, "PUSH", func(c *CPU) {
		c.push(c.pair(r))
	}, reg(r))
}

func definePop(opcode uint8, r Reg) {
	mustPair(reg(r))
	DefineInstruction(opcode, "POP", func(c *CPU) {
		c.setPair(r, c.pop())
	}, reg(r))
}

// defineRestart defines a call to one of the fixed vectors in page zero.
//
//	RST n
//	n = 0x00, 0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38
func defineRestart(opcode uint8, vector uint16) {
	DefineInstruction(opcode, "RST", func(c *CPU) {
		c.call(vector)
	}, literal(fmt.Sprintf("$%02X", vector)))
}

func init() {
	defineJump(0xC3, nil)
	defineJumpRelative(0x18, nil)
	defineCall(0xCD, nil)
	defineReturn(0xC9, nil)
	for i := range conditions {
		cc := &conditions[i]
		defineJump(0xC2+uint8(i)<<3, cc)
		defineJumpRelative(0x20+uint8(i)<<3, cc)
		defineCall(0xC4+uint8(i)<<3, cc)
		defineReturn(0xC0+uint8(i)<<3, cc)
	}

	DefineInstruction(0xE9, "JP", func(c *CPU) { c.PC = c.HL.Uint16() }, reg(RegHL))
	DefineInstruction(0xD9, "RETI", func(c *CPU) {
		c.ret()
		c.IME = true
	})

	for i, r := range []Reg{RegBC, RegDE, RegHL, RegAF} {
		definePush(0xC5+uint8(i)<<4, r)
		definePop(0xC1+uint8(i)<<4, r)
	}

	for i := uint16(0); i < 8; i++ {
		defineRestart(0xC7+uint8(i)<<3, i<<3)
	}
}
