package cpu

import (
	"fmt"

	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/utils"
)

// Reg names a register operand.
type Reg uint8

const (
	RegA Reg = iota
	RegB
	RegC
	RegD
	RegE
	RegH
	RegL

	// 16-bit registers
	RegAF
	RegBC
	RegDE
	RegHL
	RegSP
)

var regNames = [...]string{"A", "B", "C", "D", "E", "H", "L", "AF", "BC", "DE", "HL", "SP"}

func (r Reg) String() string {
	if int(r) < len(regNames) {
		return regNames[r]
	}
	return fmt.Sprintf("Reg(%d)", r)
}

// Wide reports whether r is a 16-bit register.
func (r Reg) Wide() bool {
	return r >= RegAF
}

// Mode is the addressing mode of an Operand.
type Mode uint8

const (
	ModeRegister    Mode = iota // r, rr
	ModeImmediate8              // d8
	ModeImmediate16             // d16
	ModeAddress                 // a16, a jump target
	ModeIndirectHL              // (HL)
	ModeIndirectHLI             // (HL+)
	ModeIndirectHLD             // (HL-)
	ModeIndirect                // (BC), (DE)
	ModeZeroPage                // (a8), 0xFF00+a8
	ModeZeroPageC               // (C), 0xFF00+C
	ModeAbsolute                // (a16)
	ModeRelative                // r8, relative to the next instruction
	ModeSigned8                 // r8, added to SP
	ModeStackOffset             // SP+r8
)

// Operand describes an operand of an instruction: where its value is
// read from or written to, and how many bytes it adds to the encoding.
type Operand struct {
	Mode Mode
	Reg  Reg
}

func reg(r Reg) Operand {
	return Operand{Mode: ModeRegister, Reg: r}
}

func indirect(r Reg) Operand {
	return Operand{Mode: ModeIndirect, Reg: r}
}

var (
	d8     = Operand{Mode: ModeImmediate8}
	d16    = Operand{Mode: ModeImmediate16}
	a16    = Operand{Mode: ModeAddress}
	r8     = Operand{Mode: ModeRelative}
	s8     = Operand{Mode: ModeSigned8}
	spr8   = Operand{Mode: ModeStackOffset}
	indHL  = Operand{Mode: ModeIndirectHL}
	indHLI = Operand{Mode: ModeIndirectHLI}
	indHLD = Operand{Mode: ModeIndirectHLD}
	zpC    = Operand{Mode: ModeZeroPageC}
	zp     = Operand{Mode: ModeZeroPage}
	abs    = Operand{Mode: ModeAbsolute}
)

// operandIndex is ordered by the 3-bit register encoding of the opcodes.
var operandIndex = [8]Operand{
	reg(RegB), reg(RegC), reg(RegD), reg(RegE), reg(RegH), reg(RegL), indHL, reg(RegA),
}

// Size returns the number of bytes the operand occupies in the encoding.
func (o Operand) Size() uint8 {
	switch o.Mode {
	case ModeImmediate8, ModeZeroPage, ModeRelative, ModeSigned8, ModeStackOffset:
		return 1
	case ModeImmediate16, ModeAddress, ModeAbsolute:
		return 2
	}
	return 0
}

// String returns the operand as it appears in an instruction name.
func (o Operand) String() string {
	switch o.Mode {
	case ModeRegister:
		return o.Reg.String()
	case ModeImmediate8:
		return "d8"
	case ModeImmediate16:
		return "d16"
	case ModeAddress:
		return "a16"
	case ModeIndirectHL:
		return "(HL)"
	case ModeIndirectHLI:
		return "(HL+)"
	case ModeIndirectHLD:
		return "(HL-)"
	case ModeIndirect:
		return "(" + o.Reg.String() + ")"
	case ModeZeroPage:
		return "(a8)"
	case ModeZeroPageC:
		return "(C)"
	case ModeAbsolute:
		return "(a16)"
	case ModeRelative, ModeSigned8:
		return "r8"
	case ModeStackOffset:
		return "SP+r8"
	}
	return fmt.Sprintf("Mode(%d)", o.Mode)
}

// format renders the operand with its encoded bytes. next is the address
// of the following instruction.
func (o Operand) format(b []byte, next uint16) string {
	switch o.Mode {
	case ModeImmediate8:
		return fmt.Sprintf("$%02X", b[0])
	case ModeImmediate16, ModeAddress:
		return fmt.Sprintf("$%04X", utils.BytesToUint16(b[1], b[0]))
	case ModeZeroPage:
		return fmt.Sprintf("($FF%02X)", b[0])
	case ModeAbsolute:
		return fmt.Sprintf("($%04X)", utils.BytesToUint16(b[1], b[0]))
	case ModeRelative:
		return fmt.Sprintf("$%04X", next+uint16(int8(b[0])))
	case ModeSigned8:
		return signed(b[0])
	case ModeStackOffset:
		if int8(b[0]) < 0 {
			return "SP" + signed(b[0])
		}
		return "SP+" + signed(b[0])
	}
	return o.String()
}

func signed(v uint8) string {
	if int8(v) < 0 {
		return fmt.Sprintf("-$%02X", uint8(-int8(v)))
	}
	return fmt.Sprintf("$%02X", v)
}

// memory reports whether the operand addresses memory.
func (o Operand) memory() bool {
	switch o.Mode {
	case ModeIndirectHL, ModeIndirectHLI, ModeIndirectHLD, ModeIndirect, ModeZeroPage, ModeZeroPageC, ModeAbsolute:
		return true
	}
	return false
}

// byteSized reports whether the operand holds an 8-bit value.
func (o Operand) byteSized() bool {
	return o.Mode == ModeRegister && !o.Reg.Wide() || o.Mode == ModeImmediate8 || o.memory()
}

// wordSized reports whether the operand holds a 16-bit value.
func (o Operand) wordSized() bool {
	return o.Mode == ModeRegister && o.Reg.Wide() || o.Mode == ModeImmediate16 || o.Mode == ModeAddress
}

// writable reports whether a value can be stored to the operand.
func (o Operand) writable() bool {
	return o.Mode == ModeRegister || o.memory()
}

// address returns the memory address of a memory operand, fetching its
// immediate bytes if it has any.
func (o Operand) address(c *CPU) uint16 {
	switch o.Mode {
	case ModeIndirectHL, ModeIndirectHLI, ModeIndirectHLD:
		return c.HL.Uint16()
	case ModeIndirect:
		return c.pair(o.Reg)
	case ModeZeroPage:
		return types.HighPage + uint16(c.readOperand())
	case ModeZeroPageC:
		return types.HighPage + uint16(c.C)
	case ModeAbsolute:
		return c.readOperand16()
	}
	panic(fmt.Sprintf("operand %s does not address memory", o))
}

// advance applies the post increment or decrement of HL.
func (o Operand) advance(c *CPU) {
	switch o.Mode {
	case ModeIndirectHLI:
		c.HL.SetUint16(c.HL.Uint16() + 1)
	case ModeIndirectHLD:
		c.HL.SetUint16(c.HL.Uint16() - 1)
	}
}

func (o Operand) read8(c *CPU) uint8 {
	switch o.Mode {
	case ModeRegister:
		return *c.register(o.Reg)
	case ModeImmediate8:
		return c.readOperand()
	}
	value := c.readByte(o.address(c))
	o.advance(c)
	return value
}

func (o Operand) write8(c *CPU, value uint8) {
	if o.Mode == ModeRegister {
		*c.register(o.Reg) = value
		return
	}
	c.writeByte(o.address(c), value)
	o.advance(c)
}

func (o Operand) read16(c *CPU) uint16 {
	switch o.Mode {
	case ModeRegister:
		return c.pair(o.Reg)
	case ModeImmediate16, ModeAddress:
		return c.readOperand16()
	}
	panic(fmt.Sprintf("operand %s is not a 16-bit source", o))
}

func (o Operand) write16(c *CPU, value uint16) {
	switch o.Mode {
	case ModeRegister:
		c.setPair(o.Reg, value)
	case ModeAbsolute:
		c.write16(c.readOperand16(), value)
	default:
		panic(fmt.Sprintf("operand %s is not a 16-bit destination", o))
	}
}

// mustRead8 panics unless o can be read as an 8-bit value.
func mustRead8(o Operand) {
	if !o.byteSized() {
		panic(fmt.Sprintf("operand %s is not an 8-bit source", o))
	}
}

// mustWrite8 panics unless o can be written as an 8-bit value.
func mustWrite8(o Operand) {
	if !o.byteSized() || !o.writable() {
		panic(fmt.Sprintf("operand %s is not an 8-bit destination", o))
	}
}

// mustPair panics unless o is a 16-bit register.
func mustPair(o Operand) {
	if o.Mode != ModeRegister || !o.Reg.Wide() {
		panic(fmt.Sprintf("operand %s is not a 16-bit register", o))
	}
}
