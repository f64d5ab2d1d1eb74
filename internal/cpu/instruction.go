package cpu

import (
	"fmt"
	"strings"
)

// Instruction is a decoded instruction: its name, the operands that
// follow the opcode, and the function executing it.
type Instruction struct {
	name     string
	mnemonic string
	args     []fmt.Stringer
	length   uint8
	fn       func(*CPU)
}

// Name returns the name of the instruction, e.g. "LD A, d8".
func (i Instruction) Name() string {
	return i.name
}

// Length returns the number of bytes the instruction occupies, including
// the prefix for extended instructions.
func (i Instruction) Length() uint8 {
	return i.length
}

// render returns the name of the instruction with its operands
// substituted by the given encoded bytes.
func (i Instruction) render(data []byte, pc uint16) string {
	if len(i.args) == 0 {
		return i.mnemonic
	}

	next := pc + uint16(i.length)
	args := make([]string, len(i.args))
	for j, arg := range i.args {
		if o, ok := arg.(Operand); ok && o.Size() > 0 && len(data) >= int(o.Size()) {
			args[j] = o.format(data, next)
			data = data[o.Size():]
			continue
		}
		args[j] = arg.String()
	}
	return i.mnemonic + " " + strings.Join(args, ", ")
}

// literal is an instruction argument that is part of the opcode, such as
// the bit index of BIT or the vector of RST.
type literal string

func (l literal) String() string {
	return string(l)
}

// InstructionSet holds the primary instructions, indexed by opcode.
var InstructionSet [256]Instruction

// InstructionSetCB holds the extended instructions, indexed by the byte
// following the 0xCB prefix.
var InstructionSetCB [256]Instruction

func newInstruction(base uint8, mnemonic string, fn func(*CPU), args []fmt.Stringer) Instruction {
	instruction := Instruction{
		mnemonic: mnemonic,
		name:     mnemonic,
		args:     args,
		length:   base,
		fn:       fn,
	}
	if len(args) > 0 {
		names := make([]string, len(args))
		for i, arg := range args {
			names[i] = arg.String()
			if o, ok := arg.(Operand); ok {
				instruction.length += o.Size()
			}
		}
		instruction.name += " " + strings.Join(names, ", ")
	}
	return instruction
}

// DefineInstruction defines the instruction in the InstructionSet, with
// the provided opcode. The arguments make up the name of the instruction,
// and any Operand among them adds its size to the length.
func DefineInstruction(opcode uint8, mnemonic string, fn func(*CPU), args ...fmt.Stringer) {
	if opcode == prefixCB {
		panic("opcode CB is reserved for the extended instruction set")
	}
	if InstructionSet[opcode].fn != nil {
		panic(fmt.Sprintf("opcode %02X already defined as %s", opcode, InstructionSet[opcode].name))
	}
	InstructionSet[opcode] = newInstruction(1, mnemonic, fn, args)
}

// DefineInstructionCB defines the instruction in the InstructionSetCB,
// with the provided opcode.
func DefineInstructionCB(opcode uint8, mnemonic string, fn func(*CPU), args ...fmt.Stringer) {
	if InstructionSetCB[opcode].fn != nil {
		panic(fmt.Sprintf("opcode CB %02X already defined as %s", opcode, InstructionSetCB[opcode].name))
	}
	InstructionSetCB[opcode] = newInstruction(2, mnemonic, fn, args)
}

// Decode returns the instruction for the opcode, from the extended table
// when prefixed is set. The boolean is false for opcodes without an
// instruction.
func Decode(prefixed bool, opcode uint8) (Instruction, bool) {
	instruction := InstructionSet[opcode]
	if prefixed {
		instruction = InstructionSetCB[opcode]
	}
	return instruction, instruction.fn != nil
}
