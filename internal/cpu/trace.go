package cpu

import (
	"fmt"
	"io"
	"strings"
)

// Trace is the record of a single executed instruction.
type Trace struct {
	// PC is the address of the instruction.
	PC       uint16
	Opcode   uint8
	Prefixed bool
	// Operands holds the bytes following the opcode.
	Operands []byte
	// Name is the instruction with its operands rendered.
	Name string
	// NextPC is the value of PC after the instruction.
	NextPC uint16
}

// TraceFunc receives the Trace of every executed instruction.
type TraceFunc func(Trace)

// Bytes returns the encoding of the instruction.
func (t Trace) Bytes() []byte {
	b := make([]byte, 0, 3)
	if t.Prefixed {
		b = append(b, prefixCB)
	}
	b = append(b, t.Opcode)
	return append(b, t.Operands...)
}

// String formats the trace as a line of disassembly, e.g.
//
//	0150: 3E 12     LD A, $12
func (t Trace) String() string {
	encoded := make([]string, 0, 3)
	for _, b := range t.Bytes() {
		encoded = append(encoded, fmt.Sprintf("%02X", b))
	}
	return fmt.Sprintf("%04X: %-9s %s", t.PC, strings.Join(encoded, " "), t.Name)
}

// Disassemble decodes the instruction at the start of code, as if it
// were located at pc. NextPC of the returned Trace is the address of the
// following instruction.
func Disassemble(pc uint16, code []byte) (Trace, error) {
	if len(code) == 0 {
		return Trace{}, io.ErrUnexpectedEOF
	}

	t := Trace{PC: pc, Opcode: code[0]}
	n := 1
	if t.Opcode == prefixCB {
		if len(code) < 2 {
			return Trace{}, io.ErrUnexpectedEOF
		}
		t.Prefixed = true
		t.Opcode = code[1]
		n = 2
	}

	instruction, ok := Decode(t.Prefixed, t.Opcode)
	if !ok {
		return t, fmt.Errorf("%w: %02X at %04X", ErrIllegalOpcode, t.Opcode, pc)
	}
	length := int(instruction.Length())
	if len(code) < length {
		return t, io.ErrUnexpectedEOF
	}

	t.Operands = append([]byte(nil), code[n:length]...)
	t.Name = instruction.render(t.Operands, pc)
	t.NextPC = pc + uint16(length)
	return t, nil
}
