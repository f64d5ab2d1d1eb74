// Package cpu implements the instruction-set interpreter of the CPU. The
// interpreter executes one instruction at a time against a memory Bus,
// with the logical semantics of each instruction (registers, flags,
// memory effects and control flow) but without cycle timing.
package cpu

import (
	"context"
	"fmt"

	"github.com/thelolagemann/dmgcore/internal/mmu"
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/log"
	"github.com/thelolagemann/dmgcore/pkg/utils"
)

// prefixCB escapes into the extended instruction table.
const prefixCB = 0xCB

type (
	Register     = types.Register
	RegisterPair = types.RegisterPair
	Registers    = types.Registers
)

// Bus is the memory the CPU executes against. It is satisfied by
// *mmu.MMU.
type Bus interface {
	Read(address uint16) (uint8, error)
	Write(address uint16, value uint8) error
	Read16(address uint16) (uint16, error)
	Write16(address uint16, value uint16) error
	LoadFixedBank(bank []byte) error
	Region(address uint16) mmu.Region
	Dump() []byte
}

// CPU represents the Gameboy CPU. It is responsible for executing instructions.
type CPU struct {
	// PC is the program counter, it points to the next instruction to be executed.
	PC uint16
	// SP is the stack pointer, it points to the top of the stack.
	SP uint16
	// Registers contains the 8-bit registers, as well as the 16-bit register pairs.
	Registers
	// IME is the interrupt master enable flag. It is only recorded, as
	// there is no interrupt controller.
	IME bool

	bus   Bus
	log   log.Logger
	trace TraceFunc

	// fault is the first bus error of the current instruction. Once set,
	// the remaining bus accesses of the instruction are skipped.
	fault error
	// operands holds the operand bytes fetched by the current instruction.
	operands []byte

	steps uint64
	err   error
}

// Opt is a function that configures a CPU.
type Opt func(c *CPU)

// WithLogger sets the logger used by the CPU.
func WithLogger(l log.Logger) Opt {
	return func(c *CPU) {
		c.log = l
	}
}

// WithTracer sets a function to receive a Trace of every executed
// instruction.
func WithTracer(fn TraceFunc) Opt {
	return func(c *CPU) {
		c.trace = fn
	}
}

// NewCPU creates a new CPU instance with the given Bus, in its power-on
// state.
func NewCPU(bus Bus, opts ...Opt) *CPU {
	c := &CPU{
		PC:       0x0100,
		SP:       0xFFFE,
		bus:      bus,
		log:      log.NewNullLogger(),
		operands: make([]byte, 0, 2),
	}
	// create register pairs
	c.Registers.Pair()

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Steps returns the number of instructions executed.
func (c *CPU) Steps() uint64 {
	return c.steps
}

// Halted reports whether the CPU has entered its terminal state. Once
// halted, a CPU can not be resumed.
func (c *CPU) Halted() bool {
	return c.err != nil
}

// Err returns the error that halted the CPU, if any.
func (c *CPU) Err() error {
	return c.err
}

// Run loads the fixed bank from rom and executes instructions until a
// fault occurs or ctx is done. The context is checked between
// instructions, so the last instruction always completes.
func (c *CPU) Run(ctx context.Context, rom []byte) error {
	if len(rom) < types.BankSize {
		return fmt.Errorf("%w: %d bytes", ErrROMTooSmall, len(rom))
	}
	if err := c.bus.LoadFixedBank(rom[:types.BankSize]); err != nil {
		return err
	}
	c.log.Debugf("starting execution at %04X", c.PC)

	done := ctx.Done()
	for {
		select {
		case <-done:
			return c.halt(fmt.Errorf("%w: %w", ErrStopped, ctx.Err()))
		default:
		}

		if err := c.Step(); err != nil {
			return err
		}
	}
}

// Step fetches, decodes and executes a single instruction. If the
// instruction faults, the registers are restored to their values before
// the instruction, and the CPU halts with a *Fault.
func (c *CPU) Step() error {
	if c.err != nil {
		return ErrHalted
	}

	saved := c.snapshot()
	c.fault = nil
	c.operands = c.operands[:0]

	opcode := c.readByte(c.PC)
	c.PC++
	if c.fault != nil {
		return c.abortFetch(saved, c.fault)
	}
	prefixed := false
	if opcode == prefixCB {
		next := c.readByte(c.PC)
		c.PC++
		if c.fault != nil {
			// only the prefix was read
			return c.abort(saved, opcode, false, c.fault)
		}
		prefixed = true
		opcode = next
	}

	instruction, ok := Decode(prefixed, opcode)
	if !ok {
		return c.abort(saved, opcode, prefixed, ErrIllegalOpcode)
	}

	instruction.fn(c)
	if c.fault != nil {
		return c.abort(saved, opcode, prefixed, c.fault)
	}
	c.steps++

	if c.trace != nil {
		c.trace(Trace{
			PC:       saved.pc,
			Opcode:   opcode,
			Prefixed: prefixed,
			Operands: append([]byte(nil), c.operands...),
			Name:     instruction.render(c.operands, saved.pc),
			NextPC:   c.PC,
		})
	}

	return nil
}

// abort rolls the registers back to saved and halts with a Fault.
func (c *CPU) abort(saved snapshot, opcode uint8, prefixed bool, err error) error {
	return c.fail(saved, &Fault{
		PC:       saved.pc,
		Opcode:   opcode,
		Prefixed: prefixed,
		Fetched:  true,
		Err:      err,
	})
}

// abortFetch halts with a Fault for an opcode that could not be read.
func (c *CPU) abortFetch(saved snapshot, err error) error {
	return c.fail(saved, &Fault{PC: saved.pc, Err: err})
}

func (c *CPU) fail(saved snapshot, f *Fault) error {
	c.restore(saved)
	f.Dump = c.bus.Dump()
	c.log.Debugf("%v", f)
	return c.halt(f)
}

func (c *CPU) halt(err error) error {
	c.err = err
	return err
}

type snapshot struct {
	// the pairs point into the CPU, so a copy restores the 8-bit
	// registers without detaching the pairs
	regs   Registers
	pc, sp uint16
	ime    bool
}

func (c *CPU) snapshot() snapshot {
	return snapshot{regs: c.Registers, pc: c.PC, sp: c.SP, ime: c.IME}
}

func (c *CPU) restore(s snapshot) {
	c.Registers = s.regs
	c.PC = s.pc
	c.SP = s.sp
	c.IME = s.ime
}

// readOperand reads the next operand byte from memory, advancing PC.
func (c *CPU) readOperand() uint8 {
	value := c.readByte(c.PC)
	c.PC++
	c.operands = append(c.operands, value)
	return value
}

// readOperand16 reads the next two operand bytes as a little-endian
// 16-bit value.
func (c *CPU) readOperand16() uint16 {
	low := c.readOperand()
	high := c.readOperand()
	return utils.BytesToUint16(high, low)
}

// readByte reads a byte from memory.
func (c *CPU) readByte(address uint16) uint8 {
	if c.fault != nil {
		return 0
	}
	value, err := c.bus.Read(address)
	if err != nil {
		c.fault = err
		return 0
	}
	return value
}

// writeByte writes the given value to the given address.
func (c *CPU) writeByte(address uint16, value uint8) {
	if c.fault != nil {
		return
	}
	if err := c.bus.Write(address, value); err != nil {
		c.fault = err
	}
}

func (c *CPU) read16(address uint16) uint16 {
	if c.fault != nil {
		return 0
	}
	value, err := c.bus.Read16(address)
	if err != nil {
		c.fault = err
		return 0
	}
	return value
}

func (c *CPU) write16(address uint16, value uint16) {
	if c.fault != nil {
		return
	}
	if err := c.bus.Write16(address, value); err != nil {
		c.fault = err
	}
}

// register returns a pointer to the 8-bit Register r.
func (c *CPU) register(r Reg) *Register {
	switch r {
	case RegA:
		return &c.A
	case RegB:
		return &c.B
	case RegC:
		return &c.C
	case RegD:
		return &c.D
	case RegE:
		return &c.E
	case RegH:
		return &c.H
	case RegL:
		return &c.L
	}
	panic(fmt.Sprintf("invalid 8-bit register: %s", r))
}

// pair returns the value of the 16-bit register r.
func (c *CPU) pair(r Reg) uint16 {
	switch r {
	case RegAF:
		return c.AF.Uint16()
	case RegBC:
		return c.BC.Uint16()
	case RegDE:
		return c.DE.Uint16()
	case RegHL:
		return c.HL.Uint16()
	case RegSP:
		return c.SP
	}
	panic(fmt.Sprintf("invalid 16-bit register: %s", r))
}

// setPair sets the value of the 16-bit register r. The low nibble of F
// always reads as zero.
func (c *CPU) setPair(r Reg, value uint16) {
	switch r {
	case RegAF:
		c.AF.SetUint16(value & 0xFFF0)
	case RegBC:
		c.BC.SetUint16(value)
	case RegDE:
		c.DE.SetUint16(value)
	case RegHL:
		c.HL.SetUint16(value)
	case RegSP:
		c.SP = value
	default:
		panic(fmt.Sprintf("invalid 16-bit register: %s", r))
	}
}
