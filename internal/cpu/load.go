package cpu

// defineLoad defines an 8-bit load from src into dst. Loads do not
// affect the flags.
//
//	LD dst, src
func defineLoad(opcode uint8, mnemonic string, dst, src Operand) {
	mustWrite8(dst)
	mustRead8(src)
	if dst.memory() && src.memory() {
		panic("memory to memory loads are not encodable")
	}

	DefineInstruction(opcode, mnemonic, func(c *CPU) {
		dst.write8(c, src.read8(c))
	}, dst, src)
}

// defineLoad16 defines a 16-bit load from src into dst.
//
//	LD nn, d16
//	nn = BC, DE, HL, SP
func defineLoad16(opcode uint8, dst, src Operand) {
	if !(dst.Mode == ModeRegister && dst.Reg.Wide() || dst.Mode == ModeAbsolute) {
		panic("operand " + dst.String() + " is not a 16-bit destination")
	}
	if !src.wordSized() {
		panic("operand " + src.String() + " is not a 16-bit source")
	}

	DefineInstruction(opcode, "LD", func(c *CPU) {
		dst.write16(c, src.read16(c))
	}, dst, src)
}

func init() {
	// 0x40 - 0x7F - LD r, r' (0x76 is HALT)
	for i, dst := range operandIndex {
		for j, src := range operandIndex {
			opcode := 0x40 + uint8(i)<<3 + uint8(j)
			if opcode == 0x76 {
				continue
			}
			defineLoad(opcode, "LD", dst, src)
		}
	}

	// 0x06 - 0x3E - LD r, d8
	for i, dst := range operandIndex {
		defineLoad(0x06+uint8(i)<<3, "LD", dst, d8)
	}

	defineLoad(0x02, "LD", indirect(RegBC), reg(RegA))
	defineLoad(0x12, "LD", indirect(RegDE), reg(RegA))
	defineLoad(0x22, "LD", indHLI, reg(RegA))
	defineLoad(0x32, "LD", indHLD, reg(RegA))
	defineLoad(0x0A, "LD", reg(RegA), indirect(RegBC))
	defineLoad(0x1A, "LD", reg(RegA), indirect(RegDE))
	defineLoad(0x2A, "LD", reg(RegA), indHLI)
	defineLoad(0x3A, "LD", reg(RegA), indHLD)

	defineLoad(0xE0, "LDH", zp, reg(RegA))
	defineLoad(0xF0, "LDH", reg(RegA), zp)
	defineLoad(0xE2, "LD", zpC, reg(RegA))
	defineLoad(0xF2, "LD", reg(RegA), zpC)
	defineLoad(0xEA, "LD", abs, reg(RegA))
	defineLoad(0xFA, "LD", reg(RegA), abs)

	// 0x01 - 0x31 - LD rr, d16
	for i, r := range []Reg{RegBC, RegDE, RegHL, RegSP} {
		defineLoad16(0x01+uint8(i)<<4, reg(r), d16)
	}
	defineLoad16(0x08, abs, reg(RegSP))
	defineLoad16(0xF9, reg(RegSP), reg(RegHL))

	DefineInstruction(0xF8, "LD", func(c *CPU) {
		c.HL.SetUint16(c.addSPSigned(c.readOperand()))
	}, reg(RegHL), spr8)
}
