package z80

import "github.com/jetsetilly/clocksignal/clock"

// executeIndexed handles the DD/FD-prefixed forms that redirect HL-based
// addressing through IX or IY. Only the commonly generated subset (16-bit
// load/arithmetic, (index+d) byte load/store and ALU, PUSH/POP, JP
// (index), EX (SP),index) is special-cased; any opcode outside that set
// falls through to the unprefixed dispatcher unchanged, which is the
// same behaviour real hardware shows for the large space of DD/FD
// combinations nobody's assembler ever emits. The indexed CB-prefixed
// bit/rotate/shift forms (DD CB d op) are not implemented.
func (c *Core) executeIndexed(index *uint16) clock.HalfCycles {
	opcode := c.fetch8()

	switch opcode {
	case 0x21: // LD index,nn
		*index = c.fetch16()
		return cyclesToHalf(14)
	case 0x22: // LD (nn),index
		addr := c.fetch16()
		c.Bus.WriteMem(addr, uint8(*index))
		c.Bus.WriteMem(addr+1, uint8(*index>>8))
		return cyclesToHalf(20)
	case 0x2a: // LD index,(nn)
		addr := c.fetch16()
		lo := c.Bus.ReadMem(addr)
		hi := c.Bus.ReadMem(addr + 1)
		*index = uint16(hi)<<8 | uint16(lo)
		return cyclesToHalf(20)
	case 0x23: // INC index
		*index++
		return cyclesToHalf(10)
	case 0x2b: // DEC index
		*index--
		return cyclesToHalf(10)
	case 0x09, 0x19, 0x29, 0x39: // ADD index,rp
		p := (opcode >> 4) & 3
		var rp uint16
		if p == 2 {
			rp = *index
		} else {
			rp = c.readRP(p)
		}
		*index = c.add16(*index, rp)
		return cyclesToHalf(15)
	case 0x34, 0x35, 0x36: // INC/DEC/LD (index+d)
		d := int8(c.fetch8())
		addr := uint16(int32(*index) + int32(d))
		switch opcode {
		case 0x34:
			c.Bus.WriteMem(addr, c.inc8(c.Bus.ReadMem(addr)))
			return cyclesToHalf(23)
		case 0x35:
			c.Bus.WriteMem(addr, c.dec8(c.Bus.ReadMem(addr)))
			return cyclesToHalf(23)
		default:
			n := c.fetch8()
			c.Bus.WriteMem(addr, n)
			return cyclesToHalf(19)
		}
	case 0xe1: // POP index
		*index = c.pop16()
		return cyclesToHalf(14)
	case 0xe5: // PUSH index
		c.push16(*index)
		return cyclesToHalf(15)
	case 0xe9: // JP (index)
		c.PC = *index
		return cyclesToHalf(8)
	case 0xf9: // LD SP,index
		c.SP = *index
		return cyclesToHalf(10)
	case 0xe3: // EX (SP),index
		lo := c.Bus.ReadMem(c.SP)
		hi := c.Bus.ReadMem(c.SP + 1)
		c.Bus.WriteMem(c.SP, uint8(*index))
		c.Bus.WriteMem(c.SP+1, uint8(*index>>8))
		*index = uint16(hi)<<8 | uint16(lo)
		return cyclesToHalf(23)
	}

	if opcode >= 0x46 && opcode <= 0x7e && opcode != 0x76 && (opcode&7) == 6 {
		// LD r,(index+d)
		d := int8(c.fetch8())
		addr := uint16(int32(*index) + int32(d))
		y := (opcode >> 3) & 7
		c.writeReg8(y, c.Bus.ReadMem(addr))
		return cyclesToHalf(19)
	}
	if opcode >= 0x70 && opcode <= 0x77 && opcode != 0x76 {
		// LD (index+d),r
		d := int8(c.fetch8())
		addr := uint16(int32(*index) + int32(d))
		z := opcode & 7
		c.Bus.WriteMem(addr, c.readReg8(z))
		return cyclesToHalf(19)
	}
	if opcode >= 0x86 && opcode <= 0xbe && (opcode&7) == 6 {
		// ALU A,(index+d)
		d := int8(c.fetch8())
		addr := uint16(int32(*index) + int32(d))
		y := (opcode >> 3) & 7
		c.aluOp(y, c.Bus.ReadMem(addr))
		return cyclesToHalf(19)
	}

	return c.execute(opcode)
}
