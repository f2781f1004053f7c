package z80

import "github.com/jetsetilly/clocksignal/clock"

// execute dispatches one unprefixed opcode, decomposed into the
// x/y/z/p/q bitfields documented across the Z80 undocumented-opcode
// community (x = bits 7:6, y = bits 5:3, z = bits 2:0, p = y>>1, q =
// y&1) — a compact total ordering over the instruction set that avoids
// a 256-entry jump table while still reaching every documented opcode.
func (c *Core) execute(opcode uint8) clock.HalfCycles {
	switch opcode {
	case 0xcb:
		return c.executeCB(c.fetch8())
	case 0xed:
		return c.executeED(c.fetch8())
	case 0xdd:
		return c.executeIndexed(&c.IX)
	case 0xfd:
		return c.executeIndexed(&c.IY)
	}

	x := opcode >> 6
	y := (opcode >> 3) & 7
	z := opcode & 7
	p := y >> 1
	q := y & 1

	switch x {
	case 0:
		return c.executeX0(opcode, y, z, p, q)
	case 1:
		if y == reg8HL && z == reg8HL {
			c.Halted = true
			return cyclesToHalf(4)
		}
		c.writeReg8(y, c.readReg8(z))
		return cyclesToHalf(cost(y == reg8HL || z == reg8HL, 4, 7))
	case 2:
		c.aluOp(y, c.readReg8(z))
		return cyclesToHalf(cost(z == reg8HL, 4, 7))
	default: // x == 3
		return c.executeX3(opcode, y, z, p, q)
	}
}

func cost(memory bool, reg, mem int) int {
	if memory {
		return mem
	}
	return reg
}

func (c *Core) readReg8(n uint8) uint8 {
	switch n {
	case reg8B:
		return c.B
	case reg8C:
		return c.C
	case reg8D:
		return c.D
	case reg8E:
		return c.E
	case reg8H:
		return c.H
	case reg8L:
		return c.L
	case reg8HL:
		return c.Bus.ReadMem(c.HL())
	default:
		return c.A
	}
}

func (c *Core) writeReg8(n uint8, v uint8) {
	switch n {
	case reg8B:
		c.B = v
	case reg8C:
		c.C = v
	case reg8D:
		c.D = v
	case reg8E:
		c.E = v
	case reg8H:
		c.H = v
	case reg8L:
		c.L = v
	case reg8HL:
		c.Bus.WriteMem(c.HL(), v)
	default:
		c.A = v
	}
}

func (c *Core) readRP(p uint8) uint16 {
	switch p {
	case 0:
		return c.BC()
	case 1:
		return c.DE()
	case 2:
		return c.HL()
	default:
		return c.SP
	}
}

func (c *Core) writeRP(p uint8, v uint16) {
	switch p {
	case 0:
		c.SetBC(v)
	case 1:
		c.SetDE(v)
	case 2:
		c.SetHL(v)
	default:
		c.SP = v
	}
}

func (c *Core) readRP2(p uint8) uint16 {
	if p == 3 {
		return c.AF()
	}
	return c.readRP(p)
}

func (c *Core) writeRP2(p uint8, v uint16) {
	if p == 3 {
		c.SetAF(v)
		return
	}
	c.writeRP(p, v)
}

func (c *Core) testCC(cc uint8) bool {
	switch cc {
	case 0:
		return !c.Flag(FlagZ)
	case 1:
		return c.Flag(FlagZ)
	case 2:
		return !c.Flag(FlagC)
	case 3:
		return c.Flag(FlagC)
	case 4:
		return !c.Flag(FlagPV)
	case 5:
		return c.Flag(FlagPV)
	case 6:
		return !c.Flag(FlagS)
	default:
		return c.Flag(FlagS)
	}
}

func (c *Core) aluOp(op uint8, value uint8) {
	switch op {
	case 0:
		c.addA(value, 0)
	case 1:
		c.addA(value, boolBit(c.Flag(FlagC)))
	case 2:
		c.subA(value, 0, true)
	case 3:
		c.subA(value, boolBit(c.Flag(FlagC)), true)
	case 4:
		c.andA(value)
	case 5:
		c.xorA(value)
	case 6:
		c.orA(value)
	case 7:
		c.subA(value, 0, false)
	}
}

func (c *Core) executeX0(opcode, y, z, p, q uint8) clock.HalfCycles {
	switch z {
	case 0:
		switch {
		case y == 0:
			return cyclesToHalf(4) // NOP
		case y == 1:
			c.ExchangeAF()
			return cyclesToHalf(4)
		case y == 2:
			n := int8(c.fetch8())
			c.B--
			if c.B != 0 {
				c.PC = uint16(int32(c.PC) + int32(n))
				return cyclesToHalf(13)
			}
			return cyclesToHalf(8)
		case y == 3:
			n := int8(c.fetch8())
			c.PC = uint16(int32(c.PC) + int32(n))
			return cyclesToHalf(12)
		default: // JR cc,e  (y = 4..7, cc = y-4)
			n := int8(c.fetch8())
			if c.testCC(y - 4) {
				c.PC = uint16(int32(c.PC) + int32(n))
				return cyclesToHalf(12)
			}
			return cyclesToHalf(7)
		}
	case 1:
		if q == 0 {
			c.writeRP(p, c.fetch16())
			return cyclesToHalf(10)
		}
		c.writeRP(2, c.add16(c.HL(), c.readRP(p)))
		return cyclesToHalf(11)
	case 2:
		switch {
		case p == 0 && q == 0:
			c.Bus.WriteMem(c.BC(), c.A)
		case p == 0 && q == 1:
			c.A = c.Bus.ReadMem(c.BC())
		case p == 1 && q == 0:
			c.Bus.WriteMem(c.DE(), c.A)
		case p == 1 && q == 1:
			c.A = c.Bus.ReadMem(c.DE())
		case p == 2 && q == 0:
			addr := c.fetch16()
			v := c.HL()
			c.Bus.WriteMem(addr, uint8(v))
			c.Bus.WriteMem(addr+1, uint8(v>>8))
		case p == 2 && q == 1:
			addr := c.fetch16()
			lo := c.Bus.ReadMem(addr)
			hi := c.Bus.ReadMem(addr + 1)
			c.SetHL(uint16(hi)<<8 | uint16(lo))
		case p == 3 && q == 0:
			addr := c.fetch16()
			c.Bus.WriteMem(addr, c.A)
		default:
			addr := c.fetch16()
			c.A = c.Bus.ReadMem(addr)
		}
		return cyclesToHalf(cost(p == 2, 13, 16))
	case 3:
		if q == 0 {
			c.writeRP(p, c.readRP(p)+1)
		} else {
			c.writeRP(p, c.readRP(p)-1)
		}
		return cyclesToHalf(6)
	case 4:
		c.writeReg8(y, c.inc8(c.readReg8(y)))
		return cyclesToHalf(cost(y == reg8HL, 4, 11))
	case 5:
		c.writeReg8(y, c.dec8(c.readReg8(y)))
		return cyclesToHalf(cost(y == reg8HL, 4, 11))
	case 6:
		c.writeReg8(y, c.fetch8())
		return cyclesToHalf(cost(y == reg8HL, 7, 10))
	default: // z == 7: the accumulator-only rotate/adjust group
		keep := c.F & (FlagS | FlagZ | FlagPV)
		switch y {
		case 0:
			c.A = c.rlc(c.A)
			c.F = (c.F &^ (FlagS | FlagZ | FlagPV)) | keep
		case 1:
			c.A = c.rrc(c.A)
			c.F = (c.F &^ (FlagS | FlagZ | FlagPV)) | keep
		case 2:
			c.A = c.rl(c.A)
			c.F = (c.F &^ (FlagS | FlagZ | FlagPV)) | keep
		case 3:
			c.A = c.rr(c.A)
			c.F = (c.F &^ (FlagS | FlagZ | FlagPV)) | keep
		case 4:
			c.daa()
		case 5:
			c.A = ^c.A
			c.F |= FlagH | FlagN
			c.F = (c.F &^ (FlagX | FlagY)) | (c.A & (FlagX | FlagY))
		case 6:
			c.F = (c.F &^ FlagN) | FlagC
			c.F &^= FlagH
			c.F = (c.F &^ (FlagX | FlagY)) | (c.A & (FlagX | FlagY))
		default:
			carry := c.Flag(FlagC)
			c.F &^= FlagN
			if carry {
				c.F &^= FlagC
			} else {
				c.F |= FlagC
			}
			c.SetFlag(FlagH, carry)
			c.F = (c.F &^ (FlagX | FlagY)) | (c.A & (FlagX | FlagY))
		}
		return cyclesToHalf(4)
	}
}

// daa implements the decimal adjust accumulator operation following an
// 8-bit BCD add/subtract, per the standard correction table keyed by
// N/C/H and the accumulator's nibble values.
func (c *Core) daa() {
	a := c.A
	adjust := uint8(0)
	carry := c.Flag(FlagC)

	if c.Flag(FlagH) || a&0x0f > 9 {
		adjust |= 0x06
	}
	if carry || a > 0x99 {
		adjust |= 0x60
		carry = true
	}

	if c.Flag(FlagN) {
		a -= adjust
	} else {
		a += adjust
	}

	c.F &^= FlagS | FlagZ | FlagH | FlagPV | FlagC | FlagX | FlagY
	if a == 0 {
		c.F |= FlagZ
	}
	if a&0x80 != 0 {
		c.F |= FlagS
	}
	if parity8(a) {
		c.F |= FlagPV
	}
	if carry {
		c.F |= FlagC
	}
	c.F |= a & (FlagX | FlagY)
	c.A = a
}

func (c *Core) executeX3(opcode, y, z, p, q uint8) clock.HalfCycles {
	switch z {
	case 0:
		if c.testCC(y) {
			c.PC = c.pop16()
			return cyclesToHalf(11)
		}
		return cyclesToHalf(5)
	case 1:
		if q == 0 {
			c.writeRP2(p, c.pop16())
			return cyclesToHalf(10)
		}
		switch p {
		case 0:
			c.PC = c.pop16()
			return cyclesToHalf(10)
		case 1:
			c.Exx()
			return cyclesToHalf(4)
		case 2:
			c.PC = c.HL()
			return cyclesToHalf(4)
		default:
			c.SP = c.HL()
			return cyclesToHalf(6)
		}
	case 2:
		addr := c.fetch16()
		if c.testCC(y) {
			c.PC = addr
		}
		return cyclesToHalf(10)
	case 3:
		switch y {
		case 0:
			c.PC = c.fetch16()
			return cyclesToHalf(10)
		case 1:
			return c.executeCB(c.fetch8())
		case 2:
			n := c.fetch8()
			port := uint16(c.A)<<8 | uint16(n)
			c.Bus.WritePort(port, c.A)
			return cyclesToHalf(11)
		case 3:
			n := c.fetch8()
			port := uint16(c.A)<<8 | uint16(n)
			c.A = c.Bus.ReadPort(port)
			return cyclesToHalf(11)
		case 4:
			hl := c.HL()
			sp0 := c.Bus.ReadMem(c.SP)
			sp1 := c.Bus.ReadMem(c.SP + 1)
			c.Bus.WriteMem(c.SP, uint8(hl))
			c.Bus.WriteMem(c.SP+1, uint8(hl>>8))
			c.SetHL(uint16(sp1)<<8 | uint16(sp0))
			return cyclesToHalf(19)
		case 5:
			c.D, c.H = c.H, c.D
			c.E, c.L = c.L, c.E
			return cyclesToHalf(4)
		case 6:
			c.IFF1 = false
			c.IFF2 = false
			return cyclesToHalf(4)
		default:
			c.IFF1 = true
			c.IFF2 = true
			c.justEnabledEI = true
			return cyclesToHalf(4)
		}
	case 4:
		addr := c.fetch16()
		if c.testCC(y) {
			c.push16(c.PC)
			c.PC = addr
			return cyclesToHalf(17)
		}
		return cyclesToHalf(10)
	case 5:
		if q == 0 {
			c.push16(c.readRP2(p))
			return cyclesToHalf(11)
		}
		if p == 0 {
			addr := c.fetch16()
			c.push16(c.PC)
			c.PC = addr
			return cyclesToHalf(17)
		}
		// p==1,2,3 (DD/ED/FD prefixes) are handled in execute() directly
		// and never reach here.
		return cyclesToHalf(4)
	case 6:
		c.aluOp(y, c.fetch8())
		return cyclesToHalf(7)
	default: // z == 7: RST y*8
		c.push16(c.PC)
		c.PC = uint16(y) * 8
		return cyclesToHalf(11)
	}
}
