package z80

import "github.com/jetsetilly/clocksignal/clock"

// executeED dispatches an ED-prefixed opcode. Opcodes outside the
// documented 0x40-0xbf range execute as an 8 T-state no-op, matching
// real hardware's behaviour for undefined ED-prefixed instructions.
func (c *Core) executeED(opcode uint8) clock.HalfCycles {
	y := (opcode >> 3) & 7
	z := opcode & 7
	p := y >> 1
	q := y & 1

	switch {
	case opcode >= 0x40 && opcode <= 0x7f:
		return c.executeEDRegisters(y, z, p, q)
	case opcode >= 0xa0 && opcode <= 0xbb && z <= 3 && y >= 4:
		return c.executeEDBlock(y, z)
	default:
		return cyclesToHalf(8)
	}
}

func (c *Core) executeEDRegisters(y, z, p, q uint8) clock.HalfCycles {
	switch z {
	case 0:
		if y == 6 {
			_ = c.Bus.ReadPort(c.BC())
			return cyclesToHalf(12)
		}
		v := c.Bus.ReadPort(c.BC())
		c.writeReg8(y, v)
		c.setLogicalFlags(v)
		c.F &^= FlagH | FlagN
		return cyclesToHalf(12)
	case 1:
		v := uint8(0)
		if y != 6 {
			v = c.readReg8(y)
		}
		c.Bus.WritePort(c.BC(), v)
		return cyclesToHalf(12)
	case 2:
		hl := c.HL()
		rp := c.readRP(p)
		if q == 0 {
			c.writeRP(2, c.sbc16(hl, rp))
		} else {
			c.writeRP(2, c.adc16(hl, rp))
		}
		return cyclesToHalf(15)
	case 3:
		if q == 0 {
			addr := c.fetch16()
			v := c.readRP(p)
			c.Bus.WriteMem(addr, uint8(v))
			c.Bus.WriteMem(addr+1, uint8(v>>8))
		} else {
			addr := c.fetch16()
			lo := c.Bus.ReadMem(addr)
			hi := c.Bus.ReadMem(addr + 1)
			c.writeRP(p, uint16(hi)<<8|uint16(lo))
		}
		return cyclesToHalf(20)
	case 4:
		value := c.A
		c.A = 0
		c.subA(value, 0, true)
		return cyclesToHalf(8)
	case 5:
		c.IFF1 = c.IFF2
		_ = c.pop16PC()
		return cyclesToHalf(14)
	case 6:
		im := [8]uint8{0, 0, 1, 2, 0, 0, 1, 2}
		c.IM = im[y]
		return cyclesToHalf(8)
	default: // z == 7
		switch y {
		case 0:
			c.I = c.A
		case 1:
			c.R = c.A
		case 2:
			c.A = c.I
			c.setIorRFlags(c.I)
		case 3:
			c.A = c.R
			c.setIorRFlags(c.R)
		case 4:
			c.rrd()
		case 5:
			c.rld()
		default:
		}
		return cyclesToHalf(9)
	}
}

func (c *Core) pop16PC() uint16 {
	c.PC = c.pop16()
	return c.PC
}

func (c *Core) setIorRFlags(v uint8) {
	c.F &^= FlagS | FlagZ | FlagH | FlagPV | FlagN
	if v == 0 {
		c.F |= FlagZ
	}
	if v&0x80 != 0 {
		c.F |= FlagS
	}
	if c.IFF2 {
		c.F |= FlagPV
	}
}

func (c *Core) sbc16(a, b uint16) uint16 {
	carry := uint32(boolBit(c.Flag(FlagC)))
	diff := int32(a) - int32(b) - int32(carry)
	res := uint16(diff)

	c.F = FlagN
	if res == 0 {
		c.F |= FlagZ
	}
	if res&0x8000 != 0 {
		c.F |= FlagS
	}
	if int32(a&0xfff)-int32(b&0xfff)-int32(carry) < 0 {
		c.F |= FlagH
	}
	if (a^b)&(a^res)&0x8000 != 0 {
		c.F |= FlagPV
	}
	if diff < 0 {
		c.F |= FlagC
	}
	c.F |= uint8(res>>8) & (FlagX | FlagY)
	return res
}

func (c *Core) adc16(a, b uint16) uint16 {
	carry := uint32(boolBit(c.Flag(FlagC)))
	sum := uint32(a) + uint32(b) + carry
	res := uint16(sum)

	c.F = 0
	if res == 0 {
		c.F |= FlagZ
	}
	if res&0x8000 != 0 {
		c.F |= FlagS
	}
	if (a^b^res)&0x1000 != 0 {
		c.F |= FlagH
	}
	if (^(a ^ b))&(a^res)&0x8000 != 0 {
		c.F |= FlagPV
	}
	if sum > 0xffff {
		c.F |= FlagC
	}
	c.F |= uint8(res>>8) & (FlagX | FlagY)
	return res
}

func (c *Core) rrd() {
	addr := c.HL()
	mem := c.Bus.ReadMem(addr)
	a := c.A
	c.A = (a & 0xf0) | (mem & 0x0f)
	c.Bus.WriteMem(addr, (a<<4)|(mem>>4))
	c.setLogicalFlags(c.A)
	c.F &^= FlagH | FlagN
}

func (c *Core) rld() {
	addr := c.HL()
	mem := c.Bus.ReadMem(addr)
	a := c.A
	c.A = (a & 0xf0) | (mem >> 4)
	c.Bus.WriteMem(addr, (mem<<4)|(a&0x0f))
	c.setLogicalFlags(c.A)
	c.F &^= FlagH | FlagN
}

// executeEDBlock implements the sixteen LDI/LDD/CPI/CPD/INI/IND/OUTI/
// OUTD variants and their repeating forms, decomposed the same way the
// community documentation lays them out: y selects direction/repeat
// (4=increment, 5=decrement, 6=increment+repeat, 7=decrement+repeat),
// z selects the operation (0=LD, 1=CP, 2=IN, 3=OUT).
func (c *Core) executeEDBlock(y, z uint8) clock.HalfCycles {
	direction := int16(1)
	if y == 5 || y == 7 {
		direction = -1
	}
	repeat := y == 6 || y == 7

	var cycles clock.HalfCycles

	switch z {
	case 0:
		cycles = c.blockLD(direction)
	case 1:
		cycles = c.blockCP(direction)
	case 2:
		cycles = c.blockIN(direction)
	default:
		cycles = c.blockOUT(direction)
	}

	if repeat && c.BC() != 0 {
		if z == 1 {
			if !c.Flag(FlagZ) {
				c.PC -= 2
				cycles += cyclesToHalf(5)
			}
		} else {
			c.PC -= 2
			cycles += cyclesToHalf(5)
		}
	}

	return cycles
}

func (c *Core) blockLD(direction int16) clock.HalfCycles {
	hl, de, bc := c.HL(), c.DE(), c.BC()
	v := c.Bus.ReadMem(hl)
	c.Bus.WriteMem(de, v)
	c.SetHL(uint16(int32(hl) + int32(direction)))
	c.SetDE(uint16(int32(de) + int32(direction)))
	bc--
	c.SetBC(bc)

	c.F &^= FlagN | FlagH | FlagX | FlagY
	if bc != 0 {
		c.F |= FlagPV
	} else {
		c.F &^= FlagPV
	}
	n := v + c.A
	c.F = (c.F &^ (FlagX | FlagY)) | (n & FlagX) | ((n << 4) & FlagY)
	return cyclesToHalf(16)
}

func (c *Core) blockCP(direction int16) clock.HalfCycles {
	hl, bc := c.HL(), c.BC()
	v := c.Bus.ReadMem(hl)
	res := c.A - v

	c.SetHL(uint16(int32(hl) + int32(direction)))
	bc--
	c.SetBC(bc)

	c.F = (c.F & FlagC) | FlagN
	if res == 0 {
		c.F |= FlagZ
	}
	if res&0x80 != 0 {
		c.F |= FlagS
	}
	if c.A&0x0f < v&0x0f {
		c.F |= FlagH
		res--
	}
	if bc != 0 {
		c.F |= FlagPV
	}
	c.F = (c.F &^ (FlagX | FlagY)) | (res & FlagX) | ((res << 4) & FlagY)
	return cyclesToHalf(16)
}

func (c *Core) blockIN(direction int16) clock.HalfCycles {
	hl := c.HL()
	v := c.Bus.ReadPort(c.BC())
	c.Bus.WriteMem(hl, v)
	c.SetHL(uint16(int32(hl) + int32(direction)))
	c.B--
	c.F &^= FlagZ
	if c.B == 0 {
		c.F |= FlagZ
	}
	c.F |= FlagN
	return cyclesToHalf(16)
}

func (c *Core) blockOUT(direction int16) clock.HalfCycles {
	hl := c.HL()
	v := c.Bus.ReadMem(hl)
	c.Bus.WritePort(c.BC(), v)
	c.SetHL(uint16(int32(hl) + int32(direction)))
	c.B--
	c.F &^= FlagZ
	if c.B == 0 {
		c.F |= FlagZ
	}
	c.F |= FlagN
	return cyclesToHalf(16)
}
