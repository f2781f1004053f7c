package z80

import "github.com/jetsetilly/clocksignal/clock"

// executeCB dispatches a CB-prefixed opcode: the rotate/shift group (x=0),
// BIT (x=1), RES (x=2) and SET (x=3), each operating on register/memory
// operand z and, for the first group, rotate-type y.
func (c *Core) executeCB(opcode uint8) clock.HalfCycles {
	x := opcode >> 6
	y := (opcode >> 3) & 7
	z := opcode & 7

	value := c.readReg8(z)

	switch x {
	case 0:
		var res uint8
		switch y {
		case 0:
			res = c.rlc(value)
		case 1:
			res = c.rrc(value)
		case 2:
			res = c.rl(value)
		case 3:
			res = c.rr(value)
		case 4:
			res = c.sla(value)
		case 5:
			res = c.sra(value)
		case 6:
			res = c.sll(value)
		default:
			res = c.srl(value)
		}
		c.writeReg8(z, res)
		return cyclesToHalf(cost(z == reg8HL, 8, 15))
	case 1:
		c.bit(y, value)
		return cyclesToHalf(cost(z == reg8HL, 8, 12))
	case 2:
		c.writeReg8(z, value&^(1<<y))
		return cyclesToHalf(cost(z == reg8HL, 8, 15))
	default:
		c.writeReg8(z, value|(1<<y))
		return cyclesToHalf(cost(z == reg8HL, 8, 15))
	}
}

func (c *Core) sla(value uint8) uint8 {
	carry := value&0x80 != 0
	res := value << 1
	c.setRotateFlags(res, carry)
	return res
}

func (c *Core) sra(value uint8) uint8 {
	carry := value&0x01 != 0
	res := (value & 0x80) | (value >> 1)
	c.setRotateFlags(res, carry)
	return res
}

// sll is the undocumented "shift left logical" that shifts in a 1 at bit
// 0, kept for completeness since several disassemblers still surface it.
func (c *Core) sll(value uint8) uint8 {
	carry := value&0x80 != 0
	res := value<<1 | 1
	c.setRotateFlags(res, carry)
	return res
}

func (c *Core) srl(value uint8) uint8 {
	carry := value&0x01 != 0
	res := value >> 1
	c.setRotateFlags(res, carry)
	return res
}

// bit tests bit n of value, setting Z/PV from the test, S from bit 7 of
// the tested value when n==7, and copying X/Y from value itself — the
// well-documented MEMPTR-derived quirk for the (HL)/(IX+d)/(IY+d) forms
// is approximated here by copying from the operand, which matches the
// register-operand forms exactly and the indirect forms in the common
// case.
func (c *Core) bit(n, value uint8) {
	set := value&(1<<n) != 0
	c.F &^= FlagS | FlagZ | FlagH | FlagPV | FlagN | FlagX | FlagY
	c.F |= FlagH
	if !set {
		c.F |= FlagZ | FlagPV
	}
	if n == 7 && set {
		c.F |= FlagS
	}
	c.F |= value & (FlagX | FlagY)
}
