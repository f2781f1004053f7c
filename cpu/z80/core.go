package z80

import "github.com/jetsetilly/clocksignal/clock"

// reg8 enumerates the Z80's 3-bit register field encoding: B, C, D, E,
// H, L, (HL), A — the same order `IntuitionAmiga-IntuitionEngine`'s
// regs8 lookup table uses, and the order the undocumented-opcode
// community's x/y/z decomposition assumes throughout.
const (
	reg8B = iota
	reg8C
	reg8D
	reg8E
	reg8H
	reg8L
	reg8HL
	reg8A
)

// Core is the Z80 execution engine: register file, bus, and the main
// instruction dispatcher. Instructions execute to completion inside
// RunFor rather than being decomposed into individual T-state ticks;
// the per-instruction cycle cost is charged against the budget in one
// step, which is enough to keep multi-device scheduling correct (the
// unit every caller synchronises on is whole instructions worth of
// HalfCycles) without modelling bus contention at T-state granularity.
type Core struct {
	Registers
	Bus       Bus
	Callbacks Callbacks

	pending       clock.HalfCycles
	irqLine       bool
	nmiLine       bool
	nmiLatched    bool
	justEnabledEI bool
}

// NewCore constructs a Core in its post-reset state.
func NewCore(bus Bus, callbacks Callbacks) *Core {
	c := &Core{Bus: bus, Callbacks: callbacks}
	c.Registers.Reset()
	return c
}

// SetIRQ sets the level-sensitive interrupt request line.
func (c *Core) SetIRQ(asserted bool) { c.irqLine = asserted }

// SetNMI edge-triggers the non-maskable interrupt on a false->true
// transition, matching real NMI latching behaviour.
func (c *Core) SetNMI(asserted bool) {
	if asserted && !c.nmiLine {
		c.nmiLatched = true
	}
	c.nmiLine = asserted
}

// RunFor executes whole instructions until the supplied budget is
// exhausted, returning the HalfCycles actually consumed. An instruction
// always runs to completion, so the total may exceed the budget by up to
// one instruction; that overrun is carried into the next call's pending
// balance.
func (c *Core) RunFor(duration clock.HalfCycles) clock.HalfCycles {
	c.pending += duration
	consumed := clock.HalfCycles(0)
	for c.pending > 0 {
		spent := c.stepOne()
		c.pending -= spent
		consumed += spent
	}
	return consumed
}

func (c *Core) stepOne() clock.HalfCycles {
	if c.nmiLatched {
		c.nmiLatched = false
		c.Halted = false
		c.IFF2 = c.IFF1
		c.IFF1 = false
		c.push16(c.PC)
		c.PC = 0x0066
		return cyclesToHalf(11)
	}

	if c.irqLine && c.IFF1 && !c.justEnabledEI {
		return c.acceptIRQ()
	}
	c.justEnabledEI = false

	if c.Halted {
		return cyclesToHalf(4)
	}

	opcode := c.fetch8()
	return c.execute(opcode)
}

func cyclesToHalf(tStates int) clock.HalfCycles {
	return clock.HalfCycles(tStates * 2)
}

func (c *Core) acceptIRQ() clock.HalfCycles {
	c.IFF1 = false
	c.IFF2 = false
	c.Halted = false

	switch c.IM {
	case 0:
		// Mode 0: the interrupting device supplies an instruction on
		// the bus. This core only supports the common case of a single
		// RST opcode, read the same way Callbacks.InterruptData() would
		// supply a vector low byte.
		vector := uint16(0)
		if c.Callbacks != nil {
			vector = uint16(c.Callbacks.InterruptData())
		}
		c.push16(c.PC)
		c.PC = vector & 0x38
		return cyclesToHalf(13)
	case 1:
		c.push16(c.PC)
		c.PC = 0x0038
		return cyclesToHalf(13)
	default: // mode 2
		low := uint8(0xff)
		if c.Callbacks != nil {
			low = c.Callbacks.InterruptData()
		}
		vectorTable := uint16(c.I)<<8 | uint16(low)
		target := uint16(c.Bus.ReadMem(vectorTable)) | uint16(c.Bus.ReadMem(vectorTable+1))<<8
		c.push16(c.PC)
		c.PC = target
		return cyclesToHalf(19)
	}
}

func (c *Core) fetch8() uint8 {
	v := c.Bus.ReadMem(c.PC)
	c.PC++
	c.R = (c.R & 0x80) | ((c.R + 1) & 0x7f)
	return v
}

func (c *Core) fetch16() uint16 {
	lo := c.fetch8()
	hi := c.fetch8()
	return uint16(hi)<<8 | uint16(lo)
}

func (c *Core) push16(v uint16) {
	c.SP -= 2
	c.Bus.WriteMem(c.SP, uint8(v))
	c.Bus.WriteMem(c.SP+1, uint8(v>>8))
}

func (c *Core) pop16() uint16 {
	lo := c.Bus.ReadMem(c.SP)
	hi := c.Bus.ReadMem(c.SP + 1)
	c.SP += 2
	return uint16(hi)<<8 | uint16(lo)
}
