package m68000

import "github.com/jetsetilly/clocksignal/clock"

// Core executes 68000 machine code against a Bus, one instruction at a
// time, in the same RunFor/pending-HalfCycles style as cpu/z80.Core.
type Core struct {
	Registers
	Bus Bus

	pending clock.HalfCycles

	irqLevel uint8

	// halted guards handleFault against a nested bus/address fault: it
	// is set while the error frame is stacked and cleared straight
	// after. The stacking writes do not report bus errors, so no nested
	// fault is raised and the core never stays halted. STOP is not
	// implemented.
	halted bool
}

// NewCore constructs a Core and performs the power-on reset sequence:
// supervisor mode, SSP and PC read from the vector table at VBR+0.
func NewCore(bus Bus) *Core {
	c := &Core{Bus: bus}
	c.Reset()
	return c
}

// Reset performs the 68000's reset exception: it does not stack a
// frame (the stack may not yet be valid), it simply loads SSP and PC
// from the first two vector-table entries.
func (c *Core) Reset() {
	c.Registers = Registers{SR: SRSuper | SRIPLMask}
	if sp, ok := c.Bus.ReadLong(0); ok {
		c.A[7] = sp
		c.SSP = sp
	}
	if pc, ok := c.Bus.ReadLong(4); ok {
		c.PC = pc
	}
	c.halted = false
}

// SetIRQ asserts an external interrupt request at the given priority
// level (0 = none, 1-7 = active, 7 non-maskable), sampled once at the
// start of each instruction the same way ProcessInterrupt expects.
func (c *Core) SetIRQ(level uint8) {
	c.irqLevel = level
}

func (c *Core) fetch16() uint16 {
	v, _ := c.Bus.ReadWord(c.PC)
	c.PC += 2
	return v
}

func (c *Core) fetch32() uint32 {
	hi := c.fetch16()
	lo := c.fetch16()
	return uint32(hi)<<16 | uint32(lo)
}

func (c *Core) push16(v uint16) {
	c.A[7] -= 2
	c.Bus.WriteWord(c.A[7], v)
}

func (c *Core) push32(v uint32) {
	c.A[7] -= 4
	c.Bus.WriteLong(c.A[7], v)
}

func (c *Core) pop16() uint16 {
	v, _ := c.Bus.ReadWord(c.A[7])
	c.A[7] += 2
	return v
}

func (c *Core) pop32() uint32 {
	v, _ := c.Bus.ReadLong(c.A[7])
	c.A[7] += 4
	return v
}

// instructionCost is a coarse, size-independent cycle estimate used
// only to pace RunFor; it does not attempt the real 68000's
// per-addressing-mode cycle tables.
const instructionCost = clock.HalfCycles(8)

// RunFor executes whole instructions until duration is exhausted,
// returning the HalfCycles actually consumed (which may exceed
// duration by up to one instruction's cost, carried forward into the
// next call's pending balance, matching cpu/z80.Core.RunFor).
func (c *Core) RunFor(duration clock.HalfCycles) clock.HalfCycles {
	c.pending += duration
	consumed := clock.HalfCycles(0)

	for c.pending > 0 {
		if c.irqLevel > 0 {
			if lvl := c.irqLevel; lvl == 7 || lvl > c.IPL() {
				c.ProcessInterrupt(lvl)
			}
		}

		if c.halted {
			c.pending -= instructionCost
			consumed += instructionCost
			continue
		}

		cost := c.stepOne()
		c.pending -= cost
		consumed += cost
	}

	return consumed
}

func (c *Core) stepOne() clock.HalfCycles {
	opcode := c.fetch16()

	if err := c.execute(opcode); err != nil {
		c.handleFault(err)
	}

	return instructionCost
}

func (c *Core) handleFault(err error) {
	switch f := err.(type) {
	case errBusFault:
		if c.halted {
			return
		}
		c.halted = true
		c.raiseBusFault(VectorBusError, faultInfo{address: f.addr, size: f.size, write: f.write, data: f.data})
		c.halted = false
	case errAddressFault:
		if c.halted {
			return
		}
		c.halted = true
		c.raiseBusFault(VectorAddressError, faultInfo{address: f.addr, size: f.size, write: f.write, data: f.data})
		c.halted = false
	case errPrivilege:
		c.raise(VectorPrivilege, frameFormat0, nil)
	case errIllegal:
		c.raise(VectorIllegal, frameFormat0, nil)
	case errZeroDivide:
		c.raise(VectorZeroDivide, frameFormat0, nil)
	}
}

type errPrivilege struct{}

func (errPrivilege) Error() string { return "m68000: privilege violation" }

type errZeroDivide struct{}

func (errZeroDivide) Error() string { return "m68000: divide by zero" }
