package arm

import "math/bits"

// Bus is the memory interface the executor drives. A false ok return from
// any method signals a data abort; the executor routes that into the
// documented DataAbort vector rather than surfacing it to the caller.
type Bus interface {
	ReadWord(address uint32) (value uint32, ok bool)
	ReadByte(address uint32) (value uint8, ok bool)
	WriteWord(address uint32, value uint32) (ok bool)
	WriteByte(address uint32, value uint8) (ok bool)
}

// Trap identifies which vector an exception routes through.
type Trap int

const (
	TrapNone Trap = iota
	TrapUndefinedInstruction
	TrapSoftwareInterrupt
	TrapDataAbort
	TrapAddressException
)

var trapVector = map[Trap]uint32{
	TrapUndefinedInstruction: 0x04,
	TrapSoftwareInterrupt:    0x08,
	TrapDataAbort:            0x10,
	TrapAddressException:     0x10,
}

// Callbacks lets the owning machine observe state changes the core makes,
// and veto a software interrupt before it takes effect. No callback may
// mutate CPU state from within its own call — the call is informational
// only, mirroring the "handler may not mutate CPU state" constraint on
// the reference implementation's equivalents.
type Callbacks interface {
	// DidSetStatus is called after an instruction updates the flags/mode
	// bits: every data-processing or multiply instruction with S=1, and an
	// LDM that loads R15 with the PSR bit set. It is called whether or not
	// the value actually changed.
	DidSetStatus()
	// DidSetPC is called whenever the program counter changes other than
	// by the ordinary per-instruction increment.
	DidSetPC()
	// ShouldSWI is consulted for every SWI instruction, with its 24-bit
	// comment field; returning false suppresses the trap entirely and
	// execution continues at the next instruction, which is how a host
	// implements OS-call trapping without vectoring through SoftwareInterrupt.
	ShouldSWI(comment uint32) bool
}

// Executor is the ARM execution core: registers, a Bus, and the per-form
// Execute methods that make up its instruction set.
type Executor struct {
	Registers
	Bus       Bus
	Callbacks Callbacks

	// addressMask32Bit selects 32-bit addressing (later ARMv2a/ARM250
	// variants) over the stock 26-bit address space; it changes whether
	// unaligned word loads rotate the fetched word and whether bits
	// 26-31 being set raises an address exception.
	addressMask32Bit bool

	// symbols optionally resolves trap addresses back to source lines,
	// see AttachSymbols.
	symbols *SymbolSource

	// lastTrapAddress is the PC at the point the most recent trap was
	// raised, kept for LastTrapDescription.
	lastTrapAddress uint32
}

// LastTrapDescription returns source context for the most recent trap's
// address, or the empty string if no SymbolSource is attached or no
// trap has occurred yet.
func (e *Executor) LastTrapDescription() string {
	return e.DescribeAddress(e.lastTrapAddress)
}

// NewExecutor constructs an Executor around the given bus.
func NewExecutor(bus Bus, callbacks Callbacks) *Executor {
	e := &Executor{Bus: bus, Callbacks: callbacks}
	e.Registers = *NewRegisters()
	return e
}

// SetAddressing32Bit switches between 26-bit (stock ARMv2) and 32-bit
// address space behaviour.
func (e *Executor) SetAddressing32Bit(on bool) {
	e.addressMask32Bit = on
}

// Step decodes and executes one instruction fetched from the current PC,
// advancing PC past it (branches and traps set PC explicitly instead).
// It returns the trap taken, if any.
func (e *Executor) Step() Trap {
	pc := e.PC()
	instruction, ok := e.Bus.ReadWord(pc)
	if !ok {
		return e.raise(TrapDataAbort)
	}

	if !e.addressMask32Bit && pc&0xfc00_0000 != 0 {
		return e.raise(TrapAddressException)
	}

	d := Decode(instruction)
	e.SetPC(pc + 4)

	if !e.Test(d.Condition) {
		return TrapNone
	}

	switch d.Form {
	case FormDataProcessing:
		return e.executeDataProcessing(d)
	case FormMultiply:
		return e.executeMultiply(d)
	case FormSingleDataTransfer:
		return e.executeSingleDataTransfer(d)
	case FormBlockDataTransfer:
		return e.executeBlockDataTransfer(d)
	case FormBranch:
		return e.executeBranch(d)
	case FormSoftwareInterrupt:
		return e.executeSoftwareInterrupt(d)
	default:
		// Coprocessors are absent from this implementation: every
		// coprocessor-form opcode traps exactly as an undefined
		// instruction would on hardware with no coprocessor installed.
		return e.raise(TrapUndefinedInstruction)
	}
}

func (e *Executor) raise(t Trap) Trap {
	returnAddress := e.PC()
	savedStatus := e.PCStatus(0)
	e.lastTrapAddress = returnAddress

	switch t {
	case TrapDataAbort, TrapAddressException:
		e.SetMode(Supervisor)
		e.SetR(14, returnAddress+4)
	case TrapUndefinedInstruction:
		e.SetMode(Supervisor)
		e.SetR(14, returnAddress)
	case TrapSoftwareInterrupt:
		e.SetMode(Supervisor)
		e.SetR(14, returnAddress)
	}

	_ = savedStatus
	e.BeginIRQ()
	e.SetPC(trapVector[t])
	if e.Callbacks != nil {
		e.Callbacks.DidSetPC()
	}
	return t
}

// operand2 resolves a Data Processing instruction's second operand,
// returning the value, whether the barrel shifter's carry-out should feed
// into a logical operation's flags, and that carry-out. It feeds in for a
// register operand and for an immediate with a non-zero rotate; an
// immediate with a rotate of zero leaves carry unaffected.
func (e *Executor) operand2(instruction uint32) (value uint32, shifterCarry bool, carryOut bool) {
	if instruction&(1<<25) != 0 {
		// Immediate: an 8-bit value rotated right by 2*rotate.
		imm := instruction & 0xff
		rotate := (instruction >> 8) & 0xf
		if rotate == 0 {
			// An un-rotated immediate leaves carry unaffected, same as
			// LSL#0 on a register operand.
			return imm, false, e.carry
		}
		v, c := Shift(RotateRight, imm, rotate*2, e.carry)
		return v, true, c
	}

	rm := int(instruction & 0xf)
	shiftType := ShiftType((instruction >> 5) & 0b11)

	var amount uint32
	var pcOffset uint32 = 8
	if instruction&(1<<4) != 0 {
		// Shift amount taken from the bottom byte of a register: the PC,
		// if used as an operand in this form, reads as PC+12 rather than
		// PC+8, since the instruction pipeline has to wait an extra cycle
		// for the register fetch.
		rs := int((instruction >> 8) & 0xf)
		amount = e.registerOperand(rs, 8) & 0xff
		pcOffset = 12
	} else {
		amount = (instruction >> 7) & 0x1f
	}

	source := e.registerOperand(rm, pcOffset)
	v, c := Shift(shiftType, source, amount, e.carry)
	return v, true, c
}

// registerOperand reads register n as an ALU operand, substituting the
// synthesised PC+status word (offset by pcOffset) for r15.
func (e *Executor) registerOperand(n int, pcOffset uint32) uint32 {
	if n == 15 {
		return e.PCStatus(pcOffset)
	}
	return e.R(n)
}

func (e *Executor) executeDataProcessing(d Decoded) Trap {
	instr := d.Instruction
	opcode := DataProcessingOpcode((instr >> 21) & 0xf)
	setFlags := instr&(1<<20) != 0
	rn := int((instr >> 16) & 0xf)
	rd := int((instr >> 12) & 0xf)

	op2, shifterCarry, carryOut := e.operand2(instr)
	operand1 := e.registerOperand(rn, 8)

	var result uint32
	var aluCarry, overflow bool

	switch opcode {
	case AND, TST:
		result = operand1 & op2
	case EOR, TEQ:
		result = operand1 ^ op2
	case ORR:
		result = operand1 | op2
	case MOV:
		result = op2
	case BIC:
		result = operand1 &^ op2
	case MVN:
		result = ^op2
	case SUB, CMP:
		result, aluCarry, overflow = subtract(operand1, op2)
	case RSB:
		result, aluCarry, overflow = subtract(op2, operand1)
	case ADD, CMN:
		result, aluCarry, overflow = add(operand1, op2)
	case ADC:
		result, aluCarry, overflow = addWithCarry(operand1, op2, e.C())
	case SBC:
		result, aluCarry, overflow = subtractWithCarry(operand1, op2, e.C())
	case RSC:
		result, aluCarry, overflow = subtractWithCarry(op2, operand1, e.C())
	}

	if setFlags {
		if rd == 15 {
			// Writing R15 with S=1: the ALU result becomes the new
			// PC+flags+mode atomically (a function return, or an
			// exception return, via MOVS pc, lr).
			e.SetPCStatus(result)
			if e.Callbacks != nil {
				e.Callbacks.DidSetStatus()
				e.Callbacks.DidSetPC()
			}
			return TrapNone
		}

		e.SetNZ(result)
		if opcode.IsLogical() {
			// A logical op's carry-out comes from the shifter; an
			// unshifted immediate (shifterCarry false) leaves carry
			// untouched rather than clearing it.
			if shifterCarry {
				e.SetC(carryOut)
			}
		} else {
			e.SetC(aluCarry)
			e.SetV(overflow)
		}
		if e.Callbacks != nil {
			e.Callbacks.DidSetStatus()
		}
	}

	if !opcode.IsComparison() {
		if rd == 15 {
			e.SetPC(result)
			if e.Callbacks != nil {
				e.Callbacks.DidSetPC()
			}
			return TrapNone
		}
		e.SetR(rd, result)
	}

	return TrapNone
}

func add(a, b uint32) (result uint32, carry, overflow bool) {
	sum := uint64(a) + uint64(b)
	result = uint32(sum)
	carry = sum > 0xffff_ffff
	overflow = (a^result)&(b^result)&0x8000_0000 != 0
	return
}

func addWithCarry(a, b, c uint32) (result uint32, carry, overflow bool) {
	sum := uint64(a) + uint64(b) + uint64(c)
	result = uint32(sum)
	carry = sum > 0xffff_ffff
	overflow = (a^result)&(b^result)&0x8000_0000 != 0
	return
}

// subtract computes a-b with carry defined as "not borrow": carry set
// means no borrow occurred, matching the ARM ALU's subtraction
// convention (the same convention CMP relies on for unsigned comparison).
func subtract(a, b uint32) (result uint32, carry, overflow bool) {
	diff := uint64(a) - uint64(b)
	result = uint32(diff)
	carry = a >= b
	overflow = (a^b)&(a^result)&0x8000_0000 != 0
	return
}

func subtractWithCarry(a, b, borrowIn uint32) (result uint32, carry, overflow bool) {
	notBorrowIn := uint64(1)
	if borrowIn == 0 {
		notBorrowIn = 0
	}
	diff := uint64(a) - uint64(b) - (1 - notBorrowIn)
	result = uint32(diff)
	carry = int64(a)-int64(b)-int64(1-notBorrowIn) >= 0
	overflow = (a^b)&(a^result)&0x8000_0000 != 0
	return
}

func (e *Executor) executeMultiply(d Decoded) Trap {
	instr := d.Instruction
	rd := int((instr >> 16) & 0xf)
	rn := int((instr >> 12) & 0xf)
	rs := int((instr >> 8) & 0xf)
	rm := int(instr & 0xf)
	accumulate := instr&(1<<21) != 0
	setFlags := instr&(1<<20) != 0

	result := e.R(rm) * e.R(rs)
	if accumulate {
		result += e.R(rn)
	}
	e.SetR(rd, result)

	if setFlags {
		e.SetNZ(result)
		if e.Callbacks != nil {
			e.Callbacks.DidSetStatus()
		}
	}
	return TrapNone
}

func (e *Executor) executeBranch(d Decoded) Trap {
	instr := d.Instruction
	link := instr&(1<<24) != 0

	offset := instr & 0x00ff_ffff
	// Sign-extend the 24-bit word offset, then scale to bytes.
	signed := int32(offset<<8) >> 8
	target := uint32(int32(e.PC()+4) + signed*4 - 4)

	if link {
		e.SetR(14, e.PCStatus(0))
	}

	e.SetPC(target)
	if e.Callbacks != nil {
		e.Callbacks.DidSetPC()
	}
	return TrapNone
}

func (e *Executor) executeSoftwareInterrupt(d Decoded) Trap {
	comment := d.Instruction & 0x00ff_ffff
	if e.Callbacks != nil && !e.Callbacks.ShouldSWI(comment) {
		return TrapNone
	}
	return e.raise(TrapSoftwareInterrupt)
}

// executeSingleDataTransfer implements LDR/STR (and the byte-transfer
// variants LDRB/STRB).
func (e *Executor) executeSingleDataTransfer(d Decoded) Trap {
	instr := d.Instruction
	immediateOffset := instr&(1<<25) == 0
	preIndex := instr&(1<<24) != 0
	up := instr&(1<<23) != 0
	byteTransfer := instr&(1<<22) != 0
	writeback := instr&(1<<21) != 0
	load := instr&(1<<20) != 0
	rn := int((instr >> 16) & 0xf)
	rd := int((instr >> 12) & 0xf)

	var offset uint32
	if immediateOffset {
		offset = instr & 0xfff
	} else {
		rm := int(instr & 0xf)
		shiftType := ShiftType((instr >> 5) & 0b11)
		amount := (instr >> 7) & 0x1f
		offset, _ = Shift(shiftType, e.R(rm), amount, e.carry)
	}

	base := e.registerOperand(rn, 8)
	var effective uint32
	if up {
		effective = base + offset
	} else {
		effective = base - offset
	}

	address := base
	if preIndex {
		address = effective
	}

	if !e.addressMask32Bit && address&0xfc00_0000 != 0 {
		return e.raise(TrapAddressException)
	}

	commitWriteback := func() {
		if !preIndex || writeback {
			if rn != 15 {
				e.SetR(rn, effective)
			} else {
				e.SetPC(effective)
			}
		}
	}

	if load {
		var value uint32
		var ok bool
		if byteTransfer {
			var b uint8
			b, ok = e.Bus.ReadByte(address)
			value = uint32(b)
		} else {
			value, ok = e.Bus.ReadWord(address)
			if ok && !e.addressMask32Bit {
				// Unaligned word reads rotate the fetched word right by
				// 8 bits per misaligned byte, rather than faulting.
				misalignment := (address & 3) * 8
				if misalignment != 0 {
					value = bits.RotateLeft32(value, -int(misalignment))
				}
			}
		}
		if !ok {
			// A rejected read must not overwrite the destination
			// register: the abort vector fires instead and the
			// instruction's nominal effect is undone.
			return e.raise(TrapDataAbort)
		}

		commitWriteback()

		if rd == 15 {
			e.SetPC(value)
			if e.Callbacks != nil {
				e.Callbacks.DidSetPC()
			}
		} else {
			e.SetR(rd, value)
		}
		return TrapNone
	}

	// Store.
	value := e.registerOperand(rd, 12)
	var ok bool
	if byteTransfer {
		ok = e.Bus.WriteByte(address, uint8(value))
	} else {
		ok = e.Bus.WriteWord(address, value)
	}
	if !ok {
		// A rejected write must not commit; writeback of the base
		// register likewise does not happen on an aborted store.
		return e.raise(TrapDataAbort)
	}

	commitWriteback()
	return TrapNone
}

// executeBlockDataTransfer implements LDM/STM. The register list is
// always walked low register to high register regardless of the
// direction/indexing bits; those bits only pick the starting address and
// whether it is pre- or post-adjusted.
func (e *Executor) executeBlockDataTransfer(d Decoded) Trap {
	instr := d.Instruction
	preIndex := instr&(1<<24) != 0
	up := instr&(1<<23) != 0
	loadPSR := instr&(1<<22) != 0
	writeback := instr&(1<<21) != 0
	load := instr&(1<<20) != 0
	rn := int((instr >> 16) & 0xf)
	list := instr & 0xffff

	count := bits.OnesCount32(list)
	base := e.R(rn)

	var start uint32
	var finalBase uint32
	if up {
		start = base
		finalBase = base + uint32(count)*4
	} else {
		start = base - uint32(count)*4
		finalBase = start
	}

	address := start
	if preIndex == up {
		address += 4
	}

	abortedMidway := false
	storeAborted := false
	var loadedPC uint32
	loadedPCSet := false

	for reg := 0; reg < 16; reg++ {
		if list&(1<<reg) == 0 {
			continue
		}

		if load {
			value, ok := e.Bus.ReadWord(address)
			if !ok {
				// LDM abort semantics: the faulting transfer and
				// everything after it does not commit; the base
				// register is restored to its pre-instruction value
				// rather than left partially written back.
				abortedMidway = true
				break
			}
			if reg == 15 {
				loadedPC = value
				loadedPCSet = true
			} else {
				e.SetR(reg, value)
			}
		} else {
			value := e.registerOperand(reg, 12)
			if !e.Bus.WriteWord(address, value) {
				// STM continues issuing (dummy) accesses for the
				// remaining registers after an abort rather than
				// stopping outright, matching the documented quirk;
				// the abort is raised once the loop completes.
				storeAborted = true
			}
		}

		address += 4
	}

	if abortedMidway {
		if writeback {
			e.SetR(rn, base)
		}
		return e.raise(TrapDataAbort)
	}

	if writeback && rn != 15 {
		e.SetR(rn, finalBase)
	}

	if storeAborted {
		return e.raise(TrapDataAbort)
	}

	if load && loadedPCSet {
		if loadPSR {
			e.SetPCStatus(loadedPC)
			if e.Callbacks != nil {
				e.Callbacks.DidSetStatus()
			}
		} else {
			e.SetPC(loadedPC)
		}
		if e.Callbacks != nil {
			e.Callbacks.DidSetPC()
		}
	}

	return TrapNone
}
