package m68000

// execute decodes and runs a single instruction word already consumed
// from the prefetch stream. Anything outside the subset this core
// implements returns errIllegal, which handleFault turns into a real
// VectorIllegal exception — the same "fall through to illegal" shape
// cpu/z80's indexed-prefix handler uses for opcodes it does not cover.
//
// Implemented: MOVE/MOVEA/MOVEQ, ADD/ADDA/ADDQ, SUB/SUBA/SUBQ, AND, OR,
// EOR, CMP/CMPA, Bcc/BRA/BSR, DBcc, Scc, CLR/NOT/NEG/NEGX/TST, SWAP,
// EXT, LEA, PEA, JMP, JSR, RTS, RTE, RTR, NOP, TRAP, TRAPV, shifts and
// rotates with an immediate or Dn-register count against a data
// register.
//
// Not implemented: indexed and PC-relative-indexed addressing (mode
// 6 and mode 7/3), MOVEM, MULU/MULS/DIVU/DIVS, ABCD/SBCD/NBCD, EXG,
// CHK, LINK/UNLK, memory-operand shifts, MOVEP, and the privileged
// supervisor instructions (RESET, STOP, MOVE to/from SR, MOVE USP).
// Each decodes to errIllegal rather than silently misbehaving.
func (c *Core) execute(opcode uint16) error {
	switch opcode >> 12 {
	case 0x0:
		return c.executeImmediate(opcode)
	case 0x1:
		return c.executeMove(opcode, SizeByte)
	case 0x2:
		return c.executeMove(opcode, SizeLong)
	case 0x3:
		return c.executeMove(opcode, SizeWord)
	case 0x4:
		return c.executeMisc(opcode)
	case 0x5:
		return c.executeQuickAndScc(opcode)
	case 0x6:
		return c.executeBranch(opcode)
	case 0x7:
		return c.executeMoveq(opcode)
	case 0x8:
		return c.executeDataOp(opcode, opOR)
	case 0x9:
		return c.executeAddSub(opcode, false)
	case 0xb:
		return c.executeCmpEor(opcode)
	case 0xc:
		return c.executeDataOp(opcode, opAND)
	case 0xd:
		return c.executeAddSub(opcode, true)
	case 0xe:
		return c.executeShift(opcode)
	}
	return errIllegal{}
}

func eaOperand(opcode uint16, size Size) operand {
	return operand{mode: (opcode >> 3) & 0x7, reg: opcode & 0x7, size: size}
}

func decodeSize(bits uint16) (Size, bool) {
	switch bits {
	case 0:
		return SizeByte, true
	case 1:
		return SizeWord, true
	case 2:
		return SizeLong, true
	}
	return 0, false
}

// executeMove implements the three MOVE opcode groups (byte/long/word
// share one layout, differing only in the size field's encoding, which
// callers have already resolved).
func (c *Core) executeMove(opcode uint16, size Size) error {
	src := eaOperand(opcode, size)
	dst := operand{mode: (opcode >> 6) & 0x7, reg: (opcode >> 9) & 0x7, size: size}

	v, err := c.readOperand(src)
	if err != nil {
		return err
	}

	if dst.mode == modeAddrDirect {
		c.A[dst.reg] = signExtend(v&sizeMask(size), size)
		return nil
	}

	c.setFlagsNZ(v, size)
	c.SR &^= SROverflow | SRCarry
	return c.writeOperand(dst, v)
}

func (c *Core) executeMoveq(opcode uint16) error {
	if opcode&0x100 != 0 {
		return errIllegal{}
	}
	reg := (opcode >> 9) & 0x7
	data := uint32(int32(int8(opcode & 0xff)))
	c.D[reg] = data
	c.setFlagsNZ(data, SizeLong)
	c.SR &^= SROverflow | SRCarry
	return nil
}
