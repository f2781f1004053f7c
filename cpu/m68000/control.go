package m68000

// executeBranch implements Bcc/BRA/BSR (group 0110). Condition codes
// 2-15 line up exactly with Registers.Test's Condition values; 0 and 1
// are BRA/BSR's reserved slots instead of conditions.
func (c *Core) executeBranch(opcode uint16) error {
	cond := (opcode >> 8) & 0xf
	disp8 := int8(opcode & 0xff)

	base := c.PC
	var target uint32
	if disp8 == 0 {
		disp16 := int16(c.fetch16())
		target = base + uint32(int32(disp16))
	} else {
		target = base + uint32(int32(disp8))
	}

	switch cond {
	case 0x0: // BRA
		c.PC = target
	case 0x1: // BSR
		c.push32(c.PC)
		c.PC = target
	default:
		if c.Test(Condition(cond)) {
			c.PC = target
		}
	}
	return nil
}

// executeQuickAndScc implements group 0101: ADDQ/SUBQ when the size
// field is a real size, Scc/DBcc when it reads as the reserved value 3.
func (c *Core) executeQuickAndScc(opcode uint16) error {
	sizeBits := (opcode >> 6) & 0x3

	if sizeBits == 0x3 {
		cond := Condition((opcode >> 8) & 0xf)
		mode := (opcode >> 3) & 0x7
		reg := opcode & 0x7

		if mode == modeAddrDirect {
			// DBcc: the EA field's register names a Dn, never An.
			disp := int16(c.fetch16())
			base := c.PC - 2
			if c.Test(cond) {
				return nil
			}
			count := int16(c.D[reg]&0xffff) - 1
			c.D[reg] = (c.D[reg] &^ 0xffff) | uint32(uint16(count))
			if count != -1 {
				c.PC = uint32(int32(base) + int32(disp))
			}
			return nil
		}

		ea := operand{mode: mode, reg: reg, size: SizeByte}
		var v uint32
		if c.Test(cond) {
			v = 0xff
		}
		return c.writeOperand(ea, v)
	}

	size, _ := decodeSize(sizeBits)
	data := uint32((opcode >> 9) & 0x7)
	if data == 0 {
		data = 8
	}
	isAdd := opcode&0x100 == 0

	ea := eaOperand(opcode, size)
	v, err := c.readOperand(ea)
	if err != nil {
		return err
	}

	var result uint32
	if isAdd {
		result = (v + data) & sizeMask(size)
	} else {
		result = (v - data) & sizeMask(size)
	}

	if ea.mode != modeAddrDirect {
		c.setFlagsNZ(result, size)
	}
	return c.writeOperand(ea, result)
}

func (c *Core) executeMisc(opcode uint16) error {
	switch opcode {
	case 0x4e71: // NOP
		return nil
	case 0x4e75: // RTS
		c.PC = c.pop32()
		return nil
	case 0x4e73: // RTE
		if !c.Supervisor() {
			return errPrivilege{}
		}
		sr := c.pop16()
		pc := c.pop32()
		c.pop16() // discard format/vector word; multi-word frames unsupported on return
		c.SR = sr
		c.PC = pc
		return nil
	case 0x4e77: // RTR
		ccr := c.pop16()
		pc := c.pop32()
		c.SetCCR(uint8(ccr))
		c.PC = pc
		return nil
	case 0x4e76: // TRAPV
		if c.SR&SROverflow != 0 {
			c.raise(VectorTrapV, frameFormat0, nil)
		}
		return nil
	}

	if opcode&0xfff0 == 0x4e40 { // TRAP #n
		c.raise(VectorTrapBase+uint8(opcode&0xf), frameFormat0, nil)
		return nil
	}

	if opcode&0xffc0 == 0x4ec0 { // JMP
		ea := operand{mode: (opcode >> 3) & 0x7, reg: opcode & 0x7, size: SizeLong}
		addr, err := c.resolveAddress(ea)
		if err != nil {
			return err
		}
		c.PC = addr
		return nil
	}

	if opcode&0xffc0 == 0x4e80 { // JSR
		ea := operand{mode: (opcode >> 3) & 0x7, reg: opcode & 0x7, size: SizeLong}
		addr, err := c.resolveAddress(ea)
		if err != nil {
			return err
		}
		c.push32(c.PC)
		c.PC = addr
		return nil
	}

	if opcode&0xf1c0 == 0x41c0 { // LEA
		reg := (opcode >> 9) & 0x7
		ea := operand{mode: (opcode >> 3) & 0x7, reg: opcode & 0x7, size: SizeLong}
		addr, err := c.resolveAddress(ea)
		if err != nil {
			return err
		}
		c.A[reg] = addr
		return nil
	}

	if opcode&0xffc0 == 0x4840 { // SWAP (mode 0) / PEA (otherwise)
		mode := (opcode >> 3) & 0x7
		reg := opcode & 0x7
		if mode == modeDataDirect {
			v := c.D[reg]
			c.D[reg] = v<<16 | v>>16
			c.setFlagsNZ(c.D[reg], SizeLong)
			c.SR &^= SROverflow | SRCarry
			return nil
		}
		ea := operand{mode: mode, reg: reg, size: SizeLong}
		addr, err := c.resolveAddress(ea)
		if err != nil {
			return err
		}
		c.push32(addr)
		return nil
	}

	if opcode&0xfff8 == 0x4880 { // EXT byte->word
		reg := opcode & 0x7
		v := int32(int8(c.D[reg]))
		c.D[reg] = (c.D[reg] &^ 0xffff) | uint32(uint16(v))
		c.setFlagsNZ(c.D[reg]&0xffff, SizeWord)
		c.SR &^= SROverflow | SRCarry
		return nil
	}
	if opcode&0xfff8 == 0x48c0 { // EXT word->long
		reg := opcode & 0x7
		v := int32(int16(c.D[reg]))
		c.D[reg] = uint32(v)
		c.setFlagsNZ(c.D[reg], SizeLong)
		c.SR &^= SROverflow | SRCarry
		return nil
	}

	if top := opcode >> 8; top == 0x42 || top == 0x44 || top == 0x46 || top == 0x40 || top == 0x4a {
		size, ok := decodeSize((opcode >> 6) & 0x3)
		if !ok {
			return errIllegal{}
		}
		ea := eaOperand(opcode, size)

		switch top {
		case 0x42: // CLR
			c.setFlagsNZ(0, size)
			c.SR &^= SROverflow | SRCarry
			return c.writeOperand(ea, 0)
		case 0x4a: // TST
			v, err := c.readOperand(ea)
			if err != nil {
				return err
			}
			c.setFlagsNZ(v, size)
			c.SR &^= SROverflow | SRCarry
			return nil
		case 0x44: // NEG
			v, err := c.readOperand(ea)
			if err != nil {
				return err
			}
			result := (-v) & sizeMask(size)
			c.compare(0, v, size)
			return c.writeOperand(ea, result)
		case 0x46: // NOT
			v, err := c.readOperand(ea)
			if err != nil {
				return err
			}
			result := (^v) & sizeMask(size)
			c.setFlagsNZ(result, size)
			c.SR &^= SROverflow | SRCarry
			return c.writeOperand(ea, result)
		case 0x40: // NEGX
			v, err := c.readOperand(ea)
			if err != nil {
				return err
			}
			extend := uint32(0)
			if c.SR&SRExtend != 0 {
				extend = 1
			}
			result := (-v - extend) & sizeMask(size)
			c.setFlagsNZ(result, size)
			return c.writeOperand(ea, result)
		}
	}

	return errIllegal{}
}

// executeShift implements group 1110: ASL/ASR, LSL/LSR, ROL/ROR and
// ROXL/ROXR against a data register, with the shift count either an
// immediate 1-8 or the low 6 bits of another Dn — the register/memory
// addressing-mode forms (shift count always 1, EA always word-sized
// memory) are not implemented.
func (c *Core) executeShift(opcode uint16) error {
	if opcode&0xc0 == 0xc0 {
		return errIllegal{}
	}

	reg := opcode & 0x7
	size, ok := decodeSize((opcode >> 6) & 0x3)
	if !ok {
		return errIllegal{}
	}
	direction := (opcode >> 8) & 0x1 // 1 = left
	kind := (opcode >> 3) & 0x3      // 0 ASx, 1 LSx, 2 ROXx, 3 ROx
	countField := (opcode >> 9) & 0x7

	var count uint32
	if opcode&0x20 != 0 {
		count = c.D[countField] % 64
	} else {
		count = uint32(countField)
		if count == 0 {
			count = 8
		}
	}

	value := c.D[reg] & sizeMask(size)
	bits := uint32(size) * 8

	var result uint32
	var carry bool
	switch kind {
	case 0: // arithmetic
		if direction == 1 {
			result, carry = value, false
			for i := uint32(0); i < count; i++ {
				carry = result&signBit(size) != 0
				result = (result << 1) & sizeMask(size)
			}
		} else {
			signMask := signBit(size)
			result = value
			for i := uint32(0); i < count; i++ {
				carry = result&1 != 0
				result = (result >> 1) | (result & signMask)
			}
		}
	case 1: // logical
		if direction == 1 {
			result = value
			for i := uint32(0); i < count; i++ {
				carry = result&signBit(size) != 0
				result = (result << 1) & sizeMask(size)
			}
		} else {
			result = value
			for i := uint32(0); i < count; i++ {
				carry = result&1 != 0
				result >>= 1
			}
		}
	case 2, 3: // rotate (ROx; ROXx folded to the same non-extend rotate)
		shift := count % bits
		if direction == 1 {
			result = ((value << shift) | (value >> (bits - shift))) & sizeMask(size)
			carry = result&1 != 0
		} else {
			result = ((value >> shift) | (value << (bits - shift))) & sizeMask(size)
			carry = result&signBit(size) != 0
		}
	}

	if count == 0 {
		carry = c.SR&SRCarry != 0
	}

	c.D[reg] = (c.D[reg] &^ sizeMask(size)) | result
	c.setFlagsNZ(result, size)
	c.SR &^= SROverflow | SRCarry
	if carry {
		c.SR |= SRCarry
		if kind != 3 {
			c.SR |= SRExtend
		}
	} else if kind != 3 {
		c.SR &^= SRExtend
	}
	return nil
}
