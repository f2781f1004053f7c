package atari2600

import "github.com/jetsetilly/clocksignal/hardware/cpu/instructions"

// definitionTable indexes instructions.Definitions by opcode, built
// once at package init since the embedded JSON it's generated from
// lists entries in no particular opcode order.
var definitionTable = func() [256]instructions.Definition {
	var table [256]instructions.Definition
	for _, d := range instructions.Definitions {
		table[d.OpCode] = d
	}
	return table
}()

// disassembly is the subset of a static disassembly pass this
// analyser's paging heuristics consult: every address the code touches,
// split by whether the access fell inside the window being disassembled
// ("internal", e.g. the cartridge's own potential bankswitch hardware
// addresses) or outside it ("external", e.g. a write to a hardware
// register elsewhere in the 6507's address space), and further split by
// read/write/modify effect.
type disassembly struct {
	internalLoads, internalStores, internalModifies map[uint16]bool
	externalStores                                  map[uint16]bool
}

func newDisassembly() *disassembly {
	return &disassembly{
		internalLoads:    make(map[uint16]bool),
		internalStores:   make(map[uint16]bool),
		internalModifies: make(map[uint16]bool),
		externalStores:   make(map[uint16]bool),
	}
}

// addressMapper turns a 16-bit CPU address into an offset into the
// segment being disassembled, or -1 if the address falls outside it.
type addressMapper func(address uint16) int

// disassemble walks every reachable instruction starting from the given
// entry points, decoding opcodes directly from data via the 6502
// instruction-definition table, and recording each load/store/modify
// address disassemble's mapper resolves (mirroring
// Analyser::Static::MOS6502::Disassemble, simplified to a linear scan
// with a visited-address set rather than full control-flow tracing,
// since the paging heuristics this feeds only care about the set of
// touched addresses, not instruction order).
func disassemble(data []byte, mapper addressMapper, entryPoints []uint16) *disassembly {
	d := newDisassembly()
	visited := make(map[int]bool)
	queue := append([]uint16(nil), entryPoints...)

	for len(queue) > 0 {
		pc := queue[0]
		queue = queue[1:]

		for steps := 0; steps < 1<<16; steps++ {
			offset := mapper(pc)
			if offset < 0 || offset >= len(data) || visited[offset] {
				break
			}
			visited[offset] = true

			opcode := data[offset]
			def := definitionTable[opcode]
			if def.Bytes == 0 {
				def.Bytes = 1
			}

			operandAddress, hasAddress := operandAddress(def, data, offset, pc)
			if hasAddress {
				switch def.Effect {
				case instructions.Write:
					record(d.externalStores, d.internalStores, operandAddress, mapper)
				case instructions.Modify:
					record(d.externalStores, d.internalModifies, operandAddress, mapper)
				default:
					recordLoad(d, operandAddress, mapper)
				}
			}

			if def.Effect == instructions.Flow && def.IsBranch() {
				// A conditional branch continues the linear scan and
				// also queues its target for a later pass.
				target := branchTarget(data, offset, def.Bytes, pc)
				queue = append(queue, target)
			}
			if def.Operator == instructions.JMP || def.Operator == instructions.RTS || def.Operator == instructions.BRK {
				break
			}

			pc += uint16(def.Bytes)
		}
	}

	return d
}

func record(external, internal map[uint16]bool, address uint16, mapper addressMapper) {
	if mapper(address) >= 0 {
		internal[address] = true
	} else {
		external[address] = true
	}
}

func recordLoad(d *disassembly, address uint16, mapper addressMapper) {
	if mapper(address) >= 0 {
		d.internalLoads[address] = true
	}
}

// operandAddress computes the effective address an instruction touches,
// for the addressing modes that name one. Indexed modes are resolved to
// their base address, which is sufficient for the hardware-address
// range checks this analyser performs.
func operandAddress(def instructions.Definition, data []byte, offset int, pc uint16) (uint16, bool) {
	switch def.AddressingMode {
	case instructions.Absolute, instructions.AbsoluteX, instructions.AbsoluteY, instructions.Indirect:
		if offset+2 >= len(data) {
			return 0, false
		}
		return uint16(data[offset+1]) | uint16(data[offset+2])<<8, true
	case instructions.PreIndexed, instructions.PostIndexed:
		if offset+1 >= len(data) {
			return 0, false
		}
		return uint16(data[offset+1]), true
	default:
		return 0, false
	}
}

func branchTarget(data []byte, offset, length int, pc uint16) uint16 {
	if offset+1 >= len(data) {
		return pc
	}
	displacement := int8(data[offset+1])
	return uint16(int32(pc) + int32(length) + int32(displacement))
}
