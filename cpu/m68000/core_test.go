package m68000_test

import (
	"testing"

	"github.com/jetsetilly/clocksignal/cpu/m68000"
)

// mockBus is a flat 1MB address space, enough to exercise the core
// without needing a real chipset/mapper behind it.
type mockBus struct {
	mem [1024 * 1024]byte
}

func newMockBus() *mockBus {
	return &mockBus{}
}

func (b *mockBus) ReadByte(addr uint32) (uint8, bool) {
	if int(addr) >= len(b.mem) {
		return 0, false
	}
	return b.mem[addr], true
}

func (b *mockBus) ReadWord(addr uint32) (uint16, bool) {
	if int(addr)+1 >= len(b.mem) {
		return 0, false
	}
	return uint16(b.mem[addr])<<8 | uint16(b.mem[addr+1]), true
}

func (b *mockBus) ReadLong(addr uint32) (uint32, bool) {
	hi, ok := b.ReadWord(addr)
	if !ok {
		return 0, false
	}
	lo, ok := b.ReadWord(addr + 2)
	if !ok {
		return 0, false
	}
	return uint32(hi)<<16 | uint32(lo), true
}

func (b *mockBus) WriteByte(addr uint32, v uint8) bool {
	if int(addr) >= len(b.mem) {
		return false
	}
	b.mem[addr] = v
	return true
}

func (b *mockBus) WriteWord(addr uint32, v uint16) bool {
	if int(addr)+1 >= len(b.mem) {
		return false
	}
	b.mem[addr] = uint8(v >> 8)
	b.mem[addr+1] = uint8(v)
	return true
}

func (b *mockBus) WriteLong(addr uint32, v uint32) bool {
	return b.WriteWord(addr, uint16(v>>16)) && b.WriteWord(addr+2, uint16(v))
}

func (b *mockBus) putWords(origin uint32, words ...uint16) uint32 {
	for i, w := range words {
		b.WriteWord(origin+uint32(i)*2, w)
	}
	return origin + uint32(len(words))*2
}

func newTestCore(entry uint32) (*m68000.Core, *mockBus) {
	bus := newMockBus()
	bus.WriteLong(0, 0x00010000) // initial SSP
	bus.WriteLong(4, entry)      // initial PC
	core := m68000.NewCore(bus)
	return core, bus
}

func TestMoveqSetsRegisterAndFlags(t *testing.T) {
	core, bus := newTestCore(0x1000)
	bus.putWords(0x1000, 0x7000) // MOVEQ #0, D0

	core.RunFor(16)

	if core.D[0] != 0 {
		t.Errorf("D0 = %#x, want 0", core.D[0])
	}
	if core.SR&m68000.SRZero == 0 {
		t.Error("zero flag not set after MOVEQ #0")
	}
}

func TestMoveqNegative(t *testing.T) {
	core, bus := newTestCore(0x1000)
	bus.putWords(0x1000, 0x70ff) // MOVEQ #-1, D0

	core.RunFor(16)

	if core.D[0] != 0xffffffff {
		t.Errorf("D0 = %#x, want 0xffffffff", core.D[0])
	}
	if core.SR&m68000.SRNegative == 0 {
		t.Error("negative flag not set after MOVEQ #-1")
	}
}

func TestAddDataRegisters(t *testing.T) {
	core, bus := newTestCore(0x1000)
	bus.putWords(0x1000,
		0x7002, // MOVEQ #2, D0
		0x7203, // MOVEQ #3, D1
		0xd081, // ADD.L D1,D0
	)

	core.RunFor(24)

	if core.D[0] != 5 {
		t.Errorf("D0 = %d, want 5", core.D[0])
	}
}

func TestBraLoop(t *testing.T) {
	core, bus := newTestCore(0x1000)
	bus.putWords(0x1000,
		0x7000, // MOVEQ #0, D0
		0x5280, // ADDQ.L #1, D0
		0x0c80, 0x0000, 0x0003, // CMPI.L #3, D0
		0x66f6, // BNE (back to ADDQ, at 0x1002)
	)

	core.RunFor(200)

	if core.D[0] != 3 {
		t.Errorf("D0 = %d, want 3 after loop", core.D[0])
	}
}

func TestIllegalInstructionTraps(t *testing.T) {
	core, bus := newTestCore(0x1000)
	// vector 4 (illegal instruction) handler at 0x2000
	bus.WriteLong(4*4, 0x2000)
	bus.putWords(0x1000, 0xffff) // not a valid opcode in this core's subset
	bus.putWords(0x2000, 0x4e71) // NOP, just to prove we got here

	core.RunFor(16)

	if core.PC < 0x2000 {
		t.Errorf("PC = %#x, want >= 0x2000 (illegal-instruction vector taken)", core.PC)
	}
	if !core.Supervisor() {
		t.Error("expected supervisor mode after exception entry")
	}
}

func TestJsrRts(t *testing.T) {
	core, bus := newTestCore(0x1000)
	bus.putWords(0x1000,
		0x4eb9, 0x0000, 0x2000, // JSR $2000.L
		0x7007, // MOVEQ #7, D0 (return lands here)
	)
	bus.putWords(0x2000,
		0x7201, // MOVEQ #1, D1
		0x4e75, // RTS
	)

	core.RunFor(64)

	if core.D[1] != 1 {
		t.Errorf("D1 = %d, want 1 (subroutine ran)", core.D[1])
	}
	if core.D[0] != 7 {
		t.Errorf("D0 = %d, want 7 (returned to caller)", core.D[0])
	}
}
