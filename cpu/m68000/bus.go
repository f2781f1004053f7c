package m68000

// Bus is the memory interface a Core executes against. ok is false on
// a bus error (an access to unmapped space); addr being odd on a
// word/long access is detected by the Core itself and raised as an
// address error before the Bus is ever consulted.
type Bus interface {
	ReadByte(addr uint32) (value uint8, ok bool)
	ReadWord(addr uint32) (value uint16, ok bool)
	ReadLong(addr uint32) (value uint32, ok bool)
	WriteByte(addr uint32, value uint8) (ok bool)
	WriteWord(addr uint32, value uint16) (ok bool)
	WriteLong(addr uint32, value uint32) (ok bool)
}

// FunctionCodeBus describes a Bus that cares about the supervisor/user,
// program/data function code accompanying each access. The Core never
// calls SetFunctionCode and no Bus in this tree implements it, so no
// access carries a function code.
type FunctionCodeBus interface {
	Bus
	SetFunctionCode(supervisor, program bool)
}
