package arm

import "github.com/jetsetilly/clocksignal/coprocessor/objdump"

// SymbolSource resolves an ARM program address back to the source line
// it was compiled from, when an "objdump -S" listing is available for
// the coprocessor image currently executing. It is entirely optional —
// an Executor with no SymbolSource attached still runs, it simply has
// nothing useful to report for a trap beyond the raw address.
type SymbolSource struct {
	dump *objdump.ObjDump
}

// LoadSymbolSource parses an "objdump -S" listing (as produced against
// the ELF a coprocessor cartridge was built from) sitting alongside
// pathToROM, per the search order objdump.NewObjDump already
// implements (cwd, ROM directory, main/, main/bin/, custom/bin/).
func LoadSymbolSource(pathToROM string) (*SymbolSource, error) {
	dump, err := objdump.NewObjDump(pathToROM)
	if err != nil {
		return nil, err
	}
	return &SymbolSource{dump: dump}, nil
}

// AttachSymbols lets a trap report source context for the faulting
// address rather than a bare hex number, useful when an
// UndefinedInstruction/DataAbort/AddressException trap is surfaced to a
// debugger.
func (e *Executor) AttachSymbols(s *SymbolSource) {
	e.symbols = s
}

// DescribeAddress returns the "file:line\nsource" text for address if a
// SymbolSource is attached and knows about it, or the empty string
// otherwise.
func (e *Executor) DescribeAddress(address uint32) string {
	if e.symbols == nil || e.symbols.dump == nil {
		return ""
	}
	return e.symbols.dump.FindProgramAccess(address)
}
