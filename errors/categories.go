package errors

// error messages, grouped by the subsystem that raises them. Each constant
// is a format string suitable for passing to Errorf/New; most expect a
// single %v-style argument describing the specific failure.
const (
	// Debugger
	InputEmpty            = "input is empty"
	CommandError          = "%v"
	SymbolsFileCannotOpen = "symbols file error: cannot open (%v)"
	SymbolsFileError      = "symbols file error: %v"
	SymbolUnknown         = "symbol unknown (%v)"
	ScriptFileCannotOpen  = "script error: cannot open script file (%v)"
	ScriptFileError       = "script error: %v"
	InvalidTarget         = "invalid target (%v)"

	// CPU
	UnimplementedInstruction       = "cpu error: unimplemented instruction (%#02x) at (%#04x)"
	NullInstruction                = "cpu error: null instruction"
	ProgramCounterCycled           = "cpu error: program counter has cycled back to (%#04x)"
	InvalidOperationMidInstruction = "cpu error: invalid operation mid-instruction (%v)"

	// Memory
	UnservicedChipWrite = "memory error: chip write has not been serviced (%v)"
	UnknownRegisterName = "memory error: unknown register name (%v)"
	UnreadableAddress   = "memory error: cannot read address (%v)"
	UnwritableAddress   = "memory error: cannot write address (%v)"
	UnrecognisedAddress = "memory error: unrecognised address (%v)"
	UnpokeableAddress   = "memory error: cannot poke address (%v)"
	BusError            = "memory error: inaccessible address (%v)"

	// Cartridges
	CartridgeFileError   = "cartridge error: %v"
	CartridgeUnsupported = "cartridge error: unsupported cartridge (%v)"
	CartridgeMissing     = "cartridge error: no cartridge attached"
	CartridgeError       = "cartridge error: %v"
	CartridgeEjected     = "cartridge error: no cartridge attached"
	UnpatchableCartType  = "cartridge error: %v cannot be patched"

	// TV
	UnknownTVRequest = "television error: unsupported request (%v)"
	SDLTV            = "television error: sdl: %v"
	ImageTV          = "television error: image: %v"
	DigestTV         = "television error: digest: %v"

	// Peripherals
	NoControllersFound = "no controllers found"
)
