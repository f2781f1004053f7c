// Package disassembly coordinates the disassembly of cartridge memory. For
// simple presentations of a cartridge the FromCartridge() function can be
// used. Many debuggers will probably find it more useful to disassemble from
// the memory of an already instantiated VCS, with the FromMemory() method of
// an existing Disassembly.
//
// The disassembly is made in two passes. The decode pass decodes every
// possible address in every cartridge bank as though it were the start of an
// instruction (EntryLevelDecoded, or EntryLevelUnmappable for addresses the
// bank cannot reach). The bless pass then follows the flow of the program
// from the reset address and from the targets of JMP, JSR and branch
// instructions, promoting the entries it reaches to EntryLevelBlessed.
//
// It is possible for real execution of the ROM to reach places the bless pass
// does not. For example:
//
// - Addresses stuffed into the stack and RTS being called, without an explicit
// JSR.
//
// - Branching or jumping to non-cartridge memory. (ie. RAM) and executing code
// there.
//
// Decoded entries are still available for addresses like these.
//
// Entries are visited with the NewBanksIteration() and NewEntriesIteration()
// iterators, which select entries by minimum EntryLevel, or with
// IterateBlessed(). Grep() searches blessed entries, and Write(), WriteBank()
// and WriteAddr() print them.
package disassembly
