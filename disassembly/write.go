// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

package disassembly

import (
	"fmt"
	"io"

	"github.com/jetsetilly/clocksignal/errors"
)

// line renders an Entry using the column widths recorded in dsm.fields.
func (dsm *Disassembly) line(e *Entry) string {
	return fmt.Sprintf("%s  %s  %s  %s %s  %s  %s  %s  %s",
		dsm.GetField(FldLocation, e),
		dsm.GetField(FldBytecode, e),
		dsm.GetField(FldAddress, e),
		dsm.GetField(FldMnemonic, e),
		dsm.GetField(FldOperand, e),
		dsm.GetField(FldDefnCycles, e),
		dsm.GetField(FldDefnNotes, e),
		dsm.GetField(FldActualCycles, e),
		dsm.GetField(FldActualNotes, e),
	)
}

// Write the entire disassembly to io.Writer.
func (dsm *Disassembly) Write(output io.Writer) error {
	for b := range dsm.disasmEntries.Entries {
		for _, e := range dsm.disasmEntries.Entries[b] {
			if e != nil && e.Level >= EntryLevelBlessed {
				output.Write([]byte(dsm.line(e)))
				output.Write([]byte("\n"))
			}
		}
	}

	return nil
}

// WriteBank writes the disassembly of the selected bank to io.Writer.
func (dsm *Disassembly) WriteBank(output io.Writer, bank int) error {
	if bank >= len(dsm.disasmEntries.Entries) {
		return nil
	}

	for _, e := range dsm.disasmEntries.Entries[bank] {
		if e != nil && e.Level >= EntryLevelBlessed {
			output.Write([]byte(dsm.line(e)))
			output.Write([]byte("\n"))
		}
	}

	return nil
}

// WriteAddr writes the disassembly of the specified address to the io.Writer.
func (dsm *Disassembly) WriteAddr(output io.Writer, addr uint16) error {
	e := dsm.GetEntryByAddress(addr)
	if e != nil && e.Level >= EntryLevelBlessed {
		output.Write([]byte(dsm.line(e)))
	} else {
		return errors.New(errors.CommandError, fmt.Sprintf("no blessed disassembly at $%04x", addr))
	}
	return nil
}
