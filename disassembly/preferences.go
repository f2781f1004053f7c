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

	"github.com/jetsetilly/clocksignal/hardware/memory/memorymap"
	"github.com/jetsetilly/clocksignal/paths"
	"github.com/jetsetilly/clocksignal/prefs"
)

// DefaultPrefsFile is the name of the file disassembly preferences are
// saved to, relative to the resource path.
const DefaultPrefsFile = "disassembly.prefs"

type Preferences struct {
	dsm *Disassembly
	dsk *prefs.Disk

	// whether to apply the high mirror bits to the displayed address
	FxxxMirror prefs.Bool
	Symbols    prefs.Bool

	// the lowest value to use when formatting address values. changed by the
	// preferences system
	mirrorOrigin uint16
}

// newPreferences is the preferred method of initialisation for the Preferences type.
func newPreferences(dsm *Disassembly) (*Preferences, error) {
	p := &Preferences{
		dsm:          dsm,
		mirrorOrigin: memorymap.OriginCart,
	}

	pth, err := paths.ResourcePath("", DefaultPrefsFile)
	if err != nil {
		return nil, err
	}

	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Add("disassembly.fxxxMirror", &p.FxxxMirror)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("disassembly.symbols", &p.Symbols)
	if err != nil {
		return nil, err
	}

	if err := p.dsk.Load(); err != nil {
		return nil, err
	}
	p.applyMirror()

	return p, nil
}

// Load disassembly preferences and apply to the current disassembly.
func (p *Preferences) Load() error {
	if err := p.dsk.Load(); err != nil {
		return err
	}
	p.applyMirror()
	return nil
}

// applyMirror updates mirrorOrigin to match the current value of
// FxxxMirror and refreshes every disassembled entry's displayed address.
func (p *Preferences) applyMirror() {
	if p.FxxxMirror.Get() {
		p.mirrorOrigin = memorymap.OriginCartFxxxMirror
	} else {
		p.mirrorOrigin = memorymap.OriginCart
	}
	p.dsm.setCartMirror()
}

// Save current disassembly preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}

// setCartMirror sets the mirror bits to the user's preference. called by
// applyMirror().
func (dsm *Disassembly) setCartMirror() {
	dsm.crit.Lock()
	defer dsm.crit.Unlock()

	for b := range dsm.disasmEntries.Entries {
		for _, e := range dsm.disasmEntries.Entries[b] {
			if e == nil || e.Result.Defn == nil {
				continue
			}

			// mask off bits that indicate the cartridge/segment origin and reset
			// them with the chosen origin
			a := e.Result.Address&memorymap.CartridgeBits | dsm.Prefs.mirrorOrigin
			e.Address = fmt.Sprintf("$%04x", a)

			// branch instructions need special handling because for readability we
			// translate the offset to an absolute address, which has changed.
			if e.Result.Defn.IsBranch() {
				e.Operand = dsm.formatBranchOperand(e.Bank.Number, a, e.Result.InstructionData, e.Result.Defn.Bytes)
			}
		}
	}
}
