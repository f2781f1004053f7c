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

package cartridge

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/clocksignal/cartridgeloader"
	"github.com/jetsetilly/clocksignal/errors"
	"github.com/jetsetilly/clocksignal/hardware/memory/cartridge/banks"
)

// NoCartridgeError is returned by Cartridge functions that require a ROM to
// have been attached.
const NoCartridgeError = "cartridge error: no cartridge attached"

// Cartridge defines the information and operations for a VCS cartridge.
type Cartridge struct {
	// the name of the loaded cartridge. in most instances this will be the
	// filename of the ROM, stripped of path and file extension
	Filename string

	// hash of the loaded cartridge data
	Hash string

	// the actual mapper that implements the cartridge format. never nil --
	// an unattached Cartridge behaves as ejected memory
	mapper cartMapper
}

// NewCartridge is the preferred method of initialisation for the Cartridge
// type. In the unattached state the cartridge behaves like a bank of
// "ejected" memory: every read returns 0xff and writes are ignored.
func NewCartridge() *Cartridge {
	cart := &Cartridge{}
	cart.Eject()
	return cart
}

// String returns a human readable description of the current cartridge.
func (cart *Cartridge) String() string {
	if cart.IsEjected() {
		return "ejected"
	}

	s := strings.Builder{}
	s.WriteString(cart.Filename)

	if desc := fmt.Sprint(cart.mapper); desc != "" {
		s.WriteString(" [")
		s.WriteString(desc)
		s.WriteString("]")
	}

	return s.String()
}

// Eject removes the current cartridge mapper and replaces it with one that
// always returns a null result. A cartridge in this state allows the rest of
// the system to continue operating sensibly even when no ROM has been
// loaded.
func (cart *Cartridge) Eject() {
	cart.Filename = "ejected"
	cart.Hash = ""
	cart.mapper = newEjected()
}

// IsEjected returns true if no cartridge data has been attached.
func (cart *Cartridge) IsEjected() bool {
	_, ok := cart.mapper.(*ejected)
	return ok
}

// Attach loads the cartridge data referenced by cartload and sets up the
// mapper appropriate to the format, either named explicitly by
// cartload.Mapping or inferred by fingerprinting the data.
func (cart *Cartridge) Attach(cartload cartridgeloader.Loader) error {
	err := cartload.Open()
	if err != nil {
		return errors.New(errors.CartridgeFileError, err)
	}
	defer cartload.Close()

	data := *cartload.Data

	mapping := strings.ToUpper(strings.TrimSpace(cartload.Mapping))
	if mapping == "" || mapping == "AUTO" {
		mapping = fingerprint(data)
	}

	var mapper cartMapper

	switch mapping {
	case "2K":
		mapper, err = newAtari2k(data)
	case "4K":
		mapper, err = newAtari4k(data)
	case "F8":
		mapper, err = newAtari8k(data)
	case "F6":
		mapper, err = newAtari16k(data)
	case "F4":
		mapper, err = newAtari32k(data)
	case "FA":
		mapper, err = newCBS(data)
	case "E0":
		mapper, err = newparkerBros(data)
	case "E7":
		mapper, err = newMnetwork(data)
	case "3F":
		mapper, err = newTigervision(data)
	case "DPC":
		mapper, err = newDPC(data)
	default:
		return errors.New(errors.CartridgeError, fmt.Sprintf("unsupported cartridge mapping (%s)", mapping))
	}

	if err != nil {
		return errors.New(errors.CartridgeFileError, err)
	}

	if sc, ok := mapper.(optionalSuperchip); ok {
		sc.addSuperchip()
	}

	cart.mapper = mapper
	cart.Filename = cartload.Name
	cart.Hash = cartload.HashSHA1

	return nil
}

// fingerprint decides on a cartridge mapping by inspecting the loaded data
// for instruction patterns characteristic of each bank-switching scheme.
// Formats that aren't distinguishable by fingerprint (the plain Atari sizes)
// are decided on length alone.
func fingerprint(data []byte) string {
	if fingerprintTigervision(data) {
		return "3F"
	}
	if fingerprintParkerBros(data) {
		return "E0"
	}
	if fingerprintMnetwork(data) {
		return "E7"
	}

	switch len(data) {
	case 2048:
		return "2K"
	case 4096:
		return "4K"
	case 8192:
		return "F8"
	case 16384:
		return "F6"
	case 32768:
		return "F4"
	}

	// no exact match. pick the smallest standard size the data will fit in
	if len(data) <= 8192 {
		return "F8"
	} else if len(data) <= 16384 {
		return "F6"
	}
	return "F4"
}

// Peek returns the value at the given address without side effects.
func (cart *Cartridge) Peek(addr uint16) (uint8, error) {
	return cart.mapper.read(addr)
}

// Read returns the value at the given address, possibly triggering a
// bank-switch as a side effect.
func (cart *Cartridge) Read(addr uint16) (uint8, error) {
	return cart.mapper.read(addr)
}

// Write attempts to write data to the address. Most cartridge formats treat
// this as a bank-switch trigger rather than a true write.
func (cart *Cartridge) Write(addr uint16, data uint8) error {
	return cart.mapper.write(addr, data)
}

// Poke writes data to the address, bypassing any bank-switching logic that
// would otherwise be triggered.
func (cart *Cartridge) Poke(addr uint16, data uint8) error {
	return cart.mapper.poke(addr, data)
}

// Patch permanently alters cartridge data, addressed by the offset into the
// ROM's flattened data, not the VCS address space.
func (cart *Cartridge) Patch(offset uint16, data uint8) error {
	return cart.mapper.patch(offset, data)
}

// Listen distributes a write to an address outside of cartridge space, for
// those mappers (eg. DPC) that snoop on other memory activity.
func (cart *Cartridge) Listen(addr uint16, data uint8) {
	cart.mapper.listen(addr, data)
}

// Step advances any internal clocked state the mapper maintains (eg. the DPC
// data fetchers). Called once per colour clock.
func (cart *Cartridge) Step() {
	if s, ok := cart.mapper.(interface{ step() }); ok {
		s.step()
	}
}

// NumBanks returns the number of banks the current mapper supports.
func (cart *Cartridge) NumBanks() int {
	return cart.mapper.numBanks()
}

// GetBank returns bank information for the supplied address.
func (cart *Cartridge) GetBank(addr uint16) banks.Details {
	if cart.IsEjected() {
		return banks.Details{NonCart: true}
	}
	return banks.Details{Number: cart.mapper.getBank(addr)}
}

// SetBank sets the bank mapped to the supplied address. Used by the
// disassembler and debugger to inspect banks other than the one currently
// selected.
func (cart *Cartridge) SetBank(addr uint16, bank int) error {
	return cart.mapper.setBank(addr, bank)
}

// CopyBanks returns a copy of every bank of cartridge data, regardless of
// which bank is currently selected. Used by the disassembler to work through
// the entirety of the cartridge without disturbing the mapper's state.
func (cart *Cartridge) CopyBanks() ([]banks.Content, error) {
	return cart.mapper.copyBanks(), nil
}

// RAMinfo describes the additional RAM areas, if any, mapped by the current
// cartridge.
func (cart *Cartridge) RAMinfo() []RAMinfo {
	return cart.mapper.getRAMinfo()
}

// SaveState returns a snapshot of the mapper's internal state suitable for
// later use with RestoreState.
func (cart *Cartridge) SaveState() interface{} {
	return cart.mapper.saveState()
}

// RestoreState restores a snapshot previously returned by SaveState.
func (cart *Cartridge) RestoreState(state interface{}) error {
	return cart.mapper.restoreState(state)
}
