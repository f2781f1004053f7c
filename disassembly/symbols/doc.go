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

// Package symbols helps keep track of address symbols for the currently loaded
// cartridge. It keeps one label table per cartridge bank plus a read table
// and a write table, and fills the read and write tables with the standard
// (or canonical) symbol names. Further symbols are added with AddLabel and
// AddSymbol. The package contains no reader for DASM symbol files.
package symbols
