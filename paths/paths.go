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

// Package paths resolves a (subdirectory, filename) pair to a path under
// the emulator's configuration directory. It is package resources' sibling
// for callers (disassembly preferences) that only need a single joined
// path rather than resources' variadic form.
package paths

import "path/filepath"

const baseDirectory = ".gopher2600"

// ResourcePath joins dir and filename onto the base configuration
// directory. Either may be empty.
func ResourcePath(dir string, filename string) (string, error) {
	return filepath.Join(baseDirectory, dir, filename), nil
}
