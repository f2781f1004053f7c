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

// Package unique builds filenames that don't collide with files already on
// disk, used whenever the emulation dumps something (a ROM image, a
// screenshot) under a name derived from the cartridge/media name.
package unique

import (
	"fmt"
	"os"
	"path/filepath"
)

// Filename returns name, optionally prefixed with prefix, disambiguated
// with a numeric suffix if a file of that name already exists in the
// current directory.
func Filename(prefix string, name string) string {
	base := name
	if prefix != "" {
		base = fmt.Sprintf("%s_%s", prefix, name)
	}

	candidate := base
	for n := 1; ; n++ {
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
		candidate = fmt.Sprintf("%s_%d", base, n)
	}
}

// FilenameInPath is equivalent to Filename but resolves the candidate
// against dir before checking for collisions, returning a path relative to
// dir.
func FilenameInPath(dir string, prefix string, name string) string {
	base := name
	if prefix != "" {
		base = fmt.Sprintf("%s_%s", prefix, name)
	}

	candidate := base
	for n := 1; ; n++ {
		if _, err := os.Stat(filepath.Join(dir, candidate)); os.IsNotExist(err) {
			return candidate
		}
		candidate = fmt.Sprintf("%s_%d", base, n)
	}
}
