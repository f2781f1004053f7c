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

// Package resources centralises the paths used to store configuration,
// save states and dumped media, all of which live under a single
// dotfile-style base directory in the user's home folder. JoinPath builds
// paths relative to that base; resources/fs resolves them to an absolute
// path.
package resources

import "path/filepath"

// baseDirectory is the name of the folder, relative to the user's home
// directory, under which all configuration and save data is kept.
const baseDirectory = ".gopher2600"

// JoinPath joins path elements onto the base configuration directory.
// Empty elements are ignored, mirroring the behaviour of filepath.Join.
func JoinPath(path ...string) (string, error) {
	return filepath.Join(append([]string{baseDirectory}, path...)...), nil
}
