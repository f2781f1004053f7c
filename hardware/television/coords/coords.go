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

// Package coords describes the (frame, scanline, clock) position of a raster
// beam. It's shared by every CRT-driven machine's chipset (the Atari TIA,
// the Amiga Chipset, any future raster-based video generator) and by the
// random package, which uses it to produce a seed that is stable under
// rewind/replay.
package coords

import "fmt"

// FrameIsUndefined is used in place of a frame number when the frame
// dimension should be ignored during comparison (eg. when comparing a
// recorded coordinate that didn't record frame information).
const FrameIsUndefined = -1

// TelevisionCoords describes a unique position in the two-dimensional
// scanline/clock raster, repeated every frame.
type TelevisionCoords struct {
	Frame    int
	Scanline int
	Clock    int
}

// String implements fmt.Stringer.
func (c TelevisionCoords) String() string {
	return fmt.Sprintf("frame: %d, scanline: %d, clock: %d", c.Frame, c.Scanline, c.Clock)
}

// Equal compares two coordinates. If either Frame field is
// FrameIsUndefined then the frame dimension is not compared.
func Equal(a, b TelevisionCoords) bool {
	if a.Frame != FrameIsUndefined && b.Frame != FrameIsUndefined && a.Frame != b.Frame {
		return false
	}
	return a.Scanline == b.Scanline && a.Clock == b.Clock
}

// GreaterThan returns true if a occurs later in time than b. Frame takes
// priority, then scanline, then clock.
func GreaterThan(a, b TelevisionCoords) bool {
	if a.Frame != b.Frame {
		return a.Frame > b.Frame
	}
	if a.Scanline != b.Scanline {
		return a.Scanline > b.Scanline
	}
	return a.Clock > b.Clock
}
