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

// Package random provides randomisation that respects the determinism
// property (§8 of the specification this module implements): two runs of
// the same machine, given the same ROMs/media/options and the same
// input-event stream, must produce bit-identical state. A naive use of
// math/rand would break this the moment a state snapshot is rewound and
// replayed, because the generator's internal state would no longer match
// the position in the replay.
//
// Random solves this by reseeding from the current raster position (or, for
// non-CRT machines, the caller-supplied TV stand-in) on every "rewindable"
// request, so that asking for the Nth random value at a given raster
// position always yields the same answer regardless of how many times the
// emulation has been rewound and replayed to get there.
package random

import (
	"math/rand/v2"

	"github.com/jetsetilly/clocksignal/hardware/television/coords"
)

// TV is the minimal interface Random needs from whatever stands in for the
// machine's raster/clock position.
type TV interface {
	GetCoords() coords.TelevisionCoords
}

// Random is the source of randomisation for a single machine instance.
type Random struct {
	tv TV

	// ZeroSeed forces the seed to zero, for deterministic tests.
	ZeroSeed bool

	// noRewind is a plain generator that is not reseeded; values obtained
	// through NoRewind() are not required to survive a rewind/replay cycle
	// (eg. power-on register randomisation, where a rewind always resets
	// back past the point the randomisation happened anyway).
	noRewind *rand.Rand
}

// NewRandom is the preferred method of initialisation for the Random type.
func NewRandom(tv TV) *Random {
	return &Random{
		tv:       tv,
		noRewind: rand.New(rand.NewPCG(1, 1)),
	}
}

func (r *Random) seed() uint64 {
	if r.ZeroSeed {
		return 0
	}
	c := r.tv.GetCoords()
	return uint64(c.Frame)<<40 ^ uint64(c.Scanline)<<20 ^ uint64(c.Clock)
}

// Rewindable returns a value in [0,n) that is a pure function of the
// current raster position (and therefore safe to call repeatedly across a
// rewind/replay without diverging).
func (r *Random) Rewindable(n int) int {
	if n <= 0 {
		return 0
	}
	s := r.seed()
	g := rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))
	return g.IntN(n)
}

// NoRewind returns a value in [0,n) from an internal generator that is
// never reseeded. Used for one-off randomisation (eg. power-on register
// state) where rewind-stability isn't required.
func (r *Random) NoRewind(n int) int {
	if n <= 0 {
		return 0
	}
	if r.ZeroSeed {
		return 0
	}
	return r.noRewind.IntN(n)
}
