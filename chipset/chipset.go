// Package chipset declares the contract a custom-chipset DMA scheduler
// implements for the machines whose video/audio/disk/sprite hardware
// shares a single memory bus arbitrated by raster position rather than
// being driven directly by the CPU.
package chipset

import "github.com/jetsetilly/clocksignal/clock"

// Changes summarises what happened during one run_for call: how many
// horizontal/vertical syncs the raster crossed and the resulting
// interrupt priority level, mirroring the accumulation pattern the
// Amiga chipset's own Changes struct uses so a caller can batch many
// small advances and apply their total effect once.
type Changes struct {
	HSyncs          int
	VSyncs          int
	InterruptLevel  int
	Duration        clock.HalfCycles
}

// Add accumulates rhs into c, used when a caller advances the chipset in
// several small steps (e.g. to align to a CPU bus slot) and wants the
// combined effect.
func (c *Changes) Add(rhs Changes) {
	c.HSyncs += rhs.HSyncs
	c.VSyncs += rhs.VSyncs
	c.Duration += rhs.Duration
	if rhs.InterruptLevel > c.InterruptLevel {
		c.InterruptLevel = rhs.InterruptLevel
	}
}

// Profiler is implemented by a chipset scheduler to let a host report
// per-slot DMA utilisation (bitplane/audio/sprite/disk/refresh/Copper/
// Blitter/CPU) without the scheduler depending on a concrete stats
// sink; the debug dashboard wires into this.
type Profiler interface {
	// SlotUtilisation returns how many of each named DMA slot type were
	// granted versus offered. The amiga scheduler counts every slot since
	// it was constructed; its counts are never reset.
	SlotUtilisation() map[string]SlotStats
}

// SlotStats is one named slot type's occupancy for the sampled period.
type SlotStats struct {
	Granted int
	Offered int
}
