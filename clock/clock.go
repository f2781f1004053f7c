// Package clock defines the time unit shared by every component in a
// machine and the hint protocol components use to tell the bus owner how
// they want to be scheduled.
package clock

import "fmt"

// HalfCycles is the canonical time unit used throughout the emulation core:
// one half of a master clock tick. Using a half-cycle rather than a whole
// cycle as the base unit lets CPUs that sample state mid-cycle (the 68000's
// bus phases, the ARM's pipeline) and CPUs that only ever act on whole
// cycles (the 6502, the Z80) share one clock without either side losing
// precision.
//
// HalfCycles never runs backward: components only ever receive positive
// durations through run_for, and a component's own notion of elapsed time
// only ever increases.
type HalfCycles int64

// Cycles is a whole master-clock cycle: two HalfCycles. Flushing a
// HalfCycles value into Cycles may leave a residual half-cycle behind,
// which the caller is expected to carry forward into the next flush rather
// than discard.
type Cycles int64

// AsHalfCycles widens a whole-cycle count back into half-cycles.
func (c Cycles) AsHalfCycles() HalfCycles {
	return HalfCycles(c) * 2
}

// Flush divides h into whole Cycles and a HalfCycles remainder. The
// remainder must be carried by the caller into the next accumulation;
// dropping it would make the component's clock drift relative to the rest
// of the machine.
func (h HalfCycles) Flush() (whole Cycles, remainder HalfCycles) {
	whole = Cycles(h / 2)
	remainder = h % 2
	return
}

// String satisfies fmt.Stringer.
func (h HalfCycles) String() string {
	return fmt.Sprintf("%d half-cycles", int64(h))
}

// ClockingHint is the tag a component reports through its ClockingObserver
// to tell the bus owner how urgently it needs run_for to be called again.
// The bus owner uses this to decide between ticking a component every
// master-clock step (expensive, exact) or batching several steps into one
// run_for call (cheap, only safe when the component has said it doesn't
// need finer granularity right now).
type ClockingHint int

const (
	// None means the component has no pending work; run_for need not be
	// called again until some external event (an interrupt line change, a
	// register write) gives it a reason to.
	None ClockingHint = iota

	// JustInTime means the component needs servicing again, but not
	// urgently — the bus owner can accumulate several master-clock ticks
	// before the next run_for call without the component observing a
	// difference (e.g. a timer counting down to an interrupt that hasn't
	// fired yet).
	JustInTime

	// RealTime means the component must be ticked with true cycle
	// granularity, because some other component is watching its output on
	// every cycle (e.g. a chipset scheduler driving DMA slots the CPU can
	// see mid-instruction).
	RealTime
)

func (h ClockingHint) String() string {
	switch h {
	case None:
		return "none"
	case JustInTime:
		return "just-in-time"
	case RealTime:
		return "real-time"
	}
	return "unknown"
}

// Clocked is satisfied by any component the bus owner advances directly.
type Clocked interface {
	// RunFor advances the component by the given number of half-cycles and
	// returns the number actually consumed. A component may consume fewer
	// half-cycles than requested if it hits a natural suspension point
	// (e.g. the chipset reaching a CPU access slot); the bus owner is
	// expected to call RunFor again with the shortfall.
	RunFor(duration HalfCycles) HalfCycles
}

// ClockingObserver receives ClockingHint changes from a Clocked component.
//
// Implementations must never call back into the firing component's RunFor
// from inside Update — doing so would re-enter a component that is already
// mid-advance and break the single-threaded scheduling guarantee every
// component in this tree relies on.
type ClockingObserver interface {
	Update(hint ClockingHint)
}

// ObserverFunc adapts a plain function to ClockingObserver.
type ObserverFunc func(ClockingHint)

// Update calls f.
func (f ObserverFunc) Update(hint ClockingHint) {
	f(hint)
}
