// Package disk provides the drive/track/event geometry shared by every
// floppy controller in the tree (WD177x, Disk II-style cam-stepped drives,
// the Amiga's Paula-driven drive interface). The controller FSM consumes
// this geometry; it does not know how to read an image file itself.
package disk

import "github.com/jetsetilly/clocksignal/clock"

// ReadyType selects which convention a drive uses to report READY to its
// controller, since the signal means different things (and is wired
// differently) across the machines this tree targets.
type ReadyType int

const (
	// ShugartRDY ties READY to the drive-select/motor-on lines directly.
	ShugartRDY ReadyType = iota
	// ShugartModifiedRDY additionally requires two index pulses to have
	// been seen since motor-on before READY asserts.
	ShugartModifiedRDY
	// IBMRDY ties READY to the physical disk-change line.
	IBMRDY
)

// EventType tags what a Track's Event represents.
type EventType int

const (
	// FluxTransition marks a magnetic flux reversal: the fundamental unit
	// of information recorded on a floppy disk.
	FluxTransition EventType = iota
	// IndexHole marks the once-per-revolution timing reference.
	IndexHole
)

// Event is one element of a Track's lazily-produced, restartable sequence.
// The sum of Length across one revolution's worth of events must equal the
// track's revolution period; this is the invariant Track implementations
// are required to uphold.
type Event struct {
	Type   EventType
	Length clock.HalfCycles
}

// RevolutionPeriod is the nominal rotation period at 300RPM, the speed
// every drive this tree models spins at: 60/300 seconds expressed in the
// half-cycle units the caller's clock domain uses is the caller's job;
// this constant is in milliseconds, matching how the geometry is usually
// quoted in drive datasheets.
const RevolutionPeriodMS = 200

// Track yields a finite, restartable sequence of Events spanning exactly
// one revolution. Implementations are free to synthesise events lazily
// (e.g. from a bitstream image) rather than materialise a whole revolution
// up front.
type Track interface {
	// NextEvent returns the next event on the track, restarting from the
	// index hole once a full revolution has been consumed.
	NextEvent() Event
}

// Disk is an addressable collection of Tracks, indexed by physical track
// number and head (side).
type Disk interface {
	// Track returns the track at the given physical position, or nil if
	// the disk has no data there (e.g. a single-sided disk queried on
	// side 1).
	Track(track int, side int) Track
}

// Drive models the electromechanical state a disk controller drives and
// samples: motor, head load solenoid, current cylinder, and the currently
// inserted Disk, if any.
type Drive struct {
	MotorOn     bool
	HeadLoaded  bool
	HeadCylinder int
	Side        int
	ReadyType   ReadyType

	disk Disk

	indexPulseCount int
}

// NewDrive constructs a Drive with no disk inserted.
func NewDrive(readyType ReadyType) *Drive {
	return &Drive{ReadyType: readyType}
}

// SetDisk inserts (or, with nil, ejects) a disk.
func (d *Drive) SetDisk(disk Disk) {
	d.disk = disk
	d.indexPulseCount = 0
}

// HasDisk reports whether a disk is currently inserted.
func (d *Drive) HasDisk() bool {
	return d.disk != nil
}

// CurrentTrack returns the Track under the head at the drive's current
// cylinder and side, or nil if there is no disk, or no data there.
func (d *Drive) CurrentTrack() Track {
	if d.disk == nil {
		return nil
	}
	return d.disk.Track(d.HeadCylinder, d.Side)
}

// Step moves the head by one cylinder in the given direction (positive
// steps toward higher cylinder numbers), clamping at cylinder 0.
func (d *Drive) Step(positive bool) {
	if positive {
		d.HeadCylinder++
		return
	}
	if d.HeadCylinder > 0 {
		d.HeadCylinder--
	}
}

// AtTrackZero reports whether the head is at the outermost cylinder.
func (d *Drive) AtTrackZero() bool {
	return d.HeadCylinder == 0
}

// Ready reports the drive's READY line according to its configured
// ReadyType.
func (d *Drive) Ready() bool {
	switch d.ReadyType {
	case ShugartModifiedRDY:
		return d.MotorOn && d.indexPulseCount >= 2
	case IBMRDY:
		return d.HasDisk()
	default:
		return d.MotorOn
	}
}

// ObserveIndexPulse is called by the controller each time it sees an index
// hole event pass under the head, so ShugartModifiedRDY can track it.
func (d *Drive) ObserveIndexPulse() {
	d.indexPulseCount++
}
