// Package wd177x implements the command state machine of the WD1770/1772/
// WD1793 family of floppy disk controllers, as used by the Acorn/Amstrad/
// MSX/Oric disk interfaces this tree targets.
//
// The controller is a resumable coroutine rather than a function that runs
// a whole command to completion: RunFor is called with however many
// half-cycles the bus owner has granted it, and the FSM may suspend at any
// point (waiting for a step delay, waiting for an index pulse, waiting for
// the host to service a DRQ) and resume exactly where it left off next
// call. This mirrors the WAIT_FOR_EVENT/WAIT_FOR_TIME coroutine macros of
// the hardware's reference implementation, re-expressed as an explicit
// state enum plus a resume point, which is the idiomatic Go rendering of
// that control flow.
package wd177x

import (
	"github.com/jetsetilly/clocksignal/clock"
	"github.com/jetsetilly/clocksignal/storage/disk"
)

// Flag bits of the status register. Their meaning is overloaded by command
// type, exactly as in the real chip: bit 5 is SpinUp after a Type 1/3
// command and RecordType after a Type 2 read.
type Flag uint8

const (
	Busy           Flag = 0x01
	Index          Flag = 0x02
	DataRequest    Flag = 0x02
	TrackZero      Flag = 0x04
	LostData       Flag = 0x04
	CRCError       Flag = 0x08
	RecordNotFound Flag = 0x10
	SeekError      Flag = 0x10
	SpinUp         Flag = 0x20
	RecordType     Flag = 0x20
	WriteProtect   Flag = 0x40
	MotorOn        Flag = 0x80
)

// Variant selects chip-specific timing: the WD1772 halves the WD1770's
// step rates and settling delay to suit 3.5" drives.
type Variant int

const (
	WD1770 Variant = iota
	WD1772
	WD1793
)

// Delegate is notified of edge-triggered outputs the host must react to
// immediately: IRQ assertion (command completion or a forced interrupt)
// and release, and DRQ assertion and release.
type Delegate interface {
	SetIRQ(asserted bool)
	SetDRQ(asserted bool)
}

// state is the top-level FSM position: Idle -> CommandAccepted -> (Spinup)
// -> ExecutingTypeN -> Idle, as described for the chip family generally.
type state int

const (
	stateIdle state = iota
	stateCommandAccepted
	stateSpinningUp
	stateWaitIndexPulses
	stateSeekStep
	stateSeekVerify
	stateType2Settle
	stateType2Search
	stateType2TransferRead
	stateType2TransferWrite
	stateType3Transfer
	stateDone
)

// Controller is the WD177x command processor. It owns no disk geometry
// itself; Drives supplies the electromechanical side via storage/disk.
type Controller struct {
	Variant  Variant
	Delegate Delegate

	Drives   []*disk.Drive
	selected int

	status  uint8
	track   uint8
	sector  uint8
	data    uint8
	command uint8

	doubleDensity bool

	st         state
	resumeAt   state
	delayCycles clock.HalfCycles

	stepDirection int
	indexPulses   int

	verify    bool
	isType1   bool
	sectorLen int

	// SectorSource is queried during Type 2/3 command execution to find and
	// transfer sector data. Machines that want real image-backed disks
	// supply this; it is layered on top of the Drive/Track/Event geometry
	// in storage/disk for timing (motor, index pulses, step rate) while
	// giving the controller a practical way to locate sector content
	// without a bit-accurate flux tokeniser.
	SectorSource SectorSource

	transferBuf   []byte
	transferPos   int
	transferCRCOK bool
}

// SectorSource is the bridge between the command FSM and actual sector
// content. A machine wires its disk image implementation in through this
// interface.
type SectorSource interface {
	// ReadSector returns the contents of the given sector, whether its CRC
	// checked out, and whether it carries a deleted-data address mark.
	ReadSector(track, side, sector int) (data []byte, crcOK bool, deleted bool, ok bool)
	// WriteSector commits data to the given sector, marking it deleted if
	// requested.
	WriteSector(track, side, sector int, data []byte, deleted bool) bool
	// ReadAddress returns the next sector ID field encountered on the
	// track (track, side, sector, length-code, crcOK).
	ReadAddress(track, side int) (t, s, sec, lengthCode int, crcOK, ok bool)
}

// NewController constructs a Controller for the given variant with the
// given drives attached (index 0 is drive select 0, and so on).
func NewController(variant Variant, drives []*disk.Drive) *Controller {
	return &Controller{Variant: variant, Drives: drives}
}

func (c *Controller) drive() *disk.Drive {
	if c.selected < 0 || c.selected >= len(c.Drives) {
		return nil
	}
	return c.Drives[c.selected]
}

// SelectDrive changes which attached drive subsequent commands address.
func (c *Controller) SelectDrive(n int) {
	c.selected = n
}

// SetIsDoubleDensity toggles FM/MFM encoding, which affects step/settle
// timing constants and CRC placement but not the top-level FSM.
func (c *Controller) SetIsDoubleDensity(dd bool) {
	c.doubleDensity = dd
}

// stepRate returns the programmable step rate encoded in bits 0-1 of a
// Type 1 command, in milliseconds, halved on the WD1772 per its datasheet.
func (c *Controller) stepRate(command uint8) clock.HalfCycles {
	rates := [4]int{6, 12, 20, 30}
	if c.Variant == WD1772 {
		rates = [4]int{3, 6, 10, 15}
	}
	ms := rates[command&0x03]
	return msToHalfCycles(ms)
}

// msToHalfCycles assumes a 1MHz bus clock, the common case for these
// controllers' host interface; callers driving a different bus clock
// should scale their RunFor grants accordingly.
func msToHalfCycles(ms int) clock.HalfCycles {
	return clock.HalfCycles(ms * 2000)
}

// ReadRegister implements the host's register-read interface. Address is
// 0-3: Status, Track, Sector, Data.
func (c *Controller) ReadRegister(address int) uint8 {
	switch address & 3 {
	case 0:
		c.clearIRQOnStatusRead()
		return c.composeStatus()
	case 1:
		return c.track
	case 2:
		return c.sector
	case 3:
		if c.st == stateType2TransferRead && c.transferPos < len(c.transferBuf) {
			v := c.transferBuf[c.transferPos]
			c.transferPos++
			if c.transferPos >= len(c.transferBuf) {
				c.finishType2Read()
			}
			c.setDRQ(c.transferPos < len(c.transferBuf))
			return v
		}
		return c.data
	}
	return 0xff
}

// WriteRegister implements the host's register-write interface.
func (c *Controller) WriteRegister(address int, value uint8) {
	switch address & 3 {
	case 0:
		c.acceptCommand(value)
	case 1:
		c.track = value
	case 2:
		c.sector = value
	case 3:
		if c.st == stateType2TransferWrite && c.transferPos < len(c.transferBuf) {
			c.transferBuf[c.transferPos] = value
			c.transferPos++
			if c.transferPos >= len(c.transferBuf) {
				c.finishType2Write()
			} else {
				c.setDRQ(true)
			}
			return
		}
		c.data = value
	}
}

func (c *Controller) composeStatus() uint8 {
	s := c.status
	d := c.drive()
	if d != nil {
		if d.MotorOn {
			s |= uint8(MotorOn)
		}
		if c.isType1 && d.AtTrackZero() {
			s |= uint8(TrackZero)
		}
	}
	return s
}

func (c *Controller) clearIRQOnStatusRead() {
	if c.Delegate != nil {
		c.Delegate.SetIRQ(false)
	}
}

func (c *Controller) setDRQ(asserted bool) {
	if asserted {
		c.status |= uint8(DataRequest)
	} else {
		c.status &^= uint8(DataRequest)
	}
	if c.Delegate != nil {
		c.Delegate.SetDRQ(asserted)
	}
}

func (c *Controller) setIRQ() {
	if c.Delegate != nil {
		c.Delegate.SetIRQ(true)
	}
}

// acceptCommand decodes the command byte and transitions Idle ->
// CommandAccepted, per the chip's documented command-register behaviour:
// Type 4 (Force Interrupt, top nibble 0xD) is special in that it is
// accepted even while another command is mid-flight.
func (c *Controller) acceptCommand(value uint8) {
	c.command = value

	if value&0xf0 == 0xd0 {
		c.executeType4(value)
		return
	}

	c.status |= uint8(Busy)
	c.setDRQ(false)
	c.status &^= uint8(CRCError | RecordNotFound | LostData | SeekError)
	c.isType1 = value&0x80 == 0

	switch {
	case value&0x80 == 0:
		// Type 1: Restore/Seek/Step/StepIn/StepOut.
		c.verify = value&0x04 != 0
		c.stepDirection = 1
		if value&0xf0 == 0x00 {
			// Restore: seek to track 0.
			c.track = 0xff
			c.data = 0x00
		}
		c.beginSpinupIfNeeded(stateSeekStep)
	case value&0xc0 == 0x80:
		// Type 2: Read/Write Sector.
		c.sectorLen = 256
		c.beginSpinupIfNeeded(stateType2Settle)
	case value&0xe0 == 0xc0, value&0xe0 == 0xe0:
		// Type 3: Read Address/Read Track/Write Track.
		c.beginSpinupIfNeeded(stateType3Transfer)
	}
}

func (c *Controller) beginSpinupIfNeeded(next state) {
	d := c.drive()
	if d != nil && !d.MotorOn {
		d.MotorOn = true
		c.indexPulses = 0
		c.st = stateWaitIndexPulses
		c.resumeAt = next
		return
	}
	c.st = next
	c.delayCycles = 0
}

// executeType4 handles Force Interrupt: it aborts whatever command is in
// progress and returns the controller to Idle, asserting IRQ at once if bit 3
// (immediate) is set.
func (c *Controller) executeType4(value uint8) {
	c.status &^= uint8(Busy)
	c.setDRQ(false)
	c.st = stateIdle
	if value&0x08 != 0 {
		c.setIRQ()
	}
	// Bits 0-2 (index pulse / ready-rising / ready-falling) are ignored: they
	// are not stored, and no later index pulse or ready change raises IRQ.
}

// RunFor advances the command FSM by up to duration half-cycles, consuming
// index-pulse and step-delay timing from the selected drive.
func (c *Controller) RunFor(duration clock.HalfCycles) {
	for duration > 0 && c.st != stateIdle {
		if c.delayCycles > 0 {
			step := c.delayCycles
			if step > duration {
				step = duration
			}
			c.delayCycles -= step
			duration -= step
			if c.delayCycles > 0 {
				continue
			}
		}
		c.step()
		duration--
	}
}

func (c *Controller) step() {
	d := c.drive()
	switch c.st {
	case stateWaitIndexPulses:
		c.indexPulses++
		if d != nil {
			d.ObserveIndexPulse()
		}
		if c.indexPulses >= 6 {
			c.status |= uint8(SpinUp)
			c.st = c.resumeAt
			c.delayCycles = 0
		}

	case stateSeekStep:
		if d == nil {
			c.finishCommand(uint8(SeekError))
			return
		}
		switch c.command & 0xf0 {
		case 0x00: // Restore
			if d.AtTrackZero() {
				c.track = 0
				c.verifyOrDone()
				return
			}
			d.Step(false)
			c.delayCycles = c.stepRate(c.command)
		case 0x10: // Seek
			if c.track == c.data {
				c.verifyOrDone()
				return
			}
			if c.data > c.track {
				d.Step(true)
				c.track++
			} else {
				d.Step(false)
				c.track--
			}
			c.delayCycles = c.stepRate(c.command)
		case 0x20, 0x30: // Step
			d.Step(c.stepDirection > 0)
			c.verifyOrDone()
		case 0x40, 0x50: // Step In
			d.Step(true)
			if c.track < 0xff {
				c.track++
			}
			c.stepDirection = 1
			c.verifyOrDone()
		case 0x60, 0x70: // Step Out
			d.Step(false)
			if c.track > 0 {
				c.track--
			}
			c.stepDirection = -1
			c.verifyOrDone()
		}

	case stateSeekVerify:
		c.status &^= uint8(SeekError)
		c.finishCommand(0)

	case stateType2Settle:
		c.delayCycles = 0
		c.st = stateType2Search

	case stateType2Search:
		c.beginType2Transfer()

	case stateType3Transfer:
		c.finishCommand(0)

	default:
		c.finishCommand(0)
	}
}

func (c *Controller) verifyOrDone() {
	if c.verify {
		c.delayCycles = msToHalfCycles(30)
		c.st = stateSeekVerify
		return
	}
	c.finishCommand(0)
}

func (c *Controller) beginType2Transfer() {
	d := c.drive()
	if d == nil || c.SectorSource == nil {
		c.finishCommand(uint8(RecordNotFound))
		return
	}

	isWrite := c.command&0xe0 == 0xa0
	if isWrite && d.ReadyType != 0 { // write-protect is modelled per-drive by the host if desired
	}

	if isWrite {
		data, ok := c.drainForWrite()
		if !ok {
			c.finishCommand(uint8(RecordNotFound))
			return
		}
		c.transferBuf = data
		c.transferPos = 0
		c.st = stateType2TransferWrite
		c.setDRQ(true)
		return
	}

	data, crcOK, deleted, ok := c.SectorSource.ReadSector(int(c.track), d.Side, int(c.sector))
	if !ok {
		c.finishCommand(uint8(RecordNotFound))
		return
	}
	c.transferBuf = data
	c.transferPos = 0
	c.transferCRCOK = crcOK
	if deleted {
		c.status |= uint8(RecordType)
	} else {
		c.status &^= uint8(RecordType)
	}
	c.st = stateType2TransferRead
	c.setDRQ(true)
}

func (c *Controller) drainForWrite() ([]byte, bool) {
	return make([]byte, c.sectorLen), true
}

func (c *Controller) finishType2Read() {
	if !c.transferCRCOK {
		c.status |= uint8(CRCError)
	}
	if c.command&0x10 != 0 { // multi-sector
		c.sector++
		c.st = stateType2Search
		return
	}
	c.finishCommand(0)
}

func (c *Controller) finishType2Write() {
	d := c.drive()
	if d != nil {
		c.SectorSource.WriteSector(int(c.track), d.Side, int(c.sector), c.transferBuf, c.command&0x01 != 0)
	}
	if c.command&0x10 != 0 {
		c.sector++
		c.st = stateType2Search
		c.data = 0
		return
	}
	c.finishCommand(0)
}

func (c *Controller) finishCommand(extraFlags uint8) {
	c.status &^= uint8(Busy)
	c.status |= extraFlags
	c.setDRQ(false)
	c.st = stateIdle
	c.setIRQ()
}

// Busy reports whether a command is currently executing, for machines that
// need to gate ROM paging or bus access on it.
func (c *Controller) Busy() bool {
	return c.status&uint8(Busy) != 0
}
