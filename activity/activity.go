// Package activity declares the observer surface a machine uses to
// report its physical indicators — drive LEDs, tape/disk motor state,
// and discrete drive events — to a host UI without depending on one.
package activity

// LED names an indicator lamp a machine exposes (a drive's busy light,
// a caps-lock indicator, ...).
type LED string

// DriveEvent names a discrete, momentary event on a disk/tape drive
// worth surfacing to a user even though it has no steady-state value
// (unlike a LED or motor's on/off status).
type DriveEvent int

const (
	DriveEventStepNormal DriveEvent = iota
	DriveEventStepDummy
	DriveEventLoadFailed
	DriveEventReadReady
)

func (e DriveEvent) String() string {
	switch e {
	case DriveEventStepNormal:
		return "step"
	case DriveEventStepDummy:
		return "step (dummy)"
	case DriveEventLoadFailed:
		return "load failed"
	case DriveEventReadReady:
		return "ready"
	}
	return "unknown"
}

// Observer receives activity notifications. Implementations must not
// call back into the machine from within any of these methods — the
// same re-entry restriction clock.ClockingObserver documents, since
// activity callbacks fire from inside a machine's run_for.
type Observer interface {
	// RegisterLED declares a LED exists, ahead of any SetLEDStatus calls
	// naming it.
	RegisterLED(led LED)
	// SetLEDStatus reports a LED's current on/off state.
	SetLEDStatus(led LED, on bool)
	// RegisterDrive declares a disk/tape drive exists, identified by an
	// arbitrary stable index.
	RegisterDrive(drive int)
	// SetDriveMotorStatus reports a drive's motor on/off state.
	SetDriveMotorStatus(drive int, on bool)
	// AnnounceDriveEvent reports a momentary drive event.
	AnnounceDriveEvent(drive int, event DriveEvent)
}

// Multiplexer fans activity notifications out to every registered
// Observer, so a machine can drive one Observer parameter while a host
// attaches any number of listeners (a debug log, a UI, a test probe).
type Multiplexer struct {
	observers []Observer
}

// Add registers an additional Observer.
func (m *Multiplexer) Add(o Observer) {
	m.observers = append(m.observers, o)
}

func (m *Multiplexer) RegisterLED(led LED) {
	for _, o := range m.observers {
		o.RegisterLED(led)
	}
}

func (m *Multiplexer) SetLEDStatus(led LED, on bool) {
	for _, o := range m.observers {
		o.SetLEDStatus(led, on)
	}
}

func (m *Multiplexer) RegisterDrive(drive int) {
	for _, o := range m.observers {
		o.RegisterDrive(drive)
	}
}

func (m *Multiplexer) SetDriveMotorStatus(drive int, on bool) {
	for _, o := range m.observers {
		o.SetDriveMotorStatus(drive, on)
	}
}

func (m *Multiplexer) AnnounceDriveEvent(drive int, event DriveEvent) {
	for _, o := range m.observers {
		o.AnnounceDriveEvent(drive, event)
	}
}
