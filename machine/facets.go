// Package machine ties a concrete emulated computer together: the
// facet interfaces a host discovers via DynamicMachine, construction
// from an analyser.Target, a ROM image cache, and an optional live
// statistics dashboard.
package machine

import (
	"github.com/jetsetilly/clocksignal/activity"
	"github.com/jetsetilly/clocksignal/clock"
)

// Option is one user-facing configurable setting a machine exposes
// through its configurable_device facet, backed by a
// reflect/config.Struct field under the hood.
type Option struct {
	Name    string
	Value   string
	Choices []string
}

// TimedMachine is the facet every machine implements: it can be run for
// a span of time, cooperatively, the same single suspension-point
// contract clock.Clocked documents.
type TimedMachine interface {
	clock.Clocked
}

// ScanProducer is implemented by a machine with video output; Frame
// returns an opaque handle a host's scan-target sink interprets (this
// tree does not mandate a pixel format, matching the spec's instruction
// to leave rendering details to the concrete chipset/television pairing).
type ScanProducer interface {
	CompletedFrames() int
}

// AudioProducer is implemented by a machine with sound output.
type AudioProducer interface {
	AudioSampleRate() int
}

// JoystickMachine, KeyboardMachine and MouseMachine are implemented by a
// machine with the corresponding input surface.
type JoystickMachine interface {
	SetJoystickInput(player int, left, right, up, down, fire bool)
}

type KeyboardMachine interface {
	SetKeyboardInput(scanCode int, down bool)
}

type MouseMachine interface {
	SetMouseInput(dx, dy int, buttons uint8)
}

// ConfigurableDevice is implemented by a machine exposing user-facing
// options.
type ConfigurableDevice interface {
	Options() []Option
	SetOption(name, value string) bool
}

// ActivityObserverMachine is implemented by a machine that reports
// physical indicator state.
type ActivityObserverMachine interface {
	SetActivityObserver(o activity.Observer)
}

// DynamicMachine is the facet-discovery surface a host type-asserts a
// constructed machine against, mirroring the reference's
// DynamicMachine::{timed_machine, scan_producer, audio_producer, ...}
// accessor methods with Go's native type assertions standing in for the
// reference's dynamic_cast-based facet lookup.
type DynamicMachine interface {
	TimedMachine() TimedMachine
}
