package amiga

// BlitterChannel identifies which of the Blitter's four data channels
// (or control action) a DMA slot should service next.
type BlitterChannel int

const (
	BlitterChannelNone BlitterChannel = iota
	BlitterChannelA
	BlitterChannelB
	BlitterChannelC
	BlitterChannelWrite
	BlitterChannelFlush
)

// blitterPhase tracks whether a blit is mid-flight or winding down,
// grounded on BlitterSequencer's Phase enum.
type blitterPhase int

const (
	blitterIdle blitterPhase = iota
	blitterOngoing
	blitterComplete
	blitterPauseAndComplete
)

// Blitter implements the four-channel minterm blit engine: channels A,
// B and C are fetched per the enabled-channel control nibble, combined
// through an 8-entry truth table (the "minterm"), and the result is
// written to D, with optional line-draw mode.
type Blitter struct {
	control   int // 4-bit A/B/C/D channel-enable mask
	minterm   uint8
	lineMode  bool

	phase     blitterPhase
	nextPhase blitterPhase
	index     int
	loop      int

	A, B, C uint16
	AShift, BShift uint8

	busy bool
}

// SetControl sets which of the four channels (bit0=A..bit3=D) are
// enabled for the next blit.
func (b *Blitter) SetControl(control int) {
	b.control = control & 0xf
	b.index = 0
}

// SetMinterm sets the 8-bit logic function BLTCON0's low byte encodes.
func (b *Blitter) SetMinterm(minterm uint8) {
	b.minterm = minterm
}

// SetLineMode selects Bresenham line-drawing mode over rectangular
// area-fill mode.
func (b *Blitter) SetLineMode(on bool) {
	b.lineMode = on
}

// Begin starts a new blit.
func (b *Blitter) Begin() {
	b.phase = blitterOngoing
	b.nextPhase = blitterOngoing
	b.index = 0
	b.loop = 0
	b.busy = true
}

// Complete marks that the channel fetch now in flight is the last one
// needed, mirroring BlitterSequencer::complete()'s two-case logic for
// control values 0x9/0xb/0xd (those needing one extra pipeline flush).
func (b *Blitter) Complete() {
	switch b.control {
	case 0x9, 0xb, 0xd:
		b.nextPhase = blitterPauseAndComplete
	default:
		b.nextPhase = blitterComplete
	}
}

// Busy reports whether a blit is still in flight.
func (b *Blitter) Busy() bool { return b.busy }

// Next returns the channel the Blitter needs its next DMA slot for, and
// the count of complete per-channel loops so far.
func (b *Blitter) Next() (BlitterChannel, int) {
	switch b.phase {
	case blitterComplete:
		b.busy = false
		return BlitterChannelFlush, b.loop
	case blitterPauseAndComplete:
		b.phase = blitterComplete
		return BlitterChannelNone, b.loop
	}

	order := [...]BlitterChannel{BlitterChannelA, BlitterChannelB, BlitterChannelC, BlitterChannelWrite}
	enabled := [...]bool{
		b.control&0x1 != 0, // A
		b.control&0x2 != 0, // B
		b.control&0x4 != 0, // C
		b.control&0x8 != 0, // D
	}

	for range order {
		ch := order[b.index%len(order)]
		idx := b.index % len(order)
		b.index++
		if idx == len(order)-1 {
			b.loop++
		}
		if enabled[idx] {
			return ch, b.loop
		}
	}
	return BlitterChannelNone, b.loop
}

// Minterm evaluates the configured 8-entry truth table against one bit
// position of the three input channels, the same bit-triple lookup the
// real Blitter's BLTCON0 minterm byte encodes (bit n of minterm is the
// output for input triple n, where n = A<<2|B<<1|C).
func (b *Blitter) Minterm(a, bb, cc bool) bool {
	index := uint8(0)
	if a {
		index |= 0x4
	}
	if bb {
		index |= 0x2
	}
	if cc {
		index |= 0x1
	}
	return b.minterm&(1<<index) != 0
}

// Apply runs the minterm function bitwise across three 16-bit channel
// words, producing the word that would be written to channel D.
func (b *Blitter) Apply(a, bb, cc uint16) uint16 {
	var result uint16
	for bit := 0; bit < 16; bit++ {
		mask := uint16(1) << bit
		if b.Minterm(a&mask != 0, bb&mask != 0, cc&mask != 0) {
			result |= mask
		}
	}
	return result
}
