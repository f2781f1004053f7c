package tape

import (
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jetsetilly/clocksignal/clock"
)

// edgeSource turns a run of PCM samples into a Pulse stream by zero-crossing
// detection: a cassette recording is a square-ish wave and the information
// is carried entirely in the spacing between sign changes, not in the
// sample values themselves. This is how real cassette-audio tooling (and
// the ZX81/CPC/Spectrum tape decoders they feed) recovers pulses from a
// digitised recording.
type edgeSource struct {
	pulses []Pulse
	pos    int
}

func (s *edgeSource) Next() (Pulse, bool) {
	if s.pos >= len(s.pulses) {
		return Pulse{}, false
	}
	p := s.pulses[s.pos]
	s.pos++
	return p, true
}

func (s *edgeSource) Rewind() {
	s.pos = 0
}

// pulsesFromPCM walks mono samples and emits one Pulse per run of
// same-signed samples, with Length measured in half-cycles of the sample
// clock (one sample = two half-cycles, matching the rest of the tree's
// half-cycle convention).
func pulsesFromPCM(samples []int, sampleRate int) []Pulse {
	if len(samples) == 0 {
		return nil
	}

	pulses := make([]Pulse, 0, len(samples)/8)

	sign := func(v int) PulseType {
		switch {
		case v > 0:
			return High
		case v < 0:
			return Low
		default:
			return Zero
		}
	}

	current := sign(samples[0])
	run := clock.HalfCycles(2)

	for _, v := range samples[1:] {
		s := sign(v)
		if s == current {
			run += 2
			continue
		}
		pulses = append(pulses, Pulse{Type: current, Length: run})
		current = s
		run = 2
	}
	pulses = append(pulses, Pulse{Type: current, Length: run})

	return pulses
}

// NewWAVSource decodes a WAV-encoded cassette recording (the common
// distribution format for Acorn UEF-less tape dumps, CPC CDT companions,
// and Spectrum TZX-adjacent WAV rips) into a pulse Source.
func NewWAVSource(r io.Reader) (Source, int, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		return nil, 0, fmt.Errorf("tape: WAV decoding requires a seekable reader")
	}

	d := wav.NewDecoder(rs)
	if !d.IsValidFile() {
		return nil, 0, fmt.Errorf("tape: not a valid WAV file")
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("tape: decoding WAV: %w", err)
	}

	mono := monoDown(buf)
	return &edgeSource{pulses: pulsesFromPCM(mono, buf.Format.SampleRate)}, buf.Format.SampleRate, nil
}

// NewMP3Source decodes an MP3-compressed cassette recording. Several
// cassette archives distribute lossily-compressed captures of the original
// tape audio; as long as the zero crossings survive compression (they
// almost always do, since MP3 preserves gross waveform shape far better
// than fine amplitude) the edge-detection decode still recovers the pulse
// train.
func NewMP3Source(r io.Reader) (Source, int, error) {
	d, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, 0, fmt.Errorf("tape: decoding MP3: %w", err)
	}

	var samples []int
	buf := make([]byte, 4096)
	for {
		n, err := d.Read(buf)
		for i := 0; i+3 < n; i += 4 {
			// go-mp3 always yields signed 16-bit little-endian stereo;
			// downmix to mono by taking the left channel, which is what
			// the encoder would have duplicated from a mono source anyway.
			v := int16(uint16(buf[i]) | uint16(buf[i+1])<<8)
			samples = append(samples, int(v))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("tape: reading MP3 stream: %w", err)
		}
	}

	return &edgeSource{pulses: pulsesFromPCM(samples, d.SampleRate())}, d.SampleRate(), nil
}

// monoDown collapses an arbitrary-channel-count IntBuffer to a single
// channel by averaging, matching the amplitude-insensitive edge detector
// above.
func monoDown(buf *audio.IntBuffer) []int {
	ch := buf.Format.NumChannels
	if ch <= 1 {
		return buf.Data
	}

	out := make([]int, len(buf.Data)/ch)
	for i := range out {
		sum := 0
		for c := 0; c < ch; c++ {
			sum += buf.Data[i*ch+c]
		}
		out[i] = sum / ch
	}
	return out
}
