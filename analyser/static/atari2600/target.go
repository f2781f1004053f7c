// Package atari2600 implements static paging-scheme inference for
// Atari VCS cartridge images, the representative example of this
// tree's static-analyser depth: the bankswitching hardware a cartridge
// expects is never stated in the image itself, so it has to be guessed
// from which addresses the cartridge's own code touches.
package atari2600

import "github.com/jetsetilly/clocksignal/analyser"

// PagingModel names a bankswitching scheme, carried across from the
// reference Target::PagingModel enum.
type PagingModel int

const (
	PagingNone PagingModel = iota
	PagingCommaVid
	PagingAtari8k
	PagingActivisionStack
	PagingParkerBros
	PagingTigervision
	PagingAtari16k
	PagingMNetwork
	PagingAtari32k
	PagingCBSRamPlus
	PagingPitfall2
	PagingMegaBoy
)

func (p PagingModel) String() string {
	names := [...]string{
		"none", "commavid", "atari8k", "activision-stack", "parker-bros",
		"tigervision", "atari16k", "mnetwork", "atari32k", "cbs-ram-plus",
		"pitfall2", "megaboy",
	}
	if int(p) < len(names) {
		return names[p]
	}
	return "unknown"
}

// Analyser infers the bankswitching scheme of an Atari 2600 cartridge
// image from its code, grounded on
// Analyser::Static::Atari2600::GetTargets.
type Analyser struct{}

// GetTargets implements analyser.Analyser. When media carries at least one
// cartridge it returns exactly one candidate, classifying the first
// cartridge only, at a fixed 0.5 base confidence —
// the reference implementation does not attempt to validate that the
// image is a plausible 6502 program at all, only to classify its
// paging scheme once it has already been accepted as a cartridge, and
// this mirrors that scope.
func (Analyser) GetTargets(media analyser.Media, fileName string) []analyser.Target {
	if len(media.Cartridges) == 0 {
		return nil
	}

	data := media.Cartridges[0]
	target := analyser.Target{
		Machine:    "atari2600",
		Confidence: 0.5,
		Media:      media,
		Options:    map[string]string{"PagingModel": PagingNone.String()},
	}

	model, usesSuperchip := determinePaging(data)
	target.Options["PagingModel"] = model.String()
	if usesSuperchip {
		target.Options["UsesSuperchip"] = "true"
	}

	return []analyser.Target{target}
}

func determinePaging(data []byte) (model PagingModel, usesSuperchip bool) {
	switch len(data) {
	case 2048:
		return determinePagingFor2k(data), false
	}

	if len(data) < 4096 {
		return PagingNone, false
	}

	entryAddress := uint16(data[len(data)-4]) | uint16(data[len(data)-3])<<8
	breakAddress := uint16(data[len(data)-2]) | uint16(data[len(data)-1])<<8

	final4k := data[len(data)-4096:]
	mapper := func(address uint16) int {
		if address&0x1000 == 0 {
			return -1
		}
		return int(address & 0xfff)
	}
	d := disassemble(final4k, mapper, []uint16{entryAddress, breakAddress})

	switch len(data) {
	case 8192:
		model = determinePagingFor8k(data, d)
	case 10495:
		model = PagingPitfall2
	case 12288:
		model = PagingCBSRamPlus
	case 16384:
		model = determinePagingFor16k(d)
	case 32768:
		model = PagingAtari32k
	case 65536:
		model = determinePagingFor64k(d)
	default:
		model = PagingNone
	}

	if model != PagingCBSRamPlus && model != PagingMNetwork && len(data) >= 256 {
		usesSuperchip = true
		for address := 0; address < 128; address++ {
			if data[address] != data[address+128] {
				usesSuperchip = false
				break
			}
		}
	}

	if model == PagingNone && len(data) > 4096 {
		if d.externalStores[0x3f] {
			model = PagingTigervision
		}
	}

	return model, usesSuperchip
}

// determinePagingFor2k distinguishes an unpaged 2KB image from a
// CommaVid, by disassembling from the cartridge's own entry/break vectors
// and treating any store or read-modify-write whose operand address
// resolves into the $1800-$1fff window as a "wide area store". The
// addressing mode of the store is not examined, and indexed-indirect
// operands resolve to their zero-page pointer, which lies outside the
// window.
func determinePagingFor2k(data []byte) PagingModel {
	if len(data) < 0x800 {
		return PagingNone
	}
	entryAddress := (uint16(data[0x7fc]) | uint16(data[0x7fd])<<8) & 0x1fff
	breakAddress := (uint16(data[0x7fe]) | uint16(data[0x7ff])<<8) & 0x1fff
	if entryAddress < 0x1800 || breakAddress < 0x1800 {
		return PagingNone
	}

	mapper := func(address uint16) int {
		address &= 0x1fff
		return int(address) - 0x1800
	}
	d := disassemble(data, mapper, []uint16{entryAddress, breakAddress})

	hasWideAreaStore := len(d.internalStores) > 0 || len(d.internalModifies) > 0
	if hasWideAreaStore {
		return PagingCommaVid
	}
	return PagingNone
}

// determinePagingFor8k implements the Activision-stack-title fingerprint
// (both vectors at the top of the low 4KB reading $f000 while those at the
// top of the image do not, plus a leading SEI) before
// falling back to counting hot-address-range accesses to distinguish
// plain Atari 8k paging from Parker Bros and Tigervision.
func determinePagingFor8k(data []byte, d *disassembly) PagingModel {
	if len(data) >= 4096 &&
		data[4095] == 0xf0 && data[4093] == 0xf0 && data[4094] == 0x00 && data[4092] == 0x00 &&
		(data[8191] != 0xf0 || data[8189] != 0xf0 || data[8190] != 0x00 || data[8188] != 0x00) &&
		data[0] == 0x78 {
		return PagingActivisionStack
	}

	internal := mergeSets(d.internalStores, d.internalModifies, d.internalLoads)

	atariCount, parkerCount := 0, 0
	for address := range internal {
		masked := address & 0x1fff
		if masked >= 0x1ff8 && masked < 0x1ffa {
			atariCount++
		}
		if masked >= 0x1fe0 && masked < 0x1ff8 {
			parkerCount++
		}
	}

	tigervisionCount := 0
	if d.externalStores[0x3f] {
		tigervisionCount = 1
	}

	switch {
	case parkerCount > atariCount:
		return PagingParkerBros
	case tigervisionCount > atariCount:
		return PagingTigervision
	default:
		return PagingAtari8k
	}
}

func determinePagingFor16k(d *disassembly) PagingModel {
	internal := mergeSets(d.internalStores, d.internalModifies, d.internalLoads)

	atariCount, mnetworkCount := 0, 0
	for address := range internal {
		masked := address & 0x1fff
		if masked >= 0x1ff6 && masked < 0x1ffa {
			atariCount++
		}
		if masked >= 0x1fe0 && masked < 0x1ffb {
			mnetworkCount++
		}
	}

	if mnetworkCount > atariCount {
		return PagingMNetwork
	}
	return PagingAtari16k
}

func determinePagingFor64k(d *disassembly) PagingModel {
	if d.externalStores[0x3f] {
		return PagingTigervision
	}
	return PagingMegaBoy
}

func mergeSets(sets ...map[uint16]bool) map[uint16]bool {
	out := make(map[uint16]bool)
	for _, s := range sets {
		for k := range s {
			out[k] = true
		}
	}
	return out
}
