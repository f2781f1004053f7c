package machine

import (
	"fmt"

	"github.com/jetsetilly/clocksignal/analyser"
	"github.com/spf13/afero"
)

// ROMFetcher loads the bytes for a named ROM or disk image. It is
// implemented over afero.Fs rather than the os package directly so a
// host (or a test) can substitute an in-memory filesystem without this
// package knowing the difference — the same seam afero exists to
// provide.
type ROMFetcher struct {
	fs    afero.Fs
	cache *ROMCache
}

// NewROMFetcher constructs a ROMFetcher over fs, optionally backed by a
// cache (nil disables caching).
func NewROMFetcher(fs afero.Fs, cache *ROMCache) *ROMFetcher {
	return &ROMFetcher{fs: fs, cache: cache}
}

// Fetch reads path, consulting and populating the cache if one is
// configured.
func (f *ROMFetcher) Fetch(path string) ([]byte, error) {
	if f.cache != nil {
		if data, ok := f.cache.Get(path); ok {
			return data, nil
		}
	}

	data, err := afero.ReadFile(f.fs, path)
	if err != nil {
		return nil, fmt.Errorf("machine: reading %q: %w", path, err)
	}

	if f.cache != nil {
		f.cache.Put(path, data)
	}
	return data, nil
}

// Constructor builds a concrete DynamicMachine for one named machine
// family from an analyser.Target. Each machine package registers its
// own Constructor at init time via RegisterConstructor.
type Constructor func(target analyser.Target, rom []byte) (DynamicMachine, error)

var constructors = make(map[string]Constructor)

// RegisterConstructor makes a machine family available to
// MachineForTarget.
func RegisterConstructor(machineName string, c Constructor) {
	constructors[machineName] = c
}

// MachineForTarget resolves target.Machine to a registered Constructor,
// fetches its ROM image through fetcher, and constructs the machine —
// the entry point a frontend calls once an analyser.Target has been
// chosen (typically the highest-confidence result from
// analyser.Registry.GetTargets).
func MachineForTarget(target analyser.Target, romPath string, fetcher *ROMFetcher) (DynamicMachine, error) {
	constructor, ok := constructors[target.Machine]
	if !ok {
		return nil, fmt.Errorf("machine: no constructor registered for %q", target.Machine)
	}

	rom, err := fetcher.Fetch(romPath)
	if err != nil {
		return nil, err
	}

	return constructor(target, rom)
}
