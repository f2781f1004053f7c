// Package analyser implements static media analysis: inferring which
// machine (and which options on that machine) a ROM or disk image is
// most plausibly meant for, without executing it.
package analyser

// Media is a bundle of files discovered at a filesystem path, grouped
// by the kind of storage they plausibly represent.
type Media struct {
	Cartridges [][]byte
	Disks      [][]byte
	Tapes      [][]byte
}

// Target is one candidate machine configuration a GetTargets call
// proposes for a given piece of Media, along with a confidence score a
// caller can use to rank several candidates against each other.
type Target struct {
	Machine    string
	Confidence float64
	Media      Media

	// Options carries machine-specific settings the analyser inferred
	// (paging model, memory size, video standard, ...), keyed by the
	// same field names the target machine's reflect/config.Struct
	// exposes, so a constructor can apply them with FuzzySet directly.
	Options map[string]string
}

// Analyser inspects Media plausibly intended for one machine family and
// proposes zero or more Targets, ranked by the Confidence each one
// carries.
type Analyser interface {
	GetTargets(media Media, fileName string) []Target
}

// Registry resolves a machine name to its Analyser, letting GetTargets
// fan a single piece of Media out across every registered machine
// family and collect whichever accept it.
type Registry struct {
	analysers map[string]Analyser
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{analysers: make(map[string]Analyser)}
}

// Register adds a machine's Analyser under the given name.
func (r *Registry) Register(machine string, a Analyser) {
	r.analysers[machine] = a
}

// GetTargets runs media through every registered Analyser and returns
// the combined, non-empty target lists.
func (r *Registry) GetTargets(media Media, fileName string) []Target {
	var out []Target
	for _, a := range r.analysers {
		out = append(out, a.GetTargets(media, fileName)...)
	}
	return out
}
