// Package archimedes implements the Archimedes MEMC (MEMory Controller):
// a physical-to-logical page remapper programmed entirely through control
// writes in its own address window, rather than through a conventional
// page-table-in-RAM.
//
// The MEMC holds one 32-bit entry per physical page (128 of them) naming
// where that page should appear logically. Because a real access needs the
// opposite direction — given a logical address, which physical page backs
// it — the controller rebuilds six logical-to-physical maps (one per
// (trans, os_mode, is_read) combination) from the physical table whenever
// it becomes dirty, and serves accesses from the rebuilt maps until the
// next control write invalidates them again.
package archimedes

// PageSize selects the page granularity MEMC is currently programmed for;
// all four sizes use a different bit permutation to carve the physical
// page number and logical page number out of a 7-bit page-table entry.
type PageSize int

const (
	Page4K PageSize = iota
	Page8K
	Page16K
	Page32K
)

func (s PageSize) bytes() int {
	switch s {
	case Page4K:
		return 4 * 1024
	case Page8K:
		return 8 * 1024
	case Page16K:
		return 16 * 1024
	case Page32K:
		return 32 * 1024
	}
	return 4 * 1024
}

// accessMode indexes the six logical->physical maps MEMC maintains. Mirrors
// the reference controller's multiplexing of (is_read, os_mode, trans).
type accessMode int

const (
	modeSupervisorRead accessMode = iota
	modeSupervisorWrite
	modeOSRead
	modeOSWrite
	modeUserRead
	modeUserWrite
)

func mode(isRead, osMode, trans bool) accessMode {
	switch {
	case !trans || osMode:
		if osMode && trans {
			if isRead {
				return modeOSRead
			}
			return modeOSWrite
		}
		if isRead {
			return modeSupervisorRead
		}
		return modeSupervisorWrite
	default:
		if isRead {
			return modeUserRead
		}
		return modeUserWrite
	}
}

const logicalPages = 8192

// MEMC is the memory controller. RAM is addressed physically by the MEMC
// itself; Mapper owns the backing bytes and hands MEMC a slice to index
// into.
type MEMC struct {
	RAM []byte

	pageSize PageSize
	osMode   bool

	// pages holds one entry per physical page (index = physical page
	// number), encoding where that page is to be projected logically plus
	// its permission bits, exactly as the control-register write format
	// the MEMC is programmed through.
	pages [128]uint32

	mapping [6][]int // accessMode -> logical page -> physical byte offset, or -1 if unmapped
	dirty   bool
}

// sentinel marks a logical page with no physical backing. Any byte offset
// added to it must still fail an in-range RAM check, which a -1 "no
// mapping" entry guarantees unconditionally rather than relying on pointer
// arithmetic staying out of bounds as the original pointer-based design
// does.
const unmappedPhysical = -1

// NewMEMC constructs a controller over the given physical RAM.
func NewMEMC(ram []byte) *MEMC {
	m := &MEMC{RAM: ram, pageSize: Page4K}
	for i := range m.mapping {
		m.mapping[i] = make([]int, logicalPages)
	}
	m.dirty = true
	return m
}

// SetPageSize reprograms the page granularity (bits 2-3 of the control
// register write). Changing it invalidates every current mapping.
func (m *MEMC) SetPageSize(size PageSize) {
	m.pageSize = size
	m.dirty = true
}

// SetOSMode reprograms the OS-mode bit (bit 12 of the control register
// write), which selects between the "OS" and "supervisor" logical maps for
// non-user accesses.
func (m *MEMC) SetOSMode(on bool) {
	m.osMode = on
}

// ProgramPage writes one physical-page table entry: which physical page
// (0-127) is being described, and the raw logical/permission bits exactly
// as MEMC's page-table write format presents them (bits 0-1 select the
// access-level/protection mode, the remaining bits carry the logical page
// number in a page-size-dependent layout, decoded lazily in rebuild()).
func (m *MEMC) ProgramPage(physicalPage int, entry uint32) {
	if physicalPage < 0 || physicalPage >= len(m.pages) {
		return
	}
	m.pages[physicalPage] = entry
	m.dirty = true
}

// bitMask returns the mask covering bits [start, end] inclusive, start >= end.
func bitMask(start, end int) uint32 {
	return uint32(((1<<(start+1))-1) - ((1 << end) - 1))
}

// physicalLogical decodes one page-table entry into a (physical page
// number, logical page number) pair, using the bit permutation for the
// controller's current page size. The permutations are fixed by the MEMC
// silicon; they are not configuration, just different ways of slicing the
// same 7-bit physical/up-to-13-bit logical pair depending on how many
// physical pages a given page size implies.
func (m *MEMC) physicalLogical(entry uint32) (physical, logical uint32) {
	switch m.pageSize {
	case Page4K:
		physical = entry & bitMask(6, 0)
		logical = (entry & bitMask(11, 10)) << 1
		logical |= (entry & bitMask(22, 12)) >> 12
	case Page8K:
		physical = (entry & bitMask(0, 0)) << 6
		physical |= (entry & bitMask(6, 1)) >> 1
		logical = entry & bitMask(11, 10)
		logical |= (entry & bitMask(22, 13)) >> 13
	case Page16K:
		physical = (entry & bitMask(1, 0)) << 5
		physical |= (entry & bitMask(6, 2)) >> 2
		logical = (entry & bitMask(11, 10)) >> 1
		logical |= (entry & bitMask(22, 14)) >> 14
	case Page32K:
		physical = (entry & bitMask(1, 1)) << 5
		physical |= (entry & bitMask(2, 2)) << 3
		physical |= (entry & bitMask(0, 0)) << 4
		physical |= (entry & bitMask(6, 3)) >> 3
		logical = (entry & bitMask(11, 10)) >> 2
		logical |= (entry & bitMask(22, 15)) >> 15
	}
	return
}

// permissionLevel is encoded in bits 8-9 of a page-table entry: 0 grants
// the OS and user maps full read/write, 1 grants the user map read-only,
// and anything else grants the user map nothing (OS still read-only).
func permissionLevel(entry uint32) int {
	return int((entry >> 8) & 3)
}

func (m *MEMC) rebuild() {
	pageBytes := m.pageSize.bytes()

	for i := range m.mapping {
		for p := range m.mapping[i] {
			m.mapping[i][p] = unmappedPhysical
		}
	}

	for physicalPage, entry := range m.pages {
		if entry == 0 && physicalPage != 0 {
			continue
		}
		_, logical := m.physicalLogical(entry)
		if int(logical) >= logicalPages {
			continue
		}
		physicalOffset := physicalPage * pageBytes
		if physicalOffset+pageBytes > len(m.RAM) {
			continue
		}

		m.mapping[modeSupervisorRead][logical] = physicalOffset
		m.mapping[modeSupervisorWrite][logical] = physicalOffset

		switch permissionLevel(entry) {
		case 0:
			m.mapping[modeOSRead][logical] = physicalOffset
			m.mapping[modeOSWrite][logical] = physicalOffset
			m.mapping[modeUserRead][logical] = physicalOffset
			m.mapping[modeUserWrite][logical] = physicalOffset
		case 1:
			m.mapping[modeOSRead][logical] = physicalOffset
			m.mapping[modeOSWrite][logical] = physicalOffset
			m.mapping[modeUserRead][logical] = physicalOffset
		default:
			m.mapping[modeOSRead][logical] = physicalOffset
		}
	}

	m.dirty = false
}

// Translate resolves a logical address to a physical RAM offset under the
// given access mode. ok is false for an unmapped page or a privilege
// violation, which the caller (the CPU/bus fault path) turns into a bus
// error per the documented fault model.
func (m *MEMC) Translate(logicalAddress uint32, isRead, trans bool) (offset int, ok bool) {
	if m.dirty {
		m.rebuild()
	}

	pageBytes := m.pageSize.bytes()
	page := int(logicalAddress) / pageBytes
	withinPage := int(logicalAddress) % pageBytes
	if page >= logicalPages {
		return 0, false
	}

	physical := m.mapping[mode(isRead, m.osMode, trans)][page]
	if physical == unmappedPhysical {
		return 0, false
	}
	return physical + withinPage, true
}
