// Package memmap defines the address-space page map shared by every
// machine's memory mapper: a compact array of region descriptors indexed
// by the CPU's top address bits, with region id 0 permanently reserved to
// mean "unmapped".
package memmap

import (
	"bytes"

	"github.com/bradleyjkemp/memviz"
)

// RegionFlag tags behavioural properties of a Region that affect how an
// access through it is handled.
type RegionFlag int

const (
	IsIO RegionFlag = 1 << iota
	IsShadowed
	Is1Mhz
	IsSlowRAM
)

// Target is the destination of a mapped access: either a pointer into a
// backing byte slice (RAM/ROM) or nothing, in which case Region.Read/Write
// dispatch to IO instead.
type Target struct {
	Base []byte
	Present bool
}

// Region describes one entry in a machine's page map.
type Region struct {
	// Name is a short human label, used only for DumpGraph and logging.
	Name string

	Read  Target
	Write Target

	Flags RegionFlag
}

// Unmapped is region id 0: every address space reserves it so that
// page-map coverage is total. Reads return 0xFF (the open-bus value
// observed on most of these buses when nothing drives it); writes are
// ignored.
var Unmapped = Region{Name: "unmapped"}

// PageMap is a flat, compact array of Region indices, one per page of the
// CPU's address space. PageSize must be a power of two; NumPages *
// PageSize should equal the addressable space.
type PageMap struct {
	PageSize int
	regions  []Region
	page     []int // page -> index into regions
}

// NewPageMap creates a PageMap covering numPages pages of pageSize bytes
// each, with every page initially pointing at Unmapped (region id 0).
func NewPageMap(numPages, pageSize int) *PageMap {
	pm := &PageMap{
		PageSize: pageSize,
		regions:  []Region{Unmapped},
		page:     make([]int, numPages),
	}
	return pm
}

// AddRegion registers a Region and returns its id, for later assignment to
// one or more pages via MapPages.
func (pm *PageMap) AddRegion(r Region) int {
	pm.regions = append(pm.regions, r)
	return len(pm.regions) - 1
}

// MapPages assigns region id to every page in [first, first+count).
func (pm *PageMap) MapPages(first, count, regionID int) {
	for p := first; p < first+count && p < len(pm.page); p++ {
		pm.page[p] = regionID
	}
}

// RegionFor returns the Region responsible for the given page, or
// Unmapped if the page index is out of range.
func (pm *PageMap) RegionFor(page int) Region {
	if page < 0 || page >= len(pm.page) {
		return Unmapped
	}
	return pm.regions[pm.page[page]]
}

// RegionForAddress is the address-space entry point: it shifts addr down
// by log2(PageSize) (PageSize is required to be a power of two) and looks
// up the resulting page.
func (pm *PageMap) RegionForAddress(addr uint32) Region {
	shift := 0
	for (1 << shift) < pm.PageSize {
		shift++
	}
	return pm.RegionFor(int(addr) >> shift)
}

// page is a plain struct used only to give memviz a friendly node label;
// memviz walks exported struct fields reflectively to build its graph, so
// this intentionally mirrors PageMap's own shape rather than reusing it
// directly (PageMap's slices alias shared Region values, which would make
// the rendered graph enormous and unreadable).
type graphPage struct {
	Page   int
	Region string
	Flags  RegionFlag
}

type graphMap struct {
	PageSize int
	Pages    []graphPage
}

// DumpGraph renders the current page map as a Graphviz dot document,
// grouping consecutive pages that share a region into a single node. This
// is the debugging aid referenced elsewhere in this tree for visualising
// how a machine's address space is currently carved up between RAM, ROM,
// IO and shadow regions.
func DumpGraph(pm *PageMap) string {
	g := graphMap{PageSize: pm.PageSize}

	for p := 0; p < len(pm.page); p++ {
		r := pm.regions[pm.page[p]]
		g.Pages = append(g.Pages, graphPage{Page: p, Region: r.Name, Flags: r.Flags})
	}

	var buf bytes.Buffer
	memviz.Map(&buf, &g)
	return buf.String()
}
