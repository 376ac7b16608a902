package cpu

// DefaultHistorySize is the default number of call sites kept.
const DefaultHistorySize = 8

// History is a fixed capacity ring of call sites.
type History struct {
	sites []uint16
	next  int
	count int
}

// NewHistory returns a History holding up to size call sites.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{sites: make([]uint16, size)}
}

// Record adds a call site, evicting the oldest once full.
func (h *History) Record(address uint16) {
	h.sites[h.next] = address
	h.next = (h.next + 1) % len(h.sites)
	if h.count < len(h.sites) {
		h.count++
	}
}

// Sites returns the recorded call sites, newest first.
func (h *History) Sites() []uint16 {
	sites := make([]uint16, h.count)
	for i := range sites {
		sites[i] = h.sites[(h.next-1-i+len(h.sites))%len(h.sites)]
	}
	return sites
}

// Len returns the number of recorded call sites.
func (h *History) Len() int {
	return h.count
}

// Reset forgets all call sites.
func (h *History) Reset() {
	h.next, h.count = 0, 0
}
