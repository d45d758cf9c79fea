package metrics

import (
	"sync"

	"github.com/KrX3D/TizenTube2/internal/application/port/output"
)

var (
	_ output.MetricsPort = (*Tally)(nil)
	_ output.MetricsPort = Nop{}
	_ output.MetricsPort = Multi{}
)

// Tally keeps counters in memory for reports and tests.
type Tally struct {
	mu             sync.Mutex
	responses      map[string]int
	itemsRemoved   map[string]int
	shelvesRemoved map[string]int
	helpersKept    int
	itemErrors     int
}

func NewTally() *Tally {
	return &Tally{
		responses:      make(map[string]int),
		itemsRemoved:   make(map[string]int),
		shelvesRemoved: make(map[string]int),
	}
}

func (t *Tally) ResponseSeen(shape string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.responses[shape]++
}

func (t *Tally) ItemRemoved(reason string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.itemsRemoved[reason]++
}

func (t *Tally) ShelfRemoved(reason string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.shelvesRemoved[reason]++
}

func (t *Tally) HelperKept() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.helpersKept++
}

func (t *Tally) ItemError() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.itemErrors++
}

func copyCounts(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Summary returns a snapshot of the counters.
func (t *Tally) Summary(page string) output.FilterSummary {
	t.mu.Lock()
	defer t.mu.Unlock()
	return output.FilterSummary{
		Page:           page,
		Responses:      copyCounts(t.responses),
		ItemsRemoved:   copyCounts(t.itemsRemoved),
		ShelvesRemoved: copyCounts(t.shelvesRemoved),
		HelpersKept:    t.helpersKept,
		ItemErrors:     t.itemErrors,
	}
}

func (t *Tally) ItemsRemoved(reason string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.itemsRemoved[reason]
}

func (t *Tally) TotalItemsRemoved() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, v := range t.itemsRemoved {
		n += v
	}
	return n
}

// Nop discards everything.
type Nop struct{}

func (Nop) ResponseSeen(string) {}
func (Nop) ItemRemoved(string)  {}
func (Nop) ShelfRemoved(string) {}
func (Nop) HelperKept()         {}
func (Nop) ItemError()          {}

// Multi fans out to several sinks.
type Multi []output.MetricsPort

func (m Multi) ResponseSeen(shape string) {
	for _, s := range m {
		s.ResponseSeen(shape)
	}
}

func (m Multi) ItemRemoved(reason string) {
	for _, s := range m {
		s.ItemRemoved(reason)
	}
}

func (m Multi) ShelfRemoved(reason string) {
	for _, s := range m {
		s.ShelfRemoved(reason)
	}
}

func (m Multi) HelperKept() {
	for _, s := range m {
		s.HelperKept()
	}
}

func (m Multi) ItemError() {
	for _, s := range m {
		s.ItemError()
	}
}
