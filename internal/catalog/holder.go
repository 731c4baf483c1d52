package catalog

import "sync/atomic"

// Holder publishes the current table. Readers get a consistent snapshot;
// Swap replaces it without blocking them.
type Holder struct {
	p atomic.Pointer[Table]
}

func NewHolder(t *Table) *Holder {
	h := &Holder{}
	if t != nil {
		h.p.Store(t)
	}
	return h
}

// Table returns the current snapshot, or nil before the first load.
func (h *Holder) Table() *Table { return h.p.Load() }

func (h *Holder) Swap(t *Table) *Table { return h.p.Swap(t) }

func (h *Holder) Loaded() bool { return h.p.Load() != nil }
