package catalog

import "sync"

// Holder hands out the current catalog snapshot. Readers keep whatever
// Table they grabbed; a reload swaps the pointer without touching it.
type Holder struct {
	mu    sync.RWMutex
	table *Table
}

func NewHolder(table *Table) *Holder {
	return &Holder{table: table}
}

func (h *Holder) Table() *Table {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.table
}

func (h *Holder) Swap(table *Table) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.table = table
}
