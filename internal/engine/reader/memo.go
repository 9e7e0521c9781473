package reader

import (
	"sync"

	"go.trai.ch/annocache/internal/core/domain"
)

// recordMemo is the process-local first cache level, keyed by cache key.
// Each Clear starts a new generation; results computed under an older
// generation are dropped instead of installed.
type recordMemo struct {
	mu         sync.RWMutex
	records    map[string]domain.Collection
	generation uint64
}

func newRecordMemo() *recordMemo {
	return &recordMemo{records: make(map[string]domain.Collection)}
}

func (m *recordMemo) get(key string) (domain.Collection, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.records[key]
	return c, ok
}

func (m *recordMemo) current() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.generation
}

func (m *recordMemo) put(key string, c domain.Collection, generation uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if generation != m.generation {
		return
	}
	m.records[key] = c
}

func (m *recordMemo) clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.records)
	m.generation++
}

func (m *recordMemo) len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}
