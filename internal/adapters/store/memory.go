// Package store implements the persistent item pools behind the annotation cache.
package store

import (
	"context"
	"slices"
	"sync"

	"go.trai.ch/annocache/internal/core/domain"
	"go.trai.ch/annocache/internal/core/ports"
)

var _ ports.PersistentStore = (*MemoryPool)(nil)

// MemoryPool is an item pool held in process memory.
type MemoryPool struct {
	mu       sync.RWMutex
	items    map[string][]byte
	deferred []*domain.Item
}

// NewMemoryPool creates an empty in-memory pool.
func NewMemoryPool() *MemoryPool {
	return &MemoryPool{items: make(map[string][]byte)}
}

// GetItem returns the item stored under key.
func (p *MemoryPool) GetItem(_ context.Context, key string) (*domain.Item, error) {
	if err := domain.ValidateKey(key); err != nil {
		return nil, err
	}
	p.mu.RLock()
	value, ok := p.items[key]
	p.mu.RUnlock()
	return domain.NewItem(key, slices.Clone(value), ok), nil
}

// Save stores the item immediately.
func (p *MemoryPool) Save(_ context.Context, item *domain.Item) error {
	if err := domain.ValidateKey(item.Key()); err != nil {
		return err
	}
	p.mu.Lock()
	p.items[item.Key()] = slices.Clone(item.Get())
	p.mu.Unlock()
	return nil
}

// SaveDeferred queues the item until Commit.
func (p *MemoryPool) SaveDeferred(_ context.Context, item *domain.Item) error {
	if err := domain.ValidateKey(item.Key()); err != nil {
		return err
	}
	p.mu.Lock()
	p.deferred = append(p.deferred, domain.NewItem(item.Key(), slices.Clone(item.Get()), false))
	p.mu.Unlock()
	return nil
}

// Commit applies every deferred item under a single lock.
func (p *MemoryPool) Commit(_ context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, item := range p.deferred {
		p.items[item.Key()] = item.Get()
	}
	p.deferred = nil
	return nil
}

// Close releases nothing; the pool stays usable.
func (p *MemoryPool) Close() error {
	return nil
}

// Len returns the number of committed items.
func (p *MemoryPool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.items)
}
