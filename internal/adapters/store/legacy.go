package store

import (
	"context"
	"sync"
	"time"

	"go.trai.ch/annocache/internal/core/domain"
	"go.trai.ch/annocache/internal/core/ports"
	"go.trai.ch/zerr"
)

// LegacyTTL is the expiry handed to legacy caches. Freshness is decided by
// markers, not by expiry, so it only needs to outlive a typical deployment.
const LegacyTTL = 30 * 24 * time.Hour

// LegacyCache is the older get/set/delete cache shape with per-entry expiry.
//
// Deprecated: implement ports.ItemPool instead.
type LegacyCache interface {
	// Get returns the value under key, or false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool)
	// Set stores value under key for ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

var _ ports.PersistentStore = (*LegacyPool)(nil)

// LegacyPool adapts a LegacyCache to ports.ItemPool. The legacy shape has no
// transactions, so Commit writes deferred items one by one and rolls back
// already written items if a later one fails.
type LegacyPool struct {
	cache LegacyCache

	mu       sync.Mutex
	deferred []*domain.Item
}

// NewLegacyPool wraps cache and warns that the legacy shape is deprecated.
func NewLegacyPool(cache LegacyCache, log ports.Logger) (*LegacyPool, error) {
	if cache == nil {
		return nil, zerr.With(domain.ErrInvalidStore, "expected", "store.LegacyCache")
	}
	if log != nil {
		log.Warn("legacy cache adapter is deprecated, provide an item pool instead")
	}
	return &LegacyPool{cache: cache}, nil
}

// GetItem reads the item stored under key.
func (p *LegacyPool) GetItem(ctx context.Context, key string) (*domain.Item, error) {
	if err := domain.ValidateKey(key); err != nil {
		return nil, err
	}
	value, ok := p.cache.Get(ctx, key)
	return domain.NewItem(key, value, ok), nil
}

// Save writes the item immediately.
func (p *LegacyPool) Save(ctx context.Context, item *domain.Item) error {
	if err := domain.ValidateKey(item.Key()); err != nil {
		return err
	}
	if err := p.cache.Set(ctx, item.Key(), item.Get(), LegacyTTL); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "key", item.Key())
	}
	return nil
}

// SaveDeferred queues the item until Commit.
func (p *LegacyPool) SaveDeferred(_ context.Context, item *domain.Item) error {
	if err := domain.ValidateKey(item.Key()); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.deferred = append(p.deferred, item)
	return nil
}

// Commit writes the deferred items in order. If a write fails, the items
// written before it are deleted again.
func (p *LegacyPool) Commit(ctx context.Context) error {
	p.mu.Lock()
	pending := p.deferred
	p.deferred = nil
	p.mu.Unlock()

	for i, item := range pending {
		if err := p.cache.Set(ctx, item.Key(), item.Get(), LegacyTTL); err != nil {
			for _, written := range pending[:i] {
				_ = p.cache.Delete(ctx, written.Key())
			}
			return zerr.With(zerr.Wrap(err, domain.ErrStoreCommitFailed.Error()), "key", item.Key())
		}
	}
	return nil
}

// Close releases nothing.
func (p *LegacyPool) Close() error {
	return nil
}
