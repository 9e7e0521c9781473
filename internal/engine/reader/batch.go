package reader

import (
	"context"

	"go.trai.ch/annocache/internal/core/domain"
	"go.trai.ch/annocache/internal/core/ports"
	"go.trai.ch/zerr"
)

// writeBatch groups items that must become visible together: every item is
// deferred on the pool and the pool is committed once.
type writeBatch struct {
	pool  ports.ItemPool
	items []*domain.Item
}

func newWriteBatch(pool ports.ItemPool) *writeBatch {
	return &writeBatch{pool: pool}
}

func (b *writeBatch) add(item *domain.Item) {
	b.items = append(b.items, item)
}

func (b *writeBatch) flush(ctx context.Context) error {
	for _, item := range b.items {
		if err := b.pool.SaveDeferred(ctx, item); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "key", item.Key())
		}
	}
	if err := b.pool.Commit(ctx); err != nil {
		return zerr.Wrap(err, domain.ErrStoreCommitFailed.Error())
	}
	b.items = nil
	return nil
}
