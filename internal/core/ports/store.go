// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"

	"go.trai.ch/annocache/internal/core/domain"
)

// ItemPool is the persistent key/value capability the cache engine consumes.
//
// Items are fetched with GetItem, modified with Item.Set and persisted either
// immediately (Save) or as part of a batch (SaveDeferred followed by Commit).
// After Commit returns, every deferred item is visible to GetItem from any
// holder of the same pool.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ItemPool interface {
	// GetItem returns the item stored under key. A missing key yields an item
	// whose IsHit reports false, not an error.
	GetItem(ctx context.Context, key string) (*domain.Item, error)

	// Save persists the item immediately.
	Save(ctx context.Context, item *domain.Item) error

	// SaveDeferred queues the item until the next Commit.
	SaveDeferred(ctx context.Context, item *domain.Item) error

	// Commit persists every deferred item.
	Commit(ctx context.Context) error
}

// PersistentStore is an ItemPool owning resources that must be released.
type PersistentStore interface {
	ItemPool
	io.Closer
}

// StoreOpener opens the persistent store selected by the settings.
type StoreOpener interface {
	// Open opens the backend named by settings.
	Open(ctx context.Context, settings domain.StoreSettings) (PersistentStore, error)
}
