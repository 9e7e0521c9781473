package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/dgraph-io/badger/v4"
	"go.trai.ch/annocache/internal/core/domain"
	"go.trai.ch/annocache/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.PersistentStore = (*BadgerPool)(nil)

// BadgerConfig holds configuration for a badger-backed pool.
type BadgerConfig struct {
	// Path is the database directory. Ignored when InMemory is true.
	Path string

	// InMemory keeps the database in memory, for tests.
	InMemory bool

	// SyncWrites syncs every write to disk.
	SyncWrites bool

	// Logger receives badger's own log output. Nil disables it.
	Logger ports.Logger
}

// BadgerPool is an item pool over an embedded badger database. Deferred
// items are committed in one transaction.
type BadgerPool struct {
	db     *badger.DB
	closed atomic.Bool

	mu       sync.Mutex
	deferred []*domain.Item
}

// badgerLogger adapts ports.Logger to badger's Logger interface.
type badgerLogger struct {
	log ports.Logger
}

func (l *badgerLogger) Errorf(format string, args ...any) {
	l.log.Error(fmt.Errorf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...any) {
	l.log.Warn(fmt.Sprintf(format, args...))
}

// Infof is demoted to debug; badger reports compactions and replays at info.
func (l *badgerLogger) Infof(format string, args ...any) {
	l.log.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...any) {
	l.log.Debug(fmt.Sprintf(format, args...))
}

// OpenBadger opens a badger database with the given configuration.
func OpenBadger(cfg BadgerConfig) (*BadgerPool, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, zerr.With(domain.ErrMissingStorePath, "backend", string(domain.BackendBadger))
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, domain.DirPerm); err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreCreateFailed.Error()), "path", cfg.Path)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}

	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{log: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreOpenFailed.Error()), "path", cfg.Path)
	}
	return &BadgerPool{db: db}, nil
}

// GetItem reads the item stored under key.
func (p *BadgerPool) GetItem(_ context.Context, key string) (*domain.Item, error) {
	if err := p.check(key); err != nil {
		return nil, err
	}

	var value []byte
	err := p.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	switch {
	case errors.Is(err, badger.ErrKeyNotFound):
		return domain.NewItem(key, nil, false), nil
	case err != nil:
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "key", key)
	}
	return domain.NewItem(key, value, true), nil
}

// Save writes the item in its own transaction.
func (p *BadgerPool) Save(_ context.Context, item *domain.Item) error {
	if err := p.check(item.Key()); err != nil {
		return err
	}
	err := p.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(item.Key()), item.Get())
	})
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "key", item.Key())
	}
	return nil
}

// SaveDeferred queues the item until Commit.
func (p *BadgerPool) SaveDeferred(_ context.Context, item *domain.Item) error {
	if err := p.check(item.Key()); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.deferred = append(p.deferred, item)
	return nil
}

// Commit writes every deferred item in a single transaction.
func (p *BadgerPool) Commit(_ context.Context) error {
	if p.closed.Load() {
		return domain.ErrStoreClosed
	}

	p.mu.Lock()
	pending := p.deferred
	p.deferred = nil
	p.mu.Unlock()

	if len(pending) == 0 {
		return nil
	}

	err := p.db.Update(func(txn *badger.Txn) error {
		for _, item := range pending {
			if err := txn.Set([]byte(item.Key()), item.Get()); err != nil {
				return zerr.With(err, "key", item.Key())
			}
		}
		return nil
	})
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreCommitFailed.Error())
	}
	return nil
}

// Close closes the database. Further use returns domain.ErrStoreClosed.
func (p *BadgerPool) Close() error {
	if p.closed.Swap(true) {
		return nil
	}
	return p.db.Close()
}

func (p *BadgerPool) check(key string) error {
	if p.closed.Load() {
		return domain.ErrStoreClosed
	}
	return domain.ValidateKey(key)
}
