package store

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/annocache/internal/core/domain"
	"go.trai.ch/annocache/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.PersistentStore = (*FilePool)(nil)

// FilePool stores one JSON file per item in a directory. File names are the
// xxhash of the key; the key is stored alongside the value so a hash
// collision reads as a miss.
type FilePool struct {
	dir string

	mu       sync.Mutex
	deferred []record
}

type record struct {
	Key   string `json:"key"`
	Value []byte `json:"value"`
}

// NewFilePool creates a file pool rooted at dir, creating it if needed.
func NewFilePool(dir string) (*FilePool, error) {
	if dir == "" {
		return nil, zerr.With(domain.ErrMissingStorePath, "backend", string(domain.BackendFile))
	}
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreCreateFailed.Error()), "path", dir)
	}
	return &FilePool{dir: dir}, nil
}

// Dir returns the directory of the pool.
func (p *FilePool) Dir() string {
	return p.dir
}

// GetItem reads the item stored under key.
func (p *FilePool) GetItem(_ context.Context, key string) (*domain.Item, error) {
	if err := domain.ValidateKey(key); err != nil {
		return nil, err
	}

	//nolint:gosec // Path is constructed from the pool directory and a hashed filename
	data, err := os.ReadFile(p.filename(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.NewItem(key, nil, false), nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "key", key)
	}

	// Unreadable or foreign files read as a miss and are overwritten on the next save.
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil || rec.Key != key {
		return domain.NewItem(key, nil, false), nil
	}
	return domain.NewItem(key, rec.Value, true), nil
}

// Save writes the item immediately.
func (p *FilePool) Save(_ context.Context, item *domain.Item) error {
	if err := domain.ValidateKey(item.Key()); err != nil {
		return err
	}
	tmp, err := p.stage(record{Key: item.Key(), Value: item.Get()})
	if err != nil {
		return err
	}
	return p.publish(tmp, item.Key())
}

// SaveDeferred queues the item until Commit.
func (p *FilePool) SaveDeferred(_ context.Context, item *domain.Item) error {
	if err := domain.ValidateKey(item.Key()); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.deferred = append(p.deferred, record{Key: item.Key(), Value: item.Get()})
	return nil
}

// Commit writes every deferred item. All items are staged to temporary files
// first; nothing is published unless every item could be staged.
func (p *FilePool) Commit(_ context.Context) error {
	p.mu.Lock()
	pending := p.deferred
	p.deferred = nil
	p.mu.Unlock()

	staged := make([]string, 0, len(pending))
	for _, rec := range pending {
		tmp, err := p.stage(rec)
		if err != nil {
			for _, name := range staged {
				_ = os.Remove(name)
			}
			return zerr.Wrap(err, domain.ErrStoreCommitFailed.Error())
		}
		staged = append(staged, tmp)
	}

	for i, tmp := range staged {
		if err := p.publish(tmp, pending[i].Key); err != nil {
			for _, name := range staged[i+1:] {
				_ = os.Remove(name)
			}
			return zerr.Wrap(err, domain.ErrStoreCommitFailed.Error())
		}
	}
	return nil
}

// Close releases nothing; the pool stays usable.
func (p *FilePool) Close() error {
	return nil
}

// stage writes rec to a temporary file in the pool directory.
func (p *FilePool) stage(rec record) (string, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrEncodeFailed.Error()), "key", rec.Key)
	}

	f, err := os.CreateTemp(p.dir, "item-*.tmp")
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "key", rec.Key)
	}
	name := f.Name()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(name)
		return "", zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "key", rec.Key)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(name)
		return "", zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "key", rec.Key)
	}
	if err := os.Chmod(name, domain.FilePerm); err != nil {
		_ = os.Remove(name)
		return "", zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "key", rec.Key)
	}
	return name, nil
}

func (p *FilePool) publish(tmp, key string) error {
	if err := os.Rename(tmp, p.filename(key)); err != nil {
		_ = os.Remove(tmp)
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "key", key)
	}
	return nil
}

func (p *FilePool) filename(key string) string {
	return filepath.Join(p.dir, strconv.FormatUint(xxhash.Sum64String(key), 16)+".json")
}
