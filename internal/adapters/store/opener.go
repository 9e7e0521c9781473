package store

import (
	"context"

	"go.trai.ch/annocache/internal/core/domain"
	"go.trai.ch/annocache/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.StoreOpener = (*Opener)(nil)

// Opener opens the pool selected by domain.StoreSettings.
type Opener struct {
	logger ports.Logger
}

// NewOpener creates an Opener. log receives badger's diagnostics.
func NewOpener(log ports.Logger) *Opener {
	return &Opener{logger: log}
}

// Open opens the configured backend.
func (o *Opener) Open(ctx context.Context, settings domain.StoreSettings) (ports.PersistentStore, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch settings.Backend {
	case domain.BackendMemory:
		return NewMemoryPool(), nil
	case domain.BackendFile:
		return NewFilePool(settings.ResolvedPath())
	case domain.BackendBadger:
		return OpenBadger(BadgerConfig{
			Path:       settings.ResolvedPath(),
			SyncWrites: true,
			Logger:     o.logger,
		})
	default:
		return nil, zerr.With(domain.ErrInvalidBackend, "backend", string(settings.Backend))
	}
}
