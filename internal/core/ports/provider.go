package ports

import (
	"context"

	"go.trai.ch/annocache/internal/core/domain"
)

// Provider produces the annotations of a target.
//
// From the cache's point of view it must be a pure function of the current
// source state: its results are cached and only recomputed when stale.
//
//go:generate go run go.uber.org/mock/mockgen -source=provider.go -destination=mocks/mock_provider.go -package=mocks
type Provider interface {
	// Annotations returns the ordered annotations attached to the target.
	Annotations(ctx context.Context, target domain.Target) (domain.Collection, error)
}
