package manifest

import (
	"context"
	"slices"

	"go.trai.ch/annocache/internal/core/domain"
	"go.trai.ch/annocache/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Provider = (*Provider)(nil)

// Provider answers annotation queries by reading the manifest from disk on
// every call, so results always reflect the current file.
type Provider struct {
	path   string
	loader ports.ManifestLoader
}

// NewProvider creates a Provider for the manifest at path.
func NewProvider(path string, loader ports.ManifestLoader) *Provider {
	return &Provider{path: path, loader: loader}
}

// Annotations returns the annotations of target. Members without
// annotations yield an empty collection; unknown declarations fail with
// ErrDeclarationNotFound.
func (p *Provider) Annotations(ctx context.Context, target domain.Target) (domain.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	catalog, err := p.loader.Load(p.path)
	if err != nil {
		return nil, err
	}

	spec, ok := catalog.Lookup(target.Declaration)
	if !ok {
		return nil, zerr.With(domain.ErrDeclarationNotFound, "declaration", target.Declaration.String())
	}

	var c domain.Collection
	switch target.Kind {
	case domain.KindProperty:
		c = spec.Properties[target.Member]
	case domain.KindMethod:
		c = spec.Methods[target.Member]
	default:
		c = spec.Annotations
	}
	if c == nil {
		return domain.Collection{}, nil
	}
	return slices.Clone(c), nil
}
