package manifest

import (
	"path/filepath"
	"slices"
	"sync"

	"go.trai.ch/annocache/internal/core/domain"
	"go.trai.ch/annocache/internal/core/ports"
)

// ModTimer reads artifact modification times.
type ModTimer interface {
	ModificationTime(path string) int64
}

var (
	_ ports.DeclarationGraph = (*Graph)(nil)
	_ ports.AnnotationSource = (*Graph)(nil)
)

// Graph answers derivation and source queries from a catalog.
// Artifact identities are absolute file paths.
type Graph struct {
	mu       sync.RWMutex
	catalog  *domain.Catalog
	modTimes ModTimer
	manifest string
}

// NewGraph creates a Graph over catalog.
func NewGraph(catalog *domain.Catalog, modTimes ModTimer) *Graph {
	return &Graph{catalog: catalog, modTimes: modTimes}
}

// WithManifest records the manifest the annotations of every declaration are
// read from, so that editing it invalidates their cache entries.
func (g *Graph) WithManifest(path string) *Graph {
	g.manifest = filepath.Clean(path)
	return g
}

// Replace swaps the catalog answering queries, e.g. after the manifest changed.
func (g *Graph) Replace(catalog *domain.Catalog) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.catalog = catalog
}

// Catalog returns the current catalog.
func (g *Graph) Catalog() *domain.Catalog {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.catalog
}

// SourceArtifact returns the absolute path of the file declaring decl.
func (g *Graph) SourceArtifact(decl domain.Declaration) (string, bool) {
	catalog := g.Catalog()
	spec, ok := catalog.Lookup(decl)
	if !ok || spec.Source == "" {
		return "", false
	}
	return resolve(catalog.Root(), spec.Source), true
}

// AnnotationArtifact returns the manifest path for declarations of the catalog.
func (g *Graph) AnnotationArtifact(decl domain.Declaration) (string, bool) {
	if g.manifest == "" {
		return "", false
	}
	if _, ok := g.Catalog().Lookup(decl); !ok {
		return "", false
	}
	return g.manifest, true
}

// ModificationTime returns the modification time of artifact in Unix seconds.
func (g *Graph) ModificationTime(artifact string) int64 {
	return g.modTimes.ModificationTime(artifact)
}

// Ancestor returns the declaration decl extends.
func (g *Graph) Ancestor(decl domain.Declaration) (domain.Declaration, bool) {
	spec, ok := g.Catalog().Lookup(decl)
	if !ok || spec.Extends.IsZero() {
		return domain.Declaration{}, false
	}
	return spec.Extends, true
}

// ComposableUnits returns the units decl uses.
func (g *Graph) ComposableUnits(decl domain.Declaration) []domain.Declaration {
	spec, ok := g.Catalog().Lookup(decl)
	if !ok {
		return nil
	}
	return slices.Clone(spec.Uses)
}

// Interfaces returns the interfaces decl implements.
func (g *Graph) Interfaces(decl domain.Declaration) []domain.Declaration {
	spec, ok := g.Catalog().Lookup(decl)
	if !ok {
		return nil
	}
	return slices.Clone(spec.Implements)
}

// Artifacts returns the absolute paths of every source artifact of the catalog.
func (g *Graph) Artifacts() []string {
	catalog := g.Catalog()
	sources := catalog.Sources()
	out := make([]string, 0, len(sources))
	for _, s := range sources {
		out = append(out, resolve(catalog.Root(), s))
	}
	return out
}

func resolve(root, source string) string {
	if filepath.IsAbs(source) {
		return filepath.Clean(source)
	}
	return filepath.Join(root, filepath.FromSlash(source))
}
