package reader

import (
	"context"
	"slices"
	"sync"

	"go.trai.ch/annocache/internal/core/domain"
	"go.trai.ch/annocache/internal/core/ports"
)

// Evaluator computes the most recent modification time over the derivation
// graph of a declaration: its own source artifact, its composable units and
// interfaces (recursively) and its ancestor chain. When the graph implements
// ports.AnnotationSource, the artifact the annotations are read from counts
// as well.
//
// Results are memoized per declaration, and raw artifact modification times
// per artifact, until Clear is called.
type Evaluator struct {
	graph   ports.DeclarationGraph
	sources ports.AnnotationSource

	mu         sync.Mutex
	aggregates map[domain.Declaration]int64
	artifacts  map[string]int64
}

// NewEvaluator creates an Evaluator over graph.
func NewEvaluator(graph ports.DeclarationGraph) *Evaluator {
	sources, _ := graph.(ports.AnnotationSource)
	return &Evaluator{
		graph:      graph,
		sources:    sources,
		aggregates: make(map[domain.Declaration]int64),
		artifacts:  make(map[string]int64),
	}
}

// LatestModification returns the latest modification time, in seconds since
// the epoch, of decl and everything it derives from. Declarations without a
// source artifact contribute 0. A cyclic derivation graph yields
// domain.ErrCycleDetected.
func (e *Evaluator) LatestModification(ctx context.Context, decl domain.Declaration) (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.latest(ctx, decl, nil)
}

// Clear forgets every memoized timestamp.
func (e *Evaluator) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	clear(e.aggregates)
	clear(e.artifacts)
}

func (e *Evaluator) latest(ctx context.Context, decl domain.Declaration, path []domain.Declaration) (int64, error) {
	if ts, ok := e.aggregates[decl]; ok {
		return ts, nil
	}
	if slices.Contains(path, decl) {
		return 0, domain.CycleError(path, decl)
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	path = append(path, decl)

	candidates := []int64{e.artifactTime(decl)}
	if e.sources != nil {
		if artifact, ok := e.sources.AnnotationArtifact(decl); ok {
			candidates = append(candidates, e.modificationTime(artifact))
		}
	}
	for _, dep := range e.dependencies(decl) {
		ts, err := e.latest(ctx, dep, path)
		if err != nil {
			return 0, err
		}
		candidates = append(candidates, ts)
	}

	// candidates always holds the own timestamp, so Max never sees an empty slice.
	latest := slices.Max(candidates)
	e.aggregates[decl] = latest
	return latest, nil
}

// dependencies returns composable units, then interfaces, then the ancestor.
func (e *Evaluator) dependencies(decl domain.Declaration) []domain.Declaration {
	units := e.graph.ComposableUnits(decl)
	interfaces := e.graph.Interfaces(decl)
	deps := make([]domain.Declaration, 0, len(units)+len(interfaces)+1)
	deps = append(deps, units...)
	deps = append(deps, interfaces...)
	if ancestor, ok := e.graph.Ancestor(decl); ok {
		deps = append(deps, ancestor)
	}
	return deps
}

func (e *Evaluator) artifactTime(decl domain.Declaration) int64 {
	artifact, ok := e.graph.SourceArtifact(decl)
	if !ok {
		return 0
	}
	return e.modificationTime(artifact)
}

func (e *Evaluator) modificationTime(artifact string) int64 {
	if ts, ok := e.artifacts[artifact]; ok {
		return ts
	}
	ts := e.graph.ModificationTime(artifact)
	e.artifacts[artifact] = ts
	return ts
}
